package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/coffee-oracle/pkg/app"
	"github.com/decker502/coffee-oracle/pkg/embedded"
)

func main() {
	verbose := flag.Bool("verbose", false, "启用详细日志输出")
	configPath := flag.String("config", "", "外部配置文件路径（默认使用嵌入的 data/config.yaml）")
	imagePath := flag.String("image", "", "咖啡杯图片路径（PNG/JPEG，默认使用程序生成的咖啡杯）")
	flag.Parse()

	// 初始化嵌入资源
	embedded.Init(dataFS)

	oracle, err := app.NewApp(app.Config{
		Verbose:    *verbose,
		ConfigPath: *configPath,
		ImagePath:  *imagePath,
	})
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}

	cfg := oracle.Config()
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(oracle); err != nil {
		log.Fatal(err)
	}
}
