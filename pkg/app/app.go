// Package app 提供应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/coffee-oracle/pkg/config"
	"github.com/decker502/coffee-oracle/pkg/counter"
	"github.com/decker502/coffee-oracle/pkg/embedded"
	"github.com/decker502/coffee-oracle/pkg/game"
	"github.com/decker502/coffee-oracle/pkg/scenes"
)

// DefaultConfigPath 嵌入的默认配置文件
const DefaultConfigPath = "data/config.yaml"

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath 外部配置文件路径，为空则使用嵌入的 data/config.yaml
	ConfigPath string
	// ImagePath 咖啡杯图片路径，为空则使用配置中的路径或程序生成的咖啡杯
	ImagePath string
}

// App 是应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager             *game.SceneManager
	config                   *config.AppConfig
	verbose                  bool
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
// 存储不可用时进入降级模式（计数只保存在内存中），不会返回错误。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	appConfig, err := LoadConfig(cfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("配置加载失败: %w", err)
	}

	gdataManager, err := game.OpenStorage(appConfig.Storage.AppName)
	if err != nil {
		log.Printf("[App] Warning: %v, counter will not persist", err)
	}
	store := counter.NewGdataStore(gdataManager)

	fonts, err := game.NewFontCache()
	if err != nil {
		return nil, fmt.Errorf("字体加载失败: %w", err)
	}

	scene := scenes.NewOracleScene(appConfig, store, fonts, nil)

	// 初始化音频上下文（整个进程只能创建一次）
	if appConfig.Audio.Enabled {
		audioContext := audio.NewContext(game.SampleRate)
		scene.SetSounds(game.NewAudioManager(audioContext, appConfig.Audio.Volume))
		log.Printf("[App] AudioManager initialized (volume: %.2f)", appConfig.Audio.Volume)
	}

	imagePath := cfg.ImagePath
	if imagePath == "" {
		imagePath = appConfig.Cup.Image
	}
	scene.LoadCupAsync(func() image.Image {
		return game.LoadCupImage(imagePath)
	})

	sceneManager := game.NewSceneManager()
	sceneManager.SwitchTo(scene)
	log.Printf("[App] Oracle scene started")

	return &App{
		sceneManager: sceneManager,
		config:       appConfig,
		verbose:      cfg.Verbose,
	}, nil
}

// LoadConfig 加载应用配置
//
// path 非空时从文件加载；否则读取嵌入的 data/config.yaml，
// 嵌入资源不可用时记录警告并使用默认配置。
func LoadConfig(path string) (*config.AppConfig, error) {
	if path != "" {
		cfg, err := config.LoadAppConfig(path)
		if err != nil {
			return nil, err
		}
		log.Printf("[Config] Loaded %s", path)
		return cfg, nil
	}

	data, err := embedded.ReadFile(DefaultConfigPath)
	if err != nil {
		log.Printf("[Config] Warning: %v, using defaults", err)
		return config.Default(), nil
	}

	cfg, err := config.ParseAppConfig(data)
	if err != nil {
		return nil, fmt.Errorf("embedded %s: %w", DefaultConfigPath, err)
	}
	log.Printf("[Config] Loaded embedded %s", DefaultConfigPath)
	return cfg, nil
}

// Update 更新应用逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(a.config.Window.Width, a.config.Window.Height)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", a.config.Window.Width, a.config.Window.Height)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		} else {
			ebiten.SetFullscreen(true)
		}
	}

	deltaTime := 1.0 / float64(ebiten.TPS())
	a.sceneManager.Update(deltaTime)
	return nil
}

// Draw 绘制画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸
// 逻辑尺寸跟随窗口尺寸，尺寸变化时通知当前场景重新布局
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth <= 0 || outsideHeight <= 0 {
		return a.config.Window.Width, a.config.Window.Height
	}
	a.sceneManager.Resize(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

// Config 返回生效的应用配置
func (a *App) Config() *config.AppConfig {
	return a.config
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
