package game

import (
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"log"
	"math"
	"os"
)

// 程序生成咖啡杯的默认尺寸
const (
	CupImageWidth  = 320
	CupImageHeight = 300
)

var (
	cupBodyColor   = color.NRGBA{R: 250, G: 246, B: 240, A: 255}
	cupShadeColor  = color.NRGBA{R: 214, G: 204, B: 192, A: 255}
	cupRimColor    = color.NRGBA{R: 236, G: 228, B: 216, A: 255}
	coffeeColor    = color.NRGBA{R: 92, G: 56, B: 32, A: 255}
	cremaColor     = color.NRGBA{R: 168, G: 118, B: 72, A: 255}
	saucerColor    = color.NRGBA{R: 226, G: 216, B: 202, A: 255}
	saucerRimColor = color.NRGBA{R: 196, G: 184, B: 168, A: 255}
)

// DecodeImage 从文件解码图片（支持 PNG 和 JPEG）
//
// 参数:
//   - path: 图片文件路径
//
// 返回:
//   - image.Image: 解码后的图片
//   - error: 打开或解码失败时返回错误
func DecodeImage(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file %s: %w", path, err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}
	return img, nil
}

// LoadCupImage 加载咖啡杯图片
//
// path 为空时直接返回程序生成的咖啡杯；加载失败时记录警告并回退到生成的图片。
func LoadCupImage(path string) image.Image {
	if path == "" {
		return GenerateCupImage(CupImageWidth, CupImageHeight)
	}

	img, err := DecodeImage(path)
	if err != nil {
		log.Printf("[Resource] Warning: %v, using generated cup", err)
		return GenerateCupImage(CupImageWidth, CupImageHeight)
	}

	b := img.Bounds()
	log.Printf("[Resource] Loaded cup image %s (%dx%d)", path, b.Dx(), b.Dy())
	return img
}

// GenerateCupImage 生成一个透明背景的咖啡杯（杯身、把手、咖啡液面和杯碟）
//
// 杯子以外的像素 alpha 为 0，便于按像素命中检测。
func GenerateCupImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	fw, fh := float64(w), float64(h)

	cx := fw * 0.45
	bodyTop, bodyBottom := fh*0.25, fh*0.85
	topHalf, bottomHalf := fw*0.32, fw*0.24

	handleX, handleY := cx+fw*0.32, fh*0.5
	handleOuter, handleInner := fw*0.12, fw*0.07

	saucerY, saucerRX, saucerRY := fh*0.88, fw*0.42, fh*0.07
	rimRY := fh * 0.05

	for py := 0; py < h; py++ {
		y := float64(py) + 0.5
		for px := 0; px < w; px++ {
			x := float64(px) + 0.5

			// 杯碟在最底层
			if d := ellipse(x, y, cx, saucerY, saucerRX, saucerRY); d <= 1 {
				if d > 0.8 {
					img.SetNRGBA(px, py, saucerRimColor)
				} else {
					img.SetNRGBA(px, py, saucerColor)
				}
			}

			// 把手
			if x > cx+fw*0.2 {
				dist := math.Hypot(x-handleX, y-handleY)
				if dist >= handleInner && dist <= handleOuter {
					img.SetNRGBA(px, py, cupShadeColor)
				}
			}

			// 杯身：上宽下窄的梯形，右侧加一点阴影
			if y >= bodyTop && y <= bodyBottom {
				t := (y - bodyTop) / (bodyBottom - bodyTop)
				half := topHalf + (bottomHalf-topHalf)*t
				if dx := x - cx; math.Abs(dx) <= half {
					if dx > half*0.55 {
						img.SetNRGBA(px, py, cupShadeColor)
					} else {
						img.SetNRGBA(px, py, cupBodyColor)
					}
				}
			}

			// 杯口与咖啡液面
			if d := ellipse(x, y, cx, bodyTop, topHalf, rimRY); d <= 1 {
				switch {
				case d > 0.75:
					img.SetNRGBA(px, py, cupRimColor)
				case d > 0.5:
					img.SetNRGBA(px, py, cremaColor)
				default:
					img.SetNRGBA(px, py, coffeeColor)
				}
			}
		}
	}
	return img
}

// ellipse 返回点相对椭圆的归一化距离平方，<=1 表示在椭圆内
func ellipse(x, y, cx, cy, rx, ry float64) float64 {
	dx := (x - cx) / rx
	dy := (y - cy) / ry
	return dx*dx + dy*dy
}
