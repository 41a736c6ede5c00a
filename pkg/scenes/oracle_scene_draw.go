package scenes

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/coffee-oracle/pkg/game"
	"github.com/decker502/coffee-oracle/pkg/input"
	"github.com/decker502/coffee-oracle/pkg/particle"
)

var (
	backgroundColor  = color.RGBA{R: 28, G: 18, B: 12, A: 255}
	answerColor      = color.RGBA{R: 255, G: 236, B: 200, A: 255}
	promptColor      = color.RGBA{R: 232, G: 214, B: 190, A: 255}
	counterColor     = color.RGBA{R: 190, G: 160, B: 130, A: 255}
	progressColor    = color.RGBA{R: 255, G: 215, B: 0, A: 255}
	progressTrackCol = color.RGBA{R: 40, G: 40, B: 40, A: 40}
	textShadowColor  = color.RGBA{R: 0, G: 0, B: 0, A: 160}
)

// 秘籍模式彩虹背景的循环周期（秒）
const rainbowPeriod = 2.0

// 长按进度环的点数
const progressDots = 48

// 卫星咖啡杯相对主杯的大小
const satelliteScale = 0.2

// Draw 实现 game.Scene
func (s *OracleScene) Draw(screen *ebiten.Image) {
	s.drawBackground(screen)
	s.drawCup(screen)
	s.particles.Draw(screen)
	s.drawHoldProgress(screen)
	s.drawSatellites(screen)
	s.drawTexts(screen)
}

// drawBackground 绘制底色和视差色块
func (s *OracleScene) drawBackground(screen *ebiten.Image) {
	if s.ultra {
		hue := math.Mod(s.ultraTime/rainbowPeriod, 1)
		screen.Fill(hsvToRGB(hue, 0.55, 0.45))
	} else {
		screen.Fill(backgroundColor)
	}

	for _, l := range s.layers {
		dx, dy := s.parallax.Translate(l.layer)
		particle.DrawBlob(screen, l.x*s.width+dx, l.y*s.height+dy, l.radius, l.color, 1)
	}
}

// ensureCupImage 首次绘制时把解码后的图片上传为 ebiten.Image
func (s *OracleScene) ensureCupImage() *ebiten.Image {
	if s.cupImage == nil && s.cupSource != nil {
		s.cupImage = ebiten.NewImageFromImage(s.cupSource)
	}
	return s.cupImage
}

// drawCup 绘制咖啡杯（包含视差、脉冲和长按动画）
func (s *OracleScene) drawCup(screen *ebiten.Image) {
	img := s.ensureCupImage()
	if img == nil {
		return
	}

	b := img.Bounds()
	scale := s.cupScale()
	cx, cy := s.cupCenter()

	var t holdTransform
	if s.holdAnimating && s.holdDuration > 0 {
		p := float64(s.holdElapsed) / float64(s.holdDuration)
		t = holdTransformAt(s.holdAnim, p, float64(b.Dy())*scale)
	} else {
		t = holdTransform{ScaleX: 1}
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-float64(b.Dx())/2, -float64(b.Dy())/2)
	op.GeoM.Scale(scale*t.ScaleX, scale)
	op.GeoM.Rotate(t.Rotation)
	op.GeoM.Translate(cx+t.DX, cy+t.DY)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(img, op)
}

// drawHoldProgress 在咖啡杯外圈绘制长按进度
func (s *OracleScene) drawHoldProgress(screen *ebiten.Image) {
	if !s.holdProgress {
		return
	}

	r := s.CupRect()
	cx, cy := r.X+r.Width/2, r.Y+r.Height/2
	radius := math.Max(r.Width, r.Height)/2 + 16
	filled := int(s.gate.HoldProgress() * progressDots)

	for i := 0; i < progressDots; i++ {
		angle := -math.Pi/2 + float64(i)*2*math.Pi/progressDots
		x := float32(cx + math.Cos(angle)*radius)
		y := float32(cy + math.Sin(angle)*radius)
		c := progressTrackCol
		if i < filled {
			c = progressColor
		}
		vector.DrawFilledCircle(screen, x, y, 4, c, true)
	}
}

// drawSatellites 绘制庆祝动画中环绕的小咖啡杯
func (s *OracleScene) drawSatellites(screen *ebiten.Image) {
	if !s.celebration.Active() {
		return
	}
	img := s.ensureCupImage()

	for _, seq := range s.celebration.Sequences() {
		for _, sat := range seq.Satellites {
			if sat.Opacity <= 0 {
				continue
			}
			if img == nil {
				particle.DrawBlob(screen, sat.X, sat.Y, 24, answerColor, sat.Opacity)
				continue
			}

			b := img.Bounds()
			scale := s.cupScale() * satelliteScale
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Translate(-float64(b.Dx())/2, -float64(b.Dy())/2)
			op.GeoM.Scale(scale, scale)
			op.GeoM.Rotate(sat.Angle)
			op.GeoM.Translate(sat.X, sat.Y)
			op.ColorScale.ScaleAlpha(float32(sat.Opacity))
			op.Filter = ebiten.FilterLinear
			screen.DrawImage(img, op)
		}
	}
}

// drawTexts 绘制提问、答案和计数
func (s *OracleScene) drawTexts(screen *ebiten.Image) {
	if s.fonts == nil {
		return
	}

	textY := s.height * 0.12
	state := s.sequencer.State()

	if s.promptAlpha > 0 {
		face := s.fonts.Face(game.FontRegular, math.Max(18, s.height*0.04))
		drawCenteredText(screen, s.cfg.Answer.Prompt, face, s.width/2, textY, promptColor, s.promptAlpha)
	}
	if s.answerAlpha > 0 && state.Text != "" {
		size := s.height * 0.1
		if state.Standing {
			size = s.height * 0.05
		}
		face := s.fonts.Face(game.FontBold, math.Max(24, size))
		drawCenteredText(screen, state.Text, face, s.width/2, textY, answerColor, s.answerAlpha)
	}

	face := s.fonts.Face(game.FontRegular, 16)
	label := fmt.Sprintf("Coffees consulted: %d", s.displayCount)
	drawCenteredText(screen, label, face, s.width/2, s.height-36, counterColor, 1)
}

// drawCenteredText 绘制水平居中、带阴影的文字
func drawCenteredText(screen *ebiten.Image, str string, face *text.GoTextFace, x, y float64, c color.RGBA, alpha float64) {
	shadowOp := &text.DrawOptions{}
	shadowOp.GeoM.Translate(x+2, y+2)
	shadowOp.PrimaryAlign = text.AlignCenter
	shadowOp.ColorScale.ScaleWithColor(textShadowColor)
	shadowOp.ColorScale.ScaleAlpha(float32(alpha))
	text.Draw(screen, str, face, shadowOp)

	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.PrimaryAlign = text.AlignCenter
	op.ColorScale.ScaleWithColor(c)
	op.ColorScale.ScaleAlpha(float32(alpha))
	text.Draw(screen, str, face, op)
}

// holdTransform 长按动画在某一时刻对咖啡杯的变换
type holdTransform struct {
	DX, DY   float64
	Rotation float64
	ScaleX   float64
}

// holdTransformAt 计算长按动画在进度 p（0~1）时的变换
//
// 参数 size 为咖啡杯的显示高度，用于确定位移幅度。
func holdTransformAt(anim input.HoldAnimation, p, size float64) holdTransform {
	p = math.Max(0, math.Min(1, p))
	t := holdTransform{ScaleX: 1}

	switch anim {
	case input.HoldSpin:
		// 先快后慢转一整圈
		t.Rotation = 2 * math.Pi * (1 - math.Pow(1-p, 3))
	case input.HoldShake:
		t.DX = math.Sin(p*math.Pi*16) * size * 0.05 * (1 - p)
	case input.HoldBounce:
		t.DY = -math.Abs(math.Sin(p*math.Pi*4)) * size * 0.2 * (1 - p*0.5)
	case input.HoldFlip:
		t.ScaleX = math.Cos(p * 2 * math.Pi)
	}
	return t
}

// hsvToRGB 把 HSV（均为 0~1）转换为 RGB
func hsvToRGB(h, s, v float64) color.RGBA {
	i := math.Floor(h * 6)
	f := h*6 - i
	p := v * (1 - s)
	q := v * (1 - f*s)
	t := v * (1 - (1-f)*s)

	var r, g, b float64
	switch int(i) % 6 {
	case 0:
		r, g, b = v, t, p
	case 1:
		r, g, b = q, v, p
	case 2:
		r, g, b = p, v, t
	case 3:
		r, g, b = p, q, v
	case 4:
		r, g, b = t, p, v
	default:
		r, g, b = v, p, q
	}
	return color.RGBA{R: uint8(r * 255), G: uint8(g * 255), B: uint8(b * 255), A: 255}
}
