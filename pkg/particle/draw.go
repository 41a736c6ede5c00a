package particle

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// StarInnerRatio is the inner/outer radius ratio of the 5-point sparkle.
const StarInnerRatio = 0.4

// blobLayers are the concentric layers of a soft blob, outermost first.
var blobLayers = []struct {
	radius float64
	alpha  float64
}{
	{1.0, 0.12},
	{0.75, 0.2},
	{0.5, 0.3},
	{0.25, 0.45},
}

var whiteSubImage *ebiten.Image

// whitePixel lazily creates the 1x1 source image for filled paths.
func whitePixel() *ebiten.Image {
	if whiteSubImage == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		whiteSubImage = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return whiteSubImage
}

// Draw renders every live particle onto screen.
func (f *Field) Draw(screen *ebiten.Image) {
	for i := range f.particles {
		p := &f.particles[i]
		alpha := p.Alpha()
		if alpha <= 0 {
			continue
		}
		switch p.Kind {
		case KindStar:
			DrawStar(screen, p.X, p.Y, p.Size, p.Rotation, p.Color, alpha, p.Glow)
		default:
			DrawBlob(screen, p.X, p.Y, p.Size, p.Color, alpha)
		}
	}
}

// DrawBlob draws a soft circle as four concentric alpha-blended layers.
func DrawBlob(dst *ebiten.Image, x, y, size float64, c color.RGBA, alpha float64) {
	for _, layer := range blobLayers {
		vector.DrawFilledCircle(dst, float32(x), float32(y), float32(size*layer.radius),
			withAlpha(c, alpha*layer.alpha), true)
	}
}

// DrawStar draws a 5-point star with an optional outer glow.
func DrawStar(dst *ebiten.Image, x, y, size, rotation float64, c color.RGBA, alpha float64, glow bool) {
	if glow {
		vector.DrawFilledCircle(dst, float32(x), float32(y), float32(size*2), withAlpha(c, alpha*0.15), true)
	}

	var path vector.Path
	for i := 0; i < 10; i++ {
		r := size
		if i%2 == 1 {
			r = size * StarInnerRatio
		}
		angle := rotation - math.Pi/2 + float64(i)*math.Pi/5
		px := float32(x + math.Cos(angle)*r)
		py := float32(y + math.Sin(angle)*r)
		if i == 0 {
			path.MoveTo(px, py)
		} else {
			path.LineTo(px, py)
		}
	}
	path.Close()

	vs, is := path.AppendVerticesAndIndicesForFilling(nil, nil)
	fc := withAlpha(c, alpha)
	for i := range vs {
		vs[i].SrcX = 1
		vs[i].SrcY = 1
		vs[i].ColorR = float32(fc.R) / 255
		vs[i].ColorG = float32(fc.G) / 255
		vs[i].ColorB = float32(fc.B) / 255
		vs[i].ColorA = float32(fc.A) / 255
	}
	dst.DrawTriangles(vs, is, whitePixel(), &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

// withAlpha scales c by alpha and returns it premultiplied.
func withAlpha(c color.RGBA, alpha float64) color.RGBA {
	if alpha < 0 {
		alpha = 0
	}
	if alpha > 1 {
		alpha = 1
	}
	a := float64(c.A) / 255 * alpha
	return color.RGBA{
		R: uint8(float64(c.R) * a),
		G: uint8(float64(c.G) * a),
		B: uint8(float64(c.B) * a),
		A: uint8(255 * a),
	}
}
