package hittest

import (
	"image"
	"image/color"
	"testing"
)

// newTestImage 创建 4x4 图片，左上 2x2 完全不透明，(2,0)=alpha 9，(3,0)=alpha 10，其余透明
func newTestImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 120, G: 80, B: 40, A: 255})
		}
	}
	img.SetNRGBA(2, 0, color.NRGBA{A: 9})
	img.SetNRGBA(3, 0, color.NRGBA{A: 10})
	return img
}

// fixedRect 图片显示在 (100,50)，放大 10 倍
func fixedRect() Rect {
	return Rect{X: 100, Y: 50, Width: 40, Height: 40}
}

func TestIsOpaque(t *testing.T) {
	tester := NewTester(fixedRect)
	tester.Load(newTestImage())

	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"opaque top-left pixel", 105, 55, true},
		{"opaque pixel far edge", 119.9, 69.9, true},
		{"transparent pixel", 135, 85, false},
		{"alpha 9 is transparent", 125, 55, false},
		{"alpha 10 is opaque", 135, 55, true},
		{"left of rect", 99.9, 55, false},
		{"above rect", 105, 49, false},
		{"right edge is exclusive", 140, 55, false},
		{"bottom edge is exclusive", 105, 90, false},
		{"far outside", -500, 9000, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tester.IsOpaque(tt.x, tt.y); got != tt.want {
				t.Errorf("IsOpaque(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

// TestIsOpaqueFailOpen 测试 alpha 快照未加载时所有坐标都视为可交互
func TestIsOpaqueFailOpen(t *testing.T) {
	tester := NewTester(fixedRect)

	points := [][2]float64{{0, 0}, {105, 55}, {-1, -1}, {1e6, 1e6}}
	for _, p := range points {
		if !tester.IsOpaque(p[0], p[1]) {
			t.Errorf("IsOpaque(%v, %v) = false before load, want true", p[0], p[1])
		}
	}
}

// TestIsOpaqueFollowsGeometry 测试每次查询都使用最新的布局
func TestIsOpaqueFollowsGeometry(t *testing.T) {
	rect := fixedRect()
	tester := NewTester(func() Rect { return rect })
	tester.Load(newTestImage())

	if !tester.IsOpaque(105, 55) {
		t.Fatal("expected opaque before layout change")
	}

	// 图片移动到别处，原坐标落在区域之外
	rect = Rect{X: 300, Y: 300, Width: 4, Height: 4}
	if tester.IsOpaque(105, 55) {
		t.Error("expected non-opaque after layout moved away")
	}
	if !tester.IsOpaque(300.5, 300.5) {
		t.Error("expected opaque at new origin with 1:1 scale")
	}
}

// TestIsOpaqueDegenerateRect 测试零尺寸显示区域视为不可交互
func TestIsOpaqueDegenerateRect(t *testing.T) {
	tester := NewTester(func() Rect { return Rect{X: 10, Y: 10} })
	tester.Load(newTestImage())

	if tester.IsOpaque(10, 10) {
		t.Error("zero-sized rect should never be opaque")
	}
}

// TestNewAlphaMapGenericImage 测试非 NRGBA 图片通过通用路径读取 alpha
func TestNewAlphaMapGenericImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(5, 5, 8, 7))
	img.Set(6, 6, color.RGBA{R: 10, A: 200})

	m := NewAlphaMap(img)
	if m.Width() != 3 || m.Height() != 2 {
		t.Fatalf("size = %dx%d, want 3x2", m.Width(), m.Height())
	}
	if got := m.At(1, 1); got != 200 {
		t.Errorf("At(1,1) = %d, want 200", got)
	}
	if got := m.At(0, 0); got != 0 {
		t.Errorf("At(0,0) = %d, want 0", got)
	}
	if got := m.At(-1, 0); got != 0 {
		t.Errorf("At(-1,0) = %d, want 0 for out of range", got)
	}
}

func TestRectContains(t *testing.T) {
	r := Rect{X: 0, Y: 0, Width: 10, Height: 10}
	if !r.Contains(0, 0) || !r.Contains(9.99, 9.99) {
		t.Error("expected inner points to be contained")
	}
	if r.Contains(10, 5) || r.Contains(5, -0.01) {
		t.Error("expected outer points not to be contained")
	}
}
