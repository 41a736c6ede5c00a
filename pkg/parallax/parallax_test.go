package parallax

import (
	"math"
	"testing"
)

func TestSetPointerNormalizes(t *testing.T) {
	d := NewDriver(DefaultParams())
	d.SetViewport(1000, 800)

	d.SetPointer(1000, 0)
	off := d.Offset()
	if off.TargetX != 0.5 || off.TargetY != -0.5 {
		t.Errorf("target = (%v, %v), want (0.5, -0.5)", off.TargetX, off.TargetY)
	}

	d.SetPointer(500, 400)
	if off.TargetX != 0 || off.TargetY != 0 {
		t.Errorf("center target = (%v, %v), want (0, 0)", off.TargetX, off.TargetY)
	}
}

// TestUpdateSmoothing 测试每帧移动剩余距离的 10%
func TestUpdateSmoothing(t *testing.T) {
	d := NewDriver(DefaultParams())
	d.SetViewport(1000, 1000)
	d.SetPointer(1000, 1000)

	d.Update()
	if got := d.Offset().CurrentX; math.Abs(got-0.05) > 1e-12 {
		t.Errorf("CurrentX after 1 frame = %v, want 0.05", got)
	}

	for i := 0; i < 200; i++ {
		d.Update()
	}
	if got := d.Offset().CurrentX; math.Abs(got-0.5) > 1e-6 {
		t.Errorf("CurrentX after settling = %v, want 0.5", got)
	}
}

func TestTranslate(t *testing.T) {
	tests := []struct {
		name      string
		viewportW float64
		mobile    bool
		layer     Layer
		want      float64
	}{
		{"desktop", 1200, false, Layer{Speed: 0.8, ReduceOnMobile: true}, 0.5 * 0.8 * 50},
		{"mobile reduced", 768, false, Layer{Speed: 0.8, ReduceOnMobile: true}, 0.5 * 0.8 * 0.3 * 50},
		{"mobile platform", 1200, true, Layer{Speed: 0.8, ReduceOnMobile: true}, 0.5 * 0.8 * 0.3 * 50},
		{"cup keeps speed on narrow viewport", 768, false, Layer{Speed: 0.8}, 0.5 * 0.8 * 50},
		{"cup keeps speed on mobile platform", 1200, true, Layer{Speed: 0.8}, 0.5 * 0.8 * 50},
		{"static layer", 1200, false, Layer{ReduceOnMobile: true}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := DefaultParams()
			params.Mobile = tt.mobile
			d := NewDriver(params)
			d.SetViewport(tt.viewportW, 600)
			d.Offset().CurrentX = 0.5

			dx, dy := d.Translate(tt.layer)
			if math.Abs(dx-tt.want) > 1e-9 || dy != 0 {
				t.Errorf("Translate() = (%v, %v), want (%v, 0)", dx, dy, tt.want)
			}
		})
	}
}

func TestSetPointerWithoutViewport(t *testing.T) {
	d := NewDriver(DefaultParams())
	d.SetPointer(10, 10)
	if d.Offset().TargetX != 0 {
		t.Error("target changed without a viewport")
	}
}
