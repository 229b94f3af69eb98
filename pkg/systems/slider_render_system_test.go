package systems

import (
	"testing"

	"github.com/decker502/capslider/pkg/components"
	"github.com/decker502/capslider/pkg/slider"
)

func newRenderTestSlider(t *testing.T, value float64) *components.SliderComponent {
	t.Helper()
	comp := &components.SliderComponent{ID: "volume", Width: 200}
	c, err := slider.New(slider.NewValueBinding(value), slider.Options{MaxValue: 100, Label: "Volume"})
	if err != nil {
		t.Fatalf("slider.New: %v", err)
	}
	c.OnTrackMeasured(comp.Width)
	comp.Controller = c
	return comp
}

// TestComputeSliderGeometry 测试绘制几何
func TestComputeSliderGeometry(t *testing.T) {
	pos := &components.PositionComponent{X: 40, Y: 100}

	t.Run("空闲且数值为 0 时滑块是圆形", func(t *testing.T) {
		comp := newRenderTestSlider(t, 0)
		g := computeSliderGeometry(comp, pos)

		if g.TrackH != slider.DefaultBaseHeight {
			t.Errorf("TrackH: got %v, want %v", g.TrackH, slider.DefaultBaseHeight)
		}
		if g.ThumbW != g.TrackH {
			t.Errorf("ThumbW: got %v, want %v", g.ThumbW, g.TrackH)
		}
		if g.TrackY != 100-slider.DefaultBaseHeight/2 {
			t.Errorf("TrackY: got %v", g.TrackY)
		}
		if g.CircleOpacity != 0 {
			t.Errorf("CircleOpacity: got %v, want 0", g.CircleOpacity)
		}
		if g.ThumbBrightness != 1 {
			t.Errorf("ThumbBrightness: got %v, want 1", g.ThumbBrightness)
		}
	})

	t.Run("拖动中轨道展开", func(t *testing.T) {
		comp := newRenderTestSlider(t, 50)
		comp.Controller.OnDragChanged(0, 100)
		g := computeSliderGeometry(comp, pos)

		if g.TrackH != slider.DefaultExpandedHeight {
			t.Errorf("TrackH: got %v, want %v", g.TrackH, slider.DefaultExpandedHeight)
		}
		if g.ThumbW != 100 {
			t.Errorf("ThumbW: got %v, want 100", g.ThumbW)
		}
		if g.CircleOpacity != 1 {
			t.Errorf("CircleOpacity: got %v, want 1", g.CircleOpacity)
		}
		if g.ThumbBrightness != 0.85 {
			t.Errorf("ThumbBrightness: got %v, want 0.85", g.ThumbBrightness)
		}
		// 圆点贴在滑块右端
		if g.CircleX != 40+100-10 {
			t.Errorf("CircleX: got %v, want 130", g.CircleX)
		}
		if g.CircleY != 100 {
			t.Errorf("CircleY: got %v, want 100", g.CircleY)
		}
		if g.CircleR != 10-slider.DefaultExpandedHeight*0.15 {
			t.Errorf("CircleR: got %v, want 7", g.CircleR)
		}
	})

	t.Run("数值满时滑块不超出轨道", func(t *testing.T) {
		comp := newRenderTestSlider(t, 100)
		g := computeSliderGeometry(comp, pos)
		if g.ThumbW != g.TrackW {
			t.Errorf("ThumbW: got %v, want %v", g.ThumbW, g.TrackW)
		}
	})
}

// TestFormatSliderValue 测试数值读数格式
func TestFormatSliderValue(t *testing.T) {
	tests := []struct {
		value, max float64
		want       string
	}{
		{75, 100, "75"},
		{74.6, 100, "75"},
		{0.8, 1, "0.80"},
		{0, 245, "0"},
	}
	for _, tt := range tests {
		if got := formatSliderValue(tt.value, tt.max); got != tt.want {
			t.Errorf("formatSliderValue(%v, %v) = %q, want %q", tt.value, tt.max, got, tt.want)
		}
	}
}
