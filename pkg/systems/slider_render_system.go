package systems

import (
	"bytes"
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/decker502/capslider/pkg/components"
	"github.com/decker502/capslider/pkg/ecs"
)

const (
	labelFontSize  = 14
	labelGap       = 18 // 标签底部到轨道中心的距离
	focusRingWidth = 3
)

var (
	trackColor       = color.NRGBA{R: 26, G: 26, B: 26, A: 128}
	trackHoverColor  = color.NRGBA{R: 46, G: 46, B: 46, A: 150}
	innerShadowColor = color.NRGBA{A: 77}
	outerShadowColor = color.NRGBA{R: 255, G: 255, B: 255, A: 51}
	knobShadowColor  = color.NRGBA{A: 60}
	focusRingColor   = color.NRGBA{R: 10, G: 132, B: 255, A: 200}
	labelColor       = color.NRGBA{R: 235, G: 235, B: 235, A: 255}
	valueColor       = color.NRGBA{R: 170, G: 170, B: 170, A: 255}
)

// sliderGeometry 一帧的绘制几何
type sliderGeometry struct {
	TrackX, TrackY, TrackW, TrackH float64
	ThumbW                         float64
	CircleX, CircleY, CircleR      float64
	CircleOpacity                  float64
	ThumbBrightness                float64
}

// computeSliderGeometry 根据控制器的渲染属性和当前过渡值计算绘制几何
func computeSliderGeometry(slider *components.SliderComponent, pos *components.PositionComponent) sliderGeometry {
	attrs := slider.Controller.RenderAttributesFor(slider.DisplayValue())
	h := slider.DisplayTrackHeight()

	g := sliderGeometry{
		TrackX:          pos.X,
		TrackY:          pos.Y - h/2,
		TrackW:          slider.Width,
		TrackH:          h,
		ThumbW:          math.Min(math.Max(attrs.ThumbWidth, h), math.Max(slider.Width, h)),
		CircleOpacity:   attrs.ThumbOpacity,
		ThumbBrightness: attrs.ThumbBrightness,
	}

	// 高亮圆点贴在滑块右端
	g.CircleR = math.Max(0, h/2-attrs.InnerCirclePadding)
	g.CircleX = g.TrackX + g.ThumbW - h/2
	g.CircleY = pos.Y
	return g
}

// SliderRenderSystem 滑动条渲染系统
// 每帧读取控制器的渲染属性，绘制轨道、滑块、高亮圆点与标签
type SliderRenderSystem struct {
	entityManager *ecs.EntityManager
	labelFace     *text.GoTextFace
}

// NewSliderRenderSystem 创建渲染系统
func NewSliderRenderSystem(em *ecs.EntityManager) (*SliderRenderSystem, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("failed to load label font: %w", err)
	}
	return &SliderRenderSystem{
		entityManager: em,
		labelFace:     &text.GoTextFace{Source: source, Size: labelFontSize},
	}, nil
}

// LabelFace 标签字体，供应用绘制其他文字时复用
func (s *SliderRenderSystem) LabelFace() *text.GoTextFace {
	return s.labelFace
}

// Draw 绘制所有滑动条
func (s *SliderRenderSystem) Draw(screen *ebiten.Image) {
	entities := ecs.GetEntitiesWith2[*components.SliderComponent, *components.PositionComponent](s.entityManager)
	for _, entityID := range entities {
		slider, _ := ecs.GetComponent[*components.SliderComponent](s.entityManager, entityID)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, entityID)
		s.drawSlider(screen, slider, pos)
	}
}

// drawSlider 渲染单个滑动条
func (s *SliderRenderSystem) drawSlider(screen *ebiten.Image, slider *components.SliderComponent, pos *components.PositionComponent) {
	g := computeSliderGeometry(slider, pos)

	s.drawLabels(screen, slider, pos)

	if slider.IsFocused {
		drawCapsule(screen, g.TrackX-focusRingWidth, g.TrackY-focusRingWidth,
			g.TrackW+2*focusRingWidth, g.TrackH+2*focusRingWidth, focusRingColor)
	}

	// 外侧阴影 + 轨道 + 顶部内阴影
	drawCapsule(screen, g.TrackX, g.TrackY+1, g.TrackW, g.TrackH, outerShadowColor)
	track := trackColor
	if slider.IsHovered {
		track = trackHoverColor
	}
	drawCapsule(screen, g.TrackX, g.TrackY, g.TrackW, g.TrackH, track)
	drawCapsule(screen, g.TrackX, g.TrackY, g.TrackW, math.Min(g.TrackH, 2), innerShadowColor)

	// 滑块
	level := uint8(math.Round(255 * g.ThumbBrightness))
	drawCapsule(screen, g.TrackX, g.TrackY, g.ThumbW, g.TrackH, color.NRGBA{R: level, G: level, B: level, A: 255})

	// 拖动时的高亮圆点
	if g.CircleOpacity > 0 && g.CircleR > 0 {
		alpha := uint8(math.Round(255 * g.CircleOpacity))
		vector.FillCircle(screen, float32(g.CircleX), float32(g.CircleY+1), float32(g.CircleR),
			color.NRGBA{A: uint8(float64(knobShadowColor.A) * g.CircleOpacity)}, true)
		vector.FillCircle(screen, float32(g.CircleX), float32(g.CircleY), float32(g.CircleR),
			color.NRGBA{R: 255, G: 255, B: 255, A: alpha}, true)
	}
}

// drawLabels 绘制标签（左上）和数值（右上）
func (s *SliderRenderSystem) drawLabels(screen *ebiten.Image, slider *components.SliderComponent, pos *components.PositionComponent) {
	baseline := pos.Y - labelGap - labelFontSize

	if label := slider.Controller.Label(); label != "" {
		op := &text.DrawOptions{}
		op.GeoM.Translate(pos.X, baseline)
		op.ColorScale.ScaleWithColor(labelColor)
		text.Draw(screen, label, s.labelFace, op)
	}

	readout := formatSliderValue(slider.DisplayValue(), slider.Controller.MaxValue())
	w, _ := text.Measure(readout, s.labelFace, 0)
	op := &text.DrawOptions{}
	op.GeoM.Translate(pos.X+slider.Width-w, baseline)
	op.ColorScale.ScaleWithColor(valueColor)
	text.Draw(screen, readout, s.labelFace, op)
}

// formatSliderValue 数值读数，上限较小时保留两位小数
func formatSliderValue(value, maxValue float64) string {
	if maxValue < 10 {
		return fmt.Sprintf("%.2f", value)
	}
	return fmt.Sprintf("%.0f", value)
}

// drawCapsule 绘制胶囊形（两端为半圆的圆角矩形）
// 宽度小于高度时按高度绘制为圆形
func drawCapsule(dst *ebiten.Image, x, y, w, h float64, clr color.Color) {
	if h <= 0 {
		return
	}
	if w < h {
		w = h
	}
	r := float32(h / 2)
	fx, fy, fw, fh := float32(x), float32(y), float32(w), float32(h)

	var path vector.Path
	path.MoveTo(fx+r, fy)
	path.LineTo(fx+fw-r, fy)
	path.Arc(fx+fw-r, fy+r, r, -math.Pi/2, math.Pi/2, vector.Clockwise)
	path.LineTo(fx+r, fy+fh)
	path.Arc(fx+r, fy+r, r, math.Pi/2, 3*math.Pi/2, vector.Clockwise)
	path.Close()

	drawOp := &vector.DrawPathOptions{}
	drawOp.AntiAlias = true
	drawOp.ColorScale.ScaleWithColor(clr)
	vector.FillPath(dst, &path, nil, drawOp)
}
