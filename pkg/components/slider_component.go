package components

import (
	"github.com/decker502/capslider/pkg/slider"
	"github.com/decker502/capslider/pkg/utils"
)

// SliderComponent 可展开胶囊滑动条组件
//
// 交互状态全部由 Controller 持有，本组件只保存布局与视觉过渡：
//   - ValueTween: 点击跳转时的数值过渡（实现 slider.Animator）
//   - HeightTween: 轨道展开/收起时的高度过渡
type SliderComponent struct {
	// ID 滑动条标识（用于持久化）
	ID string

	Controller *slider.Controller
	Accessible *slider.Accessible

	// Width 轨道宽度（像素），每帧作为测量结果上报给 Controller
	Width float64
	// MinHitHeight 拖动目标的最小有效高度
	MinHitHeight float64

	// 状态
	IsHovered bool // 是否鼠标悬停
	IsFocused bool // 是否拥有键盘焦点（辅助功能）

	ValueTween  *utils.Tween
	HeightTween *utils.Tween
}

// AnimateValue 实现 slider.Animator，开始点击跳转的数值过渡
func (s *SliderComponent) AnimateValue(from, to float64) {
	if s.ValueTween == nil {
		return
	}
	s.ValueTween.Start(from, to)
}

// DisplayValue 当前应绘制的数值
// 过渡进行中且没有拖动时返回过渡值，否则返回控制器的真实值
func (s *SliderComponent) DisplayValue() float64 {
	if s.ValueTween != nil && s.ValueTween.Active() && !s.Controller.IsDragging() {
		return s.ValueTween.Value()
	}
	return s.Controller.Value()
}

// DisplayTrackHeight 当前应绘制的轨道高度
func (s *SliderComponent) DisplayTrackHeight() float64 {
	if s.HeightTween == nil {
		return s.Controller.RenderAttributes().TrackHeight
	}
	return s.HeightTween.Value()
}

// HitHeight 拖动命中区域的高度，不小于展开后的轨道高度
func (s *SliderComponent) HitHeight() float64 {
	h := s.Controller.ExpandedHeight()
	if s.MinHitHeight > h {
		return s.MinHitHeight
	}
	return h
}
