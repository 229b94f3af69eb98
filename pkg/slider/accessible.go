package slider

import (
	"fmt"
	"math"
)

// defaultStepDivisions 未指定步长时，整个范围分成的档数
const defaultStepDivisions = 10

// Accessible 辅助功能输入适配器
//
// 与手势路径并行的第二条输入通道，直接操作同一个 Controller，
// 因此数值只有一个来源。每次离散调整都会触发与手势相同的
// OnEditingChanged(true) / OnEditingChanged(false) 通知。
type Accessible struct {
	controller *Controller
	step       float64
	editing    bool
}

// NewAccessible 为控制器创建辅助功能适配器
// step <= 0 时使用 maxValue/10
func NewAccessible(c *Controller, step float64) *Accessible {
	if step <= 0 || math.IsNaN(step) {
		step = c.MaxValue() / defaultStepDivisions
	}
	return &Accessible{controller: c, step: step}
}

// Step 每次增减的步长
func (a *Accessible) Step() float64 { return a.step }

// Range 可调范围
func (a *Accessible) Range() (lo, hi float64) { return 0, a.controller.MaxValue() }

// Value 当前数值
func (a *Accessible) Value() float64 { return a.controller.Value() }

// Label 辅助功能名称
func (a *Accessible) Label() string { return a.controller.Label() }

// IsEditing 是否处于 BeginEditing / EndEditing 之间
func (a *Accessible) IsEditing() bool { return a.editing }

// Increment 增加一个步长
func (a *Accessible) Increment() bool {
	return a.SetValue(a.controller.Value() + a.step)
}

// Decrement 减少一个步长
func (a *Accessible) Decrement() bool {
	return a.SetValue(a.controller.Value() - a.step)
}

// SetValue 设置数值（自动收回到合法范围）
// 指针拖动进行中时忽略，返回 false
func (a *Accessible) SetValue(value float64) bool {
	if a.controller.IsDragging() {
		return false
	}
	if a.editing {
		a.controller.SetValue(value)
		return true
	}
	a.controller.beginEditing()
	a.controller.SetValue(value)
	a.controller.endEditing()
	return true
}

// BeginEditing 开始一段连续调整，期间的 SetValue 不再单独发通知
// 会话期间开始的指针拖动并入同一次编辑，通知仍然成对
func (a *Accessible) BeginEditing() {
	if a.editing || a.controller.IsDragging() {
		return
	}
	a.editing = true
	a.controller.beginEditing()
}

// EndEditing 结束连续调整
func (a *Accessible) EndEditing() {
	if !a.editing {
		return
	}
	a.editing = false
	a.controller.endEditing()
}

// Description 供辅助技术朗读的描述，例如 "Volume: 75%"
func (a *Accessible) Description() string {
	percent := int(math.Round(a.controller.Percentage() * 100))
	if a.controller.Label() == "" {
		return fmt.Sprintf("%d%%", percent)
	}
	return fmt.Sprintf("%s: %d%%", a.controller.Label(), percent)
}
