// Package slider 实现可展开胶囊滑动条的交互核心
//
// 本包只负责手势到数值的映射、展开状态以及渲染属性的计算，
// 不依赖任何渲染或输入框架。宿主（见 pkg/systems）负责：
//   - 上报轨道像素宽度（OnTrackMeasured）
//   - 将指针按下/移动/释放/取消事件转换为 OnDragChanged / OnDragEnded / OnDragCancelled
//   - 每帧读取 RenderAttributes() 进行绘制
//
// 所有方法都应在同一个 goroutine（Ebitengine 的 Update）中调用，内部不加锁。
package slider

import (
	"errors"
	"fmt"
	"math"
)

const (
	// DefaultBaseHeight 空闲时的轨道高度
	DefaultBaseHeight = 9.0
	// DefaultExpandedHeight 拖动时的轨道高度
	DefaultExpandedHeight = 20.0
	// DefaultTrackWidth 首次测量前的占位宽度，避免除以 0
	DefaultTrackWidth = 10.0

	innerCirclePaddingRatio = 0.15
	activeThumbBrightness   = 0.85
)

var (
	// ErrNilBinding 未提供数值绑定
	ErrNilBinding = errors.New("slider: nil binding")
	// ErrInvalidMaxValue maxValue 必须是大于 0 的有限数
	ErrInvalidMaxValue = errors.New("slider: max value must be a finite number greater than 0")
	// ErrInvalidHeight 轨道高度不能为负
	ErrInvalidHeight = errors.New("slider: heights must not be negative")
)

// Phase 手势状态机的状态
type Phase int

const (
	// PhaseIdle 空闲
	PhaseIdle Phase = iota
	// PhaseDragging 按下/拖动中
	PhaseDragging
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseDragging:
		return "dragging"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Animator 点击跳转时的平滑过渡由渲染方实现
// 控制器在写入目标值的同时调用 AnimateValue，自身的数值立即变为目标值
type Animator interface {
	AnimateValue(from, to float64)
}

// Options 滑动条构造参数
type Options struct {
	// MaxValue 数值上限，必须 > 0
	MaxValue float64
	// BaseHeight 空闲高度，0 表示使用 DefaultBaseHeight
	BaseHeight float64
	// ExpandedHeight 拖动高度，0 表示使用 DefaultExpandedHeight
	ExpandedHeight float64
	// Label 辅助功能名称
	Label string
	// OnEditingChanged 开始编辑时以 true 调用，结束时以 false 调用
	OnEditingChanged func(editing bool)
	// OnExtremityChanged 数值到达或离开两端时调用（可用于触感反馈）
	OnExtremityChanged func(atExtremity bool)
	// Animator 点击跳转的过渡实现，可为 nil（直接跳转）
	Animator Animator
}

// Attributes 渲染属性，RenderAttributes 的返回值
type Attributes struct {
	TrackHeight        float64
	ThumbWidth         float64
	ThumbOpacity       float64 // 拖动时内部高亮圆点的不透明度
	InnerCirclePadding float64
	ThumbBrightness    float64
}

// Controller 滑动条交互控制器
type Controller struct {
	binding            Binding
	maxValue           float64
	baseHeight         float64
	expandedHeight     float64
	label              string
	onEditingChanged   func(bool)
	onExtremityChanged func(bool)
	animator           Animator

	trackWidth     float64
	dragStartValue *float64
	// lastExtremity 最近一次通知的端点状态，仅用于触发 OnExtremityChanged
	lastExtremity bool
	// editDepth 进行中的编辑会话数（手势与辅助功能可以重叠）
	editDepth int
}

// New 创建控制器
//
// 参数：
//   - binding: 调用方持有的数值通道
//   - opts: 构造参数
//
// 返回：
//   - *Controller: 控制器实例
//   - error: 前置条件不满足时返回 ErrNilBinding / ErrInvalidMaxValue / ErrInvalidHeight
func New(binding Binding, opts Options) (*Controller, error) {
	if binding == nil {
		return nil, ErrNilBinding
	}
	if opts.MaxValue <= 0 || math.IsNaN(opts.MaxValue) || math.IsInf(opts.MaxValue, 0) {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidMaxValue, opts.MaxValue)
	}
	if opts.BaseHeight < 0 || opts.ExpandedHeight < 0 {
		return nil, fmt.Errorf("%w: base=%v expanded=%v", ErrInvalidHeight, opts.BaseHeight, opts.ExpandedHeight)
	}

	c := &Controller{
		binding:            binding,
		maxValue:           opts.MaxValue,
		baseHeight:         opts.BaseHeight,
		expandedHeight:     opts.ExpandedHeight,
		label:              opts.Label,
		onEditingChanged:   opts.OnEditingChanged,
		onExtremityChanged: opts.OnExtremityChanged,
		animator:           opts.Animator,
		trackWidth:         DefaultTrackWidth,
	}
	if c.baseHeight == 0 {
		c.baseHeight = DefaultBaseHeight
	}
	if c.expandedHeight == 0 {
		c.expandedHeight = DefaultExpandedHeight
	}

	// 初始值越界时收回到合法范围
	initial := binding.Get()
	if math.IsNaN(initial) {
		initial = 0
	}
	clamped := clamp01(initial/c.maxValue) * c.maxValue
	if clamped != binding.Get() {
		binding.Set(clamped)
	}
	c.lastExtremity = c.isExtremity(clamped)

	// 调用方直接写入绑定时同样收回数值并更新端点状态
	if vb, ok := binding.(*ValueBinding); ok {
		vb.Subscribe(c.onBindingChanged)
	}

	return c, nil
}

// OnTrackMeasured 记录轨道的像素宽度
// 非正数或 NaN 被忽略，保留上一次的有效宽度
func (c *Controller) OnTrackMeasured(widthPx float64) {
	if widthPx <= 0 || math.IsNaN(widthPx) || math.IsInf(widthPx, 0) {
		return
	}
	c.trackWidth = widthPx
}

// OnDragChanged 处理一次移动样本
//
// translationX 为自按下以来的水平位移，locationX 为指针相对轨道左端的位置。
// 新交互的第一个样本会记录起始值并发出开始编辑通知。
func (c *Controller) OnDragChanged(translationX, locationX float64) {
	if c.dragStartValue == nil {
		start := c.Value()
		c.dragStartValue = &start
		c.beginEditing()
	}
	if math.IsNaN(translationX) {
		return
	}

	percentageDelta := translationX / c.trackWidth
	initialPercentage := *c.dragStartValue / c.maxValue
	newPercentage := clamp01(initialPercentage + percentageDelta)
	c.write(newPercentage * c.maxValue)
}

// OnDragEnded 处理释放事件
//
// 整个手势的水平位移恰好为 0 时视为点击，数值跳转到 locationX 对应的位置；
// 任何非零位移都视为拖动，数值保持拖动计算的结果。
func (c *Controller) OnDragEnded(translationX, locationX float64) {
	if c.dragStartValue == nil {
		// 没有移动样本的点击，补发开始通知保证通知成对
		c.beginEditing()
	}
	if translationX == 0 {
		c.seek(locationX)
	}
	c.finish()
}

// OnDragCancelled 宿主取消了进行中的手势（触摸丢失、窗口失焦等）
// 结束交互并回到 Idle，数值停留在拖动的位置，不做点击跳转。空闲时无操作。
// 与以最后位移调用 OnDragEnded 不同：按下后未移动就被取消时也不会跳转到按下位置。
func (c *Controller) OnDragCancelled() {
	if c.dragStartValue == nil {
		return
	}
	c.finish()
}

// SetValue 以编程方式写入数值，自动收回到 [0, maxValue]
func (c *Controller) SetValue(value float64) {
	if math.IsNaN(value) {
		return
	}
	c.write(clamp01(value/c.maxValue) * c.maxValue)
}

// RenderAttributes 基于当前状态计算渲染属性，无副作用
func (c *Controller) RenderAttributes() Attributes {
	return c.RenderAttributesFor(c.Value())
}

// RenderAttributesFor 以指定数值计算渲染属性
// 渲染方在过渡动画期间用显示值代替真实值
func (c *Controller) RenderAttributesFor(value float64) Attributes {
	attrs := Attributes{
		TrackHeight:        c.baseHeight,
		InnerCirclePadding: c.expandedHeight * innerCirclePaddingRatio,
		ThumbBrightness:    1.0,
	}
	if c.IsDragging() {
		attrs.TrackHeight = c.expandedHeight
		attrs.ThumbOpacity = 1.0
		attrs.ThumbBrightness = activeThumbBrightness
	}
	// 滑块不小于轨道高度，避免在低值时缩成一个点
	attrs.ThumbWidth = math.Max(attrs.TrackHeight, (value/c.maxValue)*c.trackWidth)
	return attrs
}

// Value 当前数值
func (c *Controller) Value() float64 { return c.binding.Get() }

// MaxValue 数值上限
func (c *Controller) MaxValue() float64 { return c.maxValue }

// Percentage 当前数值占上限的比例
func (c *Controller) Percentage() float64 { return c.Value() / c.maxValue }

// TrackWidth 最近一次测量的轨道宽度
func (c *Controller) TrackWidth() float64 { return c.trackWidth }

// Label 辅助功能名称
func (c *Controller) Label() string { return c.label }

// BaseHeight 空闲高度
func (c *Controller) BaseHeight() float64 { return c.baseHeight }

// ExpandedHeight 拖动高度
func (c *Controller) ExpandedHeight() float64 { return c.expandedHeight }

// IsDragging 是否处于拖动中
func (c *Controller) IsDragging() bool { return c.dragStartValue != nil }

// AtExtremity 数值是否恰好位于 0 或 maxValue
func (c *Controller) AtExtremity() bool { return c.isExtremity(c.Value()) }

// Phase 当前状态机状态
func (c *Controller) Phase() Phase {
	if c.IsDragging() {
		return PhaseDragging
	}
	return PhaseIdle
}

func (c *Controller) seek(locationX float64) {
	if math.IsNaN(locationX) {
		return
	}
	from := c.Value()
	to := clamp01(locationX/c.trackWidth) * c.maxValue
	c.write(to)
	if c.animator != nil && from != to {
		c.animator.AnimateValue(from, to)
	}
}

func (c *Controller) finish() {
	c.dragStartValue = nil
	c.endEditing()
}

func (c *Controller) write(value float64) {
	c.binding.Set(value)
	c.syncExtremity(value)
}

// onBindingChanged 绑定被外部写入
func (c *Controller) onBindingChanged(value float64) {
	if math.IsNaN(value) {
		c.binding.Set(0)
		return
	}
	if clamped := clamp01(value/c.maxValue) * c.maxValue; clamped != value {
		c.binding.Set(clamped)
		return
	}
	c.syncExtremity(value)
}

func (c *Controller) isExtremity(value float64) bool {
	return value == 0 || value == c.maxValue
}

// syncExtremity 端点状态变化时触发回调
func (c *Controller) syncExtremity(value float64) {
	atExtremity := c.isExtremity(value)
	if atExtremity == c.lastExtremity {
		return
	}
	c.lastExtremity = atExtremity
	if c.onExtremityChanged != nil {
		c.onExtremityChanged(atExtremity)
	}
}

// beginEditing 打开一个编辑会话，只有最外层会话发出 true
func (c *Controller) beginEditing() {
	c.editDepth++
	if c.editDepth == 1 && c.onEditingChanged != nil {
		c.onEditingChanged(true)
	}
}

// endEditing 关闭一个编辑会话，只有最外层会话发出 false
func (c *Controller) endEditing() {
	if c.editDepth == 0 {
		return
	}
	c.editDepth--
	if c.editDepth == 0 && c.onEditingChanged != nil {
		c.onEditingChanged(false)
	}
}

func clamp01(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
