package utils

// Tween 显式的数值过渡
//
// 由渲染方在需要平滑变化的时刻主动启动（例如点击跳转、轨道展开），
// 每帧调用 Update 推进，通过 Value 读取当前插值结果。
type Tween struct {
	from, to float64
	duration float64 // 秒
	elapsed  float64
	easing   EasingFunc
	active   bool
}

// NewTween 创建过渡，duration 单位为秒，easing 为 nil 时使用线性缓动
func NewTween(duration float64, easing EasingFunc) *Tween {
	if easing == nil {
		easing = EaseLinear
	}
	return &Tween{duration: duration, easing: easing}
}

// Start 从 from 过渡到 to
// duration <= 0 时直接到达终点
func (tw *Tween) Start(from, to float64) {
	tw.from = from
	tw.to = to
	tw.elapsed = 0
	tw.active = tw.duration > 0 && from != to
}

// Retarget 从当前显示值过渡到新的目标值，目标未变时不重新开始
func (tw *Tween) Retarget(to float64) {
	if to == tw.to {
		return
	}
	tw.Start(tw.Value(), to)
}

// Jump 立即停在指定值
func (tw *Tween) Jump(value float64) {
	tw.from = value
	tw.to = value
	tw.elapsed = 0
	tw.active = false
}

// Stop 结束过渡，停在终点
func (tw *Tween) Stop() {
	tw.active = false
}

// Update 推进 dt 秒
func (tw *Tween) Update(dt float64) {
	if !tw.active {
		return
	}
	tw.elapsed += dt
	if tw.elapsed >= tw.duration {
		tw.elapsed = tw.duration
		tw.active = false
	}
}

// Value 当前插值结果
func (tw *Tween) Value() float64 {
	if !tw.active {
		return tw.to
	}
	progress := tw.elapsed / tw.duration
	return Lerp(tw.from, tw.to, tw.easing(progress))
}

// Target 过渡的终点
func (tw *Tween) Target() float64 {
	return tw.to
}

// Active 过渡是否进行中
func (tw *Tween) Active() bool {
	return tw.active
}
