package slider

// Binding 双向数值通道
// 滑动条通过它读取和写回调用方持有的数值
type Binding interface {
	Get() float64
	Set(value float64)
}

// ValueBinding 自持状态的 Binding 实现
// 数值变化时同步通知所有订阅者（单线程，在 Update 中调用）
type ValueBinding struct {
	value       float64
	nextID      int
	subscribers map[int]func(float64)
}

// NewValueBinding 创建带初始值的绑定
func NewValueBinding(initial float64) *ValueBinding {
	return &ValueBinding{
		value:       initial,
		subscribers: make(map[int]func(float64)),
	}
}

// Get 返回当前值
func (b *ValueBinding) Get() float64 {
	return b.value
}

// Set 写入新值，值未变化时不通知
func (b *ValueBinding) Set(value float64) {
	if value == b.value {
		return
	}
	b.value = value
	for _, fn := range b.subscribers {
		fn(value)
		// 回调中写入了新值，剩余订阅者已在那次 Set 中收到新值
		if b.value != value {
			return
		}
	}
}

// Subscribe 注册变化回调，返回取消函数
func (b *ValueBinding) Subscribe(fn func(float64)) (cancel func()) {
	id := b.nextID
	b.nextID++
	b.subscribers[id] = fn
	return func() {
		delete(b.subscribers, id)
	}
}
