package systems

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/capslider/pkg/components"
	"github.com/decker502/capslider/pkg/ecs"
)

// 按键重复参数（帧）
const (
	keyRepeatDelay    = 24
	keyRepeatInterval = 4
)

// SliderKeyInput 键盘输入接口
// 用于依赖注入，支持测试时 mock
type SliderKeyInput interface {
	// KeyPressDuration 按键已按下的帧数，未按下为 0
	KeyPressDuration(key ebiten.Key) int
}

// ebitenSliderKeyInput Ebitengine 默认实现
type ebitenSliderKeyInput struct{}

func (e *ebitenSliderKeyInput) KeyPressDuration(key ebiten.Key) int {
	return inpututil.KeyPressDuration(key)
}

var defaultSliderKeyInput SliderKeyInput = &ebitenSliderKeyInput{}

var (
	incrementKeys = []ebiten.Key{ebiten.KeyArrowRight, ebiten.KeyArrowUp}
	decrementKeys = []ebiten.Key{ebiten.KeyArrowLeft, ebiten.KeyArrowDown}
)

// SliderAccessibilitySystem 滑动条辅助功能系统
//
// 为每个滑动条提供与手势并行的键盘操作通道：
//   - Tab / Shift+Tab 切换焦点，Escape 清除焦点
//   - 方向键按步长增减（按住时自动重复，整个按住过程是一次编辑）
//   - Home / End 跳到最小值 / 最大值
//
// 所有调整都经由 slider.Accessible 作用于同一个控制器。
type SliderAccessibilitySystem struct {
	entityManager *ecs.EntityManager
	keyInput      SliderKeyInput
	focused       ecs.EntityID
	announce      func(message string)
}

// NewSliderAccessibilitySystem 创建辅助功能系统
func NewSliderAccessibilitySystem(em *ecs.EntityManager) *SliderAccessibilitySystem {
	return NewSliderAccessibilitySystemWithInput(em, defaultSliderKeyInput)
}

// NewSliderAccessibilitySystemWithInput 创建带自定义键盘输入的辅助功能系统（用于测试）
func NewSliderAccessibilitySystemWithInput(em *ecs.EntityManager, input SliderKeyInput) *SliderAccessibilitySystem {
	return &SliderAccessibilitySystem{
		entityManager: em,
		keyInput:      input,
	}
}

// SetAnnouncer 设置朗读回调（焦点切换和数值变化时调用）
func (s *SliderAccessibilitySystem) SetAnnouncer(announce func(message string)) {
	s.announce = announce
}

// Focused 当前拥有焦点的滑动条（0 表示无）
func (s *SliderAccessibilitySystem) Focused() ecs.EntityID {
	return s.focused
}

// Update 处理键盘输入
func (s *SliderAccessibilitySystem) Update(deltaTime float64) {
	entities := ecs.GetEntitiesWith1[*components.SliderComponent](s.entityManager)

	// 焦点实体被删除
	if s.focused != 0 && !ecs.HasComponent[*components.SliderComponent](s.entityManager, s.focused) {
		s.focused = 0
	}

	if s.justPressed(ebiten.KeyTab) {
		backward := s.keyInput.KeyPressDuration(ebiten.KeyShift) > 0
		s.moveFocus(entities, backward)
	}
	if s.justPressed(ebiten.KeyEscape) {
		s.setFocus(0)
	}

	for _, entityID := range entities {
		slider, _ := ecs.GetComponent[*components.SliderComponent](s.entityManager, entityID)
		slider.IsFocused = entityID == s.focused
	}

	if s.focused == 0 {
		return
	}
	slider, _ := ecs.GetComponent[*components.SliderComponent](s.entityManager, s.focused)
	s.handleAdjustKeys(slider)
}

// handleAdjustKeys 处理方向键与 Home/End
func (s *SliderAccessibilitySystem) handleAdjustKeys(slider *components.SliderComponent) {
	a := slider.Accessible
	before := a.Value()

	switch {
	case s.justPressed(ebiten.KeyHome):
		a.SetValue(0)
	case s.justPressed(ebiten.KeyEnd):
		_, hi := a.Range()
		a.SetValue(hi)
	}

	inc := s.repeated(incrementKeys)
	dec := s.repeated(decrementKeys)
	if inc || dec {
		a.BeginEditing()
		if inc {
			a.Increment()
		}
		if dec {
			a.Decrement()
		}
	}
	if a.IsEditing() && !s.anyPressed(incrementKeys) && !s.anyPressed(decrementKeys) {
		a.EndEditing()
	}

	if a.Value() != before {
		s.say(a.Description())
	}
}

// moveFocus 按创建顺序切换焦点
func (s *SliderAccessibilitySystem) moveFocus(entities []ecs.EntityID, backward bool) {
	if len(entities) == 0 {
		return
	}
	index := -1
	for i, id := range entities {
		if id == s.focused {
			index = i
			break
		}
	}

	var next int
	switch {
	case index < 0 && backward:
		next = len(entities) - 1
	case index < 0:
		next = 0
	case backward:
		next = (index - 1 + len(entities)) % len(entities)
	default:
		next = (index + 1) % len(entities)
	}
	s.setFocus(entities[next])
}

// setFocus 切换焦点，离开的滑动条结束进行中的编辑
func (s *SliderAccessibilitySystem) setFocus(id ecs.EntityID) {
	if id == s.focused {
		return
	}
	if prev, ok := ecs.GetComponent[*components.SliderComponent](s.entityManager, s.focused); ok {
		prev.Accessible.EndEditing()
		prev.IsFocused = false
	}
	s.focused = id
	if next, ok := ecs.GetComponent[*components.SliderComponent](s.entityManager, id); ok {
		next.IsFocused = true
		log.Printf("[Accessibility] Focus moved to %q", next.ID)
		s.say(next.Accessible.Description())
	}
}

func (s *SliderAccessibilitySystem) say(message string) {
	log.Printf("[Accessibility] %s", message)
	if s.announce != nil {
		s.announce(message)
	}
}

func (s *SliderAccessibilitySystem) justPressed(key ebiten.Key) bool {
	return s.keyInput.KeyPressDuration(key) == 1
}

// repeated 按下的第一帧触发，之后每隔 keyRepeatInterval 帧重复
func (s *SliderAccessibilitySystem) repeated(keys []ebiten.Key) bool {
	for _, key := range keys {
		d := s.keyInput.KeyPressDuration(key)
		if d == 1 || (d >= keyRepeatDelay && (d-keyRepeatDelay)%keyRepeatInterval == 0) {
			return true
		}
	}
	return false
}

func (s *SliderAccessibilitySystem) anyPressed(keys []ebiten.Key) bool {
	for _, key := range keys {
		if s.keyInput.KeyPressDuration(key) > 0 {
			return true
		}
	}
	return false
}
