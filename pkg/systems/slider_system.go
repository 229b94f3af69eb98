package systems

import (
	"log"
	"math"

	"github.com/decker502/capslider/pkg/components"
	"github.com/decker502/capslider/pkg/ecs"
	"github.com/decker502/capslider/pkg/utils"
)

// SliderPointerInput 滑块系统指针输入接口
// 用于依赖注入，支持测试时 mock
type SliderPointerInput interface {
	Sample() utils.PointerSample
}

// ebitenSliderPointerInput Ebitengine 默认实现
type ebitenSliderPointerInput struct{}

func (e *ebitenSliderPointerInput) Sample() utils.PointerSample {
	// 使用支持触摸的指针采样
	return utils.SamplePointer()
}

// defaultSliderPointerInput 默认指针输入实例
var defaultSliderPointerInput SliderPointerInput = &ebitenSliderPointerInput{}

// SliderSystem 滑块交互系统
// 负责把指针输入转换为滑动条控制器的手势事件
//
// 职责：
//   - 作为几何提供方，每帧上报轨道宽度
//   - 检测按下位置是否落在某个滑动条的命中区域内，并捕获该滑动条
//   - 按下/移动时调用 OnDragChanged，释放时调用 OnDragEnded，中断时调用 OnDragCancelled
//   - 推进展开高度与点击跳转的视觉过渡
type SliderSystem struct {
	entityManager *ecs.EntityManager
	pointerInput  SliderPointerInput
	dragManager   *utils.DragManager

	// activeEntity 当前捕获指针的滑动条，0 表示无
	activeEntity ecs.EntityID
}

// NewSliderSystem 创建滑块交互系统
func NewSliderSystem(em *ecs.EntityManager) *SliderSystem {
	return NewSliderSystemWithInput(em, defaultSliderPointerInput)
}

// NewSliderSystemWithInput 创建带自定义指针输入的滑块交互系统（用于测试）
func NewSliderSystemWithInput(em *ecs.EntityManager, input SliderPointerInput) *SliderSystem {
	return &SliderSystem{
		entityManager: em,
		pointerInput:  input,
		dragManager:   utils.NewDragManager(),
	}
}

// ActiveEntity 返回当前正在拖动的滑动条实体（0 表示无）
func (s *SliderSystem) ActiveEntity() ecs.EntityID {
	return s.activeEntity
}

// Update 更新滑块交互状态
func (s *SliderSystem) Update(deltaTime float64) {
	sample := s.pointerInput.Sample()
	s.dragManager.Update(sample)

	entities := ecs.GetEntitiesWith2[*components.SliderComponent, *components.PositionComponent](s.entityManager)

	// 上报轨道宽度（布局可能随时变化）
	for _, entityID := range entities {
		slider, _ := ecs.GetComponent[*components.SliderComponent](s.entityManager, entityID)
		slider.Controller.OnTrackMeasured(slider.Width)
	}

	s.handleDrag(entities)

	for _, entityID := range entities {
		slider, _ := ecs.GetComponent[*components.SliderComponent](s.entityManager, entityID)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, entityID)

		// 更新悬停状态（拖动中只有被捕获的滑动条保持高亮）
		if s.activeEntity != 0 {
			slider.IsHovered = entityID == s.activeEntity
		} else {
			slider.IsHovered = s.isPointerInSlider(float64(sample.X), float64(sample.Y), slider, pos)
		}

		// 推进视觉过渡
		if slider.HeightTween != nil {
			slider.HeightTween.Retarget(slider.Controller.RenderAttributes().TrackHeight)
			slider.HeightTween.Update(deltaTime)
		}
		if slider.ValueTween != nil {
			slider.ValueTween.Update(deltaTime)
		}
	}
}

// handleDrag 根据拖拽状态分发手势事件
func (s *SliderSystem) handleDrag(entities []ecs.EntityID) {
	info := s.dragManager.GetInfo()

	switch {
	case s.dragManager.JustStarted():
		entityID, slider, pos := s.findSliderAt(entities, float64(info.StartX), float64(info.StartY))
		if slider == nil {
			return
		}
		s.activeEntity = entityID
		if slider.ValueTween != nil {
			slider.ValueTween.Stop()
		}
		// 按下即视为第一个移动样本，轨道立即展开
		slider.Controller.OnDragChanged(0, float64(info.StartX)-pos.X)
		log.Printf("[SliderSystem] Drag started on %q at value %.2f", slider.ID, slider.Controller.Value())
		return
	}

	if s.activeEntity == 0 {
		return
	}

	slider, ok := ecs.GetComponent[*components.SliderComponent](s.entityManager, s.activeEntity)
	pos, okPos := ecs.GetComponent[*components.PositionComponent](s.entityManager, s.activeEntity)
	if !ok || !okPos {
		// 被捕获的滑动条已被删除
		s.activeEntity = 0
		return
	}

	dx, _ := s.dragManager.GetDragDistance()
	translationX := float64(dx)
	locationX := float64(info.CurrentX) - pos.X

	switch s.dragManager.GetState() {
	case utils.DragStateDragging:
		if info.Moved {
			slider.Controller.OnDragChanged(translationX, locationX)
		}

	case utils.DragStateEnded:
		slider.Controller.OnDragEnded(translationX, locationX)
		log.Printf("[SliderSystem] Drag ended on %q (translation %.0f) value %.2f",
			slider.ID, translationX, slider.Controller.Value())
		s.activeEntity = 0

	case utils.DragStateCancelled:
		slider.Controller.OnDragCancelled()
		log.Printf("[SliderSystem] Drag cancelled on %q, value %.2f", slider.ID, slider.Controller.Value())
		s.activeEntity = 0
	}
}

// findSliderAt 查找命中区域包含指定点的滑动条
// 后创建的滑动条绘制在上层，因此逆序查找
func (s *SliderSystem) findSliderAt(entities []ecs.EntityID, x, y float64) (ecs.EntityID, *components.SliderComponent, *components.PositionComponent) {
	for i := len(entities) - 1; i >= 0; i-- {
		slider, _ := ecs.GetComponent[*components.SliderComponent](s.entityManager, entities[i])
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, entities[i])
		if s.isPointerInSlider(x, y, slider, pos) {
			return entities[i], slider, pos
		}
	}
	return 0, nil, nil
}

// isPointerInSlider 检测指针是否在滑动条的命中区域内
// 命中区域水平方向覆盖整条轨道，垂直方向以轨道中心为准、高度不小于 MinHitHeight
func (s *SliderSystem) isPointerInSlider(x, y float64, slider *components.SliderComponent, pos *components.PositionComponent) bool {
	halfHeight := slider.HitHeight() / 2
	return x >= pos.X &&
		x <= pos.X+slider.Width &&
		math.Abs(y-pos.Y) <= halfHeight
}
