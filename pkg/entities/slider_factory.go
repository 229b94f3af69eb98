package entities

import (
	"fmt"

	"github.com/decker502/capslider/pkg/components"
	"github.com/decker502/capslider/pkg/config"
	"github.com/decker502/capslider/pkg/ecs"
	"github.com/decker502/capslider/pkg/slider"
	"github.com/decker502/capslider/pkg/utils"
)

// SliderCallbacks 滑动条实体的回调
type SliderCallbacks struct {
	// OnEditingChanged 开始/结束编辑时调用，id 为滑动条标识
	OnEditingChanged func(id string, editing bool)
	// OnExtremityChanged 到达/离开两端时调用
	OnExtremityChanged func(id string, atExtremity bool)
}

// NewSliderEntity 创建滑动条实体
//
// 参数：
//   - em: 实体管理器
//   - cfg: 滑动条配置
//   - anim: 过渡动画配置
//   - input: 输入配置（最小命中高度）
//   - binding: 调用方持有的数值通道
//   - callbacks: 回调，可为零值
//
// 返回：
//   - 滑动条实体ID
//   - 错误信息（配置不满足控制器的前置条件时）
func NewSliderEntity(
	em *ecs.EntityManager,
	cfg config.SliderConfig,
	anim config.AnimationConfig,
	input config.InputConfig,
	binding slider.Binding,
	callbacks SliderCallbacks,
) (ecs.EntityID, error) {
	seekEasing, err := utils.EasingByName(anim.SeekEasing)
	if err != nil {
		return 0, fmt.Errorf("slider %q: %w", cfg.ID, err)
	}
	expandEasing, err := utils.EasingByName(anim.ExpandEasing)
	if err != nil {
		return 0, fmt.Errorf("slider %q: %w", cfg.ID, err)
	}

	comp := &components.SliderComponent{
		ID:           cfg.ID,
		Width:        cfg.Width,
		MinHitHeight: input.MinHitHeight,
		ValueTween:   utils.NewTween(anim.SeekDuration().Seconds(), seekEasing),
		HeightTween:  utils.NewTween(anim.ExpandDuration().Seconds(), expandEasing),
	}

	opts := slider.Options{
		MaxValue:       cfg.MaxValue,
		BaseHeight:     cfg.BaseHeight,
		ExpandedHeight: cfg.ExpandedHeight,
		Label:          cfg.Label,
		Animator:       comp,
	}
	if callbacks.OnEditingChanged != nil {
		id := cfg.ID
		opts.OnEditingChanged = func(editing bool) {
			callbacks.OnEditingChanged(id, editing)
		}
	}
	if callbacks.OnExtremityChanged != nil {
		id := cfg.ID
		opts.OnExtremityChanged = func(atExtremity bool) {
			callbacks.OnExtremityChanged(id, atExtremity)
		}
	}

	controller, err := slider.New(binding, opts)
	if err != nil {
		return 0, fmt.Errorf("slider %q: %w", cfg.ID, err)
	}
	controller.OnTrackMeasured(cfg.Width)

	comp.Controller = controller
	comp.Accessible = slider.NewAccessible(controller, cfg.Step)
	comp.ValueTween.Jump(controller.Value())
	comp.HeightTween.Jump(controller.BaseHeight())

	entity := em.CreateEntity()

	// 添加位置组件
	ecs.AddComponent(em, entity, &components.PositionComponent{
		X: cfg.X,
		Y: cfg.Y,
	})

	// 添加滑动条组件
	ecs.AddComponent(em, entity, comp)

	return entity, nil
}
