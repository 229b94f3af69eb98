// Package utils 提供通用工具函数
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// PointerSample 一帧的指针采样
// 同时支持鼠标和触摸输入，触摸优先
type PointerSample struct {
	// Pressed 是否有指针按下（鼠标左键或触摸）
	Pressed bool
	// X, Y 指针位置（屏幕坐标）
	X, Y int
	// TouchID 触摸ID，鼠标输入时为 -1
	TouchID ebiten.TouchID
	// IsTouch 是否为触摸输入
	IsTouch bool
	// Focused 窗口是否拥有焦点
	Focused bool
}

// SamplePointer 读取当前帧的指针状态
func SamplePointer() PointerSample {
	sample := PointerSample{
		TouchID: -1,
		Focused: ebiten.IsFocused(),
	}

	// 首先检查触摸输入（移动设备）
	touchIDs := ebiten.AppendTouchIDs(nil)
	if len(touchIDs) > 0 {
		sample.Pressed = true
		sample.IsTouch = true
		sample.TouchID = touchIDs[0]
		sample.X, sample.Y = ebiten.TouchPosition(touchIDs[0])
		return sample
	}

	// 其次检查鼠标输入（桌面设备）
	sample.X, sample.Y = ebiten.CursorPosition()
	sample.Pressed = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	return sample
}

// ============================================================================
// 拖拽状态管理器 - 把逐帧采样转换为 按下/移动/释放/取消 事件
// ============================================================================

// DragState 拖拽状态
type DragState int

const (
	// DragStateNone 无拖拽
	DragStateNone DragState = iota
	// DragStateStarted 拖拽开始（刚按下）
	DragStateStarted
	// DragStateDragging 拖拽中（按住移动）
	DragStateDragging
	// DragStateEnded 拖拽结束（释放）
	DragStateEnded
	// DragStateCancelled 拖拽被中断（触摸丢失或窗口失焦），没有正常释放
	DragStateCancelled
)

func (s DragState) String() string {
	switch s {
	case DragStateNone:
		return "none"
	case DragStateStarted:
		return "started"
	case DragStateDragging:
		return "dragging"
	case DragStateEnded:
		return "ended"
	case DragStateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// DragInfo 拖拽信息
type DragInfo struct {
	// State 当前拖拽状态
	State DragState
	// StartX, StartY 拖拽起始位置（屏幕坐标）
	StartX, StartY int
	// CurrentX, CurrentY 当前位置（屏幕坐标）
	CurrentX, CurrentY int
	// TouchID 当前跟踪的触摸ID（-1表示鼠标）
	TouchID ebiten.TouchID
	// IsTouchInput 是否为触摸输入（区分触摸和鼠标）
	IsTouchInput bool
	// Moved 本帧位置是否发生变化
	Moved bool
}

// DragManager 拖拽管理器
// 跟踪单个指针的拖拽状态，每帧调用一次 Update
type DragManager struct {
	info DragInfo
}

// NewDragManager 创建拖拽管理器
func NewDragManager() *DragManager {
	dm := &DragManager{}
	dm.Reset()
	return dm
}

// Update 根据本帧采样更新拖拽状态
func (dm *DragManager) Update(sample PointerSample) {
	switch dm.info.State {
	case DragStateEnded, DragStateCancelled:
		// 结束状态只持续一帧，下一帧重置后按空闲处理
		dm.Reset()
		dm.checkDragStart(sample)

	case DragStateNone:
		dm.checkDragStart(sample)

	case DragStateStarted, DragStateDragging:
		dm.info.Moved = false
		if dm.checkDragCancel(sample) {
			dm.info.State = DragStateCancelled
			return
		}
		if !sample.Pressed {
			// 鼠标释放时光标仍然有效；触摸释放后位置不可用，保留最后一次位置
			if !dm.info.IsTouchInput {
				dm.updateCurrentPosition(sample)
			}
			dm.info.State = DragStateEnded
			return
		}
		dm.info.State = DragStateDragging
		dm.updateCurrentPosition(sample)
	}
}

// checkDragStart 检测拖拽开始
func (dm *DragManager) checkDragStart(sample PointerSample) {
	if !sample.Pressed || !sample.Focused {
		return
	}
	dm.info = DragInfo{
		State:        DragStateStarted,
		StartX:       sample.X,
		StartY:       sample.Y,
		CurrentX:     sample.X,
		CurrentY:     sample.Y,
		TouchID:      sample.TouchID,
		IsTouchInput: sample.IsTouch,
	}
}

// checkDragCancel 检测拖拽是否被中断
func (dm *DragManager) checkDragCancel(sample PointerSample) bool {
	if !sample.Focused {
		return true
	}
	if !sample.Pressed {
		return false
	}
	// 输入来源切换（鼠标拖动中出现触摸，或触摸拖动中改为鼠标按下）
	if sample.IsTouch != dm.info.IsTouchInput {
		return true
	}
	// 跟踪的触摸消失，但还有其他触摸存在
	return dm.info.IsTouchInput && sample.TouchID != dm.info.TouchID
}

// updateCurrentPosition 更新当前位置
func (dm *DragManager) updateCurrentPosition(sample PointerSample) {
	if sample.X != dm.info.CurrentX || sample.Y != dm.info.CurrentY {
		dm.info.Moved = true
	}
	dm.info.CurrentX, dm.info.CurrentY = sample.X, sample.Y
}

// Reset 重置拖拽状态
func (dm *DragManager) Reset() {
	dm.info = DragInfo{
		State:   DragStateNone,
		TouchID: -1,
	}
}

// GetState 获取当前拖拽状态
func (dm *DragManager) GetState() DragState {
	return dm.info.State
}

// GetInfo 获取完整拖拽信息
func (dm *DragManager) GetInfo() DragInfo {
	return dm.info
}

// IsActive 是否处于按下中（开始或拖拽）
func (dm *DragManager) IsActive() bool {
	return dm.info.State == DragStateStarted || dm.info.State == DragStateDragging
}

// JustStarted 是否刚开始拖拽（本帧）
func (dm *DragManager) JustStarted() bool {
	return dm.info.State == DragStateStarted
}

// JustEnded 是否刚结束拖拽（本帧）
func (dm *DragManager) JustEnded() bool {
	return dm.info.State == DragStateEnded
}

// JustCancelled 是否刚被中断（本帧）
func (dm *DragManager) JustCancelled() bool {
	return dm.info.State == DragStateCancelled
}

// GetDragDistance 获取拖拽距离（从起点到当前位置）
func (dm *DragManager) GetDragDistance() (dx, dy int) {
	return dm.info.CurrentX - dm.info.StartX, dm.info.CurrentY - dm.info.StartY
}
