package utils

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func mouse(pressed bool, x, y int) PointerSample {
	return PointerSample{Pressed: pressed, X: x, Y: y, TouchID: -1, Focused: true}
}

func touch(id ebiten.TouchID, x, y int) PointerSample {
	return PointerSample{Pressed: true, X: x, Y: y, TouchID: id, IsTouch: true, Focused: true}
}

func TestDragManagerInitialState(t *testing.T) {
	dm := NewDragManager()

	if dm.GetState() != DragStateNone {
		t.Errorf("Expected initial state to be DragStateNone, got %v", dm.GetState())
	}
	if dm.IsActive() || dm.JustStarted() || dm.JustEnded() || dm.JustCancelled() {
		t.Error("Expected no drag activity initially")
	}
	if dm.GetInfo().TouchID != -1 {
		t.Errorf("Expected TouchID -1, got %d", dm.GetInfo().TouchID)
	}
}

func TestDragManagerMouseLifecycle(t *testing.T) {
	dm := NewDragManager()

	dm.Update(mouse(true, 100, 50))
	if !dm.JustStarted() {
		t.Fatalf("Expected started, got %v", dm.GetState())
	}

	dm.Update(mouse(true, 130, 52))
	if dm.GetState() != DragStateDragging {
		t.Fatalf("Expected dragging, got %v", dm.GetState())
	}
	if !dm.GetInfo().Moved {
		t.Error("Expected Moved after position change")
	}
	if dx, dy := dm.GetDragDistance(); dx != 30 || dy != 2 {
		t.Errorf("Expected distance (30, 2), got (%d, %d)", dx, dy)
	}

	dm.Update(mouse(true, 130, 52))
	if dm.GetInfo().Moved {
		t.Error("Expected Moved to be false without movement")
	}

	dm.Update(mouse(false, 140, 52))
	if !dm.JustEnded() {
		t.Fatalf("Expected ended, got %v", dm.GetState())
	}
	if dx, _ := dm.GetDragDistance(); dx != 40 {
		t.Errorf("Expected release position to be used, dx=%d", dx)
	}

	dm.Update(mouse(false, 140, 52))
	if dm.GetState() != DragStateNone {
		t.Errorf("Expected none one frame after end, got %v", dm.GetState())
	}
}

func TestDragManagerQuickTap(t *testing.T) {
	dm := NewDragManager()

	dm.Update(mouse(true, 10, 10))
	dm.Update(mouse(false, 10, 10))

	if !dm.JustEnded() {
		t.Fatalf("Expected ended, got %v", dm.GetState())
	}
	if dx, dy := dm.GetDragDistance(); dx != 0 || dy != 0 {
		t.Errorf("Expected zero distance for a tap, got (%d, %d)", dx, dy)
	}
}

func TestDragManagerTouchReleaseKeepsLastPosition(t *testing.T) {
	dm := NewDragManager()

	dm.Update(touch(3, 200, 100))
	dm.Update(touch(3, 180, 100))
	// 触摸释放后没有触摸点，采样回落到鼠标位置 (0, 0)
	dm.Update(mouse(false, 0, 0))

	if !dm.JustEnded() {
		t.Fatalf("Expected ended, got %v", dm.GetState())
	}
	info := dm.GetInfo()
	if info.CurrentX != 180 || !info.IsTouchInput {
		t.Errorf("Expected last touch position 180, got %d (touch=%v)", info.CurrentX, info.IsTouchInput)
	}
}

func TestDragManagerCancellation(t *testing.T) {
	tests := []struct {
		name   string
		start  PointerSample
		second PointerSample
	}{
		{
			name:   "窗口失焦",
			start:  mouse(true, 10, 10),
			second: PointerSample{Pressed: true, X: 20, Y: 10, TouchID: -1, Focused: false},
		},
		{
			name:   "跟踪的触摸消失",
			start:  touch(1, 10, 10),
			second: touch(2, 50, 10),
		},
		{
			name:   "鼠标拖动中出现触摸",
			start:  mouse(true, 10, 10),
			second: touch(1, 300, 40),
		},
		{
			name:   "触摸拖动中改为鼠标按下",
			start:  touch(1, 10, 10),
			second: mouse(true, 300, 40),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dm := NewDragManager()
			dm.Update(tt.start)
			dm.Update(tt.second)
			if !dm.JustCancelled() {
				t.Errorf("Expected cancelled, got %v", dm.GetState())
			}
			// 位置停留在中断前，不跳到新指针
			if info := dm.GetInfo(); info.CurrentX != tt.start.X || info.CurrentY != tt.start.Y {
				t.Errorf("Expected position (%d, %d), got (%d, %d)", tt.start.X, tt.start.Y, info.CurrentX, info.CurrentY)
			}
		})
	}
}

func TestDragManagerIgnoresPressWithoutFocus(t *testing.T) {
	dm := NewDragManager()
	dm.Update(PointerSample{Pressed: true, TouchID: -1, Focused: false})

	if dm.GetState() != DragStateNone {
		t.Errorf("Expected none, got %v", dm.GetState())
	}
}

func TestDragStateString(t *testing.T) {
	if DragStateCancelled.String() != "cancelled" || DragState(42).String() != "unknown" {
		t.Errorf("unexpected names: %v %v", DragStateCancelled, DragState(42))
	}
}
