package slider

import "testing"

func TestAccessible_DefaultStep(t *testing.T) {
	c, _, _ := newTestController(t, 50)
	a := NewAccessible(c, 0)
	if a.Step() != 10 {
		t.Errorf("Step = %v, want 10", a.Step())
	}
	if lo, hi := a.Range(); lo != 0 || hi != 100 {
		t.Errorf("Range = (%v, %v), want (0, 100)", lo, hi)
	}
}

func TestAccessible_IncrementDecrement(t *testing.T) {
	c, binding, events := newTestController(t, 50)
	a := NewAccessible(c, 25)

	if !a.Increment() {
		t.Fatal("Increment returned false")
	}
	if binding.Get() != 75 {
		t.Errorf("value = %v, want 75", binding.Get())
	}
	a.Increment()
	a.Increment()
	if binding.Get() != 100 || !c.AtExtremity() {
		t.Errorf("value = %v extremity = %v, want clamped to 100", binding.Get(), c.AtExtremity())
	}
	a.Decrement()
	if binding.Get() != 75 {
		t.Errorf("value = %v, want 75", binding.Get())
	}

	// 每次离散调整发出一对通知
	want := []bool{true, false, true, false, true, false, true, false}
	if len(*events) != len(want) {
		t.Fatalf("events = %v, want %v", *events, want)
	}
	for i := range want {
		if (*events)[i] != want[i] {
			t.Errorf("events[%d] = %v, want %v", i, (*events)[i], want[i])
		}
	}
}

func TestAccessible_EditingSession(t *testing.T) {
	c, binding, events := newTestController(t, 0)
	a := NewAccessible(c, 0)

	a.BeginEditing()
	a.BeginEditing()
	a.SetValue(30)
	a.SetValue(60)
	a.EndEditing()
	a.EndEditing()

	if binding.Get() != 60 {
		t.Errorf("value = %v, want 60", binding.Get())
	}
	if len(*events) != 2 || (*events)[0] != true || (*events)[1] != false {
		t.Errorf("events = %v, want [true false]", *events)
	}
	if a.IsEditing() {
		t.Error("IsEditing should be false after EndEditing")
	}
}

func TestAccessible_IgnoredWhileDragging(t *testing.T) {
	c, binding, _ := newTestController(t, 50)
	a := NewAccessible(c, 10)

	c.OnDragChanged(0, 100)
	if a.Increment() {
		t.Error("Increment should be rejected during a pointer drag")
	}
	a.BeginEditing()
	if a.IsEditing() {
		t.Error("BeginEditing should be ignored during a pointer drag")
	}
	if binding.Get() != 50 {
		t.Errorf("value = %v, want 50", binding.Get())
	}
}

func TestAccessible_Description(t *testing.T) {
	c, _, _ := newTestController(t, 75)
	if got := NewAccessible(c, 0).Description(); got != "Volume: 75%" {
		t.Errorf("Description = %q", got)
	}

	unlabeled, _ := New(NewValueBinding(1), Options{MaxValue: 3})
	if got := NewAccessible(unlabeled, 0).Description(); got != "33%" {
		t.Errorf("Description = %q, want 33%%", got)
	}
}

func TestAccessible_DragDuringEditingSessionKeepsNotificationsPaired(t *testing.T) {
	tests := []struct {
		name string
		run  func(c *Controller, a *Accessible)
	}{
		{"拖动在会话内结束", func(c *Controller, a *Accessible) {
			a.BeginEditing()
			c.OnDragChanged(0, 10)
			c.OnDragChanged(20, 30)
			c.OnDragEnded(20, 30)
			a.EndEditing()
		}},
		{"会话先于拖动结束", func(c *Controller, a *Accessible) {
			a.BeginEditing()
			c.OnDragChanged(0, 10)
			c.OnDragChanged(20, 30)
			a.EndEditing()
			c.OnDragEnded(20, 30)
		}},
		{"拖动被取消", func(c *Controller, a *Accessible) {
			a.BeginEditing()
			c.OnDragChanged(0, 10)
			c.OnDragChanged(20, 30)
			c.OnDragCancelled()
			a.EndEditing()
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, binding, events := newTestController(t, 50)
			a := NewAccessible(c, 10)

			tt.run(c, a)

			if len(*events) != 2 || !(*events)[0] || (*events)[1] {
				t.Errorf("events = %v, want [true false]", *events)
			}
			if binding.Get() != 60 {
				t.Errorf("value = %v, want 60 after a 20px drag on a 200px track", binding.Get())
			}
			if c.IsDragging() || a.IsEditing() {
				t.Errorf("dragging = %v editing = %v, want both false", c.IsDragging(), a.IsEditing())
			}

			// 之后的单次调整重新成对通知
			a.Increment()
			if len(*events) != 4 || !(*events)[2] || (*events)[3] {
				t.Errorf("events = %v, want a fresh [true false] pair", *events)
			}
		})
	}
}
