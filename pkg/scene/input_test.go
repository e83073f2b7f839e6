package scene

import (
	"testing"

	"github.com/taigrr/tumble/pkg/math3d"
)

func TestMoveVector(t *testing.T) {
	tests := []struct {
		name string
		keys []string
		want math3d.Vec3
	}{
		{"none", nil, math3d.Vec3{}},
		{"forward", []string{KeyForward}, math3d.V3(0, 0, 1)},
		{"back", []string{KeyBack}, math3d.V3(0, 0, -1)},
		{"strafe", []string{KeyLeft}, math3d.V3(-1, 0, 0)},
		{"opposed cancel", []string{KeyLeft, KeyRight}, math3d.Vec3{}},
		{"up and forward", []string{KeyUp, KeyForward}, math3d.V3(0, 1, 1)},
		{"down", []string{KeyDown}, math3d.V3(0, -1, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := NewInput()
			for _, k := range tt.keys {
				in.SetKey(k, true)
			}
			if got := in.MoveVector(); got != tt.want {
				t.Errorf("MoveVector() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPressForExpires(t *testing.T) {
	in := NewInput()
	in.PressFor(KeyForward, 2)
	if !in.KeyDown(KeyForward) {
		t.Fatal("key not down after PressFor")
	}
	in.Advance()
	if !in.KeyDown(KeyForward) {
		t.Fatal("key released after one tick")
	}
	in.Advance()
	if in.KeyDown(KeyForward) {
		t.Error("key still down after its ticks ran out")
	}
}

func TestPressForDoesNotShortenHeldKey(t *testing.T) {
	in := NewInput()
	in.SetKey(KeyUp, true)
	in.PressFor(KeyUp, 1)
	for range 5 {
		in.Advance()
	}
	if !in.KeyDown(KeyUp) {
		t.Error("held key was released by PressFor")
	}
	in.SetKey(KeyUp, false)
	if in.KeyDown(KeyUp) {
		t.Error("key still down after release")
	}
}

func TestDragAccumulates(t *testing.T) {
	in := NewInput()
	in.PointerMove(50, 50) // not dragging yet
	in.PointerDown(10, 10)
	in.PointerMove(15, 12)
	in.PointerMove(20, 8)
	in.PointerUp()
	in.PointerMove(100, 100)

	dx, dy := in.TakeDrag()
	if dx != 10 || dy != -2 {
		t.Errorf("drag = (%v, %v), want (10, -2)", dx, dy)
	}
	if dx, dy := in.TakeDrag(); dx != 0 || dy != 0 {
		t.Errorf("second TakeDrag = (%v, %v), want zero", dx, dy)
	}
}

func TestReleaseAll(t *testing.T) {
	in := NewInput()
	in.SetKey(KeyForward, true)
	in.PressFor(KeyLeft, 10)
	in.PointerDown(0, 0)
	in.ReleaseAll()
	if in.KeyDown(KeyForward) || in.KeyDown(KeyLeft) || in.Dragging() {
		t.Error("ReleaseAll left input active")
	}
}
