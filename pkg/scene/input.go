package scene

import (
	"github.com/taigrr/tumble/pkg/math3d"
)

// Logical key names polled by the frame pipeline. Hosts translate their
// own key events to these.
const (
	KeyForward = "w"
	KeyBack    = "s"
	KeyLeft    = "a"
	KeyRight   = "d"
	KeyUp      = " "
	KeyDown    = "Shift"
)

// held marks a key that stays down until released.
const held = -1

// Input is the polled input state: which keys are down and how far the
// pointer has been dragged since the last tick. It is owned by the tick
// goroutine; hosts feed it from the same goroutine.
type Input struct {
	keys map[string]int // held, or ticks left for keys without release events

	dragging     bool
	lastX, lastY float64
	dx, dy       float64
}

// NewInput creates an empty input state.
func NewInput() *Input {
	return &Input{keys: make(map[string]int)}
}

// SetKey records a key press or release.
func (in *Input) SetKey(name string, down bool) {
	if down {
		in.keys[name] = held
	} else {
		delete(in.keys, name)
	}
}

// PressFor marks a key as down for the next ticks ticks. Terminals that
// only report presses use it with auto-repeat refreshing the deadline.
func (in *Input) PressFor(name string, ticks int) {
	if cur, ok := in.keys[name]; ok && cur == held {
		return
	}
	in.keys[name] = max(ticks, 1)
}

// KeyDown reports whether a key is currently down.
func (in *Input) KeyDown(name string) bool {
	_, ok := in.keys[name]
	return ok
}

// ReleaseAll clears every key, e.g. when the window loses focus.
func (in *Input) ReleaseAll() {
	clear(in.keys)
	in.dragging = false
}

// Advance ages keys set with PressFor. Called once per tick.
func (in *Input) Advance() {
	for k, left := range in.keys {
		if left == held {
			continue
		}
		if left <= 1 {
			delete(in.keys, k)
		} else {
			in.keys[k] = left - 1
		}
	}
}

// PointerDown starts a drag at (x, y).
func (in *Input) PointerDown(x, y float64) {
	in.dragging = true
	in.lastX, in.lastY = x, y
}

// PointerMove accumulates the drag delta if a drag is in progress.
func (in *Input) PointerMove(x, y float64) {
	if !in.dragging {
		return
	}
	in.dx += x - in.lastX
	in.dy += y - in.lastY
	in.lastX, in.lastY = x, y
}

// PointerUp ends the drag.
func (in *Input) PointerUp() {
	in.dragging = false
}

// Dragging reports whether a drag is in progress.
func (in *Input) Dragging() bool {
	return in.dragging
}

// AddDrag adds a raw drag delta, for hosts that report relative motion.
func (in *Input) AddDrag(dx, dy float64) {
	in.dx += dx
	in.dy += dy
}

// TakeDrag returns and clears the accumulated drag delta.
func (in *Input) TakeDrag() (dx, dy float64) {
	dx, dy = in.dx, in.dy
	in.dx, in.dy = 0, 0
	return dx, dy
}

// MoveVector returns the camera-relative step requested by the movement
// keys, one unit per axis: +Z forward, +X right, +Y up.
func (in *Input) MoveVector() math3d.Vec3 {
	var mv math3d.Vec3
	if in.KeyDown(KeyForward) {
		mv.Z++
	}
	if in.KeyDown(KeyBack) {
		mv.Z--
	}
	if in.KeyDown(KeyLeft) {
		mv.X--
	}
	if in.KeyDown(KeyRight) {
		mv.X++
	}
	if in.KeyDown(KeyUp) {
		mv.Y++
	}
	if in.KeyDown(KeyDown) {
		mv.Y--
	}
	return mv
}
