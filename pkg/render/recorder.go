package render

import (
	"slices"

	"github.com/taigrr/tumble/pkg/math3d"
)

// CallKind identifies a recorded backend call.
type CallKind int

const (
	CallBackground CallKind = iota
	CallFill
	CallStroke
	CallWarp
)

func (k CallKind) String() string {
	switch k {
	case CallBackground:
		return "background"
	case CallFill:
		return "fill"
	case CallStroke:
		return "stroke"
	case CallWarp:
		return "warp"
	default:
		return "unknown"
	}
}

// Call is one recorded drawing operation.
type Call struct {
	Kind      CallKind
	Points    []math3d.Vec2
	Color     Color
	Texture   *Texture
	Transform math3d.Affine2
}

// Recorder is a Backend that records calls instead of drawing. It is used
// in tests and for headless frame inspection.
type Recorder struct {
	Calls []Call
}

// Reset discards recorded calls.
func (r *Recorder) Reset() {
	r.Calls = r.Calls[:0]
}

// Count returns the number of recorded calls of kind k.
func (r *Recorder) Count(k CallKind) int {
	n := 0
	for _, c := range r.Calls {
		if c.Kind == k {
			n++
		}
	}
	return n
}

func (r *Recorder) FillBackground(c Color) {
	r.Calls = append(r.Calls, Call{Kind: CallBackground, Color: c})
}

func (r *Recorder) FillPolygon(pts []math3d.Vec2, c Color) {
	r.Calls = append(r.Calls, Call{Kind: CallFill, Points: slices.Clone(pts), Color: c})
}

func (r *Recorder) StrokePolygon(pts []math3d.Vec2, c Color) {
	r.Calls = append(r.Calls, Call{Kind: CallStroke, Points: slices.Clone(pts), Color: c})
}

func (r *Recorder) DrawImageWarped(tex *Texture, m math3d.Affine2, clip []math3d.Vec2) {
	r.Calls = append(r.Calls, Call{Kind: CallWarp, Points: slices.Clone(clip), Texture: tex, Transform: m})
}
