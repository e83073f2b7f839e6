package scene

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// FrameStats counts what happened to the geometry during one frame.
type FrameStats struct {
	Tick          uint64
	Figures       int
	Faces         int // faces submitted to clipping
	Behind        int // faces entirely behind the near plane
	Clipped       int // faces cut by the near plane
	Degenerate    int // triangles skipped for zero area or zero-area UVs
	Drawables     int // polygons sorted and dispatched
	Textured      int
	Filled        int
	MarkerVisible bool
	Contacts      int // figures touching the ground this tick
}

// MarshalLogObject implements zapcore.ObjectMarshaler.
func (s FrameStats) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddUint64("tick", s.Tick)
	enc.AddInt("figures", s.Figures)
	enc.AddInt("faces", s.Faces)
	enc.AddInt("behind", s.Behind)
	enc.AddInt("clipped", s.Clipped)
	enc.AddInt("degenerate", s.Degenerate)
	enc.AddInt("drawables", s.Drawables)
	enc.AddInt("textured", s.Textured)
	enc.AddInt("filled", s.Filled)
	enc.AddInt("contacts", s.Contacts)
	return nil
}

// logStats writes the frame statistics once per second of ticks.
func (w *World) logStats(s FrameStats) {
	if w.fps <= 0 || s.Tick%uint64(w.fps) != 0 {
		return
	}
	w.log.Debug("frame", zap.Object("stats", s))
}
