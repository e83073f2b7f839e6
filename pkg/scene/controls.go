package scene

import (
	"fmt"

	"go.uber.org/zap"
)

// Control names a toggle exposed to the host UI.
type Control int

const (
	ControlLines Control = iota
	ControlTextures
	ControlLighting
	ControlPhysics
	ControlLightMarker
)

func (c Control) String() string {
	switch c {
	case ControlLines:
		return "lines"
	case ControlTextures:
		return "textures"
	case ControlLighting:
		return "lighting"
	case ControlPhysics:
		return "physics"
	case ControlLightMarker:
		return "light-marker"
	default:
		return fmt.Sprintf("Control(%d)", int(c))
	}
}

func (w *World) flag(c Control) *bool {
	switch c {
	case ControlLines:
		return &w.Flags.Lines
	case ControlTextures:
		return &w.Flags.Textures
	case ControlLighting:
		return &w.Flags.Lighting
	case ControlPhysics:
		return &w.Flags.Physics
	case ControlLightMarker:
		return &w.Flags.LightMarker
	default:
		return nil
	}
}

// Toggle flips a control and returns its new state.
func (w *World) Toggle(c Control) bool {
	p := w.flag(c)
	if p == nil {
		return false
	}
	*p = !*p
	w.log.Info("toggle", zap.Stringer("control", c), zap.Bool("on", *p))
	return *p
}

// Enabled reports whether a control is on.
func (w *World) Enabled(c Control) bool {
	p := w.flag(c)
	return p != nil && *p
}

// ResetAll returns every figure to its starting position, at rest and with
// identity orientation.
func (w *World) ResetAll() {
	for _, f := range w.figures {
		f.Reset()
	}
	w.log.Info("reset all figures", zap.Int("figures", len(w.figures)))
}

// Impulse ranges, in world units per tick for a unit mass.
const (
	impulseHorizontal = 0.05
	impulseUpMin      = 0.08
	impulseUpMax      = 0.16
)

// ImpulseAll kicks every movable figure upward and sideways by a random
// amount scaled by its inverse mass.
func (w *World) ImpulseAll() {
	n := 0
	for _, f := range w.figures {
		if !f.Movable() {
			continue
		}
		inv := 1 / f.Mass
		f.Velocity.X += (w.rng.Float64()*2 - 1) * impulseHorizontal * inv
		f.Velocity.Y += (impulseUpMin + w.rng.Float64()*(impulseUpMax-impulseUpMin)) * inv
		f.Velocity.Z += (w.rng.Float64()*2 - 1) * impulseHorizontal * inv
		n++
	}
	w.log.Info("impulse", zap.Int("figures", n))
}
