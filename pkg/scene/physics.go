package scene

import (
	"math"

	"github.com/taigrr/tumble/pkg/math3d"
)

// Physics holds the constants of the per-tick simulation. Distances are
// world units and velocities are world units per tick.
type Physics struct {
	Gravity     float64 // added to velocity.Y every tick
	GroundY     float64 // height of the ground plane
	Restitution float64 // fraction of downward speed kept on bounce
	Friction    float64 // horizontal velocity factor per ground tick
	StopEps     float64 // downward impact speed below which a bounce is dropped
	SnapVelY    float64 // rest detection: vertical speed limit
	SnapVelXZ   float64 // rest detection: horizontal speed limit
	SnapAngle   float64 // maximum settle rotation per tick, radians
}

const (
	restDamping   = 0.9   // horizontal velocity factor while settling
	restHardStop  = 0.001 // horizontal speed zeroed while settling
	alignedCosine = 1 - 1e-12
)

// DefaultPhysics returns the stock simulation constants.
func DefaultPhysics() Physics {
	return Physics{
		Gravity:     -0.01,
		GroundY:     -0.8,
		Restitution: 0.5,
		Friction:    0.98,
		StopEps:     0.02,
		SnapVelY:    0.02,
		SnapVelXZ:   0.01,
		SnapAngle:   0.1,
	}
}

// StepResult describes what happened to a figure during one Step.
type StepResult struct {
	Contact bool // touched the ground this tick
	Settled bool // ran the settle sub-step
}

// Step advances one figure by one tick. Immovable figures are untouched.
func (p Physics) Step(f *Figure) StepResult {
	var res StepResult
	if !f.Movable() {
		return res
	}

	f.Velocity.Y += p.Gravity
	f.Center = f.Center.Add(f.Velocity)

	if f.Radius <= 0 || f.Center.Y-f.Radius >= p.GroundY {
		return res
	}

	// Ground contact. Placing the body exactly on the ground keeps a body
	// at rest at the same height every tick.
	res.Contact = true
	f.Center.Y = p.GroundY + f.Radius

	if f.Velocity.Y < 0 {
		if -f.Velocity.Y < p.StopEps {
			f.Velocity.Y = 0
		} else {
			f.Velocity.Y *= -p.Restitution
		}
	}

	f.Velocity.X *= p.Friction
	f.Velocity.Z *= p.Friction

	p.roll(f)

	if math.Abs(f.Velocity.Y) < p.SnapVelY && f.Velocity.HorizontalLen() < p.SnapVelXZ {
		p.settle(f)
		res.Settled = true
	}
	return res
}

// StepAll advances every figure and returns how many touched the ground.
func (p Physics) StepAll(figs []*Figure) int {
	contacts := 0
	for _, f := range figs {
		if p.Step(f).Contact {
			contacts++
		}
	}
	return contacts
}

// roll turns the figure as if it rolled without slipping along its
// horizontal velocity. Velocity is not affected.
func (p Physics) roll(f *Figure) {
	speed := f.Velocity.HorizontalLen()
	if speed == 0 {
		return
	}
	// Rolling axis is up x velocity.
	axis := math3d.V3(f.Velocity.Z, 0, -f.Velocity.X)
	f.Orientation = math3d.QuatFromAxisAngle(axis, speed/f.Radius).Mul(f.Orientation).Normalize()
}

// settle rotates the figure so its most upward face turns toward world up,
// by at most SnapAngle per tick and faster the slower it moves, and bleeds
// off the remaining velocity.
//
// The most upward face stands in for the face the body rests on. For
// irregular meshes it can pick the wrong one.
func (p Physics) settle(f *Figure) {
	if n, ok := f.MostUpwardNormal(); ok && n.Y < alignedCosine {
		angle := math.Acos(max(-1, min(1, n.Y)))
		weight := 1.0
		if p.SnapVelXZ > 0 {
			weight = max(0, min(1, 1-f.Velocity.HorizontalLen()/p.SnapVelXZ))
		}
		step := math.Min(angle, p.SnapAngle*weight)
		axis := n.Cross(math3d.Up())
		if axis.LenSq() < math3d.Epsilon {
			// Facing straight down; any horizontal axis works.
			axis = math3d.V3(1, 0, 0)
		}
		if step > 0 {
			f.Orientation = math3d.QuatFromAxisAngle(axis, step).Mul(f.Orientation).Normalize()
		}
	}

	f.Velocity.Y = 0
	f.Velocity.X *= restDamping
	f.Velocity.Z *= restDamping
	if f.Velocity.HorizontalLen() < restHardStop {
		f.Velocity.X, f.Velocity.Z = 0, 0
	}
}
