package scene

import (
	"github.com/charmbracelet/harmonica"

	"github.com/taigrr/tumble/pkg/render"
)

// lookAxis is one spring-driven angle.
type lookAxis struct {
	pos, vel, target float64
}

// LookSmoother eases the camera toward the orientation requested by drags
// instead of snapping to it.
type LookSmoother struct {
	spring     harmonica.Spring
	yaw, pitch lookAxis
}

// NewLookSmoother creates a critically damped smoother for the given tick
// rate.
func NewLookSmoother(fps int) *LookSmoother {
	return &LookSmoother{
		spring: harmonica.NewSpring(harmonica.FPS(max(fps, 1)), 8.0, 1.0),
	}
}

// Reset jumps to an orientation with no motion.
func (s *LookSmoother) Reset(yaw, pitch float64) {
	s.yaw = lookAxis{pos: yaw, target: yaw}
	s.pitch = lookAxis{pos: pitch, target: pitch}
}

// Add moves the target orientation. The pitch target is clamped the same
// way the camera clamps pitch.
func (s *LookSmoother) Add(dyaw, dpitch float64) {
	s.yaw.target += dyaw
	s.pitch.target = render.ClampPitch(s.pitch.target + dpitch)
}

// Update advances both springs one tick and returns the new orientation.
func (s *LookSmoother) Update() (yaw, pitch float64) {
	s.yaw.pos, s.yaw.vel = s.spring.Update(s.yaw.pos, s.yaw.vel, s.yaw.target)
	s.pitch.pos, s.pitch.vel = s.spring.Update(s.pitch.pos, s.pitch.vel, s.pitch.target)
	return s.yaw.pos, render.ClampPitch(s.pitch.pos)
}

// Target returns the orientation the smoother is heading for.
func (s *LookSmoother) Target() (yaw, pitch float64) {
	return s.yaw.target, s.pitch.target
}
