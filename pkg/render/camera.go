package render

import (
	"math"

	"github.com/taigrr/tumble/pkg/math3d"
)

// Camera defaults.
const (
	DefaultSensitivity = 0.003 // radians per pixel of drag
	DefaultMoveSpeed   = 0.05  // world units per tick
	PitchEpsilon       = 0.001 // distance kept from straight up/down
)

// Camera is a yaw/pitch fly camera. Camera space has +Z pointing into the
// screen, +X right and +Y up.
type Camera struct {
	// Position in world space
	Position math3d.Vec3

	// Orientation in radians. Yaw is unbounded; Pitch stays within
	// (-pi/2, pi/2) so the view never flips.
	Yaw   float64
	Pitch float64

	Sensitivity float64 // drag pixels to radians
	MoveSpeed   float64 // distance per tick per held key
}

// NewCamera creates a camera three units behind the origin looking down +Z.
func NewCamera() *Camera {
	return &Camera{
		Position:    math3d.V3(0, 0, -3),
		Sensitivity: DefaultSensitivity,
		MoveSpeed:   DefaultMoveSpeed,
	}
}

// ClampPitch limits a pitch angle to the open range (-pi/2, pi/2).
func ClampPitch(pitch float64) float64 {
	const limit = math.Pi/2 - PitchEpsilon
	return max(-limit, min(limit, pitch))
}

// SetPosition sets the camera position.
func (c *Camera) SetPosition(pos math3d.Vec3) {
	c.Position = pos
}

// SetRotation sets yaw and pitch, clamping pitch.
func (c *Camera) SetRotation(yaw, pitch float64) {
	c.Yaw = yaw
	c.Pitch = ClampPitch(pitch)
}

// Rotate applies a pointer drag of (dx, dy) pixels. Dragging right turns
// left and dragging down looks up, as when grabbing the scene.
func (c *Camera) Rotate(dx, dy float64) {
	c.Yaw -= dx * c.Sensitivity
	c.Pitch = ClampPitch(c.Pitch - dy*c.Sensitivity)
}

// WorldToCamera transforms a world-space point into camera space.
func (c *Camera) WorldToCamera(p math3d.Vec3) math3d.Vec3 {
	return c.RotateDirection(p.Sub(c.Position))
}

// CameraToWorld is the inverse of WorldToCamera.
func (c *Camera) CameraToWorld(p math3d.Vec3) math3d.Vec3 {
	return c.LocalToWorldDirection(p).Add(c.Position)
}

// RotateDirection rotates a world-space direction into camera space. No
// translation is applied, so it is suitable for light directions.
func (c *Camera) RotateDirection(d math3d.Vec3) math3d.Vec3 {
	return math3d.RotateYZ(math3d.RotateXZ(d, -c.Yaw), -c.Pitch)
}

// LocalToWorldDirection rotates a camera-relative direction into world space.
func (c *Camera) LocalToWorldDirection(d math3d.Vec3) math3d.Vec3 {
	return math3d.RotateXZ(math3d.RotateYZ(d, c.Pitch), c.Yaw)
}

// Forward returns the world-space viewing direction.
func (c *Camera) Forward() math3d.Vec3 {
	return c.LocalToWorldDirection(math3d.V3(0, 0, 1))
}

// Move translates the camera by a camera-relative step. Each component of
// step is in units of MoveSpeed: +Z forward, +X right, +Y up.
func (c *Camera) Move(step math3d.Vec3) {
	if step == (math3d.Vec3{}) {
		return
	}
	c.Position = c.Position.Add(c.LocalToWorldDirection(step.Scale(c.MoveSpeed)))
}

// LookAt points the camera at a target.
func (c *Camera) LookAt(target math3d.Vec3) {
	dir, err := target.Sub(c.Position).NormalizeChecked()
	if err != nil {
		return
	}
	// Forward is (-sin(yaw)cos(pitch), -sin(pitch), cos(yaw)cos(pitch))
	c.SetRotation(math.Atan2(-dir.X, dir.Z), -math.Asin(dir.Y))
}
