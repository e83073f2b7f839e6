package scene

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/taigrr/tumble/pkg/math3d"
	"github.com/taigrr/tumble/pkg/render"
)

// Marker pulse range and period.
const (
	pulseMin    = 0.8
	pulseMax    = 1.2
	pulsePeriod = 0.75 // seconds per half cycle
)

// Light is the single directional light. It has no position; the marker
// is drawn at a fixed distance from the origin along Direction.
type Light struct {
	Direction math3d.Vec3 // world space, pointing toward the light

	MarkerDistance float64
	MarkerSize     float64
	MarkerColor    render.Color

	pulse      *gween.Tween
	pulseUp    bool
	pulseScale float64
}

// NewLight creates a light shining from dir.
func NewLight(dir math3d.Vec3) *Light {
	l := &Light{
		Direction:      dir.Normalize(),
		MarkerDistance: 3,
		MarkerSize:     0.1,
		MarkerColor:    render.ColorYellow,
		pulseScale:     pulseMax,
	}
	l.restartPulse()
	return l
}

func (l *Light) restartPulse() {
	from, to := pulseMax, pulseMin
	if l.pulseUp {
		from, to = pulseMin, pulseMax
	}
	l.pulse = gween.New(float32(from), float32(to), pulsePeriod, ease.InOutSine)
}

// Update advances the marker pulse by dt seconds.
func (l *Light) Update(dt float32) {
	v, done := l.pulse.Update(dt)
	l.pulseScale = float64(v)
	if done {
		l.pulseUp = !l.pulseUp
		l.restartPulse()
	}
}

// CameraDirection returns the light direction in camera space.
func (l *Light) CameraDirection(c *render.Camera) math3d.Vec3 {
	return c.RotateDirection(l.Direction).Normalize()
}

// MarkerPosition returns where the marker is drawn in world space.
func (l *Light) MarkerPosition() math3d.Vec3 {
	return l.Direction.Normalize().Scale(l.MarkerDistance)
}

// MarkerScale returns the current pulse factor applied to MarkerSize.
func (l *Light) MarkerScale() float64 {
	return l.pulseScale
}

// Draw draws the marker and a short line pointing from it back toward the
// origin. It reports whether the marker was in front of the camera.
func (l *Light) Draw(wf *render.Wireframe) bool {
	pos := l.MarkerPosition()
	tail := pos.Scale(0.8)
	wf.DrawLine3D(pos, tail, l.MarkerColor)
	return wf.DrawMarker(pos, l.MarkerSize*l.pulseScale, l.MarkerColor)
}
