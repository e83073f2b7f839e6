package render

import (
	"github.com/taigrr/tumble/pkg/math3d"
)

// Wireframe draws world-space lines and markers through a camera onto a
// Backend. Line ends behind the near plane are clipped, not dropped.
type Wireframe struct {
	camera   *Camera
	viewport Viewport
	backend  Backend
	near     float64
}

// NewWireframe creates a new wireframe renderer.
func NewWireframe(camera *Camera, vp Viewport, b Backend, near float64) *Wireframe {
	return &Wireframe{
		camera:   camera,
		viewport: vp,
		backend:  b,
		near:     near,
	}
}

// clipSegment clips camera-space segment a-b to z >= near.
func clipSegment(a, b math3d.Vec3, near float64) (math3d.Vec3, math3d.Vec3, bool) {
	aIn, bIn := a.Z >= near, b.Z >= near
	switch {
	case aIn && bIn:
		return a, b, true
	case !aIn && !bIn:
		return a, b, false
	case aIn:
		t := (near - a.Z) / (b.Z - a.Z)
		return a, a.Lerp(b, t), true
	default:
		t := (near - b.Z) / (a.Z - b.Z)
		return b.Lerp(a, t), b, true
	}
}

// DrawLine3D draws a line in world space.
func (w *Wireframe) DrawLine3D(p1, p2 math3d.Vec3, color Color) {
	a, b, ok := clipSegment(w.camera.WorldToCamera(p1), w.camera.WorldToCamera(p2), w.near)
	if !ok {
		return
	}
	sa, _ := w.viewport.ProjectToScreen(a)
	sb, _ := w.viewport.ProjectToScreen(b)
	w.backend.StrokePolygon([]math3d.Vec2{sa, sb}, color)
}

// DrawMarker fills a screen-aligned square of the given world-space size
// centered on p. It reports whether the marker was in front of the camera.
func (w *Wireframe) DrawMarker(p math3d.Vec3, size float64, color Color) bool {
	c := w.camera.WorldToCamera(p)
	if c.Z < w.near {
		return false
	}
	h := size / 2
	corners := [4]math3d.Vec3{
		{X: c.X - h, Y: c.Y - h, Z: c.Z},
		{X: c.X + h, Y: c.Y - h, Z: c.Z},
		{X: c.X + h, Y: c.Y + h, Z: c.Z},
		{X: c.X - h, Y: c.Y + h, Z: c.Z},
	}
	pts := make([]math3d.Vec2, 0, 4)
	for _, q := range corners {
		s, _ := w.viewport.ProjectToScreen(q)
		pts = append(pts, s)
	}
	w.backend.FillPolygon(pts, color)
	return true
}
