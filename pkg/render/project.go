package render

import (
	"github.com/taigrr/tumble/pkg/math3d"
)

// DefaultNear is the camera-space z of the near clipping plane.
const DefaultNear = 0.1

// Project performs the perspective divide of a camera-space point. The
// result is in normalized device coordinates. Points at or behind the
// camera (z <= 0) cannot be projected and return false.
func Project(p math3d.Vec3) (math3d.Vec2, bool) {
	if p.Z <= 0 {
		return math3d.Vec2{}, false
	}
	return math3d.V2(p.X/p.Z, p.Y/p.Z), true
}

// Viewport maps normalized device coordinates onto a drawing surface.
type Viewport struct {
	Width  int
	Height int

	// Square restricts drawing to the largest centered square of the
	// surface so the image is not stretched on non-square surfaces.
	Square bool
}

// NewViewport creates a viewport covering a width x height surface.
func NewViewport(width, height int, square bool) Viewport {
	return Viewport{Width: width, Height: height, Square: square}
}

// Rect returns the origin and size of the mapped area in surface pixels.
func (v Viewport) Rect() (x, y, w, h float64) {
	w, h = float64(v.Width), float64(v.Height)
	if !v.Square {
		return 0, 0, w, h
	}
	side := min(w, h)
	return (w - side) / 2, (h - side) / 2, side, side
}

// Map converts NDC in [-1, 1] to surface pixels with Y pointing down.
func (v Viewport) Map(ndc math3d.Vec2) math3d.Vec2 {
	ox, oy, w, h := v.Rect()
	return math3d.V2(
		ox+(ndc.X+1)*0.5*w,
		oy+(1-(ndc.Y+1)*0.5)*h,
	)
}

// Unmap is the inverse of Map.
func (v Viewport) Unmap(px math3d.Vec2) math3d.Vec2 {
	ox, oy, w, h := v.Rect()
	if w == 0 || h == 0 {
		return math3d.Vec2{}
	}
	return math3d.V2(
		(px.X-ox)/w*2-1,
		1-(px.Y-oy)/h*2,
	)
}

// ProjectToScreen projects a camera-space point and maps it onto the
// viewport in one step.
func (v Viewport) ProjectToScreen(p math3d.Vec3) (math3d.Vec2, bool) {
	ndc, ok := Project(p)
	if !ok {
		return math3d.Vec2{}, false
	}
	return v.Map(ndc), true
}
