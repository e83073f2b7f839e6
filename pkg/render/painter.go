package render

import (
	"cmp"
	"slices"

	"github.com/taigrr/tumble/pkg/math3d"
)

// Drawable is one screen-space polygon queued for the painter pass.
type Drawable struct {
	Points []math3d.Vec2 // screen-space corners
	Depth  float64       // mean camera-space z of the corners

	// Texture is nil for flat fills.
	Texture *Texture
	UV      [3]math3d.Vec2

	Intensity float64
	Color     Color // flat fill color before shading
}

// DepthKey returns the mean z of camera-space points.
func DepthKey(pts ...math3d.Vec3) float64 {
	if len(pts) == 0 {
		return 0
	}
	var sum float64
	for _, p := range pts {
		sum += p.Z
	}
	return sum / float64(len(pts))
}

// SortDrawables orders drawables farthest first. The sort is stable so
// polygons at equal depth keep their submission order.
func SortDrawables(ds []Drawable) {
	slices.SortStableFunc(ds, func(a, b Drawable) int {
		return cmp.Compare(b.Depth, a.Depth)
	})
}
