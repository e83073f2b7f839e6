package render

import (
	"math"

	"github.com/taigrr/tumble/pkg/math3d"
)

// AmbientLight is the intensity of a face that receives no direct light.
const AmbientLight = 0.2

// FaceNormal returns the unit normal of a camera-space triangle, flipped if
// needed so it faces the camera. It returns false for degenerate triangles.
func FaceNormal(v0, v1, v2 math3d.Vec3) (math3d.Vec3, bool) {
	n, err := v1.Sub(v0).Cross(v2.Sub(v0)).NormalizeChecked()
	if err != nil {
		return math3d.Vec3{}, false
	}
	toCamera, err := v0.Negate().NormalizeChecked()
	if err != nil {
		// v0 sits on the eye; any orientation is as good as another.
		return n, true
	}
	if n.Dot(toCamera) < 0 {
		n = n.Negate()
	}
	return n, true
}

// Intensity returns the diffuse light factor in [AmbientLight, 1] for a
// normal and a camera-space light direction (pointing toward the light).
// With lighting disabled every face is fully lit.
func Intensity(normal, light math3d.Vec3, lighting bool) float64 {
	if !lighting {
		return 1
	}
	return AmbientLight + (1-AmbientLight)*math.Max(0, normal.Dot(light))
}

// ShadeColor scales a flat fill color by intensity.
func ShadeColor(c Color, intensity float64) Color {
	return MultiplyColor(c, intensity)
}

// ShadeOverlay returns the translucent black drawn over a textured face to
// darken it to the given intensity.
func ShadeOverlay(intensity float64) Color {
	a := math.Round((1 - math.Max(0, math.Min(1, intensity))) * 255)
	return Color{A: uint8(a)}
}
