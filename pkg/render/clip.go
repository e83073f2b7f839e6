package render

import (
	"github.com/taigrr/tumble/pkg/math3d"
)

// ClipVertex is a camera-space triangle corner with its texture coordinate.
type ClipVertex struct {
	Pos math3d.Vec3
	UV  math3d.Vec2
}

// Triangle is three clip vertices.
type Triangle [3]ClipVertex

// intersectNear returns the point on segment a-b where z == near. The
// texture coordinate is interpolated with the same parameter.
func intersectNear(a, b ClipVertex, near float64) ClipVertex {
	t := (near - a.Pos.Z) / (b.Pos.Z - a.Pos.Z)
	return ClipVertex{
		Pos: a.Pos.Lerp(b.Pos, t),
		UV:  a.UV.Lerp(b.UV, t),
	}
}

// ClipTriangle clips a camera-space triangle against the plane z = near and
// appends the 0, 1 or 2 resulting triangles to out. A vertex is inside when
// z >= near. Triangles entirely inside are appended unchanged.
func ClipTriangle(tri Triangle, near float64, out []Triangle) []Triangle {
	var in, outside [3]int
	ni, no := 0, 0
	for i, v := range tri {
		if v.Pos.Z >= near {
			in[ni] = i
			ni++
		} else {
			outside[no] = i
			no++
		}
	}

	switch ni {
	case 3:
		return append(out, tri)
	case 0:
		return out
	case 1:
		a := tri[in[0]]
		c1 := intersectNear(a, tri[outside[0]], near)
		c2 := intersectNear(a, tri[outside[1]], near)
		// Keep the original winding: outside[0] follows the inside vertex
		// unless the inside vertex is the middle one.
		if in[0] == 1 {
			c1, c2 = c2, c1
		}
		return append(out, Triangle{a, c1, c2})
	default:
		// Two inside. Walk the triangle starting after the outside vertex
		// so a, b keep their cyclic order.
		o := outside[0]
		a := tri[(o+1)%3]
		b := tri[(o+2)%3]
		c := tri[o]
		c1 := intersectNear(a, c, near)
		c2 := intersectNear(b, c, near)
		return append(out, Triangle{a, b, c1}, Triangle{b, c2, c1})
	}
}
