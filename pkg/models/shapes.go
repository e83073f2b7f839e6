package models

import (
	"math"

	"github.com/taigrr/tumble/pkg/math3d"
)

// Per-corner UVs for a textured quad face: bottom-left, bottom-right,
// top-right, top-left in image space.
var quadUV = [4]math3d.Vec2{{X: 0, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 0}, {X: 0, Y: 0}}

// sphereSeamOffset shifts the longitude seam a quarter turn away from the
// side of the sphere that faces the default camera.
const sphereSeamOffset = 0.25

// NewBox creates an axis-aligned cube with half-size h centered on the
// origin. Each face is wound counter-clockwise seen from outside.
func NewBox(h float64) *Mesh {
	m := NewMesh("box")
	m.Vertices = []math3d.Vec3{
		{X: -h, Y: -h, Z: -h}, {X: h, Y: -h, Z: -h}, {X: h, Y: h, Z: -h}, {X: -h, Y: h, Z: -h},
		{X: -h, Y: -h, Z: h}, {X: h, Y: -h, Z: h}, {X: h, Y: h, Z: h}, {X: -h, Y: h, Z: h},
	}

	quads := [6][4]int{
		{0, 3, 2, 1}, // back (-Z)
		{4, 5, 6, 7}, // front (+Z)
		{0, 1, 5, 4}, // bottom (-Y)
		{3, 7, 6, 2}, // top (+Y)
		{0, 4, 7, 3}, // left (-X)
		{1, 2, 6, 5}, // right (+X)
	}
	for _, q := range quads {
		m.AddQuad(q[0], q[1], q[2], q[3], quadUV[0], quadUV[1], quadUV[2], quadUV[3])
	}

	m.CalculateBounds()
	return m
}

// NewPyramid creates a square-based pyramid with base side s and height h,
// apex pointing up (+Y), vertically centered on the origin.
func NewPyramid(s, h float64) *Mesh {
	hs, hh := s*0.5, h*0.5
	m := NewMesh("pyramid")
	m.Vertices = []math3d.Vec3{
		{X: -hs, Y: -hh, Z: -hs},
		{X: hs, Y: -hh, Z: -hs},
		{X: hs, Y: -hh, Z: hs},
		{X: -hs, Y: -hh, Z: hs},
		{X: 0, Y: hh, Z: 0},
	}
	const apex = 4

	// Base, facing down
	m.AddTriangle(0, 1, 2, math3d.V2(0, 0), math3d.V2(1, 0), math3d.V2(1, 1))
	m.AddTriangle(0, 2, 3, math3d.V2(0, 0), math3d.V2(1, 1), math3d.V2(0, 1))

	for i := range 4 {
		j := (i + 1) % 4
		m.AddTriangle(i, apex, j, math3d.V2(0, 1), math3d.V2(0.5, 0), math3d.V2(1, 1))
	}

	m.CalculateBounds()
	return m
}

// SphereUV returns the texture coordinate of parameter-grid point (u, v)
// with the longitude seam moved by a quarter turn.
func SphereUV(u, v float64) math3d.Vec2 {
	return math3d.V2(math.Mod(u-sphereSeamOffset+1, 1), v)
}

// fixSeam keeps a triangle that straddles the longitude wrap from sampling
// the whole texture width backwards: corners that wrapped to the low end are
// moved to the high end.
func fixSeam(uv [3]math3d.Vec2) [3]math3d.Vec2 {
	lo := math.Min(uv[0].X, math.Min(uv[1].X, uv[2].X))
	hi := math.Max(uv[0].X, math.Max(uv[1].X, uv[2].X))
	if hi-lo <= 0.5 {
		return uv
	}
	for i := range uv {
		if uv[i].X < 0.5 {
			uv[i].X++
		}
	}
	return uv
}

// NewSphere creates a UV sphere of the given radius on a
// (latSteps+1) x (lonSteps+1) parameter grid. Colatitude is v*pi and
// longitude u*2pi; every grid cell yields two triangles.
func NewSphere(radius float64, latSteps, lonSteps int) *Mesh {
	latSteps = max(latSteps, 2)
	lonSteps = max(lonSteps, 3)

	m := NewMesh("sphere")
	params := make([]math3d.Vec2, 0, (latSteps+1)*(lonSteps+1))

	for i := 0; i <= latSteps; i++ {
		v := float64(i) / float64(latSteps)
		phi := v * math.Pi
		for j := 0; j <= lonSteps; j++ {
			u := float64(j) / float64(lonSteps)
			theta := u * 2 * math.Pi
			m.Vertices = append(m.Vertices, math3d.V3(
				radius*math.Sin(phi)*math.Cos(theta),
				radius*math.Cos(phi),
				radius*math.Sin(phi)*math.Sin(theta),
			))
			params = append(params, math3d.V2(u, v))
		}
	}

	idx := func(i, j int) int { return i*(lonSteps+1) + j }
	tri := func(a, b, c int) {
		uv := fixSeam([3]math3d.Vec2{
			SphereUV(params[a].X, params[a].Y),
			SphereUV(params[b].X, params[b].Y),
			SphereUV(params[c].X, params[c].Y),
		})
		m.AddTriangle(a, b, c, uv[0], uv[1], uv[2])
	}

	for i := range latSteps {
		for j := range lonSteps {
			a, b := idx(i, j), idx(i+1, j)
			c, d := idx(i+1, j+1), idx(i, j+1)
			tri(a, c, b)
			tri(a, d, c)
		}
	}

	m.CalculateBounds()
	return m
}

// NewGround creates a flat square of half-extent size in the local Y=0
// plane, facing up, as a single quad. A ground figure with one cell per
// side uses it.
func NewGround(size float64) *Mesh {
	m := NewMesh("ground")
	m.Vertices = []math3d.Vec3{
		{X: -size, Y: 0, Z: -size},
		{X: size, Y: 0, Z: -size},
		{X: size, Y: 0, Z: size},
		{X: -size, Y: 0, Z: size},
	}
	m.AddQuad(0, 3, 2, 1, math3d.V2(0, 0), math3d.V2(0, 1), math3d.V2(1, 1), math3d.V2(1, 0))
	m.CalculateBounds()
	return m
}

// NewPrism creates a closed prism with a regular n-gon cross-section of the
// given radius, extruded along Y. Vertex 2i is on the bottom ring and 2i+1
// on the top ring.
func NewPrism(radius, height float64, steps int) *Mesh {
	steps = max(steps, 3)
	hh := height * 0.5

	m := NewMesh("prism")
	for i := range steps {
		a := float64(i) / float64(steps) * 2 * math.Pi
		x, z := math.Cos(a)*radius, math.Sin(a)*radius
		m.Vertices = append(m.Vertices, math3d.V3(x, -hh, z), math3d.V3(x, hh, z))
	}

	for i := range steps {
		j := (i + 1) % steps
		u0 := float64(i) / float64(steps)
		u1 := float64(i+1) / float64(steps)
		m.AddQuad(2*i, 2*i+1, 2*j+1, 2*j,
			math3d.V2(u0, 1), math3d.V2(u0, 0), math3d.V2(u1, 0), math3d.V2(u1, 1))
	}

	capUV := func(k int) math3d.Vec2 {
		a := float64(k) / float64(steps) * 2 * math.Pi
		return math3d.V2(0.5+0.5*math.Cos(a), 0.5+0.5*math.Sin(a))
	}
	for k := 1; k < steps-1; k++ {
		m.AddTriangle(0, 2*k, 2*(k+1), capUV(0), capUV(k), capUV(k+1))
		m.AddTriangle(1, 2*(k+1)+1, 2*k+1, capUV(0), capUV(k+1), capUV(k))
	}

	m.CalculateBounds()
	return m
}

// NewGroundGrid creates the same square as NewGround split into n x n
// cells. Smaller faces give the painter's sort a depth key close to the
// figures standing on them.
func NewGroundGrid(size float64, n int) *Mesh {
	n = max(n, 1)
	m := NewMesh("ground")
	step := 2 * size / float64(n)
	for i := 0; i <= n; i++ {
		for j := 0; j <= n; j++ {
			m.Vertices = append(m.Vertices, math3d.V3(-size+float64(i)*step, 0, -size+float64(j)*step))
		}
	}

	idx := func(i, j int) int { return i*(n+1) + j }
	uv := func(i, j int) math3d.Vec2 { return math3d.V2(float64(i)/float64(n), float64(j)/float64(n)) }
	for i := range n {
		for j := range n {
			m.AddQuad(idx(i, j), idx(i, j+1), idx(i+1, j+1), idx(i+1, j),
				uv(i, j), uv(i, j+1), uv(i+1, j+1), uv(i+1, j))
		}
	}
	m.CalculateBounds()
	return m
}
