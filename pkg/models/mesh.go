// Package models provides mesh generation and loading for Tumble.
package models

import (
	"fmt"

	"github.com/taigrr/tumble/pkg/math3d"
)

// Mesh is an indexed triangle mesh in local (object) space.
type Mesh struct {
	Name     string
	Vertices []math3d.Vec3
	Faces    []Face

	// Bounding box (calculated on construction)
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// Face is a triangle: three indices into Mesh.Vertices and the texture
// coordinate of each corner, parallel to V.
type Face struct {
	V  [3]int
	UV [3]math3d.Vec2
}

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{
		Name:     name,
		Vertices: make([]math3d.Vec3, 0),
		Faces:    make([]Face, 0),
	}
}

// AddTriangle appends a face.
func (m *Mesh) AddTriangle(a, b, c int, uvA, uvB, uvC math3d.Vec2) {
	m.Faces = append(m.Faces, Face{
		V:  [3]int{a, b, c},
		UV: [3]math3d.Vec2{uvA, uvB, uvC},
	})
}

// AddQuad appends quad (a, b, c, d) as triangles (a, b, c) and (a, c, d).
// UVs are given per corner in the same order.
func (m *Mesh) AddQuad(a, b, c, d int, uvA, uvB, uvC, uvD math3d.Vec2) {
	m.AddTriangle(a, b, c, uvA, uvB, uvC)
	m.AddTriangle(a, c, d, uvA, uvC, uvD)
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.Vertices) == 0 {
		return
	}

	m.BoundsMin = m.Vertices[0]
	m.BoundsMax = m.Vertices[0]

	for _, v := range m.Vertices[1:] {
		m.BoundsMin = m.BoundsMin.Min(v)
		m.BoundsMax = m.BoundsMax.Max(v)
	}
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Faces)
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// FaceNormal returns the unnormalized normal cross(v1-v0, v2-v0) of face i
// in local space. Degenerate faces return the zero vector.
func (m *Mesh) FaceNormal(i int) math3d.Vec3 {
	f := m.Faces[i]
	v0 := m.Vertices[f.V[0]]
	v1 := m.Vertices[f.V[1]]
	v2 := m.Vertices[f.V[2]]
	return v1.Sub(v0).Cross(v2.Sub(v0))
}

// Transform applies a transformation matrix to all vertices.
func (m *Mesh) Transform(mat math3d.Mat4) {
	for i := range m.Vertices {
		m.Vertices[i] = mat.MulVec3(m.Vertices[i])
	}
	m.CalculateBounds()
}

// Clone creates a deep copy of the mesh.
func (m *Mesh) Clone() *Mesh {
	clone := &Mesh{
		Name:      m.Name,
		Vertices:  make([]math3d.Vec3, len(m.Vertices)),
		Faces:     make([]Face, len(m.Faces)),
		BoundsMin: m.BoundsMin,
		BoundsMax: m.BoundsMax,
	}
	copy(clone.Vertices, m.Vertices)
	copy(clone.Faces, m.Faces)
	return clone
}

// Validate checks that every face index refers to an existing vertex.
func (m *Mesh) Validate() error {
	for i, f := range m.Faces {
		for _, idx := range f.V {
			if idx < 0 || idx >= len(m.Vertices) {
				return fmt.Errorf("mesh %q: face %d: vertex index %d out of range [0,%d)", m.Name, i, idx, len(m.Vertices))
			}
		}
	}
	return nil
}
