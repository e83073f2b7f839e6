// Package scene holds the simulated world: figures, physics, input, and the
// per-tick frame pipeline that draws them through pkg/render.
package scene

import (
	"math"

	"github.com/taigrr/tumble/pkg/math3d"
	"github.com/taigrr/tumble/pkg/models"
	"github.com/taigrr/tumble/pkg/render"
)

// TextureState tracks an asynchronously loaded texture.
type TextureState int

const (
	TextureNone    TextureState = iota // no texture requested
	TexturePending                     // requested, not yet arrived
	TextureReady                       // loaded and usable
	TextureFailed                      // load failed; the figure stays flat-shaded
)

func (s TextureState) String() string {
	switch s {
	case TextureNone:
		return "none"
	case TexturePending:
		return "pending"
	case TextureReady:
		return "ready"
	case TextureFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// TextureSlot is a figure's texture reference. Only the tick goroutine
// reads or writes it.
type TextureSlot struct {
	Name    string
	State   TextureState
	Texture *render.Texture
}

// Ready returns the texture if it has arrived.
func (s *TextureSlot) Ready() (*render.Texture, bool) {
	if s.State != TextureReady || s.Texture == nil {
		return nil, false
	}
	return s.Texture, true
}

// Figure is one renderable, simulated object.
type Figure struct {
	Name string
	Mesh *models.Mesh

	Center         math3d.Vec3 // world anchor
	OriginalCenter math3d.Vec3 // restored by Reset
	Velocity       math3d.Vec3 // world units per tick
	Orientation    math3d.Quat

	Mass   float64 // +Inf for immovable bodies
	Radius float64 // collision radius; 0 disables ground collision

	Color   render.Color // flat fill color
	Texture TextureSlot

	faceNormals []math3d.Vec3 // unit local-space normals, zero for degenerate faces

	// per-tick scratch
	camVerts []math3d.Vec3
}

// NewFigure creates a figure at center with unit mass, identity orientation
// and the mesh's bounding radius as its collision radius.
func NewFigure(name string, mesh *models.Mesh, center math3d.Vec3) *Figure {
	f := &Figure{
		Name:           name,
		Mesh:           mesh,
		Center:         center,
		OriginalCenter: center,
		Orientation:    math3d.QuatIdentity(),
		Mass:           1,
		Color:          render.ColorForeground,
	}
	size := mesh.Size()
	f.Radius = math.Max(size.X, math.Max(size.Y, size.Z)) / 2
	f.computeFaceNormals()
	return f
}

// NewStaticFigure creates an immovable figure with no collision radius,
// such as the ground.
func NewStaticFigure(name string, mesh *models.Mesh, center math3d.Vec3) *Figure {
	f := NewFigure(name, mesh, center)
	f.Mass = math.Inf(1)
	f.Radius = 0
	return f
}

func (f *Figure) computeFaceNormals() {
	f.faceNormals = make([]math3d.Vec3, len(f.Mesh.Faces))
	for i := range f.Mesh.Faces {
		f.faceNormals[i] = f.Mesh.FaceNormal(i).Normalize()
	}
}

// Movable reports whether physics may move the figure.
func (f *Figure) Movable() bool {
	return f.Mass > 0 && !math.IsInf(f.Mass, 1)
}

// Reset returns the figure to its starting pose at rest.
func (f *Figure) Reset() {
	f.Center = f.OriginalCenter
	f.Velocity = math3d.Vec3{}
	f.Orientation = math3d.QuatIdentity()
}

// ModelMatrix returns the local-to-world transform.
func (f *Figure) ModelMatrix() math3d.Mat4 {
	return math3d.Translate(f.Center).Mul(f.Orientation.ToMat4())
}

// LocalToWorld transforms a mesh vertex into world space.
func (f *Figure) LocalToWorld(v math3d.Vec3) math3d.Vec3 {
	return f.Orientation.Rotate(v).Add(f.Center)
}

// MostUpwardNormal returns the world-space face normal with the largest Y
// component. It returns false if the mesh has no usable faces.
func (f *Figure) MostUpwardNormal() (math3d.Vec3, bool) {
	best, found := math3d.Vec3{}, false
	for _, n := range f.faceNormals {
		if n == (math3d.Vec3{}) {
			continue
		}
		w := f.Orientation.Rotate(n)
		if !found || w.Y > best.Y {
			best, found = w, true
		}
	}
	return best, found
}
