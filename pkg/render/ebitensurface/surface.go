// Package ebitensurface draws render output onto an Ebitengine image so
// the same frame pipeline can run in a desktop window.
package ebitensurface

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/taigrr/tumble/pkg/math3d"
	"github.com/taigrr/tumble/pkg/render"
)

// DefaultLineWidth is the stroke width in pixels.
const DefaultLineWidth = 1

// Surface is a render.Backend over an *ebiten.Image. Set the target with
// SetTarget before each frame.
type Surface struct {
	LineWidth float32

	dst    *ebiten.Image
	white  *ebiten.Image
	images map[*render.Texture]*ebiten.Image

	verts []ebiten.Vertex
	idx   []uint16
}

var _ render.Backend = (*Surface)(nil)

// New creates a surface with no target.
func New() *Surface {
	return &Surface{
		LineWidth: DefaultLineWidth,
		images:    make(map[*render.Texture]*ebiten.Image),
	}
}

// SetTarget sets the image drawn to by the following calls.
func (s *Surface) SetTarget(dst *ebiten.Image) {
	s.dst = dst
}

// solid returns a 1x1 white source for untextured triangles. It is cut
// from the middle of a 3x3 image so linear filtering never reaches an edge.
func (s *Surface) solid() *ebiten.Image {
	if s.white == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		s.white = img
	}
	return s.white.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
}

// image returns the GPU copy of tex, uploading it on first use. Textures
// are immutable once loaded, so the copy never goes stale.
func (s *Surface) image(tex *render.Texture) *ebiten.Image {
	if img, ok := s.images[tex]; ok {
		return img
	}
	img := ebiten.NewImageFromImage(tex)
	s.images[tex] = img
	return img
}

// Release frees every uploaded texture.
func (s *Surface) Release() {
	for tex, img := range s.images {
		img.Deallocate()
		delete(s.images, tex)
	}
	if s.white != nil {
		s.white.Deallocate()
		s.white = nil
	}
}

func (s *Surface) FillBackground(c render.Color) {
	if s.dst == nil {
		return
	}
	s.dst.Fill(c)
}

func (s *Surface) FillPolygon(pts []math3d.Vec2, c render.Color) {
	if s.dst == nil || len(pts) < 3 {
		return
	}
	s.verts, s.idx = fanVertices(s.verts[:0], s.idx[:0], pts, c)
	op := &ebiten.DrawTrianglesOptions{FillRule: ebiten.FillRuleFillAll}
	s.dst.DrawTriangles(s.verts, s.idx, s.solid(), op)
}

func (s *Surface) StrokePolygon(pts []math3d.Vec2, c render.Color) {
	if s.dst == nil || len(pts) < 2 {
		return
	}
	n := len(pts)
	if n == 2 {
		n = 1 // a segment, not a closed loop
	}
	for i := range n {
		a, b := pts[i], pts[(i+1)%len(pts)]
		vector.StrokeLine(s.dst, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), s.LineWidth, c, true)
	}
}

func (s *Surface) DrawImageWarped(tex *render.Texture, m math3d.Affine2, clip []math3d.Vec2) {
	if s.dst == nil || len(clip) < 3 {
		return
	}
	inv, err := m.Inverse()
	if err != nil {
		return
	}
	s.verts, s.idx = warpVertices(s.verts[:0], s.idx[:0], clip, inv)

	op := &ebiten.DrawTrianglesOptions{
		FillRule: ebiten.FillRuleFillAll,
		Address:  ebiten.AddressRepeat,
	}
	if tex.FilterMode == render.FilterBilinear {
		op.Filter = ebiten.FilterLinear
	}
	s.dst.DrawTriangles(s.verts, s.idx, s.image(tex), op)
}

// fanIndices appends a triangle fan over n vertices starting at base.
func fanIndices(idx []uint16, base, n int) []uint16 {
	for i := 2; i < n; i++ {
		idx = append(idx, uint16(base), uint16(base+i-1), uint16(base+i))
	}
	return idx
}

// fanVertices builds a solid-colored triangle fan for a convex polygon.
func fanVertices(verts []ebiten.Vertex, idx []uint16, pts []math3d.Vec2, c render.Color) ([]ebiten.Vertex, []uint16) {
	r, g, b, a := vertexColor(c)
	base := len(verts)
	for _, p := range pts {
		verts = append(verts, ebiten.Vertex{
			DstX: float32(p.X), DstY: float32(p.Y),
			SrcX: 0, SrcY: 0,
			ColorR: r, ColorG: g, ColorB: b, ColorA: a,
		})
	}
	return verts, fanIndices(idx, base, len(pts))
}

// warpVertices builds a textured fan whose source coordinates are the
// polygon corners mapped back into texture pixels by inv.
func warpVertices(verts []ebiten.Vertex, idx []uint16, pts []math3d.Vec2, inv math3d.Affine2) ([]ebiten.Vertex, []uint16) {
	base := len(verts)
	for _, p := range pts {
		src := inv.Apply(p)
		verts = append(verts, ebiten.Vertex{
			DstX: float32(p.X), DstY: float32(p.Y),
			SrcX: float32(src.X), SrcY: float32(src.Y),
			ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1,
		})
	}
	return verts, fanIndices(idx, base, len(pts))
}

// vertexColor returns c as straight-alpha components in [0,1], the
// default vertex color mode of DrawTriangles.
func vertexColor(c render.Color) (r, g, b, a float32) {
	return float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255, float32(c.A) / 255
}
