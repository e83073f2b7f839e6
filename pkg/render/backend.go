package render

import (
	"errors"

	"github.com/taigrr/tumble/pkg/math3d"
)

// Backend is a 2D drawing surface. Points are in surface pixels with Y
// pointing down. Implementations are best effort and never fail a frame.
type Backend interface {
	// FillBackground covers the whole surface with c.
	FillBackground(c Color)

	// FillPolygon fills a polygon, blending when c is translucent.
	FillPolygon(pts []math3d.Vec2, c Color)

	// StrokePolygon outlines a closed polygon.
	StrokePolygon(pts []math3d.Vec2, c Color)

	// DrawImageWarped draws tex transformed by m (texture pixels to surface
	// pixels), restricted to the inside of clip.
	DrawImageWarped(tex *Texture, m math3d.Affine2, clip []math3d.Vec2)
}

// DrawOptions selects how drawables are dispatched.
type DrawOptions struct {
	Textures  bool  // draw textures where available
	Lines     bool  // stroke every polygon after filling it
	LineColor Color // stroke color
}

// DrawResult counts what Draw did.
type DrawResult struct {
	Filled     int
	Textured   int
	Degenerate int // textured polygons skipped for a zero-area UV triangle
}

// Draw dispatches drawables to b in slice order. Callers sort first with
// SortDrawables.
func Draw(b Backend, ds []Drawable, opts DrawOptions) DrawResult {
	var res DrawResult
	for i := range ds {
		d := &ds[i]
		if len(d.Points) < 3 {
			continue
		}

		if opts.Textures && d.Texture != nil {
			if err := drawTextured(b, d); err != nil {
				if errors.Is(err, ErrDegenerateUV) {
					res.Degenerate++
				}
				continue
			}
			res.Textured++
		} else {
			b.FillPolygon(d.Points, ShadeColor(d.Color, d.Intensity))
			res.Filled++
		}

		if opts.Lines {
			b.StrokePolygon(d.Points, opts.LineColor)
		}
	}
	return res
}

func drawTextured(b Backend, d *Drawable) error {
	screen := [3]math3d.Vec2{d.Points[0], d.Points[1], d.Points[2]}
	m, err := TextureMap(d.UV, screen, d.Texture.Width, d.Texture.Height)
	if err != nil {
		return err
	}
	b.DrawImageWarped(d.Texture, m, d.Points)
	if overlay := ShadeOverlay(d.Intensity); overlay.A > 0 {
		b.FillPolygon(d.Points, overlay)
	}
	return nil
}
