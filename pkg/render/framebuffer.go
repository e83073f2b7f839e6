// Package render turns camera-space geometry into sorted, shaded,
// optionally textured screen polygons and draws them on a Backend.
package render

import (
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"slices"

	"github.com/taigrr/tumble/pkg/math3d"
)

// Framebuffer is a software Backend over a 2D array of pixels. In the
// terminal every cell shows two vertically stacked pixels using half-block
// characters (▀), so Height is twice the number of rows.
type Framebuffer struct {
	Width  int          // Width in pixels (same as terminal columns)
	Height int          // Height in pixels (2x terminal rows due to half-blocks)
	Pixels []color.RGBA // Row-major pixel data

	xs []float64 // scanline crossings, reused between polygons
}

// NewFramebuffer creates a new framebuffer with the given dimensions.
// Height should be 2x the desired terminal rows for half-block rendering.
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pixels: make([]color.RGBA, width*height),
	}
}

// Resize changes the framebuffer dimensions, reusing storage when possible.
func (fb *Framebuffer) Resize(width, height int) {
	fb.Width, fb.Height = width, height
	if cap(fb.Pixels) >= width*height {
		fb.Pixels = fb.Pixels[:width*height]
		return
	}
	fb.Pixels = make([]color.RGBA, width*height)
}

// Clear fills the framebuffer with a solid color.
func (fb *Framebuffer) Clear(c color.RGBA) {
	for i := range fb.Pixels {
		fb.Pixels[i] = c
	}
}

// SetPixel sets a pixel at (x, y) to the given color.
// Bounds checking is performed.
func (fb *Framebuffer) SetPixel(x, y int, c color.RGBA) {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return
	}
	fb.Pixels[y*fb.Width+x] = c
}

// BlendPixel composites c over the pixel at (x, y) using c's alpha.
func (fb *Framebuffer) BlendPixel(x, y int, c color.RGBA) {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height || c.A == 0 {
		return
	}
	i := y*fb.Width + x
	if c.A == 255 {
		fb.Pixels[i] = c
		return
	}
	dst := fb.Pixels[i]
	a := uint32(c.A)
	ia := 255 - a
	fb.Pixels[i] = color.RGBA{
		R: uint8((uint32(c.R)*a + uint32(dst.R)*ia) / 255),
		G: uint8((uint32(c.G)*a + uint32(dst.G)*ia) / 255),
		B: uint8((uint32(c.B)*a + uint32(dst.B)*ia) / 255),
		A: 255,
	}
}

// GetPixel returns the color at (x, y).
// Returns transparent black if out of bounds.
func (fb *Framebuffer) GetPixel(x, y int) color.RGBA {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return color.RGBA{}
	}
	return fb.Pixels[y*fb.Width+x]
}

// DrawLine draws a line from (x0, y0) to (x1, y1) using Bresenham's algorithm.
func (fb *Framebuffer) DrawLine(x0, y0, x1, y1 int, c color.RGBA) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	// Lines far outside the surface are not worth walking.
	const limit = 1 << 16
	if abs(x0) > limit || abs(y0) > limit || abs(x1) > limit || abs(y1) > limit {
		return
	}

	for {
		fb.BlendPixel(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// scanPolygon calls span for every run of pixels whose centers lie inside
// pts (even-odd rule), clipped to the framebuffer. Spans are [x0, x1).
func (fb *Framebuffer) scanPolygon(pts []math3d.Vec2, span func(y, x0, x1 int)) {
	if len(pts) < 3 {
		return
	}
	minY, maxY := pts[0].Y, pts[0].Y
	for _, p := range pts[1:] {
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}
	y0 := max(0, int(math.Floor(minY)))
	y1 := min(fb.Height-1, int(math.Ceil(maxY)))

	for y := y0; y <= y1; y++ {
		yc := float64(y) + 0.5
		fb.xs = fb.xs[:0]
		for i, a := range pts {
			b := pts[(i+1)%len(pts)]
			if (a.Y <= yc && b.Y > yc) || (b.Y <= yc && a.Y > yc) {
				t := (yc - a.Y) / (b.Y - a.Y)
				fb.xs = append(fb.xs, a.X+(b.X-a.X)*t)
			}
		}
		slices.Sort(fb.xs)
		for i := 0; i+1 < len(fb.xs); i += 2 {
			// Pixel x is covered when x+0.5 lies in [xa, xb).
			xa := max(0, int(math.Ceil(fb.xs[i]-0.5)))
			xb := min(fb.Width, int(math.Ceil(fb.xs[i+1]-0.5)))
			if xa < xb {
				span(y, xa, xb)
			}
		}
	}
}

// FillBackground implements Backend.
func (fb *Framebuffer) FillBackground(c Color) {
	fb.Clear(c)
}

// FillPolygon implements Backend.
func (fb *Framebuffer) FillPolygon(pts []math3d.Vec2, c Color) {
	if c.A == 0 {
		return
	}
	fb.scanPolygon(pts, func(y, x0, x1 int) {
		for x := x0; x < x1; x++ {
			fb.BlendPixel(x, y, c)
		}
	})
}

// StrokePolygon implements Backend.
func (fb *Framebuffer) StrokePolygon(pts []math3d.Vec2, c Color) {
	for i, a := range pts {
		b := pts[(i+1)%len(pts)]
		fb.DrawLine(int(math.Floor(a.X)), int(math.Floor(a.Y)), int(math.Floor(b.X)), int(math.Floor(b.Y)), c)
	}
}

// DrawImageWarped implements Backend. Each covered pixel center is mapped
// back into texture space and sampled with the texture's wrap mode.
func (fb *Framebuffer) DrawImageWarped(tex *Texture, m math3d.Affine2, clip []math3d.Vec2) {
	if tex == nil || tex.Width == 0 || tex.Height == 0 {
		return
	}
	inv, err := m.Inverse()
	if err != nil {
		return
	}
	fb.scanPolygon(clip, func(y, x0, x1 int) {
		for x := x0; x < x1; x++ {
			src := inv.Apply(math3d.V2(float64(x)+0.5, float64(y)+0.5))
			fb.BlendPixel(x, y, tex.SampleTexel(src.X, src.Y))
		}
	})
}

// ToImage converts the framebuffer to a standard Go image.RGBA.
func (fb *Framebuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			img.SetRGBA(x, y, fb.Pixels[y*fb.Width+x])
		}
	}
	return img
}

// SavePNG saves the framebuffer as a PNG file.
func (fb *Framebuffer) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, fb.ToImage())
}
