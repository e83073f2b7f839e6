package scene

import (
	"errors"
	"fmt"

	"github.com/taigrr/tumble/pkg/math3d"
	"github.com/taigrr/tumble/pkg/models"
	"github.com/taigrr/tumble/pkg/render"
)

// ErrUnknownShape is returned by BuildFigure for unrecognised shapes.
var ErrUnknownShape = errors.New("scene: unknown shape")

// FigureSpec describes a figure to build. Zero size fields take per-shape
// defaults.
type FigureSpec struct {
	Shape    string
	Center   math3d.Vec3
	Size     float64
	Height   float64
	Radius   float64
	Steps    int
	LatSteps int
	LonSteps int
	Mass     float64 // 0 means 1
	Static   bool
	Texture  string
	Color    *render.Color
	Model    string
}

// groundDivisions is how many cells per side the ground is split into when
// the spec leaves Steps at zero.
const groundDivisions = 8

func orDefault(v, def float64) float64 {
	if v <= 0 {
		return def
	}
	return v
}

// BuildFigure creates the mesh and figure for a spec. A model figure whose
// GLB file embeds a texture gets it installed immediately.
func BuildFigure(spec FigureSpec) (*Figure, error) {
	var (
		mesh       *models.Mesh
		embedded   *render.Texture
		static     = spec.Static
		collisionR float64
	)

	switch spec.Shape {
	case "box":
		mesh = models.NewBox(orDefault(spec.Size, 0.5) / 2)
	case "pyramid":
		mesh = models.NewPyramid(orDefault(spec.Size, 0.4), orDefault(spec.Height, 0.5))
	case "sphere":
		r := orDefault(spec.Radius, 0.3)
		lat := spec.LatSteps
		if lat <= 0 {
			lat = 8
		}
		lon := spec.LonSteps
		if lon <= 0 {
			lon = 12
		}
		mesh = models.NewSphere(r, lat, lon)
		collisionR = r
	case "prism":
		steps := spec.Steps
		if steps <= 0 {
			steps = 16
		}
		mesh = models.NewPrism(orDefault(spec.Radius, 0.25), orDefault(spec.Height, 0.5), steps)
	case "ground":
		n := spec.Steps
		if n <= 0 {
			n = groundDivisions
		}
		if n == 1 {
			mesh = models.NewGround(orDefault(spec.Size, 3))
		} else {
			mesh = models.NewGroundGrid(orDefault(spec.Size, 3), n)
		}
		static = true
	case "model":
		loader := models.NewGLTFLoader()
		loader.FitSize = orDefault(spec.Size, 1)
		m, img, err := loader.LoadWithTexture(spec.Model)
		if err != nil {
			return nil, fmt.Errorf("loading model %s: %w", spec.Model, err)
		}
		mesh = m
		if img != nil {
			embedded = render.TextureFromImage(img)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownShape, spec.Shape)
	}

	name := spec.Shape
	var f *Figure
	if static {
		f = NewStaticFigure(name, mesh, spec.Center)
	} else {
		f = NewFigure(name, mesh, spec.Center)
		f.Mass = orDefault(spec.Mass, 1)
		if collisionR > 0 {
			f.Radius = collisionR
		}
	}

	if spec.Color != nil {
		f.Color = *spec.Color
	}
	if embedded != nil {
		f.Texture = TextureSlot{Name: spec.Model, State: TextureReady, Texture: embedded}
	}
	return f, nil
}
