package scene

import (
	"context"
	"math/rand/v2"

	"go.uber.org/zap"

	"github.com/taigrr/tumble/pkg/math3d"
	"github.com/taigrr/tumble/pkg/render"
)

// Flags are the runtime toggles exposed to the host UI.
type Flags struct {
	Lines       bool // stroke polygon outlines
	Textures    bool // draw textures where loaded
	Lighting    bool // directional shading
	Physics     bool // advance the simulation
	LightMarker bool // draw the light direction marker
}

// DefaultFlags returns the startup toggles.
func DefaultFlags() Flags {
	return Flags{Textures: true, Lighting: true, Physics: true, LightMarker: true}
}

// World owns all mutable scene state: camera, figures, input and toggles.
// A World is driven by a single goroutine calling Update and Render (or
// Tick) once per display refresh.
type World struct {
	Camera   *render.Camera
	Input    *Input
	Light    *Light
	Physics  Physics
	Flags    Flags
	Viewport render.Viewport

	Background render.Color
	LineColor  render.Color
	Near       float64

	figures []*Figure
	assets  *AssetLoader
	look    *LookSmoother
	smooth  bool
	rng     *rand.Rand
	log     *zap.Logger
	fps     int
	ticks   uint64
	stats   FrameStats

	// per-frame scratch, reused between ticks
	clipped   []render.Triangle
	drawables []render.Drawable
	points    []math3d.Vec2
}

// Option configures a World.
type Option func(*World)

// WithLogger sets the logger. The default discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(w *World) { w.log = log }
}

// WithPhysics sets the simulation constants.
func WithPhysics(p Physics) Option {
	return func(w *World) { w.Physics = p }
}

// WithFlags sets the initial toggles.
func WithFlags(f Flags) Option {
	return func(w *World) { w.Flags = f }
}

// WithCamera replaces the default camera.
func WithCamera(c *render.Camera) Option {
	return func(w *World) { w.Camera = c }
}

// WithLight replaces the default light.
func WithLight(l *Light) Option {
	return func(w *World) { w.Light = l }
}

// WithColors sets the background and line overlay colors.
func WithColors(background, lines render.Color) Option {
	return func(w *World) {
		w.Background = background
		w.LineColor = lines
	}
}

// WithNear sets the near clipping plane distance.
func WithNear(near float64) Option {
	return func(w *World) { w.Near = near }
}

// WithFPS sets the tick rate used for time-based animation.
func WithFPS(fps int) Option {
	return func(w *World) { w.fps = max(fps, 1) }
}

// WithLookSmoothing eases camera rotation with a spring.
func WithLookSmoothing() Option {
	return func(w *World) { w.smooth = true }
}

// WithSeed seeds the random source used by ImpulseAll.
func WithSeed(seed uint64) Option {
	return func(w *World) { w.rng = rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15)) }
}

// WithAssets sets the texture loader.
func WithAssets(l *AssetLoader) Option {
	return func(w *World) { w.assets = l }
}

// WithViewport sets the surface the world is rendered to.
func WithViewport(vp render.Viewport) Option {
	return func(w *World) { w.Viewport = vp }
}

// NewWorld creates an empty world.
func NewWorld(opts ...Option) *World {
	w := &World{
		Camera:     render.NewCamera(),
		Input:      NewInput(),
		Light:      NewLight(math3d.V3(0.5, 1, -0.6)),
		Physics:    DefaultPhysics(),
		Flags:      DefaultFlags(),
		Viewport:   render.NewViewport(800, 800, true),
		Background: render.ColorBackground,
		LineColor:  render.ColorForeground,
		Near:       render.DefaultNear,
		log:        zap.NewNop(),
		fps:        60,
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.rng == nil {
		w.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if w.assets == nil {
		w.assets = NewAssetLoader("", w.log)
	}
	if w.smooth {
		w.look = NewLookSmoother(w.fps)
		w.look.Reset(w.Camera.Yaw, w.Camera.Pitch)
	}
	return w
}

// AddFigure appends a figure. Figures are drawn and simulated in insertion
// order before depth sorting.
func (w *World) AddFigure(f *Figure) {
	w.figures = append(w.figures, f)
	w.log.Debug("figure added",
		zap.String("name", f.Name),
		zap.Int("faces", len(f.Mesh.Faces)),
		zap.Bool("movable", f.Movable()))
}

// Figures returns the live figures in insertion order.
func (w *World) Figures() []*Figure {
	return w.figures
}

// RequestTexture starts loading a texture for f in the background. Until it
// arrives the figure is drawn flat.
func (w *World) RequestTexture(ctx context.Context, f *Figure, name string) {
	w.assets.Request(ctx, f, name)
}

// SetViewport changes the output surface size, e.g. after a resize.
func (w *World) SetViewport(vp render.Viewport) {
	w.Viewport = vp
}

// Ticks returns the number of completed Update calls.
func (w *World) Ticks() uint64 {
	return w.ticks
}

// Stats returns the statistics of the last rendered frame.
func (w *World) Stats() FrameStats {
	return w.stats
}

// WaitForAssets blocks until every requested texture has finished loading
// and installs them. Headless renders use it to get a deterministic frame.
func (w *World) WaitForAssets() {
	w.assets.Wait()
	w.assets.Poll()
}
