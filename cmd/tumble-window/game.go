package main

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/taigrr/tumble/pkg/render"
	"github.com/taigrr/tumble/pkg/render/ebitensurface"
	"github.com/taigrr/tumble/pkg/scene"
)

var movementKeys = map[ebiten.Key]string{
	ebiten.KeyW:     scene.KeyForward,
	ebiten.KeyS:     scene.KeyBack,
	ebiten.KeyA:     scene.KeyLeft,
	ebiten.KeyD:     scene.KeyRight,
	ebiten.KeySpace: scene.KeyUp,
	ebiten.KeyShift: scene.KeyDown,
}

var toggleKeys = map[ebiten.Key]scene.Control{
	ebiten.KeyL: scene.ControlLines,
	ebiten.KeyT: scene.ControlTextures,
	ebiten.KeyG: scene.ControlLighting,
	ebiten.KeyP: scene.ControlPhysics,
	ebiten.KeyM: scene.ControlLightMarker,
}

// game adapts a World to ebiten.Game. Ebitengine calls Update, Draw and
// Layout from one goroutine, which makes it the world's tick goroutine.
type game struct {
	world   *scene.World
	surface *ebitensurface.Surface
	square  bool
	hud     bool

	width, height int
	stats         scene.FrameStats
}

func newGame(w *scene.World, s *ebitensurface.Surface, square bool) *game {
	return &game{world: w, surface: s, square: square}
}

func (g *game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	in := g.world.Input
	for key, name := range movementKeys {
		in.SetKey(name, ebiten.IsKeyPressed(key))
	}

	mx, my := ebiten.CursorPosition()
	x, y := float64(mx), float64(my)
	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		in.PointerDown(x, y)
	case inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft):
		in.PointerMove(x, y)
		in.PointerUp()
	default:
		in.PointerMove(x, y)
	}

	for key, c := range toggleKeys {
		if inpututil.IsKeyJustPressed(key) {
			g.world.Toggle(c)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.world.ResetAll()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyI) {
		g.world.ImpulseAll()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySlash) {
		g.hud = !g.hud
	}

	g.world.Update()
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.surface.SetTarget(screen)
	g.stats = g.world.Render(g.surface)
	if g.hud {
		ebitenutil.DebugPrint(screen, g.status())
	}
}

func (g *game) status() string {
	f := g.world.Flags
	return fmt.Sprintf("%.0f FPS  %d figs  %d polys  %d clipped\nlines %v  tex %v  light %v  physics %v  marker %v",
		ebiten.ActualFPS(), g.stats.Figures, g.stats.Drawables, g.stats.Clipped,
		f.Lines, f.Textures, f.Lighting, f.Physics, f.LightMarker)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.world.SetViewport(render.NewViewport(g.width, g.height, g.square))
	}
	return outsideWidth, outsideHeight
}
