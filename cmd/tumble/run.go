package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"go.uber.org/zap"

	"github.com/taigrr/tumble/internal/app"
	"github.com/taigrr/tumble/internal/config"
	"github.com/taigrr/tumble/internal/logger"
	"github.com/taigrr/tumble/pkg/render"
	"github.com/taigrr/tumble/pkg/scene"
)

// Approximate window pixels per terminal cell, so a drag turns the camera
// about as far as the same hand movement does in the window host.
const (
	cellPixelsX = 8.0
	cellPixelsY = 16.0
)

// host owns the terminal and the world. Everything runs on the goroutine
// that calls loop.
type host struct {
	cfg   *config.Config
	term  *uv.Terminal
	world *scene.World
	tr    *render.TerminalRenderer
	fb    *render.Framebuffer
	hud   *HUD
	log   *zap.Logger

	width, height int
	holdTicks     int // ticks a key stays down after a press event
}

func run(ctx context.Context, cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := logger.Named("tumble")

	term := uv.DefaultTerminal()
	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	h := &host{
		cfg:       cfg,
		term:      term,
		log:       log,
		hud:       NewHUD(),
		holdTicks: max(cfg.Display.FPS/6, 2),
	}
	h.resize(width, height)

	fbw, fbh := h.tr.FramebufferSize()
	world, err := app.NewWorld(ctx, cfg, fbw, fbh, logger.Log)
	if world == nil {
		return err
	}
	if err != nil {
		// A bad figure should not stop the rest of the scene from showing.
		log.Warn("scene built with errors", zap.Error(err))
	}
	h.world = world

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}
	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	fmt.Fprint(os.Stdout, "\x1b[?1003h") // any-event mouse tracking
	fmt.Fprint(os.Stdout, "\x1b[?1006h") // SGR extended mouse mode

	defer func() {
		fmt.Fprint(os.Stdout, "\x1b[?1003l")
		fmt.Fprint(os.Stdout, "\x1b[?1006l")
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}()

	log.Info("started",
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Int("fps", cfg.Display.FPS),
		zap.Int("figures", len(world.Figures())))

	return h.loop(ctx)
}

func (h *host) loop(ctx context.Context) error {
	ticker := time.NewTicker(time.Second / time.Duration(h.cfg.Display.FPS))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-h.term.Events():
			if !ok {
				return nil
			}
			if quit := h.handle(ev); quit {
				return nil
			}
		case <-ticker.C:
			if err := h.frame(); err != nil {
				return err
			}
		}
	}
}

func (h *host) frame() error {
	st := h.world.Tick(h.fb)
	h.tr.Render(h.fb)
	if err := h.tr.Flush(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	h.hud.UpdateFPS()
	h.hud.Render(h.width, h.height, h.world.Flags, st)
	return nil
}

func (h *host) resize(width, height int) {
	h.width, h.height = width, height
	h.tr = render.NewTerminalRenderer(h.term, width, height)
	fbw, fbh := h.tr.FramebufferSize()
	if h.fb == nil {
		h.fb = render.NewFramebuffer(fbw, fbh)
	} else {
		h.fb.Resize(fbw, fbh)
	}
	if h.world != nil {
		h.world.SetViewport(render.NewViewport(fbw, fbh, h.cfg.Display.Square))
	}
}

// handle applies one terminal event and reports whether to quit.
func (h *host) handle(ev uv.Event) bool {
	in := h.world.Input
	switch ev := ev.(type) {
	case uv.WindowSizeEvent:
		h.term.Erase()
		h.term.Resize(ev.Width, ev.Height)
		h.resize(ev.Width, ev.Height)
		h.log.Debug("resized", zap.Int("width", ev.Width), zap.Int("height", ev.Height))

	case uv.KeyPressEvent:
		switch {
		case ev.MatchString("escape", "ctrl+c"):
			return true
		case ev.MatchString("w", "up"):
			in.PressFor(scene.KeyForward, h.holdTicks)
		case ev.MatchString("s", "down"):
			in.PressFor(scene.KeyBack, h.holdTicks)
		case ev.MatchString("a", "left"):
			in.PressFor(scene.KeyLeft, h.holdTicks)
		case ev.MatchString("d", "right"):
			in.PressFor(scene.KeyRight, h.holdTicks)
		case ev.MatchString("space"):
			in.PressFor(scene.KeyUp, h.holdTicks)
		case ev.MatchString("c", "shift+space"):
			in.PressFor(scene.KeyDown, h.holdTicks)
		case ev.MatchString("l"):
			h.world.Toggle(scene.ControlLines)
		case ev.MatchString("t"):
			h.world.Toggle(scene.ControlTextures)
		case ev.MatchString("g"):
			h.world.Toggle(scene.ControlLighting)
		case ev.MatchString("p"):
			h.world.Toggle(scene.ControlPhysics)
		case ev.MatchString("m"):
			h.world.Toggle(scene.ControlLightMarker)
		case ev.MatchString("r"):
			h.world.ResetAll()
		case ev.MatchString("i"):
			h.world.ImpulseAll()
		case ev.MatchString("?"), ev.MatchString("shift+/"):
			h.hud.Visible = !h.hud.Visible
		}

	case uv.KeyReleaseEvent:
		// Only terminals with the kitty keyboard protocol send these.
		switch {
		case ev.MatchString("w", "up"):
			in.SetKey(scene.KeyForward, false)
		case ev.MatchString("s", "down"):
			in.SetKey(scene.KeyBack, false)
		case ev.MatchString("a", "left"):
			in.SetKey(scene.KeyLeft, false)
		case ev.MatchString("d", "right"):
			in.SetKey(scene.KeyRight, false)
		case ev.MatchString("space"):
			in.SetKey(scene.KeyUp, false)
		case ev.MatchString("c", "shift+space"):
			in.SetKey(scene.KeyDown, false)
		}

	case uv.MouseClickEvent:
		in.PointerDown(float64(ev.X)*cellPixelsX, float64(ev.Y)*cellPixelsY)

	case uv.MouseMotionEvent:
		in.PointerMove(float64(ev.X)*cellPixelsX, float64(ev.Y)*cellPixelsY)

	case uv.MouseReleaseEvent:
		in.PointerUp()
	}
	return false
}
