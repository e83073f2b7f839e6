package app

import (
	"context"
	"testing"

	"github.com/taigrr/tumble/internal/config"
	"github.com/taigrr/tumble/pkg/render"
	"github.com/taigrr/tumble/pkg/scene"
)

func TestNewWorldDefault(t *testing.T) {
	cfg := config.Default()
	w, err := NewWorld(context.Background(), cfg, 200, 100, nil)
	if err != nil {
		t.Fatalf("NewWorld() error = %v", err)
	}

	figs := w.Figures()
	if len(figs) != len(cfg.Scene.Figures) {
		t.Fatalf("figures = %d, want %d", len(figs), len(cfg.Scene.Figures))
	}
	if figs[4].Movable() {
		t.Error("ground is movable")
	}
	if figs[4].Color != render.RGB(0x20, 0x40, 0x20) {
		t.Errorf("ground color = %v", figs[4].Color)
	}
	if figs[0].Texture.State != scene.TexturePending {
		t.Errorf("box texture state = %v, want pending", figs[0].Texture.State)
	}
	if figs[2].Texture.State != scene.TextureNone {
		t.Errorf("prism texture state = %v, want none", figs[2].Texture.State)
	}
	if w.Viewport != render.NewViewport(200, 100, true) {
		t.Errorf("viewport = %+v", w.Viewport)
	}
	if w.Camera.Position.Z != -3 {
		t.Errorf("camera z = %v, want -3", w.Camera.Position.Z)
	}
	if w.Flags != scene.DefaultFlags() {
		t.Errorf("flags = %+v, want defaults", w.Flags)
	}
}

func TestNewWorldReportsBadFigures(t *testing.T) {
	cfg := config.Default()
	cfg.Scene.Figures = []config.FigureConfig{
		{Shape: "box"},
		{Shape: "box", Color: "green"},
		{Shape: "torus"},
	}
	w, err := NewWorld(context.Background(), cfg, 100, 100, nil)
	if err == nil {
		t.Fatal("expected an error for bad figures")
	}
	if w == nil || len(w.Figures()) != 1 {
		t.Fatal("valid figures were not kept")
	}
}

func TestNewWorldBadBackground(t *testing.T) {
	cfg := config.Default()
	cfg.Display.Background = "nope"
	if _, err := NewWorld(context.Background(), cfg, 100, 100, nil); err == nil {
		t.Error("expected an error for a bad background color")
	}
}

func TestOverridesReachFlags(t *testing.T) {
	cfg := config.Default()
	config.Overrides{NoPhysics: true, NoTextures: true, Lines: true}.Apply(cfg)
	f := Flags(cfg)
	if f.Physics || f.Textures || !f.Lines {
		t.Errorf("flags = %+v", f)
	}
}
