// Package app builds a scene from configuration. Both hosts share it.
package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/taigrr/tumble/internal/config"
	"github.com/taigrr/tumble/pkg/math3d"
	"github.com/taigrr/tumble/pkg/render"
	"github.com/taigrr/tumble/pkg/scene"
)

func vec(v config.Vec) math3d.Vec3 {
	return math3d.V3(v[0], v[1], v[2])
}

// Flags returns the startup toggles from cfg.
func Flags(cfg *config.Config) scene.Flags {
	return scene.Flags{
		Lines:       cfg.Render.Lines,
		Textures:    cfg.Render.Textures,
		Lighting:    cfg.Render.Lighting,
		Physics:     cfg.Physics.Enabled,
		LightMarker: cfg.Render.LightMarker,
	}
}

// Physics returns the simulation constants from cfg.
func Physics(cfg *config.Config) scene.Physics {
	p := cfg.Physics
	return scene.Physics{
		Gravity:     p.Gravity,
		GroundY:     p.GroundY,
		Restitution: p.Restitution,
		Friction:    p.Friction,
		StopEps:     p.StopEps,
		SnapVelY:    p.SnapVelY,
		SnapVelXZ:   p.SnapVelXZ,
		SnapAngle:   p.SnapAngle,
	}
}

// FigureSpec converts one configured figure.
func FigureSpec(fc config.FigureConfig) (scene.FigureSpec, error) {
	spec := scene.FigureSpec{
		Shape:    fc.Shape,
		Center:   vec(fc.Center),
		Size:     fc.Size,
		Height:   fc.Height,
		Radius:   fc.Radius,
		Steps:    fc.Steps,
		LatSteps: fc.LatSteps,
		LonSteps: fc.LonSteps,
		Mass:     fc.Mass,
		Static:   fc.Static,
		Texture:  fc.Texture,
		Model:    fc.Model,
	}
	if fc.Color != "" {
		c, err := render.ParseHexColor(fc.Color)
		if err != nil {
			return spec, fmt.Errorf("figure %s color: %w", fc.Shape, err)
		}
		spec.Color = &c
	}
	return spec, nil
}

// NewWorld creates the world described by cfg, sized for a width x height
// surface, and starts loading its textures. Figures that fail to build are
// reported together; the rest of the scene is still returned.
func NewWorld(ctx context.Context, cfg *config.Config, width, height int, log *zap.Logger) (*scene.World, error) {
	if log == nil {
		log = zap.NewNop()
	}

	bg, err := render.ParseHexColor(cfg.Display.Background)
	if err != nil {
		return nil, fmt.Errorf("background color: %w", err)
	}
	fg, err := render.ParseHexColor(cfg.Render.Foreground)
	if err != nil {
		return nil, fmt.Errorf("foreground color: %w", err)
	}

	cam := render.NewCamera()
	cam.SetPosition(vec(cfg.Camera.Position))
	cam.SetRotation(cfg.Camera.Yaw, cfg.Camera.Pitch)
	cam.Sensitivity = cfg.Camera.Sensitivity
	cam.MoveSpeed = cfg.Camera.MoveSpeed

	opts := []scene.Option{
		scene.WithLogger(log.Named("scene")),
		scene.WithCamera(cam),
		scene.WithPhysics(Physics(cfg)),
		scene.WithFlags(Flags(cfg)),
		scene.WithLight(scene.NewLight(vec(cfg.Render.LightDirection))),
		scene.WithColors(bg, fg),
		scene.WithNear(cfg.Render.Near),
		scene.WithFPS(cfg.Display.FPS),
		scene.WithViewport(render.NewViewport(width, height, cfg.Display.Square)),
		scene.WithAssets(scene.NewAssetLoader(cfg.Assets.Dir, log.Named("assets"))),
	}
	if cfg.Camera.Smoothing {
		opts = append(opts, scene.WithLookSmoothing())
	}
	if cfg.Physics.ImpulseSeed != 0 {
		opts = append(opts, scene.WithSeed(cfg.Physics.ImpulseSeed))
	}
	w := scene.NewWorld(opts...)

	var errs []error
	for i, fc := range cfg.Scene.Figures {
		spec, err := FigureSpec(fc)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		f, err := scene.BuildFigure(spec)
		if err != nil {
			errs = append(errs, fmt.Errorf("figure %d: %w", i, err))
			continue
		}
		w.AddFigure(f)
		if fc.Texture != "" && f.Texture.State == scene.TextureNone {
			w.RequestTexture(ctx, f, fc.Texture)
		}
	}
	return w, errors.Join(errs...)
}
