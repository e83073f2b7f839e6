// tumble-window runs the tumble scene in a desktop window.
//
// Controls are the same as the terminal version, with Shift for down.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/taigrr/tumble/internal/app"
	"github.com/taigrr/tumble/internal/config"
	"github.com/taigrr/tumble/internal/logger"
	"github.com/taigrr/tumble/pkg/render/ebitensurface"
)

var (
	configPath string
	overrides  config.Overrides
)

func main() {
	cmd := &cobra.Command{
		Use:           "tumble-window",
		Short:         "Windowed 3D scene with simple physics",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context())
		},
	}
	f := cmd.Flags()
	f.StringVarP(&configPath, "config", "c", "", "Path to config file")
	f.BoolVar(&overrides.Debug, "debug", false, "Enable debug logging")
	f.IntVar(&overrides.FPS, "fps", 0, "Target FPS (overrides config)")
	f.StringVar(&overrides.LogFile, "log-file", "", "Also write logs to this file")
	f.BoolVar(&overrides.NoPhysics, "no-physics", false, "Start with physics paused")
	f.BoolVar(&overrides.NoTextures, "no-textures", false, "Start with textures off")
	f.BoolVar(&overrides.Lines, "lines", false, "Start with polygon outlines on")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load(configPath, overrides)
	if err != nil {
		return err
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile, true); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()

	world, err := app.NewWorld(ctx, cfg, cfg.Display.Width, cfg.Display.Height, logger.Log)
	if world == nil {
		return err
	}
	if err != nil {
		logger.Warn("scene built with errors", zap.Error(err))
	}

	g := newGame(world, ebitensurface.New(), cfg.Display.Square)
	defer g.surface.Release()

	ebiten.SetWindowSize(cfg.Display.Width, cfg.Display.Height)
	ebiten.SetWindowTitle("tumble")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.Display.FPS)

	logger.Info("window started",
		zap.Int("width", cfg.Display.Width),
		zap.Int("height", cfg.Display.Height),
		zap.Int("fps", cfg.Display.FPS))

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Error("window exited", zap.Error(err))
		return err
	}
	return nil
}
