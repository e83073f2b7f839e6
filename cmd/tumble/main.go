// tumble - a painter's-algorithm 3D scene with bouncing figures, drawn in
// the terminal.
//
// Controls:
//
//	Mouse drag  - Look around (yaw/pitch)
//	W/S         - Move forward/back
//	A/D         - Strafe left/right
//	Space/C     - Move up/down
//	L           - Toggle polygon outlines
//	T           - Toggle textures
//	G           - Toggle lighting
//	P           - Toggle physics
//	M           - Toggle light marker
//	R           - Reset figures
//	I           - Random impulse
//	?           - Toggle HUD overlay
//	Esc         - Quit
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/taigrr/tumble/internal/config"
	"github.com/taigrr/tumble/internal/logger"
)

var (
	configPath string
	overrides  config.Overrides
)

func main() {
	cmd := &cobra.Command{
		Use:   "tumble",
		Short: "Terminal 3D scene with simple physics",
		Long: `tumble - Terminal 3D scene with simple physics

Draws textured, lit figures with the painter's algorithm and lets them fall,
bounce and settle on the ground.

Controls:
  Mouse drag  - Look around
  W/S/A/D     - Move
  Space/C     - Up/down
  L/T/G/P/M   - Toggle lines, textures, lighting, physics, light marker
  R           - Reset figures
  I           - Random impulse
  ?           - Toggle HUD overlay
  Esc         - Quit`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(false)
			if err != nil {
				return err
			}
			defer logger.Sync()
			if err := run(cmd.Context(), cfg); err != nil {
				logger.Error("tumble exited", zap.Error(err))
				return err
			}
			return nil
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&configPath, "config", "c", "", "Path to config file")
	pf.BoolVar(&overrides.Debug, "debug", false, "Enable debug logging")
	pf.IntVar(&overrides.FPS, "fps", 0, "Target FPS (overrides config)")
	pf.StringVar(&overrides.LogFile, "log-file", "", "Write logs to this file")
	pf.BoolVar(&overrides.NoPhysics, "no-physics", false, "Start with physics paused")
	pf.BoolVar(&overrides.NoTextures, "no-textures", false, "Start with textures off")
	pf.BoolVar(&overrides.Lines, "lines", false, "Start with polygon outlines on")

	cmd.AddCommand(infoCmd(), configCmd(), snapshotCmd())

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig loads the configuration and starts logging. The terminal owns
// stdout while the scene runs, so console logging is only for commands
// that exit straight away.
func loadConfig(console bool) (*config.Config, error) {
	cfg, err := config.Load(configPath, overrides)
	if err != nil {
		return nil, err
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile, console); err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	logger.Debug("config loaded",
		zap.String("path", configPath),
		zap.Int("fps", cfg.Display.FPS),
		zap.Int("figures", len(cfg.Scene.Figures)))
	return cfg, nil
}
