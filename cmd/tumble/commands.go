package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/taigrr/tumble/internal/app"
	"github.com/taigrr/tumble/internal/config"
	"github.com/taigrr/tumble/internal/logger"
	"github.com/taigrr/tumble/pkg/models"
	"github.com/taigrr/tumble/pkg/render"
)

func infoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info [model.glb]",
		Short: "Display scene or model information",
		Long:  "Without arguments, list the configured figures with their face counts. With a GLB path, show the model's vertex and triangle counts and bounding box.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				return runModelInfo(args[0])
			}
			cfg, err := loadConfig(true)
			if err != nil {
				return err
			}
			return runSceneInfo(cmd.Context(), cfg)
		},
	}
}

func runSceneInfo(ctx context.Context, cfg *config.Config) error {
	w, err := app.NewWorld(ctx, cfg, cfg.Display.Width, cfg.Display.Height, logger.Log)
	if err != nil {
		return err
	}
	total := 0
	fmt.Printf("%-10s %-22s %6s %6s %s\n", "SHAPE", "CENTER", "FACES", "MASS", "TEXTURE")
	for _, f := range w.Figures() {
		c := f.OriginalCenter
		mass := fmt.Sprintf("%.2f", f.Mass)
		if !f.Movable() {
			mass = "static"
		}
		tex := f.Texture.Name
		if tex == "" {
			tex = "-"
		}
		fmt.Printf("%-10s (%5.2f, %5.2f, %5.2f)  %6d %6s %s\n", f.Name, c.X, c.Y, c.Z, len(f.Mesh.Faces), mass, tex)
		total += len(f.Mesh.Faces)
	}
	fmt.Printf("\n%d figures, %d faces\n", len(w.Figures()), total)
	return nil
}

func runModelInfo(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot access file: %w", err)
	}
	mesh, img, err := models.LoadGLBWithTexture(path)
	if err != nil {
		return fmt.Errorf("load model: %w", err)
	}
	mesh.CalculateBounds()
	size := mesh.Size()
	center := mesh.Center()

	fmt.Printf("File:       %s\n", filepath.Base(path))
	fmt.Printf("Format:     %s\n", strings.ToUpper(strings.TrimPrefix(filepath.Ext(path), ".")))
	fmt.Printf("Size:       %.2f KB\n", float64(info.Size())/1024)
	fmt.Println()
	fmt.Printf("Vertices:   %d\n", mesh.VertexCount())
	fmt.Printf("Triangles:  %d\n", mesh.TriangleCount())
	fmt.Println()
	fmt.Printf("Bounds:     %.3f x %.3f x %.3f\n", size.X, size.Y, size.Z)
	fmt.Printf("Center:     (%.3f, %.3f, %.3f)\n", center.X, center.Y, center.Z)
	if img != nil {
		b := img.Bounds()
		fmt.Printf("Texture:    embedded %dx%d\n", b.Dx(), b.Dy())
	} else {
		fmt.Printf("Texture:    none\n")
	}
	return nil
}

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath, overrides)
			if err != nil {
				return err
			}
			return cfg.Write(cmd.OutOrStdout())
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the default config file location",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), filepath.Join(config.ConfigDir(), "config.yaml"))
		},
	})
	return cmd
}

func snapshotCmd() *cobra.Command {
	var (
		ticks         int
		width, height int
	)
	cmd := &cobra.Command{
		Use:   "snapshot <out.png>",
		Short: "Render the scene headlessly to a PNG",
		Long:  "Run the simulation for a number of ticks without a terminal, waiting for textures to load, then save the last frame as a PNG.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(true)
			if err != nil {
				return err
			}
			defer logger.Sync()

			ctx := cmd.Context()
			w, err := app.NewWorld(ctx, cfg, width, height, logger.Log)
			if err != nil {
				return err
			}
			w.WaitForAssets()

			fb := render.NewFramebuffer(width, height)
			st := w.Render(fb)
			for range ticks {
				st = w.Tick(fb)
			}
			if err := fb.SavePNG(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s: %d drawables, %d textured, %d clipped\n",
				args[0], st.Drawables, st.Textured, st.Clipped)
			return nil
		},
	}
	cmd.Flags().IntVar(&ticks, "ticks", 120, "Ticks to simulate before saving")
	cmd.Flags().IntVar(&width, "width", 800, "Image width")
	cmd.Flags().IntVar(&height, "height", 800, "Image height")
	return cmd
}
