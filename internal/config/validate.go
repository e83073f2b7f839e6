package config

import (
	"errors"
	"fmt"
	"slices"
)

// Validate reports every setting that would make the simulation or the
// renderer misbehave.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Display.FPS > 0, "display.fps must be positive, got %d", c.Display.FPS)
	check(c.Display.Width >= 0 && c.Display.Height >= 0, "display size must not be negative")
	check(c.Camera.Sensitivity >= 0, "camera.sensitivity must not be negative")
	check(c.Camera.MoveSpeed >= 0, "camera.move_speed must not be negative")

	p := c.Physics
	check(p.Gravity <= 0, "physics.gravity must be <= 0, got %v", p.Gravity)
	check(p.Restitution >= 0 && p.Restitution <= 1, "physics.restitution must be in [0,1], got %v", p.Restitution)
	check(p.Friction >= 0 && p.Friction <= 1, "physics.friction must be in [0,1], got %v", p.Friction)
	check(p.StopEps >= 0 && p.SnapVelY >= 0 && p.SnapVelXZ >= 0, "physics thresholds must not be negative")
	check(p.SnapAngle > 0, "physics.snap_angle must be positive, got %v", p.SnapAngle)

	check(c.Render.Near > 0, "render.near must be positive, got %v", c.Render.Near)

	for i, f := range c.Scene.Figures {
		check(slices.Contains(Shapes, f.Shape), "scene.figures[%d]: unknown shape %q", i, f.Shape)
		check(f.Mass >= 0, "scene.figures[%d]: mass must not be negative", i)
		check(f.Shape != "model" || f.Model != "", "scene.figures[%d]: model shape needs a model path", i)
	}

	return errors.Join(errs...)
}
