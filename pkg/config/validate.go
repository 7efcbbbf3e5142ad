package config

import (
	"fmt"
	"math"

	"github.com/ChicagoDave/skyline/pkg/validation"
)

// Validate checks the config for values the generator and renderers
// cannot use.
func (c *Config) Validate() *validation.Report {
	r := validation.NewReport()

	canvasSide := func(path string, v float64) {
		if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
			r.AddError(validation.Result{
				Level:       validation.LevelConfig,
				Message:     fmt.Sprintf("%s must be positive and finite", path),
				Path:        path,
				ActualValue: v,
				Expected:    "> 0",
			})
			return
		}
		if v > MaxCanvasSide {
			r.AddError(validation.Result{
				Level:       validation.LevelConfig,
				Message:     fmt.Sprintf("%s exceeds %v", path, MaxCanvasSide),
				Path:        path,
				ActualValue: v,
				Expected:    fmt.Sprintf("<= %v", MaxCanvasSide),
			})
		}
	}
	canvasSide("canvas.width", c.Canvas.Width)
	canvasSide("canvas.height", c.Canvas.Height)

	switch c.Order {
	case OrderGeneration, OrderStack:
	default:
		r.AddError(validation.Result{
			Level:       validation.LevelConfig,
			Message:     fmt.Sprintf("unknown order %q", c.Order),
			Path:        "order",
			ActualValue: string(c.Order),
			Expected:    "generation or stack",
		})
	}

	if c.GroundStrip < 0 || c.GroundStrip > c.Canvas.Height {
		r.AddWarning(validation.Result{
			Level:       validation.LevelConfig,
			Message:     "ground strip outside the canvas",
			Path:        "ground_strip",
			ActualValue: c.GroundStrip,
		})
	}
	if c.Fog < 0 {
		r.AddError(validation.Result{
			Level:       validation.LevelConfig,
			Message:     "fog height must not be negative",
			Path:        "fog",
			ActualValue: c.Fog,
		})
	}

	for _, e := range c.Palette.Entries() {
		if _, err := Color(e[1]); err != nil {
			r.AddError(validation.Result{
				Level:       validation.LevelConfig,
				Message:     err.Error(),
				Path:        "palette." + e[0],
				ActualValue: e[1],
				Expected:    "#rrggbb",
			})
		}
	}

	for i, s := range c.ShootingStars {
		if s.Length <= 0 || s.Thickness <= 0 || s.Duration <= 0 || s.Delay < 0 {
			r.AddError(validation.Result{
				Level:    validation.LevelConfig,
				Message:  "shooting star needs positive length, thickness and duration",
				Path:     fmt.Sprintf("shooting_stars[%d]", i),
				Expected: "length, thickness, duration > 0; delay >= 0",
			})
		}
	}

	if c.Server.Port < 0 || c.Server.Port > 65535 {
		r.AddError(validation.Result{
			Level:       validation.LevelConfig,
			Message:     "server port out of range",
			Path:        "server.port",
			ActualValue: c.Server.Port,
		})
	}

	if c.ClampPerspective {
		r.AddInfo(validation.Result{
			Level:   validation.LevelConfig,
			Message: "perspective factor clamped to [0,1]",
			Path:    "clamp_perspective",
		})
	}

	return r
}
