package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ChicagoDave/skyline/internal/server"
	"github.com/ChicagoDave/skyline/pkg/config"
	"github.com/ChicagoDave/skyline/pkg/render/raster"
	"github.com/ChicagoDave/skyline/pkg/render/svg"
	"github.com/ChicagoDave/skyline/pkg/render/term"
	"github.com/ChicagoDave/skyline/pkg/scene"
	"github.com/ChicagoDave/skyline/pkg/skyline"
	"github.com/ChicagoDave/skyline/pkg/validation"
	"github.com/gdamore/tcell/v2"
)

// loadConfig loads the config, applies flag overrides and validates it.
func loadConfig(opts *options) (*config.Config, *validation.Report, error) {
	cfg := config.Default()
	if opts.configPath != "" {
		var err error
		if cfg, err = config.Load(opts.configPath); err != nil {
			return nil, nil, fmt.Errorf("loading config: %w", err)
		}
	}
	if opts.width != 0 {
		cfg.Canvas.Width = opts.width
	}
	if opts.height != 0 {
		cfg.Canvas.Height = opts.height
	}
	if opts.seed != 0 {
		cfg.Seed = opts.seed
	}
	if opts.clamp {
		cfg.ClampPerspective = true
	}
	return cfg, cfg.Validate(), nil
}

// loadValidConfig is loadConfig that also rejects invalid configs.
func loadValidConfig(opts *options) (*config.Config, error) {
	cfg, report, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}
	if !report.Valid {
		printValidationReport(os.Stderr, report)
		return nil, fmt.Errorf("invalid config: %w", report.Err())
	}
	return cfg, nil
}

func generate(cfg *config.Config) ([]skyline.Building, error) {
	src := skyline.DefaultSource()
	if cfg.Seed != 0 {
		src = skyline.NewSource(cfg.Seed)
	}
	opts := skyline.Options{ClampPerspective: cfg.ClampPerspective}
	bs, err := opts.Generate(cfg.Canvas.Width, cfg.Canvas.Height, src)
	if err != nil {
		return nil, fmt.Errorf("generating skyline: %w", err)
	}
	return bs, nil
}

func buildScene(opts *options) (*config.Config, []skyline.Building, *scene.Graph, error) {
	cfg, err := loadValidConfig(opts)
	if err != nil {
		return nil, nil, nil, err
	}
	bs, err := generate(cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, bs, scene.Assemble(bs, cfg), nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func runGenerate(w io.Writer, opts *options) error {
	cfg, err := loadValidConfig(opts)
	if err != nil {
		return err
	}
	bs, err := generate(cfg)
	if err != nil {
		return err
	}
	return writeJSON(w, map[string]any{
		"canvas":    cfg.Canvas,
		"seed":      cfg.Seed,
		"buildings": bs,
	})
}

func runScene(w io.Writer, opts *options) error {
	_, _, g, err := buildScene(opts)
	if err != nil {
		return err
	}
	return writeJSON(w, g)
}

func runRender(stdout io.Writer, opts *options, format, output string, scale float64) error {
	format = strings.ToLower(format)
	if format != "svg" && format != "png" {
		return fmt.Errorf("unknown format %q (want svg or png)", format)
	}
	_, _, g, err := buildScene(opts)
	if err != nil {
		return err
	}

	if output == "" {
		return encodeScene(stdout, g, format, scale)
	}

	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	if err := encodeScene(f, g, format, scale); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing output: %w", err)
	}
	fmt.Fprintf(os.Stderr, "wrote %s (%d buildings, %d windows)\n",
		output, g.Metadata.BuildingCount, g.Metadata.WindowCount)
	return nil
}

func encodeScene(w io.Writer, g *scene.Graph, format string, scale float64) error {
	if format == "png" {
		return raster.EncodePNG(w, g, raster.Options{Scale: scale})
	}
	return svg.Render(w, g)
}

func runValidate(w io.Writer, opts *options) error {
	cfg, report, err := loadConfig(opts)
	if err != nil {
		return err
	}
	if report.Valid {
		bs, err := generate(cfg)
		if err != nil {
			return err
		}
		report.Merge(scene.ValidateBuildings(bs, cfg.Canvas.Width, cfg.Canvas.Height))
		report.Merge(scene.ValidateGraph(scene.Assemble(bs, cfg)))
	}

	printValidationReport(w, report)
	if err := report.Err(); err != nil {
		return fmt.Errorf("skyline has validation errors: %w", err)
	}
	return nil
}

func runPreview(opts *options) error {
	_, _, g, err := buildScene(opts)
	if err != nil {
		return err
	}
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("opening terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing terminal: %w", err)
	}
	defer screen.Fini()
	return term.Run(screen, g)
}

func runServe(opts *options, port int) error {
	cfg, err := loadValidConfig(opts)
	if err != nil {
		return err
	}
	return server.New(cfg, port).Start()
}
