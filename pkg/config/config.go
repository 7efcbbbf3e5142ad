package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up by LoadProject.
const FileName = "skyline.yaml"

// MaxCanvasSide bounds both canvas dimensions.
const MaxCanvasSide = 5000.0

// Order selects how buildings are stacked when a scene is assembled.
type Order string

const (
	OrderGeneration Order = "generation"
	OrderStack      Order = "stack"
)

// Config is the top-level skyline configuration.
type Config struct {
	Canvas           Canvas         `yaml:"canvas" json:"canvas"`
	Seed             uint64         `yaml:"seed" json:"seed"` // 0 seeds from the clock
	ClampPerspective bool           `yaml:"clamp_perspective" json:"clamp_perspective"`
	Order            Order          `yaml:"order" json:"order"`
	GroundStrip      float64        `yaml:"ground_strip" json:"ground_strip"`
	Fog              float64        `yaml:"fog" json:"fog"`
	Palette          Palette        `yaml:"palette" json:"palette"`
	ShootingStars    []ShootingStar `yaml:"shooting_stars" json:"shooting_stars"`
	Server           Server         `yaml:"server" json:"server"`
}

// Canvas is the scene's viewBox size in scene units.
type Canvas struct {
	Width  float64 `yaml:"width" json:"width"`
	Height float64 `yaml:"height" json:"height"`
}

// ShootingStar is a streak drawn behind the buildings.
type ShootingStar struct {
	X         float64 `yaml:"x" json:"x"`
	Y         float64 `yaml:"y" json:"y"`
	Length    float64 `yaml:"length" json:"length"`
	Thickness float64 `yaml:"thickness" json:"thickness"`
	Delay     float64 `yaml:"delay" json:"delay"`       // seconds
	Duration  float64 `yaml:"duration" json:"duration"` // seconds
}

// Server configures the preview server.
type Server struct {
	Port int `yaml:"port" json:"port"`
}

// Default returns the hero banner configuration.
func Default() *Config {
	return &Config{
		Canvas:      Canvas{Width: 1440, Height: 500},
		Order:       OrderGeneration,
		GroundStrip: 20,
		Fog:         150,
		Palette:     DefaultPalette(),
		ShootingStars: []ShootingStar{
			{X: 800, Y: 50, Length: 120, Thickness: 2, Delay: 2, Duration: 18},
			{X: 1100, Y: 120, Length: 150, Thickness: 2, Delay: 12, Duration: 25},
			{X: 600, Y: 20, Length: 100, Thickness: 1, Delay: 25, Duration: 32},
		},
		Server: Server{Port: 3000},
	}
}

// Load reads a config from a YAML file. Fields missing from the file keep
// their Default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML config bytes over Default.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}
	return cfg, nil
}

// LoadProject loads skyline.yaml from a project directory.
func LoadProject(projectDir string) (*Config, error) {
	return Load(filepath.Join(projectDir, FileName))
}
