package config

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Palette holds the scene colors as hex strings.
type Palette struct {
	Sky    string `yaml:"sky" json:"sky"`
	Ground string `yaml:"ground" json:"ground"`
	Front  string `yaml:"front" json:"front"`
	Side   string `yaml:"side" json:"side"`
	Window string `yaml:"window" json:"window"`
	Star   string `yaml:"star" json:"star"`
	Fog    string `yaml:"fog" json:"fog"`
}

// DefaultPalette is the silver-on-black night scheme.
func DefaultPalette() Palette {
	return Palette{
		Sky:    "#0a0a0a",
		Ground: "#000000",
		Front:  "#000000",
		Side:   "#181818",
		Window: "#e5e5e5",
		Star:   "#ffffff",
		Fog:    "#0a0a0a",
	}
}

// Entries returns the palette as name/hex pairs in a stable order.
func (p Palette) Entries() [][2]string {
	return [][2]string{
		{"sky", p.Sky},
		{"ground", p.Ground},
		{"front", p.Front},
		{"side", p.Side},
		{"window", p.Window},
		{"star", p.Star},
		{"fog", p.Fog},
	}
}

// Color parses a hex color.
func Color(hex string) (colorful.Color, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("parsing color %q: %w", hex, err)
	}
	return c, nil
}

// MustColor parses a hex color, falling back to black for invalid input.
func MustColor(hex string) colorful.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		return colorful.Color{}
	}
	return c
}
