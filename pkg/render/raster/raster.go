// Package raster paints an assembled scene onto an RGBA image.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"github.com/ChicagoDave/skyline/pkg/config"
	"github.com/ChicagoDave/skyline/pkg/geo"
	"github.com/ChicagoDave/skyline/pkg/scene"
	"golang.org/x/image/vector"
)

// Options controls rasterization.
type Options struct {
	Scale float64 // pixels per scene unit; 0 means 1
}

func (o Options) scale() float64 {
	if o.Scale <= 0 {
		return 1
	}
	return o.Scale
}

// Render paints g into a new image. Animated shapes are drawn fully lit.
func Render(g *scene.Graph, opts Options) (*image.RGBA, error) {
	if g == nil {
		return nil, fmt.Errorf("rasterizing: nil scene")
	}
	s := opts.scale()
	w := int(math.Ceil(g.Metadata.Canvas.Width * s))
	h := int(math.Ceil(g.Metadata.Canvas.Height * s))
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("rasterizing: empty canvas %dx%d", w, h)
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	z := vector.NewRasterizer(w, h)

	for _, e := range g.Entities {
		shape := e.Shape.Scale(s)
		if shape.IsEmpty() {
			continue
		}
		z.Reset(w, h)
		trace(z, shape)
		z.Draw(img, img.Bounds(), paint(e, shape), image.Point{})
	}
	return img, nil
}

// EncodePNG rasterizes g and writes it as PNG.
func EncodePNG(w io.Writer, g *scene.Graph, opts Options) error {
	img, err := Render(g, opts)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encoding png: %w", err)
	}
	return nil
}

func trace(z *vector.Rasterizer, p geo.Polygon) {
	for i, v := range p.Vertices {
		if i == 0 {
			z.MoveTo(float32(v.X), float32(v.Y))
			continue
		}
		z.LineTo(float32(v.X), float32(v.Y))
	}
	z.ClosePath()
}

func paint(e scene.Entity, shape geo.Polygon) image.Image {
	base := toNRGBA(e.Fill)
	b := shape.Bounds()
	switch e.Gradient {
	case scene.GradientStarTail:
		return &linearAlpha{c: base, from: b.X.Lo, to: b.X.Hi, horizontal: true, alphaFrom: 1, alphaTo: 0}
	case scene.GradientFog:
		return &linearAlpha{c: base, from: b.Y.Lo, to: b.Y.Hi, alphaFrom: 0, alphaTo: 0.9}
	}
	return image.NewUniform(base)
}

func toNRGBA(hex string) color.NRGBA {
	r, g, b := config.MustColor(hex).Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}
}

// linearAlpha fades a single color's alpha along one axis.
type linearAlpha struct {
	c                  color.NRGBA
	from, to           float64
	horizontal         bool
	alphaFrom, alphaTo float64
}

func (l *linearAlpha) ColorModel() color.Model { return color.NRGBAModel }

func (l *linearAlpha) Bounds() image.Rectangle {
	return image.Rect(-1e9, -1e9, 1e9, 1e9)
}

func (l *linearAlpha) At(x, y int) color.Color {
	pos := float64(y) + 0.5
	if l.horizontal {
		pos = float64(x) + 0.5
	}
	t := 0.0
	if l.to > l.from {
		t = math.Max(0, math.Min(1, (pos-l.from)/(l.to-l.from)))
	}
	a := l.alphaFrom + (l.alphaTo-l.alphaFrom)*t
	c := l.c
	c.A = uint8(math.Round(a * float64(l.c.A)))
	return c
}
