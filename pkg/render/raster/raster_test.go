package raster

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	"github.com/ChicagoDave/skyline/pkg/config"
	"github.com/ChicagoDave/skyline/pkg/geo"
	"github.com/ChicagoDave/skyline/pkg/scene"
	"github.com/ChicagoDave/skyline/pkg/skyline"
)

func handScene() *scene.Graph {
	g := scene.NewGraph()
	g.Metadata.Canvas = scene.Canvas{Width: 40, Height: 20}
	g.Add(scene.Entity{ID: "sky", Type: scene.EntitySky, Building: -1, Shape: geo.Rect(0, 0, 40, 20), Fill: "#ff0000"})
	g.Add(scene.Entity{ID: "front", Type: scene.EntityFrontFace, Building: 0, Shape: geo.Rect(10, 5, 10, 15), Fill: "#0000ff"})
	g.Add(scene.Entity{ID: "win", Type: scene.EntityWindow, Building: 0, Shape: geo.Rect(12, 8, 3, 3), Fill: "#ffffff"})
	return g
}

func rgba(t *testing.T, c color.Color) (uint8, uint8, uint8) {
	t.Helper()
	r, g, b, _ := c.RGBA()
	return uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)
}

func TestRender_PaintOrder(t *testing.T) {
	img, err := Render(handScene(), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 40 || b.Dy() != 20 {
		t.Fatalf("size = %v, want 40x20", b)
	}
	cases := []struct {
		x, y    int
		r, g, b uint8
	}{
		{2, 2, 255, 0, 0},      // sky
		{18, 15, 0, 0, 255},    // front face
		{13, 9, 255, 255, 255}, // window over front face
	}
	for _, tc := range cases {
		r, g, b := rgba(t, img.At(tc.x, tc.y))
		if r != tc.r || g != tc.g || b != tc.b {
			t.Errorf("pixel (%d,%d) = %d,%d,%d, want %d,%d,%d", tc.x, tc.y, r, g, b, tc.r, tc.g, tc.b)
		}
	}
}

func TestRender_Scale(t *testing.T) {
	img, err := Render(handScene(), Options{Scale: 2})
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 80 || b.Dy() != 40 {
		t.Fatalf("size = %v, want 80x40", b)
	}
	r, g, b := rgba(t, img.At(27, 19))
	if r != 255 || g != 255 || b != 255 {
		t.Errorf("scaled window pixel = %d,%d,%d, want white", r, g, b)
	}
}

func TestRender_Errors(t *testing.T) {
	if _, err := Render(nil, Options{}); err == nil {
		t.Error("expected error for nil scene")
	}
	if _, err := Render(scene.NewGraph(), Options{}); err == nil {
		t.Error("expected error for empty canvas")
	}
}

func TestRender_FogGradient(t *testing.T) {
	g := scene.NewGraph()
	g.Metadata.Canvas = scene.Canvas{Width: 10, Height: 100}
	g.Add(scene.Entity{ID: "sky", Type: scene.EntitySky, Building: -1, Shape: geo.Rect(0, 0, 10, 100), Fill: "#000000"})
	g.Add(scene.Entity{ID: "fog", Type: scene.EntityFog, Building: -1, Shape: geo.Rect(0, 0, 10, 100), Fill: "#ffffff", Gradient: scene.GradientFog})
	img, err := Render(g, Options{})
	if err != nil {
		t.Fatal(err)
	}
	top, _, _ := rgba(t, img.At(5, 1))
	bottom, _, _ := rgba(t, img.At(5, 98))
	if top >= bottom {
		t.Errorf("fog should thicken toward the ground: top %d, bottom %d", top, bottom)
	}
}

func TestEncodePNG(t *testing.T) {
	cfg := config.Default()
	bs, err := skyline.Generate(cfg.Canvas.Width, cfg.Canvas.Height, skyline.NewSource(1))
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := EncodePNG(&buf, scene.Assemble(bs, cfg), Options{Scale: 0.5}); err != nil {
		t.Fatalf("EncodePNG failed: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decoding output: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 720 || b.Dy() != 250 {
		t.Errorf("size = %v, want 720x250", b)
	}
	// The top-left corner is open sky.
	r, g, b := rgba(t, img.At(1, 1))
	if r != 0x0a || g != 0x0a || b != 0x0a {
		t.Errorf("sky pixel = %#x,%#x,%#x, want 0x0a", r, g, b)
	}
}
