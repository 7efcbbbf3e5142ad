package term

import (
	"testing"

	"github.com/ChicagoDave/skyline/pkg/config"
	"github.com/ChicagoDave/skyline/pkg/geo"
	"github.com/ChicagoDave/skyline/pkg/scene"
	"github.com/ChicagoDave/skyline/pkg/skyline"
	"github.com/gdamore/tcell/v2"
)

func newScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen init: %v", err)
	}
	screen.SetSize(w, h)
	t.Cleanup(screen.Fini)
	return screen
}

func TestDraw_FillsScreen(t *testing.T) {
	cfg := config.Default()
	bs, err := skyline.Generate(cfg.Canvas.Width, cfg.Canvas.Height, skyline.NewSource(2))
	if err != nil {
		t.Fatal(err)
	}
	screen := newScreen(t, 80, 24)
	if err := Draw(screen, scene.Assemble(bs, cfg)); err != nil {
		t.Fatalf("Draw failed: %v", err)
	}
	for _, p := range [][2]int{{0, 0}, {79, 0}, {40, 12}, {0, 23}, {79, 23}} {
		r, _, _, _ := screen.GetContent(p[0], p[1])
		if r != halfBlock {
			t.Errorf("cell %v = %q, want half block", p, r)
		}
	}
}

func TestDraw_Colors(t *testing.T) {
	g := scene.NewGraph()
	g.Metadata.Canvas = scene.Canvas{Width: 10, Height: 10}
	g.Add(scene.Entity{ID: "sky", Type: scene.EntitySky, Building: -1, Shape: geo.Rect(0, 0, 10, 5), Fill: "#ff0000"})
	g.Add(scene.Entity{ID: "ground", Type: scene.EntityGround, Building: -1, Shape: geo.Rect(0, 5, 10, 5), Fill: "#00ff00"})

	screen := newScreen(t, 10, 5)
	if err := Draw(screen, g); err != nil {
		t.Fatal(err)
	}
	_, _, top, _ := screen.GetContent(5, 0)
	fg, _, _ := top.Decompose()
	if fg != tcell.NewRGBColor(255, 0, 0) {
		t.Errorf("top cell fg = %v, want red", fg)
	}
	_, _, bottom, _ := screen.GetContent(5, 4)
	_, bg, _ := bottom.Decompose()
	if bg != tcell.NewRGBColor(0, 255, 0) {
		t.Errorf("bottom cell bg = %v, want green", bg)
	}
}

func TestDraw_Errors(t *testing.T) {
	screen := newScreen(t, 10, 5)
	if err := Draw(screen, nil); err == nil {
		t.Error("expected error for nil scene")
	}
	if err := Draw(screen, scene.NewGraph()); err == nil {
		t.Error("expected error for empty canvas")
	}
}

func TestRun_QuitsOnKey(t *testing.T) {
	cfg := config.Default()
	bs, err := skyline.Generate(cfg.Canvas.Width, cfg.Canvas.Height, skyline.NewSource(2))
	if err != nil {
		t.Fatal(err)
	}
	screen := newScreen(t, 40, 12)
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	if err := Run(screen, scene.Assemble(bs, cfg)); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
}
