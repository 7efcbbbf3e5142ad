package scene

import (
	"encoding/json"
	"testing"

	"github.com/ChicagoDave/skyline/pkg/config"
	"github.com/ChicagoDave/skyline/pkg/skyline"
)

func testBuildings(t *testing.T, cfg *config.Config, seed uint64) []skyline.Building {
	t.Helper()
	bs, err := skyline.Generate(cfg.Canvas.Width, cfg.Canvas.Height, skyline.NewSource(seed))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	return bs
}

func TestAssemble_Structure(t *testing.T) {
	cfg := config.Default()
	bs := testBuildings(t, cfg, 7)
	g := Assemble(bs, cfg)

	if g.Entities[0].Type != EntitySky {
		t.Errorf("first entity = %s, want sky", g.Entities[0].Type)
	}
	if last := g.Entities[len(g.Entities)-1]; last.Type != EntityFog {
		t.Errorf("last entity = %s, want fog", last.Type)
	}
	if got := g.Count(EntityStar); got != 3 {
		t.Errorf("stars = %d, want 3", got)
	}
	if got := g.Count(EntityGround); got != 1 {
		t.Errorf("ground = %d, want 1", got)
	}
	if got := g.Count(EntityFrontFace); got != len(bs) {
		t.Errorf("front faces = %d, want %d", got, len(bs))
	}
	if got := g.Count(EntitySideFace); got != len(bs) {
		t.Errorf("side faces = %d, want %d", got, len(bs))
	}

	wantWindows := 0
	for _, b := range bs {
		wantWindows += len(b.FrontWindows) + len(b.SideWindows)
	}
	if g.Metadata.WindowCount != wantWindows {
		t.Errorf("window count = %d, want %d", g.Metadata.WindowCount, wantWindows)
	}
	if g.Count(EntityWindow)+g.Count(EntitySideWindow) != wantWindows {
		t.Error("window entities do not match metadata")
	}
	if g.Metadata.BuildingCount != len(bs) {
		t.Errorf("building count = %d, want %d", g.Metadata.BuildingCount, len(bs))
	}
	if g.Metadata.SceneID == "" || g.Metadata.GeneratedAt == "" {
		t.Error("metadata missing id or timestamp")
	}

	r := ValidateGraph(g)
	if !r.Valid {
		for _, e := range r.Errors {
			t.Logf("  error: %s", e.Message)
		}
		t.Fatal("assembled scene should be valid")
	}
}

func TestAssemble_PainterOrder(t *testing.T) {
	cfg := config.Default()
	bs := testBuildings(t, cfg, 3)
	g := Assemble(bs, cfg)

	pos := make(map[string]int, len(g.Entities))
	for i, e := range g.Entities {
		pos[e.ID] = i
	}
	for i, b := range bs {
		key := BuildingKey(i)
		side, front := pos[key+"-side"], pos[key+"-front"]
		if b.SideVisible == skyline.SideLeft && side > front {
			t.Errorf("building %d faces left but side painted after front", i)
		}
		if b.SideVisible == skyline.SideRight && side < front {
			t.Errorf("building %d faces right but side painted before front", i)
		}
		if i > 0 && pos[key+"-front"] < pos[BuildingKey(i-1)+"-front"] {
			t.Errorf("building %d painted before building %d in generation order", i, i-1)
		}
	}
}

func TestAssemble_StackOrder(t *testing.T) {
	cfg := config.Default()
	cfg.Order = config.OrderStack
	bs := testBuildings(t, cfg, 11)
	g := Assemble(bs, cfg)

	prev := -1
	for _, e := range g.Entities {
		if e.Type != EntityFrontFace {
			continue
		}
		h := bs[e.Building].StackOrder
		if h < prev {
			t.Errorf("building %d (stack %d) painted after stack %d", e.Building, h, prev)
		}
		prev = h
	}
}

func TestAssemble_NoSceneryWhenDisabled(t *testing.T) {
	cfg := config.Default()
	cfg.GroundStrip = 0
	cfg.Fog = 0
	cfg.ShootingStars = nil
	g := Assemble(testBuildings(t, cfg, 1), cfg)
	for _, typ := range []EntityType{EntityGround, EntityFog, EntityStar} {
		if g.Count(typ) != 0 {
			t.Errorf("%s entities = %d, want 0", typ, g.Count(typ))
		}
	}
}

func TestAssemble_WindowAnim(t *testing.T) {
	cfg := config.Default()
	bs := testBuildings(t, cfg, 5)
	g := Assemble(bs, cfg)
	for _, e := range g.Entities {
		if e.IsWindow() && (e.Anim == nil || !e.Glow) {
			t.Fatalf("window %s missing anim or glow", e.ID)
		}
		if e.Type == EntityFrontFace && e.Anim != nil {
			t.Fatalf("face %s should not animate", e.ID)
		}
	}
}

func TestGraphJSON(t *testing.T) {
	cfg := config.Default()
	g := Assemble(testBuildings(t, cfg, 2), cfg)
	data, err := json.Marshal(g)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var decoded Graph
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if len(decoded.Entities) != len(g.Entities) {
		t.Errorf("decoded %d entities, want %d", len(decoded.Entities), len(g.Entities))
	}
}
