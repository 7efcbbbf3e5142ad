package scene

import (
	"fmt"
	"sort"
	"time"

	"github.com/ChicagoDave/skyline/pkg/config"
	"github.com/ChicagoDave/skyline/pkg/geo"
	"github.com/ChicagoDave/skyline/pkg/skyline"
	"github.com/google/uuid"
)

// BuildingKey is the group key for building i.
func BuildingKey(i int) string {
	return fmt.Sprintf("b%03d", i)
}

// Assemble converts generated buildings into a paint-ordered scene: sky,
// shooting stars, ground strip, buildings, then the fog band.
func Assemble(buildings []skyline.Building, cfg *config.Config) *Graph {
	g := NewGraph()
	w, h := cfg.Canvas.Width, cfg.Canvas.Height
	pal := cfg.Palette

	g.Add(Entity{
		ID:       "sky",
		Type:     EntitySky,
		Building: -1,
		Shape:    geo.Rect(0, 0, w, h),
		Fill:     pal.Sky,
	})

	for i, s := range cfg.ShootingStars {
		g.Add(Entity{
			ID:       fmt.Sprintf("star-%d", i),
			Type:     EntityStar,
			Building: -1,
			Shape:    geo.Rect(s.X, s.Y, s.Length, s.Thickness),
			Fill:     pal.Star,
			Gradient: GradientStarTail,
			Anim:     &Anim{Duration: s.Duration, Delay: s.Delay},
		})
	}

	if cfg.GroundStrip > 0 {
		g.Add(Entity{
			ID:       "ground",
			Type:     EntityGround,
			Building: -1,
			Shape:    geo.Rect(0, h-cfg.GroundStrip, w, cfg.GroundStrip),
			Fill:     pal.Ground,
		})
	}

	windows := 0
	for _, i := range paintOrder(buildings, cfg.Order) {
		b := buildings[i]
		for _, face := range skyline.DrawOrder(b.SideVisible) {
			switch face {
			case skyline.FaceSide:
				addSide(g, i, b, pal)
				windows += len(b.SideWindows)
			case skyline.FaceFront:
				addFront(g, i, b, pal)
				windows += len(b.FrontWindows)
			}
		}
	}

	if cfg.Fog > 0 {
		g.Add(Entity{
			ID:       "fog",
			Type:     EntityFog,
			Building: -1,
			Shape:    geo.Rect(0, h-cfg.Fog, w, cfg.Fog),
			Fill:     pal.Fog,
			Gradient: GradientFog,
		})
	}

	g.Metadata = Metadata{
		SceneID:       uuid.NewString(),
		GeneratedAt:   time.Now().UTC().Format(time.RFC3339),
		Canvas:        Canvas{Width: w, Height: h},
		BuildingCount: len(buildings),
		WindowCount:   windows,
	}
	return g
}

// paintOrder returns building indices in the order they should be painted.
// Stack order paints short buildings first so taller ones land on top.
func paintOrder(buildings []skyline.Building, order config.Order) []int {
	idx := make([]int, len(buildings))
	for i := range idx {
		idx[i] = i
	}
	if order == config.OrderStack {
		sort.SliceStable(idx, func(a, b int) bool {
			return buildings[idx[a]].StackOrder < buildings[idx[b]].StackOrder
		})
	}
	return idx
}

func addSide(g *Graph, i int, b skyline.Building, pal config.Palette) {
	key := BuildingKey(i)
	g.Add(Entity{
		ID:       key + "-side",
		Type:     EntitySideFace,
		Building: i,
		Shape:    skyline.SideFace(b),
		Fill:     pal.Side,
	})
	for j, w := range b.SideWindows {
		g.Add(Entity{
			ID:       fmt.Sprintf("%s-swin-%d", key, j),
			Type:     EntitySideWindow,
			Building: i,
			Shape:    skyline.ProjectSideWindow(b, w),
			Fill:     pal.Window,
			Glow:     true,
			Anim:     &Anim{Duration: w.AnimDuration, Delay: w.AnimDelay},
		})
	}
}

func addFront(g *Graph, i int, b skyline.Building, pal config.Palette) {
	key := BuildingKey(i)
	g.Add(Entity{
		ID:       key + "-front",
		Type:     EntityFrontFace,
		Building: i,
		Shape:    skyline.FrontFace(b),
		Fill:     pal.Front,
	})
	for j, w := range b.FrontWindows {
		g.Add(Entity{
			ID:       fmt.Sprintf("%s-win-%d", key, j),
			Type:     EntityWindow,
			Building: i,
			Shape:    skyline.FrontWindow(b, w),
			Fill:     pal.Window,
			Glow:     true,
			Anim:     &Anim{Duration: w.AnimDuration, Delay: w.AnimDelay},
		})
	}
}
