package scene

import (
	"fmt"
	"math"

	"github.com/ChicagoDave/skyline/pkg/skyline"
	"github.com/ChicagoDave/skyline/pkg/validation"
)

// ValidateGraph performs structural validation on an assembled scene.
// It checks entity integrity, group index consistency and that no window
// hangs below the ground line.
func ValidateGraph(g *Graph) *validation.Report {
	r := validation.NewReport()

	if g == nil {
		r.AddError(validation.Result{
			Level:   validation.LevelScene,
			Message: "scene graph is nil",
		})
		return r
	}

	validateEntityIDs(g, r)
	validateGroupIndices(g, r)
	validateShapes(g, r)
	validateWindowsAboveGround(g, r)

	return r
}

func validateEntityIDs(g *Graph, r *validation.Report) {
	seen := make(map[string]int, len(g.Entities))

	for i, e := range g.Entities {
		if e.ID == "" {
			r.AddError(validation.Result{
				Level:    validation.LevelScene,
				Message:  fmt.Sprintf("entity at index %d has empty ID", i),
				Path:     fmt.Sprintf("entities[%d].id", i),
				Expected: "non-empty string",
			})
			continue
		}
		if prev, exists := seen[e.ID]; exists {
			r.AddError(validation.Result{
				Level:       validation.LevelScene,
				Message:     fmt.Sprintf("duplicate entity ID %q at indices %d and %d", e.ID, prev, i),
				Path:        fmt.Sprintf("entities[%d].id", i),
				ActualValue: e.ID,
			})
		}
		seen[e.ID] = i
	}
}

func validateGroupIndices(g *Graph, r *validation.Report) {
	entityIDs := make(map[string]bool, len(g.Entities))
	for _, e := range g.Entities {
		entityIDs[e.ID] = true
	}

	checkGroup := func(groupType, groupName string, ids []string) {
		for _, id := range ids {
			if !entityIDs[id] {
				r.AddError(validation.Result{
					Level:       validation.LevelScene,
					Message:     fmt.Sprintf("group %s.%s references non-existent entity %q", groupType, groupName, id),
					Path:        fmt.Sprintf("groups.%s.%s", groupType, groupName),
					ActualValue: id,
					Expected:    "existing entity ID",
				})
			}
		}
	}

	for name, ids := range g.Groups.Buildings {
		checkGroup("buildings", name, ids)
	}
	for name, ids := range g.Groups.EntityTypes {
		checkGroup("entity_types", string(name), ids)
	}
}

func validateShapes(g *Graph, r *validation.Report) {
	for i, e := range g.Entities {
		if e.Shape.IsEmpty() {
			r.AddError(validation.Result{
				Level:       validation.LevelScene,
				Message:     fmt.Sprintf("entity %q has a degenerate shape", e.ID),
				Path:        fmt.Sprintf("entities[%d].shape", i),
				ActualValue: e.Shape.Len(),
				Expected:    ">= 3 vertices",
			})
			continue
		}
		if !e.Shape.IsFinite() {
			r.AddError(validation.Result{
				Level:   validation.LevelScene,
				Message: fmt.Sprintf("entity %q has non-finite coordinates", e.ID),
				Path:    fmt.Sprintf("entities[%d].shape", i),
			})
			continue
		}
		if e.Shape.Area() == 0 {
			r.AddWarning(validation.Result{
				Level:    validation.LevelScene,
				Message:  fmt.Sprintf("entity %q has zero area and will not be visible", e.ID),
				Path:     fmt.Sprintf("entities[%d].shape", i),
				Expected: "> 0",
			})
		}
	}
}

func validateWindowsAboveGround(g *Graph, r *validation.Report) {
	ground := g.Metadata.Canvas.Height
	for i, e := range g.Entities {
		if !e.IsWindow() || e.Shape.IsEmpty() {
			continue
		}
		if bottom := e.Shape.MaxY(); bottom > ground {
			r.AddError(validation.Result{
				Level:       validation.LevelScene,
				Message:     fmt.Sprintf("window %q extends below the ground line", e.ID),
				Path:        fmt.Sprintf("entities[%d].shape", i),
				ActualValue: bottom,
				Expected:    fmt.Sprintf("<= %v", ground),
			})
		}
	}
}

// ValidateBuildings checks a generated building row against the
// generator's guarantees for the given canvas.
func ValidateBuildings(buildings []skyline.Building, canvasWidth, canvasHeight float64) *validation.Report {
	r := validation.NewReport()

	if len(buildings) == 0 {
		r.AddError(validation.Result{
			Level:   validation.LevelGeometry,
			Message: "no buildings generated",
		})
		return r
	}

	geomErr := func(i int, field, msg string, actual any) {
		r.AddError(validation.Result{
			Level:       validation.LevelGeometry,
			Message:     fmt.Sprintf("building %d: %s", i, msg),
			Path:        fmt.Sprintf("buildings[%d].%s", i, field),
			ActualValue: actual,
		})
	}
	inRange := func(v, lo, hi float64) bool { return v >= lo && v < hi }

	if buildings[0].X >= 0 {
		geomErr(0, "x", "row does not start left of the canvas", buildings[0].X)
	}
	last := buildings[len(buildings)-1]
	if last.X+last.Width < canvasWidth-50 {
		geomErr(len(buildings)-1, "x", "row does not reach the right edge", last.X+last.Width)
	}

	windows := 0
	for i, b := range buildings {
		if i > 0 && b.X <= buildings[i-1].X {
			geomErr(i, "x", "x not strictly increasing", b.X)
		}
		// Each building must start before its neighbour's projected extent ends.
		if i > 0 && b.X > buildings[i-1].X+buildings[i-1].Footprint() {
			geomErr(i, "x", "gap after the previous building", b.X-(buildings[i-1].X+buildings[i-1].Footprint()))
		}
		if !inRange(b.Width, 40, 100) {
			geomErr(i, "width", "width out of range", b.Width)
		}
		if !inRange(b.Height, 100, 400) {
			geomErr(i, "height", "height out of range", b.Height)
		}
		if !inRange(b.Depth, 10, 40) {
			geomErr(i, "depth", "depth out of range", b.Depth)
		}
		if b.ProjectedSideWidth < 0 || math.IsNaN(b.ProjectedSideWidth) {
			geomErr(i, "projected_side_width", "negative projected side width", b.ProjectedSideWidth)
		}
		if b.GroundY != canvasHeight {
			geomErr(i, "ground_y", "ground line differs from canvas height", b.GroundY)
		}

		want := skyline.SideLeft
		if b.X+b.Width/2 < canvasWidth/2 {
			want = skyline.SideRight
		}
		if b.SideVisible != want {
			geomErr(i, "side_visible", fmt.Sprintf("side should be %s", want), b.SideVisible.String())
		}

		for j, w := range b.FrontWindows {
			if w.OffsetY+w.Size > b.Height-10 || w.OffsetX+w.Size > b.Width-5 {
				geomErr(i, fmt.Sprintf("front_windows[%d]", j), "front window outside face", [2]float64{w.OffsetX, w.OffsetY})
			}
		}
		for j, w := range b.SideWindows {
			if bottom := skyline.ProjectSideWindow(b, w).MaxY(); bottom > b.GroundY {
				geomErr(i, fmt.Sprintf("side_windows[%d]", j), "side window below ground line", bottom)
			}
		}
		windows += len(b.FrontWindows) + len(b.SideWindows)
	}

	r.AddInfo(validation.Result{
		Level:   validation.LevelGeometry,
		Message: fmt.Sprintf("%d buildings, %d lit windows", len(buildings), windows),
	})
	return r
}
