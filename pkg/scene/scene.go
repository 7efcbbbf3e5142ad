package scene

import "github.com/ChicagoDave/skyline/pkg/geo"

// EntityType identifies the kind of drawable.
type EntityType string

const (
	EntitySky        EntityType = "sky"
	EntityStar       EntityType = "shooting_star"
	EntityGround     EntityType = "ground"
	EntitySideFace   EntityType = "side_face"
	EntityFrontFace  EntityType = "front_face"
	EntityWindow     EntityType = "window"
	EntitySideWindow EntityType = "side_window"
	EntityFog        EntityType = "fog"
)

// Gradient names a shared gradient fill.
type Gradient string

const (
	GradientNone     Gradient = ""
	GradientStarTail Gradient = "star-tail"
	GradientFog      Gradient = "city-fog"
)

// Anim carries the timing hints for a looping animation. The scene does
// not animate; renderers map these onto their own animation model.
type Anim struct {
	Duration float64 `json:"duration_s"`
	Delay    float64 `json:"delay_s"`
}

// Entity is a single filled shape in the scene, listed in paint order.
type Entity struct {
	ID       string      `json:"id"`
	Type     EntityType  `json:"type"`
	Building int         `json:"building"` // index into the generated buildings, -1 for scenery
	Shape    geo.Polygon `json:"shape"`
	Fill     string      `json:"fill"`
	Gradient Gradient    `json:"gradient,omitempty"`
	Glow     bool        `json:"glow,omitempty"`
	Anim     *Anim       `json:"anim,omitempty"`
}

// IsWindow reports whether the entity is a front or side window.
func (e Entity) IsWindow() bool {
	return e.Type == EntityWindow || e.Type == EntitySideWindow
}

// Canvas is the scene's viewBox.
type Canvas struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Metadata holds scene-level information.
type Metadata struct {
	SceneID       string `json:"scene_id"`
	GeneratedAt   string `json:"generated_at"`
	Canvas        Canvas `json:"canvas"`
	BuildingCount int    `json:"building_count"`
	WindowCount   int    `json:"window_count"`
}

// Groups indexes entity IDs for fast filtering.
type Groups struct {
	Buildings   map[string][]string     `json:"buildings"`
	EntityTypes map[EntityType][]string `json:"entity_types"`
}

// Graph is the complete drawable scene.
type Graph struct {
	Metadata Metadata `json:"metadata"`
	Entities []Entity `json:"entities"`
	Groups   Groups   `json:"groups"`
}

// NewGraph creates an empty scene graph.
func NewGraph() *Graph {
	return &Graph{
		Entities: []Entity{},
		Groups: Groups{
			Buildings:   make(map[string][]string),
			EntityTypes: make(map[EntityType][]string),
		},
	}
}

// Add appends an entity and indexes it.
func (g *Graph) Add(e Entity) {
	g.Entities = append(g.Entities, e)
	g.Groups.EntityTypes[e.Type] = append(g.Groups.EntityTypes[e.Type], e.ID)
	if e.Building >= 0 {
		key := BuildingKey(e.Building)
		g.Groups.Buildings[key] = append(g.Groups.Buildings[key], e.ID)
	}
}

// Count returns the number of entities of type t.
func (g *Graph) Count(t EntityType) int {
	return len(g.Groups.EntityTypes[t])
}
