package skyline

import (
	"encoding/json"
	"fmt"
)

// Side identifies which lateral face of a building is visible.
type Side int

const (
	// SideLeft shows the left face; used for buildings right of center.
	SideLeft Side = iota
	// SideRight shows the right face; used for buildings left of center.
	SideRight
)

func (s Side) String() string {
	switch s {
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	default:
		return fmt.Sprintf("Side(%d)", int(s))
	}
}

// MarshalJSON encodes the side as "left" or "right".
func (s Side) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON accepts "left" or "right".
func (s *Side) UnmarshalJSON(data []byte) error {
	var v string
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch v {
	case "left":
		*s = SideLeft
	case "right":
		*s = SideRight
	default:
		return fmt.Errorf("unknown side %q", v)
	}
	return nil
}

// Face is one drawable face of a building.
type Face string

const (
	FaceFront Face = "front"
	FaceSide  Face = "side"
)

// WindowSpec is a lit window on the front face. Offsets are relative to the
// front face's top-left corner.
type WindowSpec struct {
	OffsetX      float64 `json:"offset_x"`
	OffsetY      float64 `json:"offset_y"`
	Size         float64 `json:"size"`
	AnimDuration float64 `json:"anim_duration_s"`
	AnimDelay    float64 `json:"anim_delay_s"`
}

// SideWindowSpec is a lit window on the side face, in the face's local
// (depth, height) frame. ProjectSideWindow maps it onto the canvas.
type SideWindowSpec struct {
	OffsetX      float64 `json:"offset_x"`
	OffsetY      float64 `json:"offset_y"`
	Size         float64 `json:"size"`
	AnimDuration float64 `json:"anim_duration_s"`
	AnimDelay    float64 `json:"anim_delay_s"`
}

// Building is one synthesized skyline structure.
type Building struct {
	X                  float64          `json:"x"`
	GroundY            float64          `json:"ground_y"`
	Width              float64          `json:"width"`
	Height             float64          `json:"height"`
	Depth              float64          `json:"depth"`
	SideVisible        Side             `json:"side_visible"`
	ProjectedSideWidth float64          `json:"projected_side_width"`
	FrontWindows       []WindowSpec     `json:"front_windows"`
	SideWindows        []SideWindowSpec `json:"side_windows"`
	StackOrder         int              `json:"stack_order"` // advisory draw priority, floor(Height)
}

// TopY returns the y-coordinate of the building's roofline.
func (b Building) TopY() float64 {
	return b.GroundY - b.Height
}

// Footprint returns the total horizontal extent covered by the front face
// and the projected side face.
func (b Building) Footprint() float64 {
	return b.Width + b.ProjectedSideWidth
}
