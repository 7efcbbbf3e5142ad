package skyline

import "github.com/ChicagoDave/skyline/pkg/geo"

// roofDropRatio is the share of the projected side width by which the far
// edge of a side face is lowered to suggest a receding roofline.
const roofDropRatio = 0.4

// PerspectiveDrop returns the vertical offset of the side face's far edge.
func PerspectiveDrop(b Building) float64 {
	return b.ProjectedSideWidth * roofDropRatio
}

// DrawOrder returns the faces of a building in painter's order. A left side
// face sits behind the front face; a right one is drawn over it.
func DrawOrder(side Side) [2]Face {
	if side == SideLeft {
		return [2]Face{FaceSide, FaceFront}
	}
	return [2]Face{FaceFront, FaceSide}
}

// FrontOrigin returns the top-left corner of the front face. Buildings
// showing their left face are shifted right by the projected side width.
func FrontOrigin(b Building) geo.Point2D {
	x := b.X
	if b.SideVisible == SideLeft {
		x += b.ProjectedSideWidth
	}
	return geo.Pt(x, b.TopY())
}

// FrontFace returns the front face rectangle.
func FrontFace(b Building) geo.Polygon {
	o := FrontOrigin(b)
	return geo.Rect(o.X, o.Y, b.Width, b.Height)
}

// FrontWindow returns the canvas rectangle of a front window.
func FrontWindow(b Building, w WindowSpec) geo.Polygon {
	o := FrontOrigin(b)
	return geo.Rect(o.X+w.OffsetX, o.Y+w.OffsetY, w.Size, w.Size)
}

// sideEdges returns the x of the edge touching the front face (inner) and
// of the far edge (outer).
func sideEdges(b Building) (inner, outer float64) {
	if b.SideVisible == SideRight {
		inner = b.X + b.Width
		return inner, inner + b.ProjectedSideWidth
	}
	inner = b.X + b.ProjectedSideWidth
	return inner, b.X
}

// SideFace returns the side face quadrilateral, ordered top-left, top-right,
// bottom-right, bottom-left.
func SideFace(b Building) geo.Polygon {
	inner, outer := sideEdges(b)
	top := b.TopY()
	drop := PerspectiveDrop(b)
	bottom := b.GroundY

	if b.SideVisible == SideRight {
		return geo.NewPolygon(
			geo.Pt(inner, top),
			geo.Pt(outer, top+drop),
			geo.Pt(outer, bottom),
			geo.Pt(inner, bottom),
		)
	}
	return geo.NewPolygon(
		geo.Pt(outer, top+drop),
		geo.Pt(inner, top),
		geo.Pt(inner, bottom),
		geo.Pt(outer, bottom),
	)
}

// ProjectSideWindow maps a side window from the face's (depth, height)
// frame onto the canvas. The result is ordered near-top, far-top,
// far-bottom, near-bottom.
func ProjectSideWindow(b Building, w SideWindowSpec) geo.Polygon {
	inner, outer := sideEdges(b)
	top := b.TopY()
	drop := PerspectiveDrop(b)

	ratioStart := w.OffsetX / b.Depth
	ratioEnd := (w.OffsetX + w.Size) / b.Depth

	roofNear := geo.Pt(inner, top)
	roofFar := geo.Pt(outer, top+drop)
	p1 := roofNear.Lerp(roofFar, ratioStart)
	p2 := roofNear.Lerp(roofFar, ratioEnd)

	return geo.NewPolygon(
		geo.Pt(p1.X, p1.Y+w.OffsetY),
		geo.Pt(p2.X, p2.Y+w.OffsetY),
		geo.Pt(p2.X, p2.Y+w.OffsetY+w.Size),
		geo.Pt(p1.X, p1.Y+w.OffsetY+w.Size),
	)
}
