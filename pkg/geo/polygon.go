package geo

import (
	"math"

	"github.com/golang/geo/r2"
)

// Polygon is a closed polygon defined by its vertices in order.
type Polygon struct {
	Vertices []Point2D `json:"vertices"`
}

// NewPolygon creates a polygon from a list of vertices.
func NewPolygon(pts ...Point2D) Polygon {
	return Polygon{Vertices: pts}
}

// Rect returns the axis-aligned rectangle with top-left corner (x, y) as a
// clockwise (in screen space) polygon.
func Rect(x, y, w, h float64) Polygon {
	return NewPolygon(
		Pt(x, y),
		Pt(x+w, y),
		Pt(x+w, y+h),
		Pt(x, y+h),
	)
}

// Len returns the number of vertices.
func (p Polygon) Len() int {
	return len(p.Vertices)
}

// IsEmpty returns true if the polygon has fewer than 3 vertices.
func (p Polygon) IsEmpty() bool {
	return len(p.Vertices) < 3
}

// SignedArea returns the signed area using the shoelace formula.
func (p Polygon) SignedArea() float64 {
	n := len(p.Vertices)
	if n < 3 {
		return 0
	}
	area := 0.0
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += p.Vertices[i].X * p.Vertices[j].Y
		area -= p.Vertices[j].X * p.Vertices[i].Y
	}
	return area / 2
}

// Area returns the unsigned area of the polygon.
func (p Polygon) Area() float64 {
	return math.Abs(p.SignedArea())
}

// Bounds returns the axis-aligned bounding box. An empty polygon yields
// r2.EmptyRect.
func (p Polygon) Bounds() r2.Rect {
	if len(p.Vertices) == 0 {
		return r2.EmptyRect()
	}
	pts := make([]r2.Point, len(p.Vertices))
	for i, v := range p.Vertices {
		pts[i] = v.R2()
	}
	return r2.RectFromPoints(pts...)
}

// MaxY returns the lowest on-screen extent of the polygon.
func (p Polygon) MaxY() float64 {
	return p.Bounds().Y.Hi
}

// Scale returns the polygon with every vertex multiplied by s.
func (p Polygon) Scale(s float64) Polygon {
	out := make([]Point2D, len(p.Vertices))
	for i, v := range p.Vertices {
		out[i] = v.Scale(s)
	}
	return Polygon{Vertices: out}
}

// IsFinite reports whether every vertex is finite.
func (p Polygon) IsFinite() bool {
	for _, v := range p.Vertices {
		if !v.IsFinite() {
			return false
		}
	}
	return true
}
