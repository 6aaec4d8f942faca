package shape

import "math"

// Rect is an axis-aligned bounding box. A Rect whose Min is greater than its
// Max on either axis is empty.
type Rect struct {
	Min Point
	Max Point
}

// EmptyRect returns the identity element of Union.
func EmptyRect() Rect {
	return Rect{
		Min: Pt(math.Inf(1), math.Inf(1)),
		Max: Pt(math.Inf(-1), math.Inf(-1)),
	}
}

// RectOf returns the smallest Rect containing every point.
func RectOf(points ...Point) Rect {
	r := EmptyRect()
	for _, p := range points {
		r = r.Extend(p)
	}
	return r
}

func (r Rect) IsEmpty() bool {
	return r.Min.X > r.Max.X || r.Min.Y > r.Max.Y
}

func (r Rect) Width() float64 {
	if r.IsEmpty() {
		return 0
	}
	return r.Max.X - r.Min.X
}

func (r Rect) Height() float64 {
	if r.IsEmpty() {
		return 0
	}
	return r.Max.Y - r.Min.Y
}

// Contains checks if a point is inside the rect, edges included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Extend returns the smallest rect containing r and p.
func (r Rect) Extend(p Point) Rect {
	return Rect{
		Min: Pt(min(r.Min.X, p.X), min(r.Min.Y, p.Y)),
		Max: Pt(max(r.Max.X, p.X), max(r.Max.Y, p.Y)),
	}
}

// Union returns the smallest rect containing both rects.
func (r Rect) Union(other Rect) Rect {
	if r.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return r
	}
	return r.Extend(other.Min).Extend(other.Max)
}

// Center returns the center point of the rect.
func (r Rect) Center() Point {
	return Pt((r.Min.X+r.Max.X)/2, (r.Min.Y+r.Max.Y)/2)
}
