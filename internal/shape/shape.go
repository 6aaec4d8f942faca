// Package shape models 2D shapes that can be colored, transformed, measured
// and composed into trees.
//
// The variant set is closed: Segment, Circle, Polygon and Group are the only
// types that satisfy Shape. Operations that depend on the concrete type are
// written as a Visitor, so that a new export format never needs to touch the
// shapes themselves. Group does not walk its children when it accepts a
// visitor; the visitor decides how (and whether) to descend.
//
// Every shape has at most one owning Group. Group.Add refuses shapes that
// already have an owner and groups that would end up containing themselves,
// so a tree built through this package is always a strict tree.
package shape

import (
	"errors"
)

var (
	ErrInvalidColor  = errors.New("invalid color")
	ErrInvalidRadius = errors.New("radius must be strictly positive")
	ErrAlreadyOwned  = errors.New("shape already belongs to a group")
	ErrCycle         = errors.New("group cannot contain itself")
)

// Shape is the contract shared by every variant.
type Shape interface {
	Color() Color
	SetColor(c Color) error

	Translate(v Point)
	// Scale applies a homothety of the given center and ratio.
	Scale(center Point, ratio float64) error
	// Rotate turns the shape by angle radians around center.
	Rotate(center Point, angle float64)

	Area() float64
	Bounds() Rect
	String() string

	Accept(v Visitor) error

	node() *base
}

// Visitor has one operation per variant. Each variant's Accept calls the
// operation matching its own type.
type Visitor interface {
	VisitSegment(s *Segment) error
	VisitCircle(c *Circle) error
	VisitPolygon(p *Polygon) error
	VisitGroup(g *Group) error
}

// Walk accepts v on each shape in order and stops at the first error.
// Visitors call it from VisitGroup to descend into g.Children().
func Walk(v Visitor, shapes []Shape) error {
	for _, s := range shapes {
		if err := s.Accept(v); err != nil {
			return err
		}
	}
	return nil
}

// base holds what every variant carries: its color and its owning group.
type base struct {
	color Color
	owner *Group
}

func newBase(c Color) (base, error) {
	if err := checkColor(c); err != nil {
		return base{}, err
	}
	return base{color: c}, nil
}

func (b *base) node() *base { return b }

func (b *base) Color() Color { return b.color }

func (b *base) SetColor(c Color) error {
	if err := checkColor(c); err != nil {
		return err
	}
	b.color = c
	return nil
}

// Owner returns the group that owns s, or nil for a free-standing shape.
func Owner(s Shape) *Group {
	if isNil(s) {
		return nil
	}
	return s.node().owner
}

// isNil reports whether s is nil or a typed nil pointer.
func isNil(s Shape) bool {
	switch v := s.(type) {
	case nil:
		return true
	case *Segment:
		return v == nil
	case *Circle:
		return v == nil
	case *Polygon:
		return v == nil
	case *Group:
		return v == nil
	}
	return false
}
