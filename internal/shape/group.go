package shape

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Group owns an ordered list of child shapes. Its color is the label the
// children are exported under; it is never written into the children.
type Group struct {
	base
	children []Shape
}

var _ Shape = (*Group)(nil)

func NewGroup(c Color) (*Group, error) {
	b, err := newBase(c)
	if err != nil {
		return nil, err
	}
	return &Group{base: b}, nil
}

// Add appends s and makes g its owner. A nil shape is ignored.
func (g *Group) Add(s Shape) error {
	if isNil(s) {
		return nil
	}
	n := s.node()
	if n.owner != nil {
		return ErrAlreadyOwned
	}
	if sub, ok := s.(*Group); ok && sub.isAncestorOf(g) {
		return ErrCycle
	}
	n.owner = g
	g.children = append(g.children, s)
	return nil
}

// Remove detaches s from g. It reports false if g does not own s.
func (g *Group) Remove(s Shape) bool {
	if isNil(s) || s.node().owner != g {
		return false
	}
	i := slices.Index(g.children, s)
	if i < 0 {
		return false
	}
	g.children = slices.Delete(g.children, i, i+1)
	s.node().owner = nil
	return true
}

// isAncestorOf reports whether g is other or one of its owners.
func (g *Group) isAncestorOf(other *Group) bool {
	for n := other; n != nil; n = n.owner {
		if n == g {
			return true
		}
	}
	return false
}

// Children returns the owned shapes in insertion order. The slice is a
// copy; the shapes are not.
func (g *Group) Children() []Shape { return slices.Clone(g.children) }

func (g *Group) Len() int { return len(g.children) }

func (g *Group) Translate(v Point) {
	for _, s := range g.children {
		s.Translate(v)
	}
}

// Scale scales every child, even when some of them fail. The returned error
// joins the failures, each prefixed with the index of the failing child.
func (g *Group) Scale(center Point, ratio float64) error {
	var errs []error
	for i, s := range g.children {
		if err := s.Scale(center, ratio); err != nil {
			errs = append(errs, fmt.Errorf("child %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

func (g *Group) Rotate(center Point, angle float64) {
	for _, s := range g.children {
		s.Rotate(center, angle)
	}
}

// Area sums the areas of the children. Overlaps are counted twice.
func (g *Group) Area() float64 {
	var total float64
	for _, s := range g.children {
		total += s.Area()
	}
	return total
}

func (g *Group) Bounds() Rect {
	r := EmptyRect()
	for _, s := range g.children {
		r = r.Union(s.Bounds())
	}
	return r
}

// Accept calls v.VisitGroup once; the visitor walks the children.
func (g *Group) Accept(v Visitor) error { return v.VisitGroup(g) }

// String returns "Groupe color { child ; child ; }".
func (g *Group) String() string {
	var sb strings.Builder
	sb.WriteString("Groupe ")
	sb.WriteString(g.color.String())
	sb.WriteString(" { ")
	for _, s := range g.children {
		sb.WriteString(s.String())
		sb.WriteString(" ; ")
	}
	sb.WriteString("}")
	return sb.String()
}
