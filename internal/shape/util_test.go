package shape

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

var approx = cmpopts.EquateApprox(0, 1e-9)

// coords flattens the geometry of a tree into a list of numbers, walking
// groups in order.
type coords struct {
	out []float64
}

func geometry(s Shape) []float64 {
	c := &coords{}
	if err := s.Accept(c); err != nil {
		panic(err)
	}
	return c.out
}

func (c *coords) VisitSegment(s *Segment) error {
	c.out = append(c.out, s.P1().X, s.P1().Y, s.P2().X, s.P2().Y)
	return nil
}

func (c *coords) VisitCircle(ci *Circle) error {
	c.out = append(c.out, ci.Center().X, ci.Center().Y, ci.Radius())
	return nil
}

func (c *coords) VisitPolygon(p *Polygon) error {
	for _, v := range p.Vertices() {
		c.out = append(c.out, v.X, v.Y)
	}
	return nil
}

func (c *coords) VisitGroup(g *Group) error {
	return Walk(c, g.Children())
}

func mustSegment(t *testing.T, p1, p2 Point, c Color) *Segment {
	t.Helper()
	s, err := NewSegment(p1, p2, c)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func mustCircle(t *testing.T, center Point, r float64, c Color) *Circle {
	t.Helper()
	s, err := NewCircle(center, r, c)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func mustPolygon(t *testing.T, c Color, pts ...Point) *Polygon {
	t.Helper()
	s, err := NewPolygon(pts, c)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func mustGroup(t *testing.T, c Color, children ...Shape) *Group {
	t.Helper()
	g, err := NewGroup(c)
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range children {
		if err := g.Add(s); err != nil {
			t.Fatal(err)
		}
	}
	return g
}
