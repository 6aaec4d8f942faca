package drawing

import "github.com/formes/backend-go/internal/shape"

// Stats is a shape.Visitor that counts shapes by kind and sums the area of
// the leaves.
type Stats struct {
	Segments int
	Circles  int
	Polygons int
	Groups   int
	Area     float64
}

var _ shape.Visitor = (*Stats)(nil)

// Leaves returns the number of non-group shapes visited.
func (s *Stats) Leaves() int { return s.Segments + s.Circles + s.Polygons }

func (s *Stats) VisitSegment(*shape.Segment) error {
	s.Segments++
	return nil
}

func (s *Stats) VisitCircle(c *shape.Circle) error {
	s.Circles++
	s.Area += c.Area()
	return nil
}

func (s *Stats) VisitPolygon(p *shape.Polygon) error {
	s.Polygons++
	s.Area += p.Area()
	return nil
}

func (s *Stats) VisitGroup(g *shape.Group) error {
	s.Groups++
	return shape.Walk(s, g.Children())
}
