package shape

import (
	"math"
	"slices"
	"strings"
)

// Polygon is a closed polygon given by its vertices in order; the last
// vertex connects back to the first.
type Polygon struct {
	base
	vertices []Point
}

var _ Shape = (*Polygon)(nil)

// NewPolygon copies vertices. Fewer than three vertices is accepted and
// yields a zero area.
func NewPolygon(vertices []Point, c Color) (*Polygon, error) {
	b, err := newBase(c)
	if err != nil {
		return nil, err
	}
	return &Polygon{base: b, vertices: slices.Clone(vertices)}, nil
}

// Vertices returns a copy of the vertices in order.
func (p *Polygon) Vertices() []Point { return slices.Clone(p.vertices) }

func (p *Polygon) Len() int { return len(p.vertices) }

func (p *Polygon) Translate(v Point) {
	for i := range p.vertices {
		p.vertices[i] = p.vertices[i].Add(v)
	}
}

func (p *Polygon) Scale(center Point, ratio float64) error {
	for i := range p.vertices {
		p.vertices[i] = scaleAround(p.vertices[i], center, ratio)
	}
	return nil
}

func (p *Polygon) Rotate(center Point, angle float64) {
	for i := range p.vertices {
		p.vertices[i] = RotateAround(p.vertices[i], center, angle)
	}
}

// Area uses the shoelace formula.
func (p *Polygon) Area() float64 {
	n := len(p.vertices)
	if n < 3 {
		return 0
	}
	var sum float64
	for i, v := range p.vertices {
		sum += v.Det(p.vertices[(i+1)%n])
	}
	return math.Abs(sum) / 2
}

func (p *Polygon) Bounds() Rect { return RectOf(p.vertices...) }

func (p *Polygon) Accept(v Visitor) error { return v.VisitPolygon(p) }

// String returns "Polygone [(x1,y1) (x2,y2) ], color".
func (p *Polygon) String() string {
	var sb strings.Builder
	sb.WriteString("Polygone [")
	for _, v := range p.vertices {
		sb.WriteString(v.String())
		sb.WriteByte(' ')
	}
	sb.WriteString("], ")
	sb.WriteString(p.color.String())
	return sb.String()
}
