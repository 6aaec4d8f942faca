package shape

// Segment is the straight line between two endpoints. A zero-length segment
// is allowed.
type Segment struct {
	base
	p1, p2 Point
}

var _ Shape = (*Segment)(nil)

func NewSegment(p1, p2 Point, c Color) (*Segment, error) {
	b, err := newBase(c)
	if err != nil {
		return nil, err
	}
	return &Segment{base: b, p1: p1, p2: p2}, nil
}

func (s *Segment) P1() Point { return s.p1 }
func (s *Segment) P2() Point { return s.p2 }

func (s *Segment) Translate(v Point) {
	s.p1 = s.p1.Add(v)
	s.p2 = s.p2.Add(v)
}

func (s *Segment) Scale(center Point, ratio float64) error {
	s.p1 = scaleAround(s.p1, center, ratio)
	s.p2 = scaleAround(s.p2, center, ratio)
	return nil
}

func (s *Segment) Rotate(center Point, angle float64) {
	s.p1 = RotateAround(s.p1, center, angle)
	s.p2 = RotateAround(s.p2, center, angle)
}

// Area is always zero.
func (s *Segment) Area() float64 { return 0 }

func (s *Segment) Bounds() Rect { return RectOf(s.p1, s.p2) }

func (s *Segment) Accept(v Visitor) error { return v.VisitSegment(s) }

// String returns "Segment [(x1,y1), (x2,y2)], color".
func (s *Segment) String() string {
	return "Segment [" + s.p1.String() + ", " + s.p2.String() + "], " + s.color.String()
}
