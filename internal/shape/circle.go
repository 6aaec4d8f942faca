package shape

import (
	"fmt"
	"math"
)

// Circle is defined by a center and a radius that stays strictly positive.
type Circle struct {
	base
	center Point
	radius float64
}

var _ Shape = (*Circle)(nil)

func NewCircle(center Point, radius float64, c Color) (*Circle, error) {
	if err := checkRadius(radius); err != nil {
		return nil, err
	}
	b, err := newBase(c)
	if err != nil {
		return nil, err
	}
	return &Circle{base: b, center: center, radius: radius}, nil
}

func checkRadius(r float64) error {
	// NaN fails the comparison as well.
	if !(r > 0) || math.IsInf(r, 1) {
		return fmt.Errorf("%w: got %s", ErrInvalidRadius, FormatFloat(r))
	}
	return nil
}

func (c *Circle) Center() Point   { return c.center }
func (c *Circle) Radius() float64 { return c.radius }

func (c *Circle) Translate(v Point) {
	c.center = c.center.Add(v)
}

// Scale moves the center and multiplies the radius by |ratio|. A ratio that
// would leave the radius non-positive is rejected and the circle is left
// untouched.
func (c *Circle) Scale(center Point, ratio float64) error {
	r := c.radius * math.Abs(ratio)
	if err := checkRadius(r); err != nil {
		return fmt.Errorf("scale by %s: %w", FormatFloat(ratio), err)
	}
	c.center = scaleAround(c.center, center, ratio)
	c.radius = r
	return nil
}

// Rotate only moves the center.
func (c *Circle) Rotate(center Point, angle float64) {
	c.center = RotateAround(c.center, center, angle)
}

func (c *Circle) Area() float64 {
	return math.Pi * c.radius * c.radius
}

func (c *Circle) Bounds() Rect {
	d := Pt(c.radius, c.radius)
	return Rect{Min: c.center.Sub(d), Max: c.center.Add(d)}
}

func (c *Circle) Accept(v Visitor) error { return v.VisitCircle(c) }

// String returns "Cercle [C:(x,y), R:radius], color".
func (c *Circle) String() string {
	return "Cercle [C:" + c.center.String() + ", R:" + FormatFloat(c.radius) + "], " + c.color.String()
}
