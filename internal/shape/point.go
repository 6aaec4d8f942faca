package shape

import (
	"math"
	"strconv"
)

// Point is a 2D coordinate, also used as a translation vector.
type Point struct {
	X float64
	Y float64
}

// Pt returns the point (x, y).
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

func (p Point) Scale(k float64) Point {
	return Point{X: p.X * k, Y: p.Y * k}
}

func (p Point) Neg() Point {
	return Point{X: -p.X, Y: -p.Y}
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return p.Add(q.Neg())
}

// Det returns the determinant p.X*q.Y - p.Y*q.X.
func (p Point) Det(q Point) float64 {
	return p.X*q.Y - p.Y*q.X
}

// String renders the point as "(x,y)". The numbers use the shortest
// representation that parses back to the same float64.
func (p Point) String() string {
	return "(" + FormatFloat(p.X) + "," + FormatFloat(p.Y) + ")"
}

// FormatFloat is the number format shared by the text forms of every shape.
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// RotateAround rotates p by angle radians around center.
func RotateAround(p, center Point, angle float64) Point {
	sin, cos := math.Sincos(angle)
	dx := p.X - center.X
	dy := p.Y - center.Y
	return Point{
		X: center.X + dx*cos - dy*sin,
		Y: center.Y + dx*sin + dy*cos,
	}
}

// scaleAround applies the homothety of the given center and ratio to p.
func scaleAround(p, center Point, ratio float64) Point {
	return center.Add(p.Sub(center).Scale(ratio))
}
