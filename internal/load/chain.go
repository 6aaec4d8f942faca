// Package load rebuilds shape trees from the line format written by
// export.TextWriter.
//
// Each line goes through a chain of handlers. A handler either recognizes
// the leading tag and parses the line, or passes it to the next handler;
// the last link rejects everything. Group lines do not produce shapes:
// they yield begin and end records that a Builder turns into nesting.
package load

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/formes/backend-go/internal/export"
	"github.com/formes/backend-go/internal/shape"
)

var (
	ErrMalformedLine     = errors.New("malformed line")
	ErrUnrecognizedLine  = errors.New("no parser recognized this line")
	ErrUnbalancedGroup   = errors.New("group end without a matching begin")
	ErrUnterminatedGroup = errors.New("group begin without a matching end")
)

type Kind int

const (
	KindShape Kind = iota
	KindGroupBegin
	KindGroupEnd
)

func (k Kind) String() string {
	switch k {
	case KindShape:
		return "shape"
	case KindGroupBegin:
		return "group begin"
	case KindGroupEnd:
		return "group end"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Record is the result of handling one line. Shape is set for KindShape,
// Color for KindGroupBegin.
type Record struct {
	Kind  Kind
	Shape shape.Shape
	Color shape.Color
}

// Handler handles one line of the format.
type Handler interface {
	Handle(line string) (Record, error)
}

// NewChain links the handlers for every tag of the format.
func NewChain() Handler {
	return &SegmentHandler{
		Next: &CircleHandler{
			Next: &PolygonHandler{
				Next: &GroupHandler{
					Next: Terminal{},
				},
			},
		},
	}
}

// SegmentHandler parses "Segment;<color>;(x1,y1);(x2,y2)".
type SegmentHandler struct {
	Next Handler
}

func (h *SegmentHandler) Handle(line string) (Record, error) {
	fields, ok := claim(line, export.TagSegment)
	if !ok {
		return h.Next.Handle(line)
	}
	if len(fields) != 3 {
		return Record{}, malformed(export.TagSegment, fieldCount(3, len(fields)))
	}
	c, err := shape.ParseColor(fields[0])
	if err != nil {
		return Record{}, malformed(export.TagSegment, err)
	}
	pts, err := parsePoints(fields[1:])
	if err != nil {
		return Record{}, malformed(export.TagSegment, err)
	}
	s, err := shape.NewSegment(pts[0], pts[1], c)
	if err != nil {
		return Record{}, malformed(export.TagSegment, err)
	}
	return Record{Kind: KindShape, Shape: s}, nil
}

// CircleHandler parses "Cercle;<color>;(cx,cy);<radius>".
type CircleHandler struct {
	Next Handler
}

func (h *CircleHandler) Handle(line string) (Record, error) {
	fields, ok := claim(line, export.TagCircle)
	if !ok {
		return h.Next.Handle(line)
	}
	if len(fields) != 3 {
		return Record{}, malformed(export.TagCircle, fieldCount(3, len(fields)))
	}
	c, err := shape.ParseColor(fields[0])
	if err != nil {
		return Record{}, malformed(export.TagCircle, err)
	}
	center, err := ParsePoint(fields[1])
	if err != nil {
		return Record{}, malformed(export.TagCircle, err)
	}
	radius, err := parseFloat(fields[2])
	if err != nil {
		return Record{}, malformed(export.TagCircle, fmt.Errorf("radius: %w", err))
	}
	ci, err := shape.NewCircle(center, radius, c)
	if err != nil {
		return Record{}, malformed(export.TagCircle, err)
	}
	return Record{Kind: KindShape, Shape: ci}, nil
}

// PolygonHandler parses "Polygone;<color>;(x1,y1);...;(xn,yn)".
type PolygonHandler struct {
	Next Handler
}

func (h *PolygonHandler) Handle(line string) (Record, error) {
	fields, ok := claim(line, export.TagPolygon)
	if !ok {
		return h.Next.Handle(line)
	}
	if len(fields) < 1 {
		return Record{}, malformed(export.TagPolygon, errors.New("missing color"))
	}
	c, err := shape.ParseColor(fields[0])
	if err != nil {
		return Record{}, malformed(export.TagPolygon, err)
	}
	pts, err := parsePoints(fields[1:])
	if err != nil {
		return Record{}, malformed(export.TagPolygon, err)
	}
	p, err := shape.NewPolygon(pts, c)
	if err != nil {
		return Record{}, malformed(export.TagPolygon, err)
	}
	return Record{Kind: KindShape, Shape: p}, nil
}

// GroupHandler parses "Groupe;Debut;<color>" and "Groupe;Fin".
type GroupHandler struct {
	Next Handler
}

func (h *GroupHandler) Handle(line string) (Record, error) {
	fields, ok := claim(line, export.TagGroup)
	if !ok {
		return h.Next.Handle(line)
	}
	if len(fields) == 0 {
		return Record{}, malformed(export.TagGroup, errors.New("missing marker"))
	}

	switch fields[0] {
	case export.MarkBegin:
		if len(fields) != 2 {
			return Record{}, malformed(export.TagGroup, fieldCount(2, len(fields)))
		}
		c, err := shape.ParseColor(fields[1])
		if err != nil {
			return Record{}, malformed(export.TagGroup, err)
		}
		return Record{Kind: KindGroupBegin, Color: c}, nil
	case export.MarkEnd:
		if len(fields) != 1 {
			return Record{}, malformed(export.TagGroup, fieldCount(1, len(fields)))
		}
		return Record{Kind: KindGroupEnd}, nil
	}
	return Record{}, malformed(export.TagGroup, fmt.Errorf("unknown marker %q", fields[0]))
}

// Terminal ends a chain and rejects every line.
type Terminal struct{}

func (Terminal) Handle(line string) (Record, error) {
	tag, _, _ := strings.Cut(line, export.Sep)
	return Record{}, fmt.Errorf("%w: tag %q", ErrUnrecognizedLine, tag)
}

// claim splits line and reports whether its first field is tag. The
// returned fields exclude the tag.
func claim(line, tag string) ([]string, bool) {
	fields := strings.Split(line, export.Sep)
	if fields[0] != tag {
		return nil, false
	}
	return fields[1:], true
}

func malformed(tag string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrMalformedLine, tag, err)
}

func fieldCount(want, got int) error {
	return fmt.Errorf("want %d fields after the tag, got %d", want, got)
}

// ParsePoint parses the "(x,y)" form written by shape.Point.String.
func ParsePoint(s string) (shape.Point, error) {
	inner, ok := strings.CutPrefix(s, "(")
	if ok {
		inner, ok = strings.CutSuffix(inner, ")")
	}
	if !ok {
		return shape.Point{}, fmt.Errorf("point %q: missing parentheses", s)
	}
	xs, ys, ok := strings.Cut(inner, ",")
	if !ok {
		return shape.Point{}, fmt.Errorf("point %q: missing comma", s)
	}
	x, err := parseFloat(xs)
	if err != nil {
		return shape.Point{}, fmt.Errorf("point %q: %w", s, err)
	}
	y, err := parseFloat(ys)
	if err != nil {
		return shape.Point{}, fmt.Errorf("point %q: %w", s, err)
	}
	return shape.Pt(x, y), nil
}

func parsePoints(fields []string) ([]shape.Point, error) {
	pts := make([]shape.Point, 0, len(fields))
	for _, f := range fields {
		p, err := ParsePoint(f)
		if err != nil {
			return nil, err
		}
		pts = append(pts, p)
	}
	return pts, nil
}

func parseFloat(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("bad number %q", s)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("non-finite number %q", s)
	}
	return v, nil
}
