// Package export turns shape trees into external representations: the
// persisted line format and draw requests for a remote canvas.
package export

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/formes/backend-go/internal/shape"
)

// Line format tokens, shared with the loader.
const (
	Sep        = ";"
	TagSegment = "Segment"
	TagCircle  = "Cercle"
	TagPolygon = "Polygone"
	TagGroup   = "Groupe"
	MarkBegin  = "Debut"
	MarkEnd    = "Fin"
)

// TextWriter is a shape.Visitor that appends one line per shape:
//
//	Segment;<color>;(x1,y1);(x2,y2)
//	Cercle;<color>;(cx,cy);<radius>
//	Polygone;<color>;(x1,y1);...;(xn,yn)
//
// A group is written as "Groupe;Debut;<color>", the lines of its children
// in order, then "Groupe;Fin".
//
// Lines are written whole under a mutex, but a session expects a single
// caller: two trees accepted concurrently would interleave their groups.
type TextWriter struct {
	mu     sync.Mutex
	w      io.Writer
	closer io.Closer
	err    error
}

var _ shape.Visitor = (*TextWriter)(nil)

// Create creates or truncates the file at path and returns a writer that
// owns it. The caller must Close it.
func Create(path string) (*TextWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}
	return &TextWriter{w: f, closer: f}, nil
}

// NewTextWriter writes lines to w. Close does not close w.
func NewTextWriter(w io.Writer) *TextWriter {
	return &TextWriter{w: w}
}

// Encode returns the lines of a single tree.
func Encode(s shape.Shape) (string, error) {
	var sb strings.Builder
	if err := s.Accept(NewTextWriter(&sb)); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func (tw *TextWriter) VisitSegment(s *shape.Segment) error {
	return tw.line(TagSegment, s.Color().String(), s.P1().String(), s.P2().String())
}

func (tw *TextWriter) VisitCircle(c *shape.Circle) error {
	return tw.line(TagCircle, c.Color().String(), c.Center().String(), shape.FormatFloat(c.Radius()))
}

func (tw *TextWriter) VisitPolygon(p *shape.Polygon) error {
	fields := []string{TagPolygon, p.Color().String()}
	for _, v := range p.Vertices() {
		fields = append(fields, v.String())
	}
	return tw.line(fields...)
}

func (tw *TextWriter) VisitGroup(g *shape.Group) error {
	if err := tw.line(TagGroup, MarkBegin, g.Color().String()); err != nil {
		return err
	}
	if err := shape.Walk(tw, g.Children()); err != nil {
		return err
	}
	return tw.line(TagGroup, MarkEnd)
}

// line writes the fields joined by Sep. After a failed write every later
// call returns the same error.
func (tw *TextWriter) line(fields ...string) error {
	tw.mu.Lock()
	defer tw.mu.Unlock()

	if tw.err != nil {
		return tw.err
	}
	if _, err := io.WriteString(tw.w, strings.Join(fields, Sep)+"\n"); err != nil {
		tw.err = fmt.Errorf("write %s line: %w", fields[0], err)
	}
	return tw.err
}

// Close closes the file opened by Create. It is a no-op for writers built
// with NewTextWriter.
func (tw *TextWriter) Close() error {
	tw.mu.Lock()
	defer tw.mu.Unlock()

	if tw.closer == nil {
		return nil
	}
	err := tw.closer.Close()
	tw.closer = nil
	return err
}
