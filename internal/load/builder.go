package load

import (
	"fmt"

	"github.com/formes/backend-go/internal/shape"
)

// Builder assembles records into trees. Shapes outside any group become
// roots; a group is attached to its parent when it begins, so children
// keep the order of their lines.
type Builder struct {
	roots []shape.Shape
	open  []*shape.Group
}

func (b *Builder) Add(rec Record) error {
	switch rec.Kind {
	case KindShape:
		return b.attach(rec.Shape)
	case KindGroupBegin:
		g, err := shape.NewGroup(rec.Color)
		if err != nil {
			return err
		}
		if err := b.attach(g); err != nil {
			return err
		}
		b.open = append(b.open, g)
		return nil
	case KindGroupEnd:
		if len(b.open) == 0 {
			return ErrUnbalancedGroup
		}
		b.open = b.open[:len(b.open)-1]
		return nil
	}
	return fmt.Errorf("unknown record kind %v", rec.Kind)
}

func (b *Builder) attach(s shape.Shape) error {
	if len(b.open) == 0 {
		b.roots = append(b.roots, s)
		return nil
	}
	return b.open[len(b.open)-1].Add(s)
}

// Depth returns the number of groups still open.
func (b *Builder) Depth() int { return len(b.open) }

// Finish returns the roots, or ErrUnterminatedGroup if a group is still
// open.
func (b *Builder) Finish() ([]shape.Shape, error) {
	if len(b.open) > 0 {
		return nil, fmt.Errorf("%w: %d still open", ErrUnterminatedGroup, len(b.open))
	}
	return b.roots, nil
}
