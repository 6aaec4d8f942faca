// Package drawing stores shape trees in their text encoding and pushes them
// to canvases.
package drawing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/formes/backend-go/internal/export"
	"github.com/formes/backend-go/internal/load"
	"github.com/formes/backend-go/internal/shape"
	"github.com/formes/backend-go/internal/store"
	"github.com/formes/backend-go/internal/typeid"
)

var (
	ErrNotFound    = errors.New("drawing not found")
	ErrInvalidID   = errors.New("invalid drawing id")
	ErrInvalidBody = errors.New("invalid drawing body")
)

type Service struct {
	store store.Store
	now   func() time.Time
}

func NewService(st store.Store) *Service {
	return &Service{store: st, now: time.Now}
}

// Create parses body strictly, stores it re-encoded, and returns the stored
// drawing.
func (s *Service) Create(ctx context.Context, name, body string) (*store.Drawing, error) {
	shapes, err := load.String(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBody, err)
	}
	if len(shapes) == 0 {
		return nil, fmt.Errorf("%w: no shapes", ErrInvalidBody)
	}

	var sb strings.Builder
	if err := shape.Walk(export.NewTextWriter(&sb), shapes); err != nil {
		return nil, fmt.Errorf("encode drawing: %w", err)
	}

	var stats Stats
	if err := shape.Walk(&stats, shapes); err != nil {
		return nil, fmt.Errorf("measure drawing: %w", err)
	}

	d := &store.Drawing{
		ID:        typeid.NewDrawingID(),
		Name:      name,
		Body:      sb.String(),
		Shapes:    stats.Leaves(),
		Area:      stats.Area,
		CreatedAt: s.now().UTC(),
	}
	if err := s.store.Create(ctx, d); err != nil {
		return nil, fmt.Errorf("create drawing: %w", err)
	}
	return d, nil
}

func (s *Service) Get(ctx context.Context, id string) (*store.Drawing, error) {
	if err := typeid.Validate(id, typeid.PrefixDrawing); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidID, err)
	}

	d, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get drawing: %w", err)
	}
	return d, nil
}

func (s *Service) List(ctx context.Context) ([]store.Drawing, error) {
	drawings, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list drawings: %w", err)
	}
	return drawings, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := typeid.Validate(id, typeid.PrefixDrawing); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidID, err)
	}

	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete drawing: %w", err)
	}
	return nil
}

// Shapes rebuilds the trees of a stored drawing.
func (s *Service) Shapes(ctx context.Context, id string) ([]shape.Shape, error) {
	d, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	shapes, err := load.String(d.Body)
	if err != nil {
		return nil, fmt.Errorf("load drawing %s: %w", id, err)
	}
	return shapes, nil
}

// Draw sends every leaf of a stored drawing to sender and returns the
// number of requests sent.
func (s *Service) Draw(ctx context.Context, id string, sender export.Sender) (int, error) {
	shapes, err := s.Shapes(ctx, id)
	if err != nil {
		return 0, err
	}
	d := export.NewDrawer(sender)
	if err := shape.Walk(d, shapes); err != nil {
		return d.Sent(), fmt.Errorf("draw %s: %w", id, err)
	}
	return d.Sent(), nil
}
