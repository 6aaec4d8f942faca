// Package store persists drawings in their text encoding.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var ErrNotFound = errors.New("drawing not found")

// Drawing is a stored shape tree. Body holds the persisted line format;
// Shapes and Area are computed when the drawing is created.
type Drawing struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Body      string    `json:"body,omitempty"`
	Shapes    int       `json:"shapes"`
	Area      float64   `json:"area"`
	CreatedAt time.Time `json:"createdAt"`
}

type Store interface {
	Create(ctx context.Context, d *Drawing) error
	Get(ctx context.Context, id string) (*Drawing, error)
	// List returns every drawing without its body, newest first.
	List(ctx context.Context) ([]Drawing, error)
	Delete(ctx context.Context, id string) error
	Close()
}

const schema = `
CREATE TABLE IF NOT EXISTS drawings (
    id         TEXT PRIMARY KEY,
    name       TEXT NOT NULL,
    body       TEXT NOT NULL,
    shapes     INTEGER NOT NULL,
    area       DOUBLE PRECISION NOT NULL,
    created_at TIMESTAMP NOT NULL
)`

var ErrUnknownDriver = errors.New("unknown store driver")

// Open returns the store selected by driver: "sqlite" opens the file at
// sqlitePath, "postgres" connects to databaseURL.
func Open(ctx context.Context, driver, databaseURL, sqlitePath string) (Store, error) {
	switch driver {
	case "sqlite":
		return OpenSQLite(ctx, sqlitePath)
	case "postgres":
		return NewPostgres(ctx, databaseURL)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
}
