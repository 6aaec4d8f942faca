package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Postgres struct {
	pool *pgxpool.Pool
}

var _ Store = (*Postgres)(nil)

// NewPostgres connects to databaseURL and creates the drawings table if
// needed.
func NewPostgres(ctx context.Context, databaseURL string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Postgres{pool: pool}, nil
}

func (s *Postgres) Create(ctx context.Context, d *Drawing) error {
	_, err := s.pool.Exec(ctx, `
        INSERT INTO drawings (id, name, body, shapes, area, created_at)
        VALUES ($1, $2, $3, $4, $5, $6)
    `, d.ID, d.Name, d.Body, d.Shapes, d.Area, d.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert drawing: %w", err)
	}
	return nil
}

func (s *Postgres) Get(ctx context.Context, id string) (*Drawing, error) {
	row := s.pool.QueryRow(ctx, `
        SELECT id, name, body, shapes, area, created_at
        FROM drawings
        WHERE id = $1
    `, id)

	var d Drawing
	if err := row.Scan(&d.ID, &d.Name, &d.Body, &d.Shapes, &d.Area, &d.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get drawing: %w", err)
	}
	return &d, nil
}

func (s *Postgres) List(ctx context.Context) ([]Drawing, error) {
	rows, err := s.pool.Query(ctx, `
        SELECT id, name, shapes, area, created_at
        FROM drawings
        ORDER BY created_at DESC, id
    `)
	if err != nil {
		return nil, fmt.Errorf("list drawings: %w", err)
	}

	drawings, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Drawing, error) {
		var d Drawing
		err := row.Scan(&d.ID, &d.Name, &d.Shapes, &d.Area, &d.CreatedAt)
		return d, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan drawings: %w", err)
	}
	return drawings, nil
}

func (s *Postgres) Delete(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM drawings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete drawing: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Postgres) Close() {
	s.pool.Close()
}
