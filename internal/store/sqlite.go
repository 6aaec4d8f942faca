package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// timeLayout has a fixed-width fraction so that stored times sort as text.
// Reads go through RFC3339Nano: the driver hands TIMESTAMP columns back as
// time.Time and database/sql formats them without trailing zeros.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

type SQLite struct {
	db *sql.DB
}

var _ Store = (*SQLite)(nil)

// OpenSQLite opens the database file at path, creating it and its directory
// if needed. The path ":memory:" opens a private in-memory database.
func OpenSQLite(ctx context.Context, path string) (*SQLite, error) {
	dsn := ":memory:"
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("mkdir db dir: %w", err)
		}
		dsn = fmt.Sprintf("file:%s?mode=rwc&_pragma=busy_timeout(5000)", path)
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// One connection keeps an in-memory database alive and serializes writers.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &SQLite{db: db}, nil
}

func (s *SQLite) Create(ctx context.Context, d *Drawing) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO drawings (id, name, body, shapes, area, created_at)
        VALUES (?, ?, ?, ?, ?, ?)
    `, d.ID, d.Name, d.Body, d.Shapes, d.Area, d.CreatedAt.UTC().Format(timeLayout))
	if err != nil {
		return fmt.Errorf("insert drawing: %w", err)
	}
	return nil
}

func (s *SQLite) Get(ctx context.Context, id string) (*Drawing, error) {
	row := s.db.QueryRowContext(ctx, `
        SELECT id, name, body, shapes, area, created_at
        FROM drawings
        WHERE id = ?
    `, id)

	var d Drawing
	var created string
	if err := row.Scan(&d.ID, &d.Name, &d.Body, &d.Shapes, &d.Area, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get drawing: %w", err)
	}
	if err := parseTime(created, &d.CreatedAt); err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *SQLite) List(ctx context.Context) ([]Drawing, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, name, shapes, area, created_at
        FROM drawings
        ORDER BY created_at DESC, id
    `)
	if err != nil {
		return nil, fmt.Errorf("list drawings: %w", err)
	}
	defer rows.Close()

	drawings := []Drawing{}
	for rows.Next() {
		var d Drawing
		var created string
		if err := rows.Scan(&d.ID, &d.Name, &d.Shapes, &d.Area, &created); err != nil {
			return nil, fmt.Errorf("scan drawing: %w", err)
		}
		if err := parseTime(created, &d.CreatedAt); err != nil {
			return nil, err
		}
		drawings = append(drawings, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list drawings: %w", err)
	}
	return drawings, nil
}

func (s *SQLite) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM drawings WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete drawing: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete drawing: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLite) Close() {
	s.db.Close()
}

func parseTime(s string, t *time.Time) error {
	parsed, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return fmt.Errorf("parse created_at %q: %w", s, err)
	}
	*t = parsed
	return nil
}
