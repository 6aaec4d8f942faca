package load

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/formes/backend-go/internal/shape"
)

const maxLineSize = 1 << 20

// Loader reads the line format into shape trees.
//
// By default the first bad line aborts the load. With Lenient set, lines
// that are malformed or unrecognized are logged and skipped; an unbalanced
// or unterminated group still aborts.
type Loader struct {
	Chain   Handler
	Lenient bool
}

// Load returns the top-level shapes of r in order. Blank lines are
// ignored. Errors name the 1-based line they come from.
func (l Loader) Load(r io.Reader) ([]shape.Shape, error) {
	chain := l.Chain
	if chain == nil {
		chain = NewChain()
	}

	var b Builder
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	n := 0
	for sc.Scan() {
		n++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}

		rec, err := chain.Handle(line)
		if err != nil {
			if l.Lenient && skippable(err) {
				slog.Warn("skipping line", "line", n, "error", err)
				continue
			}
			return nil, fmt.Errorf("line %d: %w", n, err)
		}
		if err := b.Add(rec); err != nil {
			return nil, fmt.Errorf("line %d: %w", n, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read line %d: %w", n+1, err)
	}

	return b.Finish()
}

func skippable(err error) bool {
	return errors.Is(err, ErrMalformedLine) || errors.Is(err, ErrUnrecognizedLine)
}

// File loads the file at path strictly.
func File(path string) ([]shape.Shape, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	shapes, err := Loader{}.Load(f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return shapes, nil
}

// String loads s strictly.
func String(s string) ([]shape.Shape, error) {
	return Loader{}.Load(strings.NewReader(s))
}
