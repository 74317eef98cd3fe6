// Package memory provides an in-memory tabular backend for tests and dry
// runs. It offers the same sheet/range primitives as the durable backends.
package memory

import (
	"context"

	"github.com/rosterkit/rostersync/pkg/errors"
)

// Backend stores tables as row/column string grids in memory.
type Backend struct {
	tables map[string][][]string
}

// New creates an empty in-memory backend.
func New() *Backend {
	return &Backend{tables: make(map[string][][]string)}
}

// EnsureTable creates an empty table if none exists with that name.
func (b *Backend) EnsureTable(_ context.Context, name string) error {
	if _, ok := b.tables[name]; !ok {
		b.tables[name] = nil
	}
	return nil
}

// ReadTable returns the full contents of the named table.
func (b *Backend) ReadTable(_ context.Context, name string) ([][]string, error) {
	grid, ok := b.tables[name]
	if !ok {
		return nil, errors.NewValidationError("table", name, "table does not exist")
	}
	out := make([][]string, len(grid))
	for i, row := range grid {
		out[i] = append([]string(nil), row...)
	}
	return out, nil
}

// ClearTable removes all rows from the named table.
func (b *Backend) ClearTable(_ context.Context, name string) error {
	if _, ok := b.tables[name]; !ok {
		return errors.NewValidationError("table", name, "table does not exist")
	}
	b.tables[name] = nil
	return nil
}

// AppendRow appends a single row after the last occupied row.
func (b *Backend) AppendRow(_ context.Context, name string, row []string) error {
	if _, ok := b.tables[name]; !ok {
		return errors.NewValidationError("table", name, "table does not exist")
	}
	b.tables[name] = append(b.tables[name], append([]string(nil), row...))
	return nil
}

// SetRange writes a block starting at the given row and column offset,
// growing the grid as needed.
func (b *Backend) SetRange(_ context.Context, name string, row, col int, block [][]string) error {
	grid, ok := b.tables[name]
	if !ok {
		return errors.NewValidationError("table", name, "table does not exist")
	}

	for i, blockRow := range block {
		r := row + i
		for len(grid) <= r {
			grid = append(grid, nil)
		}
		for j, value := range blockRow {
			c := col + j
			for len(grid[r]) <= c {
				grid[r] = append(grid[r], "")
			}
			grid[r][c] = value
		}
	}

	b.tables[name] = grid
	return nil
}
