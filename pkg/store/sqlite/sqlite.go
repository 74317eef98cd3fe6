// Package sqlite provides a SQLite-backed tabular backend using the pure-Go
// modernc.org/sqlite driver. Tables are stored as sparse cell grids so the
// backend can offer the same sheet/range primitives as the other backends.
package sqlite

import (
	"context"
	"database/sql"

	_ "modernc.org/sqlite" // register pure-Go SQLite driver

	"github.com/rosterkit/rostersync/pkg/errors"
)

const schema = `
CREATE TABLE IF NOT EXISTS tables (
    name TEXT PRIMARY KEY
);
CREATE TABLE IF NOT EXISTS cells (
    tbl   TEXT NOT NULL,
    row   INTEGER NOT NULL,
    col   INTEGER NOT NULL,
    value TEXT NOT NULL,
    PRIMARY KEY (tbl, row, col)
);
`

// Backend stores tables as cell grids in a SQLite database.
type Backend struct {
	db *sql.DB
}

// Open opens (or creates) a SQLite database at the given path and ensures
// the cell schema exists. Pass ":memory:" for an in-memory database.
func Open(path string) (*Backend, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, errors.WrapIO("create", "schema", err)
	}
	return &Backend{db: db}, nil
}

// Close closes the underlying database.
func (b *Backend) Close() error {
	return b.db.Close()
}

// EnsureTable creates an empty table if none exists with that name.
func (b *Backend) EnsureTable(ctx context.Context, name string) error {
	_, err := b.db.ExecContext(ctx, `INSERT OR IGNORE INTO tables(name) VALUES(?)`, name)
	return err
}

// ReadTable returns the full contents of the named table as a dense grid.
func (b *Backend) ReadTable(ctx context.Context, name string) ([][]string, error) {
	if err := b.exists(ctx, name); err != nil {
		return nil, err
	}

	rows, err := b.db.QueryContext(ctx,
		`SELECT row, col, value FROM cells WHERE tbl = ? ORDER BY row, col`, name)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var grid [][]string
	for rows.Next() {
		var r, c int
		var value string
		if err := rows.Scan(&r, &c, &value); err != nil {
			return nil, err
		}
		for len(grid) <= r {
			grid = append(grid, nil)
		}
		for len(grid[r]) <= c {
			grid[r] = append(grid[r], "")
		}
		grid[r][c] = value
	}
	return grid, rows.Err()
}

// ClearTable removes all cells of the named table.
func (b *Backend) ClearTable(ctx context.Context, name string) error {
	if err := b.exists(ctx, name); err != nil {
		return err
	}
	_, err := b.db.ExecContext(ctx, `DELETE FROM cells WHERE tbl = ?`, name)
	return err
}

// AppendRow appends a single row after the last occupied row.
func (b *Backend) AppendRow(ctx context.Context, name string, row []string) error {
	if err := b.exists(ctx, name); err != nil {
		return err
	}

	var next int
	err := b.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(row) + 1, 0) FROM cells WHERE tbl = ?`, name).Scan(&next)
	if err != nil {
		return err
	}

	return b.SetRange(ctx, name, next, 0, [][]string{row})
}

// SetRange upserts a block of cells starting at the given offset.
func (b *Backend) SetRange(ctx context.Context, name string, row, col int, block [][]string) error {
	if err := b.exists(ctx, name); err != nil {
		return err
	}

	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO cells(tbl, row, col, value) VALUES(?, ?, ?, ?)
		 ON CONFLICT(tbl, row, col) DO UPDATE SET value = excluded.value`)
	if err != nil {
		return err
	}
	defer func() { _ = stmt.Close() }()

	for i, blockRow := range block {
		for j, value := range blockRow {
			if _, err := stmt.ExecContext(ctx, name, row+i, col+j, value); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

// exists reports an error when the named table has not been created.
func (b *Backend) exists(ctx context.Context, name string) error {
	var one int
	err := b.db.QueryRowContext(ctx, `SELECT 1 FROM tables WHERE name = ?`, name).Scan(&one)
	if err == sql.ErrNoRows {
		return errors.NewValidationError("table", name, "table does not exist")
	}
	return err
}
