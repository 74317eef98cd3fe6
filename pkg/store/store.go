// Package store provides validated read/write of 2D row sets to a named
// table of a tabular backend. The first row of every written table is a
// header; reads return data rows only.
package store

import (
	"context"

	"github.com/rosterkit/rostersync/pkg/errors"
	"github.com/rosterkit/rostersync/pkg/identity"
	"github.com/rosterkit/rostersync/pkg/logging"
	"github.com/rosterkit/rostersync/pkg/roster"
)

// Header is the member table header row.
var Header = []string{"memberId", "shortId", "displayName"}

// Backend provides the sheet/range primitives a tabular store is built on.
// Implementations live in the memory, sqlite, and sheets subpackages.
type Backend interface {
	// EnsureTable creates an empty table if none exists with that name.
	// Idempotent.
	EnsureTable(ctx context.Context, name string) error

	// ReadTable returns the full contents of the named table, header
	// included. An empty table yields an empty slice; a table never
	// created with EnsureTable is an error.
	ReadTable(ctx context.Context, name string) ([][]string, error)

	// ClearTable removes all rows from the named table.
	ClearTable(ctx context.Context, name string) error

	// AppendRow appends a single row after the last occupied row.
	AppendRow(ctx context.Context, name string, row []string) error

	// SetRange writes a rectangular block starting at the given
	// zero-based row and column offset.
	SetRange(ctx context.Context, name string, row, col int, block [][]string) error
}

// Store is a validated tabular store bound to one named table.
type Store struct {
	backend Backend
	table   string
}

// New returns a store bound to the named table, creating the table in the
// backend if it does not exist yet.
func New(ctx context.Context, backend Backend, table string) (*Store, error) {
	if err := backend.EnsureTable(ctx, table); err != nil {
		return nil, errors.WrapIO("create", table, err)
	}
	return &Store{backend: backend, table: table}, nil
}

// Table returns the name of the bound table.
func (s *Store) Table() string {
	return s.table
}

// Validate fails with a ShapeError unless rows form a rectangle: every row
// must have the same length as the first. An empty row set is valid.
func Validate(rows [][]string) error {
	if len(rows) == 0 {
		return nil
	}
	want := len(rows[0])
	for i, row := range rows {
		if len(row) != want {
			return &errors.ShapeError{Row: i, Want: want, Got: len(row)}
		}
	}
	return nil
}

// Write validates rows and replaces all existing contents of the table
// with them, first row treated as header. Writing an empty row set clears
// the table and returns without error. This is a destructive overwrite:
// callers needing preservation must merge before calling Write.
func (s *Store) Write(ctx context.Context, rows [][]string) error {
	if err := Validate(rows); err != nil {
		return err
	}
	if err := s.backend.ClearTable(ctx, s.table); err != nil {
		return errors.WrapIO("clear", s.table, err)
	}
	if len(rows) == 0 {
		return nil
	}
	if err := s.backend.SetRange(ctx, s.table, 0, 0, rows); err != nil {
		return errors.WrapIO("write", s.table, err)
	}
	return nil
}

// ReadAll returns the table's data rows, excluding the header row. A
// table with zero or one rows yields an empty slice.
func (s *Store) ReadAll(ctx context.Context) ([][]string, error) {
	rows, err := s.backend.ReadTable(ctx, s.table)
	if err != nil {
		return nil, errors.WrapIO("read", s.table, err)
	}
	if len(rows) <= 1 {
		return nil, nil
	}
	return rows[1:], nil
}

// WriteMembers writes the header plus one row per valid member. Members
// missing any of the three required values are skipped with a warning
// rather than failing the whole write.
func (s *Store) WriteMembers(ctx context.Context, members []roster.Member) error {
	logger := logging.FromContext(ctx)

	rows := make([][]string, 0, len(members)+1)
	rows = append(rows, Header)
	for _, m := range members {
		if !m.Valid() {
			logger.Warn().
				Str("member_id", m.ID).
				Msg("Skipping member with incomplete identity")
			continue
		}
		rows = append(rows, []string{m.ID, m.Identity.ShortID, m.Identity.DisplayName})
	}

	return s.Write(ctx, rows)
}

// ReadMembers maps the table's data rows positionally back into members:
// memberId, shortId, displayName.
func (s *Store) ReadMembers(ctx context.Context) ([]roster.Member, error) {
	rows, err := s.ReadAll(ctx)
	if err != nil {
		return nil, err
	}

	members := make([]roster.Member, 0, len(rows))
	for _, row := range rows {
		members = append(members, roster.Member{
			ID: column(row, 0),
			Identity: identity.Identity{
				ShortID:     column(row, 1),
				DisplayName: column(row, 2),
			},
		})
	}
	return members, nil
}

// column returns row[i], or "" when the row is too short.
func column(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return row[i]
}
