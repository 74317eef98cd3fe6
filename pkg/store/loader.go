package store

import (
	"context"
	"strings"

	"github.com/rosterkit/rostersync/pkg/errors"
	"github.com/rosterkit/rostersync/pkg/store/memory"
	"github.com/rosterkit/rostersync/pkg/store/sheets"
	"github.com/rosterkit/rostersync/pkg/store/sqlite"
)

// Open selects a backend from a store location URI:
//
//	memory://                          in-memory, for tests and dry runs
//	sqlite://path/to/roster.db         SQLite database file
//	sheets://<spreadsheetID>[/<tab>]   Google Sheets spreadsheet
//
// The sheets form may carry an optional tab segment naming the table to
// sync into. It is returned alongside the backend and is empty for every
// other form.
func Open(ctx context.Context, location string) (Backend, string, error) {
	scheme, rest, found := strings.Cut(location, "://")
	if !found {
		return nil, "", errors.NewConfigError("store", "store location must be scheme://target, got "+location, nil)
	}

	switch scheme {
	case "memory":
		return memory.New(), "", nil
	case "sqlite":
		if rest == "" {
			return nil, "", errors.NewConfigError("store", "sqlite location needs a database path", nil)
		}
		backend, err := sqlite.Open(rest)
		if err != nil {
			return nil, "", err
		}
		return backend, "", nil
	case "sheets":
		spreadsheetID, table := splitSheetsTarget(rest)
		if spreadsheetID == "" {
			return nil, "", errors.NewConfigError("store", "sheets location needs a spreadsheet ID", nil)
		}
		backend, err := sheets.New(ctx, spreadsheetID)
		if err != nil {
			return nil, "", err
		}
		return backend, table, nil
	default:
		return nil, "", errors.NewConfigError("store", "unknown store scheme "+scheme, nil)
	}
}

// splitSheetsTarget separates the spreadsheet ID from the optional tab
// segment of a sheets location target. Everything after the first slash
// is the tab; sheet titles may themselves contain slashes.
func splitSheetsTarget(rest string) (spreadsheetID, table string) {
	spreadsheetID, table, _ = strings.Cut(rest, "/")
	return spreadsheetID, table
}
