// Package sheets provides a Google Sheets tabular backend. Each table is a
// sheet (tab) of one spreadsheet; credentials come from Application Default
// Credentials unless a credentials file is configured.
package sheets

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/rosterkit/rostersync/pkg/errors"
)

// Backend reads and writes sheet tabs of one spreadsheet.
type Backend struct {
	service       *sheets.Service
	spreadsheetID string
}

// Option configures the backend.
type Option func(*config)

type config struct {
	clientOptions []option.ClientOption
}

// WithCredentialsFile authenticates with a service-account key file
// instead of Application Default Credentials.
func WithCredentialsFile(path string) Option {
	return func(c *config) {
		c.clientOptions = append(c.clientOptions, option.WithCredentialsFile(path))
	}
}

// New creates a backend for the given spreadsheet.
func New(ctx context.Context, spreadsheetID string, opts ...Option) (*Backend, error) {
	if spreadsheetID == "" {
		return nil, errors.NewValidationError("spreadsheetID", spreadsheetID, "must not be empty")
	}

	cfg := &config{
		clientOptions: []option.ClientOption{
			option.WithScopes(sheets.SpreadsheetsScope),
		},
	}
	for _, opt := range opts {
		opt(cfg)
	}

	service, err := sheets.NewService(ctx, cfg.clientOptions...)
	if err != nil {
		return nil, errors.WrapIO("open", "sheets service", err)
	}

	return &Backend{service: service, spreadsheetID: spreadsheetID}, nil
}

// EnsureTable adds a sheet with the given title when the spreadsheet has
// none. Idempotent.
func (b *Backend) EnsureTable(ctx context.Context, name string) error {
	spreadsheet, err := b.service.Spreadsheets.Get(b.spreadsheetID).Context(ctx).Do()
	if err != nil {
		return errors.WrapIO("read", b.spreadsheetID, err)
	}

	for _, sheet := range spreadsheet.Sheets {
		if sheet.Properties != nil && sheet.Properties.Title == name {
			return nil
		}
	}

	_, err = b.service.Spreadsheets.BatchUpdate(b.spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			AddSheet: &sheets.AddSheetRequest{
				Properties: &sheets.SheetProperties{Title: name},
			},
		}},
	}).Context(ctx).Do()
	return errors.WrapIO("create", name, err)
}

// ReadTable returns the sheet's occupied cells as a string grid.
func (b *Backend) ReadTable(ctx context.Context, name string) ([][]string, error) {
	resp, err := b.service.Spreadsheets.Values.Get(b.spreadsheetID, sheetRange(name)).Context(ctx).Do()
	if err != nil {
		return nil, errors.WrapIO("read", name, err)
	}

	grid := make([][]string, 0, len(resp.Values))
	for _, row := range resp.Values {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = fmt.Sprint(v)
		}
		grid = append(grid, cells)
	}
	return grid, nil
}

// ClearTable removes all values from the sheet.
func (b *Backend) ClearTable(ctx context.Context, name string) error {
	_, err := b.service.Spreadsheets.Values.Clear(
		b.spreadsheetID, sheetRange(name), &sheets.ClearValuesRequest{},
	).Context(ctx).Do()
	return errors.WrapIO("clear", name, err)
}

// AppendRow appends a single row after the sheet's last occupied row.
func (b *Backend) AppendRow(ctx context.Context, name string, row []string) error {
	_, err := b.service.Spreadsheets.Values.Append(
		b.spreadsheetID, sheetRange(name), valueRange([][]string{row}),
	).ValueInputOption("RAW").Context(ctx).Do()
	return errors.WrapIO("write", name, err)
}

// SetRange writes a block starting at the given zero-based offsets.
func (b *Backend) SetRange(ctx context.Context, name string, row, col int, block [][]string) error {
	rng := fmt.Sprintf("'%s'!%s%d", name, columnLetters(col), row+1)
	_, err := b.service.Spreadsheets.Values.Update(
		b.spreadsheetID, rng, valueRange(block),
	).ValueInputOption("RAW").Context(ctx).Do()
	return errors.WrapIO("write", name, err)
}

// sheetRange addresses a whole sheet in A1 notation.
func sheetRange(name string) string {
	return fmt.Sprintf("'%s'", name)
}

// valueRange converts a string grid into a Sheets value range.
func valueRange(block [][]string) *sheets.ValueRange {
	values := make([][]any, len(block))
	for i, row := range block {
		cells := make([]any, len(row))
		for j, v := range row {
			cells[j] = v
		}
		values[i] = cells
	}
	return &sheets.ValueRange{Values: values}
}

// columnLetters converts a zero-based column index to its A1 letters.
func columnLetters(col int) string {
	letters := ""
	for col >= 0 {
		letters = string(rune('A'+col%26)) + letters
		col = col/26 - 1
	}
	return letters
}
