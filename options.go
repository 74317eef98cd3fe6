package rostersync

import (
	"github.com/rosterkit/rostersync/pkg/errors"
	"github.com/rosterkit/rostersync/pkg/reconciler"
	"github.com/rosterkit/rostersync/pkg/store"
)

// Option is a function that configures a Client.
type Option func(*config) error

// config holds resolved client configuration. The three string values are
// required by the pipeline even when a custom source or backend is
// injected, since they identify the run in reporting.
type config struct {
	token         string
	scopeID       string
	storeLocation string
	table         string
	tableSet      bool
	baseURL       string
	dryRun        bool

	source  reconciler.MemberSource
	backend store.Backend
}

// WithToken sets the bearer credential for the member source.
func WithToken(token string) Option {
	return func(c *config) error {
		c.token = token
		return nil
	}
}

// WithScope sets the scope (channel) whose members are synced.
func WithScope(scopeID string) Option {
	return func(c *config) error {
		c.scopeID = scopeID
		return nil
	}
}

// WithStoreLocation sets the tabular store location URI
// (memory://, sqlite://path, sheets://spreadsheetID[/tab]).
func WithStoreLocation(location string) Option {
	return func(c *config) error {
		c.storeLocation = location
		return nil
	}
}

// WithTable sets the table name members are synced into. Defaults to
// "members" and takes precedence over a tab named in the store location.
func WithTable(table string) Option {
	return func(c *config) error {
		if table == "" {
			return errors.NewConfigError("table", "table name must not be empty", nil)
		}
		c.table = table
		c.tableSet = true
		return nil
	}
}

// WithBaseURL overrides the member-source API root, primarily for tests.
func WithBaseURL(baseURL string) Option {
	return func(c *config) error {
		c.baseURL = baseURL
		return nil
	}
}

// WithDryRun skips the final write; the run still reports what it would
// have written.
func WithDryRun(enabled bool) Option {
	return func(c *config) error {
		c.dryRun = enabled
		return nil
	}
}

// WithSource injects a custom member source in place of the default
// API client.
func WithSource(source reconciler.MemberSource) Option {
	return func(c *config) error {
		c.source = source
		return nil
	}
}

// WithBackend injects a custom tabular backend in place of the one the
// store location would select.
func WithBackend(backend store.Backend) Option {
	return func(c *config) error {
		c.backend = backend
		return nil
	}
}
