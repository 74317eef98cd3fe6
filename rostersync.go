// Package rostersync synchronizes the member roster of a chat-workspace
// channel into a named table of a tabular store. Each run fetches the
// scoped member identifiers, looks up and parses every member's identity,
// merges the result with the previously persisted roster by member ID,
// and writes the merged set back. Members already stored survive a run
// even when absent from the fetch; fetched members overwrite stored ones
// with the same ID.
//
// Example usage:
//
//	client, err := rostersync.New(
//	    rostersync.WithToken(os.Getenv("ROSTERSYNC_TOKEN")),
//	    rostersync.WithScope("C024BE91L"),
//	    rostersync.WithStoreLocation("sqlite://roster.db"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := client.Sync(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Summary())
package rostersync

import (
	"context"

	"github.com/rosterkit/rostersync/internal/sources/slack"
	"github.com/rosterkit/rostersync/pkg/reconciler"
	"github.com/rosterkit/rostersync/pkg/roster"
	"github.com/rosterkit/rostersync/pkg/store"
)

// DefaultTable is the table members are synced into unless configured
// otherwise.
const DefaultTable = "members"

// Client runs reconciliations against one scope and one store.
type Client struct {
	cfg *config
}

// New creates a client from options. Token, scope, and store location are
// required unless a custom source and backend are injected.
func New(opts ...Option) (*Client, error) {
	cfg := &config{table: DefaultTable}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	return &Client{cfg: cfg}, nil
}

// Sync runs one reconciliation: fetch, parse, merge with the persisted
// roster, and write the merged set back. The returned result carries the
// final member list, per-member failures, and run statistics.
func (c *Client) Sync(ctx context.Context) (*reconciler.Result, error) {
	r, err := c.reconciler(ctx)
	if err != nil {
		return nil, err
	}
	return r.Run(ctx)
}

// Members returns the members currently persisted in the store, without
// contacting the member source.
func (c *Client) Members(ctx context.Context) ([]roster.Member, error) {
	st, err := c.store(ctx)
	if err != nil {
		return nil, err
	}
	return st.ReadMembers(ctx)
}

// reconciler wires the source and store into a configured pipeline.
func (c *Client) reconciler(ctx context.Context) (*reconciler.Reconciler, error) {
	st, err := c.store(ctx)
	if err != nil {
		return nil, err
	}

	source := c.cfg.source
	if source == nil {
		var sourceOpts []slack.Option
		if c.cfg.baseURL != "" {
			sourceOpts = append(sourceOpts, slack.WithBaseURL(c.cfg.baseURL))
		}
		source = slack.New(c.cfg.token, sourceOpts...)
	}

	return reconciler.New(
		reconciler.Config{
			Token:         c.cfg.token,
			ScopeID:       c.cfg.scopeID,
			StoreLocation: c.cfg.storeLocation,
		},
		source,
		st,
		reconciler.WithDryRun(c.cfg.dryRun),
	)
}

// store opens the configured backend and binds it to the table. A table
// named in the store location (sheets://<spreadsheetID>/<tab>) applies
// unless WithTable set one explicitly.
func (c *Client) store(ctx context.Context) (*store.Store, error) {
	backend := c.cfg.backend
	table := c.cfg.table
	if backend == nil {
		opened, locationTable, err := store.Open(ctx, c.cfg.storeLocation)
		if err != nil {
			return nil, err
		}
		backend = opened
		if locationTable != "" && !c.cfg.tableSet {
			table = locationTable
		}
	}
	return store.New(ctx, backend, table)
}
