// Package reconciler orchestrates a fetch-merge-persist run: list the
// member identifiers in scope, fetch and parse each member's detail,
// merge with the persisted roster by member ID, and write the merged set
// back. Per-member failures are recorded and skipped; configuration and
// initial-listing failures abort the run.
package reconciler

import (
	"context"

	"github.com/rosterkit/rostersync/pkg/errors"
	"github.com/rosterkit/rostersync/pkg/identity"
	"github.com/rosterkit/rostersync/pkg/logging"
	"github.com/rosterkit/rostersync/pkg/roster"
)

// MemberSource lists member identifiers in a scope and fetches per-member
// detail. Implemented by the slack source client.
type MemberSource interface {
	ListScopeMembers(ctx context.Context, scopeID string) ([]string, error)
	FetchMember(ctx context.Context, memberID string) (*roster.SourceRecord, error)
}

// MemberStore reads and writes the persisted roster.
type MemberStore interface {
	ReadMembers(ctx context.Context) ([]roster.Member, error)
	WriteMembers(ctx context.Context, members []roster.Member) error
}

// Config is the resolved configuration a run requires. All three values
// must be present; components never consult ambient configuration.
type Config struct {
	// Token is the credential for the member source.
	Token string

	// ScopeID restricts which member identifiers are listed.
	ScopeID string

	// StoreLocation identifies the tabular store (scheme://target).
	StoreLocation string
}

// Validate fails with a ConfigError naming the first missing key.
func (c Config) Validate() error {
	required := []struct {
		key   string
		value string
	}{
		{"token", c.Token},
		{"channel", c.ScopeID},
		{"store", c.StoreLocation},
	}
	for _, req := range required {
		if req.value == "" {
			return errors.NewConfigError(req.key, "required value is missing", nil)
		}
	}
	return nil
}

// Reconciler runs the fetch-merge-persist pipeline. Runs are strictly
// sequential: no concurrent requests, no retries, no mid-run cancellation
// beyond the passed context.
type Reconciler struct {
	cfg    Config
	source MemberSource
	store  MemberStore
	dryRun bool
}

// Option configures a Reconciler.
type Option func(*Reconciler)

// WithDryRun skips the final write; the run still fetches, parses, and
// merges, and the result reports what would have been written.
func WithDryRun(enabled bool) Option {
	return func(r *Reconciler) {
		r.dryRun = enabled
	}
}

// New validates the configuration and returns a Reconciler. A missing
// configuration value is fatal here; no partial run is attempted.
func New(cfg Config, source MemberSource, store MemberStore, opts ...Option) (*Reconciler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if source == nil {
		return nil, errors.NewConfigError("source", "member source is required", nil)
	}
	if store == nil {
		return nil, errors.NewConfigError("store", "member store is required", nil)
	}

	r := &Reconciler{cfg: cfg, source: source, store: store}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Run executes one reconciliation. Per-member fetch and parse failures
// are recorded in the result and skipped; a failure to list the scope,
// read the store, or write the merged set aborts the run.
func (r *Reconciler) Run(ctx context.Context) (*Result, error) {
	logger := logging.FromContext(ctx)
	result := NewResult(r.cfg.ScopeID, r.dryRun)

	// Fetching: the initial listing is fatal on failure.
	ids, err := r.source.ListScopeMembers(ctx, r.cfg.ScopeID)
	if err != nil {
		return nil, errors.NewSyncError(r.cfg.ScopeID, nil, err)
	}
	result.Stats.Listed = len(ids)
	logger.Info().
		Str("scope", r.cfg.ScopeID).
		Int("members", len(ids)).
		Msg("Listed scope members")

	// Per-member detail fetch and parse: failures are recorded and the
	// run continues with the next identifier.
	fetched := make([]roster.Member, 0, len(ids))
	for _, id := range ids {
		member, err := r.fetchOne(ctx, id)
		if err != nil {
			result.Failures = append(result.Failures, Failure{MemberID: id, Err: err})
			logger.Warn().
				Str("member_id", id).
				Err(err).
				Msg("Skipping member")
			continue
		}
		fetched = append(fetched, member)
	}
	result.Stats.Fetched = len(fetched)

	// Merging: existing rows seed the map, fetched members overlay them.
	existing, err := r.store.ReadMembers(ctx)
	if err != nil {
		return nil, errors.NewSyncError(r.cfg.ScopeID, nil, err)
	}
	result.Stats.Existing = len(existing)

	merged := roster.Merge(existing, fetched)
	result.Members = merged
	result.Stats.Merged = len(merged)

	// Writing: full replacement of the table contents.
	if !r.dryRun {
		if err := r.store.WriteMembers(ctx, merged); err != nil {
			return nil, errors.NewSyncError(r.cfg.ScopeID, nil, err)
		}
		result.Stats.Written = len(merged)
	}

	result.Finalize()
	logger.Info().
		Str("scope", r.cfg.ScopeID).
		Int("merged", result.Stats.Merged).
		Int("skipped", result.Skipped()).
		Bool("dry_run", r.dryRun).
		Dur("duration", result.Metadata.Duration).
		Msg("Reconciliation complete")

	return result, nil
}

// fetchOne fetches and parses one member's detail record.
func (r *Reconciler) fetchOne(ctx context.Context, id string) (roster.Member, error) {
	record, err := r.source.FetchMember(ctx, id)
	if err != nil {
		return roster.Member{}, err
	}

	ident, err := identity.Parse(record.Profile.DisplayName)
	if err != nil {
		return roster.Member{}, err
	}

	// The source may return a canonical ID differing from the listing;
	// prefer it when present.
	memberID := record.ID
	if memberID == "" {
		memberID = id
	}

	return roster.Member{ID: memberID, Identity: ident}, nil
}
