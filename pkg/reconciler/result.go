package reconciler

import (
	"fmt"
	"time"

	"github.com/agentstation/utc"

	"github.com/rosterkit/rostersync/pkg/roster"
)

// Failure records one member that was skipped during a run.
type Failure struct {
	MemberID string
	Err      error
}

// Result is the outcome of one reconciliation run.
type Result struct {
	// Members is the final merged roster, sorted by member ID.
	Members []roster.Member

	// Failures lists members skipped due to fetch or parse errors,
	// keyed by the identifier from the listing.
	Failures []Failure

	// Stats counts what the run saw and did.
	Stats Stats

	// Metadata describes the run itself.
	Metadata Metadata
}

// Stats counts the members at each pipeline stage.
type Stats struct {
	Listed   int
	Fetched  int
	Existing int
	Merged   int
	Written  int
}

// Metadata describes the run.
type Metadata struct {
	Scope     string
	DryRun    bool
	StartTime utc.Time
	EndTime   utc.Time
	Duration  time.Duration
}

// NewResult creates a result with its start time set.
func NewResult(scope string, dryRun bool) *Result {
	return &Result{
		Metadata: Metadata{
			Scope:     scope,
			DryRun:    dryRun,
			StartTime: utc.Now(),
		},
	}
}

// Finalize records the end time and duration.
func (r *Result) Finalize() {
	r.Metadata.EndTime = utc.Now()
	r.Metadata.Duration = r.Metadata.EndTime.Sub(r.Metadata.StartTime)
}

// Skipped returns the number of members the run failed to fetch or parse.
func (r *Result) Skipped() int {
	return len(r.Failures)
}

// Summary renders a one-line report. A run with partial per-member
// failures still completes; the summary names how many were skipped.
func (r *Result) Summary() string {
	verb := "wrote"
	if r.Metadata.DryRun {
		verb = "would write"
	}
	if r.Skipped() > 0 {
		return fmt.Sprintf("Synced scope %s: %s %d members (%d skipped)",
			r.Metadata.Scope, verb, r.Stats.Merged, r.Skipped())
	}
	return fmt.Sprintf("Synced scope %s: %s %d members",
		r.Metadata.Scope, verb, r.Stats.Merged)
}
