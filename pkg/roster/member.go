// Package roster defines the Member entity and the merge semantics used to
// reconcile freshly fetched members with previously persisted ones.
package roster

import "github.com/rosterkit/rostersync/pkg/identity"

// Member is a directory entry keyed by a stable external identifier,
// carrying a parsed two-part identity.
type Member struct {
	ID       string
	Identity identity.Identity
}

// Valid reports whether the member carries all three required values.
// Members failing this check are skipped by store writes rather than
// failing the whole batch.
func (m Member) Valid() bool {
	return m.ID != "" && m.Identity.ShortID != "" && m.Identity.DisplayName != ""
}

// SourceRecord is the raw detail record returned by a member source.
// Only the presence of the profile display name is validated before
// parsing; everything else is opaque.
type SourceRecord struct {
	ID      string        `json:"id"`
	Profile SourceProfile `json:"profile"`
}

// SourceProfile is the profile substructure of a source record.
type SourceProfile struct {
	DisplayName string `json:"display_name"`
}
