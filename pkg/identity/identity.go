// Package identity parses raw display-name strings into typed identity
// fragments. A well-formed raw name is exactly two tokens separated by a
// single space: a short ID followed by a display name.
package identity

import (
	"fmt"
	"strings"

	"github.com/rosterkit/rostersync/pkg/errors"
)

// Identity is the parsed two-part identity of a member.
type Identity struct {
	ShortID     string
	DisplayName string
}

// Parse splits raw on single-space boundaries and returns the two tokens.
// It fails with a ParseError when the split does not yield exactly two
// non-empty tokens. Consecutive spaces produce an empty token and are
// rejected rather than collapsed.
func Parse(raw string) (Identity, error) {
	tokens := strings.Split(raw, " ")
	if len(tokens) != 2 {
		return Identity{}, errors.NewParseError(
			"display name", raw,
			fmt.Sprintf("want 2 space-separated tokens, got %d", len(tokens)),
			nil,
		)
	}
	if tokens[0] == "" || tokens[1] == "" {
		return Identity{}, errors.NewParseError(
			"display name", raw,
			"tokens must be non-empty",
			nil,
		)
	}
	return Identity{ShortID: tokens[0], DisplayName: tokens[1]}, nil
}
