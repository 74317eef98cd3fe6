package identity

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rserrors "github.com/rosterkit/rostersync/pkg/errors"
)

func TestParseValid(t *testing.T) {
	tests := []struct {
		raw  string
		want Identity
	}{
		{"a Alice", Identity{ShortID: "a", DisplayName: "Alice"}},
		{"bob99 Bob", Identity{ShortID: "bob99", DisplayName: "Bob"}},
		{"x y", Identity{ShortID: "x", DisplayName: "y"}},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := Parse(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty string", ""},
		{"single token", "alice"},
		{"three tokens", "a b c"},
		{"leading space", " Alice"},
		{"trailing space", "alice "},
		{"double space yields empty token", "a  b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.raw)
			require.Error(t, err)

			var parseErr *rserrors.ParseError
			assert.True(t, errors.As(err, &parseErr), "want *errors.ParseError, got %T", err)
		})
	}
}

func TestParseReturnsTokensVerbatim(t *testing.T) {
	got, err := Parse("U2-short Söme-Nâme")
	require.NoError(t, err)
	assert.Equal(t, "U2-short", got.ShortID)
	assert.Equal(t, "Söme-Nâme", got.DisplayName)
}
