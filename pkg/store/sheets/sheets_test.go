package sheets

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColumnLetters(t *testing.T) {
	tests := []struct {
		col  int
		want string
	}{
		{0, "A"},
		{1, "B"},
		{25, "Z"},
		{26, "AA"},
		{27, "AB"},
		{51, "AZ"},
		{52, "BA"},
		{701, "ZZ"},
		{702, "AAA"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, columnLetters(tt.col), "columnLetters(%d)", tt.col)
	}
}

func TestValueRange(t *testing.T) {
	vr := valueRange([][]string{{"memberId", "shortId"}, {"U1", "a"}})
	assert.Equal(t, [][]any{{"memberId", "shortId"}, {"U1", "a"}}, vr.Values)
}

func TestSheetRangeQuotesTitle(t *testing.T) {
	assert.Equal(t, "'team roster'", sheetRange("team roster"))
}
