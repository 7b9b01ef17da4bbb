package airports

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuggest(t *testing.T) {
	tests := []struct {
		name          string
		query         string
		expectedCodes []string
	}{
		{name: "by city", query: "delhi", expectedCodes: []string{"DEL"}},
		{name: "by code", query: "bom", expectedCodes: []string{"BOM"}},
		{name: "by name fragment", query: "heathrow", expectedCodes: []string{"LHR"}},
		{name: "case insensitive", query: "SINGAPORE", expectedCodes: []string{"SIN"}},
		{name: "no match", query: "zzzz", expectedCodes: []string{}},
		{name: "empty query", query: "", expectedCodes: []string{}},
		{name: "single char too short", query: "d", expectedCodes: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Suggest(tt.query)
			codes := make([]string, 0, len(result))
			for _, a := range result {
				codes = append(codes, a.Code)
			}
			assert.Equal(t, tt.expectedCodes, codes)
		})
	}
}

func TestSuggestMatchesMultiple(t *testing.T) {
	// "international" appears in many airport names.
	result := Suggest("international")
	require.Greater(t, len(result), 3)
	for _, a := range result {
		assert.NotEmpty(t, a.Code)
		assert.NotEmpty(t, a.City)
	}
}
