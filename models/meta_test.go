package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePrice(t *testing.T) {
	testCases := []struct {
		name      string
		raw       string
		wantPrice string
		wantSet   bool
	}{
		{
			name:      "plain decimal",
			raw:       "12.50",
			wantPrice: "12.5",
			wantSet:   true,
		},
		{
			name:      "surrounding whitespace trimmed",
			raw:       "  7 ",
			wantPrice: "7",
			wantSet:   true,
		},
		{
			name:    "empty value counts as unset",
			raw:     "",
			wantSet: false,
		},
		{
			name:    "non-numeric value counts as unset",
			raw:     "abc",
			wantSet: false,
		},
		{
			name:    "zero counts as unset",
			raw:     "0.00",
			wantSet: false,
		},
		{
			name:      "negative value is kept",
			raw:       "-3.00",
			wantPrice: "-3",
			wantSet:   true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			price, ok := parsePrice(tc.raw)
			assert.Equal(t, tc.wantSet, ok)
			if tc.wantSet {
				assert.Equal(t, tc.wantPrice, price.String())
			} else {
				assert.True(t, price.IsZero())
			}
		})
	}
}
