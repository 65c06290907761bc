package search

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"

	"github.com/osa030/mixtape/internal/domain/track"
)

func TestCheckQuery(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		min      int
		expected string
		wantErr  bool
	}{
		{name: "two characters", query: "ab", min: 2, expected: "ab"},
		{name: "trimmed", query: "  mood  ", min: 2, expected: "mood"},
		{name: "single character", query: "a", min: 2, expected: "a", wantErr: true},
		{name: "whitespace only", query: "   ", min: 2, expected: "", wantErr: true},
		{name: "multibyte counted by rune", query: "日本", min: 2, expected: "日本"},
		{name: "custom minimum", query: "abc", min: 4, expected: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CheckQuery(tt.query, tt.min)
			assert.Equal(t, tt.expected, got)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrQueryTooShort))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMatches(t *testing.T) {
	tr := track.Track{Title: "Blinding Lights", Artist: "The Weeknd", Album: "After Hours"}

	tests := []struct {
		query    string
		expected bool
	}{
		{query: "blinding", expected: true},
		{query: "WEEKND", expected: true},
		{query: "hours", expected: true},
		{query: "ng li", expected: true},
		{query: "levitating", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.expected, Matches(tr, tt.query))
		})
	}
}
