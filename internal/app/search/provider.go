// Package search provides track search over the mock catalog and local libraries.
package search

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/cockroachdb/errors"

	"github.com/osa030/mixtape/internal/domain/track"
)

// Errors
var (
	ErrQueryTooShort = errors.New("query too short")
	ErrSuperseded    = errors.New("search superseded by a newer query")
)

// DefaultMinQueryLength is the shortest query accepted.
const DefaultMinQueryLength = 2

// Provider is the interface for search backends.
type Provider interface {
	// Search returns tracks whose title, artist or album contain the query,
	// ignoring case.
	Search(ctx context.Context, query string) ([]track.Track, error)

	// Name returns the provider type (used in config).
	Name() string
}

// CheckQuery trims the query and rejects it when shorter than min runes.
func CheckQuery(query string, min int) (string, error) {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < min {
		return query, errors.Wrapf(ErrQueryTooShort, "minimum %d characters", min)
	}
	return query, nil
}

// Matches reports whether the track's title, artist or album contain the query.
func Matches(t track.Track, query string) bool {
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(t.Title), q) ||
		strings.Contains(strings.ToLower(t.Artist), q) ||
		strings.Contains(strings.ToLower(t.Album), q)
}

func filter(tracks []track.Track, query string) []track.Track {
	result := make([]track.Track, 0)
	for _, t := range tracks {
		if Matches(t, query) {
			result = append(result, t)
		}
	}
	return result
}
