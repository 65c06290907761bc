package filter

import (
	"context"

	"github.com/osa030/mixtape/internal/domain/track"
)

// CodeDuplicateTrack is returned for a track already in the playlist.
const CodeDuplicateTrack = "duplicate_track"

// DuplicateTrackFilter rejects a track whose title and artist match an
// existing entry, ignoring case and surrounding whitespace.
type DuplicateTrackFilter struct{}

// NewDuplicateTrackFilter creates a new duplicate track filter.
func NewDuplicateTrackFilter() *DuplicateTrackFilter {
	return &DuplicateTrackFilter{}
}

// Name returns the filter name.
func (f *DuplicateTrackFilter) Name() string {
	return "duplicate_track_filter"
}

// Description returns the filter description.
func (f *DuplicateTrackFilter) Description() string {
	return "Rejects songs already in the playlist (same title and artist)"
}

// ReturnCodes returns possible return codes.
func (f *DuplicateTrackFilter) ReturnCodes() []string {
	return []string{CodeDuplicateTrack}
}

// ValidateConfig validates the filter configuration.
func (f *DuplicateTrackFilter) ValidateConfig(map[string]any) error {
	// No configuration needed
	return nil
}

// Check checks if the candidate is a duplicate.
func (f *DuplicateTrackFilter) Check(_ context.Context, candidate track.Track, existing []track.Track) Result {
	candidate = candidate.Normalize()
	for _, t := range existing {
		if t.SameSong(candidate) {
			return Reject(CodeDuplicateTrack)
		}
	}
	return Accept()
}
