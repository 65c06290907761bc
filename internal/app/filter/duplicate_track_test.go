package filter

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/osa030/mixtape/internal/domain/track"
)

func TestDuplicateTrackFilter_Check(t *testing.T) {
	existing := []track.Track{
		{Title: "Blinding Lights", Artist: "The Weeknd", Duration: "3:20"},
		{Title: "Levitating", Artist: "Dua Lipa", Duration: "3:23"},
	}

	tests := []struct {
		name         string
		candidate    track.Track
		wantAccepted bool
	}{
		{
			name:         "exact match",
			candidate:    track.Track{Title: "Levitating", Artist: "Dua Lipa"},
			wantAccepted: false,
		},
		{
			name:         "case and whitespace differ",
			candidate:    track.Track{Title: "  blinding LIGHTS ", Artist: "the weeknd"},
			wantAccepted: false,
		},
		{
			name:         "same title by another artist is a cover",
			candidate:    track.Track{Title: "Levitating", Artist: "Someone Else"},
			wantAccepted: true,
		},
		{
			name:         "new song",
			candidate:    track.Track{Title: "Mood", Artist: "24kGoldn"},
			wantAccepted: true,
		},
	}

	f := NewDuplicateTrackFilter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := f.Check(context.Background(), tt.candidate, existing)
			assert.Equal(t, tt.wantAccepted, result.Accepted)
			if !tt.wantAccepted {
				assert.Equal(t, CodeDuplicateTrack, result.Code)
			}
		})
	}
}

func TestDuplicateTrackFilter_EmptyPlaylist(t *testing.T) {
	f := NewDuplicateTrackFilter()
	result := f.Check(context.Background(), track.Track{Title: "Mood", Artist: "24kGoldn"}, nil)
	assert.True(t, result.Accepted)
	assert.NoError(t, f.ValidateConfig(nil))
	assert.Equal(t, []string{CodeDuplicateTrack}, f.ReturnCodes())
}
