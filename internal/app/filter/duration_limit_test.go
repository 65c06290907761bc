package filter

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osa030/mixtape/internal/domain/track"
)

func TestDurationLimitFilter_Check(t *testing.T) {
	tests := []struct {
		name         string
		minSeconds   int
		maxSeconds   int
		duration     string
		shouldReject bool
	}{
		{name: "Within limits", minSeconds: 120, maxSeconds: 300, duration: "3:00"},
		{name: "Too short", minSeconds: 180, duration: "2:00", shouldReject: true},
		{name: "Too long", minSeconds: 60, maxSeconds: 300, duration: "6:00", shouldReject: true},
		{name: "Exact min", minSeconds: 180, duration: "3:00"},
		{name: "Exact max", maxSeconds: 300, duration: "5:00"},
		{name: "Unknown duration accepted", minSeconds: 60, maxSeconds: 300, duration: "0:00"},
		{name: "Unparsable duration accepted", maxSeconds: 60, duration: "long"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewDurationLimitFilter()
			f.config = &DurationLimitConfig{
				MinSeconds: tt.minSeconds,
				MaxSeconds: tt.maxSeconds,
			}

			result := f.Check(context.Background(), track.Track{Title: "Song", Duration: tt.duration}, nil)
			if tt.shouldReject {
				assert.False(t, result.Accepted)
				assert.Equal(t, CodeDurationLimitExceeded, result.Code)
			} else {
				assert.True(t, result.Accepted)
			}
		})
	}
}

func TestDurationLimitFilter_NoConfigAcceptsAll(t *testing.T) {
	f := NewDurationLimitFilter()
	result := f.Check(context.Background(), track.Track{Duration: "59:59"}, nil)
	assert.True(t, result.Accepted)
}

func TestDurationLimitFilter_ValidateConfig(t *testing.T) {
	tests := []struct {
		name     string
		settings map[string]any
		wantErr  bool
		wantMin  int
		wantMax  int
	}{
		{name: "empty settings use defaults", settings: nil},
		{name: "both limits", settings: map[string]any{"min_seconds": 60, "max_seconds": 420}, wantMin: 60, wantMax: 420},
		{name: "string values are decoded", settings: map[string]any{"max_seconds": "300"}, wantMax: 300},
		{name: "negative min", settings: map[string]any{"min_seconds": -1}, wantErr: true},
		{name: "min above max", settings: map[string]any{"min_seconds": 400, "max_seconds": 300}, wantErr: true},
		{name: "wrong type", settings: map[string]any{"max_seconds": []int{1}}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewDurationLimitFilter()
			err := f.ValidateConfig(tt.settings)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantMin, f.config.MinSeconds)
			assert.Equal(t, tt.wantMax, f.config.MaxSeconds)
		})
	}
}
