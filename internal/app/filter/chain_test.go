package filter

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osa030/mixtape/internal/domain/track"
)

type stubSettings map[string]map[string]any

func (s stubSettings) IsFilterEnabled(name string) bool {
	_, ok := s[name]
	return ok
}

func (s stubSettings) GetFilterSettings(name string) map[string]any {
	return s[name]
}

type rejectAll struct{ code string }

func (r rejectAll) Name() string                        { return "reject_all" }
func (r rejectAll) Description() string                 { return "" }
func (r rejectAll) ReturnCodes() []string               { return []string{r.code} }
func (r rejectAll) ValidateConfig(map[string]any) error { return nil }
func (r rejectAll) Check(context.Context, track.Track, []track.Track) Result {
	return Reject(r.code)
}

func TestChain_Execute_StopsAtFirstRejection(t *testing.T) {
	c := NewChain()
	c.Add(NewDuplicateTrackFilter())
	c.Add(rejectAll{code: "second"})

	existing := []track.Track{{Title: "Mood", Artist: "24kGoldn"}}

	result := c.Execute(context.Background(), track.Track{Title: "mood", Artist: "24KGOLDN"}, existing)
	assert.Equal(t, CodeDuplicateTrack, result.Code)

	result = c.Execute(context.Background(), track.Track{Title: "Other", Artist: "Band"}, existing)
	assert.Equal(t, "second", result.Code)
}

func TestChain_Execute_Empty(t *testing.T) {
	assert.True(t, NewChain().Execute(context.Background(), track.Track{}, nil).Accepted)
}

func TestNewChainFromConfig(t *testing.T) {
	t.Run("duplicate filter only by default", func(t *testing.T) {
		c, err := NewChainFromConfig(stubSettings{})
		require.NoError(t, err)
		require.Len(t, c.Filters(), 1)
		assert.Equal(t, "duplicate_track_filter", c.Filters()[0].Name())
	})

	t.Run("enabled duration limit", func(t *testing.T) {
		c, err := NewChainFromConfig(stubSettings{
			"duration_limit_filter": {"max_seconds": 240},
		})
		require.NoError(t, err)
		require.Len(t, c.Filters(), 2)

		result := c.Execute(context.Background(), track.Track{Title: "Long", Artist: "Band", Duration: "4:01"}, nil)
		assert.Equal(t, CodeDurationLimitExceeded, result.Code)
	})

	t.Run("invalid settings", func(t *testing.T) {
		_, err := NewChainFromConfig(stubSettings{
			"duration_limit_filter": {"min_seconds": 500, "max_seconds": 100},
		})
		assert.Error(t, err)
	})
}
