package player

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osa030/mixtape/internal/app/playback"
)

func newTestClock(t *testing.T) *Clock {
	t.Helper()
	c := NewClock(Config{TickInterval: 5 * time.Millisecond, DefaultLength: time.Second})
	t.Cleanup(c.Close)
	return c
}

func waitFor(t *testing.T, c *Clock, typ playback.EventType, timeout time.Duration) playback.Event {
	t.Helper()
	deadline := time.After(timeout)
	for {
		select {
		case ev := <-c.Events():
			if ev.Type == typ {
				return ev
			}
		case <-deadline:
			t.Fatalf("timed out waiting for %s", typ)
			return playback.Event{}
		}
	}
}

func TestClock_LoadReportsMetadata(t *testing.T) {
	tests := []struct {
		name     string
		hint     time.Duration
		expected time.Duration
	}{
		{name: "hint is the length", hint: 200 * time.Second, expected: 200 * time.Second},
		{name: "unknown hint uses default", hint: 0, expected: time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClock(t)
			c.Load("https://example.com/a.mp3", 7, tt.hint)

			ev := waitFor(t, c, playback.EventMetadataLoaded, time.Second)
			assert.Equal(t, uint64(7), ev.Token)
			assert.Equal(t, tt.expected, ev.Duration)
			assert.Equal(t, tt.expected, c.Duration())
		})
	}
}

func TestClock_PlaysToEnd(t *testing.T) {
	c := newTestClock(t)
	require.NoError(t, c.Execute(playback.Command{Type: playback.CommandLoad, URL: "https://example.com/a.mp3", Token: 3, Hint: 50 * time.Millisecond}))
	require.NoError(t, c.Execute(playback.Command{Type: playback.CommandPlay}))

	ev := waitFor(t, c, playback.EventTrackEnded, 2*time.Second)
	assert.Equal(t, uint64(3), ev.Token)
	assert.False(t, c.Playing())
	assert.Equal(t, 50*time.Millisecond, c.Position())
}

func TestClock_PauseFreezesPosition(t *testing.T) {
	c := newTestClock(t)
	c.Load("https://example.com/a.mp3", 1, time.Minute)
	require.NoError(t, c.Play())
	time.Sleep(30 * time.Millisecond)

	c.Pause()
	frozen := c.Position()
	assert.Greater(t, frozen, time.Duration(0))

	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, frozen, c.Position())
	assert.False(t, c.Playing())
}

func TestClock_Seek(t *testing.T) {
	c := newTestClock(t)
	c.Load("https://example.com/a.mp3", 1, time.Minute)

	c.Seek(30 * time.Second)
	assert.Equal(t, 30*time.Second, c.Position())

	c.Seek(2 * time.Minute)
	assert.Equal(t, time.Minute, c.Position())

	c.Seek(-time.Second)
	assert.Equal(t, time.Duration(0), c.Position())
}

func TestClock_PlayWithoutSource(t *testing.T) {
	c := newTestClock(t)
	assert.ErrorIs(t, c.Play(), ErrNoSource)

	c.Load("https://example.com/a.mp3", 1, time.Minute)
	c.Stop()
	assert.ErrorIs(t, c.Play(), ErrNoSource)
	assert.Equal(t, time.Duration(0), c.Duration())
}

func TestClock_ReloadStopsPreviousTicker(t *testing.T) {
	c := newTestClock(t)
	c.Load("https://example.com/a.mp3", 1, 40*time.Millisecond)
	require.NoError(t, c.Play())

	c.Load("https://example.com/b.mp3", 2, time.Minute)
	require.NoError(t, c.Play())

	deadline := time.After(150 * time.Millisecond)
	for {
		select {
		case ev := <-c.Events():
			assert.NotEqual(t, playback.EventTrackEnded, ev.Type, "old source must not end")
		case <-deadline:
			return
		}
	}
}
