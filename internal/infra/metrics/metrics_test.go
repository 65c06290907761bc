package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetPlaybackState(t *testing.T) {
	tests := []struct {
		state string
	}{
		{state: "playing"},
		{state: "paused"},
		{state: "stopped"},
	}

	for _, tt := range tests {
		t.Run(tt.state, func(t *testing.T) {
			SetPlaybackState(tt.state)
			for _, s := range playbackStates {
				expected := 0.0
				if s == tt.state {
					expected = 1
				}
				assert.Equal(t, expected, testutil.ToFloat64(PlaybackState.WithLabelValues(s)), s)
			}
		})
	}
}

func TestHandler_ExposesCollectors(t *testing.T) {
	PlaylistTracks.Set(3)
	PlaylistOperationsTotal.WithLabelValues("add", "ok").Inc()

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "mixtape_playlist_tracks 3")
	assert.Contains(t, string(body), `mixtape_playlist_operations_total{operation="add",result="ok"}`)
}
