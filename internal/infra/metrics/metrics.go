// Package metrics defines the Prometheus collectors exported by mixtaped.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RPC metrics
var (
	RPCRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mixtape_rpc_requests_total",
			Help: "Total number of RPC requests",
		},
		[]string{"procedure", "code"},
	)

	RPCRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mixtape_rpc_request_duration_seconds",
			Help:    "RPC request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"procedure"},
	)
)

// Playlist metrics
var (
	PlaylistTracks = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "mixtape_playlist_tracks",
			Help: "Number of tracks in the playlist",
		},
	)

	PlaylistOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mixtape_playlist_operations_total",
			Help: "Total number of playlist operations",
		},
		[]string{"operation", "result"}, // result: "ok" or a rejection code
	)
)

// Playback metrics
var (
	PlaybackState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "mixtape_playback_state",
			Help: "Current playback state (1 for the active state)",
		},
		[]string{"state"},
	)

	PlaybackEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mixtape_playback_events_total",
			Help: "Total number of playback events dispatched",
		},
		[]string{"event"},
	)
)

// Search metrics
var (
	SearchRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mixtape_search_requests_total",
			Help: "Total number of search requests",
		},
		[]string{"result"}, // "ok", "empty", "too_short", "superseded", "error"
	)

	SearchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "mixtape_search_duration_seconds",
			Help:    "Search duration in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		},
	)
)

// Notification metrics
var (
	NotificationSubscribers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "mixtape_notification_subscribers",
			Help: "Number of connected notification subscribers",
		},
	)
)

var playbackStates = []string{"stopped", "playing", "paused"}

// SetPlaybackState marks state as the active playback state.
func SetPlaybackState(state string) {
	for _, s := range playbackStates {
		v := 0.0
		if s == state {
			v = 1
		}
		PlaybackState.WithLabelValues(s).Set(v)
	}
}

// Handler returns the HTTP handler exposing the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
