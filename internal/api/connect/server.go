package connect

import (
	"net/http"

	"connectrpc.com/connect"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/mixtape/internal/api/mixtapev1/mixtapev1connect"
	"github.com/osa030/mixtape/internal/app/session"
	"github.com/osa030/mixtape/internal/infra/config"
	"github.com/osa030/mixtape/internal/infra/metrics"
)

// NewMux mounts both services and the metrics endpoint.
func NewMux(sessionMgr *session.Manager, cfg *config.Config) *http.ServeMux {
	mux := http.NewServeMux()
	interceptors := connect.WithInterceptors(NewMetricsInterceptor())

	playlistPath, playlistHandler := mixtapev1connect.NewPlaylistServiceHandler(
		NewPlaylistService(sessionMgr, cfg),
		interceptors,
	)
	mux.Handle(playlistPath, playlistHandler)
	zlog.Debug().Msgf("server: registered %s", playlistPath)

	playbackPath, playbackHandler := mixtapev1connect.NewPlaybackServiceHandler(
		NewPlaybackService(sessionMgr, cfg),
		interceptors,
	)
	mux.Handle(playbackPath, playbackHandler)
	zlog.Debug().Msgf("server: registered %s", playbackPath)

	if cfg.Server.MetricsPath != "" {
		mux.Handle(cfg.Server.MetricsPath, metrics.Handler())
		zlog.Debug().Msgf("server: registered %s", cfg.Server.MetricsPath)
	}
	return mux
}
