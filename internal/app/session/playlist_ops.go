package session

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"

	mixtapev1 "github.com/osa030/mixtape/internal/api/mixtapev1"
	"github.com/osa030/mixtape/internal/app/filter"
	"github.com/osa030/mixtape/internal/app/persist"
	"github.com/osa030/mixtape/internal/app/playback"
	"github.com/osa030/mixtape/internal/app/search"
	"github.com/osa030/mixtape/internal/domain/playlist"
	"github.com/osa030/mixtape/internal/domain/track"
	"github.com/osa030/mixtape/internal/infra/audiotag"
	"github.com/osa030/mixtape/internal/infra/metrics"
)

// SearchResult is the outcome of a search.
type SearchResult struct {
	Query   string // Trimmed query
	Tracks  []track.Track
	Message string // Set when nothing matched
}

// AddResult is the outcome of an add.
type AddResult struct {
	Track   track.Track // As stored
	Index   int
	Message string
}

// RemoveResult is the outcome of a remove.
type RemoveResult struct {
	Track   track.Track
	Message string
}

// UpdateResult is the outcome of an edit.
type UpdateResult struct {
	Track   track.Track
	Message string
}

// ShareResult holds a share token and the link carrying it.
type ShareResult struct {
	Token string
	URL   string
}

// ImportResult is the outcome of loading a shared playlist.
type ImportResult struct {
	Count   int
	Message string
}

// Search queries the providers outside the event loop. A newer search makes
// the results of an older one fail with search.ErrSuperseded.
func (m *Manager) Search(ctx context.Context, query string) (SearchResult, error) {
	q, err := search.CheckQuery(query, m.config.Search.MinQueryLength)
	if err != nil {
		metrics.SearchRequestsTotal.WithLabelValues("too_short").Inc()
		return SearchResult{Query: q, Message: m.config.Messages.QueryTooShort}, err
	}

	ctx, cancel := context.WithTimeout(ctx, time.Duration(m.config.Search.TimeoutMs)*time.Millisecond)
	defer cancel()

	start := time.Now()
	tracks, err := m.tracker.Run(ctx, m.searcher, q)
	metrics.SearchDuration.Observe(time.Since(start).Seconds())

	switch {
	case errors.Is(err, search.ErrSuperseded):
		metrics.SearchRequestsTotal.WithLabelValues("superseded").Inc()
		zlog.Debug().Msgf("session: search superseded: query=%q", q)
		return SearchResult{Query: q}, err
	case err != nil:
		metrics.SearchRequestsTotal.WithLabelValues("error").Inc()
		return SearchResult{Query: q}, errors.Wrapf(err, "search %q", q)
	case len(tracks) == 0:
		metrics.SearchRequestsTotal.WithLabelValues("empty").Inc()
		return SearchResult{Query: q, Tracks: tracks, Message: messagef(m.config.Messages.NoResults, q)}, nil
	}

	metrics.SearchRequestsTotal.WithLabelValues("ok").Inc()
	zlog.Debug().Msgf("session: search: query=%q results=%d", q, len(tracks))
	return SearchResult{Query: q, Tracks: tracks}, nil
}

// Add validates a track, runs the add filters and appends it.
func (m *Manager) Add(ctx context.Context, t track.Track) (AddResult, error) {
	var res AddResult
	err := m.do(ctx, func() error {
		var err error
		res, err = m.add(ctx, t)
		return err
	})
	return res, err
}

// AddFile reads a local audio file's tags and adds it as a file:// track.
func (m *Manager) AddFile(ctx context.Context, path string) (AddResult, error) {
	if !audiotag.IsAudioFile(path) {
		return AddResult{}, errors.Mark(errors.Newf("%s is not a supported audio file", path), ErrUnreadableFile)
	}
	t, err := audiotag.Read(path)
	if err != nil {
		return AddResult{}, errors.Mark(err, ErrUnreadableFile)
	}
	return m.Add(ctx, t)
}

// Remove deletes the track at index. Removing the current track stops playback.
func (m *Manager) Remove(ctx context.Context, index int) (RemoveResult, error) {
	var res RemoveResult
	err := m.do(ctx, func() error {
		wasCurrent := m.store.CurrentIndex() == index
		removed, err := m.store.RemoveAt(index)
		if err != nil {
			return m.reject("remove", err)
		}
		if wasCurrent {
			cmds, err := m.controller.Dispatch(playback.Event{Type: playback.EventCurrentRemoved})
			if err != nil {
				zlog.Warn().Err(err).Msg("session: failed to stop removed track")
			}
			m.execute(cmds)
			m.playbackChanged()
		}
		res = RemoveResult{Track: removed, Message: messagef(m.config.Messages.Removed, removed.Title)}
		m.playlistChanged("remove", res.Message)
		return nil
	})
	return res, err
}

// Update replaces the fields of the track at index.
func (m *Manager) Update(ctx context.Context, index int, t track.Track) (UpdateResult, error) {
	var res UpdateResult
	err := m.do(ctx, func() error {
		if err := m.store.UpdateAt(index, t); err != nil {
			return m.reject("update", err)
		}
		stored, err := m.store.Track(index)
		if err != nil {
			return err
		}
		res = UpdateResult{Track: stored, Message: messagef(m.config.Messages.Updated, stored.Title)}
		m.playlistChanged("update", res.Message)
		return nil
	})
	return res, err
}

// Share encodes the playlist into a token and a link under baseURL.
// An empty baseURL uses the configured share base URL.
func (m *Manager) Share(ctx context.Context, baseURL string) (ShareResult, error) {
	if baseURL == "" {
		baseURL = m.config.Server.ShareBaseURL
	}
	var tracks []track.Track
	if err := m.do(ctx, func() error {
		tracks = m.store.Tracks()
		return nil
	}); err != nil {
		return ShareResult{}, err
	}

	token, err := persist.EncodeShareToken(tracks)
	if err != nil {
		return ShareResult{}, err
	}
	link, err := persist.ShareURL(baseURL, tracks)
	if err != nil {
		return ShareResult{}, err
	}
	return ShareResult{Token: token, URL: link}, nil
}

// Import loads a shared playlist from a share link or bare token. It is only
// applied to an empty playlist.
func (m *Manager) Import(ctx context.Context, input string) (ImportResult, error) {
	var res ImportResult
	err := m.do(ctx, func() error {
		tracks, err := persist.DecodeShareToken(persist.TokenFromInput(input))
		if err != nil {
			return m.reject("import", err)
		}
		if m.store.Len() > 0 {
			return m.reject("import", playlist.ErrNotEmpty)
		}
		for i, t := range tracks {
			if err := t.Normalize().Validate(); err != nil {
				err = errors.Wrapf(err, "shared track %d", i+1)
				return m.reject("import", errors.Mark(err, persist.ErrDecode))
			}
		}
		if len(tracks) == 0 {
			return nil
		}
		n, err := m.store.ReplaceIfEmpty(tracks)
		if err != nil {
			return m.reject("import", err)
		}
		res = ImportResult{Count: n, Message: m.config.Messages.ShareLoaded}
		m.playlistChanged("import", res.Message)
		return nil
	})
	return res, err
}

func (m *Manager) add(ctx context.Context, t track.Track) (AddResult, error) {
	t = t.Normalize()
	if err := t.Validate(); err != nil {
		return AddResult{}, m.reject("add", err)
	}

	if result := m.filterChain.Execute(ctx, t, m.store.Tracks()); !result.Accepted {
		var err error = &RejectedError{Code: result.Code}
		if result.Code == filter.CodeDuplicateTrack {
			err = errors.Wrapf(playlist.ErrDuplicate, "%s", t)
		}
		return AddResult{}, m.reject("add", err)
	}

	if err := m.store.Add(t); err != nil {
		return AddResult{}, m.reject("add", err)
	}

	res := AddResult{
		Track:   t,
		Index:   m.store.Len() - 1,
		Message: messagef(m.config.Messages.Added, t.Title),
	}
	zlog.Info().Msgf("session: added track: index=%d track=%s", res.Index, t)
	m.playlistChanged("add", res.Message)
	return res, nil
}

// reject records a failed operation, shows its message and returns err.
func (m *Manager) reject(op string, err error) error {
	code := ErrorCode(err)
	metrics.PlaylistOperationsTotal.WithLabelValues(op, code).Inc()
	zlog.Debug().Msgf("session: %s rejected: code=%s error=%v", op, code, err)
	m.pushBanner(m.Describe(err), mixtapev1.BannerKindError)
	return err
}

// playlistChanged records a successful mutation and notifies subscribers.
func (m *Manager) playlistChanged(op, message string) {
	metrics.PlaylistOperationsTotal.WithLabelValues(op, "ok").Inc()
	metrics.PlaylistTracks.Set(float64(m.store.Len()))
	m.broadcastState(mixtapev1.NotificationTypePlaylistChanged)
	if message != "" {
		m.pushBanner(message, mixtapev1.BannerKindSuccess)
	}
}
