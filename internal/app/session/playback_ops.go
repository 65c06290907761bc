package session

import (
	"context"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"

	mixtapev1 "github.com/osa030/mixtape/internal/api/mixtapev1"
	"github.com/osa030/mixtape/internal/app/notification"
	"github.com/osa030/mixtape/internal/app/playback"
	"github.com/osa030/mixtape/internal/domain/playlist"
	"github.com/osa030/mixtape/internal/infra/metrics"
)

// Status is a consistent view of the playlist and the transport.
type Status struct {
	Playlist playlist.Snapshot
	State    playback.State
	Progress playback.Progress
	Token    uint64
	Message  string // "Now playing" text when the operation loaded a track
}

// TogglePlay plays, pauses or resumes.
func (m *Manager) TogglePlay(ctx context.Context) (Status, error) {
	return m.control(ctx, playback.Event{Type: playback.EventTogglePlay})
}

// Select plays the track at index.
func (m *Manager) Select(ctx context.Context, index int) (Status, error) {
	return m.control(ctx, playback.Event{Type: playback.EventSelectTrack, Index: index})
}

// Next plays the following track, wrapping to the first.
func (m *Manager) Next(ctx context.Context) (Status, error) {
	return m.control(ctx, playback.Event{Type: playback.EventNext})
}

// Previous plays the preceding track, wrapping to the last.
func (m *Manager) Previous(ctx context.Context) (Status, error) {
	return m.control(ctx, playback.Event{Type: playback.EventPrevious})
}

// Seek moves to a normalized position in [0,1] of the loaded track.
func (m *Manager) Seek(ctx context.Context, position float64) (Status, error) {
	return m.control(ctx, playback.Event{Type: playback.EventSeek, Position: position})
}

// Status returns the current playlist and transport state.
func (m *Manager) Status(ctx context.Context) (Status, error) {
	var st Status
	err := m.do(ctx, func() error {
		st = m.status()
		return nil
	})
	return st, err
}

// Subscribe registers a notification stream and sends it the initial state
// before any later broadcast.
func (m *Manager) Subscribe(ctx context.Context, stream notification.Stream) (string, error) {
	var id string
	err := m.do(ctx, func() error {
		id = m.notification.Subscribe(stream)
		metrics.NotificationSubscribers.Set(float64(m.notification.SubscriberCount()))

		st := WireState(m.status())
		initial := &mixtapev1.Notification{
			Type:   mixtapev1.NotificationTypeInitialState,
			State:  &st,
			Banner: m.activeBanner(),
		}
		if err := m.notification.Send(id, initial); err != nil {
			m.notification.Unsubscribe(id)
			metrics.NotificationSubscribers.Set(float64(m.notification.SubscriberCount()))
			return err
		}
		return nil
	})
	return id, err
}

func (m *Manager) control(ctx context.Context, ev playback.Event) (Status, error) {
	var st Status
	err := m.do(ctx, func() error {
		message, err := m.dispatch(ev)
		if err != nil {
			return m.reject(ev.Type.String(), err)
		}
		st = m.status()
		st.Message = message
		return nil
	})
	return st, err
}

// dispatch feeds an event to the controller and executes the resulting
// commands. It returns the "Now playing" message when a track was loaded.
func (m *Manager) dispatch(ev playback.Event) (string, error) {
	cmds, err := m.controller.Dispatch(ev)
	if err != nil {
		return "", err
	}
	metrics.PlaybackEventsTotal.WithLabelValues(ev.Type.String()).Inc()

	loaded, err := m.execute(cmds)
	if err != nil {
		m.rollback(ev)
		return "", err
	}

	var message string
	if loaded {
		if t, ok := m.store.Snapshot().Current(); ok {
			message = messagef(m.config.Messages.NowPlaying, t.Title)
			zlog.Info().Msgf("session: now playing: index=%d track=%s", m.store.CurrentIndex(), t)
		}
	}
	m.playbackChanged()
	if message != "" {
		m.pushBanner(message, mixtapev1.BannerKindInfo)
	}
	return message, nil
}

// execute runs player commands in order and reports whether a track was
// loaded. A failed load or play aborts the rest and is returned.
func (m *Manager) execute(cmds []playback.Command) (bool, error) {
	loaded := false
	for _, cmd := range cmds {
		if err := m.player.Execute(cmd); err != nil {
			zlog.Warn().Err(err).Msgf("session: player command failed: %s", cmd.Type)
			if cmd.Type == playback.CommandLoad || cmd.Type == playback.CommandPlay {
				return loaded, errors.Mark(errors.Wrapf(err, "player %s", cmd.Type), ErrPlaybackFailed)
			}
			continue
		}
		if cmd.Type == playback.CommandLoad {
			loaded = true
		}
	}
	return loaded, nil
}

// rollback stops the transport after the player refused to start, so the
// playing flag never outlives the player.
func (m *Manager) rollback(cause playback.Event) {
	cmds, err := m.controller.Dispatch(playback.Event{Type: playback.EventPlayerFailed})
	if err != nil {
		zlog.Error().Err(err).Msg("session: failed to stop after player failure")
		return
	}
	for _, cmd := range cmds {
		if err := m.player.Execute(cmd); err != nil {
			zlog.Warn().Err(err).Msgf("session: player command failed: %s", cmd.Type)
		}
	}
	zlog.Warn().Msgf("session: playback stopped after %s failed", cause.Type)
	m.playbackChanged()
}

func (m *Manager) handlePlayerEvent(ev playback.Event) {
	if ev.Token != m.controller.Token() {
		return
	}

	switch ev.Type {
	case playback.EventTrackEnded:
		zlog.Debug().Msgf("session: track ended: token=%d", ev.Token)
		if _, err := m.dispatch(ev); err != nil {
			zlog.Warn().Err(err).Msg("session: failed to advance after track ended")
		}
	case playback.EventTimeUpdate, playback.EventMetadataLoaded:
		if _, err := m.controller.Dispatch(ev); err != nil {
			zlog.Warn().Err(err).Msgf("session: failed to apply %s", ev.Type)
			return
		}
		m.broadcastProgress()
	}
}

func (m *Manager) playbackChanged() {
	metrics.SetPlaybackState(m.controller.State().String())
	m.broadcastState(mixtapev1.NotificationTypePlaybackChanged)
}

func (m *Manager) status() Status {
	return Status{
		Playlist: m.store.Snapshot(),
		State:    m.controller.State(),
		Progress: m.controller.Progress(),
		Token:    m.controller.Token(),
	}
}
