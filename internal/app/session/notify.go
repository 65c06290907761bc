package session

import (
	"time"

	mixtapev1 "github.com/osa030/mixtape/internal/api/mixtapev1"
	"github.com/osa030/mixtape/internal/app/playback"
	"github.com/osa030/mixtape/internal/domain/track"
)

func (m *Manager) broadcastState(notificationType string) {
	st := WireState(m.status())
	m.notification.Broadcast(&mixtapev1.Notification{
		Type:  notificationType,
		State: &st,
	})
}

func (m *Manager) broadcastProgress() {
	m.notification.Broadcast(&mixtapev1.Notification{
		Type:     mixtapev1.NotificationTypeProgress,
		Progress: WireProgress(m.controller.Progress(), m.controller.Token()),
	})
}

// pushBanner shows a transient message to every subscriber.
func (m *Manager) pushBanner(message, kind string) {
	if message == "" {
		return
	}
	m.banner = &mixtapev1.Banner{
		Message:   message,
		Kind:      kind,
		ExpiresAt: time.Now().Add(m.config.BannerDuration()),
	}
	m.notification.Broadcast(&mixtapev1.Notification{
		Type:   mixtapev1.NotificationTypeBanner,
		Banner: m.banner,
	})
}

func (m *Manager) activeBanner() *mixtapev1.Banner {
	if m.banner == nil || !time.Now().Before(m.banner.ExpiresAt) {
		return nil
	}
	return m.banner
}

// WireTrack converts a track to its wire form.
func WireTrack(t track.Track) mixtapev1.Track {
	return mixtapev1.Track{
		Title:    t.Title,
		Artist:   t.Artist,
		Album:    t.Album,
		Duration: t.Duration,
		AudioURL: t.AudioURL,
	}
}

// WireTracks converts tracks to their wire form.
func WireTracks(tracks []track.Track) []mixtapev1.Track {
	result := make([]mixtapev1.Track, len(tracks))
	for i, t := range tracks {
		result[i] = WireTrack(t)
	}
	return result
}

// DomainTrack converts a wire track to a domain track.
func DomainTrack(t mixtapev1.Track) track.Track {
	return track.Track{
		Title:    t.Title,
		Artist:   t.Artist,
		Album:    t.Album,
		Duration: t.Duration,
		AudioURL: t.AudioURL,
	}
}

// WireState converts a status to the wire playlist state.
func WireState(st Status) mixtapev1.PlaylistState {
	return mixtapev1.PlaylistState{
		Tracks:       WireTracks(st.Playlist.Tracks),
		CurrentIndex: st.Playlist.CurrentIndex,
		IsPlaying:    st.Playlist.IsPlaying,
		State:        st.State.String(),
		ElapsedMs:    st.Progress.Elapsed.Milliseconds(),
		DurationMs:   st.Progress.Duration.Milliseconds(),
	}
}

// WireProgress converts a progress reading to its wire form.
func WireProgress(p playback.Progress, token uint64) *mixtapev1.Progress {
	return &mixtapev1.Progress{
		Token:      token,
		ElapsedMs:  p.Elapsed.Milliseconds(),
		DurationMs: p.Duration.Milliseconds(),
		Fraction:   p.Fraction(),
	}
}
