package playback

import "time"

// EventType represents an input to the controller.
type EventType int

const (
	EventTogglePlay     EventType = iota // User toggled play/pause
	EventSelectTrack                     // User picked a track by index
	EventNext                            // User skipped forward
	EventPrevious                        // User skipped backward
	EventTrackEnded                      // Player reached the end of the media
	EventCurrentRemoved                  // The current track was deleted from the playlist
	EventSeek                            // User sought to a normalized position
	EventTimeUpdate                      // Player reported its position
	EventMetadataLoaded                  // Player learned the media duration
	EventPlayerFailed                    // Player refused a load or play command
)

// String returns the string representation of the event type.
func (e EventType) String() string {
	switch e {
	case EventTogglePlay:
		return "toggle_play"
	case EventSelectTrack:
		return "select_track"
	case EventNext:
		return "next"
	case EventPrevious:
		return "previous"
	case EventTrackEnded:
		return "track_ended"
	case EventCurrentRemoved:
		return "current_removed"
	case EventSeek:
		return "seek"
	case EventTimeUpdate:
		return "time_update"
	case EventMetadataLoaded:
		return "metadata_loaded"
	case EventPlayerFailed:
		return "player_failed"
	default:
		return "unknown"
	}
}

// Event is a user action or a player report.
type Event struct {
	Type     EventType
	Index    int           // EventSelectTrack
	Position float64       // EventSeek, normalized to [0,1]
	Token    uint64        // Player events: load token the report belongs to
	Elapsed  time.Duration // EventTimeUpdate
	Duration time.Duration // EventTimeUpdate, EventMetadataLoaded
}

// IsPlayerEvent reports whether the event originates from the player.
func (e Event) IsPlayerEvent() bool {
	switch e.Type {
	case EventTrackEnded, EventTimeUpdate, EventMetadataLoaded:
		return true
	default:
		return false
	}
}
