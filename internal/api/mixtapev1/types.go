// Package mixtapev1 defines the messages and codec of the mixtape RPC API.
package mixtapev1

import "time"

// Track is the wire form of a playlist entry.
type Track struct {
	Title    string `json:"title"`
	Artist   string `json:"artist"`
	Album    string `json:"album"`
	Duration string `json:"duration"`
	AudioURL string `json:"audioUrl"`
}

// PlaybackState values.
const (
	PlaybackStateStopped = "stopped"
	PlaybackStatePlaying = "playing"
	PlaybackStatePaused  = "paused"
)

// PlaylistState is a full snapshot of the playlist and transport.
type PlaylistState struct {
	Tracks       []Track `json:"tracks"`
	CurrentIndex int     `json:"currentIndex"`
	IsPlaying    bool    `json:"isPlaying"`
	State        string  `json:"state"`
	ElapsedMs    int64   `json:"elapsedMs"`
	DurationMs   int64   `json:"durationMs"`
}

// Progress is the position of the loaded track.
type Progress struct {
	Token      uint64  `json:"token"`
	ElapsedMs  int64   `json:"elapsedMs"`
	DurationMs int64   `json:"durationMs"`
	Fraction   float64 `json:"fraction"`
}

// BannerKind values.
const (
	BannerKindSuccess = "success"
	BannerKindInfo    = "info"
	BannerKindError   = "error"
)

// Banner is a transient user-facing message.
type Banner struct {
	Message   string    `json:"message"`
	Kind      string    `json:"kind"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// NotificationType values.
const (
	NotificationTypeInitialState    = "initial_state"
	NotificationTypePlaylistChanged = "playlist_changed"
	NotificationTypePlaybackChanged = "playback_changed"
	NotificationTypeProgress        = "progress"
	NotificationTypeBanner          = "banner"
)

// Notification is pushed to subscribers.
type Notification struct {
	Type       string         `json:"type"`
	SequenceNo uint64         `json:"sequenceNo"`
	State      *PlaylistState `json:"state,omitempty"`
	Progress   *Progress      `json:"progress,omitempty"`
	Banner     *Banner        `json:"banner,omitempty"`
}

// PlaylistService messages.

type SearchRequest struct {
	Query string `json:"query"`
}

type SearchResponse struct {
	Tracks  []Track `json:"tracks"`
	Message string  `json:"message,omitempty"`
}

type AddTrackRequest struct {
	Track Track `json:"track"`
}

type AddTrackResponse struct {
	Index   int    `json:"index"`
	Message string `json:"message"`
}

type AddFileRequest struct {
	Path string `json:"path"`
}

type AddFileResponse struct {
	Track   Track  `json:"track"`
	Index   int    `json:"index"`
	Message string `json:"message"`
}

type RemoveTrackRequest struct {
	Index int `json:"index"`
}

type RemoveTrackResponse struct {
	Track   Track  `json:"track"`
	Message string `json:"message"`
}

type UpdateTrackRequest struct {
	Index int   `json:"index"`
	Track Track `json:"track"`
}

type UpdateTrackResponse struct {
	Track   Track  `json:"track"`
	Message string `json:"message"`
}

type ListRequest struct{}

type ListResponse struct {
	State PlaylistState `json:"state"`
}

type ShareRequest struct {
	BaseURL string `json:"baseUrl,omitempty"`
}

type ShareResponse struct {
	Token string `json:"token"`
	URL   string `json:"url"`
}

type ImportRequest struct {
	Input string `json:"input"` // Share URL or bare token
}

type ImportResponse struct {
	Count   int    `json:"count"`
	Message string `json:"message"`
}

// PlaybackService messages.

type TogglePlayRequest struct{}

type SelectRequest struct {
	Index int `json:"index"`
}

type NextRequest struct{}

type PreviousRequest struct{}

type SeekRequest struct {
	Position float64 `json:"position"` // Normalized to [0,1]
}

type PlaybackResponse struct {
	State   PlaylistState `json:"state"`
	Message string        `json:"message,omitempty"`
}

type StatusRequest struct{}

type SubscribeRequest struct{}
