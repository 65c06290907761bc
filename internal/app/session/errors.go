package session

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/osa030/mixtape/internal/app/persist"
	"github.com/osa030/mixtape/internal/app/playback"
	"github.com/osa030/mixtape/internal/app/search"
	"github.com/osa030/mixtape/internal/domain/playlist"
	"github.com/osa030/mixtape/internal/domain/track"
)

var (
	// ErrUnreadableFile marks local files that could not be turned into a track.
	ErrUnreadableFile = errors.New("audio file could not be read")
	// ErrPlaybackFailed marks transports the player refused to start.
	ErrPlaybackFailed = errors.New("player could not start the track")
)

// RejectedError is returned when an add filter rejects a track.
type RejectedError struct {
	Code string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("track rejected: %s", e.Code)
}

// Error codes, shared with the message configuration.
const (
	CodeDuplicateTrack  = "duplicate_track"
	CodeValidation      = "validation"
	CodeIndexOutOfRange = "index_out_of_range"
	CodeEmptyPlaylist   = "empty_playlist"
	CodeQueryTooShort   = "query_too_short"
	CodeSuperseded      = "superseded"
	CodeShareInvalid    = "share_invalid"
	CodeShareNotEmpty   = "share_not_empty"
	CodeUnreadableFile  = "unreadable_file"
	CodePlaybackFailed  = "playback_failed"
	CodeInternal        = "error"
)

// ErrorCode classifies an error returned by a session operation.
func ErrorCode(err error) string {
	var rejected *RejectedError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &rejected):
		return rejected.Code
	case errors.Is(err, playlist.ErrDuplicate):
		return CodeDuplicateTrack
	// Invalid shared tracks carry both marks; the share is what failed.
	case errors.Is(err, persist.ErrDecode):
		return CodeShareInvalid
	case errors.Is(err, track.ErrValidation):
		return CodeValidation
	// Empty-playlist errors also match ErrIndexOutOfRange; check them first.
	case errors.Is(err, playlist.ErrEmptyPlaylist), errors.Is(err, playback.ErrEmptyPlaylist):
		return CodeEmptyPlaylist
	case errors.Is(err, playlist.ErrIndexOutOfRange):
		return CodeIndexOutOfRange
	case errors.Is(err, search.ErrQueryTooShort):
		return CodeQueryTooShort
	case errors.Is(err, search.ErrSuperseded):
		return CodeSuperseded
	case errors.Is(err, playlist.ErrNotEmpty):
		return CodeShareNotEmpty
	case errors.Is(err, ErrUnreadableFile):
		return CodeUnreadableFile
	case errors.Is(err, ErrPlaybackFailed):
		return CodePlaybackFailed
	default:
		return CodeInternal
	}
}

// Describe returns the user-facing message for an error.
func (m *Manager) Describe(err error) string {
	if err == nil {
		return ""
	}
	var verr *track.ValidationError
	switch code := ErrorCode(err); code {
	case CodeValidation:
		if errors.As(err, &verr) {
			return verr.Error()
		}
		return m.config.Messages.DefaultError
	case CodeIndexOutOfRange, CodeUnreadableFile:
		return err.Error()
	default:
		return m.config.GetMessage(code)
	}
}

// messagef fills the track title into a configured message.
func messagef(format, title string) string {
	if strings.Contains(format, "%s") {
		return fmt.Sprintf(format, title)
	}
	return format
}
