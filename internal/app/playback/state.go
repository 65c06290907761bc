// Package playback provides the transport state machine layered over the playlist selection.
package playback

// State represents the playback state.
type State int

const (
	StateStopped State = iota // Nothing loaded
	StatePlaying              // Track is playing
	StatePaused               // Track is loaded but paused
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateStopped:
		return "stopped"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	default:
		return "unknown"
	}
}

// ParseState is the inverse of State.String.
func ParseState(s string) State {
	switch s {
	case "playing":
		return StatePlaying
	case "paused":
		return StatePaused
	default:
		return StateStopped
	}
}
