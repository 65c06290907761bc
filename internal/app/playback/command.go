package playback

import "time"

// CommandType is an instruction for the player.
type CommandType int

const (
	CommandLoad  CommandType = iota // Load a new source
	CommandPlay                     // Start or resume
	CommandPause                    // Pause, keeping position
	CommandSeek                     // Move to an absolute position
	CommandStop                     // Unload the source
)

// String returns the string representation of the command type.
func (c CommandType) String() string {
	switch c {
	case CommandLoad:
		return "load"
	case CommandPlay:
		return "play"
	case CommandPause:
		return "pause"
	case CommandSeek:
		return "seek"
	case CommandStop:
		return "stop"
	default:
		return "unknown"
	}
}

// Command is emitted by the controller and executed by the player.
type Command struct {
	Type     CommandType
	URL      string        // CommandLoad
	Token    uint64        // CommandLoad: echoed back on every player event for this source
	Hint     time.Duration // CommandLoad: display duration of the track, 0 if unknown
	Position time.Duration // CommandSeek
}
