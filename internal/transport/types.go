// ABOUTME: Transport state types and collaborator contracts
// ABOUTME: Defines playback status, the external clock and the cursor sink
package transport

// Status is the playback state of a clock or controller
type Status int

const (
	Stopped Status = iota
	Playing
	Paused
)

func (s Status) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	default:
		return "unknown"
	}
}

// Clock is the media engine that actually plays the audio.
// Implementations must be safe for concurrent use: the poller reads
// Position and State while transport commands are issued.
type Clock interface {
	Play()
	Pause()
	Stop()
	SetPosition(ms int64)
	Position() int64
	State() Status
}

// Cursor receives the playback position in seconds
type Cursor interface {
	SetCursor(seconds float64)
}

// CursorFunc adapts a function to Cursor
type CursorFunc func(seconds float64)

// SetCursor calls f(seconds)
func (f CursorFunc) SetCursor(seconds float64) { f(seconds) }

// State is a snapshot of the controller
type State struct {
	Status     Status
	PositionMs int64
	DurationMs int64
}
