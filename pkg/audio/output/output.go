// ABOUTME: Playback clock interface definition
// ABOUTME: Common contract for seekable PCM playback backends
package output

// State is the playback state reported by a backend
type State int

const (
	StateStopped State = iota
	StatePlaying
	StatePaused
)

// Volume bounds for Player.SetVolume
const (
	MinVolume = 0
	MaxVolume = 100
)

// Player plays one in-memory PCM buffer and reports its position
type Player interface {
	// Play starts or resumes playback
	Play()

	// Pause suspends playback at the current position
	Pause()

	// Stop halts playback and rewinds to the start
	Stop()

	// SetPosition seeks to ms milliseconds from the start
	SetPosition(ms int64)

	// Position returns the audible position in milliseconds
	Position() int64

	// State returns the current playback state
	State() State

	// DurationMs returns the length of the buffer in milliseconds
	DurationMs() int64

	// SetVolume sets the software volume, clamped to MinVolume..MaxVolume
	SetVolume(volume int)

	// SetMuted silences output without losing the volume
	SetMuted(muted bool)

	// Close releases the backend's player
	Close() error
}
