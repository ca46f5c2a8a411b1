// ABOUTME: Cine-mode windowing over a waveform buffer
// ABOUTME: Extracts the trailing time window that follows the playback position
package waveform

import "math"

// DefaultWindow is the cine window length in seconds
const DefaultWindow = 3.0

// Window returns the samples covering [max(0, position-size), position]
// together with their time axis. The window ends at Duration when
// position runs past the buffer. Indices use the same two-channel
// assumption as Duration. The returned samples alias the buffer.
func (b *Buffer) Window(position, size float64) (TimeAxis, []int16) {
	if b == nil || b.Len() == 0 {
		return TimeAxis{}, nil
	}

	start := math.Max(0, position-size)
	end := math.Max(start, math.Min(position, b.Duration()))

	lo := b.index(start)
	hi := b.index(end)
	if hi < lo {
		hi = lo
	}

	return Linspace(start, end, hi-lo), b.Samples[lo:hi]
}

// CineRange is the visible x-range for a cine window at position
func CineRange(position, size float64) (float64, float64) {
	start := math.Max(0, position-size)
	return start, start + size
}

func (b *Buffer) index(t float64) int {
	i := int(t * float64(b.SampleRate) * Interleave)
	if i < 0 {
		return 0
	}
	if i > len(b.Samples) {
		return len(b.Samples)
	}
	return i
}
