// ABOUTME: Waveform model for decoded PCM buffers
// ABOUTME: Turns raw 16-bit PCM bytes into samples plus an evenly spaced time axis
package waveform

import (
	"errors"
	"fmt"

	"github.com/Resonate-Protocol/resonate-scope/pkg/audio"
	"github.com/Resonate-Protocol/resonate-scope/pkg/audio/decode"
)

var (
	// ErrDecode matches every *DecodeError
	ErrDecode = errors.New("waveform: cannot decode PCM data")

	// ErrInvalidSampleRate is returned for a sample rate <= 0
	ErrInvalidSampleRate = errors.New("waveform: invalid sample rate")
)

// DecodeError reports PCM input that does not split into whole samples
type DecodeError struct {
	Length int
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("waveform: cannot decode %d bytes as 16-bit PCM: %v", e.Length, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrDecode) match any DecodeError
func (e *DecodeError) Is(target error) bool { return target == ErrDecode }

// Buffer is an immutable decoded PCM buffer.
//
// Samples are interleaved; the channel count is not tracked and every
// duration computed from a Buffer assumes two interleaved channels.
type Buffer struct {
	Samples    []int16
	SampleRate int
}

// TimeAxis holds one timestamp (seconds) per sample
type TimeAxis []float64

// Load decodes data and derives its time axis
func Load(data []byte, sampleRate int) (*Buffer, TimeAxis, error) {
	if sampleRate <= 0 {
		return nil, nil, fmt.Errorf("%w: %d", ErrInvalidSampleRate, sampleRate)
	}

	decoder, err := decode.NewPCM(audio.PCM16(sampleRate, Interleave))
	if err != nil {
		return nil, nil, err
	}
	defer decoder.Close()

	samples, err := decoder.Decode(data)
	if err != nil {
		return nil, nil, &DecodeError{Length: len(data), Err: err}
	}

	buf := &Buffer{Samples: samples, SampleRate: sampleRate}
	return buf, buf.TimeAxis(), nil
}

// Interleave is the channel count Duration and Window assume for every buffer
const Interleave = 2

// Duration is the buffer length in seconds: samples / rate / 2.
// Mono input therefore reports half its real length.
func (b *Buffer) Duration() float64 {
	if b == nil || b.SampleRate <= 0 || len(b.Samples) == 0 {
		return 0
	}
	return float64(len(b.Samples)) / float64(b.SampleRate) / Interleave
}

// DurationMs is Duration truncated to whole milliseconds
func (b *Buffer) DurationMs() int64 {
	return int64(b.Duration() * 1000)
}

// Len returns the number of samples
func (b *Buffer) Len() int {
	if b == nil {
		return 0
	}
	return len(b.Samples)
}

// TimeAxis spaces len(Samples) points evenly over [0, Duration]
func (b *Buffer) TimeAxis() TimeAxis {
	return Linspace(0, b.Duration(), b.Len())
}

// Linspace returns n evenly spaced points from lo to hi inclusive.
// A single point is lo; n <= 0 yields an empty axis.
func Linspace(lo, hi float64, n int) TimeAxis {
	if n <= 0 {
		return TimeAxis{}
	}
	axis := make(TimeAxis, n)
	if n == 1 {
		axis[0] = lo
		return axis
	}
	step := (hi - lo) / float64(n-1)
	for i := range axis {
		axis[i] = lo + float64(i)*step
	}
	axis[n-1] = hi
	return axis
}

// Bounds returns the first and last timestamp of the axis
func (a TimeAxis) Bounds() (float64, float64) {
	if len(a) == 0 {
		return 0, 0
	}
	return a[0], a[len(a)-1]
}
