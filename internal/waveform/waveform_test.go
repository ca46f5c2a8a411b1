// ABOUTME: Tests for the waveform model
// ABOUTME: Covers decoding, duration policy, time axis shape and cine windows
package waveform

import (
	"errors"
	"testing"

	"github.com/Resonate-Protocol/resonate-scope/pkg/audio/decode"
	"github.com/Resonate-Protocol/resonate-scope/pkg/audio/encode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadStereoBuffer(t *testing.T) {
	data := make([]byte, 8000*2)

	buf, axis, err := Load(data, 8000)
	require.NoError(t, err)

	assert.Equal(t, 8000, buf.Len())
	assert.Len(t, axis, 8000)
	assert.InDelta(t, 0.5, buf.Duration(), 1e-12)
	assert.Equal(t, int64(500), buf.DurationMs())

	lo, hi := axis.Bounds()
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 0.5, hi)
}

func TestLoadDecodesLittleEndian(t *testing.T) {
	samples := []int16{1, -1, 1000, -32768}

	buf, axis, err := Load(encode.PCM16(samples), 44100)
	require.NoError(t, err)

	assert.Equal(t, samples, buf.Samples)
	assert.Len(t, axis, len(samples))
}

func TestLoadLengths(t *testing.T) {
	for _, n := range []int{0, 2, 6, 100, 4410} {
		buf, axis, err := Load(make([]byte, n), 44100)
		require.NoError(t, err)
		assert.Equal(t, n/2, buf.Len())
		assert.Len(t, axis, n/2)
		assert.GreaterOrEqual(t, buf.Duration(), 0.0)
		assert.InDelta(t, float64(n/2)/44100/2, buf.Duration(), 1e-12)
	}
}

func TestLoadEmpty(t *testing.T) {
	buf, axis, err := Load(nil, 8000)
	require.NoError(t, err)
	assert.Equal(t, 0.0, buf.Duration())
	assert.Empty(t, axis)
}

func TestLoadOddLength(t *testing.T) {
	_, _, err := Load([]byte{1, 2, 3}, 8000)
	require.Error(t, err)

	assert.True(t, errors.Is(err, ErrDecode))
	assert.True(t, errors.Is(err, decode.ErrPartialSample))

	var decErr *DecodeError
	require.True(t, errors.As(err, &decErr))
	assert.Equal(t, 3, decErr.Length)
}

func TestLoadInvalidSampleRate(t *testing.T) {
	for _, rate := range []int{0, -44100} {
		_, _, err := Load([]byte{0, 0}, rate)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidSampleRate))
		assert.False(t, errors.Is(err, ErrDecode))
	}
}

func TestTimeAxisMonotonic(t *testing.T) {
	buf, axis, err := Load(make([]byte, 2*1001), 1000)
	require.NoError(t, err)

	for i := 1; i < len(axis); i++ {
		assert.GreaterOrEqual(t, axis[i], axis[i-1])
	}
	assert.Equal(t, buf.Duration(), axis[len(axis)-1])
}

func TestLinspace(t *testing.T) {
	assert.Equal(t, TimeAxis{}, Linspace(0, 1, 0))
	assert.Equal(t, TimeAxis{2}, Linspace(2, 5, 1))
	assert.Equal(t, TimeAxis{0, 0.5, 1}, Linspace(0, 1, 3))
}

func TestWindowTrailing(t *testing.T) {
	// 10 samples/s, stereo assumption => 20 interleaved samples per second
	samples := make([]int16, 200)
	for i := range samples {
		samples[i] = int16(i)
	}
	buf := &Buffer{Samples: samples, SampleRate: 10}
	assert.InDelta(t, 10.0, buf.Duration(), 1e-12)

	x, y := buf.Window(5, 3)
	require.Len(t, y, 60)
	require.Len(t, x, 60)
	assert.Equal(t, int16(40), y[0])
	assert.Equal(t, 2.0, x[0])
	assert.Equal(t, 5.0, x[len(x)-1])
}

func TestWindowClampsAtStart(t *testing.T) {
	buf := &Buffer{Samples: make([]int16, 200), SampleRate: 10}

	x, y := buf.Window(1, 3)
	assert.Len(t, y, 20)
	assert.Equal(t, 0.0, x[0])

	x, y = buf.Window(0, 3)
	assert.Empty(t, y)
	assert.Empty(t, x)
}

func TestWindowClampsAtEnd(t *testing.T) {
	buf := &Buffer{Samples: make([]int16, 200), SampleRate: 10}

	x, y := buf.Window(20, 3)
	assert.Len(t, y, 0)
	assert.Len(t, x, 0)

	x, y = buf.Window(11, 3)
	require.Len(t, y, 200-160)
	require.Len(t, x, len(y))
	assert.Equal(t, 8.0, x[0])
	assert.Equal(t, 10.0, x[len(x)-1])
}

func TestCineRange(t *testing.T) {
	lo, hi := CineRange(1, 3)
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 3.0, hi)

	lo, hi = CineRange(7.5, 3)
	assert.Equal(t, 4.5, lo)
	assert.Equal(t, 7.5, hi)
}
