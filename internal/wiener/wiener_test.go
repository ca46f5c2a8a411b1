// ABOUTME: Tests for the Wiener filter
// ABOUTME: Checks noise estimation, region handling and attenuation behaviour
package wiener

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/Resonate-Protocol/resonate-scope/internal/equalizer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rate = 1024

func TestDefaultRegionCoversSignal(t *testing.T) {
	f := New(make([]float64, 2048), rate)

	start, end := f.Region()
	assert.Equal(t, 0.0, start)
	assert.Equal(t, 2.0, end)
	assert.Len(t, f.Noise(), 2048)
}

func TestSetRegionOrdersBounds(t *testing.T) {
	f := New(make([]float64, 2048), rate)
	f.SetRegion(1.5, 0.5)

	start, end := f.Region()
	assert.Equal(t, 0.5, start)
	assert.Equal(t, 1.5, end)
	assert.Len(t, f.Noise(), 1024)
}

func TestRegionClampedToSignal(t *testing.T) {
	f := New(make([]float64, 1024), rate)
	f.SetRegion(-1, 5)
	assert.Len(t, f.Noise(), 1024)
}

func TestNoisePowerIsVariance(t *testing.T) {
	f := New([]float64{1, 3, 1, 3}, 4)
	assert.Equal(t, 1.0, f.NoisePower())
}

func TestApplyWithoutNoise(t *testing.T) {
	f := New(make([]float64, 1024), rate)

	_, err := f.Apply(DefaultAlpha)
	assert.True(t, errors.Is(err, ErrNoNoise))
}

func TestApplyWithoutSignal(t *testing.T) {
	_, err := New(nil, rate).Apply(DefaultAlpha)
	assert.True(t, errors.Is(err, ErrNoSignal))
}

func TestApplyZeroAlphaIsIdentity(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	in := make([]float64, 1024)
	for i := range in {
		in[i] = r.NormFloat64()
	}

	res, err := New(in, rate).Apply(0)
	require.NoError(t, err)
	for i := range in {
		assert.InDelta(t, in[i], res.Samples[i], 1e-9)
	}
}

func noisyTone(seed int64, n int) []float64 {
	r := rand.New(rand.NewSource(seed))
	in := make([]float64, n)
	for i := range in {
		in[i] = 0.1 * r.NormFloat64()
		if i >= n/2 {
			in[i] += math.Sin(2 * math.Pi * 64 * float64(i) / rate)
		}
	}
	return in
}

func TestApplyRemovesEnergy(t *testing.T) {
	n := 4096
	in := noisyTone(7, n)

	f := New(in, rate)
	f.SetRegion(0, 1.9) // first half is noise only

	res, err := f.Apply(DefaultAlpha)
	require.NoError(t, err)
	require.Len(t, res.Samples, n)
	require.Len(t, res.Magnitudes, n/2)
	assert.Greater(t, res.NoisePower, 0.0)

	// Every bin gain is below 1, so total energy must drop
	assert.Less(t, energy(res.Samples), energy(in))
}

func TestApplyKeepsStrongTone(t *testing.T) {
	n := 4096
	in := noisyTone(11, n)
	before := equalizer.Analyze(in, rate)

	f := New(in, rate)
	f.SetRegion(0, 1.9)

	res, err := f.Apply(1e6)
	require.NoError(t, err)

	bin := 64 * n / rate
	assert.Equal(t, 64.0, res.Freqs[bin])
	assert.Greater(t, res.Magnitudes[bin], 0.9*before.Magnitudes[bin])

	// A weak off-tone bin is crushed
	far := 400 * n / rate
	assert.Less(t, res.Magnitudes[far], 0.1*before.Magnitudes[far])
}

func energy(xs []float64) float64 {
	sum := 0.0
	for _, x := range xs {
		sum += x * x
	}
	return sum
}
