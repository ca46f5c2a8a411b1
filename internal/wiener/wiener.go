// ABOUTME: Wiener noise reduction over a user-selected noise region
// ABOUTME: Estimates noise power from the region and applies H = P/(P + alpha*N) per FFT bin
package wiener

import (
	"errors"
	"math"
	"math/cmplx"

	"github.com/Resonate-Protocol/resonate-scope/internal/equalizer"
	"github.com/mjibson/go-dsp/fft"
)

const (
	// DefaultAlpha is the initial noise weight
	DefaultAlpha = 1.0

	// MaxAlpha is the largest noise weight offered interactively
	MaxAlpha = 1e6
)

var (
	// ErrNoNoise means the selected region has no measurable noise power
	ErrNoNoise = errors.New("wiener: noise power not estimated, select a noise range first")

	// ErrNoSignal means there is nothing to filter
	ErrNoSignal = errors.New("wiener: no audio data to filter")
)

// Filter holds a signal and the region treated as pure noise
type Filter struct {
	samples    []float64
	sampleRate int
	start      float64
	end        float64
}

// Result is the filtered signal and its positive-half spectrum
type Result struct {
	Samples    []float64
	Freqs      []float64
	Magnitudes []float64
	NoisePower float64
}

// New creates a filter whose noise region initially covers the whole
// signal. The region is in seconds of samples/sampleRate.
func New(samples []float64, sampleRate int) *Filter {
	f := &Filter{samples: samples, sampleRate: sampleRate}
	f.end = f.Duration()
	return f
}

// Duration is len(samples)/sampleRate
func (f *Filter) Duration() float64 {
	if f.sampleRate <= 0 {
		return 0
	}
	return float64(len(f.samples)) / float64(f.sampleRate)
}

// SetRegion moves the noise region; the bounds may be given in any order
func (f *Filter) SetRegion(start, end float64) {
	if end < start {
		start, end = end, start
	}
	f.start, f.end = start, end
}

// Region returns the noise region in seconds
func (f *Filter) Region() (float64, float64) {
	return f.start, f.end
}

// Noise returns the samples inside the noise region
func (f *Filter) Noise() []float64 {
	n := len(f.samples)
	lo := clampIndex(int(f.start*float64(f.sampleRate)), n)
	hi := clampIndex(int(f.end*float64(f.sampleRate)), n)
	if hi < lo {
		return nil
	}
	return f.samples[lo:hi]
}

// NoisePower is the population variance of the noise region
func (f *Filter) NoisePower() float64 {
	return variance(f.Noise())
}

// Apply filters the whole signal with noise weight alpha
func (f *Filter) Apply(alpha float64) (*Result, error) {
	if len(f.samples) == 0 {
		return nil, ErrNoSignal
	}

	noise := f.NoisePower()
	if noise <= 0 {
		return nil, ErrNoNoise
	}

	coeffs := fft.FFTReal(f.samples)
	for k, x := range coeffs {
		p := math.Pow(cmplx.Abs(x), 2)
		den := p + alpha*noise
		h := 0.0
		if den != 0 {
			h = p / den
		}
		coeffs[k] = complex(h, 0) * x
	}

	inv := fft.IFFT(coeffs)
	out := make([]float64, len(inv))
	for i, c := range inv {
		out[i] = real(c)
	}

	half := len(coeffs) / 2
	mags := make([]float64, half)
	for k := range mags {
		mags[k] = cmplx.Abs(coeffs[k])
	}

	return &Result{
		Samples:    out,
		Freqs:      equalizer.PositiveFreqs(len(coeffs), f.sampleRate),
		Magnitudes: mags,
		NoisePower: noise,
	}, nil
}

func variance(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	mean := 0.0
	for _, x := range xs {
		mean += x
	}
	mean /= float64(len(xs))

	sum := 0.0
	for _, x := range xs {
		d := x - mean
		sum += d * d
	}
	return sum / float64(len(xs))
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n {
		return n
	}
	return i
}
