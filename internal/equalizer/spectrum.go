// ABOUTME: Frequency analysis of a real signal
// ABOUTME: Wraps go-dsp FFT and rebuilds signals from edited magnitudes
package equalizer

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// Spectrum is the full FFT of a real signal plus its positive half
type Spectrum struct {
	SampleRate int
	Coeffs     []complex128 // all n bins
	Freqs      []float64    // k * rate / n for k < n/2
	Magnitudes []float64    // |Coeffs[k]| for k < n/2
}

// Analyze computes the spectrum of samples
func Analyze(samples []float64, sampleRate int) *Spectrum {
	s := &Spectrum{SampleRate: sampleRate}
	n := len(samples)
	if n == 0 || sampleRate <= 0 {
		return s
	}

	s.Coeffs = fft.FFTReal(samples)
	s.Freqs = PositiveFreqs(n, sampleRate)
	s.Magnitudes = make([]float64, n/2)
	for k := range s.Magnitudes {
		s.Magnitudes[k] = cmplx.Abs(s.Coeffs[k])
	}
	return s
}

// Len is the number of samples the spectrum was computed from
func (s *Spectrum) Len() int {
	return len(s.Coeffs)
}

// PositiveFreqs returns the non-negative FFT bin frequencies for n samples
func PositiveFreqs(n, sampleRate int) []float64 {
	freqs := make([]float64, n/2)
	for k := range freqs {
		freqs[k] = float64(k) * float64(sampleRate) / float64(n)
	}
	return freqs
}

// Rebuild applies magnitudes to the positive half of the spectrum while
// keeping the original phase, mirrors the conjugate into the negative
// half and returns the real part of the inverse FFT.
func (s *Spectrum) Rebuild(magnitudes []float64) []float64 {
	n := len(s.Coeffs)
	if n == 0 {
		return []float64{}
	}

	half := n / 2
	coeffs := make([]complex128, n)
	copy(coeffs, s.Coeffs)

	for k := 0; k < half && k < len(magnitudes); k++ {
		coeffs[k] = cmplx.Rect(magnitudes[k], cmplx.Phase(coeffs[k]))
	}

	// Even n mirrors bins 1..half-1, odd n mirrors 1..half
	last := half - 1
	if n%2 != 0 {
		last = half
	}
	for k := 1; k <= last; k++ {
		coeffs[n-k] = cmplx.Conj(coeffs[k])
	}

	inv := fft.IFFT(coeffs)
	out := make([]float64, n)
	for i, c := range inv {
		out[i] = real(c)
	}
	return out
}

// Decibels converts magnitudes to 20*log10(m)
func Decibels(magnitudes []float64) []float64 {
	out := make([]float64, len(magnitudes))
	for i, m := range magnitudes {
		out[i] = 20 * math.Log10(m)
	}
	return out
}
