// ABOUTME: Spectrogram rendering for input, output and difference signals
// ABOUTME: Draws Hamming-windowed FFT magnitudes into PNG images
package spectrogram

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"math"

	"github.com/eligwz/spectrogram"
)

// ErrNoSamples is returned when there is nothing to draw
var ErrNoSamples = errors.New("no samples to render")

// Options controls the rendered image
type Options struct {
	Width  int
	Height int
	// Log draws magnitudes on a log10 scale
	Log bool
}

// DefaultOptions matches the size used by the inspector's export
var DefaultOptions = Options{Width: 2048, Height: 512}

// Render draws the spectrogram of samples to a PNG at path.
// Samples are scaled to a unit peak first so int16-range and
// normalized input render alike.
func Render(samples []float64, sampleRate int, path string, opts Options) error {
	if len(samples) == 0 {
		return ErrNoSamples
	}
	if sampleRate <= 0 {
		return fmt.Errorf("invalid sample rate: %d", sampleRate)
	}
	if opts.Width <= 0 {
		opts.Width = DefaultOptions.Width
	}
	if opts.Height <= 0 {
		opts.Height = DefaultOptions.Height
	}

	img := spectrogram.NewImage128(image.Rect(0, 0, opts.Width, opts.Height))
	black := spectrogram.ParseColor("000000")
	draw.Draw(img, img.Bounds(), image.NewUniform(black), image.Point{}, draw.Src)

	spectrogram.Drawfft(
		img,
		unitPeak(samples),
		uint32(sampleRate),
		uint32(opts.Height),
		false, // Hamming window
		false, // FFT
		true,  // magnitude
		opts.Log,
	)

	if err := spectrogram.SavePng(img, path); err != nil {
		return fmt.Errorf("failed to save spectrogram: %w", err)
	}
	return nil
}

// Difference returns a-b over the common length
func Difference(a, b []float64) []float64 {
	n := min(len(a), len(b))
	out := make([]float64, n)
	for i := range n {
		out[i] = a[i] - b[i]
	}
	return out
}

func unitPeak(samples []float64) []float64 {
	peak := 0.0
	for _, s := range samples {
		peak = math.Max(peak, math.Abs(s))
	}
	out := make([]float64, len(samples))
	if peak == 0 {
		return out
	}
	for i, s := range samples {
		out[i] = s / peak
	}
	return out
}
