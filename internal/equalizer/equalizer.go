// ABOUTME: Slider-driven band equalizer
// ABOUTME: Scales FFT magnitudes per band and reconstructs the output signal
package equalizer

import (
	"errors"
	"fmt"
)

const (
	SliderMin     = 0
	SliderMax     = 10
	SliderDefault = 5
)

var (
	ErrBandIndex   = errors.New("equalizer: band index out of range")
	ErrSliderRange = errors.New("equalizer: slider value out of range")
)

// Gain maps a slider value to a magnitude multiplier.
// Value 0 silences the band.
func Gain(value int) float64 {
	if value == 0 {
		return 0
	}
	return 1 + float64(value-SliderDefault)*0.2
}

// Equalizer edits one spectrum. It is not safe for concurrent use.
type Equalizer struct {
	spectrum *Spectrum
	preset   Preset
	bands    []Band
	sliders  []int
	modified []float64
}

// New creates an equalizer with every slider at SliderDefault
func New(spectrum *Spectrum, preset Preset) *Equalizer {
	bands := preset.Bands
	if len(bands) == 0 {
		bands = UniformBands(spectrum.Freqs, preset.Uniform)
	}

	e := &Equalizer{
		spectrum: spectrum,
		preset:   preset,
		bands:    bands,
		sliders:  make([]int, len(bands)),
	}
	e.Reset()
	return e
}

// Preset returns the active preset
func (e *Equalizer) Preset() Preset { return e.preset }

// Bands returns the slider bands
func (e *Equalizer) Bands() []Band { return e.bands }

// Slider returns the value of slider i
func (e *Equalizer) Slider(i int) int {
	if i < 0 || i >= len(e.sliders) {
		return 0
	}
	return e.sliders[i]
}

// Sliders returns a copy of all slider values
func (e *Equalizer) Sliders() []int {
	return append([]int(nil), e.sliders...)
}

// SetSlider moves slider i to value, rescales its band from the
// original magnitudes and returns the rebuilt signal
func (e *Equalizer) SetSlider(i, value int) ([]float64, error) {
	if i < 0 || i >= len(e.bands) {
		return nil, fmt.Errorf("%w: %d", ErrBandIndex, i)
	}
	if value < SliderMin || value > SliderMax {
		return nil, fmt.Errorf("%w: %d", ErrSliderRange, value)
	}

	e.sliders[i] = value
	gain := Gain(value)
	band := e.bands[i]
	for k, f := range e.spectrum.Freqs {
		if band.Contains(f) {
			e.modified[k] = e.spectrum.Magnitudes[k] * gain
		}
	}

	return e.Output(), nil
}

// Magnitudes returns the edited positive-half magnitudes
func (e *Equalizer) Magnitudes() []float64 {
	return e.modified
}

// Audiogram returns the edited magnitudes in decibels
func (e *Equalizer) Audiogram() []float64 {
	return Decibels(e.modified)
}

// Levels returns the mean edited magnitude of each band, converted to
// decibels when db is set. A band without bins reports 0 magnitude.
func (e *Equalizer) Levels(db bool) []float64 {
	levels := make([]float64, len(e.bands))
	for i, band := range e.bands {
		var sum float64
		var n int
		for k, f := range e.spectrum.Freqs {
			if band.Contains(f) {
				sum += e.modified[k]
				n++
			}
		}
		if n > 0 {
			levels[i] = sum / float64(n)
		}
	}
	if db {
		return Decibels(levels)
	}
	return levels
}

// Output rebuilds the signal from the current magnitudes
func (e *Equalizer) Output() []float64 {
	return e.spectrum.Rebuild(e.modified)
}

// Reset puts every slider back to SliderDefault and restores the
// original magnitudes
func (e *Equalizer) Reset() {
	for i := range e.sliders {
		e.sliders[i] = SliderDefault
	}
	e.modified = append(e.modified[:0], e.spectrum.Magnitudes...)
}
