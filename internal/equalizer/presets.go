// ABOUTME: Equalizer mode presets
// ABOUTME: Named frequency band layouts, overridable from configuration
package equalizer

import "fmt"

// Band is a frequency range controlled by one slider
type Band struct {
	Label string  `yaml:"label"`
	Min   float64 `yaml:"min"`
	Max   float64 `yaml:"max"`
}

// Contains reports whether freq falls in [Min, Max)
func (b Band) Contains(freq float64) bool {
	return freq >= b.Min && freq < b.Max
}

// Preset is a named set of bands. A preset with no bands and a
// positive Uniform count splits the spectrum into equal bands.
type Preset struct {
	Name    string `yaml:"name"`
	Uniform int    `yaml:"uniform,omitempty"`
	Bands   []Band `yaml:"bands,omitempty"`
}

// DefaultPresets are the built-in modes
func DefaultPresets() []Preset {
	return []Preset{
		{Name: "Uniform Mode", Uniform: 10},
		{Name: "Musical Mode", Bands: []Band{
			{"Drums", 0, 400},
			{"Violin", 400, 4000},
			{"OOOh", 200, 800},
			{"R", 1320, 4400},
			{"S", 2200, 13500},
			{"Xylophone", 4000, 20000},
		}},
		{Name: "Animal Song Mode", Bands: []Band{
			{"Trumpet", 0, 600},
			{"Whale", 600, 1200},
			{"Piano", 1200, 1600},
			{"Frog", 1600, 2800},
			{"Cardinal", 2800, 3600},
			{"Xylophone", 4000, 20000},
		}},
		{Name: "ECG Abnormalities Mode", Bands: []Band{
			{"Normal", 0, 22000},
			{"AFib", 200, 450},
			{"VT", 80, 864},
			{"VC", 0, 1000},
		}},
	}
}

// FindPreset looks a preset up by name
func FindPreset(presets []Preset, name string) (Preset, bool) {
	for _, p := range presets {
		if p.Name == name {
			return p, true
		}
	}
	return Preset{}, false
}

// UniformBands splits the positive spectrum into count equal bands
func UniformBands(freqs []float64, count int) []Band {
	if count <= 0 {
		return nil
	}
	lo, hi := 0.0, 0.0
	if len(freqs) > 0 {
		lo, hi = freqs[0], freqs[len(freqs)-1]
	}
	width := (hi - lo) / float64(count)

	bands := make([]Band, count)
	for i := range bands {
		bands[i] = Band{
			Min: width * float64(i),
			Max: width * float64(i+1),
		}
		if i == 0 {
			bands[i].Min = lo
		}
	}
	return bands
}

// String renders the band as a slider caption
func (b Band) String() string {
	if b.Label == "" {
		return fmt.Sprintf("(%.1f, %.1f) Hz", b.Min, b.Max)
	}
	return fmt.Sprintf("%s (%.1f, %.1f)", b.Label, b.Min, b.Max)
}
