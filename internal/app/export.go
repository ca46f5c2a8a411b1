// ABOUTME: Exports of the inspected signals
// ABOUTME: Writes spectrogram PNGs, magnitude and difference CSVs and the output WAV
package app

import (
	"go.uber.org/zap"

	"github.com/Resonate-Protocol/resonate-scope/internal/source"
	"github.com/Resonate-Protocol/resonate-scope/internal/spectrogram"
	"github.com/Resonate-Protocol/resonate-scope/pkg/audio"
)

// ExportSpectrograms renders the input, output and difference
// spectrograms into the export directory and returns their paths
func (a *App) ExportSpectrograms() ([]string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := a.signals[Output].buf
	if a.track == nil || out == nil {
		return nil, ErrNotInitialized
	}

	outSamples := audio.ToFloat(out.Samples)
	plots := []struct {
		suffix  string
		samples []float64
	}{
		{"input", a.samples},
		{"output", outSamples},
		{"difference", spectrogram.Difference(a.samples, outSamples)},
	}

	paths := make([]string, 0, len(plots))
	for _, p := range plots {
		path := source.UniquePath(a.cfg.ExportDir, a.track.Name+"-"+p.suffix, ".png")
		if err := spectrogram.Render(p.samples, a.analysisRate(), path, spectrogram.DefaultOptions); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}

	a.logger.Info("spectrograms exported", zap.Strings("paths", paths))
	return paths, nil
}

// ExportMagnitudes writes the equalized positive-half magnitudes to CSV,
// in decibels while the audiogram view is on
func (a *App) ExportMagnitudes() (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.eq == nil {
		return "", ErrNotInitialized
	}

	header, values := "Magnitude", a.eq.Magnitudes()
	if a.audiogram {
		header, values = "H L (dB)", a.eq.Audiogram()
	}
	path := source.UniquePath(a.cfg.ExportDir, a.track.Name+"-magnitudes", ".csv")
	if err := source.WriteCSV(path, header, values); err != nil {
		return "", err
	}

	a.logger.Info("magnitudes exported", zap.String("path", path))
	return path, nil
}

// ExportOutput writes the current output signal as a WAV file
func (a *App) ExportOutput() (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := a.signals[Output].buf
	if a.track == nil || out == nil {
		return "", ErrNotInitialized
	}

	path := source.UniquePath(a.cfg.ExportDir, a.track.Name+"-output", ".wav")
	if err := source.WriteWAV(path, out.Samples, a.track.Format.SampleRate, a.track.Format.Channels); err != nil {
		return "", err
	}

	a.logger.Info("output exported", zap.String("path", path))
	return path, nil
}

// ExportDifference writes input minus output, sample by sample, to CSV
func (a *App) ExportDifference() (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := a.signals[Output].buf
	if a.track == nil || out == nil {
		return "", ErrNotInitialized
	}

	path := source.UniquePath(a.cfg.ExportDir, a.track.Name+"-difference", ".csv")
	diff := spectrogram.Difference(a.samples, audio.ToFloat(out.Samples))
	if err := source.WriteCSV(path, "Amplitude Difference", diff); err != nil {
		return "", err
	}

	a.logger.Info("difference exported", zap.String("path", path), zap.Int("samples", len(diff)))
	return path, nil
}
