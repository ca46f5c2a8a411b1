// ABOUTME: Headless render command
// ABOUTME: Applies an equalizer mode or Wiener filter to a file and writes WAV, PNG and CSV results
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/Resonate-Protocol/resonate-scope/internal/config"
	"github.com/Resonate-Protocol/resonate-scope/internal/equalizer"
	"github.com/Resonate-Protocol/resonate-scope/internal/logging"
	"github.com/Resonate-Protocol/resonate-scope/internal/source"
	"github.com/Resonate-Protocol/resonate-scope/internal/spectrogram"
	"github.com/Resonate-Protocol/resonate-scope/internal/version"
	"github.com/Resonate-Protocol/resonate-scope/internal/waveform"
	"github.com/Resonate-Protocol/resonate-scope/internal/wiener"
	"github.com/Resonate-Protocol/resonate-scope/pkg/audio"
)

var (
	file       = flag.String("file", "", "Audio file to render (.wav or .csv)")
	configPath = flag.String("config", "", "YAML config file (default: built-in settings)")
	mode       = flag.String("mode", "Uniform Mode", "Equalizer mode name")
	sliders    = flag.String("sliders", "", "Comma-separated slider values 0-10, in band order")
	noise      = flag.String("noise", "", "Wiener noise region as start,end seconds (replaces the equalizer)")
	alpha      = flag.Float64("alpha", wiener.DefaultAlpha, "Wiener noise weight")
	out        = flag.String("out", "", "Output WAV path (default: a new temp file)")
	audiogram  = flag.Bool("audiogram", false, "Write magnitudes in decibels")
	dir        = flag.String("dir", ".", "Directory for spectrogram PNGs and the CSV files")
	logLevel   = flag.String("log-level", "info", "Log level: debug, info, warn, error")
)

func main() {
	flag.Parse()

	logger, err := logging.New(logging.Options{Level: *logLevel, Stdout: true})
	if err != nil {
		log.Fatalf("error creating logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := render(logger); err != nil {
		logger.Error("render failed", zap.Error(err))
		os.Exit(1)
	}
}

func render(logger *zap.Logger) error {
	if *file == "" {
		return fmt.Errorf("-file is required")
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.LoadConfig(*configPath)
		if err != nil {
			return fmt.Errorf("error loading config: %w", err)
		}
		cfg = loaded
	}

	logger.Info("rendering",
		zap.String("product", version.Product),
		zap.String("version", version.Version),
		zap.String("file", *file))

	track, err := source.Open(*file)
	if err != nil {
		return err
	}
	pcm, err := track.Samples()
	if err != nil {
		return err
	}
	input := audio.ToFloat(pcm)
	analysisRate := track.Format.SampleRate * track.Format.Channels

	preset, ok := equalizer.FindPreset(cfg.Presets, *mode)
	if !ok {
		return fmt.Errorf("unknown equalizer mode %q", *mode)
	}
	eq := equalizer.New(equalizer.Analyze(input, analysisRate), preset)

	values, err := parseInts(*sliders)
	if err != nil {
		return fmt.Errorf("invalid -sliders: %w", err)
	}
	for i, v := range values {
		if _, err := eq.SetSlider(i, v); err != nil {
			return err
		}
	}
	output := eq.Output()

	if *noise != "" {
		region, err := parseFloats(*noise)
		if err != nil || len(region) != 2 {
			return fmt.Errorf("invalid -noise %q: want start,end", *noise)
		}
		filter := wiener.New(input, track.Format.SampleRate*waveform.Interleave)
		filter.SetRegion(region[0], region[1])
		res, err := filter.Apply(*alpha)
		if err != nil {
			return err
		}
		logger.Info("wiener filter applied", zap.Float64("noise_power", res.NoisePower))
		output = res.Samples
	}

	wavPath := *out
	if wavPath == "" {
		wavPath, err = source.TempWAV(audio.ToInt16(output), track.Format.SampleRate, track.Format.Channels)
	} else {
		err = source.WriteWAV(wavPath, audio.ToInt16(output), track.Format.SampleRate, track.Format.Channels)
	}
	if err != nil {
		return err
	}
	logger.Info("output written", zap.String("path", wavPath))

	for name, samples := range map[string][]float64{
		"input":      input,
		"output":     output,
		"difference": spectrogram.Difference(input, output),
	} {
		path := source.UniquePath(*dir, track.Name+"-"+name, ".png")
		if err := spectrogram.Render(samples, analysisRate, path, spectrogram.DefaultOptions); err != nil {
			return err
		}
		logger.Info("spectrogram written", zap.String("kind", name), zap.String("path", path))
	}

	header, magnitudes := "Magnitude", eq.Magnitudes()
	if *audiogram {
		header, magnitudes = "H L (dB)", eq.Audiogram()
	}
	csvPath := source.UniquePath(*dir, track.Name+"-magnitudes", ".csv")
	if err := source.WriteCSV(csvPath, header, magnitudes); err != nil {
		return err
	}
	logger.Info("magnitudes written", zap.String("path", csvPath))

	diffPath := source.UniquePath(*dir, track.Name+"-difference", ".csv")
	if err := source.WriteCSV(diffPath, "Amplitude Difference", spectrogram.Difference(input, output)); err != nil {
		return err
	}
	logger.Info("difference written", zap.String("path", diffPath))
	return nil
}

func parseInts(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var out []int
	for _, field := range strings.Split(s, ",") {
		v, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func parseFloats(s string) ([]float64, error) {
	var out []float64
	for _, field := range strings.Split(s, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
