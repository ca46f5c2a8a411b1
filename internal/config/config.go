// ABOUTME: Inspector configuration
// ABOUTME: Loads YAML settings and fills in defaults for anything left out
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Resonate-Protocol/resonate-scope/internal/equalizer"
	"github.com/Resonate-Protocol/resonate-scope/internal/transport"
	"github.com/Resonate-Protocol/resonate-scope/internal/waveform"
	"github.com/Resonate-Protocol/resonate-scope/internal/wiener"
)

// Config stores the application configuration.
type Config struct {
	LogLevel string `yaml:"log_level"`
	LogFile  string `yaml:"log_file"`

	PollInterval time.Duration `yaml:"poll_interval"`
	StepMs       int64         `yaml:"step_ms"`
	CineWindow   float64       `yaml:"cine_window"`
	WienerAlpha  float64       `yaml:"wiener_alpha"`

	// ExportDir receives spectrograms and CSV reports; empty means the temp dir
	ExportDir string `yaml:"export_dir"`

	Presets []equalizer.Preset `yaml:"presets"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		LogLevel:     "info",
		LogFile:      "resonate-scope.log",
		PollInterval: transport.DefaultInterval,
		StepMs:       transport.DefaultStepMs,
		CineWindow:   waveform.DefaultWindow,
		WienerAlpha:  wiener.DefaultAlpha,
		Presets:      equalizer.DefaultPresets(),
	}
}

// LoadConfig loads the configuration from the given file path.
// Fields missing from the file keep their defaults.
func LoadConfig(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	cfg.Presets = nil
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", filePath, err)
	}
	if len(cfg.Presets) == 0 {
		cfg.Presets = equalizer.DefaultPresets()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values the inspector cannot run with
func (c *Config) Validate() error {
	if c.PollInterval <= 0 {
		return fmt.Errorf("poll_interval must be positive, got %s", c.PollInterval)
	}
	if c.StepMs <= 0 {
		return fmt.Errorf("step_ms must be positive, got %d", c.StepMs)
	}
	if c.CineWindow <= 0 {
		return fmt.Errorf("cine_window must be positive, got %g", c.CineWindow)
	}
	if c.WienerAlpha < 0 {
		return fmt.Errorf("wiener_alpha must not be negative, got %g", c.WienerAlpha)
	}
	for _, p := range c.Presets {
		if p.Name == "" {
			return fmt.Errorf("preset without a name")
		}
		if p.Uniform <= 0 && len(p.Bands) == 0 {
			return fmt.Errorf("preset %q has no bands", p.Name)
		}
	}
	return nil
}
