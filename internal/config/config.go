package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/csheth/mathscout/internal/recognition"
	"github.com/csheth/mathscout/internal/trace"
)

// DefaultPath is used when neither --config nor MATHSCOUT_CONFIG is set.
const DefaultPath = "mathscout.yaml"

// Config holds all configuration for mathscout.
type Config struct {
	Recognizer  RecognizerConfig    `yaml:"recognizer"`
	Palette     recognition.Palette `yaml:"palette"`
	Grey        GreyConfig          `yaml:"grey"`
	Overlay     OverlayConfig       `yaml:"overlay"`
	Motivations []string            `yaml:"motivations"`
	Logging     LoggingConfig       `yaml:"logging"`
}

// RecognizerConfig holds the recognition service settings.
type RecognizerConfig struct {
	Endpoint string        `yaml:"endpoint"`
	Scale    float64       `yaml:"scale"`   // stroke coordinates are divided by this
	Timeout  time.Duration `yaml:"timeout"` // e.g. "30s"
}

// GreyConfig is the style of strokes outside the current hint step.
type GreyConfig struct {
	Color      string  `yaml:"color"`
	WidthScale float64 `yaml:"width_scale"`
}

// OverlayConfig holds placement settings for symbols and hint bubbles.
type OverlayConfig struct {
	HintOffset   float64 `yaml:"hint_offset"`
	MinHintWidth float64 `yaml:"min_hint_width"`
	Particles    bool    `yaml:"particles"`
	ParticleSeed int64   `yaml:"particle_seed"` // 0 = seed from the clock
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	File string `yaml:"file"` // empty discards logs in interactive mode
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Recognizer: RecognizerConfig{
			Endpoint: "http://localhost:5000",
			Scale:    recognition.DefaultScale,
			Timeout:  30 * time.Second,
		},
		Palette: recognition.DefaultPalette,
		Grey: GreyConfig{
			Color:      trace.DefaultGreyStyle.Color,
			WidthScale: trace.DefaultGreyStyle.WidthScale,
		},
		Overlay: OverlayConfig{
			HintOffset:   recognition.DefaultHintOffset,
			MinHintWidth: 200,
			Particles:    true,
		},
		Motivations: append([]string(nil), recognition.DefaultMotivations...),
	}
}

// Load loads configuration from a YAML file. A missing file yields defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the configuration as YAML, creating parent directories.
func (c *Config) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// ApplyEnv lets RECOGNIZER_HOST override the configured endpoint.
func (c *Config) ApplyEnv() {
	if host := strings.TrimSpace(os.Getenv("RECOGNIZER_HOST")); host != "" {
		c.Recognizer.Endpoint = strings.TrimRight(host, "/")
	}
}

// Validate rejects values the rest of the program cannot work with.
func (c *Config) Validate() error {
	if c.Recognizer.Scale <= 0 {
		return fmt.Errorf("recognizer.scale must be positive, got %v", c.Recognizer.Scale)
	}
	if c.Recognizer.Timeout < 0 {
		return fmt.Errorf("recognizer.timeout must not be negative, got %s", c.Recognizer.Timeout)
	}
	if c.Grey.WidthScale <= 0 {
		return fmt.Errorf("grey.width_scale must be positive, got %v", c.Grey.WidthScale)
	}
	return nil
}

// GreyStyle converts the grey settings for the trace store.
func (c *Config) GreyStyle() trace.GreyStyle {
	return trace.GreyStyle{Color: c.Grey.Color, WidthScale: c.Grey.WidthScale}
}

// ResolvePath picks the config file: the flag value, then MATHSCOUT_CONFIG,
// then DefaultPath.
func ResolvePath(flag string) string {
	if flag != "" {
		return flag
	}
	if env := os.Getenv("MATHSCOUT_CONFIG"); env != "" {
		return env
	}
	return DefaultPath
}
