// Package config loads the application configuration from
// ~/.mudra/config.yaml, falling back to defaults when the file or
// individual keys are absent.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all tunable application settings.
type Config struct {
	// CameraID selects the capture device.
	CameraID int `yaml:"camera_id"`
	// ListenAddr is the HTTP listen address.
	ListenAddr string `yaml:"listen_addr"`
	// StaticDir serves the UI; empty disables static serving.
	StaticDir string `yaml:"static_dir"`
	// DataDir holds the photo database.
	DataDir string `yaml:"data_dir"`
	// Mirror flips the camera horizontally for a selfie view.
	Mirror bool `yaml:"mirror"`

	Detector DetectorConfig `yaml:"detector"`
}

// DetectorConfig tunes the hand tracker.
type DetectorConfig struct {
	MaxHands        int     `yaml:"max_hands"`
	MinConfidence   float64 `yaml:"min_confidence"`
	MinTrackingConf float64 `yaml:"min_tracking_confidence"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		CameraID:   0,
		ListenAddr: ":8080",
		DataDir:    defaultDataDir(),
		Mirror:     true,
		Detector: DetectorConfig{
			MaxHands:        2,
			MinConfidence:   0.7,
			MinTrackingConf: 0.5,
		},
	}
}

// DefaultPath returns the conventional config file location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(home, ".mudra", "config.yaml")
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".mudra"
	}
	return filepath.Join(home, ".mudra")
}

// Load reads the configuration file at path. A missing file is not an
// error: defaults are returned. Keys absent from the file keep their
// default values.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

func (c Config) validate() error {
	if c.CameraID < 0 {
		return fmt.Errorf("camera_id must not be negative, got %d", c.CameraID)
	}
	if c.ListenAddr == "" {
		return fmt.Errorf("listen_addr must not be empty")
	}
	if c.Detector.MaxHands < 1 {
		return fmt.Errorf("detector.max_hands must be at least 1, got %d", c.Detector.MaxHands)
	}
	if c.Detector.MinConfidence < 0 || c.Detector.MinConfidence > 1 {
		return fmt.Errorf("detector.min_confidence must be in [0, 1], got %g", c.Detector.MinConfidence)
	}
	if c.Detector.MinTrackingConf < 0 || c.Detector.MinTrackingConf > 1 {
		return fmt.Errorf("detector.min_tracking_confidence must be in [0, 1], got %g", c.Detector.MinTrackingConf)
	}
	return nil
}
