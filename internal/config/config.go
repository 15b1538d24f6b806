// Package config handles reading and writing .deckhand/config.yaml.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/berth-dev/deckhand/internal/detent"
	"github.com/berth-dev/deckhand/internal/paging"
)

// Config is the top-level structure for .deckhand/config.yaml.
type Config struct {
	Version   int             `yaml:"version"`
	Paging    PagingConfig    `yaml:"paging"`
	Sheet     SheetConfig     `yaml:"sheet"`
	Toast     ToastConfig     `yaml:"toast"`
	Indicator IndicatorConfig `yaml:"indicator"`
	Session   SessionConfig   `yaml:"session"`
}

// PagingConfig tunes the carousel.
type PagingConfig struct {
	VelocityThreshold float64 `yaml:"velocity_threshold"` // points/s
	CellWidth         float64 `yaml:"cell_width"`         // points per terminal column
	ItemFraction      float64 `yaml:"item_fraction"`      // of the viewport; 0 uses item_width
	ItemWidth         float64 `yaml:"item_width"`         // points
	Spacing           float64 `yaml:"spacing"`            // points
	AutoAdvanceMs     int     `yaml:"auto_advance_ms"`    // 0 disables
	ResumeDelayMs     int     `yaml:"resume_delay_ms"`
	SettleFrames      int     `yaml:"settle_frames"`
}

// SheetConfig tunes the bottom sheet.
type SheetConfig struct {
	SmallFloor        float64  `yaml:"small_floor"` // points
	VelocityThreshold float64  `yaml:"velocity_threshold"`
	CellHeight        float64  `yaml:"cell_height"` // points per terminal row
	Detents           []string `yaml:"detents"`     // small | medium | large | 300 | 40%
}

// ToastConfig controls toast presentation.
type ToastConfig struct {
	DurationMs int `yaml:"duration_ms"`
}

// IndicatorConfig selects the page indicator style.
type IndicatorConfig struct {
	Style string `yaml:"style"` // "dots" | "numbers" | "bar"
}

// SessionConfig controls where completed questionnaires are stored.
type SessionConfig struct {
	Database         string `yaml:"database"` // relative to .deckhand/
	ExportMaxAgeDays int    `yaml:"export_max_age_days"`
}

const configDir = ".deckhand"
const configFile = "config.yaml"

// Dir returns the .deckhand directory inside the project root.
func Dir(root string) string {
	return filepath.Join(root, configDir)
}

// Path returns the config file path inside the project root.
func Path(root string) string {
	return filepath.Join(root, configDir, configFile)
}

// ReadConfig reads .deckhand/config.yaml from the given project directory.
// Fields missing from the file keep their defaults.
// Returns an error if the file is not found or YAML is malformed.
func ReadConfig(dir string) (*Config, error) {
	data, err := os.ReadFile(Path(dir))
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if _, err := cfg.Detents(); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// WriteConfig writes cfg to .deckhand/config.yaml in the given project
// directory. Creates the .deckhand/ directory if it does not exist.
func WriteConfig(dir string, cfg *Config) error {
	dirPath := Dir(dir)
	if err := os.MkdirAll(dirPath, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}

	if err := os.WriteFile(Path(dir), data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// DefaultConfig returns a Config populated with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Paging: PagingConfig{
			VelocityThreshold: paging.DefaultVelocityThreshold,
			CellWidth:         8,
			ItemFraction:      0.8,
			ItemWidth:         240,
			Spacing:           16,
			AutoAdvanceMs:     4000,
			ResumeDelayMs:     2000,
			SettleFrames:      6,
		},
		Sheet: SheetConfig{
			SmallFloor:        detent.DefaultSmallFloor,
			VelocityThreshold: detent.DefaultVelocityThreshold,
			CellHeight:        16,
			Detents:           []string{"small", "medium", "large"},
		},
		Toast: ToastConfig{
			DurationMs: 3000,
		},
		Indicator: IndicatorConfig{
			Style: "dots",
		},
		Session: SessionConfig{
			Database:         "sessions.db",
			ExportMaxAgeDays: 30,
		},
	}
}

// Detents parses the configured sheet detents.
func (c *Config) Detents() ([]detent.Detent, error) {
	return detent.ParseList(c.Sheet.Detents)
}

// Resolver returns the detent resolver described by the sheet section.
func (c *Config) Resolver() detent.Resolver {
	return detent.Resolver{
		SmallFloor:        c.Sheet.SmallFloor,
		VelocityThreshold: c.Sheet.VelocityThreshold,
	}
}

// ItemSizing returns the carousel item sizing policy.
func (c *Config) ItemSizing() paging.Sizing {
	if c.Paging.ItemFraction > 0 {
		return paging.Fraction(c.Paging.ItemFraction)
	}
	return paging.Fixed(c.Paging.ItemWidth)
}

// AutoAdvance returns the auto-advance interval, zero when disabled.
func (c *Config) AutoAdvance() time.Duration {
	return time.Duration(c.Paging.AutoAdvanceMs) * time.Millisecond
}

// ResumeDelay returns how long auto-advance waits after user interaction.
func (c *Config) ResumeDelay() time.Duration {
	return time.Duration(c.Paging.ResumeDelayMs) * time.Millisecond
}

// ToastDuration returns how long each toast stays visible.
func (c *Config) ToastDuration() time.Duration {
	return time.Duration(c.Toast.DurationMs) * time.Millisecond
}

// DatabasePath returns the absolute session database path for root.
func (c *Config) DatabasePath(root string) string {
	if filepath.IsAbs(c.Session.Database) {
		return c.Session.Database
	}
	return filepath.Join(Dir(root), c.Session.Database)
}
