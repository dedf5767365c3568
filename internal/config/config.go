// Package config handles configuration loading, validation, and hot reload
// for xclock.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

// Version is the current configuration schema version.
const Version = 1

// Config holds the complete xclock configuration.
type Config struct {
	// Version is the configuration schema version.
	Version int `toml:"version" json:"version" yaml:"version"`

	// Engine configures the hook engine.
	Engine EngineConfig `toml:"engine" json:"engine" yaml:"engine"`

	// Labels localize the appended tooltip lines.
	Labels LabelsConfig `toml:"labels" json:"labels" yaml:"labels"`

	// Logging configures log output.
	Logging LoggingConfig `toml:"logging" json:"logging" yaml:"logging"`
}

// EngineConfig holds hook engine tunables.
type EngineConfig struct {
	// Mode is the tooltip strategy: "mutate" rewrites the native tooltip
	// in place, "overlay" draws a custom window.
	Mode string `toml:"mode" json:"mode" yaml:"mode"`

	// StrictTargets makes start fail when no clock window is found.
	// When false, the engine starts degraded and only window-creation
	// events can act.
	StrictTargets bool `toml:"strict_targets" json:"strict_targets" yaml:"strict_targets"`

	// CooldownMs is the minimum interval between tooltip mutations.
	CooldownMs int `toml:"cooldown_ms" json:"cooldown_ms" yaml:"cooldown_ms"`

	// SettleDelayMs is how long to wait after a tooltip window is created
	// before mutating it, so the shell finishes populating its text.
	SettleDelayMs int `toml:"settle_delay_ms" json:"settle_delay_ms" yaml:"settle_delay_ms"`

	// HoverDebounceMs is how long the cursor must stay over the clock
	// before the overlay appears.
	HoverDebounceMs int `toml:"hover_debounce_ms" json:"hover_debounce_ms" yaml:"hover_debounce_ms"`

	// OverlayTimeoutMs auto-hides the overlay after this long.
	OverlayTimeoutMs int `toml:"overlay_timeout_ms" json:"overlay_timeout_ms" yaml:"overlay_timeout_ms"`
}

// LabelsConfig holds the localized label strings.
type LabelsConfig struct {
	Uptime string `toml:"uptime" json:"uptime" yaml:"uptime"`
	Week   string `toml:"week" json:"week" yaml:"week"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level    string `toml:"level" json:"level" yaml:"level"`
	Format   string `toml:"format" json:"format" yaml:"format"`
	Output   string `toml:"output" json:"output" yaml:"output"`
	FilePath string `toml:"file_path" json:"file_path" yaml:"file_path"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Version: Version,
		Engine: EngineConfig{
			Mode:             "mutate",
			StrictTargets:    false,
			CooldownMs:       500,
			SettleDelayMs:    100,
			HoverDebounceMs:  100,
			OverlayTimeoutMs: 5000,
		},
		Labels: LabelsConfig{
			Uptime: "Opptid",
			Week:   "Uke",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
	}
}

// DefaultPath returns the platform-specific config file location.
func DefaultPath() string {
	if runtime.GOOS == "windows" {
		appData := os.Getenv("APPDATA")
		return filepath.Join(appData, "xclock", "config.toml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "xclock", "config.toml")
}

// Duration accessors.

// Cooldown returns the mutation cooldown.
func (e EngineConfig) Cooldown() time.Duration {
	return time.Duration(e.CooldownMs) * time.Millisecond
}

// SettleDelay returns the creation-event settle delay.
func (e EngineConfig) SettleDelay() time.Duration {
	return time.Duration(e.SettleDelayMs) * time.Millisecond
}

// HoverDebounce returns the hover debounce interval.
func (e EngineConfig) HoverDebounce() time.Duration {
	return time.Duration(e.HoverDebounceMs) * time.Millisecond
}

// OverlayTimeout returns the overlay auto-hide interval.
func (e EngineConfig) OverlayTimeout() time.Duration {
	return time.Duration(e.OverlayTimeoutMs) * time.Millisecond
}

// ValidationError is one configuration validation failure.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Message)
}

// ValidationErrors collects validation failures.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate checks the configuration for inconsistencies.
func (c *Config) Validate() error {
	var errs ValidationErrors

	if c.Version < 1 || c.Version > Version {
		errs = append(errs, ValidationError{
			Field:   "version",
			Message: fmt.Sprintf("unsupported version %d (current: %d)", c.Version, Version),
		})
	}

	switch c.Engine.Mode {
	case "", "mutate", "overlay":
	default:
		errs = append(errs, ValidationError{
			Field:   "engine.mode",
			Message: fmt.Sprintf("must be \"mutate\" or \"overlay\", got %q", c.Engine.Mode),
		})
	}

	for _, f := range []struct {
		name  string
		value int
	}{
		{"engine.cooldown_ms", c.Engine.CooldownMs},
		{"engine.settle_delay_ms", c.Engine.SettleDelayMs},
		{"engine.hover_debounce_ms", c.Engine.HoverDebounceMs},
		{"engine.overlay_timeout_ms", c.Engine.OverlayTimeoutMs},
	} {
		if f.value < 0 {
			errs = append(errs, ValidationError{Field: f.name, Message: "must not be negative"})
		}
	}

	switch strings.ToLower(c.Logging.Output) {
	case "", "stdout", "stderr", "file", "both":
	default:
		errs = append(errs, ValidationError{
			Field:   "logging.output",
			Message: fmt.Sprintf("must be stdout, stderr, file or both, got %q", c.Logging.Output),
		})
	}
	if out := strings.ToLower(c.Logging.Output); (out == "file" || out == "both") && c.Logging.FilePath == "" {
		errs = append(errs, ValidationError{
			Field:   "logging.file_path",
			Message: "required when logging.output includes file",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ApplyEnvOverrides applies XCLOCK_* environment overrides on top of the
// loaded file. Environment wins over file values.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("XCLOCK_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("XCLOCK_MODE"); v != "" {
		c.Engine.Mode = v
	}
	if v := os.Getenv("XCLOCK_STRICT_TARGETS"); v != "" {
		c.Engine.StrictTargets = v == "1" || strings.EqualFold(v, "true")
	}
}
