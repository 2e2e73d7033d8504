// internal/core/config.go
// Configuration management using Koanf
// Priority: defaults < YAML file < PORTSWEEP_* env < command line

package core

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment overrides, e.g.
// PORTSWEEP_SCANNER_TIMEOUT=250ms sets scanner.timeout.
const EnvPrefix = "PORTSWEEP_"

// ErrInvalidConfig wraps every validation failure
var ErrInvalidConfig = errors.New("invalid configuration")

// Config represents the complete application configuration
type Config struct {
	Scanner ScannerConfig `koanf:"scanner"`
	Output  OutputConfig  `koanf:"output"`
	Log     LogConfig     `koanf:"log"`
}

// ScannerConfig contains scanner-specific settings
type ScannerConfig struct {
	Target  string        `koanf:"target"`
	Workers int           `koanf:"workers"`
	Timeout time.Duration `koanf:"timeout"` // 0 = no per-attempt deadline
	Prober  string        `koanf:"prober"`
}

// OutputConfig contains output settings
type OutputConfig struct {
	Progress string `koanf:"progress"` // on, off, auto
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `koanf:"level"`  // debug, info, warn, error
	Format string `koanf:"format"` // json, console
	File   string `koanf:"file"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Scanner: ScannerConfig{
			Workers: 4,
			Timeout: time.Second,
			Prober:  "tcp",
		},
		Output: OutputConfig{
			Progress: "on",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Options controls where Load reads from
type Options struct {
	// File is an optional YAML file; empty skips the file layer.
	File string
	// Overrides are flat koanf keys applied last (command line values).
	Overrides map[string]interface{}
	// Probers lists valid scanner.prober values; empty skips the check.
	Probers []string
}

// Load builds the configuration from all layers and validates it
func Load(opts Options) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file
	if opts.File != "" {
		if err := k.Load(file.Provider(opts.File), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", opts.File, err)
		}
	}

	// 3. Environment: PORTSWEEP_SCANNER_WORKERS -> scanner.workers
	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		return strings.Replace(key, "_", ".", 1)
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Command line
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, fmt.Errorf("failed to load overrides: %w", err)
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(cfg, opts.Probers); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate performs validation on loaded config
func Validate(cfg *Config, probers []string) error {
	if cfg.Scanner.Workers < 1 || cfg.Scanner.Workers > 65535 {
		return fmt.Errorf("%w: workers %d (must be between 1 and 65535)", ErrInvalidConfig, cfg.Scanner.Workers)
	}

	if cfg.Scanner.Timeout < 0 || cfg.Scanner.Timeout > 5*time.Minute {
		return fmt.Errorf("%w: timeout %v (must be between 0 and 5m)", ErrInvalidConfig, cfg.Scanner.Timeout)
	}

	if len(probers) > 0 && !contains(probers, cfg.Scanner.Prober) {
		return fmt.Errorf("%w: prober %q (available: %s)", ErrInvalidConfig, cfg.Scanner.Prober, strings.Join(probers, ", "))
	}

	switch cfg.Output.Progress {
	case "on", "off", "auto":
	default:
		return fmt.Errorf("%w: output.progress %q (must be on, off or auto)", ErrInvalidConfig, cfg.Output.Progress)
	}

	switch cfg.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("%w: log.format %q (must be console or json)", ErrInvalidConfig, cfg.Log.Format)
	}

	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
