// Package config loads the configuration of the graphcalc server from YAML
// or TOML files, with defaults and environment overrides.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Config is the complete server configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server" toml:"server"`
	Cache   CacheConfig   `yaml:"cache" toml:"cache"`
	Sampler SamplerConfig `yaml:"sampler" toml:"sampler"`
	Solver  SolverConfig  `yaml:"solver" toml:"solver"`
	Log     LogConfig     `yaml:"log" toml:"log"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	ListenAddress   string        `yaml:"listen_address" toml:"listen_address"`
	ReadTimeout     time.Duration `yaml:"read_timeout" toml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout" toml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" toml:"shutdown_timeout"`
	// MaxBodyBytes limits request bodies.
	MaxBodyBytes int64 `yaml:"max_body_bytes" toml:"max_body_bytes"`
}

// CacheConfig configures the parsed expression cache.
type CacheConfig struct {
	Size int `yaml:"size" toml:"size"`
}

// SamplerConfig bounds plot sampling requests.
type SamplerConfig struct {
	DefaultColumns int `yaml:"default_columns" toml:"default_columns"`
	MaxColumns     int `yaml:"max_columns" toml:"max_columns"`
	// MaxDepth is the expression nesting limit.
	MaxDepth int `yaml:"max_depth" toml:"max_depth"`
}

// SolverConfig configures Newton-Raphson solves.
type SolverConfig struct {
	Tolerance float64 `yaml:"tolerance" toml:"tolerance"`
	MaxIter   int     `yaml:"max_iter" toml:"max_iter"`
	// ResidualPrec is the precision in bits of IRR residual checks.
	ResidualPrec uint `yaml:"residual_prec" toml:"residual_prec"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is one of "debug", "info", "warn", "error".
	Level string `yaml:"level" toml:"level"`
	// Format is "text" or "json".
	Format string `yaml:"format" toml:"format"`
}

// Default returns a configuration with every field set to its default.
func Default() *Config {
	var cfg Config
	ApplyDefaults(&cfg)
	return &cfg
}

// ApplyDefaults fills in zero fields with default values.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.ListenAddress == "" {
		cfg.Server.ListenAddress = "127.0.0.1:8080"
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 10 * time.Second
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 10 * time.Second
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 15 * time.Second
	}
	if cfg.Server.MaxBodyBytes == 0 {
		cfg.Server.MaxBodyBytes = 1 << 20
	}
	if cfg.Cache.Size == 0 {
		cfg.Cache.Size = 256
	}
	if cfg.Sampler.DefaultColumns == 0 {
		cfg.Sampler.DefaultColumns = 800
	}
	if cfg.Sampler.MaxColumns == 0 {
		cfg.Sampler.MaxColumns = 10000
	}
	if cfg.Sampler.MaxDepth == 0 {
		cfg.Sampler.MaxDepth = 256
	}
	if cfg.Solver.Tolerance == 0 {
		cfg.Solver.Tolerance = 1e-10
	}
	if cfg.Solver.MaxIter == 0 {
		cfg.Solver.MaxIter = 1000
	}
	if cfg.Solver.ResidualPrec == 0 {
		cfg.Solver.ResidualPrec = 128
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
}

// Load reads a configuration file, choosing the decoder by extension (.yaml,
// .yml, or .toml), then applies defaults, environment overrides, and
// validation.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}
	var cfg Config
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
		}
	case ".toml":
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unknown configuration format %q for %q", ext, path)
	}
	ApplyDefaults(&cfg)
	if err := ApplyEnv(&cfg, os.LookupEnv); err != nil {
		return nil, err
	}
	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

// ApplyEnv applies overrides from variables named GRAPHCALC_SECTION_FIELD,
// looked up with lookup (normally os.LookupEnv).
func ApplyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	str := func(name string, dst *string) {
		if v, ok := lookup(name); ok && v != "" {
			*dst = v
		}
	}
	num := func(name string, dst *int) error {
		v, ok := lookup(name)
		if !ok || v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", name, err)
		}
		*dst = n
		return nil
	}
	str("GRAPHCALC_SERVER_LISTEN_ADDRESS", &cfg.Server.ListenAddress)
	str("GRAPHCALC_LOG_LEVEL", &cfg.Log.Level)
	str("GRAPHCALC_LOG_FORMAT", &cfg.Log.Format)
	if err := num("GRAPHCALC_CACHE_SIZE", &cfg.Cache.Size); err != nil {
		return err
	}
	if err := num("GRAPHCALC_SAMPLER_MAX_COLUMNS", &cfg.Sampler.MaxColumns); err != nil {
		return err
	}
	return num("GRAPHCALC_SOLVER_MAX_ITER", &cfg.Solver.MaxIter)
}

// Validate checks that every field holds a usable value.
func Validate(cfg *Config) error {
	switch {
	case cfg.Server.ListenAddress == "":
		return fmt.Errorf("server.listen_address must be set")
	case cfg.Server.ReadTimeout < 0, cfg.Server.WriteTimeout < 0, cfg.Server.ShutdownTimeout < 0:
		return fmt.Errorf("server timeouts must not be negative")
	case cfg.Server.MaxBodyBytes < 0:
		return fmt.Errorf("server.max_body_bytes must not be negative")
	case cfg.Cache.Size < 0:
		return fmt.Errorf("cache.size must not be negative, got %d", cfg.Cache.Size)
	case cfg.Sampler.DefaultColumns < 1:
		return fmt.Errorf("sampler.default_columns must be positive, got %d", cfg.Sampler.DefaultColumns)
	case cfg.Sampler.MaxColumns < cfg.Sampler.DefaultColumns:
		return fmt.Errorf("sampler.max_columns (%d) is less than sampler.default_columns (%d)", cfg.Sampler.MaxColumns, cfg.Sampler.DefaultColumns)
	case cfg.Sampler.MaxDepth < 1:
		return fmt.Errorf("sampler.max_depth must be positive, got %d", cfg.Sampler.MaxDepth)
	case !(cfg.Solver.Tolerance > 0) || math.IsInf(cfg.Solver.Tolerance, 0):
		return fmt.Errorf("solver.tolerance must be positive and finite, got %g", cfg.Solver.Tolerance)
	case cfg.Solver.MaxIter < 1:
		return fmt.Errorf("solver.max_iter must be positive, got %d", cfg.Solver.MaxIter)
	case cfg.Solver.ResidualPrec < 53:
		return fmt.Errorf("solver.residual_prec must be at least 53 bits, got %d", cfg.Solver.ResidualPrec)
	}
	if _, err := parseLevel(cfg.Log.Level); err != nil {
		return err
	}
	switch cfg.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", cfg.Log.Format)
	}
	return nil
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("log.level must be debug, info, warn, or error, got %q", s)
	}
}

// NewLogger creates a logger writing to w according to the configuration.
func (c LogConfig) NewLogger(w io.Writer) (*slog.Logger, error) {
	level, err := parseLevel(c.Level)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}
	switch c.Format {
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	case "text", "":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", c.Format)
	}
}
