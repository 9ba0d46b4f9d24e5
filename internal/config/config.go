// Package config loads the benchmark harness configuration.
//
// Values come, in increasing priority, from built-in defaults, an optional
// spmm.yaml file, SPMM_* environment variables and command-line flags bound
// by the caller.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment overrides, e.g. SPMM_BENCH_ROWS.
const EnvPrefix = "SPMM"

// Config represents the complete spmm configuration
type Config struct {
	Bench   BenchConfig   `mapstructure:"bench"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// BenchConfig controls operand generation and timing
type BenchConfig struct {
	// Rows is the row count of the left operand (M)
	Rows int `mapstructure:"rows"`
	// Inner is the shared dimension (columns of left, rows of right)
	Inner int `mapstructure:"inner"`
	// Cols is the column count of the right operand (N)
	Cols int `mapstructure:"cols"`
	// Density is the probability that a generated entry is non-zero, in [0,1]
	Density float64 `mapstructure:"density"`
	// Seed makes operand generation reproducible
	Seed int64 `mapstructure:"seed"`
	// Workers bounds parallel strategies (0 = GOMAXPROCS)
	Workers int `mapstructure:"workers"`
	// Grain is the number of rows per task for the tasks strategy
	Grain int `mapstructure:"grain"`
	// Repeat is how many timed runs each strategy gets
	Repeat int `mapstructure:"repeat"`
}

// LoggingConfig controls structured logging
type LoggingConfig struct {
	// Level is one of DEBUG, INFO, WARN, ERROR
	Level string `mapstructure:"level"`
	// Format is "text" or "json"
	Format string `mapstructure:"format"`
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Bench: BenchConfig{
			Rows:    100,
			Inner:   100,
			Cols:    100,
			Density: 0.1,
			Seed:    1,
			Workers: 0,
			Grain:   16,
			Repeat:  3,
		},
		Logging: LoggingConfig{
			Level:  "INFO",
			Format: "text",
		},
	}
}

// SetDefaults registers every default on v so they are visible without a config file.
func SetDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("bench.rows", defaults.Bench.Rows)
	v.SetDefault("bench.inner", defaults.Bench.Inner)
	v.SetDefault("bench.cols", defaults.Bench.Cols)
	v.SetDefault("bench.density", defaults.Bench.Density)
	v.SetDefault("bench.seed", defaults.Bench.Seed)
	v.SetDefault("bench.workers", defaults.Bench.Workers)
	v.SetDefault("bench.grain", defaults.Bench.Grain)
	v.SetDefault("bench.repeat", defaults.Bench.Repeat)

	v.SetDefault("logging.level", defaults.Logging.Level)
	v.SetDefault("logging.format", defaults.Logging.Format)
}

// New returns a viper instance with defaults, env binding and config search
// paths set up. cfgFile, when non-empty, overrides the search.
func New(cfgFile string) *viper.Viper {
	v := viper.New()
	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("spmm")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(ConfigDir())
	}

	v.SetEnvPrefix(EnvPrefix)
	// Replace dots with underscores for nested keys in env vars
	// e.g., SPMM_BENCH_ROWS for bench.rows
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// ReadInConfig reads the config file if one exists. A missing file in the
// search paths is not an error; an explicit file that cannot be read is.
func ReadInConfig(v *viper.Viper) error {
	err := v.ReadInConfig()
	if err == nil {
		return nil
	}
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		return nil
	}

	return fmt.Errorf("read config: %w", err)
}

// Load unmarshals v into a Config and validates it.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	// Check XDG_CONFIG_HOME first
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "spmm")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}

	return filepath.Join(home, ".config", "spmm")
}
