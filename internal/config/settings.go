// Package config loads the CLI's application settings from defaults, an
// optional config file, a .env file and SIMPLENET_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every setting read from the environment,
// e.g. SIMPLENET_TIMEOUT.
const EnvPrefix = "SIMPLENET"

// DefaultEnvFile is read when present and no other env file is named.
const DefaultEnvFile = ".env"

// Output formats accepted by the output setting.
var OutputFormats = []string{"text", "json", "yaml"}

// Settings holds the application settings.
type Settings struct {
	LogLevel  string        `mapstructure:"log_level"`
	Timeout   time.Duration `mapstructure:"timeout"`
	UserAgent string        `mapstructure:"user_agent"`
	NoColor   bool          `mapstructure:"no_color"`
	Output    string        `mapstructure:"output"`
}

// New returns a viper instance with defaults and environment lookup set up.
// Callers may bind command-line flags to it before calling Load.
func New(version string) *viper.Viper {
	v := viper.New()

	v.SetDefault("log_level", "info")
	v.SetDefault("timeout", "30s")
	v.SetDefault("user_agent", "simplenet/"+version)
	v.SetDefault("no_color", false)
	v.SetDefault("output", "text")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	return v
}

// Load reads envFile (DefaultEnvFile if empty, silently skipped when absent)
// and configFile (skipped if empty), then decodes and validates the settings.
// Environment variables take precedence over the config file; bound flags
// take precedence over both.
func Load(v *viper.Viper, configFile, envFile string) (*Settings, error) {
	if envFile == "" {
		if err := godotenv.Load(DefaultEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", DefaultEnvFile, err)
		}
	} else if err := godotenv.Load(envFile); err != nil {
		return nil, fmt.Errorf("load env file: %w", err)
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks value ranges.
func (s *Settings) Validate() error {
	if s.Timeout <= 0 {
		return fmt.Errorf("invalid timeout %s (must be positive)", s.Timeout)
	}
	for _, format := range OutputFormats {
		if s.Output == format {
			return nil
		}
	}
	return fmt.Errorf("invalid output %q (must be one of %s)", s.Output, strings.Join(OutputFormats, ", "))
}
