// Package config provides configuration management for mediasync. It
// handles loading, validating, and defaulting application settings. The
// package supports YAML configuration files overlaid with MEDIASYNC_*
// environment variables.
package config

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/okrause/mediasync/pkg/errors"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix for environment variable overrides.
const EnvPrefix = "MEDIASYNC"

// Config represents the application configuration.
type Config struct {
	Settings Settings `yaml:"settings"`
}

// Settings represents general application settings.
type Settings struct {
	// MediaDir is the managed directory that downloads land in.
	MediaDir string `yaml:"media_dir" envconfig:"MEDIA_DIR"`

	// Catalog is the path or URL of the catalog manifest.
	Catalog string `yaml:"catalog" envconfig:"CATALOG"`

	// KeepFreeMiB is the minimum free-space floor on the managed
	// volume, in MiB. Zero disables eviction entirely.
	KeepFreeMiB int64 `yaml:"keep_free_mib" envconfig:"KEEP_FREE_MIB"`

	// NoLowSpaceWarning suppresses the interactive confirmation shown
	// when free space is already below the floor at startup.
	NoLowSpaceWarning bool `yaml:"no_low_space_warning" envconfig:"NO_LOW_SPACE_WARNING"`

	// RateLimitMBps throttles downloads, in MB per second. Zero means
	// unlimited.
	RateLimitMBps float64 `yaml:"rate_limit_mbps" envconfig:"RATE_LIMIT_MBPS"`

	// VerifyChecksums enables MD5 verification against catalog digests.
	VerifyChecksums bool `yaml:"verify_checksums" envconfig:"VERIFY_CHECKSUMS"`

	// FixBroken re-audits existing local files against the catalog and
	// re-downloads mismatches, including subtitle files.
	FixBroken bool `yaml:"fix_broken" envconfig:"FIX_BROKEN"`

	// Quiet is the verbosity level: 0 everything, 1 no per-file
	// chatter, 2 errors only.
	Quiet int `yaml:"quiet" envconfig:"QUIET"`

	// SubtitleLanguages lists catalog language tags whose caption
	// files should be synced alongside the media.
	SubtitleLanguages []string `yaml:"subtitle_languages" envconfig:"SUBTITLE_LANGUAGES"`

	// ImportDir is the default source for the import command.
	ImportDir string `yaml:"import_dir,omitempty" envconfig:"IMPORT_DIR"`

	// HTTPTimeout bounds catalog manifest requests. Transfers are not
	// bounded by it; they are expected to run for a long time.
	HTTPTimeout time.Duration `yaml:"http_timeout" envconfig:"HTTP_TIMEOUT"`

	// Hooks maps a hook name (post_download, pre_evict) to a Tengo
	// script path.
	Hooks map[string]string `yaml:"hooks,omitempty"`
}

// Default configuration values.
const (
	// DefaultRateLimitMBps is the default download rate limit.
	DefaultRateLimitMBps = 1.0

	// DefaultHTTPTimeout is the default timeout for catalog requests.
	DefaultHTTPTimeout = 30 * time.Second
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Settings: Settings{
			MediaDir:      ".",
			RateLimitMBps: DefaultRateLimitMBps,
			HTTPTimeout:   DefaultHTTPTimeout,
		},
	}
}

// LoadConfig loads configuration from a file and applies environment
// overrides. A missing file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, errors.ErrEmptyConfigPath
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidConfigPath, err.Error())
	}

	file, err := os.Open(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := DefaultConfig()
			if err := cfg.applyEnv(); err != nil {
				return nil, err
			}
			return cfg, cfg.Validate()
		}
		return nil, errors.Wrapf(err, "failed to open config file: %s", path)
	}
	defer func() { _ = file.Close() }()

	return LoadConfigFromReader(file)
}

// LoadConfigFromReader loads configuration from an io.Reader.
func LoadConfigFromReader(reader io.Reader) (*Config, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config data")
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, errors.Wrap(errors.ErrConfigParse, err.Error())
	}

	config.applyDefaults()
	if err := config.applyEnv(); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// GetDefaultConfigPath returns the default config file location.
func GetDefaultConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to get user config directory")
	}
	return filepath.Join(configDir, "mediasync", "config.yaml"), nil
}

// KeepFreeBytes returns the free-space floor in bytes.
func (s *Settings) KeepFreeBytes() int64 {
	return s.KeepFreeMiB * 1024 * 1024
}

// EvictionEnabled reports whether a free-space floor is configured.
func (s *Settings) EvictionEnabled() bool {
	return s.KeepFreeMiB > 0
}

func (c *Config) applyDefaults() {
	if c.Settings.MediaDir == "" {
		c.Settings.MediaDir = "."
	}
	if c.Settings.HTTPTimeout <= 0 {
		c.Settings.HTTPTimeout = DefaultHTTPTimeout
	}
}

func (c *Config) applyEnv() error {
	if err := envconfig.Process(EnvPrefix, &c.Settings); err != nil {
		return errors.Wrap(err, "failed to apply environment overrides")
	}
	return nil
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Settings.KeepFreeMiB < 0 {
		return errors.Wrap(errors.ErrConfigValidation, "keep_free_mib cannot be negative")
	}
	if c.Settings.RateLimitMBps < 0 {
		return errors.Wrap(errors.ErrConfigValidation, "rate_limit_mbps cannot be negative")
	}
	if c.Settings.Quiet < 0 || c.Settings.Quiet > 2 {
		return errors.Wrap(errors.ErrConfigValidation, "quiet must be between 0 and 2")
	}
	return nil
}

// Save writes the configuration to path as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "failed to encode config")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "failed to create config directory")
	}
	return os.WriteFile(path, data, 0o644)
}
