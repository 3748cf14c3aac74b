// Package config loads application configuration in three layers: baked-in
// defaults, an optional YAML file over them, and environment variables over
// both.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// envPrefix namespaces every environment variable, e.g. XBRL_SERVER_PORT.
const envPrefix = "XBRL"

// Config is the complete application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server" envconfig:"SERVER"`
	Logging    LoggingConfig    `yaml:"logging" envconfig:"LOGGING"`
	Extraction ExtractionConfig `yaml:"extraction" envconfig:"EXTRACTION"`
	RateLimit  RateLimitConfig  `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn error"`
	Output string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=stdout file both"`
	// FilePath is only consulted when Output is "file" or "both".
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// ExtractionConfig bounds the extraction surface.
type ExtractionConfig struct {
	// MaxUploadBytes caps the size of an uploaded filing. Italian XBRL
	// instance documents are well under a megabyte; the default leaves
	// generous headroom.
	MaxUploadBytes int64 `yaml:"max_upload_bytes" envconfig:"MAX_UPLOAD_BYTES" validate:"min=1024"`
	// OutputDir is where cmd/processor and CSV downloads stage files.
	OutputDir string `yaml:"output_dir" envconfig:"OUTPUT_DIR"`
}

// RateLimitConfig configures the upload endpoint's token bucket.
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED"`
	RPS     float64 `yaml:"rps" envconfig:"RPS" validate:"gt=0"`
	Burst   int     `yaml:"burst" envconfig:"BURST" validate:"min=1"`
}

// defaultConfig is the baseline every load starts from. Defaults live here
// rather than in envconfig `default:` tags: the tag fires whenever the
// variable is unset, which would overwrite values already read from the file.
func defaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 30 * time.Second,
		},
		Logging: LoggingConfig{
			Level:    "info",
			Output:   "stdout",
			FilePath: "logs/xbrlcli.log",
		},
		Extraction: ExtractionConfig{
			MaxUploadBytes: 10 * 1024 * 1024,
			OutputDir:      "data/reports",
		},
		RateLimit: RateLimitConfig{
			Enabled: true,
			RPS:     20,
			Burst:   10,
		},
	}
}

// Load builds the configuration: defaults first, then the YAML file (when
// present) over them, then environment overrides, then validation.
func Load(configFile string) (*Config, error) {
	cfg := defaultConfig()

	if configFile != "" {
		if _, err := os.Stat(configFile); err == nil {
			data, err := os.ReadFile(configFile)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	// Without default tags, Process only touches fields whose variables
	// are actually set, leaving file and baseline values alone.
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("load config from env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// Default returns the configuration with only struct defaults applied.
// Used by tests and cmd/processor, which has no server to configure.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("default config is invalid: %v", err))
	}
	return cfg
}

func (c *Config) validate() error {
	return validator.New().Struct(c)
}
