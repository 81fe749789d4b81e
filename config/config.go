package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultPort is the default server port
	DefaultPort = "8080"

	// DefaultMaxFileSize is the default maximum size per uploaded file (100MB)
	DefaultMaxFileSize = 100 * 1024 * 1024

	// DefaultTargetMB is the default compression target in megabytes
	DefaultTargetMB = 9

	// DefaultWorkers is the default number of concurrent processing jobs
	DefaultWorkers = 4

	// DefaultRequestTimeout bounds a single processing job
	DefaultRequestTimeout = 2 * time.Minute

	// DefaultLogLevel is the default logging level
	DefaultLogLevel = "info"
)

// Duration wraps time.Duration so timeouts can be written as "90s" or "2m"
// in a config file.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Config holds the runtime settings of the service.
type Config struct {
	Port            string   `yaml:"port"`
	MaxFileSize     int64    `yaml:"max_file_size"`
	DefaultTargetMB float64  `yaml:"default_target_mb"`
	Workers         int      `yaml:"workers"`
	RequestTimeout  Duration `yaml:"request_timeout"`
	DatabasePath    string   `yaml:"database_path"`
	LogLevel        string   `yaml:"log_level"`
}

// Default returns the configuration used when nothing else is provided.
func Default() *Config {
	return &Config{
		Port:            DefaultPort,
		MaxFileSize:     DefaultMaxFileSize,
		DefaultTargetMB: DefaultTargetMB,
		Workers:         DefaultWorkers,
		RequestTimeout:  Duration(DefaultRequestTimeout),
		LogLevel:        DefaultLogLevel,
	}
}

// Load builds the configuration from defaults, an optional YAML file and
// environment overrides, in that order. An empty path skips the file step.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Port = getEnv("PORT", c.Port)
	c.MaxFileSize = getEnvInt64("MAX_FILE_SIZE", c.MaxFileSize)
	c.DefaultTargetMB = getEnvFloat("DEFAULT_TARGET_MB", c.DefaultTargetMB)
	c.Workers = getEnvInt("WORKERS", c.Workers)
	c.DatabasePath = getEnv("DATABASE_PATH", c.DatabasePath)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	if value := os.Getenv("REQUEST_TIMEOUT"); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			c.RequestTimeout = Duration(parsed)
		}
	}
}

// Validate rejects settings the service cannot run with.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("port must not be empty")
	}
	if c.MaxFileSize <= 0 {
		return fmt.Errorf("max file size must be positive, got %d", c.MaxFileSize)
	}
	if c.DefaultTargetMB <= 0 {
		return fmt.Errorf("default target must be positive, got %v", c.DefaultTargetMB)
	}
	if c.Workers <= 0 {
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}
	if time.Duration(c.RequestTimeout) < 0 {
		return fmt.Errorf("request timeout must not be negative, got %v", time.Duration(c.RequestTimeout))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
