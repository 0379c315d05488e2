package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const DefaultDatabaseURL = "postgres://localhost:5432/exercise-track?sslmode=disable"

type Config struct {
	Port        int
	DatabaseURL string

	LogLevel  string
	LogFormat string

	// StoreTimeout bounds each request's store calls.
	StoreTimeout time.Duration
	// LegacyStatus answers validation failures with 200 text/plain.
	LegacyStatus bool
}

// fileConfig is the YAML shape. Zero values mean "not set".
type fileConfig struct {
	Port                int    `yaml:"port"`
	DatabaseURL         string `yaml:"databaseURL"`
	LogLevel            string `yaml:"logLevel"`
	LogFormat           string `yaml:"logFormat"`
	StoreTimeoutSeconds int    `yaml:"storeTimeoutSeconds"`
	LegacyStatus        *bool  `yaml:"legacyStatus"`
}

// FileError is a config file that could not be read or parsed.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string { return e.Path + ": " + e.Err.Error() }

func (e *FileError) Unwrap() error { return e.Err }

func Default() Config {
	return Config{
		Port:         3000,
		DatabaseURL:  DefaultDatabaseURL,
		LogLevel:     "info",
		LogFormat:    "text",
		StoreTimeout: 5 * time.Second,
	}
}

func FromEnv() (Config, error) {
	return Load("")
}

// Load builds a Config from defaults, then the YAML file at path (if
// path is non-empty), then the environment.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.applyFile(path); err != nil {
			return Config{}, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) applyFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return &FileError{Path: path, Err: err}
	}
	var fc fileConfig
	if err := yaml.Unmarshal(b, &fc); err != nil {
		return &FileError{Path: path, Err: err}
	}

	if fc.Port != 0 {
		c.Port = fc.Port
	}
	if fc.DatabaseURL != "" {
		c.DatabaseURL = fc.DatabaseURL
	}
	if fc.LogLevel != "" {
		c.LogLevel = fc.LogLevel
	}
	if fc.LogFormat != "" {
		c.LogFormat = fc.LogFormat
	}
	if fc.StoreTimeoutSeconds != 0 {
		c.StoreTimeout = time.Duration(fc.StoreTimeoutSeconds) * time.Second
	}
	if fc.LegacyStatus != nil {
		c.LegacyStatus = *fc.LegacyStatus
	}
	return nil
}

func (c *Config) applyEnv() error {
	// MLAB_URI is the historical name of the store URL
	c.DatabaseURL = getenv("DATABASE_URL", getenv("MLAB_URI", c.DatabaseURL))
	c.LogLevel = getenv("LOG_LEVEL", c.LogLevel)
	c.LogFormat = getenv("LOG_FORMAT", c.LogFormat)

	if v := getenv("PORT", ""); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT %q", v)
		}
		c.Port = port
	}
	if v := getenv("STORE_TIMEOUT", ""); v != "" {
		sec, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid STORE_TIMEOUT %q", v)
		}
		c.StoreTimeout = time.Duration(sec) * time.Second
	}
	if v := getenv("LEGACY_STATUS", ""); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid LEGACY_STATUS %q", v)
		}
		c.LegacyStatus = b
	}
	return nil
}

func (c Config) Validate() error {
	var errs []error
	if c.Port < 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port %d is out of range", c.Port))
	}
	if c.DatabaseURL == "" {
		errs = append(errs, errors.New("database URL is required"))
	}
	if c.StoreTimeout < time.Second {
		errs = append(errs, fmt.Errorf("store timeout %s must be at least 1s", c.StoreTimeout))
	}
	return errors.Join(errs...)
}

// ListenAddr is the address the HTTP server binds.
func (c Config) ListenAddr() string {
	return ":" + strconv.Itoa(c.Port)
}

func getenv(k, def string) string {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	return v
}
