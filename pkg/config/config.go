// Package config loads rr configuration from defaults, a YAML file, a .env
// file and RR_* environment variables, in that order of precedence (later wins).
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Defaults for the public restaurant API.
const (
	DefaultBaseURL      = "https://restaurant-api.dicoding.dev"
	DefaultRestaurantID = "uewq1zg2zlskfw1e867"
	DefaultReviewer     = "martinn"
	DefaultTimeout      = 10 * time.Second
)

// Config holds everything the binary needs to wire the screen.
type Config struct {
	BaseURL        string        `yaml:"base_url"`
	PictureBaseURL string        `yaml:"picture_base_url"`
	RestaurantID   string        `yaml:"restaurant_id"`
	Reviewer       string        `yaml:"reviewer"`
	Timeout        time.Duration `yaml:"timeout"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
	LogFile   string `yaml:"log_file"`

	JournalPath    string `yaml:"journal_path"`
	DisableJournal bool   `yaml:"disable_journal"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		BaseURL:      DefaultBaseURL,
		RestaurantID: DefaultRestaurantID,
		Reviewer:     DefaultReviewer,
		Timeout:      DefaultTimeout,
		LogLevel:     "info",
		LogFormat:    "text",
		LogFile:      "rr.log",
		JournalPath:  filepath.Join(".rr", "journal.db"),
	}
}

// DefaultPath returns the config file read when no path is given.
func DefaultPath() string {
	return filepath.Join(".rr", "config.yaml")
}

// Load builds the configuration. An empty path reads DefaultPath if it
// exists; an explicit path must exist. A .env file in the working directory
// is loaded into the environment before RR_* variables are read. The result
// is not validated; callers apply their own overrides and then call Validate.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if err := cfg.loadFile(path); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	strs := map[string]*string{
		"RR_BASE_URL":         &c.BaseURL,
		"RR_PICTURE_BASE_URL": &c.PictureBaseURL,
		"RR_RESTAURANT_ID":    &c.RestaurantID,
		"RR_REVIEWER":         &c.Reviewer,
		"RR_LOG_LEVEL":        &c.LogLevel,
		"RR_LOG_FORMAT":       &c.LogFormat,
		"RR_LOG_FILE":         &c.LogFile,
		"RR_JOURNAL_PATH":     &c.JournalPath,
	}
	for key, dst := range strs {
		if v, ok := os.LookupEnv(key); ok {
			*dst = strings.TrimSpace(v)
		}
	}

	if v, ok := os.LookupEnv("RR_TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("RR_TIMEOUT has invalid duration %q: %w", v, err)
		}
		c.Timeout = d
	}
	if v, ok := os.LookupEnv("RR_DISABLE_JOURNAL"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("RR_DISABLE_JOURNAL has invalid bool %q: %w", v, err)
		}
		c.DisableJournal = b
	}
	return nil
}

// Validate checks that the identity values and endpoint are usable.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.RestaurantID) == "" {
		return errors.New("restaurant id is required")
	}
	if strings.TrimSpace(c.Reviewer) == "" {
		return errors.New("reviewer name is required")
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("base URL %q must be an absolute URL", c.BaseURL)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %s", c.Timeout)
	}
	return nil
}

// PictureBase returns the image host, defaulting to the API host.
func (c *Config) PictureBase() string {
	if c.PictureBaseURL != "" {
		return c.PictureBaseURL
	}
	return c.BaseURL
}
