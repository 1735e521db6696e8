// Package config resolves ukify settings from flags, environment and the
// config file through viper.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/tesh254/ukify/internal/dictionary"
	"github.com/tesh254/ukify/internal/scraper"
)

// Keys shared by the cobra flags, the config file and the environment.
const (
	KeyDictionaryURL = "dictionary-url"
	KeyTimeout       = "timeout"
	KeyCacheSize     = "cache-size"
	KeyDB            = "db"
	KeyHTTPAddress   = "http-address"
	KeyTransport     = "transport"
	KeyFormat        = "format"
)

// EnvPrefix is prepended to environment variable names, e.g. UKIFY_TIMEOUT.
const EnvPrefix = "UKIFY"

// Config holds the resolved settings.
type Config struct {
	DictionaryURL string
	Timeout       time.Duration
	CacheSize     int
	DBPath        string
	HTTPAddress   string
	Transport     string
	Format        string
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		DictionaryURL: dictionary.DefaultURL,
		Timeout:       10 * time.Second,
		CacheSize:     1024,
		DBPath:        DefaultDBPath(),
		HTTPAddress:   "localhost:9014",
		Transport:     "stdio",
		Format:        "html",
	}
}

// DefaultDBPath is $HOME/.ukify_data/ukify.db, or a relative path when the
// home directory is unknown.
func DefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".ukify_data", "ukify.db")
	}
	return filepath.Join(home, ".ukify_data", "ukify.db")
}

// SetDefaults registers the built-in settings on v.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault(KeyDictionaryURL, d.DictionaryURL)
	v.SetDefault(KeyTimeout, d.Timeout)
	v.SetDefault(KeyCacheSize, d.CacheSize)
	v.SetDefault(KeyDB, d.DBPath)
	v.SetDefault(KeyHTTPAddress, d.HTTPAddress)
	v.SetDefault(KeyTransport, d.Transport)
	v.SetDefault(KeyFormat, d.Format)
}

// BindEnv makes every key readable from UKIFY_* environment variables.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
}

// FromViper reads the settings from v.
func FromViper(v *viper.Viper) (*Config, error) {
	c := &Config{
		DictionaryURL: v.GetString(KeyDictionaryURL),
		Timeout:       v.GetDuration(KeyTimeout),
		CacheSize:     v.GetInt(KeyCacheSize),
		DBPath:        v.GetString(KeyDB),
		HTTPAddress:   v.GetString(KeyHTTPAddress),
		Transport:     v.GetString(KeyTransport),
		Format:        v.GetString(KeyFormat),
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks the settings for values the commands cannot use.
func (c *Config) Validate() error {
	if c.DictionaryURL == "" {
		return errors.New("dictionary-url is required")
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %s", c.Timeout)
	}
	if c.CacheSize < 0 {
		return fmt.Errorf("cache-size must not be negative, got %d", c.CacheSize)
	}
	switch c.Transport {
	case "stdio", "http":
	default:
		return fmt.Errorf("unknown transport %q (want stdio or http)", c.Transport)
	}
	return nil
}

// LoaderConfig converts the settings to a dictionary loader configuration.
func (c *Config) LoaderConfig() *dictionary.Config {
	lc := dictionary.DefaultConfig()
	lc.Timeout = c.Timeout
	return lc
}

// ScraperConfig converts the settings to a page scraper configuration.
func (c *Config) ScraperConfig() *scraper.Config {
	sc := scraper.DefaultConfig()
	sc.Timeout = c.Timeout
	return sc
}
