// Package config is for app wide settings that are unmarshalled
// from Viper (see: /cmd)
package config

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// CacheConfig is settings for the local response cache
type CacheConfig struct {
	// whether the response cache is consulted at all
	Enabled bool `mapstructure:"enabled"`

	// directory holding the cache database file
	Dir string `mapstructure:"dir"`

	// hours a cached response stays fresh
	TTLHours int `mapstructure:"ttl-hours"`
}

// Config is the root-level settings struct and is a mix
// of settings available in .ncbi.yaml, the environment
// (NCBI_API_KEY, NCBI_EMAIL) and command line arguments
type Config struct {
	// NCBI API key; raises the rate allowance from 3 to 10 requests/second
	APIKey string `mapstructure:"api-key"`

	// contact email sent with every E-utilities request
	Email string `mapstructure:"email"`

	// tool identifier sent with every E-utilities request
	Tool string `mapstructure:"tool"`

	// requests per second; 0 means derive from the API key
	RateLimit int `mapstructure:"rate-limit"`

	// whether to log debug output
	Verbose bool `mapstructure:"verbose"`

	// response cache settings
	Cache CacheConfig `mapstructure:"cache"`
}

// SetDefaults registers every setting's fallback value with Viper.
// Called once from cmd before the config file is read.
func SetDefaults() {
	viper.SetDefault("tool", "ncbi-client")
	viper.SetDefault("rate-limit", 0)
	viper.SetDefault("cache.enabled", true)
	viper.SetDefault("cache.dir", defaultCacheDir())
	viper.SetDefault("cache.ttl-hours", 24)
}

// NewConfig returns a new Config struct populated by
// Viper settings (either from the local .ncbi.yaml)
// and/or command line arguments
func NewConfig() Config {
	var c Config

	err := viper.Unmarshal(&c)
	if err != nil {
		log.Fatalf("unable to decode into struct, %v", err)
	}

	if c.APIKey == "" {
		c.APIKey = os.Getenv("NCBI_API_KEY")
	}
	if c.Email == "" {
		c.Email = os.Getenv("NCBI_EMAIL")
	}

	return c
}

// CacheTTL returns the cache freshness window as a duration.
func (c Config) CacheTTL() time.Duration {
	return time.Duration(c.Cache.TTLHours) * time.Hour
}

// CachePath returns the path of the cache database file.
func (c Config) CachePath() string {
	return filepath.Join(c.Cache.Dir, "responses.db")
}

func defaultCacheDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "ncbi-cache")
	}
	return filepath.Join(home, ".ncbi", "cache")
}
