package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestNewConfig(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	SetDefaults()
	viper.Set("api-key", "abc123")
	viper.Set("email", "someone@example.org")
	viper.Set("rate-limit", 7)
	viper.Set("cache.ttl-hours", 48)

	c := NewConfig()

	if c.APIKey != "abc123" || c.Email != "someone@example.org" {
		t.Errorf("identity settings = %q, %q", c.APIKey, c.Email)
	}
	if c.Tool != "ncbi-client" {
		t.Errorf("Tool = %q, want default", c.Tool)
	}
	if c.RateLimit != 7 {
		t.Errorf("RateLimit = %d", c.RateLimit)
	}
	if !c.Cache.Enabled || c.Cache.Dir == "" {
		t.Errorf("cache settings = %+v", c.Cache)
	}
	if c.CacheTTL() != 48*time.Hour {
		t.Errorf("CacheTTL() = %v", c.CacheTTL())
	}
}

func TestNewConfig_envFallback(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	SetDefaults()
	t.Setenv("NCBI_API_KEY", "env-key")
	t.Setenv("NCBI_EMAIL", "env@example.org")

	c := NewConfig()

	if c.APIKey != "env-key" {
		t.Errorf("APIKey = %q, want environment fallback", c.APIKey)
	}
	if c.Email != "env@example.org" {
		t.Errorf("Email = %q, want environment fallback", c.Email)
	}
}

func TestConfig_CachePath(t *testing.T) {
	c := Config{Cache: CacheConfig{Dir: "/tmp/x"}}
	if got := c.CachePath(); got != "/tmp/x/responses.db" {
		t.Errorf("CachePath() = %q", got)
	}
}
