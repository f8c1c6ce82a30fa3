package auth

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds JWT signing and verification parameters.
type Config struct {
	Enabled  bool   `toml:"enabled"`
	Secret   string `toml:"secret"`
	Issuer   string `toml:"issuer"`
	Audience string `toml:"audience"`
	TokenTTL string `toml:"token_ttl"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	Enabled  string
	Secret   string
	Issuer   string
	Audience string
	TokenTTL string
}

// TokenTTLDuration returns TokenTTL as a time.Duration.
func (c *Config) TokenTTLDuration() time.Duration {
	d, _ := time.ParseDuration(c.TokenTTL)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge overwrites non-zero fields from overlay. Enabled always applies.
func (c *Config) Merge(overlay *Config) {
	c.Enabled = overlay.Enabled

	if overlay.Secret != "" {
		c.Secret = overlay.Secret
	}
	if overlay.Issuer != "" {
		c.Issuer = overlay.Issuer
	}
	if overlay.Audience != "" {
		c.Audience = overlay.Audience
	}
	if overlay.TokenTTL != "" {
		c.TokenTTL = overlay.TokenTTL
	}
}

func (c *Config) loadDefaults() {
	if c.Issuer == "" {
		c.Issuer = "seriedex"
	}
	if c.Audience == "" {
		c.Audience = "seriedex-api"
	}
	if c.TokenTTL == "" {
		c.TokenTTL = "1h"
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.Enabled != "" {
		if v := os.Getenv(env.Enabled); v != "" {
			if enabled, err := strconv.ParseBool(v); err == nil {
				c.Enabled = enabled
			}
		}
	}
	if env.Secret != "" {
		if v := os.Getenv(env.Secret); v != "" {
			c.Secret = v
		}
	}
	if env.Issuer != "" {
		if v := os.Getenv(env.Issuer); v != "" {
			c.Issuer = v
		}
	}
	if env.Audience != "" {
		if v := os.Getenv(env.Audience); v != "" {
			c.Audience = v
		}
	}
	if env.TokenTTL != "" {
		if v := os.Getenv(env.TokenTTL); v != "" {
			c.TokenTTL = v
		}
	}
}

func (c *Config) validate() error {
	if c.Enabled && c.Secret == "" {
		return fmt.Errorf("secret required when auth is enabled")
	}
	if _, err := time.ParseDuration(c.TokenTTL); err != nil {
		return fmt.Errorf("invalid token_ttl: %w", err)
	}
	return nil
}
