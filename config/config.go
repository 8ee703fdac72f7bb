package config

import (
	"os"
	"strings"
)

// AppConfig is the main application configuration struct that composes
// domain-specific configuration from separate files.
//
// Configuration is loaded from environment variables using the
// github.com/caarlos0/env library. See individual domain config
// files for details on available environment variables:
//   - api.go: upstream lab API configuration
//   - http.go: console HTTP server configuration
//   - redis.go: Redis credential storage configuration
//   - auth.go: session and login configuration
type AppConfig struct {
	// IsDev controls development mode behavior (template reloading, memory
	// credential storage when Redis is disabled, etc.)
	// Set DEV=true or NODE_ENV=development for development mode.
	IsDev bool `env:"DEV" envDefault:"false"`

	// Upstream lab API configuration
	API APIConfig `envPrefix:"API_"`

	// Console HTTP server configuration
	HTTP HTTPConfig

	// Redis credential storage configuration
	Redis RedisConfig `envPrefix:"REDIS_"`

	// Session and login configuration
	Auth AuthConfig `envPrefix:"AUTH_"`
}

// Sanitize applies guardrails to configuration values loaded from env.
// This should be called after loading configuration from environment variables.
func (c *AppConfig) Sanitize() {
	c.API.Sanitize()
	c.Auth.Sanitize()

	// Check NODE_ENV for dev mode
	c.detectDevMode()
}

// detectDevMode checks both DEV and NODE_ENV environment variables.
// This is called by Sanitize() to ensure IsDev is set correctly.
// NODE_ENV is checked as a fallback (common in frontend tooling).
func (c *AppConfig) detectDevMode() {
	if !c.IsDev {
		nodeEnv := strings.ToLower(os.Getenv("NODE_ENV"))
		c.IsDev = nodeEnv == "development" || nodeEnv == "dev"
	}
}
