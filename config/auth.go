package config

import "time"

// AuthConfig groups session and login related configuration.
type AuthConfig struct {
	// StoragePrefix namespaces the durable credential keys in Redis so
	// multiple console instances can share one Redis.
	StoragePrefix string `env:"STORAGE_PREFIX" envDefault:"labconsole:"`

	// LoginRateLimit is the number of login attempts allowed per source IP
	// within LoginRateWindow. Zero disables login throttling.
	LoginRateLimit int `env:"LOGIN_RATE_LIMIT" envDefault:"10"`

	// LoginRateWindow is the sliding window for login rate limiting.
	LoginRateWindow time.Duration `env:"LOGIN_RATE_WINDOW" envDefault:"1m"`
}

// Sanitize applies guardrails to auth configuration values.
func (a *AuthConfig) Sanitize() {
	if a.StoragePrefix == "" {
		a.StoragePrefix = "labconsole:"
	}
	if a.LoginRateLimit < 0 {
		a.LoginRateLimit = 0
	}
	if a.LoginRateWindow <= 0 {
		a.LoginRateWindow = time.Minute
	}
}
