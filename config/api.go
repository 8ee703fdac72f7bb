package config

import (
	"strings"
	"time"
)

// APIConfig contains configuration for the upstream lab data API.
// The console is a thin client: every entity operation is a call against
// this API, so the base URL and timeout here govern all data traffic.
type APIConfig struct {
	// BaseURL is the root of the lab API, without the /api path segment.
	BaseURL string `env:"BASE_URL" envDefault:"http://localhost:8000"`

	// Timeout is the fixed per-request timeout. There is no retry policy;
	// a request that exceeds this fails outright.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"10s"`
}

// Sanitize applies guardrails to API configuration values.
func (a *APIConfig) Sanitize() {
	a.BaseURL = strings.TrimRight(strings.TrimSpace(a.BaseURL), "/")
	if a.Timeout <= 0 {
		a.Timeout = 10 * time.Second
	}
}
