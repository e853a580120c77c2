package config

import (
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	minSessionMaxAge = 24 * time.Hour
	maxSessionMaxAge = 7 * 24 * time.Hour
)

type UpstreamConfig struct {
	BaseURL string        `env:"UPSTREAM_API_URL" envDefault:"http://localhost:3000/api"`
	Timeout time.Duration `env:"UPSTREAM_TIMEOUT" envDefault:"0s"`
}

type SessionConfig struct {
	MaxAge            time.Duration `env:"SESSION_MAX_AGE" envDefault:"24h"`
	ProtectedPrefixes []string      `env:"PROTECTED_PREFIXES" envDefault:"/dashboard,/profile,/admin"`
	LoginPath         string        `env:"LOGIN_PATH" envDefault:"/login"`
}

type RateLimitConfig struct {
	AuthMaxRequests int           `env:"AUTH_RATE_LIMIT" envDefault:"20"`
	AuthWindow      time.Duration `env:"AUTH_RATE_WINDOW" envDefault:"1m"`
}

type ObservabilityConfig struct {
	ServiceName  string `env:"SERVICE_NAME" envDefault:"pet-portal"`
	MetricsAddr  string `env:"METRICS_ADDR" envDefault:":9092"`
	PprofAddr    string `env:"PPROF_ADDR" envDefault:":6060"`
	OTLPEndpoint string `env:"OTLP_ENDPOINT"`
}

type Config struct {
	ServerPort    string `env:"SERVER_PORT" envDefault:"8091"`
	Env           string `env:"APP_ENV" envDefault:"development"`
	LogLevel      string `env:"LOG_LEVEL" envDefault:"info"`
	// TrustedProxies lists the IPs or CIDRs whose X-Forwarded-For is honoured.
	// Empty means the client IP is always the connection's remote address.
	TrustedProxies []string `env:"TRUSTED_PROXIES"`
	Upstream      UpstreamConfig
	Session       SessionConfig
	RateLimit     RateLimitConfig
	Observability ObservabilityConfig
}

// Load reads the configuration from the environment and validates it.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the loaded values and normalises the session settings.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Upstream.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("UPSTREAM_API_URL must be an absolute URL, got %q", c.Upstream.BaseURL)
	}
	c.Upstream.BaseURL = strings.TrimSuffix(c.Upstream.BaseURL, "/")

	prefixes := make([]string, 0, len(c.Session.ProtectedPrefixes))
	for _, p := range c.Session.ProtectedPrefixes {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if !strings.HasPrefix(p, "/") {
			return fmt.Errorf("protected prefix %q must start with /", p)
		}
		prefixes = append(prefixes, p)
	}
	c.Session.ProtectedPrefixes = prefixes

	if !strings.HasPrefix(c.Session.LoginPath, "/") {
		return fmt.Errorf("LOGIN_PATH must start with /, got %q", c.Session.LoginPath)
	}

	proxies := make([]string, 0, len(c.TrustedProxies))
	for _, p := range c.TrustedProxies {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if net.ParseIP(p) == nil {
			if _, _, err := net.ParseCIDR(p); err != nil {
				return fmt.Errorf("trusted proxy %q is neither an IP nor a CIDR", p)
			}
		}
		proxies = append(proxies, p)
	}
	if len(proxies) == 0 {
		proxies = nil
	}
	c.TrustedProxies = proxies

	c.Session.MaxAge = clampDuration(c.Session.MaxAge, minSessionMaxAge, maxSessionMaxAge)
	return nil
}

// IsProduction reports whether cookies must be marked Secure.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

func clampDuration(d, lo, hi time.Duration) time.Duration {
	if d < lo {
		return lo
	}
	if d > hi {
		return hi
	}
	return d
}
