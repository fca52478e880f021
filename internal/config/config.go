// Package config loads the seeder settings from ERKSEED_ environment
// variables. Only prefixed names are read: a shell's own DEBUG or EMAIL never
// leaks in. Command-line flags override these values.
package config

import (
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

// Prefix is prepended to every variable name, e.g. ERKSEED_BASE_URL.
const Prefix = "ERKSEED"

// Config holds the settings of one seeding run.
type Config struct {
	// Remote API
	BaseURL string `split_words:"true" default:"http://localhost:8000"`

	// Admin credentials used to authenticate
	Email    string `split_words:"true" default:""`
	Password string `split_words:"true" default:""`

	// Tenant accounts are <room id>@AccountDomain
	AccountDomain  string `split_words:"true" default:"eurekanet.com"`
	AccountsFile   string `split_words:"true" default:"COMPTES_EUREKANET.xlsx"`
	BuildingSearch string `split_words:"true" default:"Eureka"`

	// HTTP behaviour
	HTTPTimeout   time.Duration `split_words:"true" default:"30s"`
	Retries       int           `split_words:"true" default:"1"`
	RetryInterval time.Duration `split_words:"true" default:"500ms"`

	Debug       bool   `split_words:"true" default:"false"`
	MetricsFile string `split_words:"true" default:""`
}

// Validate checks the values a run cannot start without.
func (c *Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid BASE_URL %q", c.BaseURL)
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be > 0, got %s", c.HTTPTimeout)
	}
	if c.Retries < 1 {
		return fmt.Errorf("RETRIES must be >= 1, got %d", c.Retries)
	}
	if c.AccountDomain == "" {
		return fmt.Errorf("ACCOUNT_DOMAIN must not be empty")
	}
	return nil
}

// New creates a new Config by parsing environment variables.
// Example: ERKSEED_BASE_URL, ERKSEED_EMAIL, ERKSEED_HTTP_TIMEOUT
func New() (*Config, error) {
	var cfg Config

	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	log.Debug().
		Str("base_url", cfg.BaseURL).
		Str("email", cfg.Email).
		Bool("password_present", cfg.Password != "").
		Str("account_domain", cfg.AccountDomain).
		Str("accounts_file", cfg.AccountsFile).
		Str("building_search", cfg.BuildingSearch).
		Dur("http_timeout", cfg.HTTPTimeout).
		Int("retries", cfg.Retries).
		Msg("Configuration loaded")

	return &cfg, nil
}

// NewForTesting returns the defaults without reading the environment.
func NewForTesting() *Config {
	return &Config{
		BaseURL:        "http://localhost:8000",
		Email:          "admin@example.com",
		Password:       "secret",
		AccountDomain:  "eurekanet.com",
		AccountsFile:   "COMPTES_EUREKANET.xlsx",
		BuildingSearch: "Eureka",
		HTTPTimeout:    30 * time.Second,
		Retries:        1,
		RetryInterval:  500 * time.Millisecond,
	}
}

// Usage writes a table of the recognised environment variables to w.
func Usage(w io.Writer) error {
	return envconfig.Usagef(Prefix, &Config{}, w, envconfig.DefaultTableFormat)
}
