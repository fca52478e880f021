package config

import (
	"bytes"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsetEnv removes the prefixed variables, restoring them when the test ends.
func unsetEnv(t *testing.T, names ...string) {
	t.Helper()
	for _, n := range names {
		k := Prefix + "_" + n
		t.Setenv(k, "")
		_ = os.Unsetenv(k)
	}
}

func TestConfigLoad_Defaults(t *testing.T) {
	unsetEnv(t, "BASE_URL", "ACCOUNT_DOMAIN", "ACCOUNTS_FILE", "HTTP_TIMEOUT", "RETRIES", "BUILDING_SEARCH")

	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000", cfg.BaseURL)
	assert.Equal(t, "eurekanet.com", cfg.AccountDomain)
	assert.Equal(t, "COMPTES_EUREKANET.xlsx", cfg.AccountsFile)
	assert.Equal(t, "Eureka", cfg.BuildingSearch)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 1, cfg.Retries)
	require.NoError(t, cfg.Validate())
}

func TestConfigLoad_EnvOverride(t *testing.T) {
	t.Setenv("ERKSEED_BASE_URL", "https://api.example.org")
	t.Setenv("ERKSEED_EMAIL", "admin@example.org")
	t.Setenv("ERKSEED_HTTP_TIMEOUT", "5s")
	t.Setenv("ERKSEED_RETRIES", "3")
	t.Setenv("ERKSEED_DEBUG", "true")
	unsetEnv(t, "RETRY_INTERVAL")

	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.org", cfg.BaseURL)
	assert.Equal(t, "admin@example.org", cfg.Email)
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 3, cfg.Retries)
	assert.True(t, cfg.Debug)
	assert.Equal(t, 500*time.Millisecond, cfg.RetryInterval)
}

func TestConfigLoad_IgnoresUnprefixedVariables(t *testing.T) {
	unsetEnv(t, "DEBUG", "EMAIL", "PASSWORD", "RETRIES")
	t.Setenv("DEBUG", "yes")
	t.Setenv("EMAIL", "someone@example.org")
	t.Setenv("PASSWORD", "hunter2")
	t.Setenv("RETRIES", "many")

	cfg, err := New()
	require.NoError(t, err)
	assert.False(t, cfg.Debug)
	assert.Empty(t, cfg.Email)
	assert.Empty(t, cfg.Password)
	assert.Equal(t, 1, cfg.Retries)
}

func TestConfigLoad_BadValue(t *testing.T) {
	t.Setenv("ERKSEED_RETRIES", "many")
	_, err := New()
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	cases := map[string]func(*Config){
		"base url": func(c *Config) { c.BaseURL = "localhost" },
		"timeout":  func(c *Config) { c.HTTPTimeout = 0 },
		"retries":  func(c *Config) { c.Retries = 0 },
		"domain":   func(c *Config) { c.AccountDomain = "" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := NewForTesting()
			require.NoError(t, cfg.Validate())
			mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestUsageListsVariables(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Usage(&buf))
	assert.Contains(t, buf.String(), "ERKSEED_BASE_URL")
	assert.Contains(t, buf.String(), "ERKSEED_ACCOUNTS_FILE")
	assert.Contains(t, buf.String(), "ERKSEED_HTTP_TIMEOUT")
	assert.Contains(t, buf.String(), "ERKSEED_RETRY_INTERVAL")
}
