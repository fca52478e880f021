package client

// This file defines functional options that configure the Client during
// construction.

import (
	"fmt"
	"net/http"
	"time"
)

// Option configures a Client during construction in New.
//
// Options are applied in order before the auth, retry and metrics wrappers
// are installed, so WithHTTPClient should come before WithDebugLogging when
// both are used.
type Option func(*Client) error

// WithHTTPTimeout sets the per-request deadline. The value must be greater
// than zero.
func WithHTTPTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return fmt.Errorf("http timeout must be > 0")
		}
		c.http.Timeout = d
		return nil
	}
}

// WithHTTPClient replaces the underlying http.Client. The client is copied so
// the caller's instance is never mutated.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) error {
		if hc == nil {
			return fmt.Errorf("http client must not be nil")
		}
		cp := *hc
		if cp.Timeout == 0 {
			cp.Timeout = c.http.Timeout
		}
		c.http = &cp
		return nil
	}
}

// WithDebugLogging wraps the client's transport so each request/response is
// logged when enabled is true. Dumps include bodies, credentials included.
func WithDebugLogging(enabled bool) Option {
	return func(c *Client) error {
		if enabled {
			if _, already := c.http.Transport.(*debugTransport); !already {
				c.http.Transport = &debugTransport{base: c.http.Transport}
			}
		}
		return nil
	}
}

// WithRetry allows up to attempts tries per request for recoverable failures
// (network errors, 408, 429, 5xx), waiting with exponential backoff starting
// at initial. attempts == 1 disables retrying, which is the default.
func WithRetry(attempts int, initial time.Duration) Option {
	return func(c *Client) error {
		if attempts < 1 {
			return fmt.Errorf("retry attempts must be >= 1")
		}
		if initial <= 0 {
			return fmt.Errorf("retry interval must be > 0")
		}
		c.retry.attempts = attempts
		c.retry.initial = initial
		return nil
	}
}

// WithRegistry makes the client record identifiers into r instead of a
// private registry, so several clients of one run can share it.
func WithRegistry(r *Registry) Option {
	return func(c *Client) error {
		if r == nil {
			return fmt.Errorf("registry must not be nil")
		}
		c.registry = r
		return nil
	}
}

// WithAccessToken starts the client already authenticated with token.
func WithAccessToken(token string) Option {
	return func(c *Client) error {
		if token == "" {
			return fmt.Errorf("access token must not be empty")
		}
		c.tokens.set(token, "")
		return nil
	}
}
