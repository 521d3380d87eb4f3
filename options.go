package ohmage

// This file defines functional options that configure the Client during
// construction. Keeping them in a standalone file makes it easy to discover
// all available knobs at a glance.

import (
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Option configures a Client during construction in New.
// Options must be deterministic and side-effect free.
type Option func(*Client) error

// WithHTTPTimeout sets the underlying http.Client Timeout used by the SDK.
//
// Prefer per-request context deadlines where possible; this timeout is a
// coarse safety net bounding the total time spent on a single HTTP request.
// The value must be greater than zero.
func WithHTTPTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return fmt.Errorf("http timeout must be > 0")
		}
		c.http.Timeout = d
		return nil
	}
}

// WithHTTPClient replaces the underlying http.Client, e.g. to supply custom
// TLS settings. Later transport-wrapping options apply on top of it.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) error {
		if hc == nil {
			return fmt.Errorf("http client must not be nil")
		}
		c.http = hc
		return nil
	}
}

// WithAppPrefix overrides the path prefix under which the server mounts its
// API (default "/app"). Must start with "/".
func WithAppPrefix(prefix string) Option {
	return func(c *Client) error {
		if !strings.HasPrefix(prefix, "/") {
			return fmt.Errorf("app prefix must start with %q", "/")
		}
		c.appPrefix = prefix
		return nil
	}
}

// WithClientName sets the short client description sent with every request
// as the "client" parameter.
func WithClientName(name string) Option {
	return func(c *Client) error {
		if name == "" {
			return fmt.Errorf("client name must not be empty")
		}
		c.clientName = name
		return nil
	}
}

// WithCredentials seeds the handle with credentials obtained out of band,
// making authenticated requests possible without a prior Login.
func WithCredentials(creds Credentials) Option {
	return func(c *Client) error {
		c.creds = creds
		return nil
	}
}

// WithDebugLogging wraps the client's transport so each request/response is
// dumped to the log when enabled is true. Do not enable in production: the
// dumps include credentials.
func WithDebugLogging(enabled bool) Option {
	return func(c *Client) error {
		if enabled {
			c.http.Transport = &debugTransport{base: c.http.Transport}
		}
		return nil
	}
}
