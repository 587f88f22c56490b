package kbroker

import (
	"crypto/tls"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/rcrowley/go-metrics"
)

// Config is used to pass multiple configuration options to NewServer.
// The bind address itself is not part of it: NewServer receives an already
// resolved host:port string.
type Config struct {
	// Net is the namespace for network-level properties used by the server.
	Net struct {
		// How many connections may be served at once. Further connections wait
		// in the kernel backlog until one is released. Zero means no limit
		// (default 0).
		MaxOpenConnections int

		// How long to wait for the next complete request frame on an open
		// connection before dropping it. Zero disables the deadline, which is
		// the default: an idle peer keeps its connection open forever.
		ReadTimeout time.Duration
		// How long to wait for a response frame to be written (default 0, no
		// deadline).
		WriteTimeout time.Duration

		// KeepAlive specifies the keep-alive period for accepted connections.
		// If zero, keep-alives are enabled with the operating system default
		// (default 0). A negative value disables keep-alives.
		KeepAlive time.Duration

		TLS struct {
			// Whether or not to use TLS on accepted connections (defaults to
			// false).
			Enable bool
			// The TLS configuration to use for secure connections if enabled.
			// It must carry the server certificate.
			Config *tls.Config
		}
	}

	// Accept is the namespace for the behaviour of the accept loop.
	Accept struct {
		// After a failed accept the loop pauses before trying again. The pause
		// starts at Backoff and doubles on every consecutive failure, up to
		// MaxBackoff (defaults 5ms and 1s).
		Backoff    time.Duration
		MaxBackoff time.Duration
	}

	// MetricRegistry is the registry the server records its metrics in.
	// Defaults to a private registry created by NewConfig. See the package
	// documentation for the list of metrics.
	MetricRegistry metrics.Registry
}

// NewConfig returns a new configuration instance with sane defaults.
func NewConfig() *Config {
	c := &Config{}

	c.Accept.Backoff = 5 * time.Millisecond
	c.Accept.MaxBackoff = 1 * time.Second

	c.MetricRegistry = metrics.NewRegistry()

	return c
}

// Validate checks a Config instance. It will return a ConfigurationError for
// each invalid setting, joined into a single error, or nil if the config is
// valid.
func (c *Config) Validate() error {
	var result *multierror.Error

	if c.Net.MaxOpenConnections < 0 {
		result = multierror.Append(result, ConfigurationError("Net.MaxOpenConnections must be >= 0"))
	}
	if c.Net.ReadTimeout < 0 {
		result = multierror.Append(result, ConfigurationError("Net.ReadTimeout must be >= 0"))
	}
	if c.Net.WriteTimeout < 0 {
		result = multierror.Append(result, ConfigurationError("Net.WriteTimeout must be >= 0"))
	}
	if c.Net.TLS.Enable && c.Net.TLS.Config == nil {
		result = multierror.Append(result, ConfigurationError("Net.TLS.Config must be set when Net.TLS.Enable is true"))
	}

	switch {
	case c.Accept.Backoff <= 0:
		result = multierror.Append(result, ConfigurationError("Accept.Backoff must be > 0"))
	case c.Accept.MaxBackoff < c.Accept.Backoff:
		result = multierror.Append(result, ConfigurationError("Accept.MaxBackoff must be >= Accept.Backoff"))
	}

	if c.MetricRegistry == nil {
		result = multierror.Append(result, ConfigurationError("MetricRegistry must not be nil"))
	}

	return result.ErrorOrNil()
}
