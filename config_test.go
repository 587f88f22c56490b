//go:build !functional

package kbroker

import (
	"errors"
	"testing"
	"time"

	"github.com/hashicorp/go-multierror"
	assert "github.com/stretchr/testify/require"
)

// NewTestConfig returns a config meant to be used by tests: accept failures are
// retried without a noticeable pause.
func NewTestConfig() *Config {
	config := NewConfig()
	config.Accept.Backoff = time.Millisecond
	config.Accept.MaxBackoff = 10 * time.Millisecond
	return config
}

func TestDefaultConfigValidates(t *testing.T) {
	config := NewConfig()
	if err := config.Validate(); err != nil {
		t.Error(err)
	}
	if config.MetricRegistry == nil {
		t.Error("Expected non nil metrics.MetricRegistry, got nil")
	}
	assert.Zero(t, config.Net.MaxOpenConnections)
	assert.Zero(t, config.Net.ReadTimeout)
	assert.Zero(t, config.Net.WriteTimeout)
}

func TestTestConfigValidates(t *testing.T) {
	assert.NoError(t, NewTestConfig().Validate())
}

func TestNetConfigValidates(t *testing.T) {
	tests := []struct {
		name string
		cfg  func(*Config)
		err  string
	}{
		{
			"MaxOpenConnections",
			func(cfg *Config) {
				cfg.Net.MaxOpenConnections = -1
			},
			"Net.MaxOpenConnections must be >= 0",
		},
		{
			"ReadTimeout",
			func(cfg *Config) {
				cfg.Net.ReadTimeout = -time.Second
			},
			"Net.ReadTimeout must be >= 0",
		},
		{
			"WriteTimeout",
			func(cfg *Config) {
				cfg.Net.WriteTimeout = -time.Second
			},
			"Net.WriteTimeout must be >= 0",
		},
		{
			"TLS",
			func(cfg *Config) {
				cfg.Net.TLS.Enable = true
			},
			"Net.TLS.Config must be set when Net.TLS.Enable is true",
		},
		{
			"Backoff",
			func(cfg *Config) {
				cfg.Accept.Backoff = 0
			},
			"Accept.Backoff must be > 0",
		},
		{
			"MaxBackoff",
			func(cfg *Config) {
				cfg.Accept.MaxBackoff = cfg.Accept.Backoff / 2
			},
			"Accept.MaxBackoff must be >= Accept.Backoff",
		},
		{
			"MetricRegistry",
			func(cfg *Config) {
				cfg.MetricRegistry = nil
			},
			"MetricRegistry must not be nil",
		},
	}

	for i, test := range tests {
		c := NewTestConfig()
		test.cfg(c)
		err := c.Validate()
		var target ConfigurationError
		if !errors.As(err, &target) || string(target) != test.err {
			t.Errorf("[%d]:[%s] Expected %s, Got %s\n", i, test.name, test.err, err)
		}
	}
}

func TestConfigValidateReportsEveryProblem(t *testing.T) {
	c := NewTestConfig()
	c.Net.ReadTimeout = -1
	c.Net.WriteTimeout = -1
	c.MetricRegistry = nil

	err := c.Validate()
	var merr *multierror.Error
	assert.ErrorAs(t, err, &merr)
	assert.Len(t, merr.Errors, 3)
}

func TestNewServerRejectsInvalidConfig(t *testing.T) {
	c := NewTestConfig()
	c.Net.MaxOpenConnections = -5

	srv, err := NewServer("127.0.0.1:0", c)
	assert.Nil(t, srv)
	var target ConfigurationError
	assert.ErrorAs(t, err, &target)
}
