package main

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/kbroker/kbroker"
	"github.com/kbroker/kbroker/tools/tls"
)

// settings is everything the broker process can be configured with. Values
// come from defaults, then the optional TOML file, then explicitly set flags.
type settings struct {
	Host            string        `toml:"host"`
	Port            int           `toml:"port"`
	MaxConnections  int           `toml:"max_connections"`
	ReadTimeout     time.Duration `toml:"read_timeout"`
	WriteTimeout    time.Duration `toml:"write_timeout"`
	KeepAlive       time.Duration `toml:"keep_alive"`
	MetricsInterval time.Duration `toml:"metrics_interval"`
	Verbose         bool          `toml:"verbose"`
	TLSCert         string        `toml:"tls_cert"`
	TLSKey          string        `toml:"tls_key"`
}

func defaultSettings() settings {
	return settings{
		Host: "127.0.0.1",
		Port: 9092,
	}
}

// loadSettings returns the defaults overlaid with the TOML file at path. An
// empty path returns the defaults. Unknown keys in the file are an error.
func loadSettings(path string) (settings, error) {
	s := defaultSettings()
	if path == "" {
		return s, nil
	}

	md, err := toml.DecodeFile(path, &s)
	if err != nil {
		return settings{}, fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, key := range undecoded {
			keys[i] = key.String()
		}
		return settings{}, fmt.Errorf("config parse failed (%s): unknown keys %s", path, strings.Join(keys, ", "))
	}

	return s, nil
}

func (s settings) validate() error {
	if strings.TrimSpace(s.Host) == "" {
		return fmt.Errorf("host must not be empty")
	}
	if s.Port < 1 || s.Port > 65535 {
		return fmt.Errorf("port %d out of range", s.Port)
	}
	if s.MetricsInterval < 0 {
		return fmt.Errorf("metrics interval must be >= 0")
	}
	if (s.TLSCert == "") != (s.TLSKey == "") {
		return fmt.Errorf("tls cert and tls key must be given together")
	}
	return nil
}

// addr resolves host and port into the address string the server binds.
func (s settings) addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

func (s settings) brokerConfig() (*kbroker.Config, error) {
	conf := kbroker.NewConfig()
	conf.Net.MaxOpenConnections = s.MaxConnections
	conf.Net.ReadTimeout = s.ReadTimeout
	conf.Net.WriteTimeout = s.WriteTimeout
	conf.Net.KeepAlive = s.KeepAlive

	if s.TLSCert != "" {
		tlsConfig, err := tls.NewServerConfig(s.TLSCert, s.TLSKey)
		if err != nil {
			return nil, fmt.Errorf("tls setup failed: %w", err)
		}
		conf.Net.TLS.Enable = true
		conf.Net.TLS.Config = tlsConfig
	}

	return conf, nil
}
