package tls

import (
	"crypto/tls"
	"errors"
)

// NewServerConfig loads the key pair a broker presents on TLS connections.
// Both files are required.
func NewServerConfig(serverCert, serverKey string) (*tls.Config, error) {
	if serverCert == "" || serverKey == "" {
		return nil, errors.New("tls: both a certificate and a key file are required")
	}

	tlsConfig := tls.Config{
		MinVersion: tls.VersionTLS12,
	}

	cert, err := tls.LoadX509KeyPair(serverCert, serverKey)
	if err != nil {
		return nil, err
	}
	tlsConfig.Certificates = []tls.Certificate{cert}

	return &tlsConfig, nil
}
