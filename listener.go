package kbroker

import (
	"context"
	"crypto/tls"
	"net"

	"golang.org/x/net/netutil"
)

// listener owns the server's listening socket. Nothing else holds a reference
// to the underlying net.Listener.
type listener struct {
	ln net.Listener
}

// listen binds addr. Failures are reported as ErrBindFailure.
func listen(addr string, conf *Config) (*listener, error) {
	lc := net.ListenConfig{KeepAlive: conf.Net.KeepAlive}

	ln, err := lc.Listen(context.Background(), "tcp", addr)
	if err != nil {
		return nil, Wrap(ErrBindFailure, err)
	}

	if conf.Net.MaxOpenConnections > 0 {
		ln = netutil.LimitListener(ln, conf.Net.MaxOpenConnections)
	}
	if conf.Net.TLS.Enable {
		ln = tls.NewListener(ln, conf.Net.TLS.Config)
	}

	return &listener{ln: ln}, nil
}

// next blocks until the next connection is accepted.
func (l *listener) next() (net.Conn, error) {
	return l.ln.Accept()
}

func (l *listener) addr() net.Addr {
	return l.ln.Addr()
}

func (l *listener) close() error {
	return l.ln.Close()
}
