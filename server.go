package kbroker

import (
	"bufio"
	"errors"
	"io"
	"net"
	"sync"
	"time"

	"github.com/hashicorp/go-multierror"
)

// Server accepts TCP connections and answers every request frame read from
// them with an ApiVersions response. Each connection is served on its own
// goroutine and may carry any number of requests, one after the other.
type Server struct {
	conf    *Config
	ln      *listener
	metrics *serverMetrics

	lock    sync.Mutex
	conns   map[net.Conn]none
	closed  bool
	closing chan none
	wg      sync.WaitGroup
}

type none struct{}

// NewServer binds addr and returns a Server ready to Serve. A nil conf is
// replaced by NewConfig(). An error wrapping ErrBindFailure is returned when
// the address cannot be bound.
func NewServer(addr string, conf *Config) (*Server, error) {
	if conf == nil {
		conf = NewConfig()
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}

	ln, err := listen(addr, conf)
	if err != nil {
		return nil, err
	}

	Logger.Printf("server/%s listening (kbroker %s)\n", ln.addr(), Version())

	return newServer(ln, conf), nil
}

func newServer(ln *listener, conf *Config) *Server {
	return &Server{
		conf:    conf,
		ln:      ln,
		metrics: newServerMetrics(conf.MetricRegistry),
		conns:   make(map[net.Conn]none),
		closing: make(chan none),
	}
}

// Addr returns the address the server is listening on.
func (s *Server) Addr() net.Addr {
	return s.ln.addr()
}

// Serve runs the accept loop until Close is called, then returns ErrServerClosed.
// A failed accept is logged and retried after a pause; it never ends the loop.
func (s *Server) Serve() error {
	var backoff time.Duration

	for {
		conn, err := s.ln.next()
		if err != nil {
			if s.isClosed() {
				return ErrServerClosed
			}

			s.metrics.acceptErrorRate.Mark(1)
			backoff = nextBackoff(backoff, s.conf.Accept.Backoff, s.conf.Accept.MaxBackoff)
			Logger.Printf("server/%s %v, retrying in %s\n", s.Addr(), Wrap(ErrAcceptFailure, err), backoff)

			select {
			case <-time.After(backoff):
				continue
			case <-s.closing:
				return ErrServerClosed
			}
		}
		backoff = 0

		if !s.track(conn) {
			_ = conn.Close()
			return ErrServerClosed
		}

		go withRecover(func() { s.handleConn(conn) })
	}
}

// Close stops the accept loop, closes every open connection and waits for
// their goroutines to return. Calling Close more than once is a no-op.
func (s *Server) Close() error {
	s.lock.Lock()
	if s.closed {
		s.lock.Unlock()
		return nil
	}
	s.closed = true
	close(s.closing)

	var result *multierror.Error
	if err := s.ln.close(); err != nil {
		result = multierror.Append(result, err)
	}
	for conn := range s.conns {
		if err := conn.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
			result = multierror.Append(result, err)
		}
	}
	s.lock.Unlock()

	s.wg.Wait()
	Logger.Printf("server/%s closed\n", s.Addr())

	return result.ErrorOrNil()
}

func (s *Server) isClosed() bool {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.closed
}

// track registers conn with the server. It reports false once the server is
// closing, in which case the connection must not be served.
func (s *Server) track(conn net.Conn) bool {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.closed {
		return false
	}
	s.conns[conn] = none{}
	s.wg.Add(1)
	s.metrics.connectionRate.Mark(1)
	s.metrics.connectionsOpen.Inc(1)
	return true
}

func (s *Server) untrack(conn net.Conn) {
	s.lock.Lock()
	defer s.lock.Unlock()

	delete(s.conns, conn)
	s.metrics.connectionsOpen.Dec(1)
}

func (s *Server) handleConn(conn net.Conn) {
	peer := conn.RemoteAddr()

	defer s.wg.Done()
	defer func() {
		s.untrack(conn)
		if err := conn.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
			Logger.Printf("server/%s error closing connection from %s: %v\n", s.Addr(), peer, err)
		}
	}()

	DebugLogger.Printf("server/%s accepted connection from %s\n", s.Addr(), peer)

	br := bufio.NewReader(conn)
	for {
		err := s.serveRequest(conn, br)
		if err == nil {
			continue
		}

		switch {
		case err == io.EOF:
			DebugLogger.Printf("server/%s connection from %s closed by peer\n", s.Addr(), peer)
		case s.isClosed():
			DebugLogger.Printf("server/%s connection from %s closed on shutdown\n", s.Addr(), peer)
		default:
			Logger.Printf("server/%s dropping connection from %s: %v\n", s.Addr(), peer, err)
		}
		return
	}
}

// serveRequest runs one request/response exchange: it decodes a frame from r
// and writes the encoded response to conn.
func (s *Server) serveRequest(conn net.Conn, r io.Reader) error {
	if s.conf.Net.ReadTimeout > 0 {
		if err := conn.SetReadDeadline(time.Now().Add(s.conf.Net.ReadTimeout)); err != nil {
			return err
		}
	}

	req, bytesRead, err := decodeRequest(r)
	if err != nil {
		if err != io.EOF {
			s.metrics.decodeErrorRate.Mark(1)
		}
		return err
	}
	requestTime := time.Now()
	s.metrics.updateIncoming(req, bytesRead)

	header := req.Header()
	DebugLogger.Printf("server/%s request from %s: api_key=%d api_version=%d correlation_id=%d size=%d\n",
		s.Addr(), conn.RemoteAddr(), header.APIKey, header.APIVersion, header.CorrelationID, req.Size())

	buf, err := encodeResponse(req)
	if err != nil {
		return err
	}

	if s.conf.Net.WriteTimeout > 0 {
		if err := conn.SetWriteDeadline(time.Now().Add(s.conf.Net.WriteTimeout)); err != nil {
			return Wrap(ErrWriteFailure, err)
		}
	}

	if _, err := conn.Write(buf); err != nil {
		s.metrics.writeErrorRate.Mark(1)
		return Wrap(ErrWriteFailure, err, socketError(conn))
	}
	s.metrics.updateOutgoing(len(buf), time.Since(requestTime))

	DebugLogger.Printf("server/%s response written to %s: correlation_id=%d size=%d\n",
		s.Addr(), conn.RemoteAddr(), header.CorrelationID, len(buf))

	return nil
}
