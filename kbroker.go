/*
Package kbroker implements the request/response boundary of a minimal Kafka
broker: it accepts TCP connections, decodes the common request frame and
header, negotiates the ApiVersions version range and writes back a correctly
framed response.

To serve on the conventional broker port:

	srv, err := kbroker.NewServer("127.0.0.1:9092", kbroker.NewConfig())
	if err != nil {
		panic(err)
	}
	defer srv.Close()

	if err := srv.Serve(); !errors.Is(err, kbroker.ErrServerClosed) {
		panic(err)
	}

Every request, whatever its API key, is answered with an ApiVersions body
describing the supported range (v0 to v4) for the requested key slot. A
request version above that range is answered with UNSUPPORTED_VERSION (35).

Metrics

Metrics are exposed through https://github.com/rcrowley/go-metrics library in a local registry.

Server related metrics:

	+----------------------------+------------+--------------------------------------------------+
	| Name                       | Type       | Description                                      |
	+----------------------------+------------+--------------------------------------------------+
	| incoming-byte-rate         | meter      | Bytes/second read from all connections           |
	| request-rate               | meter      | Requests/second decoded from all connections     |
	| request-size               | histogram  | Distribution of the request size in bytes        |
	| outgoing-byte-rate         | meter      | Bytes/second written to all connections          |
	| response-rate              | meter      | Responses/second written to all connections      |
	| response-size              | histogram  | Distribution of the response size in bytes       |
	| request-latency-in-ms      | histogram  | Time from a decoded request to its written reply |
	| unsupported-version-rate   | meter      | Requests/second answered with error code 35      |
	| connection-rate            | meter      | Connections/second accepted                      |
	| connections-open           | counter    | Connections currently being served               |
	| decode-error-rate          | meter      | Connections/second dropped on a bad frame        |
	| write-error-rate           | meter      | Connections/second dropped on a failed write     |
	| accept-error-rate          | meter      | Failed accept attempts/second                    |
	+----------------------------+------------+--------------------------------------------------+
*/
package kbroker

import (
	"io"
	"log"
)

// Logger is the instance of a StdLogger interface that kbroker writes connection
// and accept-loop events to. By default it is set to discard all log messages via
// io.Discard, but you can set it to redirect wherever you want.
var Logger StdLogger = log.New(io.Discard, "[kbroker] ", log.LstdFlags)

// DebugLogger is the instance of a StdLogger that kbroker writes per-request
// details to. It discards by default.
var DebugLogger StdLogger = log.New(io.Discard, "[kbroker] [debug] ", log.LstdFlags)

// StdLogger is used to log error messages.
type StdLogger interface {
	Print(v ...interface{})
	Printf(format string, v ...interface{})
	Println(v ...interface{})
}

// PanicHandler is called for recovering from panics spawned internally to the
// server, one goroutine per connection. The connection is dropped either way;
// the handler decides whether to log or re-panic. If nil, panics propagate.
var PanicHandler func(interface{})

// MaxRequestSize is the maximum size (in bytes) of any request that the server
// will attempt to read. Frames declaring a larger size are rejected before any
// allocation happens.
var MaxRequestSize int32 = 100 * 1024 * 1024
