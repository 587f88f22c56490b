package kbroker

import (
	"errors"
	"fmt"
)

// ErrBindFailure is returned by NewServer when the listening socket cannot be
// created or bound.
var ErrBindFailure = errors.New("kafka: failed to bind listener")

// ErrAcceptFailure is logged when a single accept attempt fails. The accept loop
// carries on with the next connection.
var ErrAcceptFailure = errors.New("kafka: failed to accept connection")

// ErrTruncatedFrame is returned when the stream ends before all bytes of a
// fixed-width field or of the declared frame have arrived.
var ErrTruncatedFrame = errors.New("kafka: stream ended in the middle of a frame")

// ErrWriteFailure is logged when a response frame could not be fully written.
// The connection is dropped and the write is not retried.
var ErrWriteFailure = errors.New("kafka: failed to write response")

// ErrServerClosed is returned by Server.Serve once Server.Close has been called.
var ErrServerClosed = errors.New("kafka: server closed")

// ErrInsufficientData is returned when decoding and the packet is truncated.
var ErrInsufficientData = errors.New("kafka: insufficient data to decode packet, more bytes expected")

// PacketEncodingError is returned from a failure while encoding a Kafka packet.
type PacketEncodingError struct {
	Info string
}

func (err PacketEncodingError) Error() string {
	return fmt.Sprintf("kafka: error encoding packet: %s", err.Info)
}

// PacketDecodingError is returned when there was an error (other than truncated data)
// decoding a request frame. This covers size fields that cannot hold a request
// header or that exceed MaxRequestSize.
type PacketDecodingError struct {
	Info string
}

func (err PacketDecodingError) Error() string {
	return fmt.Sprintf("kafka: error decoding packet: %s", err.Info)
}

// ConfigurationError is the type of error returned from a constructor (e.g. NewServer)
// when the specified configuration is invalid.
type ConfigurationError string

func (err ConfigurationError) Error() string {
	return "kafka: invalid configuration (" + string(err) + ")"
}

type sentinelError struct {
	sentinel error
	wrapped  error
}

func (err sentinelError) Error() string {
	if err.wrapped != nil {
		return fmt.Sprintf("%s: %v", err.sentinel, err.wrapped)
	} else {
		return fmt.Sprintf("%s", err.sentinel)
	}
}

func (err sentinelError) Is(target error) bool {
	return errors.Is(err.sentinel, target) || errors.Is(err.wrapped, target)
}

func (err sentinelError) Unwrap() error {
	return err.wrapped
}

// Wrap attaches one or more causes to a sentinel error. The result matches both
// the sentinel and every cause with errors.Is and errors.As.
func Wrap(sentinel error, wrapped ...error) sentinelError {
	return sentinelError{sentinel: sentinel, wrapped: errors.Join(wrapped...)}
}

// KError is the type of error that can be returned directly by the Kafka broker.
// See https://cwiki.apache.org/confluence/display/KAFKA/A+Guide+To+The+Kafka+Protocol#AGuideToTheKafkaProtocol-ErrorCodes
type KError int16

// Numeric error codes this server returns.
const (
	ErrUnknown            KError = -1
	ErrNoError            KError = 0
	ErrUnsupportedVersion KError = 35
)

func (err KError) Error() string {
	// Error messages stolen/adapted from
	// https://kafka.apache.org/protocol#protocol_error_codes
	switch err {
	case ErrNoError:
		return "kafka server: Not an error, why are you printing me?"
	case ErrUnknown:
		return "kafka server: Unexpected (unknown?) server error"
	case ErrUnsupportedVersion:
		return "kafka server: The version of API is not supported"
	}

	return fmt.Sprintf("Unknown error, how did this happen? Error code = %d", err)
}
