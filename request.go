package kbroker

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

const (
	apiKeyApiVersions = 18

	// api_key + api_version + correlation_id
	requestHeaderLength = 8
)

// RequestHeader is the fixed-layout header every Kafka request starts with.
type RequestHeader struct {
	APIKey        int16
	APIVersion    int16
	CorrelationID int32
}

func (h *RequestHeader) decode(pd packetDecoder) (err error) {
	if h.APIKey, err = pd.getInt16(); err != nil {
		return err
	}

	if h.APIVersion, err = pd.getInt16(); err != nil {
		return err
	}

	h.CorrelationID, err = pd.getInt32()
	return err
}

// Request is a single decoded request frame. It is built once from wire bytes
// and never modified afterwards.
type Request struct {
	size   int32
	header RequestHeader
	body   []byte
}

// Size returns the frame length declared on the wire, excluding the 4-byte
// length field itself.
func (r *Request) Size() int32 {
	return r.size
}

// Header returns a copy of the decoded request header.
func (r *Request) Header() RequestHeader {
	return r.header
}

// Body returns the bytes of the frame that follow the fixed header (client id,
// tagged fields and the request body of newer formats), left unparsed.
// The returned slice must not be modified.
func (r *Request) Body() []byte {
	return r.body
}

func (r *Request) decode(pd packetDecoder) (err error) {
	if err = r.header.decode(pd); err != nil {
		return err
	}

	r.body, err = pd.getRawBytes(pd.remaining())
	return err
}

// decodeRequest reads exactly one frame from r: the 4-byte size, then the
// declared number of bytes, from which the header is parsed. It returns the
// request and the number of bytes consumed from r.
//
// A stream that ends before the first byte of the size field returns io.EOF
// unwrapped, so callers can tell a clean close from ErrTruncatedFrame.
func decodeRequest(r io.Reader) (*Request, int, error) {
	var (
		bytesRead   int
		lengthBytes = make([]byte, 4)
	)

	n, err := io.ReadFull(r, lengthBytes)
	bytesRead += n
	if err != nil {
		return nil, bytesRead, truncated(err, "size")
	}

	length := int32(binary.BigEndian.Uint32(lengthBytes))
	if length < requestHeaderLength {
		return nil, bytesRead, PacketDecodingError{fmt.Sprintf("frame of length %d too small for a request header", length)}
	}
	if length > MaxRequestSize {
		return nil, bytesRead, PacketDecodingError{fmt.Sprintf("frame of length %d exceeds the maximum of %d", length, MaxRequestSize)}
	}

	// the buffer grows with the bytes that actually arrive, not with the
	// declared size
	var encodedReq bytes.Buffer
	copied, err := io.CopyN(&encodedReq, r, int64(length))
	bytesRead += int(copied)
	if err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return nil, bytesRead, truncated(err, "payload")
	}

	req := &Request{size: length}
	if err := decode(encodedReq.Bytes(), req); err != nil {
		return nil, bytesRead, err
	}

	return req, bytesRead, nil
}

// truncated maps the short-read errors of io.ReadFull onto ErrTruncatedFrame.
// io.EOF (nothing read at all) and I/O failures pass through untouched.
func truncated(err error, field string) error {
	if errors.Is(err, io.ErrUnexpectedEOF) {
		return Wrap(ErrTruncatedFrame, fmt.Errorf("reading frame %s: %w", field, err))
	}
	return err
}
