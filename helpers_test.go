package kbroker

import (
	"bytes"
	"encoding/binary"
	"io"
	"testing"

	"github.com/davecgh/go-spew/spew"
)

func safeClose(t testing.TB, c io.Closer) {
	t.Helper()
	err := c.Close()
	if err != nil {
		t.Error(err)
	}
}

// requestFrame builds a request frame the way a client puts it on the wire:
// size, api key, api version, correlation id, then any extra payload bytes.
func requestFrame(apiKey, apiVersion int16, correlationID int32, extra ...byte) []byte {
	buf := make([]byte, 4+requestHeaderLength+len(extra))
	binary.BigEndian.PutUint32(buf[0:], uint32(requestHeaderLength+len(extra)))
	binary.BigEndian.PutUint16(buf[4:], uint16(apiKey))
	binary.BigEndian.PutUint16(buf[6:], uint16(apiVersion))
	binary.BigEndian.PutUint32(buf[8:], uint32(correlationID))
	copy(buf[12:], extra)
	return buf
}

func testEncodable(t *testing.T, name string, in encoder, expect []byte) {
	t.Helper()
	packet, err := encode(in)
	if err != nil {
		t.Error(err)
	} else if !bytes.Equal(packet, expect) {
		t.Error("Encoding", name, "failed\ngot ", spew.Sdump(packet), "\nwant ", spew.Sdump(expect))
	}
}

func testDecodable(t *testing.T, name string, out decoder, in []byte) {
	t.Helper()
	err := decode(in, out)
	if err != nil {
		t.Error("Decoding", name, "failed:", err)
	}
}

// decodeResponseFrame splits an encoded response into its header and its
// ApiVersions body.
func decodeResponseFrame(t *testing.T, frame []byte) (responseHeader, *ApiVersionsResponse) {
	t.Helper()
	if len(frame) < 8 {
		t.Fatalf("response frame too short: %s", spew.Sdump(frame))
	}

	var header responseHeader
	testDecodable(t, "response header", &header, frame[:8])

	body := new(ApiVersionsResponse)
	testDecodable(t, "api versions response", body, frame[8:])
	return header, body
}
