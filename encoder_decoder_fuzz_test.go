//go:build go1.18 && !functional

package kbroker

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func FuzzDecodeRequestEncodeResponse(f *testing.F) {
	for _, seed := range [][]byte{
		apiVersionsRequestV4,
		apiVersionsRequestV4WithBody,
		requestFrame(0, 9, -1),
		requestFrame(-32768, 32767, 2147483647),
		{0x00, 0x00},
		{0x00, 0x00, 0x00, 0x00},
	} {
		f.Add(seed)
	}
	f.Fuzz(func(t *testing.T, in []byte) {
		req, _, err := decodeRequest(bytes.NewReader(in))
		if err != nil {
			return
		}
		out, err := encodeResponse(req)
		if err != nil {
			t.Fatalf("%v: encode: %v", in, err)
		}
		if size := binary.BigEndian.Uint32(out); int(size) != len(out)-4 {
			t.Fatalf("%v: size field %d does not match %d trailing bytes", in, size, len(out)-4)
		}
		if !bytes.Equal(out[4:8], in[8:12]) {
			t.Fatalf("%v: correlation id not echoed: %v", in, out[4:8])
		}
		if !bytes.Equal(out[11:13], in[4:6]) {
			t.Fatalf("%v: api key not echoed: %v", in, out[11:13])
		}
	})
}
