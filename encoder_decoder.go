package kbroker

import "fmt"

// encoder is the interface that wraps the basic encode method.
// Anything implementing encoder can be turned into bytes using Kafka's encoding rules.
type encoder interface {
	encode(pe packetEncoder) error
}

// encode takes an encoder and turns it into bytes. The value is encoded twice:
// once to size the buffer and once to fill it.
func encode(e encoder) ([]byte, error) {
	if e == nil {
		return nil, nil
	}

	var prepEnc prepEncoder
	var realEnc realEncoder

	err := e.encode(&prepEnc)
	if err != nil {
		return nil, err
	}

	if prepEnc.length < 0 || prepEnc.length > int(MaxRequestSize) {
		return nil, PacketEncodingError{fmt.Sprintf("invalid request size (%d)", prepEnc.length)}
	}
	if len(prepEnc.stack) != 0 {
		return nil, PacketEncodingError{fmt.Sprintf("%d pushed fields were never popped", len(prepEnc.stack))}
	}

	realEnc.raw = make([]byte, prepEnc.length)
	err = e.encode(&realEnc)
	if err != nil {
		return nil, err
	}

	if realEnc.off != len(realEnc.raw) {
		return nil, PacketEncodingError{fmt.Sprintf("encoded %d bytes but prepared %d", realEnc.off, len(realEnc.raw))}
	}

	return realEnc.raw, nil
}

// decoder is the interface that wraps the basic decode method.
// Anything implementing decoder can be extracted from bytes using Kafka's encoding rules.
type decoder interface {
	decode(pd packetDecoder) error
}

// decode takes bytes and a decoder and fills the fields of the decoder from the bytes,
// interpreted using Kafka's encoding rules. Every byte of buf must be consumed.
func decode(buf []byte, in decoder) error {
	if buf == nil {
		return nil
	}

	helper := realDecoder{raw: buf}
	err := in.decode(&helper)
	if err != nil {
		return err
	}

	if helper.off != len(buf) {
		return PacketDecodingError{fmt.Sprintf("invalid length, %d bytes left over", len(buf)-helper.off)}
	}

	return nil
}
