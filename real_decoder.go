package kbroker

import (
	"encoding/binary"
	"fmt"
)

type realDecoder struct {
	raw []byte
	off int
}

// primitives

func (rd *realDecoder) getInt8() (int8, error) {
	if rd.remaining() < 1 {
		rd.off = len(rd.raw)
		return -1, ErrInsufficientData
	}
	tmp := int8(rd.raw[rd.off])
	rd.off++
	return tmp, nil
}

func (rd *realDecoder) getInt16() (int16, error) {
	if rd.remaining() < 2 {
		rd.off = len(rd.raw)
		return -1, ErrInsufficientData
	}
	tmp := int16(binary.BigEndian.Uint16(rd.raw[rd.off:]))
	rd.off += 2
	return tmp, nil
}

func (rd *realDecoder) getInt32() (int32, error) {
	if rd.remaining() < 4 {
		rd.off = len(rd.raw)
		return -1, ErrInsufficientData
	}
	tmp := int32(binary.BigEndian.Uint32(rd.raw[rd.off:]))
	rd.off += 4
	return tmp, nil
}

// getKError and getEmptyTaggedFieldArray serve response decoding only.
func (rd *realDecoder) getKError() (KError, error) {
	i, err := rd.getInt16()
	return KError(i), err
}

func (rd *realDecoder) getEmptyTaggedFieldArray() (int, error) {
	tagCount, err := rd.getInt8()
	if err != nil {
		return 0, err
	}
	if tagCount != 0 {
		return 0, PacketDecodingError{fmt.Sprintf("expected an empty tagged field array, got %d fields", tagCount)}
	}
	return 0, nil
}

// collections

func (rd *realDecoder) getRawBytes(length int) ([]byte, error) {
	if length < 0 {
		return nil, PacketDecodingError{fmt.Sprintf("invalid raw bytes length (%d)", length)}
	} else if length > rd.remaining() {
		rd.off = len(rd.raw)
		return nil, ErrInsufficientData
	}

	start := rd.off
	rd.off += length
	return rd.raw[start:rd.off], nil
}

// subsets

func (rd *realDecoder) remaining() int {
	return len(rd.raw) - rd.off
}
