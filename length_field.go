package kbroker

import "encoding/binary"

// lengthField implements the pushEncoder interface for calculating 4-byte lengths.
// The reserved bytes stay zero until pop, when the field is patched with the
// number of bytes written after it.
type lengthField struct {
	startOffset int
}

func (l *lengthField) saveOffset(in int) {
	l.startOffset = in
}

func (l *lengthField) reserveLength() int {
	return 4
}

func (l *lengthField) run(curOffset int, buf []byte) error {
	binary.BigEndian.PutUint32(buf[l.startOffset:], uint32(curOffset-l.startOffset-4))
	return nil
}
