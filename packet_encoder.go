package kbroker

// packetEncoder is the interface providing helpers for writing with Kafka's encoding rules.
// Types implementing Encoder only need to worry about calling methods like putInt16,
// not about how an int16 is represented on the wire.
type packetEncoder interface {
	// Primitives
	putInt8(in int8)
	putInt16(in int16)
	putInt32(in int32)
	putKError(in KError)
	putEmptyTaggedFieldArray()

	// Provide the current offset into the packet
	offset() int

	// Stacks, see pushEncoder
	push(in pushEncoder)
	pop() error
}

// pushEncoder is the interface for encoding fields like CRCs and lengths where the value
// of the field depends on what is encoded after it in the packet. Start them with packetEncoder.push() where
// the actual value is located in the packet, then packetEncoder.pop() them when all the bytes they
// depend upon have been written.
type pushEncoder interface {
	// Saves the offset into the input buffer as the location to actually write the calculated value when able.
	saveOffset(in int)

	// Returns the length of data to reserve for the output of this encoder (eg 4 bytes for a length field).
	reserveLength() int

	// Indicates that all required data is now available to calculate and write the field.
	// saveOffset is guaranteed to have been called first. The implementation should write reserveLength() bytes
	// of data to the saved offset, based on the data between the saved offset and curOffset.
	run(curOffset int, buf []byte) error
}
