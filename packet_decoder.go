package kbroker

// packetDecoder is the interface providing helpers for reading with Kafka's encoding rules.
// Types implementing decoder only need to worry about calling methods like getInt16,
// not about how an int16 is represented on the wire.
type packetDecoder interface {
	// Primitives
	getInt8() (int8, error)
	getInt16() (int16, error)
	getInt32() (int32, error)
	getKError() (KError, error)
	getEmptyTaggedFieldArray() (int, error)

	// Collections
	getRawBytes(length int) ([]byte, error)

	// Subsets
	remaining() int
}
