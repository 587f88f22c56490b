package kbroker

type prepEncoder struct {
	stack  []pushEncoder
	length int
}

// primitives

func (pe *prepEncoder) putInt8(in int8) {
	pe.length++
}

func (pe *prepEncoder) putInt16(in int16) {
	pe.length += 2
}

func (pe *prepEncoder) putInt32(in int32) {
	pe.length += 4
}

func (pe *prepEncoder) putKError(in KError) {
	pe.length += 2
}

func (pe *prepEncoder) putEmptyTaggedFieldArray() {
	pe.length++
}

func (pe *prepEncoder) offset() int {
	return pe.length
}

// stackable

func (pe *prepEncoder) push(in pushEncoder) {
	in.saveOffset(pe.length)
	pe.length += in.reserveLength()
	pe.stack = append(pe.stack, in)
}

func (pe *prepEncoder) pop() error {
	if len(pe.stack) == 0 {
		return PacketEncodingError{"pop called on an empty push stack"}
	}
	pe.stack = pe.stack[:len(pe.stack)-1]
	return nil
}
