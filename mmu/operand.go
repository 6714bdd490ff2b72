package mmu

// slot indices
const (
	opA = iota
	opB
	opResult
)

// operand accumulates a value moved over the 16 bit slave bus, two bytes at
// a time, low bytes first.
type operand struct {
	expected uint // bytes
	issued   uint // bytes
	value    uint64
}

func (op *operand) reset() {
	*op = operand{}
}

// complete once every expected byte has moved. Bytes move in pairs, so an
// odd count finishes one byte past it.
func (op *operand) complete() bool {
	return op.issued >= op.expected
}

// insert appends a bus word to the value
func (op *operand) insert(data uint16) {
	op.value |= uint64(data) << (op.issued * 8)
	op.issued += 2
}

// next returns the next bus word of the value
func (op *operand) next() uint16 {
	data := uint16(op.value >> (op.issued * 8))
	op.issued += 2
	return data
}
