package bus

/*
Physical memory side of the MMU. The page table walk only needs 32 bit reads
and 16 bit writes (referenced/modified updates touch the low word only).
*/

// Space is the memory the MMU walks page tables in.
type Space interface {
	ReadDword(addr uint32) uint32
	WriteWord(addr uint32, data uint16)
}

// Physical address space constants
const (
	// AddressBits - physical address width. Bit 24 selects the memory system.
	AddressBits = 25

	// AddressMask masks a physical address
	AddressMask = 1<<AddressBits - 1

	// FrameShift - 512 byte page frames
	FrameShift = 9

	// FrameSize in bytes
	FrameSize = 1 << FrameShift
)

// Access counts bus cycles, handy when checking a probe didn't write.
type Access struct {
	Reads  int
	Writes int
}
