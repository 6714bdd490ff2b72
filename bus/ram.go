package bus

import (
	"fmt"
	"io"
)

// RAM is sparse little-endian physical memory, allocated in page frames on
// first write. Unwritten memory reads as zero.
type RAM struct {
	frames map[uint32]*[FrameSize]byte

	// Access counts ReadDword and WriteWord calls
	Access Access
}

// NewRAM returns an empty RAM
func NewRAM() *RAM {
	return &RAM{frames: make(map[uint32]*[FrameSize]byte)}
}

func (r *RAM) frame(addr uint32, alloc bool) *[FrameSize]byte {
	n := (addr & AddressMask) >> FrameShift
	f, ok := r.frames[n]
	if !ok && alloc {
		f = new([FrameSize]byte)
		r.frames[n] = f
	}
	return f
}

// Read8 returns the byte at addr
func (r *RAM) Read8(addr uint32) byte {
	f := r.frame(addr, false)
	if f == nil {
		return 0
	}
	return f[addr&(FrameSize-1)]
}

// Write8 stores data at addr
func (r *RAM) Write8(addr uint32, data byte) {
	r.frame(addr, true)[addr&(FrameSize-1)] = data
}

// ReadWord reads a 16 bit word
func (r *RAM) ReadWord(addr uint32) uint16 {
	return uint16(r.Read8(addr)) | uint16(r.Read8(addr+1))<<8
}

// WriteWord writes a 16 bit word
func (r *RAM) WriteWord(addr uint32, data uint16) {
	r.Access.Writes++
	r.Write8(addr, byte(data))
	r.Write8(addr+1, byte(data>>8))
}

// ReadDword reads a 32 bit double word
func (r *RAM) ReadDword(addr uint32) uint32 {
	r.Access.Reads++
	return uint32(r.ReadWord(addr)) | uint32(r.ReadWord(addr+2))<<16
}

// WriteDword writes a 32 bit double word. Not counted in Access, it's
// the host's way to set up memory.
func (r *RAM) WriteDword(addr uint32, data uint32) {
	for i := uint32(0); i < 4; i++ {
		r.Write8(addr+i, byte(data>>(8*i)))
	}
}

// Load copies data into memory starting at addr
func (r *RAM) Load(addr uint32, data []byte) {
	for i, b := range data {
		r.Write8(addr+uint32(i), b)
	}
}

// Frames returns the number of allocated page frames
func (r *RAM) Frames() int {
	return len(r.frames)
}

// Reset drops all memory contents and counters
func (r *RAM) Reset() {
	r.frames = make(map[uint32]*[FrameSize]byte)
	r.Access = Access{}
}

// Dump writes "count" double words starting at addr
func (r *RAM) Dump(w io.Writer, addr uint32, count int) error {
	for i := 0; i < count; i++ {
		a := addr + uint32(i)*4
		v := uint32(r.ReadWord(a)) | uint32(r.ReadWord(a+2))<<16
		if _, err := fmt.Fprintf(w, "%07x : %08x\n", a&AddressMask, v); err != nil {
			return err
		}
	}
	return nil
}
