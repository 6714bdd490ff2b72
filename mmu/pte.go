package mmu

import "fmt"

// PTE is a page table entry, either level.
type PTE uint32

// page table entry bits
const (
	PteV   = 0x00000001 // valid
	PtePL  = 0x00000006 // protection level
	PteR   = 0x00000008 // referenced
	PteM   = 0x00000010 // modified
	PteNSC = 0x00000060 // reserved
	PteUSR = 0x00000180 // user bits
	PtePFN = 0x00fffe00 // page frame number
	PteMS  = 0x80000000 // memory system
)

// protection levels, ordered by the rights they need
const (
	PlSRO = 0x00000000 // supervisor read only
	PlSRW = 0x00000002 // supervisor read write
	PlURO = 0x00000004 // user read only
	PlURW = 0x00000006 // user read write
)

// few helper functions to check the entry
func (p PTE) valid() bool      { return p&PteV != 0 }
func (p PTE) level() uint32    { return uint32(p & PtePL) }
func (p PTE) referenced() bool { return p&PteR != 0 }
func (p PTE) modified() bool   { return p&PteM != 0 }
func (p PTE) frame() uint32    { return uint32(p & PtePFN) }

// memorySystem returns the MS bit moved to the top of the physical address
func (p PTE) memorySystem() uint32 { return uint32(p&PteMS) >> 7 }

// permits reports whether the entry allows an access needing level
func (p PTE) permits(level uint32) bool {
	return level <= p.level()
}

func (p PTE) String() string {
	flags := []byte("-----")
	if p.valid() {
		flags[0] = 'V'
	}
	if p.referenced() {
		flags[1] = 'R'
	}
	if p.modified() {
		flags[2] = 'M'
	}
	if p&PteMS != 0 {
		flags[3] = 'S'
	}
	flags[4] = "0123"[p.level()>>1]
	return fmt.Sprintf("%08x[%s]", uint32(p), flags)
}

// MakePTE builds an entry pointing at the frame holding physical address
// frame. pl is one of the Pl levels.
func MakePTE(frame uint32, pl uint32, valid bool) PTE {
	p := PTE(frame&PtePFN) | PTE(pl&PtePL)
	if frame&(1<<24) != 0 {
		p |= PteMS
	}
	if valid {
		p |= PteV
	}
	return p
}
