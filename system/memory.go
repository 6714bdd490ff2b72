package system

import (
	"ns32082/interrupts"
	"ns32082/mmu"
)

// translate maps address for a CPU access, recording an abort trap
func (sys *System) translate(st mmu.AccessType, address uint32, user, write, pfs bool) (uint32, error) {
	physical, res := sys.MMU.Translate(st, address, user, write, pfs, false)
	if res == mmu.Abort {
		dir := "read"
		if write {
			dir = "write"
		}
		return 0, sys.trap(interrupts.ABT, address, "%s abort, msr %08x eia %08x",
			dir, sys.MMU.MSR(), sys.MMU.Registers().EIA)
	}
	return physical, nil
}

// Read32 reads a double word operand
func (sys *System) Read32(address uint32, user bool) (uint32, error) {
	physical, err := sys.translate(mmu.StODT, address, user, false, false)
	if err != nil {
		return 0, err
	}
	return sys.RAM.ReadDword(physical), nil
}

// Write32 writes a double word operand
func (sys *System) Write32(address, data uint32, user bool) error {
	physical, err := sys.translate(mmu.StODT, address, user, true, false)
	if err != nil {
		return err
	}
	sys.RAM.WriteDword(physical, data)
	return nil
}

// Fetch reads an instruction double word. Fetches count for flow tracing;
// a non-sequential fetch starts a new trace step.
func (sys *System) Fetch(address uint32, user, sequential bool) (uint32, error) {
	st := mmu.StNIF
	if sequential {
		st = mmu.StSIF
	}
	physical, err := sys.translate(st, address, user, false, true)
	if err != nil {
		return 0, err
	}
	return sys.RAM.ReadDword(physical), nil
}

// Peek translates without side effects, the way a debugger reads memory.
func (sys *System) Peek(address uint32, user bool) (uint32, bool) {
	physical, res := sys.MMU.Translate(mmu.StODT, address, user, false, false, true)
	if res != mmu.Complete {
		return 0, false
	}
	return sys.RAM.ReadDword(physical), true
}

// Poke stores physical memory directly
func (sys *System) Poke(physical, data uint32) {
	sys.RAM.WriteDword(physical, data)
}
