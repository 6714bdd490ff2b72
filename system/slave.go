package system

import (
	"errors"
	"fmt"

	"ns32082/interrupts"
	"ns32082/mmu"
)

// ErrProtocol reports a slave exchange the MMU did not follow
var ErrProtocol = errors.New("slave protocol error")

// operand size field of a double word operation
const sizeDouble = 3

// send writes the ID byte, the swapped operation word and an optional
// double word operand.
func (sys *System) send(op, quick uint, operand *uint32) error {
	if !sys.MMU.Idle() {
		return fmt.Errorf("%w: MMU busy", ErrProtocol)
	}
	opword := uint16(quick&15)<<7 | uint16(op&15)<<2 | sizeDouble

	sys.MMU.SlaveWrite(mmu.Format14)
	sys.MMU.SlaveWrite(opword<<8 | opword>>8)
	if operand != nil {
		sys.MMU.SlaveWrite(uint16(*operand))
		sys.MMU.SlaveWrite(uint16(*operand >> 16))
	}
	return nil
}

// status fetches the status word, trapping when Q is set
func (sys *System) status(what string, address uint32) (uint16, error) {
	s, tcy := sys.MMU.SlaveStatus()
	sys.Cycles += tcy
	if s&mmu.SlaveQ != 0 {
		return s, sys.trap(interrupts.SLV, address, "%s status 0x%04x", what, s)
	}
	return s, nil
}

// LMR loads an MMU register.
func (sys *System) LMR(quick uint, value uint32) (uint16, error) {
	if err := sys.send(mmu.OpLMR, quick, &value); err != nil {
		return 0, err
	}
	return sys.status("lmr", 0)
}

// SMR stores an MMU register.
func (sys *System) SMR(quick uint) (uint32, error) {
	if err := sys.send(mmu.OpSMR, quick, nil); err != nil {
		return 0, err
	}
	if _, err := sys.status("smr", 0); err != nil {
		return 0, err
	}
	if sys.MMU.Idle() {
		return 0, fmt.Errorf("%w: smr produced no result", ErrProtocol)
	}

	lo := uint32(sys.MMU.SlaveRead())
	hi := uint32(sys.MMU.SlaveRead())
	return hi<<16 | lo, nil
}

// RDVAL checks whether user mode may read address. It returns true when
// the access would not be permitted (the F flag).
func (sys *System) RDVAL(address uint32) (bool, error) {
	return sys.validate(mmu.OpRDVAL, "rdval", address)
}

// WRVAL checks whether user mode may write address.
func (sys *System) WRVAL(address uint32) (bool, error) {
	return sys.validate(mmu.OpWRVAL, "wrval", address)
}

func (sys *System) validate(op uint, what string, address uint32) (bool, error) {
	if err := sys.send(op, 0, &address); err != nil {
		return false, err
	}

	// the CPU translates the operand in user mode to complete the command
	if _, res := sys.MMU.Translate(mmu.StODT, address, true, false, false, false); res == mmu.Abort {
		return false, sys.trap(interrupts.ABT, address, "%s invalid level 1 entry", what)
	}

	s, err := sys.status(what, address)
	if err != nil {
		return false, err
	}
	return s&mmu.SlaveF != 0, nil
}
