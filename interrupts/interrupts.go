package interrupts

import "fmt"

/**
 * Separate package exists mainly in order to avoid cyclic imports
 */

/********************************
 * NS32000 trap vectors:
 ********************************/

// NVI - non-vectored interrupt
const NVI = 0

// NMI - non-maskable interrupt
const NMI = 1

// ABT - abort, raised when the MMU refuses a translation
const ABT = 2

// SLV - slave processor trap, status word had Q set
const SLV = 3

// ILL - illegal operation
const ILL = 4

// UND - undefined instruction, also used for a slave protocol failure
const UND = 10

// Trap describes an abort or trap the host CPU has to take.
type Trap struct {
	Vector  uint16
	Address uint32
	Msg     string
}

func (t Trap) Error() string {
	return fmt.Sprintf("trap %d at %06x: %s", t.Vector, t.Address, t.Msg)
}

// Name of the trap vector
func (t Trap) Name() string {
	switch t.Vector {
	case NVI:
		return "NVI"
	case NMI:
		return "NMI"
	case ABT:
		return "ABT"
	case SLV:
		return "SLV"
	case ILL:
		return "ILL"
	case UND:
		return "UND"
	}
	return fmt.Sprintf("TRAP%d", t.Vector)
}
