package system

import (
	"fmt"
	"io"
	"log"

	"ns32082/bus"
	"ns32082/console"
	"ns32082/interrupts"
	"ns32082/mmu"
)

// trapHistory is the number of traps kept for inspection
const trapHistory = 32

// System is the host side of the emulated machine: physical memory, the
// MMU and the CPU half of the slave protocol.
type System struct {
	MMU *mmu.MMU
	RAM *bus.RAM

	// Cycles is the total of the MMU command costs
	Cycles int

	log     *log.Logger
	console console.Console
	traps   *TrapQueue
}

// New initializes memory and the MMU. A nil console discards messages.
func New(c console.Console, log *log.Logger) *System {
	if c == nil {
		c = console.NewSimple(io.Discard)
	}
	sys := &System{
		RAM:     bus.NewRAM(),
		log:     log,
		console: c,
		traps:   NewTrapQueue(trapHistory),
	}
	sys.MMU = mmu.New(sys.RAM, log)

	_ = sys.console.WriteConsole("Initializing NS32082 MMU.\n")
	return sys
}

// Reset clears memory, the MMU status register and the trap history.
func (sys *System) Reset() {
	sys.RAM.Reset()
	sys.MMU.Reset()
	sys.traps.Clear()
	sys.Cycles = 0
	_ = sys.console.WriteConsole("MMU reset.\n")
}

// Traps returns the recorded traps, oldest first
func (sys *System) Traps() []interrupts.Trap {
	return sys.traps.Items()
}

// Console returns the console messages are written to
func (sys *System) Console() console.Console {
	return sys.console
}

func (sys *System) trap(vector uint16, address uint32, format string, args ...interface{}) interrupts.Trap {
	t := interrupts.Trap{Vector: vector, Address: address, Msg: fmt.Sprintf(format, args...)}
	if sys.log != nil {
		sys.log.Printf("SENDING TRAP %d (%s) at 0x%06x: %s\n", t.Vector, t.Name(), t.Address, t.Msg)
	}
	sys.traps.Enqueue(t)
	return t
}

// DumpTraps writes the trap history to w
func (sys *System) DumpTraps(w io.Writer) {
	for _, t := range sys.traps.Items() {
		fmt.Fprintf(w, "%s %06x %s\n", t.Name(), t.Address, t.Msg)
	}
}
