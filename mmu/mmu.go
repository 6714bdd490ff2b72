package mmu

import (
	"fmt"
	"io"
	"log"

	"ns32082/bus"
)

// MMU is the NS32082 memory management unit: the register file, the slave
// protocol towards the CPU and the page table walker.
type MMU struct {
	regs Registers

	// slave protocol
	idbyte uint8
	opword uint16
	op     [3]operand
	status uint16
	state  state
	tcy    int

	// page tables live here
	space bus.Space

	log     *log.Logger
	verbose int
}

// New returns a reset MMU walking page tables in space. A nil logger
// discards all output.
func New(space bus.Space, logger *log.Logger) *MMU {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	m := &MMU{space: space, log: logger}
	m.Reset()
	return m
}

// Reset clears the status register and abandons any slave command.
func (m *MMU) Reset() {
	m.regs.MSR = 0
	m.state = idle
}

// SetVerbose selects trace output, a mask of LogGeneral and LogTranslate.
// Protocol and decode errors are always logged.
func (m *MMU) SetVerbose(mask int) {
	m.verbose = mask
}

func (m *MMU) logf(mask int, format string, args ...interface{}) {
	if m.verbose&mask != 0 {
		m.log.Printf(format, args...)
	}
}

func (m *MMU) logerror(format string, args ...interface{}) {
	m.log.Printf("ERROR: "+format, args...)
}

// Registers returns a copy of the register file
func (m *MMU) Registers() Registers {
	return m.regs
}

// MSR returns the status register
func (m *MMU) MSR() uint32 {
	return m.regs.MSR.Get()
}

// Idle reports whether no slave command is in progress
func (m *MMU) Idle() bool {
	return m.state == idle
}

// StateEntry is a register as shown to a debugger
type StateEntry struct {
	Name   string
	Value  uint32
	Format string
}

// String formats the value
func (e StateEntry) String() string {
	return fmt.Sprintf("%s: "+e.Format, e.Name, e.Value)
}

// State lists the registers for a debugger, MSR first.
func (m *MMU) State() []StateEntry {
	entries := []StateEntry{{"MSR", m.regs.MSR.Get(), "%08X"}}
	for i, reg := range registerMap {
		if reg == nil || i == MSR {
			continue
		}
		v, _ := m.regs.store(uint(i))
		format := "%08X"
		if reg.width == 24 {
			format = "%06X"
		}
		entries = append(entries, StateEntry{reg.name, v, format})
	}
	return entries
}

// DumpRegisters writes the register file and protocol state to w
func (m *MMU) DumpRegisters(w io.Writer) {
	for _, e := range m.State() {
		fmt.Fprintf(w, " |%s| ", e)
	}
	fmt.Fprintf(w, "\n %s state %s\n", m.regs.MSR, m.state)
}
