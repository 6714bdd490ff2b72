package mmu

import (
	"math/bits"

	"ns32082/msr"
)

// SlaveStatus returns the status word of the last command and the cycles
// it cost. Results, if any, become readable afterwards.
func (m *MMU) SlaveStatus() (uint16, int) {
	if m.state == status {
		if m.op[opResult].complete() {
			m.state = idle
		} else {
			m.state = result
		}

		pending := "complete"
		if m.state == result {
			pending = "results pending"
		}
		m.logf(LogGeneral, "status 0x%04x tcy %d %s\n", m.status, m.tcy, pending)

		return m.status, m.tcy
	}

	m.logerror("status protocol error (state %s)\n", m.state)
	return 0, 0
}

// SlaveRead returns the next result word.
func (m *MMU) SlaveRead() uint16 {
	op := &m.op[opResult]
	if m.state == result && !op.complete() {
		n := op.issued >> 1
		data := op.next()
		m.logf(LogGeneral, "read %d data 0x%04x\n", n, data)

		if op.complete() {
			m.logf(LogGeneral, "read complete\n")
			m.state = idle
		}
		return data
	}

	m.logerror("read protocol error (state %s)\n", m.state)
	return 0
}

// SlaveWrite accepts the ID byte, the operation word and operands.
func (m *MMU) SlaveWrite(data uint16) {
	switch m.state {
	case idle:
		m.logf(LogGeneral, "write idbyte 0x%04x\n", data)
		if uint8(data) == Format14 {
			m.idbyte = uint8(data)
			m.state = operation
		}

	case operation:
		// the operation word travels with its bytes swapped
		m.opword = bits.ReverseBytes16(data)
		m.logf(LogGeneral, "write opword 0x%04x\n", m.opword)

		m.tcy = 0
		for i := range m.op {
			m.op[i].reset()
		}

		if m.idbyte == Format14 {
			m.decodeFormat14()
			m.state = operands
		}

	case operands:
		if !m.op[opA].complete() || !m.op[opB].complete() {
			n := opA
			if m.op[opA].complete() {
				n = opB
			}
			m.logf(LogGeneral, "write operand %d data 0x%04x\n", n, data)
			m.op[n].insert(data)
		} else {
			m.logerror("write protocol error unexpected operand data 0x%04x\n", data)
		}

	default:
		m.logerror("write protocol error data 0x%04x (state %s)\n", data, m.state)
	}

	// start execution when all operands are available
	if m.state == operands && m.op[opA].complete() && m.op[opB].complete() {
		m.execute()
	}
}

// format 14: xxxx xsss s0oo ooii 0001 1110
func (m *MMU) decodeFormat14() {
	size := uint(m.opword&3) + 1

	switch (m.opword >> 2) & 15 {
	case OpRDVAL, OpWRVAL, OpLMR:
		m.op[opA].expected = size
	case OpSMR:
		m.op[opResult].expected = size
	}
}

// quick reads bits 7-10 of the swapped word, i.e. bits 15 and 0-2 of the
// word as it appears on the bus.
func (m *MMU) quick() uint {
	return uint(m.opword>>7) & 15
}

func (m *MMU) execute() {
	m.status = 0

	switch m.idbyte {
	case Format14:
		quick := m.quick()

		switch (m.opword >> 2) & 15 {
		case OpRDVAL:
			m.tcy = tcyValidate
			m.state = rdval
		case OpWRVAL:
			m.tcy = tcyValidate
			m.state = wrval
		case OpLMR:
			m.lmr(quick, uint32(m.op[opA].value))
			m.tcy = tcyLMR
		case OpSMR:
			m.smr(quick)
			m.tcy = tcySMR
		}
	}

	// exceptions suppress result issue
	if m.status&SlaveQ != 0 {
		m.op[opResult].expected = 0
	}

	if m.state == operands {
		m.state = status
	}
}

// lmr loads a register from operand data
func (m *MMU) lmr(quick uint, data uint32) {
	if quick == MSR {
		m.setMSR(data)
		return
	}
	if !m.regs.load(quick, data) {
		m.logerror("lmr unknown register %d\n", quick)
	}
}

// smr stores a register into the result operand
func (m *MMU) smr(quick uint) {
	v, ok := m.regs.store(quick)
	if !ok {
		m.logerror("smr unknown register %d\n", quick)
		return
	}
	m.op[opResult].value = uint64(v)
}

func (m *MMU) setMSR(data uint32) {
	if m.regs.MSR.Load(data) {
		m.logf(LogGeneral, "supervisor translation %s user translation %s\n",
			enabled(data&msr.TS != 0), enabled(data&msr.TU != 0))
	}
}

func enabled(b bool) string {
	if b {
		return "enabled"
	}
	return "disabled"
}
