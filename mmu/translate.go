package mmu

import "ns32082/msr"

// validating reports whether a RDVAL or WRVAL is waiting for translation
func (m *MMU) validating() bool {
	return m.state == rdval || m.state == wrval
}

// Translate maps a logical address to a physical one.
//
// st is the bus status of the access, pfs marks accesses that count for
// program flow tracing. With suppress set the walk neither updates page
// table entries nor latches fault diagnostics, which is what a debugger
// peek wants.
//
// While a RDVAL or WRVAL is pending the translation completes that command:
// a protection failure cancels it with the F flag set instead of aborting.
func (m *MMU) Translate(st AccessType, address uint32, user, write, pfs, suppress bool) (uint32, Result) {
	r := &m.regs

	// update program flow trace state
	if pfs && r.MSR.FlowTrace() {
		if st == StNIF {
			r.PF[1] = r.PF[0]
			r.PF[0] = address

			r.SC = r.SC << 16
		}

		r.SC++
	}

	// check translation required
	if !r.MSR.Translates(user) {
		// a pending validate completes without fault
		if m.validating() {
			m.state = status
		}
		return address, Complete
	}

	// treat WRVAL as write
	write = write || m.state == wrval

	as := 0
	if r.MSR.DualSpace() && user {
		as = 1
	}
	level := accessLevel(user && !r.MSR.AccessOverride(), write || st == StRMW)

	ptb := r.ptb(as)
	m.logf(LogTranslate, "translate address_space %d access_level %d page table 0x%08x address 0x%08x\n",
		as, level, ptb, address)

	// level 1
	pte1Address := ptb | ((address & VaIndex1) >> 14)
	pte1 := PTE(m.space.ReadDword(pte1Address))
	m.logf(LogTranslate, "translate level 1 page table address 0x%06x entry %s\n", pte1Address, pte1)

	if !pte1.permits(level) || !pte1.valid() {
		m.fault(st, address, as, write, suppress, pte1, level, msr.TetIL1)

		if m.validating() {
			if pte1.valid() {
				m.state = status
				m.status |= SlaveF
				return address, Cancel
			}
			m.state = idle
		}

		m.logf(LogTranslate, "translate level 1 abort eia 0x%08x\n", r.EIA)
		return address, Abort
	}

	// set referenced
	if !pte1.referenced() && !suppress {
		m.space.WriteWord(pte1Address, uint16(pte1|PteR))
	}

	// level 2
	pte2Address := pte1.memorySystem() | pte1.frame() | ((address & VaIndex2) >> 7)
	pte2 := PTE(m.space.ReadDword(pte2Address))
	m.logf(LogTranslate, "translate level 2 page table address 0x%06x entry %s\n", pte2Address, pte2)

	if !pte2.permits(level) || !pte2.valid() {
		m.fault(st, address, as, write, suppress, pte2, level, msr.TetIL2)

		if m.validating() {
			m.state = status
			if pte1.valid() {
				m.status |= SlaveF
			}
			return address, Cancel
		}

		m.logf(LogTranslate, "translate level 2 abort eia 0x%08x\n", r.EIA)
		return address, Abort
	}

	// set modified and referenced
	if (!pte2.referenced() || (write && !pte2.modified())) && !suppress {
		update := pte2 | PteR
		if write {
			update |= PteM
		}
		m.space.WriteWord(pte2Address, uint16(update))
	}

	physical := pte1.memorySystem() | pte2.frame() | (address & VaOffset)
	m.logf(LogTranslate, "translate complete 0x%08x\n", physical)

	if m.validating() {
		m.state = status
	}

	return physical, Complete
}

// accessLevel is the protection level an access needs
func accessLevel(user, write bool) uint32 {
	switch {
	case user && write:
		return PlURW
	case user:
		return PlURO
	case write:
		return PlSRW
	}
	return PlSRO
}

// fault latches translation error diagnostics. Only accesses made outside
// a slave command, and not suppressed, leave a trace in MSR and EIA.
func (m *MMU) fault(st AccessType, address uint32, as int, write, suppress bool, pte PTE, level uint32, invalid uint32) {
	if m.state != idle || suppress {
		return
	}

	var tet uint32
	if !pte.permits(level) {
		tet |= msr.TetPL
	}
	if !pte.valid() {
		tet |= invalid
	}
	m.regs.MSR.LatchError(write, uint(st), tet)

	m.regs.EIA = address & EiaVA
	if as != 0 {
		m.regs.EIA |= EiaAS
	}
}
