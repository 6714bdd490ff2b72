package mmu

import "ns32082/msr"

// Registers is the programmer visible register file.
type Registers struct {
	BPR  [2]uint32 // breakpoint
	PF   [2]uint32 // program flow
	SC   uint32    // sequential count
	MSR  msr.MSR   // status
	BCNT uint32    // breakpoint count
	PTB  [2]uint32 // page table base
	EIA  uint32    // error/invalidate address
}

// register describes one quick field target
type register struct {
	name  string
	mask  uint32
	width int
	loc   func(r *Registers) *uint32
}

// registerMap is indexed by quick field, nil entries are unmapped. The MSR
// load mask is its writable mask; loads go through msr.Load.
var registerMap = [16]*register{
	BPR0: {"BPR0", 0xfcffffff, 32, func(r *Registers) *uint32 { return &r.BPR[0] }},
	BPR1: {"BPR1", 0xf8ffffff, 32, func(r *Registers) *uint32 { return &r.BPR[1] }},
	PF0:  {"PF0", 0x00ffffff, 24, func(r *Registers) *uint32 { return &r.PF[0] }},
	PF1:  {"PF1", 0x00ffffff, 24, func(r *Registers) *uint32 { return &r.PF[1] }},
	SC:   {"SC", 0xffffffff, 32, func(r *Registers) *uint32 { return &r.SC }},
	MSR:  {"MSR", msr.WM, 32, func(r *Registers) *uint32 { return (*uint32)(&r.MSR) }},
	BCNT: {"BCNT", 0x00ffffff, 24, func(r *Registers) *uint32 { return &r.BCNT }},
	PTB0: {"PTB0", 0xfffffc00, 32, func(r *Registers) *uint32 { return &r.PTB[0] }},
	PTB1: {"PTB1", 0xfffffc00, 32, func(r *Registers) *uint32 { return &r.PTB[1] }},
	EIA:  {"EIA", EiaAS | EiaVA, 32, func(r *Registers) *uint32 { return &r.EIA }},
}

// RegisterName returns the name of the register selected by quick, or
// false if quick is unmapped.
func RegisterName(quick uint) (string, bool) {
	if quick >= uint(len(registerMap)) || registerMap[quick] == nil {
		return "", false
	}
	return registerMap[quick].name, true
}

// RegisterMask returns the load mask of the register selected by quick.
func RegisterMask(quick uint) (uint32, bool) {
	if quick >= uint(len(registerMap)) || registerMap[quick] == nil {
		return 0, false
	}
	return registerMap[quick].mask, true
}

// RegisterIndex is the reverse of RegisterName
func RegisterIndex(name string) (uint, bool) {
	for i, reg := range registerMap {
		if reg != nil && reg.name == name {
			return uint(i), true
		}
	}
	return 0, false
}

// load stores data, masked, into a register other than MSR
func (r *Registers) load(quick uint, data uint32) bool {
	if quick >= uint(len(registerMap)) || registerMap[quick] == nil {
		return false
	}
	reg := registerMap[quick]
	*reg.loc(r) = data & reg.mask
	return true
}

// store returns the register value
func (r *Registers) store(quick uint) (uint32, bool) {
	if quick >= uint(len(registerMap)) || registerMap[quick] == nil {
		return 0, false
	}
	return *registerMap[quick].loc(r), true
}

// ptb returns the level 1 table address for address space as
func (r *Registers) ptb(as int) uint32 {
	return ((r.PTB[as] & PtbMS) >> 7) | (r.PTB[as] & PtbAB)
}
