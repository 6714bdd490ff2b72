package msr

import (
	"fmt"
	"strings"
)

/**
Memory management status register package
*/

// MSR flag and field masks
const (
	TE  = 0x00000001 // translation error
	R   = 0x00000002 // reset
	B   = 0x00000004 // break
	TET = 0x00000038 // translation error type
	BN  = 0x00000040 // breakpoint number
	ED  = 0x00000100 // error direction
	BD  = 0x00000200 // break direction
	EST = 0x00001c00 // error status
	BST = 0x0000e000 // breakpoint status
	TU  = 0x00010000 // translate user-mode addresses
	TS  = 0x00020000 // translate supervisor-mode addresses
	DS  = 0x00040000 // dual-space translation
	AO  = 0x00080000 // access level override
	BEN = 0x00100000 // breakpoint enable
	UB  = 0x00200000 // user-only breakpointing
	AI  = 0x00400000 // abort/interrupt
	FT  = 0x00800000 // flow trace
	UT  = 0x01000000 // user trace
	NT  = 0x02000000 // nonsequential trace

	// WM - bits a load can change
	WM = 0x03ff0000
)

// translation error type bits, inside TET
const (
	TetPL  = 0x00000008 // protection level
	TetIL1 = 0x00000010 // invalid level 1
	TetIL2 = 0x00000020 // invalid level 2
)

// error/break status cleared by a load with R set
const resetMask = TE | B | TET | ED | BD | EST | BST

// Field is a named bit range of the register.
type Field struct {
	Name  string
	Mask  uint32
	Shift uint
}

// Get extracts the field from v.
func (f Field) Get(v uint32) uint32 {
	return (v & f.Mask) >> f.Shift
}

// Set returns v with the field replaced by x.
func (f Field) Set(v, x uint32) uint32 {
	return (v &^ f.Mask) | ((x << f.Shift) & f.Mask)
}

// Width in bits
func (f Field) Width() int {
	n := 0
	for m := f.Mask >> f.Shift; m != 0; m >>= 1 {
		n++
	}
	return n
}

// Fields lists every MSR field, low bit first
var Fields = [...]Field{
	{"TE", TE, 0},
	{"R", R, 1},
	{"B", B, 2},
	{"TET", TET, 3},
	{"BN", BN, 6},
	{"ED", ED, 8},
	{"BD", BD, 9},
	{"EST", EST, 10},
	{"BST", BST, 13},
	{"TU", TU, 16},
	{"TS", TS, 17},
	{"DS", DS, 18},
	{"AO", AO, 19},
	{"BEN", BEN, 20},
	{"UB", UB, 21},
	{"AI", AI, 22},
	{"FT", FT, 23},
	{"UT", UT, 24},
	{"NT", NT, 25},
}

// Lookup returns the field called name.
func Lookup(name string) (Field, bool) {
	for _, f := range Fields {
		if strings.EqualFold(f.Name, name) {
			return f, true
		}
	}
	return Field{}, false
}

// MSR keeps the memory management status register
type MSR uint32

// Get returns the raw register value
func (m *MSR) Get() uint32 {
	return uint32(*m)
}

// Set the raw register value, no masking
func (m *MSR) Set(v uint32) {
	*m = MSR(v)
}

// Field returns the value of field f
func (m *MSR) Field(f Field) uint32 {
	return f.Get(uint32(*m))
}

// SetField replaces field f with x
func (m *MSR) SetField(f Field, x uint32) {
	*m = MSR(f.Set(uint32(*m), x))
}

// TranslateUser - TU set
func (m *MSR) TranslateUser() bool {
	return m.getFlag(TU)
}

// TranslateSupervisor - TS set
func (m *MSR) TranslateSupervisor() bool {
	return m.getFlag(TS)
}

// Translates reports whether addresses of the given mode are translated.
func (m *MSR) Translates(user bool) bool {
	if user {
		return m.TranslateUser()
	}
	return m.TranslateSupervisor()
}

// DualSpace - DS set
func (m *MSR) DualSpace() bool {
	return m.getFlag(DS)
}

// AccessOverride - AO set
func (m *MSR) AccessOverride() bool {
	return m.getFlag(AO)
}

// FlowTrace - FT set
func (m *MSR) FlowTrace() bool {
	return m.getFlag(FT)
}

// TranslationError - TE set
func (m *MSR) TranslationError() bool {
	return m.getFlag(TE)
}

// Load applies a register load: a set R bit clears the error and break
// status, then only the writable bits are taken from data. The return value
// reports whether the user/supervisor translate bits changed.
func (m *MSR) Load(data uint32) (modeChanged bool) {
	if data&R != 0 {
		*m &^= resetMask
	}

	modeChanged = (uint32(*m)^data)&(TS|TU) != 0

	*m = MSR((uint32(*m) &^ WM) | (data & WM))
	return modeChanged
}

// LatchError records a translation fault: direction, bus status and
// error type. Any previous error status is discarded.
func (m *MSR) LatchError(write bool, st uint, tet uint32) {
	*m &^= EST | ED | TET | TE

	if !write {
		*m |= ED
	}
	*m |= MSR((uint32(st)&7)<<10) | MSR(tet&TET) | TE
}

// generic get flag function
func (m *MSR) getFlag(mask uint32) bool {
	return uint32(*m)&mask != 0
}

// String lists the set flags and non-zero multi-bit fields,
// i.e. "[TE TET=2 ED EST=2 TS]"
func (m MSR) String() string {
	var parts []string
	for _, f := range Fields {
		v := f.Get(uint32(m))
		if v == 0 {
			continue
		}
		if f.Width() == 1 {
			parts = append(parts, f.Name)
		} else {
			parts = append(parts, fmt.Sprintf("%s=%d", f.Name, v))
		}
	}
	return "[" + strings.Join(parts, " ") + "]"
}
