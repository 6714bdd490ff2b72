package mmu

import (
	"bytes"
	"log"
	"math/bits"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"ns32082/bus"
	"ns32082/msr"
)

// page table layout used by the tests
const (
	testPTB0 = 0x00001000
	testPTB1 = 0x00004000
	testL2   = 0x00002000 // level 2 table for PTB0
	testL2u  = 0x00005000 // level 2 table for PTB1
)

type fixture struct {
	ram *bus.RAM
	m   *MMU
	log bytes.Buffer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{ram: bus.NewRAM()}
	f.m = New(f.ram, log.New(&f.log, "", 0))
	f.m.regs.PTB[0] = testPTB0
	f.m.regs.PTB[1] = testPTB1
	return f
}

// opword builds the bus form of a format 14 operation word
func opword(op, quick, size uint) uint16 {
	return bits.ReverseBytes16(uint16((size - 1) | op<<2 | quick<<7))
}

// command runs a format 14 command up to the point where status is ready
func (f *fixture) command(op, quick, size uint, value uint64) {
	f.m.SlaveWrite(Format14)
	f.m.SlaveWrite(opword(op, quick, size))
	if op == OpSMR {
		return
	}
	for i := uint(0); i < size; i += 2 {
		f.m.SlaveWrite(uint16(value >> (8 * i)))
	}
}

// lmr loads a register and returns the status word
func (f *fixture) lmr(t *testing.T, quick uint, value uint32) uint16 {
	t.Helper()
	f.command(OpLMR, quick, 4, uint64(value))
	s, tcy := f.m.SlaveStatus()
	if tcy != tcyLMR {
		t.Errorf("lmr tcy = %d, want %d", tcy, tcyLMR)
	}
	if !f.m.Idle() {
		t.Errorf("lmr left state %s", f.m.state)
	}
	return s
}

// smr stores a register through the slave protocol
func (f *fixture) smr(t *testing.T, quick uint) uint32 {
	t.Helper()
	f.command(OpSMR, quick, 4, 0)
	if s, tcy := f.m.SlaveStatus(); s != SlaveOK || tcy != tcySMR {
		t.Errorf("smr status = %04x tcy %d, want 0 tcy %d", s, tcy, tcySMR)
	}
	lo := f.m.SlaveRead()
	hi := f.m.SlaveRead()
	if !f.m.Idle() {
		t.Errorf("smr left state %s", f.m.state)
	}
	return uint32(lo) | uint32(hi)<<16
}

// mapPage installs level 1 and level 2 entries for va
func (f *fixture) mapPage(ptb, l2 uint32, va uint32, pte1, pte2 PTE) {
	f.ram.WriteDword(ptb|((va&VaIndex1)>>14), uint32(pte1)|l2&PtePFN)
	l2base := l2 & PtePFN
	if pte1&PteMS != 0 {
		l2base |= 1 << 24
	}
	f.ram.WriteDword(l2base|((va&VaIndex2)>>7), uint32(pte2))
}

func (f *fixture) pte1(ptb, va uint32) PTE {
	a := ptb | ((va & VaIndex1) >> 14)
	return PTE(f.ram.ReadWord(a)) | PTE(f.ram.ReadWord(a+2))<<16
}

func (f *fixture) pte2(l2, va uint32) PTE {
	a := l2 | ((va & VaIndex2) >> 7)
	return PTE(f.ram.ReadWord(a)) | PTE(f.ram.ReadWord(a+2))<<16
}

func TestNew_Reset(t *testing.T) {
	f := newFixture(t)
	f.m.regs.MSR = msr.TS | msr.TE
	f.m.regs.BCNT = 7
	// leave a command half done
	f.m.SlaveWrite(Format14)
	f.m.SlaveWrite(opword(OpLMR, PTB0, 4))

	f.m.Reset()
	if f.m.MSR() != 0 {
		t.Errorf("Reset() left MSR %08x", f.m.MSR())
	}
	if !f.m.Idle() {
		t.Errorf("Reset() left state %s", f.m.state)
	}
	if f.m.Registers().BCNT != 7 {
		t.Errorf("Reset() cleared BCNT")
	}
}

func TestMMU_State(t *testing.T) {
	f := newFixture(t)
	f.m.regs.MSR = msr.TS | msr.TE
	f.m.regs.PF[0] = 0x123456

	want := []StateEntry{
		{"MSR", 0x00020001, "%08X"},
		{"BPR0", 0, "%08X"},
		{"BPR1", 0, "%08X"},
		{"PF0", 0x123456, "%06X"},
		{"PF1", 0, "%06X"},
		{"SC", 0, "%08X"},
		{"BCNT", 0, "%06X"},
		{"PTB0", testPTB0, "%08X"},
		{"PTB1", testPTB1, "%08X"},
		{"EIA", 0, "%08X"},
	}
	entries := f.m.State()
	if diff := cmp.Diff(want, entries); diff != "" {
		t.Errorf("State() mismatch (-want +got):\n%s", diff)
	}
	if got := entries[0].String(); got != "MSR: 00020001" {
		t.Errorf("State()[0] = %q, want %q", got, "MSR: 00020001")
	}
	if got := entries[3].String(); got != "PF0: 123456" {
		t.Errorf("PF0 entry = %q", got)
	}

	var buf bytes.Buffer
	f.m.DumpRegisters(&buf)
	for _, want := range []string{"|MSR: 00020001|", "|PTB0: 00001000|", "[TE TS]", "state idle"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("DumpRegisters() = %q, missing %q", buf.String(), want)
		}
	}
}

func TestMMU_NilLogger(t *testing.T) {
	m := New(bus.NewRAM(), nil)
	// protocol error with discarded output
	if s, _ := m.SlaveStatus(); s != 0 {
		t.Errorf("SlaveStatus() = %04x, want 0", s)
	}
}

func TestPTE_String(t *testing.T) {
	tests := []struct {
		pte  PTE
		want string
	}{
		{0, "00000000[----0]"},
		{MakePTE(0x2000, PlURW, true) | PteR, "0000200f[VR--3]"},
		{MakePTE(1<<24|0x400, PlSRW, true) | PteM, "80000413[V-MS1]"},
	}
	for _, tt := range tests {
		if got := tt.pte.String(); got != tt.want {
			t.Errorf("PTE(%08x).String() = %q, want %q", uint32(tt.pte), got, tt.want)
		}
	}
}
