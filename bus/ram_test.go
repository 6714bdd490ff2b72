package bus

import (
	"bytes"
	"testing"
)

func TestRAM_ReadWrite(t *testing.T) {
	r := NewRAM()

	r.WriteDword(0x1000, 0x11223344)
	if got := r.ReadDword(0x1000); got != 0x11223344 {
		t.Errorf("ReadDword() = %08x, want 11223344", got)
	}
	if got := r.ReadWord(0x1002); got != 0x1122 {
		t.Errorf("ReadWord(upper) = %04x, want 1122", got)
	}
	if got := r.Read8(0x1000); got != 0x44 {
		t.Errorf("Read8() = %02x, want 44", got)
	}

	// low word rewrite keeps the upper half
	r.WriteWord(0x1000, 0xbeef)
	if got := r.ReadDword(0x1000); got != 0x1122beef {
		t.Errorf("after WriteWord ReadDword() = %08x, want 1122beef", got)
	}

	if r.Access.Reads != 2 || r.Access.Writes != 1 {
		t.Errorf("Access = %+v, want 2 reads 1 write", r.Access)
	}
}

func TestRAM_Sparse(t *testing.T) {
	r := NewRAM()
	if got := r.ReadDword(0x01fffffc); got != 0 {
		t.Errorf("unwritten memory reads %08x", got)
	}
	if r.Frames() != 0 {
		t.Errorf("read allocated %d frames", r.Frames())
	}

	// straddles a frame boundary
	r.WriteDword(FrameSize-2, 0xaabbccdd)
	if r.Frames() != 2 {
		t.Errorf("Frames() = %d, want 2", r.Frames())
	}
	if got := r.ReadDword(FrameSize - 2); got != 0xaabbccdd {
		t.Errorf("ReadDword() = %08x, want aabbccdd", got)
	}

	// addresses wrap at the physical address width
	r.WriteDword(1<<AddressBits|0x40, 0x12345678)
	if got := r.ReadDword(0x40); got != 0x12345678 {
		t.Errorf("wrapped ReadDword() = %08x, want 12345678", got)
	}

	r.Reset()
	if r.Frames() != 0 || r.Access != (Access{}) {
		t.Errorf("Reset() left %d frames, %+v", r.Frames(), r.Access)
	}
}

func TestRAM_LoadDump(t *testing.T) {
	r := NewRAM()
	r.Load(0x200, []byte{1, 2, 3, 4, 5, 6, 7, 8})

	var buf bytes.Buffer
	if err := r.Dump(&buf, 0x200, 2); err != nil {
		t.Fatal(err)
	}
	want := "0000200 : 04030201\n0000204 : 08070605\n"
	if buf.String() != want {
		t.Errorf("Dump() = %q, want %q", buf.String(), want)
	}
}
