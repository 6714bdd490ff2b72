package script

import (
	"bytes"
	"strings"
	"testing"

	"ns32082/msr"
	"ns32082/system"
)

func TestRunString(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"load msr", `print(lmr(reg.MSR, msr.TU)) print(hex(smr("msr")))`, "0\n00010000\n"},
		{"ptb round trip", `lmr("PTB0", 0x1000) print(hex(smr(reg.PTB0)))`, "00001000\n"},
		{"quick value", `lmr(0xb, 0x12345678) print(hex(smr(0xb)))`, "00345678\n"},
		{"pass through", `poke(0x100, 42) print(read(0x100), peek(0x100))`, "42\t42\n"},
		{"pte", `print(hex(pte(0x7a00, pl.URW))) print(hex(pte(0x1007a00, pl.SRO, false)))`, "00007a07\n80007a00\n"},
		{"unmapped translate", `lmr(reg.MSR, msr.TU) print(translate(0x420000))`, "nil\tabort\n"},
		{"print", `print("a", 1, true, nil)`, "a\t1\ttrue\tnil\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			sys := system.New(nil, nil)
			if err := RunString(sys, tt.src, &out); err != nil {
				t.Fatal(err)
			}
			if out.String() != tt.want {
				t.Errorf("output %q, want %q", out.String(), tt.want)
			}
		})
	}
}

func TestRun(t *testing.T) {
	var out bytes.Buffer
	sys := system.New(nil, nil)
	if err := Run(sys, "testdata/map.lua", &out); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(out.String(), "\n")
	want := []string{"00007a08", "false\ttrue", "12345678"}
	for i, w := range want {
		if i >= len(lines) || lines[i] != w {
			t.Fatalf("output:\n%s\nline %d want %q", out.String(), i, w)
		}
	}
	if !strings.HasPrefix(lines[3], "nil\ttrap 2 at 010208: write abort") {
		t.Errorf("aborted write printed %q", lines[3])
	}

	if sys.MMU.MSR()&(msr.TE|msr.TetPL) != msr.TE|msr.TetPL {
		t.Errorf("MSR = %08x, want TE and TET PL latched", sys.MMU.MSR())
	}
	if n := len(sys.Traps()); n != 1 {
		t.Errorf("%d traps recorded, want 1", n)
	}
	if eia := sys.MMU.Registers().EIA; eia != 0x010208 {
		t.Errorf("EIA = %08x, want 00010208", eia)
	}
}

func TestRunString_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"syntax", `lmr(`},
		{"unknown register", `lmr("XYZ", 1)`},
		{"missing argument", `smr()`},
		{"negative index", `lmr(-1, 1)`},
		{"index too large", `smr(16)`},
		{"runtime", `error("boom")`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := RunString(system.New(nil, nil), tt.src, &bytes.Buffer{}); err == nil {
				t.Errorf("RunString(%q) succeeded", tt.src)
			}
		})
	}
}

func TestRun_MissingFile(t *testing.T) {
	if err := Run(system.New(nil, nil), "testdata/missing.lua", &bytes.Buffer{}); err == nil {
		t.Error("Run of a missing file succeeded")
	}
}

func TestDriver_Traps(t *testing.T) {
	var out bytes.Buffer
	sys := system.New(nil, nil)
	d := New(sys, &out)
	defer d.Close()

	src := `
lmr(reg.MSR, msr.TU)
local v, msg = read(0x420000)
print(v == nil, #traps())
reset()
print(#traps(), smr(reg.MSR))
`
	if err := d.DoString(src); err != nil {
		t.Fatal(err)
	}
	if out.String() != "true\t1\n0\t0\n" {
		t.Errorf("output %q", out.String())
	}
}

func TestDriver_Dump(t *testing.T) {
	var out bytes.Buffer
	sys := system.New(nil, nil)
	d := New(sys, &out)
	defer d.Close()

	if err := d.DoString(`lmr(reg.SC, 0x1234) dump()`); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "|SC: 00001234|") {
		t.Errorf("dump %q", out.String())
	}
}

func TestRunString_RegisterRange(t *testing.T) {
	for _, src := range []string{`lmr(-1, 0x00ffffff)`, `lmr(16, 0x00ffffff)`} {
		sys := system.New(nil, nil)
		if err := RunString(sys, src, &bytes.Buffer{}); err == nil {
			t.Errorf("RunString(%q) succeeded", src)
		}
		if regs := sys.MMU.Registers(); regs.EIA != 0 || regs.BPR[0] != 0 {
			t.Errorf("RunString(%q) loaded a register: EIA %08x BPR0 %08x", src, regs.EIA, regs.BPR[0])
		}
	}
}
