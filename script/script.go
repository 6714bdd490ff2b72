package script

import (
	"errors"
	"fmt"
	"io"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"ns32082/interrupts"
	"ns32082/mmu"
	"ns32082/msr"
	"ns32082/system"
)

/*
Lua driver for the MMU harness.

Globals:
	lmr(reg, value)          -> status word
	smr(reg)                 -> value
	rdval(va), wrval(va)     -> true when the access is refused
	read(va [, user])        -> value
	write(va, value [, user])-> true
	fetch(va [, user [, sequential]]) -> value
	peek(va [, user])        -> value, side effect free
	translate(va [, user [, write]]) -> physical address, result
	poke(pa, value)          -> stores physical memory
	pte(frame, level [, valid]) -> page table entry
	reset(), dump(), traps(), hex(v), print(...)
	reg.NAME, msr.NAME, pl.NAME constants

Functions that hit an abort return nil and the trap message.
reg arguments take a register name or its quick value.
*/

// Driver runs scripts against one system
type Driver struct {
	L   *lua.LState
	sys *system.System
	out io.Writer
}

// New returns a driver with the harness bindings installed
func New(sys *system.System, out io.Writer) *Driver {
	d := &Driver{L: lua.NewState(), sys: sys, out: out}
	d.register()
	return d
}

// Close releases the Lua state
func (d *Driver) Close() {
	d.L.Close()
}

// DoFile runs the script at path
func (d *Driver) DoFile(path string) error {
	if err := d.L.DoFile(path); err != nil {
		return fmt.Errorf("script %s: %w", path, err)
	}
	return nil
}

// DoString runs src
func (d *Driver) DoString(src string) error {
	if err := d.L.DoString(src); err != nil {
		return fmt.Errorf("script: %w", err)
	}
	return nil
}

// Run executes the script at path against sys, printing to out
func Run(sys *system.System, path string, out io.Writer) error {
	d := New(sys, out)
	defer d.Close()
	return d.DoFile(path)
}

// RunString executes src against sys, printing to out
func RunString(sys *system.System, src string, out io.Writer) error {
	d := New(sys, out)
	defer d.Close()
	return d.DoString(src)
}

func (d *Driver) register() {
	funcs := map[string]lua.LGFunction{
		"lmr":       d.lmr,
		"smr":       d.smr,
		"rdval":     d.rdval,
		"wrval":     d.wrval,
		"read":      d.read,
		"write":     d.write,
		"fetch":     d.fetch,
		"peek":      d.peek,
		"translate": d.translate,
		"poke":      d.poke,
		"pte":       pte,
		"reset":     d.reset,
		"dump":      d.dump,
		"traps":     d.traps,
		"hex":       hex,
		"print":     d.print,
	}
	for name, fn := range funcs {
		d.L.SetGlobal(name, d.L.NewFunction(fn))
	}

	regs := d.L.NewTable()
	for quick := uint(0); quick < 16; quick++ {
		if name, ok := mmu.RegisterName(quick); ok {
			d.L.SetField(regs, name, lua.LNumber(quick))
		}
	}
	d.L.SetGlobal("reg", regs)

	flags := d.L.NewTable()
	for _, f := range msr.Fields {
		d.L.SetField(flags, f.Name, lua.LNumber(f.Mask))
	}
	d.L.SetField(flags, "TetPL", lua.LNumber(msr.TetPL))
	d.L.SetField(flags, "TetIL1", lua.LNumber(msr.TetIL1))
	d.L.SetField(flags, "TetIL2", lua.LNumber(msr.TetIL2))
	d.L.SetGlobal("msr", flags)

	levels := d.L.NewTable()
	d.L.SetField(levels, "SRO", lua.LNumber(mmu.PlSRO))
	d.L.SetField(levels, "SRW", lua.LNumber(mmu.PlSRW))
	d.L.SetField(levels, "URO", lua.LNumber(mmu.PlURO))
	d.L.SetField(levels, "URW", lua.LNumber(mmu.PlURW))
	d.L.SetGlobal("pl", levels)
}

func checkUint32(L *lua.LState, n int) uint32 {
	return uint32(int64(L.CheckNumber(n)))
}

func checkRegister(L *lua.LState, n int) uint {
	if s, ok := L.Get(n).(lua.LString); ok {
		quick, ok := mmu.RegisterIndex(strings.ToUpper(string(s)))
		if !ok {
			L.ArgError(n, "unknown register "+string(s))
		}
		return quick
	}
	quick := L.CheckInt(n)
	if quick < 0 || quick > 15 {
		L.ArgError(n, fmt.Sprintf("register index %d out of range", quick))
	}
	return uint(quick)
}

// fail returns nil and the error message to the script. Protocol errors
// are script bugs and raise.
func fail(L *lua.LState, err error) int {
	var trap interrupts.Trap
	if !errors.As(err, &trap) {
		L.RaiseError("%v", err)
		return 0
	}
	L.Push(lua.LNil)
	L.Push(lua.LString(trap.Error()))
	return 2
}

func (d *Driver) lmr(L *lua.LState) int {
	s, err := d.sys.LMR(checkRegister(L, 1), checkUint32(L, 2))
	if err != nil {
		return fail(L, err)
	}
	L.Push(lua.LNumber(s))
	return 1
}

func (d *Driver) smr(L *lua.LState) int {
	v, err := d.sys.SMR(checkRegister(L, 1))
	if err != nil {
		return fail(L, err)
	}
	L.Push(lua.LNumber(v))
	return 1
}

func (d *Driver) rdval(L *lua.LState) int {
	f, err := d.sys.RDVAL(checkUint32(L, 1))
	if err != nil {
		return fail(L, err)
	}
	L.Push(lua.LBool(f))
	return 1
}

func (d *Driver) wrval(L *lua.LState) int {
	f, err := d.sys.WRVAL(checkUint32(L, 1))
	if err != nil {
		return fail(L, err)
	}
	L.Push(lua.LBool(f))
	return 1
}

func (d *Driver) read(L *lua.LState) int {
	v, err := d.sys.Read32(checkUint32(L, 1), L.OptBool(2, true))
	if err != nil {
		return fail(L, err)
	}
	L.Push(lua.LNumber(v))
	return 1
}

func (d *Driver) write(L *lua.LState) int {
	if err := d.sys.Write32(checkUint32(L, 1), checkUint32(L, 2), L.OptBool(3, true)); err != nil {
		return fail(L, err)
	}
	L.Push(lua.LTrue)
	return 1
}

func (d *Driver) fetch(L *lua.LState) int {
	v, err := d.sys.Fetch(checkUint32(L, 1), L.OptBool(2, true), L.OptBool(3, false))
	if err != nil {
		return fail(L, err)
	}
	L.Push(lua.LNumber(v))
	return 1
}

func (d *Driver) peek(L *lua.LState) int {
	v, ok := d.sys.Peek(checkUint32(L, 1), L.OptBool(2, true))
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LNumber(v))
	return 1
}

// translate probes a mapping without touching page tables or diagnostics
func (d *Driver) translate(L *lua.LState) int {
	physical, res := d.sys.MMU.Translate(mmu.StODT, checkUint32(L, 1), L.OptBool(2, true), L.OptBool(3, false), false, true)
	if res != mmu.Complete {
		L.Push(lua.LNil)
	} else {
		L.Push(lua.LNumber(physical))
	}
	L.Push(lua.LString(res.String()))
	return 2
}

func (d *Driver) poke(L *lua.LState) int {
	d.sys.Poke(checkUint32(L, 1), checkUint32(L, 2))
	return 0
}

func pte(L *lua.LState) int {
	p := mmu.MakePTE(checkUint32(L, 1), checkUint32(L, 2), L.OptBool(3, true))
	L.Push(lua.LNumber(p))
	return 1
}

func (d *Driver) reset(L *lua.LState) int {
	d.sys.Reset()
	return 0
}

func (d *Driver) dump(L *lua.LState) int {
	d.sys.MMU.DumpRegisters(d.out)
	return 0
}

// traps returns the trap history as a list of messages
func (d *Driver) traps(L *lua.LState) int {
	t := L.NewTable()
	for _, trap := range d.sys.Traps() {
		t.Append(lua.LString(trap.Error()))
	}
	L.Push(t)
	return 1
}

func hex(L *lua.LState) int {
	L.Push(lua.LString(fmt.Sprintf("%08x", checkUint32(L, 1))))
	return 1
}

func (d *Driver) print(L *lua.LState) int {
	parts := make([]string, L.GetTop())
	for i := range parts {
		parts[i] = L.Get(i + 1).String()
	}
	fmt.Fprintln(d.out, strings.Join(parts, "\t"))
	return 0
}
