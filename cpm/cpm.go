// Package cpm implements the minimal CP/M BDOS shim needed to run a .COM
// transient program against a z80.CPU: function dispatch at the BDOS entry
// point, console output, and the two supplemented convenience calls.
package cpm

import (
	"fmt"
	"io"

	"github.com/eightbit-systems/z80sys/z80"
)

const (
	bdosEntry     = 0x0005
	transientBase = 0x0100
	memSize       = 0x10000
)

// Machine owns the 64 KiB address space a CP/M transient program runs in
// and the CPU stepping through it. It implements z80.Bus directly.
type Machine struct {
	mem [memSize]byte
	out io.Writer

	CPU *z80.CPU
}

// NewMachine constructs a Machine that writes BDOS console output to out.
func NewMachine(out io.Writer) *Machine {
	m := &Machine{out: out}
	m.CPU = z80.NewCPU(m)
	return m
}

// Read implements z80.Bus.
func (m *Machine) Read(addr uint16) byte { return m.mem[addr] }

// Write implements z80.Bus.
func (m *Machine) Write(addr uint16, v byte) { m.mem[addr] = v }

// In implements z80.Bus. CP/M transients never perform real port I/O in
// this shell; every port reads as 0xFF.
func (m *Machine) In(uint16) byte { return 0xFF }

// Out implements z80.Bus as a no-op.
func (m *Machine) Out(uint16, byte) {}

// Load places a .COM image at 0x0100, sets SP to 0xFFFE, pushes 0x0000 as
// the return address so a program's final RET exits through address 0,
// and positions PC at the transient's entry point.
func (m *Machine) Load(image []byte) error {
	if len(image) > memSize-transientBase {
		return fmt.Errorf("cpm: transient is %d bytes, too large to load at 0x%04X", len(image), transientBase)
	}
	copy(m.mem[transientBase:], image)
	m.CPU.SP = 0xFFFE
	m.CPU.PC = transientBase
	m.CPU.SP -= 2
	m.mem[m.CPU.SP] = 0x00   // low byte of the pushed return address, 0x0000
	m.mem[m.CPU.SP+1] = 0x00 // high byte
	return nil
}

// Run steps the CPU until the transient jumps to address 0 (its pushed
// return address), halts, or calls BDOS function 0 (explicit terminate),
// servicing BDOS calls at 0x0005 along the way.
func (m *Machine) Run() {
	for {
		if m.CPU.PC == bdosEntry {
			if m.bdosCall() {
				return
			}
			continue
		}
		if m.CPU.PC == 0x0000 || m.CPU.Halted {
			return
		}
		m.CPU.Step()
	}
}

// bdosCall services one BDOS request (function selector in C, arguments in
// DE) and performs the RET a real BDOS entry point would, returning
// control to the caller's stack. It reports true when the transient asked
// to terminate (function 0).
func (m *Machine) bdosCall() bool {
	fn := m.CPU.C
	de := m.CPU.DE()

	switch fn {
	case 0: // System reset / program terminate.
		return true
	case 2: // Console output: character in E.
		m.writeByte(m.CPU.E)
	case 6: // Direct console I/O, output-only subset: E != 0xFF writes the byte.
		if m.CPU.E != 0xFF {
			m.writeByte(m.CPU.E)
		}
	case 9: // Console output: '$'-terminated string at DE.
		for addr := de; m.mem[addr] != '$'; addr++ {
			m.writeByte(m.mem[addr])
		}
	case 11: // Console status: this shell never has a key ready.
		m.CPU.A = 0x00
	}

	lo := m.mem[m.CPU.SP]
	m.CPU.SP++
	hi := m.mem[m.CPU.SP]
	m.CPU.SP++
	m.CPU.PC = uint16(hi)<<8 | uint16(lo)
	return false
}

func (m *Machine) writeByte(b byte) {
	if m.out != nil {
		m.out.Write([]byte{b})
	}
}
