// Package basicsbc implements the single-board BASIC host shell: a 64 KiB
// address space with an 8 KiB ROM-protected low bank and a two-register
// UART, driving a z80.CPU through a cooperative Tick loop.
package basicsbc

import (
	"fmt"
	"io"

	"github.com/eightbit-systems/z80sys/loader"
	"github.com/eightbit-systems/z80sys/z80"
)

const (
	memSize = 0x10000
	romSize = 0x2000

	// DefaultQuantum is the T-state budget of one Tick call: roughly one
	// millisecond at a 7.3728 MHz CPU clock.
	DefaultQuantum = 7373
)

// Machine owns the 64 KiB address space, the UART, and the CPU driven
// through it. It implements z80.Bus directly.
type Machine struct {
	mem       [memSize]byte
	romLoaded bool

	uart *UART
	out  io.Writer
	CPU  *z80.CPU
}

// NewMachine constructs a Machine with its UART at the given base port and
// brings the CPU to its power-on state. Bytes the running program writes to
// the UART's data register are drained to out on every Tick; out may be nil
// to discard them.
func NewMachine(uartPort byte, out io.Writer) *Machine {
	m := &Machine{uart: newUART(uartPort), out: out}
	m.CPU = z80.NewCPU(m)
	return m
}

// LoadROM copies data into the low 8 KiB and arms write-protection for
// that range. data must not exceed 8 KiB.
func (m *Machine) LoadROM(data []byte) error {
	if len(data) > romSize {
		return fmt.Errorf("basicsbc: ROM image is %d bytes, exceeds %d byte bank", len(data), romSize)
	}
	copy(m.mem[:romSize], data)
	m.romLoaded = true
	return nil
}

// LoadHexImage parses an Intel HEX image directly into the full 64 KiB
// address space (unlike LoadROM, a hex image may legitimately populate RAM
// above the ROM bank) and then arms ROM write-protection for [0, 0x2000).
func (m *Machine) LoadHexImage(data []byte) error {
	if err := loader.LoadIntelHex(m.mem[:], data); err != nil {
		return err
	}
	m.romLoaded = true
	return nil
}

// Read implements z80.Bus.
func (m *Machine) Read(addr uint16) byte { return m.mem[addr] }

// Write implements z80.Bus. Writes below 0x2000 are silently dropped once
// a ROM has been loaded.
func (m *Machine) Write(addr uint16, v byte) {
	if m.romLoaded && addr < romSize {
		return
	}
	m.mem[addr] = v
}

// In implements z80.Bus, routing the UART's two registers and returning
// 0xFF from every other port.
func (m *Machine) In(port uint16) byte {
	switch byte(port) {
	case m.uart.basePort:
		return m.uart.readStatus()
	case m.uart.basePort + 1:
		return m.uart.readData()
	}
	return 0xFF
}

// Out implements z80.Bus.
func (m *Machine) Out(port uint16, v byte) {
	switch byte(port) {
	case m.uart.basePort:
		m.uart.writeControl(v)
	case m.uart.basePort + 1:
		m.uart.writeData(v)
	}
}

// PollFunc non-blockingly samples host input. ok reports whether a byte
// was available; exit reports the host has asked the machine to shut down
// (e.g. the operator pressed the configured escape key).
type PollFunc func() (b byte, ok bool, exit bool)

// Tick runs CPU.Step in a loop until at least quantum T-states have been
// consumed, polling poll before every instruction and delivering an RST
// 38h interrupt whenever the UART's receive interrupt is armed, RDRF is
// set, and the CPU has interrupts enabled. It returns true if poll
// requested a shutdown.
func (m *Machine) Tick(quantum int, poll PollFunc) bool {
	spent := 0
	for spent < quantum {
		if b, ok, exit := poll(); exit {
			return true
		} else if ok {
			m.uart.fill(b)
		}

		if m.uart.rdrf && m.uart.rxInterruptArmed && m.CPU.IFF1 {
			m.CPU.Interrupt(0xFF)
		}

		spent += m.CPU.Step()

		if b, ok := m.uart.DrainTx(); ok && m.out != nil {
			m.out.Write([]byte{b})
		}
	}
	return false
}

// DetectPort scans rom for IN A,(n) (0xDB) and OUT (n),A (0xD3) opcode and
// operand pairs, and returns the port p maximizing the count of accesses
// to p or p+1 across both directions, provided both directions are used.
// It returns 0x80 if no qualifying port is found.
func DetectPort(rom []byte) byte {
	var inCount, outCount [256]int
	for i := 0; i+1 < len(rom); i++ {
		switch rom[i] {
		case 0xDB:
			inCount[rom[i+1]]++
		case 0xD3:
			outCount[rom[i+1]]++
		}
	}

	best := byte(0x80)
	bestScore := 0
	for p := 0; p < 255; p++ {
		inSum := inCount[p] + inCount[p+1]
		outSum := outCount[p] + outCount[p+1]
		if inSum == 0 || outSum == 0 {
			continue
		}
		if score := inSum + outSum; score > bestScore {
			bestScore = score
			best = byte(p)
		}
	}
	return best
}
