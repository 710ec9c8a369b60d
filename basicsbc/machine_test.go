package basicsbc

import (
	"bytes"
	"testing"
)

func TestROMProtectionAfterLoad(t *testing.T) {
	m := NewMachine(0x80, nil)
	rom := make([]byte, 0x100)
	rom[0] = 0xAA
	if err := m.LoadROM(rom); err != nil {
		t.Fatalf("LoadROM: %v", err)
	}
	m.Write(0x0000, 0xFF)
	if got := m.Read(0x0000); got != 0xAA {
		t.Fatalf("write to ROM bank took effect: mem[0] = 0x%02X", got)
	}
	m.Write(0x3000, 0x55)
	if got := m.Read(0x3000); got != 0x55 {
		t.Fatalf("write above ROM bank did not take effect: mem[0x3000] = 0x%02X", got)
	}
}

func TestLoadHexImagePopulatesRAMAndProtectsROM(t *testing.T) {
	m := NewMachine(0x80, nil)
	// One record at 0x0000 (ROM bank), one at 0x3000 (RAM).
	hex := ":03000000C3030037\n" +
		":02300000123488\n" +
		":00000001FF\n"
	if err := m.LoadHexImage([]byte(hex)); err != nil {
		t.Fatalf("LoadHexImage: %v", err)
	}
	if got := m.Read(0x3000); got != 0x12 {
		t.Fatalf("RAM byte not loaded: mem[0x3000] = 0x%02X", got)
	}
	m.Write(0x0000, 0xFF)
	if got := m.Read(0x0000); got == 0xFF {
		t.Fatalf("ROM bank should be write-protected after LoadHexImage")
	}
}

func TestUARTStatusAndMasterReset(t *testing.T) {
	m := NewMachine(0x80, nil)
	m.uart.fill(0x41)
	if status := m.In(0x80); status&statusRDRF == 0 {
		t.Fatalf("RDRF should be set after fill, status=0x%02X", status)
	}
	m.Out(0x80, controlMasterReset)
	if status := m.In(0x80); status&statusRDRF != 0 {
		t.Fatalf("master reset should clear RDRF, status=0x%02X", status)
	}
}

func TestUARTDataReadClearsRDRF(t *testing.T) {
	m := NewMachine(0x80, nil)
	m.uart.fill(0x42)
	if got := m.In(0x81); got != 0x42 {
		t.Fatalf("data register = 0x%02X, want 0x42", got)
	}
	if status := m.In(0x80); status&statusRDRF != 0 {
		t.Fatalf("reading data register should clear RDRF")
	}
}

func TestTickDrainsTxByteToOut(t *testing.T) {
	var buf bytes.Buffer
	m := NewMachine(0x80, &buf)
	m.Out(0x81, 'H') // program wrote 'H' to the UART data register
	poll := func() (byte, bool, bool) { return 0, false, false }
	m.Tick(4, poll) // one NOP's worth of T-states
	if got := buf.String(); got != "H" {
		t.Fatalf("Tick should drain the pending tx byte to out, got %q", got)
	}
	m.Tick(4, poll) // no new byte written: nothing further should be drained
	if got := buf.String(); got != "H" {
		t.Fatalf("Tick should not redrain an already-sent byte, got %q", got)
	}
}

func TestTickDeliversInterruptWhenArmedAndEnabled(t *testing.T) {
	m := NewMachine(0x80, nil)
	m.CPU.IFF1 = true
	m.CPU.IM = 1
	m.mem[0x0038] = 0x76 // HALT, so we can observe the interrupt landed
	m.Out(0x80, controlRxIntArmBit)

	delivered := false
	poll := func() (byte, bool, bool) {
		if !delivered {
			delivered = true
			return 0x58, true, false
		}
		return 0, false, false
	}
	m.Tick(4, poll)
	if m.CPU.PC < 0x0038 {
		t.Fatalf("interrupt not delivered: PC=0x%04X", m.CPU.PC)
	}
}

func TestTickHonorsExitRequest(t *testing.T) {
	m := NewMachine(0x80, nil)
	poll := func() (byte, bool, bool) { return 0, false, true }
	if !m.Tick(1000, poll) {
		t.Fatalf("Tick should report exit when poll requests it")
	}
}

func TestDetectPortPicksHighestScoringPort(t *testing.T) {
	rom := []byte{
		0xDB, 0x10, // IN A,(0x10)
		0xD3, 0x10, // OUT (0x10),A
		0xDB, 0x11, // IN A,(0x11)
		0xDB, 0x99, // IN A,(0x99), no matching OUT — shouldn't win
	}
	if got := DetectPort(rom); got != 0x10 {
		t.Fatalf("DetectPort = 0x%02X, want 0x10", got)
	}
}

func TestDetectPortDefaultsTo0x80(t *testing.T) {
	if got := DetectPort(nil); got != 0x80 {
		t.Fatalf("DetectPort(nil) = 0x%02X, want 0x80", got)
	}
}
