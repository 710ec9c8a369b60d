package z80

import "testing"

func TestPushPopIsIdentity(t *testing.T) {
	r := newTestRig()
	r.cpu.SP = 0xFFFE
	r.cpu.SetBC(0x1234)
	sp := r.cpu.SP
	r.load(0, 0xC5, 0xC1) // PUSH BC; POP BC
	r.run(2)
	requireEqualU16(t, "BC", r.cpu.BC(), 0x1234)
	requireEqualU16(t, "SP", r.cpu.SP, sp)
}

func TestExDEHLTwiceIsIdentity(t *testing.T) {
	r := newTestRig()
	r.cpu.SetDE(0x1111)
	r.cpu.SetHL(0x2222)
	r.load(0, 0xEB, 0xEB)
	r.run(2)
	requireEqualU16(t, "DE", r.cpu.DE(), 0x1111)
	requireEqualU16(t, "HL", r.cpu.HL(), 0x2222)
}

func TestExxTwiceIsIdentity(t *testing.T) {
	r := newTestRig()
	r.cpu.SetBC(0x1111)
	r.cpu.SetDE(0x2222)
	r.cpu.SetHL(0x3333)
	r.load(0, 0xD9, 0xD9)
	r.run(2)
	requireEqualU16(t, "BC", r.cpu.BC(), 0x1111)
	requireEqualU16(t, "DE", r.cpu.DE(), 0x2222)
	requireEqualU16(t, "HL", r.cpu.HL(), 0x3333)
}

func TestExAFAF2TwiceIsIdentity(t *testing.T) {
	r := newTestRig()
	r.cpu.SetAF(0x1234)
	r.load(0, 0x08, 0x08)
	r.run(2)
	requireEqualU16(t, "AF", r.cpu.AF(), 0x1234)
}

func TestRIncrementPreservesBit7(t *testing.T) {
	r := newTestRig()
	r.cpu.R = 0x80
	r.load(0, 0x00) // NOP
	r.run(1)
	if r.cpu.R&0x80 != 0x80 {
		t.Fatalf("R bit 7 not preserved: R=0x%02X", r.cpu.R)
	}
}

func TestClocksTracksStepReturn(t *testing.T) {
	r := newTestRig()
	r.load(0, 0x00, 0x00)
	before := r.cpu.Clocks
	n := r.cpu.Step()
	if r.cpu.Clocks != before+uint64(n) {
		t.Fatalf("Clocks did not advance by step return: Clocks=%d before=%d n=%d", r.cpu.Clocks, before, n)
	}
}

func TestHaltHoldsPCAndCosts4(t *testing.T) {
	r := newTestRig()
	r.load(0, 0x76) // HALT
	r.run(1)
	requireEqualU16(t, "PC", r.cpu.PC, 0)
	if r.bus.mem[r.cpu.PC] != 0x76 {
		t.Fatalf("halted PC should point at the HALT opcode, mem[PC]=0x%02X", r.bus.mem[r.cpu.PC])
	}
	pc := r.cpu.PC
	n := r.cpu.Step()
	if n != 4 {
		t.Fatalf("halted step should cost 4 T-states, got %d", n)
	}
	requireEqualU16(t, "PC", r.cpu.PC, pc)
}
