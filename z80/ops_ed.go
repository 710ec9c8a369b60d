package z80

// initEDOps builds the ED-prefixed opcode table. The ED map is far less
// regular than the base map, so it is built from a direct switch on the
// opcode byte rather than a (x, y, z) decomposition; unassigned entries
// fall through to an 8 T-state no-op, per spec.
func (c *CPU) initEDOps() {
	for i := range c.edOps {
		c.edOps[i] = opEDNop
	}

	// IN r,(C) / OUT (C),r for each of the 8 row groups (y = op row).
	for y := byte(0); y < 8; y++ {
		y := y
		c.edOps[0x40+y*8] = func(c *CPU) { opINPortR(c, y) }
		c.edOps[0x41+y*8] = func(c *CPU) { opOUTPortR(c, y) }
	}
	for _, p := range []byte{0, 1, 2, 3} {
		p := p
		c.edOps[0x42+p*0x10] = func(c *CPU) { opSBCHLRP(c, p) }
		c.edOps[0x4A+p*0x10] = func(c *CPU) { opADCHLRP(c, p) }
		c.edOps[0x43+p*0x10] = func(c *CPU) { opLDIndNNRP(c, p) }
		c.edOps[0x4B+p*0x10] = func(c *CPU) { opLDRPIndNN(c, p) }
	}
	for _, op := range []byte{0x44, 0x4C, 0x54, 0x5C, 0x64, 0x6C, 0x74, 0x7C} {
		c.edOps[op] = opNEG
	}
	for _, op := range []byte{0x45, 0x55, 0x65, 0x75} {
		c.edOps[op] = opRETN
	}
	for _, op := range []byte{0x4D, 0x5D, 0x6D, 0x7D} {
		c.edOps[op] = opRETN // RETI is encoded identically in this core.
	}
	for _, op := range []byte{0x46, 0x4E, 0x66, 0x6E} {
		c.edOps[op] = func(c *CPU) { opIM(c, 0) }
	}
	for _, op := range []byte{0x56, 0x76} {
		c.edOps[op] = func(c *CPU) { opIM(c, 1) }
	}
	for _, op := range []byte{0x5E, 0x7E} {
		c.edOps[op] = func(c *CPU) { opIM(c, 2) }
	}
	for _, op := range []byte{0x77, 0x7F} {
		c.edOps[op] = opEDNop
	}

	c.edOps[0x47] = opLDIA
	c.edOps[0x4F] = opLDRA
	c.edOps[0x57] = opLDAI
	c.edOps[0x5F] = opLDAR
	c.edOps[0x67] = opRRD
	c.edOps[0x6F] = opRLD

	c.edOps[0xA0] = func(c *CPU) { opLDIOp(c, true) }
	c.edOps[0xA8] = func(c *CPU) { opLDIOp(c, false) }
	c.edOps[0xB0] = func(c *CPU) { opLDIROp(c, true) }
	c.edOps[0xB8] = func(c *CPU) { opLDIROp(c, false) }

	c.edOps[0xA1] = func(c *CPU) { opCPIOp(c, true) }
	c.edOps[0xA9] = func(c *CPU) { opCPIOp(c, false) }
	c.edOps[0xB1] = func(c *CPU) { opCPIROp(c, true) }
	c.edOps[0xB9] = func(c *CPU) { opCPIROp(c, false) }

	c.edOps[0xA2] = func(c *CPU) { opINIOp(c, true) }
	c.edOps[0xAA] = func(c *CPU) { opINIOp(c, false) }
	c.edOps[0xB2] = func(c *CPU) { opINIROp(c, true) }
	c.edOps[0xBA] = func(c *CPU) { opINIROp(c, false) }

	c.edOps[0xA3] = func(c *CPU) { opOUTIOp(c, true) }
	c.edOps[0xAB] = func(c *CPU) { opOUTIOp(c, false) }
	c.edOps[0xB3] = func(c *CPU) { opOTIROp(c, true) }
	c.edOps[0xBB] = func(c *CPU) { opOTIROp(c, false) }
}

func opEDNop(c *CPU) { c.tick(8) }

func opINPortR(c *CPU, y byte) {
	v := c.in(c.BC())
	if y != 6 {
		c.setPlainReg(y, v)
	}
	f := c.sz53From(v) | (c.F & FlagC)
	if parityTable[v] {
		f |= FlagPV
	}
	c.F = f
	c.tick(12)
}

func opOUTPortR(c *CPU, y byte) {
	var v byte
	if y != 6 {
		v = c.plainReg(y)
	}
	c.out(c.BC(), v)
	c.tick(12)
}

func opSBCHLRP(c *CPU, p byte) {
	result := c.sbcHL16(c.rp(2), c.rp(p))
	c.setRp(2, result)
	c.tick(15)
}

func opADCHLRP(c *CPU, p byte) {
	result := c.adcHL16(c.rp(2), c.rp(p))
	c.setRp(2, result)
	c.tick(15)
}

func opLDIndNNRP(c *CPU, p byte) {
	addr := c.fetchWord()
	v := c.rp(p)
	c.write(addr, byte(v))
	c.write(addr+1, byte(v>>8))
	c.tick(20)
}

func opLDRPIndNN(c *CPU, p byte) {
	addr := c.fetchWord()
	lo := c.read(addr)
	hi := c.read(addr + 1)
	c.setRp(p, uint16(hi)<<8|uint16(lo))
	c.tick(20)
}

func opNEG(c *CPU) {
	a := c.A
	result := byte(0) - a
	f := c.sz53From(result) | FlagN
	if a&0x0F != 0 {
		f |= FlagH
	}
	if a != 0 {
		f |= FlagC
	}
	if a == 0x80 {
		f |= FlagPV
	}
	c.A = result
	c.F = f
	c.tick(8)
}

func opRETN(c *CPU) {
	c.IFF1 = c.IFF2
	c.PC = c.popWord()
	c.tick(14)
}

func opIM(c *CPU, mode byte) {
	c.IM = mode
	c.tick(8)
}

func opLDIA(c *CPU) {
	c.I = c.A
	c.tick(9)
}

func opLDRA(c *CPU) {
	c.R = c.A
	c.tick(9)
}

// updateLDAIRFlags implements the Open Question resolution: P/V ← IFF2,
// every other flag via the standard SZ53 derivation, specified once for
// both LD A,I and LD A,R.
func (c *CPU) updateLDAIRFlags(v byte) {
	f := c.sz53From(v) | (c.F & FlagC)
	if c.IFF2 {
		f |= FlagPV
	}
	c.F = f
}

func opLDAI(c *CPU) {
	c.A = c.I
	c.updateLDAIRFlags(c.A)
	c.tick(9)
}

func opLDAR(c *CPU) {
	c.A = c.R
	c.updateLDAIRFlags(c.A)
	c.tick(9)
}

func opRRD(c *CPU) {
	addr := c.HL()
	m := c.read(addr)
	a := c.A
	newM := (a&0x0F)<<4 | (m >> 4)
	newA := (a & 0xF0) | (m & 0x0F)
	c.write(addr, newM)
	c.A = newA
	f := c.sz53From(newA) | (c.F & FlagC)
	if parityTable[newA] {
		f |= FlagPV
	}
	c.F = f
	c.tick(18)
}

func opRLD(c *CPU) {
	addr := c.HL()
	m := c.read(addr)
	a := c.A
	newM := (m << 4) | (a & 0x0F)
	newA := (a & 0xF0) | (m >> 4)
	c.write(addr, newM)
	c.A = newA
	f := c.sz53From(newA) | (c.F & FlagC)
	if parityTable[newA] {
		f |= FlagPV
	}
	c.F = f
	c.tick(18)
}

// deriveF3F5FromN implements the documented-undocumented quirk shared by
// LDI/LDD and CPI/CPD: F3 comes from bit 3 of n, but F5 comes from bit 1
// of n — not bit 5 — a consequence of how the real silicon routes the ALU
// result internally.
func deriveF3F5FromN(n byte) byte {
	var f byte
	if n&0x08 != 0 {
		f |= FlagF3
	}
	if n&0x02 != 0 {
		f |= FlagF5
	}
	return f
}

func (c *CPU) ldiStep(increment bool) {
	v := c.read(c.HL())
	c.write(c.DE(), v)
	if increment {
		c.SetHL(c.HL() + 1)
		c.SetDE(c.DE() + 1)
	} else {
		c.SetHL(c.HL() - 1)
		c.SetDE(c.DE() - 1)
	}
	c.SetBC(c.BC() - 1)

	n := v + c.A
	f := c.F & (FlagS | FlagZ | FlagC)
	if c.BC() != 0 {
		f |= FlagPV
	}
	f |= deriveF3F5FromN(n)
	c.F = f
}

func opLDIOp(c *CPU, increment bool) {
	c.ldiStep(increment)
	c.tick(16)
}

func opLDIROp(c *CPU, increment bool) {
	c.ldiStep(increment)
	if c.BC() != 0 {
		c.PC -= 2
		c.tick(21)
	} else {
		c.tick(16)
	}
}

func (c *CPU) cpiStep(increment bool) {
	v := c.read(c.HL())
	a := c.A
	result := a - v
	if increment {
		c.SetHL(c.HL() + 1)
	} else {
		c.SetHL(c.HL() - 1)
	}
	c.SetBC(c.BC() - 1)

	hFlag := a&0x0F < v&0x0F
	n := result
	if hFlag {
		n--
	}

	f := (c.F & FlagC) | FlagN
	if result&0x80 != 0 {
		f |= FlagS
	}
	if result == 0 {
		f |= FlagZ
	}
	if hFlag {
		f |= FlagH
	}
	if c.BC() != 0 {
		f |= FlagPV
	}
	f |= deriveF3F5FromN(n)
	c.F = f
}

func opCPIOp(c *CPU, increment bool) {
	c.cpiStep(increment)
	c.tick(16)
}

func opCPIROp(c *CPU, increment bool) {
	c.cpiStep(increment)
	if c.BC() != 0 && !c.Flag(FlagZ) {
		c.PC -= 2
		c.tick(21)
	} else {
		c.tick(16)
	}
}

func (c *CPU) iniStep(increment bool) {
	v := c.in(c.BC())
	c.write(c.HL(), v)
	if increment {
		c.SetHL(c.HL() + 1)
	} else {
		c.SetHL(c.HL() - 1)
	}
	c.B = c.dec8(c.B)
	if v&0x80 != 0 {
		c.F |= FlagN
	} else {
		c.F &^= FlagN
	}
}

func opINIOp(c *CPU, increment bool) {
	c.iniStep(increment)
	c.tick(16)
}

func opINIROp(c *CPU, increment bool) {
	c.iniStep(increment)
	if c.B != 0 {
		c.PC -= 2
		c.tick(21)
	} else {
		c.tick(16)
	}
}

func (c *CPU) outiStep(increment bool) {
	v := c.read(c.HL())
	c.B = c.dec8(c.B)
	c.out(c.BC(), v)
	if increment {
		c.SetHL(c.HL() + 1)
	} else {
		c.SetHL(c.HL() - 1)
	}
	if v&0x80 != 0 {
		c.F |= FlagN
	} else {
		c.F &^= FlagN
	}
}

func opOUTIOp(c *CPU, increment bool) {
	c.outiStep(increment)
	c.tick(16)
}

func opOTIROp(c *CPU, increment bool) {
	c.outiStep(increment)
	if c.B != 0 {
		c.PC -= 2
		c.tick(21)
	} else {
		c.tick(16)
	}
}
