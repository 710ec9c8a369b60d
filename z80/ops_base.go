package z80

// initBaseOps builds the unprefixed opcode dispatch table by iterating the
// (x, y, z, p, q) decomposition programmatically rather than writing out
//256 named handlers by hand — the same approach the donor core uses to
// build its own base/CB/DD/FD/ED tables.
func (c *CPU) initBaseOps() {
	for opcode := 0; opcode < 256; opcode++ {
		op := byte(opcode)
		x := op >> 6
		y := (op >> 3) & 7
		z := op & 7
		p := y >> 1
		q := y & 1

		switch {
		case op == 0x00:
			c.baseOps[op] = opNOP
		case op == 0x76:
			c.baseOps[op] = opHALT
		case x == 1:
			// LD r[y], r[z]
			y, z := y, z
			c.baseOps[op] = func(c *CPU) { opLDRR(c, y, z) }
		case x == 2:
			// ALU[y] r[z]
			y, z := y, z
			c.baseOps[op] = func(c *CPU) { opALUR(c, y, z) }
		case x == 0 && z == 0 && y == 0:
			c.baseOps[op] = opNOP
		case x == 0 && z == 0 && y == 1:
			c.baseOps[op] = opEXAFAF2
		case x == 0 && z == 0 && y == 2:
			c.baseOps[op] = opDJNZ
		case x == 0 && z == 0 && y == 3:
			c.baseOps[op] = opJR
		case x == 0 && z == 0 && y >= 4:
			cc := y - 4
			c.baseOps[op] = func(c *CPU) { opJRCond(c, cc) }
		case x == 0 && z == 1 && q == 0:
			c.baseOps[op] = func(c *CPU) { opLDRPNN(c, p) }
		case x == 0 && z == 1 && q == 1:
			c.baseOps[op] = func(c *CPU) { opADDHLRP(c, p) }
		case x == 0 && z == 2 && q == 0 && p == 0:
			c.baseOps[op] = opLDIndBCA
		case x == 0 && z == 2 && q == 1 && p == 0:
			c.baseOps[op] = opLDAIndBC
		case x == 0 && z == 2 && q == 0 && p == 1:
			c.baseOps[op] = opLDIndDEA
		case x == 0 && z == 2 && q == 1 && p == 1:
			c.baseOps[op] = opLDAIndDE
		case x == 0 && z == 2 && q == 0 && p == 2:
			c.baseOps[op] = opLDIndNNHL
		case x == 0 && z == 2 && q == 1 && p == 2:
			c.baseOps[op] = opLDHLIndNN
		case x == 0 && z == 2 && q == 0 && p == 3:
			c.baseOps[op] = opLDIndNNA
		case x == 0 && z == 2 && q == 1 && p == 3:
			c.baseOps[op] = opLDAIndNN
		case x == 0 && z == 3 && q == 0:
			c.baseOps[op] = func(c *CPU) { opINCRP(c, p) }
		case x == 0 && z == 3 && q == 1:
			c.baseOps[op] = func(c *CPU) { opDECRP(c, p) }
		case x == 0 && z == 4:
			c.baseOps[op] = func(c *CPU) { opINCR(c, y) }
		case x == 0 && z == 5:
			c.baseOps[op] = func(c *CPU) { opDECR(c, y) }
		case x == 0 && z == 6:
			c.baseOps[op] = func(c *CPU) { opLDRN(c, y) }
		case x == 0 && z == 7 && y == 0:
			c.baseOps[op] = opRLCA
		case x == 0 && z == 7 && y == 1:
			c.baseOps[op] = opRRCA
		case x == 0 && z == 7 && y == 2:
			c.baseOps[op] = opRLA
		case x == 0 && z == 7 && y == 3:
			c.baseOps[op] = opRRA
		case x == 0 && z == 7 && y == 4:
			c.baseOps[op] = opDAA
		case x == 0 && z == 7 && y == 5:
			c.baseOps[op] = opCPL
		case x == 0 && z == 7 && y == 6:
			c.baseOps[op] = opSCF
		case x == 0 && z == 7 && y == 7:
			c.baseOps[op] = opCCF
		case x == 3 && z == 0:
			cc := y
			c.baseOps[op] = func(c *CPU) { opRETCond(c, cc) }
		case x == 3 && z == 1 && q == 0:
			c.baseOps[op] = func(c *CPU) { opPOPRP2(c, p) }
		case x == 3 && z == 1 && q == 1 && p == 0:
			c.baseOps[op] = opRET
		case x == 3 && z == 1 && q == 1 && p == 1:
			c.baseOps[op] = opEXX
		case x == 3 && z == 1 && q == 1 && p == 2:
			c.baseOps[op] = opJPHL
		case x == 3 && z == 1 && q == 1 && p == 3:
			c.baseOps[op] = opLDSPHL
		case x == 3 && z == 2:
			cc := y
			c.baseOps[op] = func(c *CPU) { opJPCond(c, cc) }
		case x == 3 && z == 3 && y == 0:
			c.baseOps[op] = opJPNN
		case x == 3 && z == 3 && y == 1:
			c.baseOps[op] = opCBPrefix
		case x == 3 && z == 3 && y == 2:
			c.baseOps[op] = opOUTNA
		case x == 3 && z == 3 && y == 3:
			c.baseOps[op] = opINAN
		case x == 3 && z == 3 && y == 4:
			c.baseOps[op] = opEXSPHL
		case x == 3 && z == 3 && y == 5:
			c.baseOps[op] = opEXDEHL
		case x == 3 && z == 3 && y == 6:
			c.baseOps[op] = opDI
		case x == 3 && z == 3 && y == 7:
			c.baseOps[op] = opEI
		case x == 3 && z == 4:
			cc := y
			c.baseOps[op] = func(c *CPU) { opCALLCond(c, cc) }
		case x == 3 && z == 5 && q == 0:
			c.baseOps[op] = func(c *CPU) { opPUSHRP2(c, p) }
		case x == 3 && z == 5 && q == 1 && p == 0:
			c.baseOps[op] = opCALLNN
		case x == 3 && z == 5 && q == 1 && p == 1:
			c.baseOps[op] = opDDPrefix
		case x == 3 && z == 5 && q == 1 && p == 2:
			c.baseOps[op] = opEDPrefix
		case x == 3 && z == 5 && q == 1 && p == 3:
			c.baseOps[op] = opFDPrefix
		case x == 3 && z == 6:
			c.baseOps[op] = func(c *CPU) { opALUN(c, y) }
		case x == 3 && z == 7:
			c.baseOps[op] = func(c *CPU) { opRST(c, y) }
		default:
			c.baseOps[op] = opNOP
		}
	}
}

func opNOP(c *CPU) { c.tick(4) }

func opHALT(c *CPU) {
	c.Halted = true
	c.PC--
	c.tick(4)
}

func opLDRR(c *CPU, y, z byte) {
	v := c.reg(z)
	c.setReg(y, v)
	c.tick(4)
}

func opALUR(c *CPU, y, z byte) {
	v := c.reg(z)
	performALU(c, y, v)
	c.tick(4)
}

func opLDRN(c *CPU, y byte) {
	n := c.fetchByte()
	c.setReg(y, n)
	c.tick(7)
}

func opALUN(c *CPU, y byte) {
	n := c.fetchByte()
	performALU(c, y, n)
	c.tick(7)
}

// performALU dispatches ADD, ADC, SUB, SBC, AND, XOR, OR, CP by the ALU[y]
// table index used throughout the base and CB-adjacent opcode groups.
func performALU(c *CPU, y byte, value byte) {
	switch y {
	case 0:
		c.addA(value, false)
	case 1:
		c.addA(value, c.Flag(FlagC))
	case 2:
		c.subA(value, false, false)
	case 3:
		c.subA(value, c.Flag(FlagC), false)
	case 4:
		c.andA(value)
	case 5:
		c.xorA(value)
	case 6:
		c.orA(value)
	case 7:
		c.subA(value, false, true)
	}
}

func opINCR(c *CPU, y byte) {
	v := c.reg(y)
	result := c.inc8(v)
	c.setReg(y, result)
	if y == 6 {
		c.tick(5)
	} else {
		c.tick(4)
	}
}

func opDECR(c *CPU, y byte) {
	v := c.reg(y)
	result := c.dec8(v)
	c.setReg(y, result)
	if y == 6 {
		c.tick(5)
	} else {
		c.tick(4)
	}
}

func opLDRPNN(c *CPU, p byte) {
	nn := c.fetchWord()
	c.setRp(p, nn)
	c.tick(10)
}

func opADDHLRP(c *CPU, p byte) {
	result := c.addHL16(c.rp(2), c.rp(p))
	c.setRp(2, result)
	c.tick(11)
}

func opINCRP(c *CPU, p byte) {
	c.setRp(p, c.rp(p)+1)
	c.tick(6)
}

func opDECRP(c *CPU, p byte) {
	c.setRp(p, c.rp(p)-1)
	c.tick(6)
}

func opLDIndBCA(c *CPU) {
	c.write(c.BC(), c.A)
	c.tick(7)
}

func opLDAIndBC(c *CPU) {
	c.A = c.read(c.BC())
	c.tick(7)
}

func opLDIndDEA(c *CPU) {
	c.write(c.DE(), c.A)
	c.tick(7)
}

func opLDAIndDE(c *CPU) {
	c.A = c.read(c.DE())
	c.tick(7)
}

func opLDIndNNHL(c *CPU) {
	addr := c.fetchWord()
	v := c.rp(2)
	c.write(addr, byte(v))
	c.write(addr+1, byte(v>>8))
	c.tick(16)
}

func opLDHLIndNN(c *CPU) {
	addr := c.fetchWord()
	lo := c.read(addr)
	hi := c.read(addr + 1)
	c.setRp(2, uint16(hi)<<8|uint16(lo))
	c.tick(16)
}

func opLDIndNNA(c *CPU) {
	addr := c.fetchWord()
	c.write(addr, c.A)
	c.tick(13)
}

func opLDAIndNN(c *CPU) {
	addr := c.fetchWord()
	c.A = c.read(addr)
	c.tick(13)
}

func opEXAFAF2(c *CPU) {
	c.ExAF()
	c.tick(4)
}

func opEXX(c *CPU) {
	c.Exx()
	c.tick(4)
}

func opEXDEHL(c *CPU) {
	c.D, c.H = c.H, c.D
	c.E, c.L = c.L, c.E
	c.tick(4)
}

func opEXSPHL(c *CPU) {
	lo := c.read(c.SP)
	hi := c.read(c.SP + 1)
	v := c.rp(2)
	c.write(c.SP, byte(v))
	c.write(c.SP+1, byte(v>>8))
	c.setRp(2, uint16(hi)<<8|uint16(lo))
	c.tick(19)
}

func opDJNZ(c *CPU) {
	d := int8(c.fetchByte())
	c.B--
	if c.B != 0 {
		c.PC = uint16(int32(c.PC) + int32(d))
		c.tick(13)
	} else {
		c.tick(8)
	}
}

func opJR(c *CPU) {
	d := int8(c.fetchByte())
	c.PC = uint16(int32(c.PC) + int32(d))
	c.tick(12)
}

func opJRCond(c *CPU, cc byte) {
	d := int8(c.fetchByte())
	if c.condition(cc) {
		c.PC = uint16(int32(c.PC) + int32(d))
		c.tick(12)
	} else {
		c.tick(7)
	}
}

func opJPNN(c *CPU) {
	c.PC = c.fetchWord()
	c.tick(10)
}

func opJPCond(c *CPU, cc byte) {
	addr := c.fetchWord()
	if c.condition(cc) {
		c.PC = addr
	}
	c.tick(10)
}

func opJPHL(c *CPU) {
	c.PC = c.rp(2)
	c.tick(4)
}

func opCALLNN(c *CPU) {
	addr := c.fetchWord()
	c.pushWord(c.PC)
	c.PC = addr
	c.tick(17)
}

func opCALLCond(c *CPU, cc byte) {
	addr := c.fetchWord()
	if c.condition(cc) {
		c.pushWord(c.PC)
		c.PC = addr
		c.tick(17)
	} else {
		c.tick(10)
	}
}

func opRET(c *CPU) {
	c.PC = c.popWord()
	c.tick(10)
}

func opRETCond(c *CPU, cc byte) {
	if c.condition(cc) {
		c.PC = c.popWord()
		c.tick(11)
	} else {
		c.tick(5)
	}
}

func opRST(c *CPU, y byte) {
	c.pushWord(c.PC)
	c.PC = uint16(y) * 8
	c.tick(11)
}

func opPUSHRP2(c *CPU, p byte) {
	c.pushWord(c.rp2(p))
	c.tick(11)
}

func opPOPRP2(c *CPU, p byte) {
	c.setRp2(p, c.popWord())
	c.tick(10)
}

func opLDSPHL(c *CPU) {
	c.SP = c.rp(2)
	c.tick(6)
}

func opINAN(c *CPU) {
	n := c.fetchByte()
	port := uint16(c.A)<<8 | uint16(n)
	c.A = c.in(port)
	c.tick(11)
}

func opOUTNA(c *CPU) {
	n := c.fetchByte()
	port := uint16(c.A)<<8 | uint16(n)
	c.out(port, c.A)
	c.tick(11)
}

func opRLCA(c *CPU) {
	result, carry := c.rlc(c.A)
	c.A = result
	f := c.F & (FlagS | FlagZ | FlagPV)
	f |= c.A & (FlagF3 | FlagF5)
	if carry {
		f |= FlagC
	}
	c.F = f
	c.tick(4)
}

func opRRCA(c *CPU) {
	result, carry := c.rrc(c.A)
	c.A = result
	f := c.F & (FlagS | FlagZ | FlagPV)
	f |= c.A & (FlagF3 | FlagF5)
	if carry {
		f |= FlagC
	}
	c.F = f
	c.tick(4)
}

func opRLA(c *CPU) {
	result, carry := c.rl(c.A)
	c.A = result
	f := c.F & (FlagS | FlagZ | FlagPV)
	f |= c.A & (FlagF3 | FlagF5)
	if carry {
		f |= FlagC
	}
	c.F = f
	c.tick(4)
}

func opRRA(c *CPU) {
	result, carry := c.rr(c.A)
	c.A = result
	f := c.F & (FlagS | FlagZ | FlagPV)
	f |= c.A & (FlagF3 | FlagF5)
	if carry {
		f |= FlagC
	}
	c.F = f
	c.tick(4)
}

func opDAA(c *CPU) {
	c.daa()
	c.tick(4)
}

func opCPL(c *CPU) {
	c.cpl()
	c.tick(4)
}

func opSCF(c *CPU) {
	c.scf()
	c.tick(4)
}

func opCCF(c *CPU) {
	c.ccf()
	c.tick(4)
}

func opDI(c *CPU) {
	c.IFF1, c.IFF2 = false, false
	c.tick(4)
}

func opEI(c *CPU) {
	c.IFF1, c.IFF2 = true, true
	c.EIDelay = true
	c.tick(4)
}

func opCBPrefix(c *CPU) {
	c.tick(4)
	opcode := c.fetchOpcode()
	c.cbOps[opcode](c)
}

// opEDPrefix charges nothing itself: every ED handler ticks the full cost
// of the instruction, prefix byte included.
func opEDPrefix(c *CPU) {
	opcode := c.fetchOpcode()
	c.edOps[opcode](c)
}

func opDDPrefix(c *CPU) {
	c.tick(4)
	c.pfx = prefixDD
	c.dispatchIndexed(c.ddOps)
}

func opFDPrefix(c *CPU) {
	c.tick(4)
	c.pfx = prefixFD
	c.dispatchIndexed(c.fdOps)
}

// dispatchIndexed fetches the byte following a DD/FD prefix and runs the
// matching table. A further DD/FD byte restarts the handler with the new
// prefix (only the final one selects the index register; each earlier one
// costs 4 T-states as a no-op) — DD/FD ED hands off to the ED table with
// the prefix simply ignored, charging the ED instruction's normal cost plus
// the prefix's own 4 T-states already ticked above.
func (c *CPU) dispatchIndexed(table [256]func(*CPU)) {
	opcode := c.fetchOpcode()
	switch opcode {
	case 0xDD:
		c.tick(4)
		c.pfx = prefixDD
		c.dispatchIndexed(c.ddOps)
	case 0xFD:
		c.tick(4)
		c.pfx = prefixFD
		c.dispatchIndexed(c.fdOps)
	case 0xED:
		pfx := c.pfx
		c.pfx = prefixNone
		opcode2 := c.fetchOpcode()
		c.edOps[opcode2](c)
		c.pfx = pfx
	default:
		table[opcode](c)
	}
}
