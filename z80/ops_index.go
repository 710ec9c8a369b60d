package z80

// initDDOps and initFDOps build the opcode tables used once a DD or FD
// prefix has been seen. Most entries are identical to the unprefixed
// table — reg()/rp()/rp2() already redirect H, L and HL to the index
// register's halves and whole value based on the CPU's active prefix, so
// an opcode that never touches (HL) behaves correctly unmodified. Only
// the opcodes that reference (HL) as an operand need a dedicated handler:
// those must read the trailing displacement byte exactly once and operate
// directly on (IX+d)/(IY+d), since the generic accessors would otherwise
// re-read the displacement on every register access of a read-modify-write
// op, or read it in the wrong order relative to a following immediate.
//
// DD and FD get identical tables from the same builder: the handlers
// consult the CPU's active prefix dynamically through indexReg(), so the
// same closures are correct for both index registers.
func (c *CPU) initDDOps() {
	c.ddOps = c.buildIndexedOps()
}

func (c *CPU) initFDOps() {
	c.fdOps = c.buildIndexedOps()
}

func (c *CPU) buildIndexedOps() [256]func(*CPU) {
	t := c.baseOps

	for opcode := 0; opcode < 256; opcode++ {
		op := byte(opcode)
		if op == 0x76 { // HALT: never touches (HL), wasted prefix.
			continue
		}
		x := op >> 6
		y := (op >> 3) & 7
		z := op & 7

		switch {
		case op == 0x34:
			t[op] = idxINC
		case op == 0x35:
			t[op] = idxDEC
		case op == 0x36:
			t[op] = idxLDIndN
		case op == 0xCB:
			t[op] = idxCBPrefix
		case x == 1 && z == 6 && y != 6:
			y := y
			t[op] = func(c *CPU) { idxLDRIndexed(c, y) }
		case x == 1 && y == 6 && z != 6:
			z := z
			t[op] = func(c *CPU) { idxLDIndexedR(c, z) }
		case x == 2 && z == 6:
			y := y
			t[op] = func(c *CPU) { idxALU(c, y) }
		}
	}
	return t
}

func idxAddr(c *CPU) uint16 {
	d := int8(c.fetchByte())
	return uint16(int32(c.indexReg()) + int32(d))
}

func idxINC(c *CPU) {
	addr := idxAddr(c)
	v := c.read(addr)
	result := c.inc8(v)
	c.write(addr, result)
	c.tick(19)
}

func idxDEC(c *CPU) {
	addr := idxAddr(c)
	v := c.read(addr)
	result := c.dec8(v)
	c.write(addr, result)
	c.tick(19)
}

func idxLDIndN(c *CPU) {
	addr := idxAddr(c)
	n := c.fetchByte()
	c.write(addr, n)
	c.tick(15)
}

func idxLDRIndexed(c *CPU, y byte) {
	addr := idxAddr(c)
	v := c.read(addr)
	c.setPlainReg(y, v)
	c.tick(15)
}

func idxLDIndexedR(c *CPU, z byte) {
	addr := idxAddr(c)
	v := c.plainReg(z)
	c.write(addr, v)
	c.tick(15)
}

func idxALU(c *CPU, y byte) {
	addr := idxAddr(c)
	v := c.read(addr)
	performALU(c, y, v)
	c.tick(15)
}

// idxCBPrefix is reached via the DD/FD table when the byte following the
// prefix is 0xCB, i.e. the DDCB/FDCB form: prefix CB d op. The displacement
// precedes the actual sub-opcode, and the operand is always (IX+d)/(IY+d)
// regardless of the sub-opcode's z field; z instead selects an optional
// register that also receives a copy of the result (undocumented), except
// for BIT which never writes back.
func idxCBPrefix(c *CPU) {
	d := int8(c.fetchByte())
	addr := uint16(int32(c.indexReg()) + int32(d))
	op := c.fetchByte() // not an M1 cycle: no R increment.

	x := op >> 6
	y := (op >> 3) & 7
	z := op & 7

	switch x {
	case 0:
		v := c.read(addr)
		result, carry := c.cbRotate(y, v)
		c.cbFlagsFromResult(result, carry)
		c.write(addr, result)
		if z != 6 {
			c.setPlainReg(z, result)
		}
		c.tick(19)
	case 1:
		v := c.read(addr)
		bit := v & (1 << y)
		f := c.F & FlagC
		f |= FlagH
		if bit == 0 {
			f |= FlagZ | FlagPV
		}
		if y == 7 && bit != 0 {
			f |= FlagS
		}
		f |= byte(addr>>8) & (FlagF3 | FlagF5)
		c.F = f
		c.tick(16)
	case 2:
		v := c.read(addr)
		result := v &^ (1 << y)
		c.write(addr, result)
		if z != 6 {
			c.setPlainReg(z, result)
		}
		c.tick(19)
	case 3:
		v := c.read(addr)
		result := v | (1 << y)
		c.write(addr, result)
		if z != 6 {
			c.setPlainReg(z, result)
		}
		c.tick(19)
	}
}
