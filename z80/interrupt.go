package z80

// Interrupt delivers a maskable interrupt with the given data byte, as the
// host shell would present it on the data bus during an INTA cycle. It is
// called between Step calls, never from within one, so it always takes
// effect at an instruction boundary.
//
// If IFF1 is clear, or ei_delay is still masking acceptance because EI ran
// during the immediately preceding Step, the interrupt is dropped — this
// design does not latch a pending IRQ for later delivery.
func (c *CPU) Interrupt(data byte) {
	if !c.IFF1 || c.EIDelay {
		return
	}

	retAddr := c.PC
	if c.Halted {
		// PC still points at the HALT opcode itself; resume one byte past it.
		retAddr++
	}
	c.Halted = false
	c.IFF1 = false
	c.IFF2 = false
	c.incrementR()

	switch c.IM {
	case 0:
		// The practical subset of mode 0 is RST n (0b11nnn111); other
		// opcodes placed on the bus have no defined behavior here.
		if data&0xC7 == 0xC7 {
			c.pushWord(retAddr)
			c.PC = uint16(data & 0x38)
		}
		c.tick(13)
	case 2:
		vector := uint16(c.I)<<8 | uint16(data&0xFE)
		lo := c.read(vector)
		hi := c.read(vector + 1)
		c.pushWord(retAddr)
		c.PC = uint16(hi)<<8 | uint16(lo)
		c.tick(19)
	default: // mode 1
		c.pushWord(retAddr)
		c.PC = 0x0038
		c.tick(13)
	}
}

// NMI delivers a non-maskable interrupt: IFF2 is set to the current IFF1
// (preserving the programmer-visible enable state for RETN to restore),
// IFF1 is cleared, and execution resumes at 0x0066.
func (c *CPU) NMI() {
	retAddr := c.PC
	if c.Halted {
		// PC still points at the HALT opcode itself; resume one byte past it.
		retAddr++
	}
	c.Halted = false
	c.IFF2 = c.IFF1
	c.IFF1 = false
	c.EIDelay = false
	c.incrementR()
	c.pushWord(retAddr)
	c.PC = 0x0066
	c.tick(11)
}
