package z80

// decodeCB implements the plain CB-prefixed plane: shift/rotate, BIT,
// RES, SET against one of the seven directly-addressable registers or
// (HL). The composite DDCB/FDCB plane in index.go reuses the same
// kernels against (IX+d)/(IY+d).
func (c *CPU) decodeCB() uint32 {
	c.bumpR()
	op := c.fetch8()
	reg := op & 7
	group := op >> 6
	n := (op >> 3) & 7

	if reg == 6 {
		v := c.Bus.ReadMem(c.hl())
		result, writeBack := c.cbApply(group, n, v)
		if writeBack {
			c.Bus.WriteMem(c.hl(), result)
		}
		return uint32(cbCycles[op])
	}

	r := c.reg8(reg)
	result, writeBack := c.cbApply(group, n, *r)
	if writeBack {
		*r = result
	}
	return uint32(cbCycles[op])
}

// cbApply runs one CB-plane sub-operation (group 0: shift/rotate, 1: BIT,
// 2: RES, 3: SET) against value v, returning the possibly-modified byte
// and whether the caller should write it back (BIT never does).
func (c *CPU) cbApply(group uint8, n uint8, v uint8) (result uint8, writeBack bool) {
	switch group {
	case 0:
		return c.shiftRotate(n, v), true
	case 1:
		c.bitMem(v, n)
		return v, false
	case 2:
		return v &^ (1 << n), true
	case 3:
		return v | (1 << n), true
	}
	panic("unreachable CB group")
}

// shiftRotate dispatches the eight CB-plane rotate/shift kernels by the
// 3-bit sub-opcode in bits 5-3: RLC,RRC,RL,RR,SLA,SRA,SLL,SRL.
func (c *CPU) shiftRotate(kind uint8, v uint8) uint8 {
	switch kind {
	case 0:
		return c.rlc(v)
	case 1:
		return c.rrc(v)
	case 2:
		return c.rl(v)
	case 3:
		return c.rr(v)
	case 4:
		return c.sla(v)
	case 5:
		return c.sra(v)
	case 6:
		return c.sll(v)
	case 7:
		return c.srl(v)
	}
	panic("unreachable shift/rotate kind")
}
