package z80

// decodeED implements the ED-prefixed plane: 16-bit ADC/SBC HL,rr,
// extended loads, block transfer/search/IO, the interrupt-mode/refresh
// group (NEG, LD A,I, LD A,R, LD I,A, LD R,A, RRD, RLD, IM, RETN, RETI),
// and the documented block ops A0-BB. Unknown ED opcodes are a two-byte
// NOP: both bytes are consumed and the cost is the main-plane NOP's.
func (c *CPU) decodeED() uint32 {
	c.bumpR()
	op := c.fetch8()
	if edCycles[op] == 0 {
		return uint32(mainCycles[0x00])
	}
	cost := uint32(edCycles[op])

	switch op {
	case 0x40, 0x48, 0x50, 0x58, 0x60, 0x68, 0x78:
		v := c.Bus.ReadIO(c.bc())
		*c.reg8((op >> 3) & 7) = v
		c.F = (c.F & FlagC) | sz53pTable[v]
	case 0x70: // undocumented IN (C): flags only, value discarded
		v := c.Bus.ReadIO(c.bc())
		c.F = (c.F & FlagC) | sz53pTable[v]
	case 0x41, 0x49, 0x51, 0x59, 0x61, 0x69, 0x79:
		c.Bus.WriteIO(c.bc(), *c.reg8((op>>3)&7))
	case 0x71: // undocumented OUT (C),0
		c.Bus.WriteIO(c.bc(), 0)

	case 0x42, 0x52, 0x62, 0x72:
		c.sbc16(c.edPairValue(op))
	case 0x4A, 0x5A, 0x6A, 0x7A:
		c.adc16(c.edPairValue(op))

	case 0x43, 0x53, 0x63, 0x73:
		addr := c.fetch16()
		lo, hi := c.edPairBytes(op)
		c.Bus.WriteMem(addr, lo)
		c.Bus.WriteMem(addr+1, hi)
	case 0x4B, 0x5B, 0x6B, 0x7B:
		addr := c.fetch16()
		lo := c.Bus.ReadMem(addr)
		hi := c.Bus.ReadMem(addr + 1)
		c.edSetPair(op, lo, hi)

	case 0x44, 0x4C, 0x54, 0x5C, 0x64, 0x6C, 0x74, 0x7C:
		c.neg()

	case 0x45, 0x4D, 0x55, 0x5D, 0x65, 0x6D, 0x75, 0x7D:
		c.PC = c.pop()
		if op != 0x4D { // every encoding but RETI behaves as RETN
			c.IFF1 = c.IFF2
		}

	case 0x46, 0x4E, 0x66, 0x6E:
		c.IM = 0
	case 0x56, 0x76:
		c.IM = 1
	case 0x5E, 0x7E:
		c.IM = 2

	case 0x47:
		c.I = c.A
	case 0x4F:
		c.R = c.A
	case 0x57:
		c.A = c.I
		c.F = (c.F & FlagC) | sz53Table[c.A] | bsel(c.IFF2, FlagP, 0)
	case 0x5F:
		c.A = c.R
		c.F = (c.F & FlagC) | sz53Table[c.A] | bsel(c.IFF2, FlagP, 0)

	case 0x67:
		c.Bus.WriteMem(c.hl(), c.rrd(c.Bus.ReadMem(c.hl())))
	case 0x6F:
		c.Bus.WriteMem(c.hl(), c.rld(c.Bus.ReadMem(c.hl())))

	case 0xA0:
		c.ldi()
	case 0xA8:
		c.ldd()
	case 0xA1:
		c.cpi()
	case 0xA9:
		c.cpd()
	case 0xA2:
		c.ini()
	case 0xAA:
		c.ind()
	case 0xA3:
		c.outi()
	case 0xAB:
		c.outd()

	case 0xB0:
		if c.ldir() {
			cost += 5
			c.PC = (c.PC - 2) & 0xFFFF
		}
	case 0xB8:
		if c.lddr() {
			cost += 5
			c.PC = (c.PC - 2) & 0xFFFF
		}
	case 0xB1:
		if c.cpir() {
			cost += 5
			c.PC = (c.PC - 2) & 0xFFFF
		}
	case 0xB9:
		if c.cpdr() {
			cost += 5
			c.PC = (c.PC - 2) & 0xFFFF
		}
	case 0xB2:
		if c.inir() {
			cost += 5
			c.PC = (c.PC - 2) & 0xFFFF
		}
	case 0xBA:
		if c.indr() {
			cost += 5
			c.PC = (c.PC - 2) & 0xFFFF
		}
	case 0xB3:
		if c.otir() {
			cost += 5
			c.PC = (c.PC - 2) & 0xFFFF
		}
	case 0xBB:
		if c.otdr() {
			cost += 5
			c.PC = (c.PC - 2) & 0xFFFF
		}
	}
	return cost
}

// edPairValue reads the BC/DE/HL/SP operand for ADC/SBC HL,rr from the
// register-pair field in bits 5-4 of the ED opcode.
func (c *CPU) edPairValue(op uint8) uint16 {
	switch (op >> 4) & 3 {
	case 0:
		return c.bc()
	case 1:
		return c.de()
	case 2:
		return c.hl()
	default:
		return c.SP
	}
}

func (c *CPU) edPairBytes(op uint8) (lo, hi uint8) {
	switch (op >> 4) & 3 {
	case 0:
		return c.C, c.B
	case 1:
		return c.E, c.D
	case 2:
		return c.L, c.H
	default:
		return uint8(c.SP), uint8(c.SP >> 8)
	}
}

func (c *CPU) edSetPair(op uint8, lo, hi uint8) {
	switch (op >> 4) & 3 {
	case 0:
		c.C, c.B = lo, hi
	case 1:
		c.E, c.D = lo, hi
	case 2:
		c.L, c.H = lo, hi
	default:
		c.SP = uint16(hi)<<8 | uint16(lo)
	}
}
