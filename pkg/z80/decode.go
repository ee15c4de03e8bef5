package z80

// decodeMainTable handles every unprefixed opcode outside the 0x40-0xBF
// load/ALU blocks already peeled off by dispatchMain: immediate loads,
// 16-bit loads, control flow, stack ops, rotates/specials on A, and the
// handful of one-off opcodes (NOP, EX, DI/EI, ...).
func (c *CPU) decodeMainTable(op uint8) uint32 {
	base := uint32(mainCycles[op])

	switch op {
	case 0x00: // NOP
	case 0x07:
		c.rlca()
	case 0x0F:
		c.rrca()
	case 0x17:
		c.rla()
	case 0x1F:
		c.rra()
	case 0x27:
		c.daa()
	case 0x2F:
		c.A ^= 0xFF
		c.F = (c.F & (FlagC | FlagP | FlagZ | FlagS)) | (c.A & (Flag3 | Flag5)) | FlagN | FlagH
	case 0x37:
		c.F = (c.F & (FlagP | FlagZ | FlagS)) | (c.A & (Flag3 | Flag5)) | FlagC
	case 0x3F:
		oldC := c.F & FlagC
		c.F = (c.F & (FlagP | FlagZ | FlagS)) | (c.A & (Flag3 | Flag5))
		if oldC != 0 {
			c.F |= FlagH
		} else {
			c.F |= FlagC
		}
	case 0x08:
		c.exAFAF2()
	case 0xEB:
		c.D, c.H = c.H, c.D
		c.E, c.L = c.L, c.E
	case 0xD9:
		c.exx()
	case 0xF3:
		c.pendingDI = true
	case 0xFB:
		c.pendingEI = true

	// 8-bit immediate loads.
	case 0x06:
		c.B = c.fetch8()
	case 0x0E:
		c.C = c.fetch8()
	case 0x16:
		c.D = c.fetch8()
	case 0x1E:
		c.E = c.fetch8()
	case 0x26:
		c.H = c.fetch8()
	case 0x2E:
		c.L = c.fetch8()
	case 0x3E:
		c.A = c.fetch8()
	case 0x36:
		c.Bus.WriteMem(c.hl(), c.fetch8())

	// 16-bit immediate loads.
	case 0x01:
		c.setBC(c.fetch16())
	case 0x11:
		c.setDE(c.fetch16())
	case 0x21:
		c.setHL(c.fetch16())
	case 0x31:
		c.SP = c.fetch16()

	case 0x22:
		addr := c.fetch16()
		c.Bus.WriteMem(addr, c.L)
		c.Bus.WriteMem(addr+1, c.H)
	case 0x2A:
		addr := c.fetch16()
		lo := c.Bus.ReadMem(addr)
		hi := c.Bus.ReadMem(addr + 1)
		c.L, c.H = lo, hi
	case 0x32:
		c.Bus.WriteMem(c.fetch16(), c.A)
	case 0x3A:
		c.A = c.Bus.ReadMem(c.fetch16())
	case 0x02:
		c.Bus.WriteMem(c.bc(), c.A)
	case 0x12:
		c.Bus.WriteMem(c.de(), c.A)
	case 0x0A:
		c.A = c.Bus.ReadMem(c.bc())
	case 0x1A:
		c.A = c.Bus.ReadMem(c.de())
	case 0xF9:
		c.SP = c.hl()

	// INC/DEC 8-bit.
	case 0x04:
		c.inc8(&c.B)
	case 0x0C:
		c.inc8(&c.C)
	case 0x14:
		c.inc8(&c.D)
	case 0x1C:
		c.inc8(&c.E)
	case 0x24:
		c.inc8(&c.H)
	case 0x2C:
		c.inc8(&c.L)
	case 0x3C:
		c.inc8(&c.A)
	case 0x34:
		v := c.Bus.ReadMem(c.hl())
		c.inc8(&v)
		c.Bus.WriteMem(c.hl(), v)
	case 0x05:
		c.dec8(&c.B)
	case 0x0D:
		c.dec8(&c.C)
	case 0x15:
		c.dec8(&c.D)
	case 0x1D:
		c.dec8(&c.E)
	case 0x25:
		c.dec8(&c.H)
	case 0x2D:
		c.dec8(&c.L)
	case 0x3D:
		c.dec8(&c.A)
	case 0x35:
		v := c.Bus.ReadMem(c.hl())
		c.dec8(&v)
		c.Bus.WriteMem(c.hl(), v)

	// 16-bit INC/DEC (no flag effect).
	case 0x03:
		c.setBC(c.bc() + 1)
	case 0x13:
		c.setDE(c.de() + 1)
	case 0x23:
		c.setHL(c.hl() + 1)
	case 0x33:
		c.SP++
	case 0x0B:
		c.setBC(c.bc() - 1)
	case 0x1B:
		c.setDE(c.de() - 1)
	case 0x2B:
		c.setHL(c.hl() - 1)
	case 0x3B:
		c.SP--

	// ADD HL,rr.
	case 0x09:
		c.setHL(c.add16(c.hl(), c.bc()))
	case 0x19:
		c.setHL(c.add16(c.hl(), c.de()))
	case 0x29:
		c.setHL(c.add16(c.hl(), c.hl()))
	case 0x39:
		c.setHL(c.add16(c.hl(), c.SP))

	// PUSH/POP.
	case 0xC5:
		c.push(c.bc())
	case 0xD5:
		c.push(c.de())
	case 0xE5:
		c.push(c.hl())
	case 0xF5:
		c.push(uint16(c.A)<<8 | uint16(c.F))
	case 0xC1:
		c.setBC(c.pop())
	case 0xD1:
		c.setDE(c.pop())
	case 0xE1:
		c.setHL(c.pop())
	case 0xF1:
		v := c.pop()
		c.A, c.F = uint8(v>>8), uint8(v)

	case 0xE3:
		hl := c.hl()
		lo := c.Bus.ReadMem(c.SP)
		hi := c.Bus.ReadMem(c.SP + 1)
		c.Bus.WriteMem(c.SP, uint8(hl))
		c.Bus.WriteMem(c.SP+1, uint8(hl>>8))
		c.setHL(uint16(hi)<<8 | uint16(lo))

	// Control flow.
	case 0xC3:
		c.PC = c.fetch16()
	case 0xE9:
		c.PC = c.hl()
	case 0xC2, 0xCA, 0xD2, 0xDA, 0xE2, 0xEA, 0xF2, 0xFA:
		target := c.fetch16()
		if c.condition((op >> 3) & 7) {
			c.PC = target
		}
	case 0x18:
		d := signedDisplacement(c.fetch8())
		c.PC = uint16(int32(c.PC) + int32(d))
	case 0x20, 0x28, 0x30, 0x38:
		d := signedDisplacement(c.fetch8())
		if c.condition((op >> 3) & 3) {
			c.PC = uint16(int32(c.PC) + int32(d))
			base += 5
		}
	case 0x10:
		d := signedDisplacement(c.fetch8())
		c.B--
		if c.B != 0 {
			c.PC = uint16(int32(c.PC) + int32(d))
			base += 5
		}
	case 0xCD:
		target := c.fetch16()
		c.push(c.PC)
		c.PC = target
	case 0xC4, 0xCC, 0xD4, 0xDC, 0xE4, 0xEC, 0xF4, 0xFC:
		target := c.fetch16()
		if c.condition((op >> 3) & 7) {
			c.push(c.PC)
			c.PC = target
			base += 7
		}
	case 0xC9:
		c.PC = c.pop()
	case 0xC0, 0xC8, 0xD0, 0xD8, 0xE0, 0xE8, 0xF0, 0xF8:
		if c.condition((op >> 3) & 7) {
			c.PC = c.pop()
			base += 6
		}
	case 0xC7, 0xCF, 0xD7, 0xDF, 0xE7, 0xEF, 0xF7, 0xFF:
		c.push(c.PC)
		c.PC = uint16(op & 0x38)

	// I/O.
	case 0xD3:
		port := c.fetch8()
		c.Bus.WriteIO(uint16(c.A)<<8|uint16(port), c.A)
	case 0xDB:
		port := c.fetch8()
		c.A = c.Bus.ReadIO(uint16(c.A)<<8 | uint16(port))

	// ALU A,n: ADD,ADC,SUB,SBC,AND,XOR,OR,CP against an immediate byte.
	case 0xC6, 0xCE, 0xD6, 0xDE, 0xE6, 0xEE, 0xF6, 0xFE:
		c.applyALU((op>>3)&7, c.fetch8())

	default:
		// Every remaining byte is one of the four prefixes already
		// peeled off by dispatchMain, or unreachable.
	}
	return base
}
