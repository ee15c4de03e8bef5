package z80

// Interrupt vectors and acceptance costs. NMI always vectors to 0x66;
// IM 1 to 0x38; IM 2 reads its vector from the table at I<<8.
const (
	nmiVector = 0x0066
	im1Vector = 0x0038
)

// IRQ injects an interrupt between instructions and returns the T-states
// the acceptance consumed. The host must only call it between Step
// invocations, never from inside a bus callback.
//
// A non-maskable interrupt is always accepted: it saves IFF1 into IFF2,
// clears IFF1, and vectors to 0x66. A maskable interrupt is ignored
// (returning 0) unless IFF1 is set; on acceptance both flip-flops clear
// and the mode register decides what happens with data:
//
//	IM 0: data is decoded as an instruction — conventionally an RST,
//	      which pushes the interrupted PC and jumps to its vector.
//	IM 1: fixed RST to 0x38.
//	IM 2: data is the low byte of a pointer into the vector table at
//	      I<<8; the 16-bit handler address is read from there, low byte
//	      first. Alignment of data is not enforced.
//
// Either kind of acceptance releases HALT.
func (c *CPU) IRQ(nonMaskable bool, data uint8) uint32 {
	if nonMaskable {
		c.bumpR()
		c.Halted = false
		c.IFF2 = c.IFF1
		c.IFF1 = false
		c.push(c.PC)
		c.PC = nmiVector
		return 11
	}

	if !c.IFF1 {
		return 0
	}
	c.bumpR()
	c.Halted = false
	c.IFF1, c.IFF2 = false, false

	switch c.IM {
	case 0:
		// The data byte executes as if it had just been fetched; PC
		// already points at the interrupted instruction, so an RST
		// pushes exactly that address.
		return c.dispatchMain(data) + 2
	case 1:
		c.push(c.PC)
		c.PC = im1Vector
		return 13
	default: // IM 2
		c.push(c.PC)
		ptr := uint16(c.I)<<8 | uint16(data)
		lo := c.Bus.ReadMem(ptr)
		hi := c.Bus.ReadMem(ptr + 1)
		c.PC = uint16(hi)<<8 | uint16(lo)
		return 19
	}
}
