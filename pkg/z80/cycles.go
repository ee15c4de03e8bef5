package z80

// Four constant 256-entry T-state tables — main, CB, ED, DD (FD reuses
// DD). Each cbCycles/edCycles/ddCycles entry is the TOTAL cost of the
// prefixed instruction (prefix byte(s) included); the dispatcher never
// adds mainCycles on top of a prefix-plane lookup. Zero entries in
// edCycles/ddCycles mark "not a valid opcode in this plane" — see
// decodeED/decodeIndexed for the fall-through those holes get.
//
// Conditional extras (branch taken, block-op repeat) are added by the
// kernels that know whether the branch was taken, not by these tables.
var (
	mainCycles [256]uint8
	cbCycles   [256]uint8
	edCycles   [256]uint8
	ddCycles   [256]uint8
)

func init() {
	initMainCycles()
	initCBCycles()
	initEDCycles()
	initDDCycles()
}

func initMainCycles() {
	for i := range mainCycles {
		mainCycles[i] = 4
	}

	// LD r,r' / LD r,(HL) / LD (HL),r / HALT: 0x40-0x7F.
	for op := 0x40; op < 0x80; op++ {
		src := op & 7
		dst := (op >> 3) & 7
		switch {
		case op == 0x76: // HALT
			mainCycles[op] = 4
		case src == 6 || dst == 6: // one operand is (HL)
			mainCycles[op] = 7
		default:
			mainCycles[op] = 4
		}
	}

	// ALU A,r / ALU A,(HL): 0x80-0xBF.
	for op := 0x80; op < 0xC0; op++ {
		if op&7 == 6 {
			mainCycles[op] = 7
		} else {
			mainCycles[op] = 4
		}
	}

	// 8-bit immediate loads.
	for _, op := range []int{0x06, 0x0E, 0x16, 0x1E, 0x26, 0x2E, 0x3E} {
		mainCycles[op] = 7
	}
	mainCycles[0x36] = 10 // LD (HL),n

	// INC/DEC r (8-bit).
	for _, op := range []int{0x04, 0x0C, 0x14, 0x1C, 0x24, 0x2C, 0x3C,
		0x05, 0x0D, 0x15, 0x1D, 0x25, 0x2D, 0x3D} {
		mainCycles[op] = 4
	}
	mainCycles[0x34] = 11 // INC (HL)
	mainCycles[0x35] = 11 // DEC (HL)

	// 16-bit INC/DEC.
	for _, op := range []int{0x03, 0x13, 0x23, 0x33, 0x0B, 0x1B, 0x2B, 0x3B} {
		mainCycles[op] = 6
	}

	// ADD HL,rr.
	for _, op := range []int{0x09, 0x19, 0x29, 0x39} {
		mainCycles[op] = 11
	}

	// LD rr,nn.
	for _, op := range []int{0x01, 0x11, 0x21, 0x31} {
		mainCycles[op] = 10
	}

	mainCycles[0x22] = 16 // LD (nn),HL
	mainCycles[0x2A] = 16 // LD HL,(nn)
	mainCycles[0x32] = 13 // LD (nn),A
	mainCycles[0x3A] = 13 // LD A,(nn)
	mainCycles[0x02] = 7  // LD (BC),A
	mainCycles[0x12] = 7  // LD (DE),A
	mainCycles[0x0A] = 7  // LD A,(BC)
	mainCycles[0x1A] = 7  // LD A,(DE)
	mainCycles[0xF9] = 6  // LD SP,HL

	// PUSH/POP.
	for _, op := range []int{0xC5, 0xD5, 0xE5, 0xF5} {
		mainCycles[op] = 11
	}
	for _, op := range []int{0xC1, 0xD1, 0xE1, 0xF1} {
		mainCycles[op] = 10
	}

	// Jumps/calls/returns (unconditional, and the base cost for
	// conditional forms — branch-taken extras are added by the kernel).
	mainCycles[0xC3] = 10 // JP nn
	mainCycles[0xE9] = 4  // JP (HL)
	for _, op := range []int{0xC2, 0xCA, 0xD2, 0xDA, 0xE2, 0xEA, 0xF2, 0xFA} {
		mainCycles[op] = 10 // JP cc,nn
	}
	mainCycles[0x18] = 12 // JR e
	for _, op := range []int{0x20, 0x28, 0x30, 0x38} {
		mainCycles[op] = 7 // JR cc,e (not taken; +5 if taken)
	}
	mainCycles[0x10] = 8  // DJNZ e (not taken; +5 if taken)
	mainCycles[0xCD] = 17 // CALL nn
	for _, op := range []int{0xC4, 0xCC, 0xD4, 0xDC, 0xE4, 0xEC, 0xF4, 0xFC} {
		mainCycles[op] = 10 // CALL cc,nn (not taken; +7 if taken)
	}
	mainCycles[0xC9] = 10 // RET
	for _, op := range []int{0xC0, 0xC8, 0xD0, 0xD8, 0xE0, 0xE8, 0xF0, 0xF8} {
		mainCycles[op] = 5 // RET cc (not taken; +6 if taken)
	}
	for _, op := range []int{0xC7, 0xCF, 0xD7, 0xDF, 0xE7, 0xEF, 0xF7, 0xFF} {
		mainCycles[op] = 11 // RST n
	}

	mainCycles[0x00] = 4  // NOP
	mainCycles[0x76] = 4  // HALT (set again for clarity)
	mainCycles[0x07] = 4  // RLCA
	mainCycles[0x0F] = 4  // RRCA
	mainCycles[0x17] = 4  // RLA
	mainCycles[0x1F] = 4  // RRA
	mainCycles[0x27] = 4  // DAA
	mainCycles[0x2F] = 4  // CPL
	mainCycles[0x37] = 4  // SCF
	mainCycles[0x3F] = 4  // CCF
	mainCycles[0x08] = 4  // EX AF,AF'
	mainCycles[0xEB] = 4  // EX DE,HL
	mainCycles[0xE3] = 19 // EX (SP),HL
	mainCycles[0xD9] = 4  // EXX
	mainCycles[0xF3] = 4  // DI
	mainCycles[0xFB] = 4  // EI
	mainCycles[0xCB] = 0  // prefix, accounted for by the CB plane
	mainCycles[0xED] = 0  // prefix, accounted for by the ED plane
	mainCycles[0xDD] = 0  // prefix, accounted for by the index-register plane
	mainCycles[0xFD] = 0  // prefix, accounted for by the index-register plane
}

func initCBCycles() {
	for op := 0; op < 256; op++ {
		reg := op & 7
		if reg == 6 {
			switch op >> 6 {
			case 1: // BIT n,(HL)
				cbCycles[op] = 12
			default: // shift/rotate/RES/SET on (HL)
				cbCycles[op] = 15
			}
		} else {
			cbCycles[op] = 8
		}
	}
}

func initEDCycles() {
	// Everything defaults to 0 ("not a valid opcode in this plane");
	// unknown ED opcodes fall through to the two-byte-NOP handling in
	// decodeED.
	set := func(op int, t uint8) { edCycles[op] = t }

	// Block instructions.
	for _, op := range []int{0xA0, 0xA8, 0xA1, 0xA9, 0xA2, 0xAA, 0xA3, 0xAB} {
		set(op, 16) // LDI/LDD/CPI/CPD/INI/IND/OUTI/OUTD
	}
	for _, op := range []int{0xB0, 0xB8, 0xB1, 0xB9, 0xB2, 0xBA, 0xB3, 0xBB} {
		set(op, 16) // LDIR/LDDR/CPIR/CPDR/INIR/INDR/OTIR/OTDR (not-repeating cost; +5 on repeat)
	}

	// 16-bit ADC/SBC HL,rr.
	for _, op := range []int{0x4A, 0x5A, 0x6A, 0x7A, 0x42, 0x52, 0x62, 0x72} {
		set(op, 15)
	}

	// LD (nn),rr / LD rr,(nn) for BC/DE/HL/SP.
	for _, op := range []int{0x43, 0x53, 0x63, 0x73, 0x4B, 0x5B, 0x6B, 0x7B} {
		set(op, 20)
	}

	set(0x44, 8)  // NEG
	set(0x4C, 8)  // undocumented NEG alias
	set(0x54, 8)
	set(0x5C, 8)
	set(0x64, 8)
	set(0x6C, 8)
	set(0x74, 8)
	set(0x7C, 8)

	set(0x45, 14) // RETN
	set(0x4D, 14) // RETI
	set(0x55, 14)
	set(0x5D, 14)
	set(0x65, 14)
	set(0x6D, 14)
	set(0x75, 14)
	set(0x7D, 14)

	set(0x46, 8) // IM 0 (and undocumented aliases)
	set(0x4E, 8)
	set(0x56, 8) // IM 1
	set(0x5E, 8)
	set(0x66, 8) // IM 0 (duplicate encoding)
	set(0x6E, 8)
	set(0x76, 8) // IM 1 (duplicate encoding)
	set(0x7E, 8)

	// IN r,(C) / OUT (C),r, including the undocumented IN (C) (0x70)
	// and OUT (C),0 (0x71).
	for _, op := range []int{0x40, 0x48, 0x50, 0x58, 0x60, 0x68, 0x70, 0x78} {
		set(op, 12)
	}
	for _, op := range []int{0x41, 0x49, 0x51, 0x59, 0x61, 0x69, 0x71, 0x79} {
		set(op, 12)
	}

	set(0x47, 9)  // LD I,A
	set(0x4F, 9)  // LD R,A
	set(0x57, 9)  // LD A,I
	set(0x5F, 9)  // LD A,R
	set(0x67, 18) // RRD
	set(0x6F, 18) // RLD
}

func initDDCycles() {
	set := func(op int, t uint8) { ddCycles[op] = t }

	set(0x21, 14) // LD IX,nn
	set(0x22, 20) // LD (nn),IX
	set(0x2A, 20) // LD IX,(nn)
	set(0x23, 10) // INC IX
	set(0x2B, 10) // DEC IX
	for _, op := range []int{0x09, 0x19, 0x29, 0x39} {
		set(op, 15) // ADD IX,{BC,DE,IX,SP}
	}
	set(0x34, 23) // INC (IX+d)
	set(0x35, 23) // DEC (IX+d)
	set(0x36, 19) // LD (IX+d),n
	set(0xE5, 15) // PUSH IX
	set(0xE1, 14) // POP IX
	set(0xE3, 23) // EX (SP),IX
	set(0xE9, 8)  // JP (IX)
	set(0xF9, 10) // LD SP,IX
	set(0xCB, 0)  // composite DDCB plane, handled separately

	// LD r,(IX+d) / LD (IX+d),r for the seven non-(HL) registers.
	for _, op := range []int{0x46, 0x4E, 0x56, 0x5E, 0x66, 0x6E, 0x7E} {
		set(op, 19)
	}
	for _, op := range []int{0x70, 0x71, 0x72, 0x73, 0x74, 0x75, 0x77} {
		set(op, 19)
	}

	// 8-bit ALU A,(IX+d).
	for _, op := range []int{0x86, 0x8E, 0x96, 0x9E, 0xA6, 0xAE, 0xB6, 0xBE} {
		set(op, 19)
	}

	// Undocumented IXH/IXL 8-bit register ops: same cost as the plain
	// 8-bit register forms plus the DD prefix (one extra fetch, no extra
	// memory cycle) — 8 T-states for register-register/ALU/INC/DEC, 11
	// for LD IXH/IXL,n.
	undocReg8 := []int{
		0x24, 0x25, 0x2C, 0x2D, // INC/DEC IXH, INC/DEC IXL
		0x60, 0x61, 0x62, 0x63, 0x64, 0x65, 0x67, // LD IXH,{B,C,D,E,IXH,IXL,A}
		0x68, 0x69, 0x6A, 0x6B, 0x6C, 0x6D, 0x6F, // LD IXL,{B,C,D,E,IXH,IXL,A}
		0x44, 0x45, 0x4C, 0x4D, 0x54, 0x55, 0x5C, 0x5D, 0x7C, 0x7D, // LD {B,C,D,E,A},IXH/IXL
		0x84, 0x8C, 0x94, 0x9C, 0xA4, 0xAC, 0xB4, 0xBC, // ALU A,IXH
		0x85, 0x8D, 0x95, 0x9D, 0xA5, 0xAD, 0xB5, 0xBD, // ALU A,IXL
	}
	for _, op := range undocReg8 {
		set(op, 8)
	}
	set(0x26, 11) // LD IXH,n
	set(0x2E, 11) // LD IXL,n
}
