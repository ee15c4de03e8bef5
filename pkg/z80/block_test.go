package z80

import "testing"

// TestLdiLdd verifies the single-shot transfers and their undocumented
// X/Y sourcing from A + copied byte.
func TestLdiLdd(t *testing.T) {
	cpu, mem := newTest(0xED, 0xA0, 0x76) // LDI
	cpu.SetHL(0x0100)
	cpu.SetDE(0x0200)
	cpu.SetBC(0x0002)
	cpu.A = 0x00
	mem.RAM[0x0100] = 0x0A
	cpu.Step()

	if mem.RAM[0x0200] != 0x0A {
		t.Errorf("LDI copied %02X", mem.RAM[0x0200])
	}
	if cpu.HL() != 0x0101 || cpu.DE() != 0x0201 || cpu.BC() != 0x0001 {
		t.Errorf("LDI pointers: HL=%04X DE=%04X BC=%04X", cpu.HL(), cpu.DE(), cpu.BC())
	}
	if !cpu.Flag(FlagP) {
		t.Error("LDI with BC!=0 must set P")
	}
	// A + byte = 0x0A: bit 3 set -> X, bit 1 set -> Y.
	if !cpu.Flag(Flag3) || !cpu.Flag(Flag5) {
		t.Errorf("LDI X/Y from A+byte: F=%s", flagNames(cpu.F))
	}

	cpu, mem = newTest(0xED, 0xA8, 0x76) // LDD
	cpu.SetHL(0x0100)
	cpu.SetDE(0x0200)
	cpu.SetBC(0x0001)
	mem.RAM[0x0100] = 0x55
	cpu.Step()
	if mem.RAM[0x0200] != 0x55 || cpu.HL() != 0x00FF || cpu.DE() != 0x01FF {
		t.Errorf("LDD: mem=%02X HL=%04X DE=%04X", mem.RAM[0x0200], cpu.HL(), cpu.DE())
	}
	if cpu.Flag(FlagP) {
		t.Error("LDD with BC=0 must clear P")
	}
}

// TestCpir verifies the block search stops on match with Z set and P
// reporting the remaining count.
func TestCpir(t *testing.T) {
	cpu, mem := newTest(0xED, 0xB1, 0x76) // CPIR
	cpu.A = 0xBE
	cpu.SetHL(0x0100)
	cpu.SetBC(0x0010)
	mem.Load(0x0100, []uint8{0xDE, 0xAD, 0xBE, 0xEF})
	run(t, cpu)

	if !cpu.Flag(FlagZ) {
		t.Error("CPIR must stop with Z on match")
	}
	if cpu.HL() != 0x0103 {
		t.Errorf("CPIR: HL=%04X, want 0103", cpu.HL())
	}
	if cpu.BC() != 0x000D {
		t.Errorf("CPIR: BC=%04X, want 000D", cpu.BC())
	}
	if !cpu.Flag(FlagP) {
		t.Error("CPIR with BC!=0 must leave P set")
	}
	if !cpu.Flag(FlagN) {
		t.Error("CPIR must leave N set")
	}
}

// TestCpiPreservesCarry verifies CPI leaves C alone.
func TestCpiPreservesCarry(t *testing.T) {
	cpu, mem := newTest(0xED, 0xA1, 0x76)
	cpu.A = 0x10
	cpu.F = FlagC
	cpu.SetHL(0x0100)
	cpu.SetBC(0x0001)
	mem.RAM[0x0100] = 0x20
	cpu.Step()
	if !cpu.Flag(FlagC) {
		t.Error("CPI must preserve C")
	}
}

// TestInirOtdr verifies the I/O block forms move bytes between ports
// and memory and count B down to zero.
func TestInirOtdr(t *testing.T) {
	cpu, mem := newTest(0xED, 0xB2, 0x76) // INIR
	cpu.B = 3
	cpu.C = 0x40
	cpu.SetHL(0x0100)
	mem.Ports[0x0340] = 0x11 // port BC at first iteration
	mem.Ports[0x0240] = 0x22
	mem.Ports[0x0140] = 0x33
	run(t, cpu)

	if cpu.B != 0 {
		t.Errorf("INIR: B=%02X", cpu.B)
	}
	if mem.RAM[0x0100] != 0x11 || mem.RAM[0x0101] != 0x22 || mem.RAM[0x0102] != 0x33 {
		t.Errorf("INIR wrote %02X %02X %02X", mem.RAM[0x0100], mem.RAM[0x0101], mem.RAM[0x0102])
	}
	if cpu.HL() != 0x0103 {
		t.Errorf("INIR: HL=%04X", cpu.HL())
	}
	if !cpu.Flag(FlagZ) || !cpu.Flag(FlagN) {
		t.Errorf("INIR end flags: F=%s", flagNames(cpu.F))
	}

	cpu, mem = newTest(0xED, 0xBB, 0x76) // OTDR
	cpu.B = 2
	cpu.C = 0x80
	cpu.SetHL(0x0101)
	mem.RAM[0x0101] = 0xAA
	mem.RAM[0x0100] = 0xBB
	run(t, cpu)

	if cpu.B != 0 || cpu.HL() != 0x00FF {
		t.Errorf("OTDR: B=%02X HL=%04X", cpu.B, cpu.HL())
	}
	// The port write happens before B is decremented, so the high byte
	// of the port number still carries the pre-decrement B.
	if mem.Ports[0x0280] != 0xAA || mem.Ports[0x0180] != 0xBB {
		t.Errorf("OTDR ports: %02X %02X", mem.Ports[0x0280], mem.Ports[0x0180])
	}
}

// TestBlockRepeatCost verifies the +5 T-state surcharge on every
// repeating iteration but the last.
func TestBlockRepeatCost(t *testing.T) {
	cpu, mem := newTest(0xED, 0xB0, 0x76) // LDIR
	cpu.SetHL(0x0100)
	cpu.SetDE(0x0200)
	cpu.SetBC(0x0003)
	mem.Load(0x0100, []uint8{1, 2, 3})

	costs := []uint32{cpu.Step(), cpu.Step(), cpu.Step()}
	if costs[0] != 21 || costs[1] != 21 || costs[2] != 16 {
		t.Errorf("LDIR costs %v, want [21 21 16]", costs)
	}
	if cpu.BC() != 0 {
		t.Errorf("LDIR left BC=%04X", cpu.BC())
	}
}
