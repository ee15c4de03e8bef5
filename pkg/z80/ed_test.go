package z80

import "testing"

// TestLoadAIR verifies LD A,I and LD A,R source P from IFF2 at execution
// time and take S/Z from the copied value.
func TestLoadAIR(t *testing.T) {
	cpu, _ := newTest(0xED, 0x57, 0x76) // LD A,I
	cpu.I = 0x80
	cpu.IFF2 = true
	cpu.Step()
	if cpu.A != 0x80 || !cpu.Flag(FlagP) || !cpu.Flag(FlagS) {
		t.Errorf("LD A,I: A=%02X F=%s", cpu.A, flagNames(cpu.F))
	}

	cpu, _ = newTest(0xED, 0x5F, 0x76) // LD A,R
	cpu.IFF2 = false
	cpu.Step()
	// R was bumped twice by the two opcode fetches before the copy.
	if cpu.A != 2 {
		t.Errorf("LD A,R: A=%02X, want 02", cpu.A)
	}
	if cpu.Flag(FlagP) {
		t.Error("LD A,R with IFF2 clear must clear P")
	}

	cpu, _ = newTest(0xED, 0x47, 0xED, 0x4F, 0x76) // LD I,A; LD R,A
	cpu.A = 0x99
	cpu.Step()
	cpu.Step()
	if cpu.I != 0x99 || cpu.R != 0x99 {
		t.Errorf("LD I,A / LD R,A: I=%02X R=%02X", cpu.I, cpu.R)
	}
}

// TestInOutC verifies IN r,(C) flag behavior and OUT (C),r port
// addressing, including the undocumented 0x70/0x71 forms.
func TestInOutC(t *testing.T) {
	cpu, mem := newTest(0xED, 0x50, 0x76) // IN D,(C)
	cpu.SetBC(0x1234)
	cpu.F = FlagC
	mem.Ports[0x1234] = 0x00
	cpu.Step()
	if cpu.D != 0 || !cpu.Flag(FlagZ) || !cpu.Flag(FlagP) {
		t.Errorf("IN D,(C): D=%02X F=%s", cpu.D, flagNames(cpu.F))
	}
	if !cpu.Flag(FlagC) {
		t.Error("IN r,(C) must preserve C")
	}

	cpu, mem = newTest(0xED, 0x70, 0x76) // undocumented IN (C)
	cpu.SetBC(0x2000)
	cpu.D = 0x77
	mem.Ports[0x2000] = 0x81
	cpu.Step()
	if cpu.D != 0x77 {
		t.Error("IN (C) must not write a register")
	}
	if !cpu.Flag(FlagS) || cpu.Flag(FlagZ) {
		t.Errorf("IN (C) flags: F=%s", flagNames(cpu.F))
	}

	cpu, mem = newTest(0xED, 0x59, 0xED, 0x71, 0x76) // OUT (C),E; OUT (C),0
	cpu.SetBC(0x3000)
	cpu.E = 0x5A
	mem.Ports[0x3000] = 0xFF
	run(t, cpu)
	if mem.Ports[0x3000] != 0x00 { // OUT (C),0 overwrote the 0x5A
		t.Errorf("OUT (C),0 wrote %02X", mem.Ports[0x3000])
	}

	cpu, mem = newTest(0xED, 0x59, 0x76)
	cpu.SetBC(0x3000)
	cpu.E = 0x5A
	cpu.Step()
	if mem.Ports[0x3000] != 0x5A {
		t.Errorf("OUT (C),E wrote %02X", mem.Ports[0x3000])
	}
}

// TestEDWordLoads verifies LD (nn),rr / LD rr,(nn) through the ED plane
// for BC and SP.
func TestEDWordLoads(t *testing.T) {
	cpu, mem := newTest(
		0xED, 0x43, 0x00, 0x50, // LD (0x5000),BC
		0xED, 0x7B, 0x00, 0x50, // LD SP,(0x5000)
		0x76,
	)
	cpu.SetBC(0xBEEF)
	run(t, cpu)
	if mem.RAM[0x5000] != 0xEF || mem.RAM[0x5001] != 0xBE {
		t.Errorf("LD (nn),BC stored %02X %02X", mem.RAM[0x5000], mem.RAM[0x5001])
	}
	if cpu.SP != 0xBEEF {
		t.Errorf("LD SP,(nn): SP=%04X", cpu.SP)
	}
}

// TestUnknownEDIsTwoByteNop verifies an invalid ED opcode consumes two
// bytes and costs a NOP.
func TestUnknownEDIsTwoByteNop(t *testing.T) {
	cpu, _ := newTest(0xED, 0x00, 0x76) // ED 00 is not a valid opcode
	cost := cpu.Step()
	if cpu.PC != 2 {
		t.Errorf("unknown ED: PC=%04X, want 0002", cpu.PC)
	}
	if cost != 4 {
		t.Errorf("unknown ED cost %d, want 4", cost)
	}
	cpu.Step()
	if !cpu.Halted {
		t.Error("decode stream out of sync after unknown ED")
	}
}

// TestIMSelect verifies the interrupt-mode group including the
// duplicate encodings.
func TestIMSelect(t *testing.T) {
	tests := []struct {
		op   uint8
		want uint8
	}{
		{0x46, 0}, {0x56, 1}, {0x5E, 2}, {0x6E, 0}, {0x76, 1}, {0x7E, 2},
	}
	for _, tc := range tests {
		cpu, _ := newTest(0xED, tc.op, 0x76)
		cpu.IM = 3 // invalid sentinel, must be overwritten
		cpu.Step()
		if cpu.IM != tc.want {
			t.Errorf("ED %02X: IM=%d, want %d", tc.op, cpu.IM, tc.want)
		}
	}
}
