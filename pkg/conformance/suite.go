package conformance

import (
	"fmt"

	"github.com/z80core/z80core/internal/host"
	"github.com/z80core/z80core/pkg/z80"
)

// Suite returns the built-in battery: register-file invariants plus the
// end-to-end programs. Every case builds its own machine, so the pool
// is free to run them all at once.
func Suite() []Case {
	return []Case{
		{"register-ranges", checkRegisterRanges},
		{"flag-byte-roundtrip", checkFlagRoundTrip},
		{"reset-idempotent", checkResetIdempotent},
		{"exchange-involutions", checkExchangeInvolutions},
		{"push-pop-identity", checkPushPopIdentity},
		{"ld-r-r-noop", checkLoadSelfNoop},
		{"refresh-counter", checkRefreshCounter},
		{"parity-flag", checkParityFlag},
		{"daa-sticky-carry", checkDaaStickyCarry},
		{"scenario-add-overflow", checkScenarioAddOverflow},
		{"scenario-daa-bcd", checkScenarioDaa},
		{"scenario-ldir-copy", checkScenarioLdir},
		{"scenario-djnz-loop", checkScenarioDjnz},
		{"scenario-im1-interrupt", checkScenarioIM1},
		{"scenario-ddcb-writeback", checkScenarioDdcb},
	}
}

// machine builds a reset CPU on a flat bus with program loaded at 0.
func machine(program ...uint8) (*z80.CPU, *host.Memory) {
	mem := host.NewMemory()
	mem.Load(0, program)
	return z80.New(mem), mem
}

// runToHalt steps until HALT, returning total T-states.
func runToHalt(cpu *z80.CPU) (uint32, error) {
	var total uint32
	for i := 0; i < 100000; i++ {
		if cpu.Halted {
			return total, nil
		}
		total += cpu.Step()
	}
	return total, fmt.Errorf("program did not halt")
}

// checkRegisterRanges runs a pseudo-random opcode soup and verifies the
// architectural registers stay in range. With uint8/uint16 storage the
// widths hold by construction; the value of the check is that decode
// survives arbitrary byte sequences without desyncing or panicking.
func checkRegisterRanges() error {
	mem := host.NewMemory()
	seed := uint32(0x2A754A37)
	for i := range mem.RAM {
		seed = seed*1664525 + 1013904223
		mem.RAM[i] = uint8(seed >> 24)
	}
	cpu := z80.New(mem)
	for i := 0; i < 50000; i++ {
		if cpu.Halted {
			cpu.IRQ(true, 0) // knock it out of HALT and keep going
		}
		cpu.Step()
	}
	if cpu.IM > 2 {
		return fmt.Errorf("IM=%d out of range", cpu.IM)
	}
	return nil
}

func checkFlagRoundTrip() error {
	cpu, _ := machine()
	for v := 0; v < 256; v++ {
		cpu.F = uint8(v)
		if cpu.F != uint8(v) {
			return fmt.Errorf("F round-trip failed for %02X", v)
		}
	}
	return nil
}

func checkResetIdempotent() error {
	cpu, _ := machine()
	cpu.B = 0x42
	cpu.Reset()
	once := cpu.Snapshot()
	cpu.Reset()
	twice := cpu.Snapshot()
	if once != twice {
		return fmt.Errorf("reset is not idempotent")
	}
	return nil
}

func checkExchangeInvolutions() error {
	cpu, _ := machine(0x08, 0x08, 0xD9, 0xD9, 0x76)
	cpu.A, cpu.F = 0x12, 0x34
	cpu.SetBC(0x1111)
	cpu.SetDE(0x2222)
	cpu.SetHL(0x3333)
	if _, err := runToHalt(cpu); err != nil {
		return err
	}
	if cpu.A != 0x12 || cpu.F != 0x34 ||
		cpu.BC() != 0x1111 || cpu.DE() != 0x2222 || cpu.HL() != 0x3333 {
		return fmt.Errorf("double exchange is not the identity")
	}
	return nil
}

func checkPushPopIdentity() error {
	cpu, _ := machine(0xF5, 0xF1, 0xD5, 0xD1, 0x76)
	cpu.A, cpu.F = 0xA5, 0xFF
	cpu.SetDE(0xCAFE)
	sp := cpu.SP
	if _, err := runToHalt(cpu); err != nil {
		return err
	}
	if cpu.A != 0xA5 || cpu.F != 0xFF || cpu.DE() != 0xCAFE {
		return fmt.Errorf("push/pop lost a register")
	}
	if cpu.SP != sp {
		return fmt.Errorf("SP drifted from %04X to %04X", sp, cpu.SP)
	}
	return nil
}

func checkLoadSelfNoop() error {
	cpu, _ := machine(0x40, 0x49, 0x52, 0x5B, 0x64, 0x6D, 0x7F, 0x76)
	cpu.A, cpu.B, cpu.C, cpu.D, cpu.E, cpu.H, cpu.L = 1, 2, 3, 4, 5, 6, 7
	before := cpu.Snapshot()
	if _, err := runToHalt(cpu); err != nil {
		return err
	}
	if cpu.A != before.A || cpu.B != before.B || cpu.C != before.C ||
		cpu.D != before.D || cpu.E != before.E || cpu.H != before.H ||
		cpu.L != before.L || cpu.F != before.F {
		return fmt.Errorf("LD r,r mutated a register")
	}
	return nil
}

func checkRefreshCounter() error {
	cpu, _ := machine() // all NOPs
	for n := 1; n <= 256; n++ {
		cpu.Step()
		if cpu.R != uint8(n%128) {
			return fmt.Errorf("after %d instructions R=%02X, want %02X", n, cpu.R, n%128)
		}
	}
	return nil
}

func checkParityFlag() error {
	for v := 0; v < 256; v++ {
		cpu, _ := machine(0xEE, uint8(v), 0x76) // XOR n
		if _, err := runToHalt(cpu); err != nil {
			return err
		}
		ones := 0
		for b := 0; b < 8; b++ {
			if v&(1<<b) != 0 {
				ones++
			}
		}
		if cpu.Flag(z80.FlagP) != (ones%2 == 0) {
			return fmt.Errorf("parity of %02X wrong", v)
		}
	}
	return nil
}

func checkDaaStickyCarry() error {
	for a := 0; a < 256; a++ {
		for _, f := range []uint8{z80.FlagC, z80.FlagC | z80.FlagN, z80.FlagC | z80.FlagH} {
			cpu, _ := machine(0x27, 0x76) // DAA
			cpu.A, cpu.F = uint8(a), f
			if _, err := runToHalt(cpu); err != nil {
				return err
			}
			if !cpu.Flag(z80.FlagC) {
				return fmt.Errorf("DAA cleared C for A=%02X F=%02X", a, f)
			}
		}
	}
	return nil
}

func checkScenarioAddOverflow() error {
	cpu, _ := machine(0x3E, 0x7F, 0x3C, 0x76)
	if _, err := runToHalt(cpu); err != nil {
		return err
	}
	if cpu.A != 0x80 {
		return fmt.Errorf("A=%02X, want 80", cpu.A)
	}
	if !cpu.Flag(z80.FlagS) || cpu.Flag(z80.FlagZ) || !cpu.Flag(z80.FlagH) ||
		!cpu.Flag(z80.FlagV) || cpu.Flag(z80.FlagN) {
		return fmt.Errorf("flags F=%02X", cpu.F)
	}
	return nil
}

func checkScenarioDaa() error {
	cpu, _ := machine(0x3E, 0x15, 0xC6, 0x27, 0x27, 0x76)
	if _, err := runToHalt(cpu); err != nil {
		return err
	}
	if cpu.A != 0x42 {
		return fmt.Errorf("BCD 15+27 gave %02X, want 42", cpu.A)
	}
	if cpu.Flag(z80.FlagC) || cpu.Flag(z80.FlagN) || !cpu.Flag(z80.FlagP) {
		return fmt.Errorf("DAA flags F=%02X", cpu.F)
	}
	return nil
}

func checkScenarioLdir() error {
	cpu, mem := machine(0xED, 0xB0, 0x76)
	cpu.SetHL(0x0010)
	cpu.SetDE(0x0020)
	cpu.SetBC(0x0004)
	mem.Load(0x0010, []uint8{0xDE, 0xAD, 0xBE, 0xEF})
	if _, err := runToHalt(cpu); err != nil {
		return err
	}
	for i, b := range []uint8{0xDE, 0xAD, 0xBE, 0xEF} {
		if mem.RAM[0x0020+i] != b {
			return fmt.Errorf("byte %d is %02X, want %02X", i, mem.RAM[0x0020+i], b)
		}
	}
	if cpu.BC() != 0 || cpu.HL() != 0x0014 || cpu.DE() != 0x0024 || cpu.Flag(z80.FlagP) {
		return fmt.Errorf("LDIR end state BC=%04X HL=%04X DE=%04X", cpu.BC(), cpu.HL(), cpu.DE())
	}
	return nil
}

func checkScenarioDjnz() error {
	cpu, _ := machine(0x06, 0x05, 0x10, 0xFE, 0x76)
	total, err := runToHalt(cpu)
	if err != nil {
		return err
	}
	if cpu.B != 0 {
		return fmt.Errorf("B=%02X after the loop", cpu.B)
	}
	if want := uint32(7 + 4*13 + 8 + 4); total != want {
		return fmt.Errorf("loop cost %d T-states, want %d", total, want)
	}
	return nil
}

func checkScenarioIM1() error {
	cpu, mem := machine(0xFB, 0x00, 0x00)
	cpu.IM = 1
	cpu.Step()
	cpu.Step()
	pc, sp := cpu.PC, cpu.SP
	if cost := cpu.IRQ(false, 0); cost != 13 {
		return fmt.Errorf("IM1 acceptance cost %d, want 13", cost)
	}
	if cpu.PC != 0x38 || cpu.SP != sp-2 {
		return fmt.Errorf("IM1 vectoring: PC=%04X SP=%04X", cpu.PC, cpu.SP)
	}
	if top := uint16(mem.RAM[cpu.SP+1])<<8 | uint16(mem.RAM[cpu.SP]); top != pc {
		return fmt.Errorf("stack top %04X, want %04X", top, pc)
	}
	if cpu.IFF1 || cpu.IFF2 {
		return fmt.Errorf("flip-flops survived acceptance")
	}
	return nil
}

func checkScenarioDdcb() error {
	cpu, mem := machine(0xDD, 0xCB, 0x05, 0x30, 0x76)
	cpu.IX = 0x1000
	mem.RAM[0x1005] = 0x80
	if _, err := runToHalt(cpu); err != nil {
		return err
	}
	if mem.RAM[0x1005] != 0x01 || cpu.B != 0x01 {
		return fmt.Errorf("double write: mem=%02X B=%02X", mem.RAM[0x1005], cpu.B)
	}
	if !cpu.Flag(z80.FlagC) || cpu.Flag(z80.FlagP) {
		return fmt.Errorf("SLL flags F=%02X", cpu.F)
	}
	return nil
}
