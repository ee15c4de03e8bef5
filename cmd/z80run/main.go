package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/z80core/z80core/internal/host"
	"github.com/z80core/z80core/pkg/conformance"
	"github.com/z80core/z80core/pkg/z80"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "z80run",
		Short: "Z80 core demo host — load an image, drive the interpreter",
	}

	// run command
	var org, entry string
	var fuel uint64

	runCmd := &cobra.Command{
		Use:   "run [image.bin]",
		Short: "Execute a binary image until HALT or the fuel limit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cpu, _, err := boot(args[0], org, entry)
			if err != nil {
				return err
			}

			var total uint64
			for !cpu.Halted {
				total += uint64(cpu.Step())
				if total >= fuel {
					fmt.Printf("fuel limit reached after %d T-states\n", total)
					break
				}
			}
			if cpu.Halted {
				fmt.Printf("HALT after %d T-states\n", total)
			}
			dumpRegisters(cpu)
			return nil
		},
	}
	runCmd.Flags().StringVar(&org, "org", "0", "Load address for the image")
	runCmd.Flags().StringVar(&entry, "entry", "0", "Initial PC")
	runCmd.Flags().Uint64Var(&fuel, "fuel", 10_000_000, "Maximum T-states before giving up")

	// step command
	var count int

	stepCmd := &cobra.Command{
		Use:   "step [image.bin]",
		Short: "Single-step N instructions, dumping registers after each",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cpu, _, err := boot(args[0], org, entry)
			if err != nil {
				return err
			}
			for i := 0; i < count && !cpu.Halted; i++ {
				cost := cpu.Step()
				fmt.Printf("[%d] +%d T-states\n", i+1, cost)
				dumpRegisters(cpu)
			}
			return nil
		},
	}
	stepCmd.Flags().StringVar(&org, "org", "0", "Load address for the image")
	stepCmd.Flags().StringVar(&entry, "entry", "0", "Initial PC")
	stepCmd.Flags().IntVarP(&count, "count", "n", 1, "Number of instructions to retire")

	// irq command
	var after int
	var nmi bool
	var data uint8
	var mode uint8

	irqCmd := &cobra.Command{
		Use:   "irq [image.bin]",
		Short: "Run, inject an interrupt after N instructions, run to HALT",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cpu, _, err := boot(args[0], org, entry)
			if err != nil {
				return err
			}
			if mode > 2 {
				return fmt.Errorf("interrupt mode %d out of range", mode)
			}
			cpu.IM = mode

			for i := 0; i < after && !cpu.Halted; i++ {
				cpu.Step()
			}
			cost := cpu.IRQ(nmi, data)
			if cost == 0 {
				fmt.Println("interrupt ignored (IFF1 clear)")
			} else {
				fmt.Printf("interrupt accepted: %d T-states, PC=%04X\n", cost, cpu.PC)
			}

			var total uint64
			for !cpu.Halted {
				total += uint64(cpu.Step())
				if total >= fuel {
					fmt.Printf("fuel limit reached after %d T-states\n", total)
					break
				}
			}
			dumpRegisters(cpu)
			return nil
		},
	}
	irqCmd.Flags().StringVar(&org, "org", "0", "Load address for the image")
	irqCmd.Flags().StringVar(&entry, "entry", "0", "Initial PC")
	irqCmd.Flags().Uint64Var(&fuel, "fuel", 10_000_000, "Maximum T-states before giving up")
	irqCmd.Flags().IntVar(&after, "after", 1, "Instructions to retire before the interrupt")
	irqCmd.Flags().BoolVar(&nmi, "nmi", false, "Inject a non-maskable interrupt")
	irqCmd.Flags().Uint8Var(&data, "data", 0xFF, "Data bus byte for IM 0/IM 2")
	irqCmd.Flags().Uint8Var(&mode, "mode", 1, "Interrupt mode (0, 1, or 2)")

	// conform command
	var output, checkpoint string
	var verbose bool
	var numWorkers int

	conformCmd := &cobra.Command{
		Use:   "conform",
		Short: "Run the built-in conformance battery against the core",
		RunE: func(cmd *cobra.Command, args []string) error {
			cases := conformance.Suite()

			done := 0
			var prior []conformance.Result
			if checkpoint != "" {
				if ckpt, err := conformance.LoadCheckpoint(checkpoint); err == nil {
					done = ckpt.Completed
					prior = ckpt.Results
					fmt.Printf("Resuming: %d/%d cases already done\n", done, len(cases))
				}
			}
			if done > len(cases) {
				done = len(cases)
			}

			wp := conformance.NewWorkerPool(numWorkers)
			for _, r := range prior {
				wp.Results.Add(r)
			}
			fmt.Printf("Z80 core conformance\n")
			fmt.Printf("  Cases:   %d\n", len(cases)-done)
			fmt.Printf("  Workers: %d\n", wp.NumWorkers)
			fmt.Println()

			wp.RunCases(cases[done:], verbose)

			ran, failed := wp.Stats()
			fmt.Printf("\n%d cases run, %d failed\n", ran, failed)

			if checkpoint != "" {
				ckpt := &conformance.Checkpoint{
					Results:   wp.Results.Results(),
					Completed: done + int(ran),
				}
				if err := conformance.SaveCheckpoint(checkpoint, ckpt); err != nil {
					return err
				}
			}
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return err
				}
				defer f.Close()
				if err := conformance.WriteJSON(f, wp.Results.Results()); err != nil {
					return err
				}
				fmt.Printf("Written to %s\n", output)
			}
			if failed > 0 {
				return fmt.Errorf("%d conformance failures", failed)
			}
			return nil
		},
	}
	conformCmd.Flags().StringVar(&output, "output", "", "Output JSON file path")
	conformCmd.Flags().StringVar(&checkpoint, "checkpoint", "", "Checkpoint file for resume")
	conformCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	conformCmd.Flags().IntVar(&numWorkers, "workers", 0, "Number of workers (0 = NumCPU)")

	rootCmd.AddCommand(runCmd, stepCmd, irqCmd, conformCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// boot loads the image file into a fresh flat-memory machine.
func boot(path, org, entry string) (*z80.CPU, *host.Memory, error) {
	image, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot read image: %w", err)
	}
	if len(image) > 0x10000 {
		return nil, nil, fmt.Errorf("image is %d bytes, larger than the address space", len(image))
	}
	orgAddr, err := parseAddr(org)
	if err != nil {
		return nil, nil, fmt.Errorf("bad --org: %w", err)
	}
	entryAddr, err := parseAddr(entry)
	if err != nil {
		return nil, nil, fmt.Errorf("bad --entry: %w", err)
	}

	mem := host.NewMemory()
	mem.Load(orgAddr, image)
	cpu := z80.New(mem)
	cpu.PC = entryAddr
	return cpu, mem, nil
}

// parseAddr accepts decimal, 0x-prefixed hex, and trailing-h hex forms.
func parseAddr(s string) (uint16, error) {
	s = strings.TrimSpace(s)
	base := 10
	switch {
	case strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X"):
		s, base = s[2:], 16
	case strings.HasSuffix(strings.ToUpper(s), "H"):
		s, base = s[:len(s)-1], 16
	}
	v, err := strconv.ParseUint(s, base, 16)
	if err != nil {
		return 0, err
	}
	return uint16(v), nil
}

func dumpRegisters(c *z80.CPU) {
	fmt.Printf("  AF=%04X BC=%04X DE=%04X HL=%04X\n", c.AF(), c.BC(), c.DE(), c.HL())
	fmt.Printf("  IX=%04X IY=%04X SP=%04X PC=%04X\n", c.IX, c.IY, c.SP, c.PC)
	fmt.Printf("  I=%02X R=%02X IM=%d IFF1=%v IFF2=%v halted=%v\n",
		c.I, c.R, c.IM, c.IFF1, c.IFF2, c.Halted)
}
