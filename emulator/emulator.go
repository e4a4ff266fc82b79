// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"fmt"
	"io"
	"iter"
	"maps"
	"os"

	"github.com/ezrec/sim16/cpu"
	"github.com/ezrec/sim16/internal"
)

var _emulator_defines = map[string]string{
	"WORD_BITS": fmt.Sprintf("%v", cpu.WORD_BITS),
	"IMM_MAX":   fmt.Sprintf("%v", cpu.I_IMM_MAX),
}

// Emulator state. CPU + program listing + trace.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the currently running program listing.

	Trace io.Writer // If set, receives the machine state before every cycle.
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu:     cpu.NewCpu(),
		Program: &cpu.Program{},
	}

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_emulator_defines),
		emu.Cpu.Defines(),
	)
}

// Assemble parses assembly source into the current program.
func (emu *Emulator) Assemble(input io.Reader) (err error) {
	asm := &cpu.Assembler{Verbose: emu.Verbose}
	for key, value := range emu.Defines() {
		asm.Predefine(key, value)
	}

	prog, err := asm.Parse(input)
	if err != nil {
		return
	}

	emu.Program = prog
	return
}

// Load reads a binary program image as the current program.
func (emu *Emulator) Load(input io.Reader) (err error) {
	prog := &cpu.Program{}
	_, err = prog.ReadFrom(input)
	if err != nil {
		return
	}

	emu.Program = prog
	return
}

// LoadFile reads a binary program image from a file.
func (emu *Emulator) LoadFile(path string) (err error) {
	inf, err := os.Open(path)
	if err != nil {
		return
	}
	defer inf.Close()

	err = emu.Load(inf)
	return
}

// Save writes the current program image.
func (emu *Emulator) Save(output io.Writer) (err error) {
	_, err = emu.Program.WriteTo(output)
	return
}

// Reset the CPU, and load the current program image into memory.
func (emu *Emulator) Reset() (err error) {
	emu.Cpu.Verbose = emu.Verbose

	err = emu.Cpu.Reset(emu.Program.Image)
	if err != nil {
		emu.Cpu.Log.Print(f("warning: %v", err))
		return
	}

	emu.Cpu.Log.Print(f("loader: %d words loaded", len(emu.Program.Image)))

	return
}

// Code returns the instruction at the program counter.
func (emu *Emulator) Code() cpu.Instruction {
	return cpu.Decode(emu.Cpu.Memory[emu.Cpu.Pc%cpu.MEMORY_SIZE])
}

// lineOf returns the source line of the opcode at a word index,
// or 0 if the program has no listing for it.
func (emu *Emulator) lineOf(ip cpu.Word) int {
	dbg := emu.Program.Debug(ip)
	if dbg.Opcode == nil {
		return 0
	}

	return dbg.Opcode.LineNo
}

// LineNo returns the current line number for the executing opcode.
func (emu *Emulator) LineNo() int {
	return emu.lineOf(emu.Cpu.Pc)
}

// Tick performs a single tick of the emulator.
// done is set once the CPU is no longer running.
func (emu *Emulator) Tick() (done bool, err error) {
	if emu.Cpu.State != cpu.STATE_RUNNING {
		done = true
		return
	}

	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	if emu.Trace != nil {
		fmt.Fprintln(emu.Trace, emu.Cpu.Snapshot())
	}

	pc := emu.Cpu.Pc
	defer func() {
		if err != nil {
			err = &ErrRuntime{Pc: pc, LineNo: emu.lineOf(pc), Err: err}
		}
	}()

	err = emu.Cpu.Tick()
	done = emu.Cpu.State != cpu.STATE_RUNNING

	return
}

// Run ticks the emulator until the CPU halts or faults, and returns
// the final state. The fault, if any, is in Cpu.Fault.
func (emu *Emulator) Run() (state cpu.RunState) {
	for done := false; !done; {
		done, _ = emu.Tick()
	}

	return emu.Cpu.State
}
