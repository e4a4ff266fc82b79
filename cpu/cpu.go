// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"fmt"
	"iter"
	"log"
	"maps"
)

const (
	PC_START    = 1    // Word index of the first instruction. Word 0 is reserved.
	CYCLE_LIMIT = 3000 // Cycles allowed before a run is declared stuck.
)

var _cpu_defines = map[string]string{
	"MEMORY_SIZE":    fmt.Sprintf("%v", MEMORY_SIZE),
	"REGISTER_COUNT": fmt.Sprintf("%v", REGISTER_COUNT),
	"CYCLE_LIMIT":    fmt.Sprintf("%v", CYCLE_LIMIT),
	"PC_START":       fmt.Sprintf("%v", PC_START),
	"SYS_HALT":       fmt.Sprintf("%v", int(SYS_HALT)),
}

// Cpu is the simulation context for the sim16 processor.
type Cpu struct {
	Verbose bool        // Set to enable verbose logging.
	Log     *log.Logger // Destination of faults, warnings and notices.

	Pc       Word         // Program counter, as a word index.
	Register RegisterFile // Register bank.
	Memory   Memory       // Main memory.

	State RunState // Execution state.
	Fault error    // Reason for STATE_FAULTED.
	Ticks int      // Completed cycles since reset.
}

// NewCpu creates a new, idle CPU.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{
		Log: log.Default(),
		Pc:  PC_START,
	}

	return
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() string {
	return fmt.Sprintf("%v [%v] ticks=%d", cpu.Snapshot(), cpu.State, cpu.Ticks)
}

// Snapshot returns a copy of the program counter and registers.
func (cpu *Cpu) Snapshot() Snapshot {
	return Snapshot{
		Pc:       cpu.Pc,
		Register: cpu.Register,
	}
}

// Reset the CPU state.
// - Clears the registers and memory.
// - Zeros the cycle counter and fault.
// - Copies the program image into memory from word 0.
// - Sets the program counter to PC_START.
// - Runs only if the image has at least one word.
func (cpu *Cpu) Reset(image []Word) (err error) {
	if cpu.Verbose {
		cpu.Log.Printf("cpu: reset")
	}

	cpu.Register.Reset()
	cpu.Memory.Reset()
	cpu.Ticks = 0
	cpu.Fault = nil
	cpu.Pc = PC_START

	words := cpu.Memory.Load(image)
	if words == 0 {
		cpu.State = STATE_IDLE
		err = ErrProgramEmpty
		return
	}

	cpu.State = STATE_RUNNING

	if cpu.Verbose {
		cpu.Log.Printf("cpu: %d words loaded", words)
	}

	return
}

// Run ticks the CPU until it halts or faults. If observe is not nil, it
// is called with a snapshot before every cycle.
func (cpu *Cpu) Run(observe func(Snapshot)) (state RunState) {
	for cpu.State == STATE_RUNNING {
		if observe != nil {
			observe(cpu.Snapshot())
		}
		_ = cpu.Tick()
	}

	return cpu.State
}

// Tick executes a single fetch, decode and execute cycle.
func (cpu *Cpu) Tick() (err error) {
	if cpu.State != STATE_RUNNING {
		err = ErrNotRunning
		return
	}

	defer func() {
		if err != nil && cpu.State != STATE_FAULTED {
			cpu.fault(err)
		}
	}()

	word, err := cpu.Memory.Read(cpu.Pc)
	if err != nil {
		err = ErrFault{Class: ErrFetch, Err: err}
		return
	}
	cpu.Pc++

	err = cpu.Execute(Decode(word))
	cpu.Ticks++
	if err != nil {
		return
	}

	if cpu.State == STATE_RUNNING && cpu.Ticks > CYCLE_LIMIT {
		err = ErrCycleLimit
		return
	}

	return
}

// fault stops the CPU.
func (cpu *Cpu) fault(err error) {
	cpu.State = STATE_FAULTED
	cpu.Fault = err
	cpu.Log.Print(f("fault: %v", err))
}

// warn reports an instruction that has no effect.
func (cpu *Cpu) warn(err error) {
	cpu.Log.Print(f("warning: %v", err))
}

// Execute executes a single decoded instruction. The program counter
// must already point past it. Only faults are returned, and they
// stop the CPU; register writes made before the fault are kept.
func (cpu *Cpu) Execute(inst Instruction) (err error) {
	defer func() {
		if err != nil {
			cpu.fault(err)
		}
	}()

	if cpu.Verbose {
		cpu.Log.Printf("%05d: %v", cpu.Pc-1, inst)
	}

	switch inst := inst.(type) {
	case InstructionR:
		err = cpu.executeR(inst)
	case InstructionI:
		err = cpu.executeI(inst)
	default:
		panic(fmt.Sprintf("cpu: unknown instruction type %T", inst))
	}

	return
}

func (cpu *Cpu) executeR(inst InstructionR) (err error) {
	a := cpu.Register.Get(inst.Rs1)
	b := cpu.Register.Get(inst.Rs2)

	switch inst.Op {
	case OP_R_ADD:
		cpu.Register.Set(inst.Rd, a+b)
	case OP_R_SUB:
		cpu.Register.Set(inst.Rd, a-b)
	case OP_R_MUL:
		cpu.Register.Set(inst.Rd, a*b)
	case OP_R_DIV:
		// Division by zero is defined as 0.
		var quotient Word
		if b != 0 {
			quotient = a / b
		}
		cpu.Register.Set(inst.Rd, quotient)
	case OP_R_EQ:
		cpu.Register.Set(inst.Rd, wordOf(a == b))
	case OP_R_NE:
		cpu.Register.Set(inst.Rd, wordOf(a != b))
	case OP_R_LOAD:
		var value Word
		value, err = cpu.Memory.Read(a)
		if err != nil {
			err = ErrFault{Class: ErrLoad, Err: err}
			return
		}
		cpu.Register.Set(inst.Rd, value)
	case OP_R_STORE:
		err = cpu.Memory.Write(a, b)
		if err != nil {
			err = ErrFault{Class: ErrStore, Err: err}
			return
		}
	case OP_R_SYSCALL:
		cpu.syscall()
	default:
		cpu.warn(ErrFault{Class: ErrOpcodeUnknown, Err: ErrOpcode(inst.Word())})
	}

	return
}

func (cpu *Cpu) executeI(inst InstructionI) (err error) {
	switch inst.Op {
	case OP_I_JUMP:
		err = cpu.jump(inst.Imm)
	case OP_I_JNZ:
		if cpu.Register.Get(inst.Reg) != 0 {
			err = cpu.jump(inst.Imm)
		}
	case OP_I_MOV:
		cpu.Register.Set(inst.Reg, inst.Imm)
	default:
		cpu.warn(ErrFault{Class: ErrOpcodeUnknown, Err: ErrOpcode(inst.Word())})
	}

	return
}

// jump sets the program counter, if the target is in memory.
func (cpu *Cpu) jump(target Word) (err error) {
	if int(target) >= MEMORY_SIZE {
		err = ErrFault{Class: ErrJump, Err: ErrAddress(target)}
		return
	}

	cpu.Pc = target
	return
}

func wordOf(cond bool) Word {
	if cond {
		return 1
	}
	return 0
}
