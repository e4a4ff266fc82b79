package emulator

import (
	"bytes"
	"errors"
	"log"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/sim16/cpu"
)

func newTestEmulator(t *testing.T, program ...string) (emu *Emulator, diag *bytes.Buffer) {
	diag = &bytes.Buffer{}
	emu = NewEmulator()
	emu.Cpu.Log = log.New(diag, "", 0)

	err := emu.Assemble(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(t, err)
	if err != nil {
		t.Fatal(err)
	}

	err = emu.Reset()
	assert.NoError(t, err)

	return
}

func TestEmulator(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()

	assert.False(emu.Verbose)
	assert.NotNil(emu.Cpu)
	assert.Equal(cpu.STATE_IDLE, emu.Cpu.State)
	assert.Equal(cpu.Word(cpu.PC_START), emu.Cpu.Pc)

	done, err := emu.Tick()
	assert.True(done)
	assert.NoError(err)
}

func TestEmulator_Defines(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()

	defines := map[string]string{}
	for key, value := range emu.Defines() {
		defines[key] = value
	}

	assert.Equal("16", defines["WORD_BITS"])
	assert.Equal("1023", defines["IMM_MAX"])
	assert.Equal("32768", defines["MEMORY_SIZE"])
	assert.Equal("3000", defines["CYCLE_LIMIT"])

	// Defines are visible to assembled programs.
	emu, _ = newTestEmulator(t, "mov r1 IMM_MAX", "mov r2 $(WORD_BITS * 2)")
	assert.Equal(cpu.Word(1023), emu.Program.Image[1]&0x3ff)
	assert.Equal(cpu.Word(32), emu.Program.Image[2]&0x3ff)
}

func TestEmulator_Run(t *testing.T) {
	assert := assert.New(t)

	emu, diag := newTestEmulator(t,
		"mov r1 5",
		"mov r2 3",
		"add r3 r1 r2",
		"halt",
	)
	trace := &bytes.Buffer{}
	emu.Trace = trace

	state := emu.Run()
	assert.Equal(cpu.STATE_HALTED, state)
	assert.Equal(cpu.Word(8), emu.Cpu.Register[3])
	assert.Nil(emu.Cpu.Fault)
	assert.Equal(5, emu.Cpu.Ticks)

	lines := strings.Split(strings.TrimSuffix(trace.String(), "\n"), "\n")
	assert.Equal(5, len(lines))
	assert.Equal("PCw=1 PCb=0x0002 | R0=0x0000 R1=0x0000 R2=0x0000 R3=0x0000 R4=0x0000 R5=0x0000 R6=0x0000 R7=0x0000 ", lines[0])
	assert.Equal("PCw=4 PCb=0x0008 | R0=0x0000 R1=0x0005 R2=0x0003 R3=0x0008 R4=0x0000 R5=0x0000 R6=0x0000 R7=0x0000 ", lines[3])

	assert.Contains(diag.String(), "loader:")
	assert.Contains(diag.String(), "syscall:")
	assert.NotContains(diag.String(), "fault:")

	// Further ticks do nothing.
	done, err := emu.Tick()
	assert.True(done)
	assert.NoError(err)
	assert.Equal(5, emu.Cpu.Ticks)
}

func TestEmulator_LineNo(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"        mov r1 2",
		"        mov r2 1",
		"loop:   sub r1 r1 r2",
		"        jnz r1 loop",
		"        halt",
	}
	emu, _ := newTestEmulator(t, program...)

	expected := []int{1, 2, 3, 4, 3, 4, 5, 5}
	for n, lineno := range expected {
		assert.Equal(lineno, emu.LineNo(), n)
		debug := emu.Program.Debug(emu.Cpu.Pc)
		assert.Equal(debug.Codes[debug.Index], emu.Code().Word())

		done, err := emu.Tick()
		assert.NoError(err)
		assert.Equal(n == len(expected)-1, done, n)
	}

	assert.Equal(cpu.STATE_HALTED, emu.Cpu.State)
}

func TestEmulator_Load(t *testing.T) {
	assert := assert.New(t)

	emu, _ := newTestEmulator(t,
		"mov r1 100",
		"mov r2 7",
		"store r1 r2",
		"load r3 r1",
		"halt",
	)

	image := &bytes.Buffer{}
	assert.NoError(emu.Save(image))
	assert.Equal(emu.Program.Binary(), image.Bytes())

	diag := &bytes.Buffer{}
	emu = NewEmulator()
	emu.Cpu.Log = log.New(diag, "", 0)
	assert.NoError(emu.Load(image))
	assert.Nil(emu.Program.Opcodes)
	assert.Equal(7, len(emu.Program.Image))
	assert.NoError(emu.Reset())

	assert.Equal(0, emu.LineNo())
	assert.Equal(cpu.STATE_HALTED, emu.Run())
	assert.Equal(cpu.Word(7), emu.Cpu.Register[3])
	assert.Equal(cpu.Word(7), emu.Cpu.Memory[100])
	assert.Contains(diag.String(), "loader:")
}

func TestEmulator_LoadFile(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	err := emu.LoadFile(t.TempDir() + "/missing.bin")
	assert.Error(err)
}

func TestEmulator_Empty(t *testing.T) {
	assert := assert.New(t)

	diag := &bytes.Buffer{}
	emu := NewEmulator()
	emu.Cpu.Log = log.New(diag, "", 0)

	assert.NoError(emu.Load(strings.NewReader("")))
	err := emu.Reset()
	assert.ErrorIs(err, cpu.ErrProgramEmpty)
	assert.Contains(diag.String(), "warning:")

	assert.Equal(cpu.STATE_IDLE, emu.Run())
	assert.Equal(0, emu.Cpu.Ticks)
}

func TestEmulator_Fault(t *testing.T) {
	assert := assert.New(t)

	emu, diag := newTestEmulator(t,
		"mov r1 0",
		"mov r2 1",
		"sub r1 r1 r2",
		"load r3 r1",
		"halt",
	)

	var err error
	for done := false; !done; {
		done, err = emu.Tick()
	}

	assert.Equal(cpu.STATE_FAULTED, emu.Cpu.State)
	assert.ErrorIs(err, cpu.ErrLoad)
	assert.ErrorIs(err, cpu.ErrAddress(0xffff))
	assert.ErrorIs(emu.Cpu.Fault, cpu.ErrLoad)
	assert.Equal(4, emu.Cpu.Ticks)
	assert.Contains(diag.String(), "fault:")

	var runtime *ErrRuntime
	if assert.True(errors.As(err, &runtime)) {
		assert.Equal(cpu.Word(4), runtime.Pc)
		assert.Equal(4, runtime.LineNo)
	}
}

func TestEmulator_CycleLimit(t *testing.T) {
	assert := assert.New(t)

	emu, diag := newTestEmulator(t,
		"loop: jump loop",
	)

	assert.Equal(cpu.STATE_FAULTED, emu.Run())
	assert.Equal(cpu.CYCLE_LIMIT+1, emu.Cpu.Ticks)
	assert.ErrorIs(emu.Cpu.Fault, cpu.ErrCycleLimit)
	assert.Contains(diag.String(), "fault:")
}

func TestEmulator_Verbose(t *testing.T) {
	assert := assert.New(t)

	emu, diag := newTestEmulator(t,
		"mov r1 5",
		"halt",
	)
	emu.Verbose = true

	assert.Equal(cpu.STATE_HALTED, emu.Run())
	assert.Contains(diag.String(), "00001: mov r1 5")
	assert.Contains(diag.String(), "00003: syscall")
}
