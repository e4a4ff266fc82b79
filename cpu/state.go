package cpu

import (
	"fmt"
	"strings"
)

// RunState is the execution state of the CPU.
type RunState int

//go:generate go tool stringer -linecomment -type=RunState
const (
	STATE_IDLE    = RunState(0) // idle
	STATE_RUNNING = RunState(1) // running
	STATE_HALTED  = RunState(2) // halted
	STATE_FAULTED = RunState(3) // faulted
)

// Snapshot is a read-only copy of the program counter and registers.
type Snapshot struct {
	Pc       Word         // Program counter, as a word index.
	Register RegisterFile // Register bank.
}

// PcByte returns the program counter as a byte offset.
func (ss Snapshot) PcByte() Word {
	return ss.Pc * 2
}

// String formats the snapshot as a single trace line.
func (ss Snapshot) String() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "PCw=%d PCb=0x%04x | ", ss.Pc, ss.PcByte())
	for n, reg := range ss.Register {
		fmt.Fprintf(&sb, "R%d=0x%04x ", n, reg)
	}

	return sb.String()
}
