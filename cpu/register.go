package cpu

import (
	"fmt"
)

// REGISTER_COUNT is the number of general-purpose registers.
const REGISTER_COUNT = 8

// CodeReg is a register index, as encoded in an instruction.
type CodeReg int

//go:generate go tool stringer -linecomment -type=CodeReg
const (
	REG_R0 = CodeReg(0) // r0
	REG_R1 = CodeReg(1) // r1
	REG_R2 = CodeReg(2) // r2
	REG_R3 = CodeReg(3) // r3
	REG_R4 = CodeReg(4) // r4
	REG_R5 = CodeReg(5) // r5
	REG_R6 = CodeReg(6) // r6
	REG_R7 = CodeReg(7) // r7

	// The register that selects the service of a syscall.
	REG_SYSCALL = REG_R0
)

// RegisterFile is the general-purpose register bank.
type RegisterFile [REGISTER_COUNT]Word

// Get returns the value of a register.
func (rf *RegisterFile) Get(reg CodeReg) Word {
	if reg < 0 || int(reg) >= len(rf) {
		panic(fmt.Sprintf("cpu: register %d out of range", int(reg)))
	}

	return rf[reg]
}

// Set sets the value of a register.
func (rf *RegisterFile) Set(reg CodeReg, value Word) {
	if reg < 0 || int(reg) >= len(rf) {
		panic(fmt.Sprintf("cpu: register %d out of range", int(reg)))
	}

	rf[reg] = value
}

// Reset zeros all registers.
func (rf *RegisterFile) Reset() {
	clear(rf[:])
}
