package cpu

import (
	"fmt"
)

// CodeFormat is the instruction format, selected by the top bit of the word.
type CodeFormat int

//go:generate go tool stringer -linecomment -type=CodeFormat
const (
	FORMAT_R = CodeFormat(0) // R
	FORMAT_I = CodeFormat(1) // I
)

// CodeOpR is an R format operation.
type CodeOpR int

//go:generate go tool stringer -linecomment -type=CodeOpR
const (
	OP_R_ADD     = CodeOpR(0)  // add
	OP_R_SUB     = CodeOpR(1)  // sub
	OP_R_MUL     = CodeOpR(2)  // mul
	OP_R_DIV     = CodeOpR(3)  // div
	OP_R_EQ      = CodeOpR(4)  // eq
	OP_R_NE      = CodeOpR(5)  // ne
	OP_R_LOAD    = CodeOpR(15) // load
	OP_R_STORE   = CodeOpR(16) // store
	OP_R_SYSCALL = CodeOpR(63) // syscall
)

// CodeOpI is an I format operation.
type CodeOpI int

//go:generate go tool stringer -linecomment -type=CodeOpI
const (
	OP_I_JUMP = CodeOpI(0) // jump
	OP_I_JNZ  = CodeOpI(1) // jnz
	OP_I_MOV  = CodeOpI(3) // mov
)

// Instruction word layout.
const (
	FORMAT_BIT = 15 // Format select bit.

	R_OP_SHIFT  = 9
	R_OP_BITS   = 6
	R_RD_SHIFT  = 6
	R_RS1_SHIFT = 3
	R_RS2_SHIFT = 0
	R_REG_BITS  = 3

	I_OP_SHIFT  = 13
	I_OP_BITS   = 2
	I_REG_SHIFT = 10
	I_REG_BITS  = 3
	I_IMM_SHIFT = 0
	I_IMM_BITS  = 10

	I_IMM_MAX = (1 << I_IMM_BITS) - 1 // Largest encodable immediate.
)

// Instruction is a decoded instruction word, either an InstructionR or an
// InstructionI.
type Instruction interface {
	// Format of the instruction.
	Format() CodeFormat
	// Word re-encodes the instruction.
	Word() Word
	// String disassembles the instruction.
	String() string
}

// InstructionR is a register to register instruction.
type InstructionR struct {
	Op  CodeOpR
	Rd  CodeReg
	Rs1 CodeReg
	Rs2 CodeReg
}

// InstructionI is a jump or move instruction with a 10-bit immediate.
type InstructionI struct {
	Op  CodeOpI
	Reg CodeReg
	Imm Word
}

var _ Instruction = InstructionR{}
var _ Instruction = InstructionI{}

// Decode decodes an instruction word. Every word decodes; whether the
// operation exists is for the executor to decide.
func Decode(word Word) Instruction {
	if CodeFormat(Extract(word, FORMAT_BIT, 1)) == FORMAT_R {
		return InstructionR{
			Op:  CodeOpR(Extract(word, R_OP_SHIFT, R_OP_BITS)),
			Rd:  CodeReg(Extract(word, R_RD_SHIFT, R_REG_BITS)),
			Rs1: CodeReg(Extract(word, R_RS1_SHIFT, R_REG_BITS)),
			Rs2: CodeReg(Extract(word, R_RS2_SHIFT, R_REG_BITS)),
		}
	}

	return InstructionI{
		Op:  CodeOpI(Extract(word, I_OP_SHIFT, I_OP_BITS)),
		Reg: CodeReg(Extract(word, I_REG_SHIFT, I_REG_BITS)),
		Imm: Extract(word, I_IMM_SHIFT, I_IMM_BITS),
	}
}

// MakeCodeR creates an R format instruction word.
func MakeCodeR(op CodeOpR, rd, rs1, rs2 CodeReg) Word {
	return InstructionR{Op: op, Rd: rd, Rs1: rs1, Rs2: rs2}.Word()
}

// MakeCodeI creates an I format instruction word.
func MakeCodeI(op CodeOpI, reg CodeReg, imm Word) Word {
	return InstructionI{Op: op, Reg: reg, Imm: imm}.Word()
}

// Format returns FORMAT_R.
func (inst InstructionR) Format() CodeFormat {
	return FORMAT_R
}

// Word encodes the instruction. Fields are truncated to their widths.
func (inst InstructionR) Word() Word {
	word := Word(FORMAT_R) << FORMAT_BIT
	word |= Extract(Word(inst.Op), 0, R_OP_BITS) << R_OP_SHIFT
	word |= Extract(Word(inst.Rd), 0, R_REG_BITS) << R_RD_SHIFT
	word |= Extract(Word(inst.Rs1), 0, R_REG_BITS) << R_RS1_SHIFT
	word |= Extract(Word(inst.Rs2), 0, R_REG_BITS) << R_RS2_SHIFT
	return word
}

// String returns the assembly language representation of the instruction.
func (inst InstructionR) String() (out string) {
	switch inst.Op {
	case OP_R_LOAD:
		out = fmt.Sprintf("%v %v %v", inst.Op, inst.Rd, inst.Rs1)
	case OP_R_STORE:
		out = fmt.Sprintf("%v %v %v", inst.Op, inst.Rs1, inst.Rs2)
	case OP_R_SYSCALL:
		out = inst.Op.String()
	default:
		out = fmt.Sprintf("%v %v %v %v", inst.Op, inst.Rd, inst.Rs1, inst.Rs2)
	}

	return
}

// Format returns FORMAT_I.
func (inst InstructionI) Format() CodeFormat {
	return FORMAT_I
}

// Word encodes the instruction. Fields are truncated to their widths.
func (inst InstructionI) Word() Word {
	word := Word(FORMAT_I) << FORMAT_BIT
	word |= Extract(Word(inst.Op), 0, I_OP_BITS) << I_OP_SHIFT
	word |= Extract(Word(inst.Reg), 0, I_REG_BITS) << I_REG_SHIFT
	word |= Extract(inst.Imm, 0, I_IMM_BITS) << I_IMM_SHIFT
	return word
}

// String returns the assembly language representation of the instruction.
func (inst InstructionI) String() (out string) {
	switch inst.Op {
	case OP_I_JUMP:
		out = fmt.Sprintf("%v %d", inst.Op, inst.Imm)
	default:
		out = fmt.Sprintf("%v %v %d", inst.Op, inst.Reg, inst.Imm)
	}

	return
}
