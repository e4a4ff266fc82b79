// Package cpu implements the processor and assembler for the sim16 system.
//
// The CPU consists of a program counter (Pc) holding a word index, eight 16-bit
// general-purpose registers (r0-r7) and a 32768 word memory. Instructions are a
// single 16-bit word in one of two formats, selected by the top bit: the R format
// for register to register operations, and the I format for jumps and moves of a
// 10-bit immediate. Register r0 also selects the service of a syscall.
//
// The assembler provides a small assembly language for the sim16 instruction set,
// supporting macros, labels, equates, and compile-time expression evaluation.
package cpu
