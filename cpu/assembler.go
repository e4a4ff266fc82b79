// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Macro represents a macro definition in the assembly language.
type Macro struct {
	LineNo int      // Line number of the macro definition.
	Args   []string // Arguments for the macro.
	Lines  []string // Lines of macro text to expand.
}

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO": "0",
}

// Assembler is a single pass macro assembler for the sim16 system.
type Assembler struct {
	Verbose bool     // If set, verbosely logs the assembler actions.
	Opcode  []Opcode // List of generated opcodes.

	predefine map[string]string   // Predefines
	Label     map[string]int      // Map of jump labels to word indexes.
	Equate    map[string]string   // Map of equates.
	Macro     map[string](*Macro) // Map of macros.

	ip         int   // Location counter.
	expansions int   // Macro expansion counter, for unique '@' labels.
	expanding  Stack // Macros being expanded.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// regMap is a map of register names to register codes.
var regMap = map[string]CodeReg{
	"r0": REG_R0,
	"r1": REG_R1,
	"r2": REG_R2,
	"r3": REG_R3,
	"r4": REG_R4,
	"r5": REG_R5,
	"r6": REG_R6,
	"r7": REG_R7,
}

// aluMap maps the three register R format opcode names.
var aluMap = map[string]CodeOpR{
	"add": OP_R_ADD,
	"sub": OP_R_SUB,
	"mul": OP_R_MUL,
	"div": OP_R_DIV,
	"eq":  OP_R_EQ,
	"ne":  OP_R_NE,
}

// valueOf returns the value of a simple word.
func (asm *Assembler) valueOf(word string) (value Word, err error) {
	invert := false
	if strings.HasPrefix(word, "~") {
		invert = true
		word = word[1:]
	}
	if len(word) == 0 || word[0] == '\'' {
		// Character quotes should have been expanded into
		// values in parseLine()
		err = ErrParseNumber(word)
		return
	}
	v64, err := strconv.ParseInt(word, 0, 32)
	if err != nil || v64 > 0xffff || v64 < -0x8000 {
		err = ErrParseNumber(word)
		return
	}

	value = Word(v64)

	if invert {
		value = ^value
	}

	return
}

// register returns the register named by a word.
func (asm *Assembler) register(word string) (reg CodeReg, err error) {
	reg, ok := regMap[word]
	if !ok {
		err = ErrRegisterInvalid
	}
	return
}

// immediate returns an I format immediate, or the label to link it to.
func (asm *Assembler) immediate(word string) (imm Word, label string, err error) {
	imm, err = asm.valueOf(word)
	if err != nil {
		// Not a number; resolve as a label when linking.
		imm, label, err = 0, word, nil
		return
	}

	if imm > I_IMM_MAX {
		err = ErrImmediateRange
		return
	}

	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value Word, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		var value16 Word
		value16, err = asm.valueOf(str)
		if err != nil {
			// Ignore non-integer equates. They may be registers
			// or something else.
			continue
		}
		pred[key] = starlark.MakeInt(int(value16))
	}
	err = nil
	for key, ip := range asm.Label {
		pred[key] = starlark.MakeInt(ip)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value = Word(st_int64)
	return
}

// parseLine parses a single line as an opcode.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	// Do 'x' evaluations
	re := regexp.MustCompile(`'\\?[^']'`)
	line = re.ReplaceAllStringFunc(line, func(word string) string {
		str := word[1 : len(word)-1]
		if str[0] == '\\' {
			str = str[1:]
			switch str {
			case "\\":
				str = "\\"
			case "n":
				str = "\n"
			case "r":
				str = "\r"
			case "e":
				str = "\033"
			default:
				return word
			}
		} else if len(str) != 1 {
			return word
		}
		return fmt.Sprintf("%v", str[0])
	})

	// Do $() evaluations
	re = regexp.MustCompile(`\$\([^\$]*\)`)
	line = re.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%#v", uint16(value))
	})
	if err != nil {
		return
	}

	words = slices.DeleteFunc(strings.Split(line, " "), func(a string) bool { return len(a) == 0 })

	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if words[0] == ".equ" {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		words = words[:0]
		return
	}

	for n, word := range words {
		// Check for equate next
		equate, ok := asm.Equate[word]
		if ok {
			words[n] = equate
		}
	}

	for strings.HasSuffix(words[0], ":") {
		label := words[0][:len(words[0])-1]
		_, ok := asm.Label[label]
		if ok {
			err = ErrLabelDuplicate
			return
		}

		if asm.Label == nil {
			asm.Label = make(map[string]int, 16)
		}
		asm.Label[label] = asm.currentIp()
		words = words[1:]
		if len(words) == 0 {
			return
		}
	}

	// .macro processing
	macro, ok := asm.Macro[words[0]]
	if ok {
		name := words[0]

		args := words[1:]
		if len(args) != len(macro.Args) {
			err = ErrMacroSyntax
			return
		}
		if asm.expanding.Contains(name) {
			err = ErrMacroRecursion
			return
		}
		if asm.expanding.Full() {
			err = ErrMacroDepth
			return
		}
		asm.expanding.Push(name)
		defer asm.expanding.Pop()

		// Turn args into equs
		old_equate := maps.Clone(asm.Equate)
		for n, arg := range macro.Args {
			asm.Equate[arg] = words[1+n]
		}
		defer func() { asm.Equate = old_equate }()

		asm.expansions++
		prefix := fmt.Sprintf("%v_%v_", name, asm.expansions)
		for n, line := range macro.Lines {
			lineno := macro.LineNo + n

			line = strings.ReplaceAll(line, "@", prefix)
			words, err = asm.parseLine(line, lineno)
			if err != nil {
				err = ErrMacro{Macro: name, Line: lineno, Err: err}
				return
			}

			err = asm.parseWords(words, lineno)
			if err != nil {
				err = ErrMacro{Macro: name, Line: lineno, Err: err}
				return
			}
		}

		words = nil
		return
	}

	return
}

// currentIp gets the current location counter.
func (asm *Assembler) currentIp() int {
	return asm.ip
}

// Parse parses an input stream into a Program containing opcodes and an image.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int
	var macro *Macro

	defer func() {
		if err != nil {
			err = ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	clear(asm.Label)
	asm.Opcode = asm.Opcode[:0]
	asm.ip = PC_START
	asm.expansions = 0
	asm.expanding.Reset()
	if asm.Macro == nil {
		asm.Macro = make(map[string](*Macro))
	}
	clear(asm.Macro)
	asm.Equate = maps.Clone(sysEquate)
	maps.Copy(asm.Equate, _cpu_defines)
	maps.Copy(asm.Equate, asm.predefine)

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		text_comment := strings.Split(text, ";")
		line = strings.TrimSpace(text_comment[0])
		words := slices.DeleteFunc(strings.Split(line, " "), func(a string) bool { return len(a) == 0 })

		// .macro NAME arg...
		if len(words) > 0 && words[0] == ".macro" {
			if macro != nil {
				err = ErrMacroNesting
				return
			}
			if len(words) < 2 {
				err = ErrMacroSyntax
				return
			}
			_, ok := asm.Macro[words[1]]
			if ok {
				err = ErrMacroDuplicate
				return
			}
			macro = &Macro{
				LineNo: lineno + 1,
			}
			if len(words) > 2 {
				macro.Args = words[2:]
			}
			asm.Macro[words[1]] = macro
			continue
		}

		if len(words) > 0 && words[0] == ".endm" {
			if macro == nil {
				err = ErrMacroLonelyEndm
				return
			}
			macro = nil
			continue
		}

		if macro != nil {
			macro.Lines = append(macro.Lines, line)
			continue
		}

		words, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}

		err = asm.parseWords(words, lineno)
		if err != nil {
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	if macro != nil {
		err = ErrMacroLonely
		return
	}

	// Final linking of jump labels.
	for n := range asm.Opcode {
		op := &asm.Opcode[n]

		if len(op.LinkLabel) == 0 {
			continue
		}
		lineno = op.LineNo
		line = strings.Join(op.Words, " ")

		label := op.LinkLabel
		ip, ok := asm.Label[label]
		if !ok {
			err = ErrLabelMissing(label)
			return
		}
		if ip > I_IMM_MAX {
			err = ErrImmediateRange
			return
		}
		if len(op.Codes) < 1 {
			log.Fatalf("Unable to link label '%s' to line %d: %v", label, op.LineNo, op.Words)
		}
		op.Codes[len(op.Codes)-1] |= Word(ip)
	}

	image := make([]Word, asm.currentIp())
	for _, op := range asm.Opcode {
		copy(image[op.Ip:], op.Codes)
	}

	prog = &Program{
		Image:   image,
		Opcodes: slices.Clone(asm.Opcode),
	}

	return
}

// parseWords evaluates the words in a line of assembly text.
func (asm *Assembler) parseWords(words []string, lineno int) (err error) {
	var codes []Word
	var label string

	// no-op
	if len(words) == 0 {
		return
	}

	initial_words := words

	defer func() {
		if err != nil || len(codes) == 0 {
			return
		}
		if asm.currentIp()+len(codes) > MEMORY_SIZE {
			err = ErrProgramSize
			return
		}
		opcode := Opcode{LineNo: lineno, Ip: asm.currentIp(), Words: initial_words, Codes: codes, LinkLabel: label}
		asm.Opcode = append(asm.Opcode, opcode)
		asm.ip += len(codes)
	}()

	// Alternate syntax substitutions
	switch {
	case len(words) == 1 && words[0] == "halt":
		// halt => mov r0 SYS_HALT ; syscall
		codes = append(codes, MakeCodeI(OP_I_MOV, REG_SYSCALL, Word(SYS_HALT)))
		words = []string{"syscall"}
	default:
		// unchanged
	}

	switch words[0] {
	case ".org":
		if len(words) != 2 {
			err = ErrOrgSyntax
			return
		}
		var org Word
		org, err = asm.valueOf(words[1])
		if err != nil {
			return
		}
		if int(org) < asm.currentIp() {
			err = ErrOrgBackwards
			return
		}
		if int(org) > MEMORY_SIZE {
			err = ErrProgramSize
			return
		}
		asm.ip = int(org)
	case ".word":
		if len(words) < 2 {
			err = ErrOpcodeValueMissing
			return
		}
		for _, word := range words[1:] {
			var value Word
			value, err = asm.valueOf(word)
			if err != nil {
				return
			}
			codes = append(codes, value)
		}
	case "add", "sub", "mul", "div", "eq", "ne":
		if len(words) < 4 {
			err = ErrOpcodeValueMissing
			return
		}
		if len(words) > 4 {
			err = ErrOpcodeExtraArgs
			return
		}
		var regs [3]CodeReg
		for n, word := range words[1:] {
			regs[n], err = asm.register(word)
			if err != nil {
				return
			}
		}
		codes = append(codes, MakeCodeR(aluMap[words[0]], regs[0], regs[1], regs[2]))
	case "load", "store":
		if len(words) < 3 {
			err = ErrOpcodeValueMissing
			return
		}
		if len(words) > 3 {
			err = ErrOpcodeExtraArgs
			return
		}
		var a, b CodeReg
		a, err = asm.register(words[1])
		if err != nil {
			return
		}
		b, err = asm.register(words[2])
		if err != nil {
			return
		}
		if words[0] == "load" {
			// load rd rs1
			codes = append(codes, MakeCodeR(OP_R_LOAD, a, b, REG_R0))
		} else {
			// store rs1 rs2
			codes = append(codes, MakeCodeR(OP_R_STORE, REG_R0, a, b))
		}
	case "syscall":
		if len(words) > 1 {
			err = ErrOpcodeExtraArgs
			return
		}
		codes = append(codes, MakeCodeR(OP_R_SYSCALL, REG_R0, REG_R0, REG_R0))
	case "jump":
		if len(words) < 2 {
			err = ErrOpcodeValueMissing
			return
		}
		if len(words) > 2 {
			err = ErrOpcodeExtraArgs
			return
		}
		var imm Word
		imm, label, err = asm.immediate(words[1])
		if err != nil {
			return
		}
		codes = append(codes, MakeCodeI(OP_I_JUMP, REG_R0, imm))
	case "jnz", "mov":
		if len(words) < 3 {
			err = ErrOpcodeValueMissing
			return
		}
		if len(words) > 3 {
			err = ErrOpcodeExtraArgs
			return
		}
		var reg CodeReg
		reg, err = asm.register(words[1])
		if err != nil {
			return
		}
		var imm Word
		imm, label, err = asm.immediate(words[2])
		if err != nil {
			return
		}
		op := OP_I_JNZ
		if words[0] == "mov" {
			op = OP_I_MOV
		}
		codes = append(codes, MakeCodeI(op, reg, imm))
	default:
		err = ErrInstructionInvalid
		return
	}

	return
}
