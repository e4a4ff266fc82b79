package cpu

import (
	"errors"

	"github.com/ezrec/sim16/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrNotRunning     = errors.New(f("cpu not running"))
	ErrProgramEmpty   = errors.New(f("0 words loaded, nothing to execute"))
	ErrCycleLimit     = errors.New(f("limit of %d cycles reached, possible infinite loop", CYCLE_LIMIT))
	ErrFetch          = errors.New(f("pc out of range"))
	ErrLoad           = errors.New(f("load out of memory"))
	ErrStore          = errors.New(f("store out of memory"))
	ErrJump           = errors.New(f("jump to invalid target"))
	ErrOpcodeUnknown  = errors.New(f("opcode not implemented"))
	ErrServiceUnknown = errors.New(f("syscall service not implemented"))

	// Assembler errors
	ErrEquateSyntax       = errors.New(f(".equ syntax"))
	ErrEquateDuplicate    = errors.New(f(".equ duplicated"))
	ErrLabelDuplicate     = errors.New(f("label duplicated"))
	ErrMacroSyntax        = errors.New(f(".macro syntax"))
	ErrMacroNesting       = errors.New(f(".macro in .macro prohibited"))
	ErrMacroDuplicate     = errors.New(f(".macro duplicated"))
	ErrMacroLonely        = errors.New(f(".macro without .endm"))
	ErrMacroLonelyEndm    = errors.New(f(".endm without .macro"))
	ErrMacroRecursion     = errors.New(f(".macro expands itself"))
	ErrMacroDepth         = errors.New(f(".macro expansion too deep"))
	ErrOrgSyntax          = errors.New(f(".org syntax"))
	ErrOrgBackwards       = errors.New(f(".org moves backwards"))
	ErrOpcodeExtraArgs    = errors.New(f("excessive arguments"))
	ErrOpcodeValueMissing = errors.New(f("value missing"))
	ErrRegisterInvalid    = errors.New(f("register invalid"))
	ErrImmediateRange     = errors.New(f("immediate out of range"))
	ErrProgramSize        = errors.New(f("program exceeds memory"))
	ErrInstructionInvalid = errors.New(f("instruction invalid"))
)

// ErrAddress is a word index outside of memory.
type ErrAddress Word

func (ea ErrAddress) Error() string {
	return f("address %d out of range", int(ea))
}

// Is matches any ErrAddress.
func (ea ErrAddress) Is(err error) (ok bool) {
	_, ok = err.(ErrAddress)
	return
}

// ErrOpcode is an instruction that could not be executed.
type ErrOpcode Word

func (eo ErrOpcode) Error() string {
	return f("bad opcode 0x%04x %v", uint16(eo), Decode(Word(eo)).String())
}

func (eo ErrOpcode) Is(err error) (ok bool) {
	_, ok = err.(ErrOpcode)
	return
}

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

type ErrMacro struct {
	Macro string
	Line  int
	Err   error
}

func (err ErrMacro) Error() string {
	return f("macro %v line %v %v", err.Macro, err.Line, err.Err.Error())
}

func (err ErrMacro) Unwrap() error {
	return err.Err
}

// ErrFault is a fatal fault of a class, such as ErrLoad, caused by Err.
type ErrFault struct {
	Class error
	Err   error
}

func (ef ErrFault) Error() string {
	return f("%v: %v", ef.Class, ef.Err)
}

func (ef ErrFault) Unwrap() []error {
	return []error{ef.Class, ef.Err}
}
