package emulator

import (
	"github.com/ezrec/sim16/cpu"
	"github.com/ezrec/sim16/translate"
)

var f = translate.From

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	Pc     cpu.Word
	LineNo int
	Err    error
}

func (err *ErrRuntime) Error() string {
	if err.LineNo == 0 {
		return f("pc %d %v", err.Pc, err.Err)
	}
	return f("pc %d line %d %v", err.Pc, err.LineNo, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
