package emulator

import (
	"errors"

	"github.com/ezrec/hackasm/translate"
)

var f = translate.From

var (
	ErrAddressInvalid = errors.New(f("address invalid"))
	ErrRomSize        = errors.New(f("program exceeds rom"))
)

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	LineNo int
	Err    error
}

func (err *ErrRuntime) Error() string {
	return f("line %d %v", err.LineNo, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
