package hack

import (
	"errors"

	"github.com/ezrec/hackasm/translate"
)

var f = translate.From

var (
	// Line errors
	ErrLabelSyntax    = errors.New(f("label syntax"))
	ErrLabelDuplicate = errors.New(f("label duplicated"))
	ErrLabelReserved  = errors.New(f("label shadows a reserved symbol"))

	// Address instruction errors
	ErrOperandMissing = errors.New(f("operand missing"))

	// Compute instruction errors
	ErrCompMissing = errors.New(f("comp missing"))
	ErrCompInvalid = errors.New(f("comp invalid"))
	ErrDestInvalid = errors.New(f("dest invalid"))
	ErrJumpInvalid = errors.New(f("jump invalid"))

	// Predefine errors
	ErrSymbolInvalid = errors.New(f("symbol invalid"))

	// Driver errors
	ErrInstructionInvalid = errors.New(f("instruction invalid"))

	// Input errors
	ErrInputRead = errors.New(f("input unreadable"))
)

// ErrSyntax locates an assembly failure in the source.
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

type ErrParseValue string

func (err ErrParseValue) Error() string {
	return f("'%v' is not a number or symbol", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

// ErrAddressRange is an address that does not fit in 15 bits.
type ErrAddressRange int64

func (err ErrAddressRange) Error() string {
	return f("address %d out of range 0..%d", int64(err), ADDRESS_MAX)
}
