package hack

import (
	"errors"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// EXPRESSION_STEPS bounds the work of a single $(...) evaluation.
const EXPRESSION_STEPS = 100000

// PLACEHOLDER stands in for the A or M operand in compMap keys.
const PLACEHOLDER = "x"

// compMap maps ALU expressions, with A or M replaced by x, to control bits.
var compMap = map[string]int{
	"0":   0b101010,
	"1":   0b111111,
	"-1":  0b111010,
	"D":   0b001100,
	"x":   0b110000,
	"!D":  0b001101,
	"!x":  0b110001,
	"-D":  0b001111,
	"-x":  0b110011,
	"D+1": 0b011111,
	"x+1": 0b110111,
	"D-1": 0b001110,
	"x-1": 0b110010,
	"D+x": 0b000010,
	"D-x": 0b010011,
	"x-D": 0b000111,
	"D&x": 0b000000,
	"D|x": 0b010101,
}

// destMap maps destination mnemonics to destination bits.
var destMap = map[string]int{
	"null": 0,
	"M":    DEST_M,
	"D":    DEST_D,
	"MD":   DEST_M | DEST_D,
	"A":    DEST_A,
	"AM":   DEST_A | DEST_M,
	"AD":   DEST_A | DEST_D,
	"AMD":  DEST_A | DEST_M | DEST_D,
}

// jumpMap maps jump mnemonics to jump condition bits.
var jumpMap = map[string]int{
	"null": 0,
	"JGT":  JUMP_GT,
	"JEQ":  JUMP_EQ,
	"JGE":  JUMP_GT | JUMP_EQ,
	"JLT":  JUMP_LT,
	"JNE":  JUMP_LT | JUMP_GT,
	"JLE":  JUMP_LT | JUMP_EQ,
	"JMP":  JUMP_LT | JUMP_EQ | JUMP_GT,
}

var operandReplacer = strings.NewReplacer("A", PLACEHOLDER, "M", PLACEHOLDER)

// EncodeAddress encodes the operand of an address instruction, the text
// after the '@'. Unbound symbols are allocated as variables in st.
func EncodeAddress(operand string, st *SymbolTable) (code Code, err error) {
	address, err := resolve(operand, st)
	if err != nil {
		return
	}

	code = MakeCodeAddress(address)
	return
}

// resolve turns an operand into an address.
func resolve(operand string, st *SymbolTable) (address int, err error) {
	switch {
	case len(operand) == 0:
		err = ErrOperandMissing
		return
	case operand[0] >= '0' && operand[0] <= '9':
		var v64 int64
		v64, err = strconv.ParseInt(operand, 10, 64)
		if err != nil {
			err = ErrParseNumber(operand)
			return
		}
		if v64 > ADDRESS_MAX {
			err = ErrAddressRange(v64)
			return
		}
		address = int(v64)
	case strings.HasPrefix(operand, EXPRESSION) && strings.HasSuffix(operand, ")"):
		address, err = evalExpression(operand[len(EXPRESSION):len(operand)-1], st)
	case ValidSymbol(operand):
		var ok bool
		address, ok = st.Lookup(operand)
		if !ok {
			address, err = st.Allocate(operand)
		} else if address < 0 || address > ADDRESS_MAX {
			err = ErrAddressRange(address)
		}
	default:
		err = ErrParseValue(operand)
	}

	return
}

// evalExpression does compile-time $(...) evaluations against the symbols
// bound so far.
func evalExpression(expr string, st *SymbolTable) (address int, err error) {
	thread := starlark.Thread{Name: "hackasm"}
	thread.SetMaxExecutionSteps(EXPRESSION_STEPS)
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for name, value := range st.All() {
		pred[name] = starlark.MakeInt(value)
	}

	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		err = errors.Join(ErrParseExpression(expr), err)
		return
	}
	st_int, ok := dict["rc"].(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	if st_int64 < 0 || st_int64 > ADDRESS_MAX {
		err = ErrAddressRange(st_int64)
		return
	}

	address = int(st_int64)
	return
}

// EncodeCompute encodes a compute instruction of the form dest=comp;jump,
// where dest and jump are optional.
func EncodeCompute(text string) (code Code, err error) {
	dest := "null"
	comp := text
	if left, right, ok := strings.Cut(text, "="); ok {
		dest, comp = left, right
	}

	jump := "null"
	if left, right, ok := strings.Cut(comp, ";"); ok {
		comp, jump = left, right
	}

	if len(comp) == 0 {
		err = ErrCompMissing
		return
	}

	if strings.Contains(comp, PLACEHOLDER) {
		err = ErrCompInvalid
		return
	}

	indirect := strings.Contains(comp, "M")
	comp_bits, ok := compMap[operandReplacer.Replace(comp)]
	if !ok {
		err = ErrCompInvalid
		return
	}

	dest_bits, ok := destMap[dest]
	if !ok {
		err = ErrDestInvalid
		return
	}

	jump_bits, ok := jumpMap[jump]
	if !ok {
		err = ErrJumpInvalid
		return
	}

	code = MakeCodeCompute(indirect, comp_bits, dest_bits, jump_bits)
	return
}
