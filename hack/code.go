package hack

import (
	"fmt"
)

// Code is a single 16-bit Hack machine word.
type Code uint16

const (
	CODE_COMPUTE  = Code(0b111 << 13) // Compute instruction prefix.
	CODE_INDIRECT = Code(1 << 12)     // Operand is M rather than A.
	CODE_WIDTH    = 16                // Bits per instruction word.
)

// Destination bits.
const (
	DEST_M = 0b001
	DEST_D = 0b010
	DEST_A = 0b100
)

// Jump condition bits, taken against the signed ALU result.
const (
	JUMP_GT = 0b001
	JUMP_EQ = 0b010
	JUMP_LT = 0b100
)

// ALU control bits.
const (
	COMP_NO = 0b000001 // Negate the output.
	COMP_F  = 0b000010 // Add when set, and when clear.
	COMP_NY = 0b000100 // Negate y.
	COMP_ZY = 0b001000 // Zero y.
	COMP_NX = 0b010000 // Negate x.
	COMP_ZX = 0b100000 // Zero x.
)

// MakeCodeAddress creates an address instruction.
func MakeCodeAddress(address int) Code {
	return Code(address & ADDRESS_MAX)
}

// MakeCodeCompute creates a compute instruction.
func MakeCodeCompute(indirect bool, comp, dest, jump int) Code {
	code := CODE_COMPUTE | Code(comp&0x3f)<<6 | Code(dest&0x7)<<3 | Code(jump&0x7)
	if indirect {
		code |= CODE_INDIRECT
	}
	return code
}

// String renders the word as sixteen '0' and '1' characters.
func (code Code) String() string {
	return fmt.Sprintf("%0*b", CODE_WIDTH, uint16(code))
}

// IsCompute returns true for compute instructions.
func (code Code) IsCompute() bool {
	return code&(1<<15) != 0
}

// Value returns the constant of an address instruction.
func (code Code) Value() uint16 {
	return uint16(code) & ADDRESS_MAX
}

// ComputeDecode decodes the fields of a compute instruction.
func (code Code) ComputeDecode() (indirect bool, comp, dest, jump int) {
	indirect = code&CODE_INDIRECT != 0
	comp = int(code>>6) & 0x3f
	dest = int(code>>3) & 0x7
	jump = int(code) & 0x7
	return
}
