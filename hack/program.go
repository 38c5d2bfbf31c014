package hack

import (
	"iter"
	"strings"
)

// Program is the result of a successful assembly.
type Program struct {
	Instructions []Instruction // Instructions, indexed by ROM address.
	Codes        []Code        // Machine words, indexed by ROM address.
	Symbols      *SymbolTable  // Final symbol bindings.
}

// Lines returns each machine word as a 16 character binary string.
func (prog *Program) Lines() (lines []string) {
	lines = make([]string, 0, len(prog.Codes))
	for _, code := range prog.Codes {
		lines = append(lines, code.String())
	}
	return
}

// String returns the newline separated binary listing.
func (prog *Program) String() string {
	return strings.Join(prog.Lines(), "\n")
}

// Binary returns the ROM image.
func (prog *Program) Binary() (bins []uint16) {
	for _, code := range prog.All() {
		bins = append(bins, uint16(code))
	}
	return
}

// Debug returns the source instruction at a ROM address.
func (prog *Program) Debug(address int) (in Instruction, ok bool) {
	if address < 0 || address >= len(prog.Instructions) {
		return
	}
	in = prog.Instructions[address]
	ok = true
	return
}

// All iterates the machine words in ROM order.
func (prog *Program) All() iter.Seq2[int, Code] {
	return func(yield func(address int, code Code) bool) {
		for address, code := range prog.Codes {
			if !yield(address, code) {
				return
			}
		}
	}
}
