// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package hack

import (
	"bufio"
	"errors"
	"io"
	"iter"
	"log"
	"maps"
	"slices"
	"strings"
)

// Assembler is a two pass assembler for the Hack computer.
type Assembler struct {
	Verbose     bool          // If set, verbosely logs the assembler actions.
	Instruction []Instruction // Address and compute instructions, in source order.
	Symbols     *SymbolTable  // Symbols of the current run.

	predefine map[string]int // Predefines
}

// Predefine binds a symbol before any source is seen.
func (asm *Assembler) Predefine(name string, address int) (err error) {
	switch {
	case !ValidSymbol(name):
		err = ErrSymbolInvalid
		return
	case Reserved(name):
		err = ErrLabelReserved
		return
	case address < 0 || address > ADDRESS_MAX:
		err = ErrAddressRange(address)
		return
	}

	if asm.predefine == nil {
		asm.predefine = map[string]int{name: address}
	} else {
		asm.predefine[name] = address
	}

	return
}

// Parse reads all of input and assembles it.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	var lines []string

	scanner := bufio.NewScanner(input)
	for scanner.Scan() {
		lines = append(lines, strings.ReplaceAll(scanner.Text(), "\r", ""))
	}
	if err = scanner.Err(); err != nil {
		err = errors.Join(ErrInputRead, err)
		return
	}

	return asm.Assemble(slices.Values(lines))
}

// Assemble assembles an ordered sequence of source lines.
func (asm *Assembler) Assemble(lines iter.Seq[string]) (prog *Program, err error) {
	var line string
	var lineno int

	defer func() {
		if err != nil {
			prog = nil
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	asm.Instruction = asm.Instruction[:0]
	asm.Symbols = NewSymbolTable()
	for name, address := range maps.All(asm.predefine) {
		asm.Symbols.Bind(name, address)
	}

	// Pass 1: bind labels and assign ROM addresses.
	for line = range lines {
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, line)
		}

		in := Normalize(line)
		in.LineNo = lineno
		in.Source = line
		err = asm.discover(in)
		if err != nil {
			return
		}
	}

	// Pass 2: resolve operands and encode.
	codes := make([]Code, 0, len(asm.Instruction))
	for _, in := range asm.Instruction {
		lineno = in.LineNo
		line = in.Source

		var code Code
		code, err = asm.encode(in)
		if err != nil {
			return
		}
		codes = append(codes, code)
	}

	prog = &Program{
		Instructions: slices.Clone(asm.Instruction),
		Codes:        codes,
		Symbols:      asm.Symbols,
	}

	return
}

// currentIp is the ROM address of the next instruction.
func (asm *Assembler) currentIp() int {
	return len(asm.Instruction)
}

// discover is the first pass action for a single line.
func (asm *Assembler) discover(in Instruction) (err error) {
	in.Address = asm.currentIp()

	switch in.Kind {
	case KIND_BLANK:
		// no-op
	case KIND_LABEL:
		err = checkLabel(in)
		if err != nil {
			return
		}
		if Reserved(in.Label) {
			err = ErrLabelReserved
			return
		}
		if _, ok := asm.Symbols.Lookup(in.Label); ok {
			err = ErrLabelDuplicate
			return
		}
		if in.Address > ADDRESS_MAX {
			err = ErrAddressRange(in.Address)
			return
		}
		asm.Symbols.Bind(in.Label, in.Address)
		if asm.Verbose {
			log.Printf("label %v = %v\n", in.Label, in.Address)
		}
	case KIND_ADDRESS, KIND_COMPUTE:
		if in.Address > ADDRESS_MAX {
			err = ErrAddressRange(in.Address)
			return
		}
		asm.Instruction = append(asm.Instruction, in)
	}

	return
}

// encode is the second pass action for a single instruction.
func (asm *Assembler) encode(in Instruction) (code Code, err error) {
	switch in.Kind {
	case KIND_ADDRESS:
		operand := in.Text[1:]
		if asm.Verbose {
			if _, ok := asm.Symbols.Lookup(operand); !ok && ValidSymbol(operand) {
				log.Printf("variable %v = %v\n", operand, asm.Symbols.next)
			}
		}
		code, err = EncodeAddress(operand, asm.Symbols)
	case KIND_COMPUTE:
		code, err = EncodeCompute(in.Text)
	case KIND_BLANK, KIND_LABEL:
		err = ErrInstructionInvalid
	}

	return
}
