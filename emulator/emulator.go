// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package emulator runs assembled programs on a model of the Hack computer.
package emulator

import (
	"iter"
	"log"

	"github.com/ezrec/hackasm/hack"
)

const (
	RAM_SIZE = hack.KBD_ADDRESS + 1 // Data memory, including screen and keyboard.
	ROM_SIZE = hack.ADDRESS_MAX + 1 // Instruction memory.
)

// Emulator state. Registers + RAM + ROM.
type Emulator struct {
	Verbose bool          // If set, enables verbose logging.
	Program *hack.Program // Reference to the currently running program listing.

	Rom []uint16         // Instruction memory, loaded by Reset.
	Ram [RAM_SIZE]uint16 // Data memory.
	A   uint16           // Address register.
	D   uint16           // Data register.
	Pc  int              // Program counter.

	Ticks int // Instructions executed since Reset.
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Program: &hack.Program{},
	}

	return
}

// Reset loads the program into ROM and clears the registers. RAM is
// left untouched so callers may seed inputs before running.
func (emu *Emulator) Reset() (err error) {
	rom := emu.Program.Binary()
	if len(rom) > ROM_SIZE {
		err = ErrRomSize
		return
	}

	emu.Rom = rom
	emu.A = 0
	emu.D = 0
	emu.Pc = 0
	emu.Ticks = 0

	return
}

// Peek reads a RAM cell.
func (emu *Emulator) Peek(address int) (value uint16, err error) {
	if address < 0 || address >= RAM_SIZE {
		err = ErrAddressInvalid
		return
	}
	value = emu.Ram[address]
	return
}

// Poke writes a RAM cell.
func (emu *Emulator) Poke(address int, value uint16) (err error) {
	if address < 0 || address >= RAM_SIZE {
		err = ErrAddressInvalid
		return
	}
	emu.Ram[address] = value
	return
}

// Cells iterates the non-zero RAM cells in address order.
func (emu *Emulator) Cells() iter.Seq2[int, uint16] {
	return func(yield func(address int, value uint16) bool) {
		for address, value := range emu.Ram {
			if value == 0 {
				continue
			}
			if !yield(address, value) {
				return
			}
		}
	}
}

// Code returns the current instruction code.
func (emu *Emulator) Code() hack.Code {
	if emu.Pc < 0 || emu.Pc >= len(emu.Rom) {
		return 0
	}
	return hack.Code(emu.Rom[emu.Pc])
}

// LineNo returns the current line number for the executing instruction.
func (emu *Emulator) LineNo() int {
	in, ok := emu.Program.Debug(emu.Pc)
	if !ok {
		return 0
	}

	return in.LineNo
}

// alu computes the Hack ALU function selected by comp.
func alu(x, y uint16, comp int) (out uint16) {
	if comp&hack.COMP_ZX != 0 {
		x = 0
	}
	if comp&hack.COMP_NX != 0 {
		x = ^x
	}
	if comp&hack.COMP_ZY != 0 {
		y = 0
	}
	if comp&hack.COMP_NY != 0 {
		y = ^y
	}
	if comp&hack.COMP_F != 0 {
		out = x + y
	} else {
		out = x & y
	}
	if comp&hack.COMP_NO != 0 {
		out = ^out
	}
	return
}

// taken returns true if the jump condition holds for out.
func taken(out uint16, jump int) bool {
	value := int16(out)
	switch {
	case value < 0:
		return jump&hack.JUMP_LT != 0
	case value == 0:
		return jump&hack.JUMP_EQ != 0
	default:
		return jump&hack.JUMP_GT != 0
	}
}

// halting returns true if jumping to target enters the '(L) @L 0;JMP'
// idiom that ends every Hack program.
func (emu *Emulator) halting(target int, jump int) bool {
	if jump != hack.JUMP_LT|hack.JUMP_EQ|hack.JUMP_GT {
		return false
	}
	if target != emu.Pc-1 || target < 0 {
		return false
	}
	return hack.Code(emu.Rom[target]) == hack.MakeCodeAddress(target)
}

// Tick executes a single instruction. done is set once the program has
// run off the end of ROM or entered its halt loop.
func (emu *Emulator) Tick() (done bool, err error) {
	if emu.Pc < 0 || emu.Pc >= len(emu.Rom) {
		done = true
		return
	}

	lineno := emu.LineNo()
	defer func() {
		if err != nil {
			err = &ErrRuntime{LineNo: lineno, Err: err}
		}
	}()

	code := emu.Code()
	if emu.Verbose {
		log.Printf("%05d: %v A=%d D=%d\n", emu.Pc, code, emu.A, int16(emu.D))
	}

	emu.Ticks++

	if !code.IsCompute() {
		emu.A = code.Value()
		emu.Pc++
		return
	}

	indirect, comp, dest, jump := code.ComputeDecode()

	y := emu.A
	if indirect {
		y, err = emu.Peek(int(emu.A))
		if err != nil {
			return
		}
	}

	out := alu(emu.D, y, comp)
	target := int(emu.A)

	if dest&hack.DEST_M != 0 {
		err = emu.Poke(int(emu.A), out)
		if err != nil {
			return
		}
	}
	if dest&hack.DEST_D != 0 {
		emu.D = out
	}
	if dest&hack.DEST_A != 0 {
		emu.A = out
	}

	if !taken(out, jump) {
		emu.Pc++
		return
	}

	done = emu.halting(target, jump)
	emu.Pc = target

	return
}

// Run ticks until the program is done, or limit instructions have run.
func (emu *Emulator) Run(limit int) (done bool, err error) {
	for range limit {
		done, err = emu.Tick()
		if done || err != nil {
			return
		}
	}

	return
}
