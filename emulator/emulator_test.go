package emulator

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/hackasm/hack"
)

func TestEmulator(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()

	assert.False(emu.Verbose)
	assert.NotNil(emu.Program)
	assert.NoError(emu.Reset())

	done, err := emu.Tick()
	assert.NoError(err)
	assert.True(done)
	assert.Equal(0, emu.LineNo())
}

func doRun(emu *Emulator, program []string, t *testing.T) {
	assert := assert.New(t)

	asm := &hack.Assembler{}
	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
	}
	emu.Program = prog

	err = emu.Reset()
	assert.NoError(err)

	done, err := emu.Run(100000)
	assert.NoError(err)
	assert.True(done)
}

func TestEmulatorAdd(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	doRun(emu, []string{"@2", "D=A", "@3", "D=D+A", "@0", "M=D"}, t)

	assert.Equal(uint16(5), emu.Ram[0])
	assert.Equal(6, emu.Ticks)
	assert.Equal(6, emu.Pc)
}

func TestEmulatorMax(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"@R0",
		"D=M",
		"@R1",
		"D=D-M",
		"@OUTPUT_FIRST",
		"D;JGT",
		"@R1",
		"D=M",
		"@OUTPUT_D",
		"0;JMP",
		"(OUTPUT_FIRST)",
		"@R0",
		"D=M",
		"(OUTPUT_D)",
		"@R2",
		"M=D",
		"(INFINITE_LOOP)",
		"@INFINITE_LOOP",
		"0;JMP",
	}

	table := []struct {
		r0, r1, max uint16
	}{
		{3, 7, 7},
		{9, 2, 9},
		{4, 4, 4},
		{0xfffe, 1, 1}, // -2 < 1
	}

	for _, entry := range table {
		emu := NewEmulator()
		emu.Ram[0] = entry.r0
		emu.Ram[1] = entry.r1
		doRun(emu, program, t)
		assert.Equal(entry.max, emu.Ram[2], entry)
		assert.Equal(14, emu.Pc, entry)
		assert.Equal(18, emu.LineNo(), entry)
	}
}

func TestEmulatorSum(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"    @i",
		"    M=1      // i = 1",
		"    @sum",
		"    M=0      // sum = 0",
		"(LOOP)",
		"    @i",
		"    D=M",
		"    @10",
		"    D=D-A",
		"    @END",
		"    D;JGT    // if (i-10) > 0 goto END",
		"    @i",
		"    D=M",
		"    @sum",
		"    M=D+M    // sum += i",
		"    @i",
		"    M=M+1    // i++",
		"    @LOOP",
		"    0;JMP",
		"(END)",
		"    @sum",
		"    D=M",
		"    @R0",
		"    M=D",
		"(HALT)",
		"    @HALT",
		"    0;JMP",
	}

	emu := NewEmulator()
	doRun(emu, program, t)

	assert.Equal(uint16(55), emu.Ram[0])
	assert.Equal(uint16(11), emu.Ram[16])
	assert.Equal(uint16(55), emu.Ram[17])

	cells := map[int]uint16{}
	for address, value := range emu.Cells() {
		cells[address] = value
	}
	assert.Equal(map[int]uint16{0: 55, 16: 11, 17: 55}, cells)
}

func TestEmulatorAlu(t *testing.T) {
	assert := assert.New(t)

	// D = 5, A = M = 3
	table := []struct {
		comp     string
		expected int16
	}{
		{"0", 0},
		{"1", 1},
		{"-1", -1},
		{"D", 5},
		{"x", 3},
		{"!D", ^5},
		{"!x", ^3},
		{"-D", -5},
		{"-x", -3},
		{"D+1", 6},
		{"x+1", 4},
		{"D-1", 4},
		{"x-1", 2},
		{"D+x", 8},
		{"D-x", 2},
		{"x-D", -2},
		{"D&x", 1},
		{"D|x", 7},
	}

	for _, entry := range table {
		for _, reg := range []string{"A", "M"} {
			comp := strings.ReplaceAll(entry.comp, "x", reg)
			asm := &hack.Assembler{}
			prog, err := asm.Assemble(slices.Values([]string{"@5", "D=A", "@3", "D=" + comp}))
			assert.NoError(err, comp)
			if err != nil {
				continue
			}

			emu := NewEmulator()
			emu.Ram[3] = 3
			emu.Program = prog
			assert.NoError(emu.Reset())

			done, err := emu.Run(10)
			assert.NoError(err, comp)
			assert.True(done, comp)
			assert.Equal(entry.expected, int16(emu.D), comp)
		}
	}
}

func TestEmulatorJump(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		jump string
		neg  bool
		zero bool
		pos  bool
	}{
		{"JGT", false, false, true},
		{"JEQ", false, true, false},
		{"JGE", false, true, true},
		{"JLT", true, false, false},
		{"JNE", true, false, true},
		{"JLE", true, true, false},
		{"JMP", true, true, true},
	}

	for _, entry := range table {
		for value, expected := range map[string]bool{"-1": entry.neg, "0": entry.zero, "1": entry.pos} {
			program := []string{
				"@TAKEN",
				value + ";" + entry.jump,
				"@R0",
				"M=-1",
				"(TAKEN)",
			}

			emu := NewEmulator()
			doRun(emu, program, t)
			assert.Equal(!expected, emu.Ram[0] == 0xffff, entry.jump+" "+value)
		}
	}
}

func TestEmulatorDestOrder(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	// M is written through the address held before A is replaced.
	doRun(emu, []string{"@7", "D=A", "@20", "AM=D+1"}, t)

	assert.Equal(uint16(8), emu.Ram[20])
	assert.Equal(uint16(8), emu.A)
	assert.Equal(uint16(0), emu.Ram[8])
}

func TestEmulatorErrRuntime(t *testing.T) {
	assert := assert.New(t)

	asm := &hack.Assembler{}
	prog, err := asm.Parse(strings.NewReader("@32767\nD=A\nA=D+1\nM=1\n"))
	assert.NoError(err)

	emu := NewEmulator()
	emu.Program = prog
	assert.NoError(emu.Reset())

	_, err = emu.Run(10)
	var er *ErrRuntime
	assert.True(errors.As(err, &er))
	assert.Equal(4, er.LineNo)
	assert.ErrorIs(err, ErrAddressInvalid)

	_, err = emu.Peek(-1)
	assert.ErrorIs(err, ErrAddressInvalid)
	assert.ErrorIs(emu.Poke(RAM_SIZE, 1), ErrAddressInvalid)
}
