// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/ezrec/hackasm/emulator"
	"github.com/ezrec/hackasm/hack"
	"github.com/ezrec/hackasm/translate"
)

// predefines collects repeated -D NAME=VALUE flags.
type predefines map[string]int

func (pd predefines) String() string {
	var parts []string
	for name, value := range pd {
		parts = append(parts, name+"="+strconv.Itoa(value))
	}
	return strings.Join(parts, ",")
}

func (pd predefines) Set(arg string) (err error) {
	name, value, ok := strings.Cut(arg, "=")
	if !ok {
		err = hack.ErrSymbolInvalid
		return
	}
	v64, err := strconv.ParseInt(value, 0, 32)
	if err != nil {
		err = hack.ErrParseNumber(value)
		return
	}
	pd[name] = int(v64)
	return
}

func main() {
	log.SetFlags(0)

	err := run(os.Args, os.Stdout, os.Stderr)
	if err != nil {
		log.Fatalf("%v: %v", os.Args[0], err)
	}
}

func run(args []string, stdout, stderr io.Writer) (err error) {
	var output string
	var verbose bool
	var symbols bool
	var ticks int
	defines := predefines{}

	flags := flag.NewFlagSet(args[0], flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.StringVar(&output, "o", "-", "Binary output")
	flags.BoolVar(&verbose, "v", false, "Verbose mode")
	flags.BoolVar(&symbols, "s", false, "List symbols to stderr")
	flags.IntVar(&ticks, "x", 0, "Execute at most this many instructions, then list RAM")
	flags.Var(defines, "D", "Predefine NAME=VALUE (repeatable)")

	err = flags.Parse(args[1:])
	if err != nil {
		return
	}

	if flags.NArg() != 1 {
		err = ErrUsage(flags.Args())
		return
	}
	source := flags.Arg(0)

	inf, err := os.Open(source)
	if err != nil {
		return
	}
	defer inf.Close()

	asm := &hack.Assembler{Verbose: verbose}
	for name, value := range defines {
		err = asm.Predefine(name, value)
		if err != nil {
			err = ErrDefine{Name: name, Err: err}
			return
		}
	}

	prog, err := asm.Parse(inf)
	if err != nil {
		err = ErrFile{Name: source, Err: err}
		return
	}

	if symbols {
		for name, address := range prog.Symbols.All() {
			translate.Fprintf(stderr, "%v\t%d\n", name, address)
		}
	}

	if output == "-" {
		_, err = io.WriteString(stdout, prog.String()+"\n")
	} else {
		err = os.WriteFile(output, []byte(prog.String()), 0o644)
	}
	if err != nil {
		return
	}

	if ticks > 0 {
		emu := emulator.NewEmulator()
		emu.Verbose = verbose
		emu.Program = prog
		err = emu.Reset()
		if err != nil {
			return
		}
		var done bool
		done, err = emu.Run(ticks)
		if err != nil {
			err = ErrFile{Name: source, Err: err}
			return
		}
		if !done {
			translate.Fprintf(stderr, "%d instructions executed, not halted\n", emu.Ticks)
		}
		for address, value := range emu.Cells() {
			translate.Fprintf(stderr, "RAM[%d]\t%d\n", address, int16(value))
		}
	}

	return
}
