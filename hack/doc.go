// Package hack implements the assembler for the Hack 16-bit computer.
//
// Hack has two instruction forms. An address instruction (@value) loads a
// 15-bit constant or symbol address into the A register. A compute
// instruction (dest=comp;jump) runs the ALU over D and either A or the
// memory cell M addressed by A, stores the result and optionally jumps.
//
// Assembly is two passes over the source. The first pass binds every
// (LABEL) declaration to the address of the instruction that follows it.
// The second pass encodes each instruction, allocating variables from
// address 16 upward on first use.
package hack
