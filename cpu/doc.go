// Package cpu implements the LS-8 microprocessor, program loader, and assembler.
//
// The machine has 256 bytes of RAM, eight byte-wide registers (R7 is the
// stack pointer, R6 the interrupt status, R5 the interrupt mask), a program
// counter, a comparison flag register, and an ALU. Programs are sequences of
// one-byte opcodes followed by zero, one, or two operand bytes, executed by a
// fetch/decode/execute loop until HLT or a fatal error.
//
// The assembler provides a small assembly language for the LS-8 instruction
// set, supporting labels, equates, character literals, and compile-time
// expression evaluation, and emits the binary-text listing the loader reads.
package cpu
