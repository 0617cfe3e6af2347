// Package cpu implements the processor and assembler for the LS-8 system.
//
// The CPU consists of a program counter (PC), eight 8-bit general-purpose
// registers (r0-r7, with r7 the stack pointer by convention), a flags
// register holding the Equal, Less-than and Greater-than condition bits,
// an ALU, and 256 bytes of byte-addressable memory.
//
// Each instruction is one opcode byte, followed by zero, one or two
// operand bytes. The two most significant bits of the opcode encode the
// operand count, so the processor can always determine the length of an
// instruction before it knows what the instruction does.
//
// The assembler provides a simple assembly language for the LS-8
// instruction set, supporting labels, equates, data bytes, and
// compile-time expression evaluation.
package cpu
