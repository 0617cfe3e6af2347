package cpu

import (
	"fmt"
	"strings"
)

// Opcode is the first byte of an instruction.
type Opcode uint8

// Instruction set.
const (
	OP_HLT  = Opcode(0b0000_0001) // hlt
	OP_RET  = Opcode(0b0001_0001) // ret
	OP_PUSH = Opcode(0b0100_0101) // push
	OP_POP  = Opcode(0b0100_0110) // pop
	OP_PRN  = Opcode(0b0100_0111) // prn
	OP_CALL = Opcode(0b0101_0000) // call
	OP_JMP  = Opcode(0b0101_0100) // jmp
	OP_JEQ  = Opcode(0b0101_0101) // jeq
	OP_JNE  = Opcode(0b0101_0110) // jne
	OP_LDI  = Opcode(0b1000_0010) // ldi
	OP_ADD  = Opcode(0b1010_0000) // add
	OP_MUL  = Opcode(0b1010_0010) // mul
	OP_CMP  = Opcode(0b1010_0111) // cmp
)

// Opcode field layout.
const (
	OPCODE_OPERANDS_SHIFT = 6              // Operand count, top two bits.
	OPCODE_ALU_BIT        = Opcode(1 << 5) // Set for ALU operations.
	OPCODE_SETS_PC_BIT    = Opcode(1 << 4) // Set when the instruction writes PC.
	OPCODE_ALU_OP_MASK    = Opcode(0x0f)   // ALU operation selector.
)

// MAX_OPERANDS is the largest number of operand bytes an instruction carries.
const MAX_OPERANDS = 2

var _opcode_mnemonic = map[Opcode]string{
	OP_HLT:  "hlt",
	OP_RET:  "ret",
	OP_PUSH: "push",
	OP_POP:  "pop",
	OP_PRN:  "prn",
	OP_CALL: "call",
	OP_JMP:  "jmp",
	OP_JEQ:  "jeq",
	OP_JNE:  "jne",
	OP_LDI:  "ldi",
	OP_ADD:  "add",
	OP_MUL:  "mul",
	OP_CMP:  "cmp",
}

// Decode returns the number of operand bytes following the opcode.
// Decoding never fails; the count is the value of the top two bits,
// limited to MAX_OPERANDS. No instruction has the top bits 11.
func Decode(op Opcode) int {
	return min(int(op>>OPCODE_OPERANDS_SHIFT), MAX_OPERANDS)
}

// OperandCount returns the number of operand bytes following the opcode.
func (op Opcode) OperandCount() int {
	return Decode(op)
}

// IsAlu returns true if the opcode is dispatched to the ALU.
func (op Opcode) IsAlu() bool {
	return (op & OPCODE_ALU_BIT) != 0
}

// SetsPc returns true if the opcode may write the program counter.
func (op Opcode) SetsPc() bool {
	return (op & OPCODE_SETS_PC_BIT) != 0
}

// AluOp returns the ALU operation selector of the opcode.
func (op Opcode) AluOp() AluOp {
	return AluOp(op & OPCODE_ALU_OP_MASK)
}

// Valid returns true if the opcode is in the instruction set.
func (op Opcode) Valid() bool {
	_, ok := _opcode_mnemonic[op]
	return ok
}

// String returns the mnemonic, or the hex value for an unknown opcode.
func (op Opcode) String() string {
	name, ok := _opcode_mnemonic[op]
	if !ok {
		return fmt.Sprintf("0x%02x", uint8(op))
	}
	return name
}

// LookupMnemonic returns the opcode for a (case-insensitive) mnemonic.
func LookupMnemonic(name string) (op Opcode, ok bool) {
	name = strings.ToLower(name)
	for op, mnemonic := range _opcode_mnemonic {
		if mnemonic == name {
			return op, true
		}
	}
	return
}

// Code is a fetched instruction: the opcode and its operand bytes.
type Code struct {
	Opcode   Opcode
	Operands []uint8
}

// Len returns the length of the instruction in bytes.
func (code Code) Len() int {
	return 1 + len(code.Operands)
}

// Operand returns the n'th operand, or zero if absent.
func (code Code) Operand(n int) uint8 {
	if n >= len(code.Operands) {
		return 0
	}
	return code.Operands[n]
}

// String returns the assembly language representation of this instruction.
func (code Code) String() (out string) {
	out = code.Opcode.String()

	var args []string
	for n, operand := range code.Operands {
		if code.Opcode == OP_LDI && n == 1 {
			args = append(args, fmt.Sprintf("0x%02x", operand))
		} else {
			args = append(args, fmt.Sprintf("r%d", operand))
		}
	}

	if len(args) > 0 {
		out += " " + strings.Join(args, ",")
	}

	return
}
