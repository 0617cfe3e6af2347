// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"errors"
	"fmt"
	goio "io"
	"log"

	"github.com/ezrec/ls8/io"
)

// Console is the device receiving PRN output.
type Console io.Console

// Equates predefined by the assembler.
var _cpu_defines = map[string]string{
	"MEMORY_SIZE":    fmt.Sprintf("%d", MEMORY_SIZE),
	"REGISTER_COUNT": fmt.Sprintf("%d", REGISTER_COUNT),
	"STACK_TOP":      fmt.Sprintf("0x%02x", STACK_TOP),
	"FLAG_EQUAL":     fmt.Sprintf("%d", FLAG_EQUAL),
	"FLAG_GREATER":   fmt.Sprintf("%d", FLAG_GREATER),
	"FLAG_LESS":      fmt.Sprintf("%d", FLAG_LESS),
}

// Cpu is the simulation context for the LS-8 processor.
type Cpu struct {
	Verbose bool        // Set to enable verbose logging.
	Trace   goio.Writer // If set, receives a state line before each cycle.

	Pc       int          // Address of the next instruction.
	Running  bool         // Cleared by HLT.
	Register RegisterFile // General purpose registers and flags.
	Memory   Memory       // Main memory.

	Ticks int // Instruction cycles executed since reset.

	console Console
}

// NewCpu creates a new CPU with a specifically sized memory.
func NewCpu(size uint) (cpu *Cpu) {
	cpu = &Cpu{
		Memory: NewMemory(size),
	}

	cpu.Reset()

	return
}

// SetConsole attaches the PRN output device.
func (cpu *Cpu) SetConsole(console Console) {
	cpu.console = console
}

// GetConsole returns the PRN output device.
func (cpu *Cpu) GetConsole() (console Console, err error) {
	if cpu.console == nil {
		err = ErrConsoleInvalid
		return
	}

	console = cpu.console
	return
}

// Reset the CPU state.
// - Zeros memory, registers and flags.
// - Sets the stack pointer to STACK_TOP.
// - Sets PC to zero, and the CPU running.
// - Zeros the cycle counter.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	cpu.Memory.Reset()
	cpu.Register.Reset()
	cpu.Pc = 0
	cpu.Running = true
	cpu.Ticks = 0

	if cpu.console != nil {
		cpu.console.Rewind()
	}
}

// Load copies a program into memory, starting at address zero.
// Memory is not modified if the program does not fit.
func (cpu *Cpu) Load(program []uint8) (err error) {
	if len(program) > cpu.Memory.Size() {
		err = ErrProgramSize
		return
	}

	copy(cpu.Memory.Data, program)

	return
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	text += fmt.Sprintf("% 5s: %02X\n", "pc", cpu.Pc)
	text += fmt.Sprintf("% 5s: %v\n", "fl", cpu.Register.GetFlags())
	for n, val := range cpu.Register.Register {
		text += fmt.Sprintf("% 5s: %02X\n", fmt.Sprintf("r%d", n), val)
	}

	top := "--"
	if val, err := cpu.Peek(); err == nil {
		top = fmt.Sprintf("%02X", val)
	}
	text += fmt.Sprintf("% 5s: %v\n", "stack", top)

	return
}

// peekByte formats a memory byte for tracing.
func (cpu *Cpu) peekByte(address int) string {
	val, err := cpu.Memory.Read(address)
	if err != nil {
		return "--"
	}
	return fmt.Sprintf("%02X", val)
}

// WriteTrace writes the PC, the three bytes at PC, and all registers.
func (cpu *Cpu) WriteTrace(w goio.Writer) (err error) {
	text := fmt.Sprintf("TRACE: %02X | %v %v %v |", cpu.Pc,
		cpu.peekByte(cpu.Pc), cpu.peekByte(cpu.Pc+1), cpu.peekByte(cpu.Pc+2))
	for _, val := range cpu.Register.Register {
		text += fmt.Sprintf(" %02X", val)
	}

	_, err = fmt.Fprintln(w, text)
	return
}

// FetchCode fetches the instruction at PC, with as many operand bytes as
// its opcode encodes.
func (cpu *Cpu) FetchCode() (code Code, err error) {
	op, err := cpu.Memory.Read(cpu.Pc)
	if err != nil {
		return
	}

	code.Opcode = Opcode(op)

	count := code.Opcode.OperandCount()
	for n := range count {
		var operand uint8
		operand, err = cpu.Memory.Read(cpu.Pc + 1 + n)
		if err != nil {
			return
		}
		code.Operands = append(code.Operands, operand)
	}

	return
}

// Tick executes a single CPU instruction cycle.
func (cpu *Cpu) Tick() (err error) {
	if !cpu.Running {
		err = ErrHalted
		return
	}

	pc := cpu.Pc
	defer func() {
		if err != nil {
			err = &ErrFault{Pc: pc, Err: err}
		}
	}()

	if cpu.Trace != nil {
		err = cpu.WriteTrace(cpu.Trace)
		if err != nil {
			return
		}
	}

	code, err := cpu.FetchCode()
	if err != nil {
		return
	}

	err = cpu.Execute(code)
	if err != nil {
		return
	}

	return
}

// Run executes instruction cycles until HLT, or an error.
func (cpu *Cpu) Run() (err error) {
	for cpu.Running {
		err = cpu.Tick()
		if err != nil {
			return
		}
	}

	return
}

// register returns the register index of the n'th operand.
func (cpu *Cpu) register(code Code, n int) (index int, err error) {
	index = int(code.Operand(n))
	if index >= REGISTER_COUNT {
		err = ErrRegisterIndex(index)
	}
	return
}

// Execute executes a single decoded instruction.
//
// The state of the CPU is unmodified if an error is returned.
func (cpu *Cpu) Execute(code Code) (err error) {
	defer func() {
		if err != nil {
			err = errors.Join(ErrOpcode(code.Opcode), err)
		}
	}()
	if cpu.Verbose {
		log.Printf("%02x: %v", cpu.Pc, code)
	}

	if !code.Opcode.Valid() {
		err = ErrOpcodeDecode
		return
	}

	next_pc := cpu.Pc + code.Len()

	// All instructions of this ISA take registers as their first operand.
	var a int
	if len(code.Operands) > 0 {
		a, err = cpu.register(code, 0)
		if err != nil {
			return
		}
	}

	switch {
	case code.Opcode.IsAlu():
		var b int
		b, err = cpu.register(code, 1)
		if err != nil {
			return
		}
		err = Alu(code.Opcode.AluOp(), &cpu.Register, a, b)
		if err != nil {
			return
		}
	case code.Opcode.SetsPc():
		switch code.Opcode {
		case OP_CALL:
			if next_pc > 0xff {
				err = ErrMemoryBounds{Address: next_pc, Size: cpu.Memory.Size()}
				return
			}
			err = cpu.Push(uint8(next_pc))
			if err != nil {
				return
			}
			// CALL r7 jumps to the decremented stack pointer.
			next_pc = int(cpu.Register.Register[a])
		case OP_RET:
			var value uint8
			value, err = cpu.Pop()
			if err != nil {
				return
			}
			next_pc = int(value)
		case OP_JMP:
			next_pc = int(cpu.Register.Register[a])
		case OP_JEQ:
			if cpu.Register.GetFlags().Equal() {
				next_pc = int(cpu.Register.Register[a])
			}
		case OP_JNE:
			if !cpu.Register.GetFlags().Equal() {
				next_pc = int(cpu.Register.Register[a])
			}
		default:
			err = ErrOpcodeDecode
			return
		}
	default:
		switch code.Opcode {
		case OP_HLT:
			cpu.Running = false
		case OP_LDI:
			cpu.Register.Register[a] = code.Operand(1)
		case OP_PRN:
			var console Console
			console, err = cpu.GetConsole()
			if err != nil {
				return
			}
			err = console.Print(cpu.Register.Register[a])
			if err != nil {
				return
			}
		case OP_PUSH:
			err = cpu.Push(cpu.Register.Register[a])
			if err != nil {
				return
			}
		case OP_POP:
			var value uint8
			value, err = cpu.Peek()
			if err != nil {
				return
			}
			// POP r7 loads the stack pointer, then increments it.
			cpu.Register.Register[a] = value
			cpu.Register.Register[REG_SP]++
		default:
			err = ErrOpcodeDecode
			return
		}
	}

	cpu.Pc = next_pc
	cpu.Ticks++

	return
}
