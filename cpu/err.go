package cpu

import (
	"errors"

	"github.com/ezrec/ls8/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrHalted         = errors.New(f("halted"))
	ErrStackEmpty     = errors.New(f("stack underflow"))
	ErrStackFull      = errors.New(f("stack overflow"))
	ErrConsoleInvalid = errors.New(f("console invalid"))
	ErrProgramSize    = errors.New(f("program exceeds memory"))

	// Instruction decode errors
	ErrOpcodeDecode = errors.New(f("decode"))
	ErrAluOp        = errors.New(f("unsupported alu operation"))

	// Assembler errors
	ErrEquateSyntax       = errors.New(f(".equ syntax"))
	ErrEquateDuplicate    = errors.New(f(".equ duplicated"))
	ErrLabelDuplicate     = errors.New(f("label duplicated"))
	ErrLabelSyntax        = errors.New(f("label syntax"))
	ErrOpcodeExtraArgs    = errors.New(f("excessive arguments"))
	ErrOpcodeValueMissing = errors.New(f("value missing"))
	ErrOpcodeInvalid      = errors.New(f("opcode invalid"))
	ErrRegisterInvalid    = errors.New(f("register invalid"))
	ErrValueRange         = errors.New(f("value out of range"))
)

// ErrOpcode marks the opcode of the instruction that failed.
type ErrOpcode Opcode

func (eo ErrOpcode) Error() string {
	return f("bad opcode 0x%02x %v", uint8(eo), Opcode(eo).String())
}

func (eo ErrOpcode) Is(err error) (ok bool) {
	_, ok = err.(ErrOpcode)
	return
}

// ErrMemoryBounds is an access outside of memory.
type ErrMemoryBounds struct {
	Address int
	Size    int
}

func (err ErrMemoryBounds) Error() string {
	return f("address 0x%02x outside of memory [0, 0x%02x)", err.Address, err.Size)
}

func (err ErrMemoryBounds) Is(target error) (ok bool) {
	_, ok = target.(ErrMemoryBounds)
	return
}

// ErrRegisterIndex is a register operand outside of the register file.
type ErrRegisterIndex int

func (err ErrRegisterIndex) Error() string {
	return f("register %d invalid", int(err))
}

func (err ErrRegisterIndex) Is(target error) (ok bool) {
	_, ok = target.(ErrRegisterIndex)
	return
}

// ErrFault locates a failed instruction cycle.
type ErrFault struct {
	Pc  int
	Err error
}

func (err *ErrFault) Error() string {
	return f("pc 0x%02x %v", err.Pc, err.Err)
}

func (err *ErrFault) Unwrap() error {
	return err.Err
}

// ErrLabelMissing is a label referenced but never defined.
type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}
