package cpu

import (
	"strings"
)

// Register file layout.
const (
	REGISTER_COUNT = 8    // General purpose registers.
	REG_SP         = 7    // Stack pointer, by convention.
	STACK_TOP      = 0xF4 // Initial stack pointer.
)

// Flags is the condition register, written only by CMP.
type Flags uint8

// Condition bits, laid out as 00000LGE.
const (
	FLAG_EQUAL   = Flags(1 << 0) // E
	FLAG_GREATER = Flags(1 << 1) // G
	FLAG_LESS    = Flags(1 << 2) // L
)

// Equal returns true if the E bit is set.
func (fl Flags) Equal() bool {
	return (fl & FLAG_EQUAL) != 0
}

// Greater returns true if the G bit is set.
func (fl Flags) Greater() bool {
	return (fl & FLAG_GREATER) != 0
}

// Less returns true if the L bit is set.
func (fl Flags) Less() bool {
	return (fl & FLAG_LESS) != 0
}

// String returns the flags as "LGE", with '-' for clear bits.
func (fl Flags) String() string {
	var sb strings.Builder
	for _, bit := range []struct {
		flag Flags
		name byte
	}{{FLAG_LESS, 'L'}, {FLAG_GREATER, 'G'}, {FLAG_EQUAL, 'E'}} {
		if (fl & bit.flag) != 0 {
			sb.WriteByte(bit.name)
		} else {
			sb.WriteByte('-')
		}
	}
	return sb.String()
}

// RegisterFile holds the general purpose registers and the flags.
type RegisterFile struct {
	Register [REGISTER_COUNT]uint8
	Flags    Flags
}

// Reset zeros all registers and flags, and sets the stack pointer to
// the top of the stack.
func (rf *RegisterFile) Reset() {
	clear(rf.Register[:])
	rf.Register[REG_SP] = STACK_TOP
	rf.Flags = 0
}

// Get returns the value of register index.
func (rf *RegisterFile) Get(index int) (value uint8, err error) {
	if index < 0 || index >= len(rf.Register) {
		err = ErrRegisterIndex(index)
		return
	}

	value = rf.Register[index]
	return
}

// Set writes value to register index.
func (rf *RegisterFile) Set(index int, value uint8) (err error) {
	if index < 0 || index >= len(rf.Register) {
		err = ErrRegisterIndex(index)
		return
	}

	rf.Register[index] = value
	return
}

// Sp returns the stack pointer.
func (rf *RegisterFile) Sp() uint8 {
	return rf.Register[REG_SP]
}

// GetFlags returns the flags register.
func (rf *RegisterFile) GetFlags() Flags {
	return rf.Flags
}

// SetFlags writes the flags register. Bits outside LGE are discarded.
func (rf *RegisterFile) SetFlags(flags Flags) {
	rf.Flags = flags & (FLAG_LESS | FLAG_GREATER | FLAG_EQUAL)
}
