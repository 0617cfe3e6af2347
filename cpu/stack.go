package cpu

// The stack lives in memory, grows downward from STACK_TOP, and is
// addressed by register REG_SP.

// StackEmpty returns true if nothing has been pushed.
func (cpu *Cpu) StackEmpty() bool {
	return cpu.Register.Sp() == STACK_TOP
}

// StackFull returns true if the stack pointer cannot be decremented.
func (cpu *Cpu) StackFull() bool {
	return cpu.Register.Sp() == 0
}

// Push decrements the stack pointer, then stores value at the new top.
// On error the stack pointer and memory are unchanged.
func (cpu *Cpu) Push(value uint8) (err error) {
	if cpu.StackFull() {
		err = ErrStackFull
		return
	}

	sp := cpu.Register.Sp() - 1
	err = cpu.Memory.Write(int(sp), value)
	if err != nil {
		return
	}

	cpu.Register.Register[REG_SP] = sp
	return
}

// Peek returns the value at the top of the stack.
func (cpu *Cpu) Peek() (value uint8, err error) {
	if cpu.StackEmpty() {
		err = ErrStackEmpty
		return
	}

	return cpu.Memory.Read(int(cpu.Register.Sp()))
}

// Pop returns the value at the top of the stack, then increments the
// stack pointer. On error the stack pointer is unchanged.
func (cpu *Cpu) Pop() (value uint8, err error) {
	value, err = cpu.Peek()
	if err != nil {
		return
	}

	cpu.Register.Register[REG_SP]++
	return
}
