// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	goio "io"
	"log"

	"github.com/ezrec/ls8/cpu"
	"github.com/ezrec/ls8/io"
)

// Emulator state. CPU + ROM + console.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Assembler listing of the ROM, if any.

	Rom  io.Rom  // Program image loaded at reset.
	Tape io.Tape // Console receiving PRN output.
}

// NewEmulator creates a new emulator with the default memory size.
func NewEmulator() (emu *Emulator) {
	return NewEmulatorSize(cpu.MEMORY_SIZE)
}

// NewEmulatorSize creates a new emulator with size bytes of memory.
func NewEmulatorSize(size uint) (emu *Emulator) {
	emu = &Emulator{
		Cpu: cpu.NewCpu(size),
	}

	emu.Rom.Capacity = int(size)
	emu.Cpu.SetConsole(&emu.Tape)

	return
}

// SetTrace sets the writer receiving the per-cycle trace.
func (emu *Emulator) SetTrace(w goio.Writer) {
	emu.Cpu.Trace = w
}

// Load parses a program file into the ROM, then resets.
// On error, the previous ROM is discarded and the CPU is halted.
func (emu *Emulator) Load(input goio.Reader) (err error) {
	defer emu.haltOnError(&err)

	emu.Program = nil

	err = emu.Rom.Parse(input)
	if err != nil {
		return
	}

	if emu.Verbose {
		log.Printf("emulator: loaded %d bytes", len(emu.Rom.Data))
	}

	err = emu.Reset()
	return
}

// LoadProgram installs an assembled program into the ROM, then resets.
// On error, the CPU is halted.
func (emu *Emulator) LoadProgram(prog *cpu.Program) (err error) {
	defer emu.haltOnError(&err)

	emu.Rom.Rewind()

	data := prog.Binary()
	if emu.Rom.Capacity > 0 && len(data) > emu.Rom.Capacity {
		err = io.ErrRomFull
		return
	}

	emu.Rom.Data = data
	emu.Rom.LineNo = make([]int, len(data))
	for pc := range data {
		dbg := prog.Debug(pc)
		if dbg.Statement != nil {
			emu.Rom.LineNo[pc] = dbg.LineNo
		}
	}
	emu.Program = prog

	err = emu.Reset()
	return
}

// haltOnError stops the CPU if a load failed.
func (emu *Emulator) haltOnError(err *error) {
	if *err != nil {
		emu.Cpu.Running = false
	}
}

// Reset the CPU, and reinstall the ROM image at address zero.
func (emu *Emulator) Reset() (err error) {
	emu.Cpu.Verbose = emu.Verbose

	emu.Cpu.Reset()

	err = emu.Cpu.Load(emu.Rom.Data)
	if err != nil {
		return
	}

	return
}

// Ticks returns the total ticks since a reset.
func (emu *Emulator) Ticks() int {
	return emu.Cpu.Ticks
}

// Pc returns current program counter.
func (emu *Emulator) Pc() int {
	return emu.Cpu.Pc
}

// Code returns the instruction at the program counter.
func (emu *Emulator) Code() cpu.Code {
	code, err := emu.Cpu.FetchCode()
	if err != nil {
		return cpu.Code{}
	}
	return code
}

// LineNo returns the source line number for the executing instruction.
func (emu *Emulator) LineNo() int {
	return emu.Rom.Line(emu.Cpu.Pc)
}

// Tick performs a single tick of the emulator.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	lineno := emu.LineNo()
	defer func() {
		if err != nil {
			err = &ErrRuntime{LineNo: lineno, Err: err}
		}
	}()

	err = emu.Cpu.Tick()
	if err != nil {
		return
	}

	done = !emu.Cpu.Running

	return
}

// Run ticks the emulator until the program halts, or faults.
func (emu *Emulator) Run() (err error) {
	for done := false; !done; {
		done, err = emu.Tick()
		if err != nil {
			return
		}
	}

	if emu.Verbose {
		log.Printf("emulator: halted after %d ticks", emu.Ticks())
	}

	return
}
