package cpu

import (
	"iter"
)

// Link is an operand byte to be filled with the address of a label.
type Link struct {
	Index int    // Index into Statement.Bytes
	Label string // Label to resolve.
}

// Statement is a line of assembled code with its source location and
// generated bytes.
type Statement struct {
	LineNo int
	Pc     int
	Words  []string
	Bytes  []uint8
	Links  []Link
}

// Program is an assembled program listing.
type Program struct {
	Statements []Statement
}

type Debug struct {
	*Statement
	Index int
}

// Debug finds the statement that generated the byte at pc.
func (prog *Program) Debug(pc int) (dbg Debug) {
	for n, st := range prog.Statements {
		if pc >= st.Pc && pc < st.Pc+len(st.Bytes) {
			dbg = Debug{
				Statement: &prog.Statements[n],
				Index:     pc - st.Pc,
			}
			break
		}
	}

	return
}

// Binary returns the memory image of the program, starting at address zero.
func (prog *Program) Binary() (bins []uint8) {
	for pc, value := range prog.Bytes() {
		for len(bins) < pc {
			bins = append(bins, 0)
		}
		bins = append(bins, value)
	}

	return
}

// Bytes iterates over the address and value of every program byte.
func (prog *Program) Bytes() iter.Seq2[int, uint8] {
	return func(yield func(pc int, value uint8) bool) {
		for _, st := range prog.Statements {
			for n, value := range st.Bytes {
				if !yield(st.Pc+n, value) {
					return
				}
			}
		}
	}
}
