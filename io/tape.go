package io

import (
	"fmt"
	"io"
)

// Tape is the console device. Every printed value is written to Output
// as a decimal number followed by a newline, in execution order.
type Tape struct {
	Output io.Writer

	Printed int // Count of values printed since the last rewind.
}

var _ Console = (*Tape)(nil)

// Rewind clears the printed counter. The output stream cannot be rewound.
func (tc *Tape) Rewind() {
	tc.Printed = 0
}

// Print writes the decimal value to the output stream.
func (tc *Tape) Print(value byte) (err error) {
	if tc.Output == nil {
		err = ErrConsoleOutput
		return
	}

	_, err = fmt.Fprintf(tc.Output, "%d\n", value)
	if err != nil {
		return
	}

	tc.Printed++

	return
}
