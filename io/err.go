package io

import (
	"errors"

	"github.com/ezrec/ls8/translate"
)

var f = translate.From

var (
	// Console errors
	ErrConsoleOutput = errors.New(f("console has no output"))

	// Rom errors
	ErrRomLiteral = errors.New(f("not an 8-bit binary literal"))
	ErrRomFull    = errors.New(f("program exceeds memory"))
)

// ErrRomSyntax locates a malformed line of a program file.
type ErrRomSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err *ErrRomSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err *ErrRomSyntax) Unwrap() error {
	return err.Err
}
