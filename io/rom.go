// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package io

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// ROM_COMMENT starts a comment that runs to the end of the line.
const ROM_COMMENT = "#"

// ROM_DIGITS is the number of binary digits of each program line.
const ROM_DIGITS = 8

// Rom is a program image, loaded into memory starting at address zero.
type Rom struct {
	Capacity int // If non-zero, the maximum number of bytes.

	Data    []byte   // Program bytes.
	LineNo  []int    // Source line of each byte, if known.
	Comment []string // Comment written after each byte, if any.
}

// Rewind discards the program image.
func (rom *Rom) Rewind() {
	rom.Data = nil
	rom.LineNo = nil
	rom.Comment = nil
}

// Line returns the source line of the byte at address, or zero if unknown.
func (rom *Rom) Line(address int) int {
	if address < 0 || address >= len(rom.LineNo) {
		return 0
	}

	return rom.LineNo[address]
}

// parseLiteral decodes an eight character string of '0' and '1'.
func parseLiteral(text string) (value byte, err error) {
	if len(text) != ROM_DIGITS {
		err = ErrRomLiteral
		return
	}

	for _, c := range []byte(text) {
		value <<= 1
		switch c {
		case '0':
		case '1':
			value |= 1
		default:
			err = ErrRomLiteral
			return
		}
	}

	return
}

// Parse reads a program file, one binary byte literal per line.
// Everything after a '#' is ignored, as are lines left blank.
// On error, the image is left empty.
func (rom *Rom) Parse(input io.Reader) (err error) {
	rom.Rewind()

	scanner := bufio.NewScanner(input)

	var data []byte
	var lines []int
	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrRomSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	for scanner.Scan() {
		text := scanner.Text()
		lineno++

		line = strings.TrimSpace(strings.SplitN(text, ROM_COMMENT, 2)[0])
		if len(line) == 0 {
			continue
		}

		var value byte
		value, err = parseLiteral(line)
		if err != nil {
			return
		}

		if rom.Capacity > 0 && len(data) >= rom.Capacity {
			err = ErrRomFull
			return
		}

		data = append(data, value)
		lines = append(lines, lineno)
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	rom.Data = data
	rom.LineNo = lines

	return
}

// WriteTo writes the image in the same format accepted by Parse.
func (rom *Rom) WriteTo(output io.Writer) (total int64, err error) {
	w := bufio.NewWriter(output)
	defer func() {
		ferr := w.Flush()
		if err == nil {
			err = ferr
		}
	}()

	for n, value := range rom.Data {
		var count int
		text := fmt.Sprintf("%08b", value)
		if n < len(rom.Comment) && len(rom.Comment[n]) != 0 {
			text += " " + ROM_COMMENT + " " + rom.Comment[n]
		}
		count, err = fmt.Fprintln(w, text)
		total += int64(count)
		if err != nil {
			return
		}
	}

	return
}
