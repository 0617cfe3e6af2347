// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/ls8/internal"
)

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO": "0",
}

// Assembler is a single pass assembler for the LS-8 system.
type Assembler struct {
	Verbose   bool        // If set, verbosely logs the assembler actions.
	Statement []Statement // List of generated statements.

	predefine map[string]string // Predefines
	Label     map[string]int    // Map of labels to addresses.
	Equate    map[string]string // Map of equates.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// regMap is a map of register names to register indexes.
var regMap = map[string]int{
	"r0": 0,
	"r1": 1,
	"r2": 2,
	"r3": 3,
	"r4": 4,
	"r5": 5,
	"r6": 6,
	"r7": 7,
	"sp": REG_SP,
}

// argKind is the kind of an instruction operand.
type argKind int

const (
	ARG_REGISTER  = argKind(0) // Register index.
	ARG_IMMEDIATE = argKind(1) // 8-bit value.
)

// argMap lists the operand kinds of each instruction.
var argMap = map[Opcode][]argKind{
	OP_HLT:  nil,
	OP_RET:  nil,
	OP_PUSH: {ARG_REGISTER},
	OP_POP:  {ARG_REGISTER},
	OP_PRN:  {ARG_REGISTER},
	OP_CALL: {ARG_REGISTER},
	OP_JMP:  {ARG_REGISTER},
	OP_JEQ:  {ARG_REGISTER},
	OP_JNE:  {ARG_REGISTER},
	OP_LDI:  {ARG_REGISTER, ARG_IMMEDIATE},
	OP_ADD:  {ARG_REGISTER, ARG_REGISTER},
	OP_MUL:  {ARG_REGISTER, ARG_REGISTER},
	OP_CMP:  {ARG_REGISTER, ARG_REGISTER},
}

// valueOf returns the value of a simple word.
// Negative values are stored as two's complement.
func (asm *Assembler) valueOf(word string) (value uint8, err error) {
	v64, err := strconv.ParseInt(word, 0, 64)
	if err != nil {
		err = ErrParseNumber(word)
		return
	}

	if v64 > 0xff || v64 < -0x80 {
		err = ErrValueRange
		return
	}

	value = uint8(v64)

	return
}

// isNumber returns true if the word looks like a number.
func isNumber(word string) bool {
	return len(word) > 0 && (word[0] == '-' || (word[0] >= '0' && word[0] <= '9'))
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value uint8, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		v64, perr := strconv.ParseInt(str, 0, 64)
		if perr != nil {
			// Ignore non-integer equates. They may be registers
			// or something else.
			continue
		}
		pred[key] = starlark.MakeInt64(v64)
	}
	for key, pc := range asm.Label {
		pred[key] = starlark.MakeInt(pc)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := dict["rc"].(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}

	return asm.valueOf(strconv.FormatInt(st_int64, 10))
}

var (
	reChar  = regexp.MustCompile(`'\\?[^']'`)
	reParen = regexp.MustCompile(`\$\([^\$]*\)`)
)

// splitWords splits a line on blanks and commas.
func splitWords(line string) []string {
	return strings.FieldsFunc(line, func(r rune) bool {
		return r == ' ' || r == '\t' || r == ','
	})
}

// parseLine expands a single line into words, handling equates and labels.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	// Do 'x' evaluations
	line = reChar.ReplaceAllStringFunc(line, func(word string) string {
		str := word[1 : len(word)-1]
		if str[0] == '\\' {
			str = str[1:]
			switch str {
			case "\\":
				str = "\\"
			case "n":
				str = "\n"
			case "r":
				str = "\r"
			case "0":
				str = "\000"
			default:
				return word
			}
		} else if len(str) != 1 {
			return word
		}
		return fmt.Sprintf("%v", str[0])
	})

	// Do $() evaluations
	line = reParen.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%v", value)
	})
	if err != nil {
		return
	}

	words = splitWords(line)
	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if strings.EqualFold(words[0], ".equ") {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		words = words[:0]
		return
	}

	for strings.HasSuffix(words[0], ":") {
		label := words[0][:len(words[0])-1]
		if len(label) == 0 || isNumber(label) {
			err = ErrLabelSyntax
			return
		}
		_, ok := asm.Label[label]
		if ok {
			err = ErrLabelDuplicate
			return
		}

		asm.Label[label] = asm.currentPc()
		words = words[1:]
		if len(words) == 0 {
			return
		}
	}

	for n, word := range words {
		// Check for equate
		equate, ok := asm.Equate[word]
		if ok {
			words[n] = equate
		}
	}

	return
}

// currentPc gets the address of the next statement.
func (asm *Assembler) currentPc() int {
	if len(asm.Statement) == 0 {
		return 0
	}

	last := asm.Statement[len(asm.Statement)-1]

	return last.Pc + len(last.Bytes)
}

// Parse parses an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	asm.Label = make(map[string]int)
	asm.Statement = asm.Statement[:0]
	asm.Equate = maps.Collect(internal.IterSeq2Concat(
		maps.All(sysEquate),
		maps.All(_cpu_defines),
		maps.All(asm.predefine),
	))

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		if n := strings.IndexAny(text, ";#"); n >= 0 {
			text = text[:n]
		}
		line = strings.TrimSpace(text)

		var words []string
		words, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}

		err = asm.parseWords(words, lineno)
		if err != nil {
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	// Final linking of labels.
	line = ""
	for n := range asm.Statement {
		st := &asm.Statement[n]
		lineno = st.LineNo

		for _, link := range st.Links {
			pc, ok := asm.Label[link.Label]
			if !ok {
				err = ErrLabelMissing(link.Label)
				return
			}
			if pc > 0xff {
				err = ErrValueRange
				return
			}
			st.Bytes[link.Index] = uint8(pc)
		}
	}

	prog = &Program{
		Statements: slices.Clone(asm.Statement),
	}

	return
}

// getRegister gets the register index for a word.
func (asm *Assembler) getRegister(word string) (index int, err error) {
	index, ok := regMap[strings.ToLower(word)]
	if !ok {
		err = ErrRegisterInvalid
	}
	return
}

// getValue gets a value for a word, or records a label link.
func (asm *Assembler) getValue(word string) (value uint8, label string, err error) {
	if isNumber(word) {
		value, err = asm.valueOf(word)
		return
	}

	if _, ok := regMap[strings.ToLower(word)]; ok {
		err = ErrParseNumber(word)
		return
	}

	label = word
	return
}

// parseWords evaluates the words in a line of assembly text.
func (asm *Assembler) parseWords(words []string, lineno int) (err error) {
	// no-op
	if len(words) == 0 {
		return
	}

	st := Statement{
		LineNo: lineno,
		Pc:     asm.currentPc(),
		Words:  slices.Clone(words),
	}

	mnemonic := words[0]
	args := words[1:]

	if strings.EqualFold(mnemonic, ".db") {
		if len(args) == 0 {
			err = ErrOpcodeValueMissing
			return
		}
		for n, arg := range args {
			var value uint8
			var label string
			value, label, err = asm.getValue(arg)
			if err != nil {
				return
			}
			if len(label) != 0 {
				st.Links = append(st.Links, Link{Index: n, Label: label})
			}
			st.Bytes = append(st.Bytes, value)
		}
		asm.Statement = append(asm.Statement, st)
		return
	}

	op, ok := LookupMnemonic(mnemonic)
	if !ok {
		err = ErrOpcodeInvalid
		return
	}

	kinds := argMap[op]
	switch {
	case len(args) > len(kinds):
		err = ErrOpcodeExtraArgs
		return
	case len(args) < len(kinds):
		err = ErrOpcodeValueMissing
		return
	}

	st.Bytes = append(st.Bytes, uint8(op))
	for n, kind := range kinds {
		switch kind {
		case ARG_REGISTER:
			var index int
			index, err = asm.getRegister(args[n])
			if err != nil {
				return
			}
			st.Bytes = append(st.Bytes, uint8(index))
		case ARG_IMMEDIATE:
			var value uint8
			var label string
			value, label, err = asm.getValue(args[n])
			if err != nil {
				return
			}
			if len(label) != 0 {
				st.Links = append(st.Links, Link{Index: len(st.Bytes), Label: label})
			}
			st.Bytes = append(st.Bytes, value)
		}
	}

	if asm.Verbose {
		log.Printf("%02x: %v", st.Pc, st.Bytes)
	}

	asm.Statement = append(asm.Statement, st)

	return
}
