package cpu

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/ls8/io"
)

func assemble(t *testing.T, asm *Assembler, program ...string) *Program {
	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	if err != nil {
		t.Fatal(err)
	}
	return prog
}

func TestAssembler(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	prog, err := asm.Parse(strings.NewReader(""))
	assert.NoError(err)
	assert.Equal(0, len(prog.Statements))

	assert.Equal("0", asm.Equate["LINENO"])
	assert.Equal("256", asm.Equate["MEMORY_SIZE"])
	assert.Equal("0xf4", asm.Equate["STACK_TOP"])
	assert.Equal("1", asm.Equate["FLAG_EQUAL"])
}

func TestAssembler_Basic(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	prog := assemble(t, asm,
		"; print 8+9",
		"        LDI R0,8",
		"        LDI R1, 9",
		"        ADD R0,R1   # sum",
		"        prn r0",
		"        HLT",
	)

	assert.Equal([]uint8{
		0b10000010, 0b00000000, 0b00001000,
		0b10000010, 0b00000001, 0b00001001,
		0b10100000, 0b00000000, 0b00000001,
		0b01000111, 0b00000000,
		0b00000001,
	}, prog.Binary())

	expected := []Statement{
		{2, 0, []string{"LDI", "R0", "8"}, []uint8{0x82, 0, 8}, nil},
		{3, 3, []string{"LDI", "R1", "9"}, []uint8{0x82, 1, 9}, nil},
		{4, 6, []string{"ADD", "R0", "R1"}, []uint8{0xa0, 0, 1}, nil},
		{5, 9, []string{"prn", "r0"}, []uint8{0x47, 0}, nil},
		{6, 11, []string{"HLT"}, []uint8{0x01}, nil},
	}
	assert.Equal(expected, prog.Statements)
}

func TestAssembler_Labels(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	prog := assemble(t, asm,
		"        LDI R2,ALT",
		"        LDI R0,5",
		"        CMP R0,R0",
		"        JEQ R2",
		"        HLT",
		"ALT:    PRN R0",
		"        HLT",
	)

	assert.Equal(12, asm.Label["ALT"])
	assert.Equal(uint8(12), prog.Binary()[2])
	assert.Equal([]Link{{Index: 2, Label: "ALT"}}, prog.Statements[0].Links)
}

func TestAssembler_Values(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	prog := assemble(t, asm,
		".equ COUNT 3",
		".equ BASE 0x10",
		"  LDI R0,COUNT",
		"  LDI R1,$(BASE + COUNT * 2)",
		"  LDI R2,'A'",
		"  LDI R3,-1",
		"  LDI SP,$(STACK_TOP - 4)",
		"LOOP:",
		"  LDI R4,$(LOOP)",
		"  .db 1 2 0b11 LOOP",
	)

	assert.Equal([]uint8{
		0x82, 0, 3,
		0x82, 1, 22,
		0x82, 2, 65,
		0x82, 3, 0xff,
		0x82, 7, 0xf0,
		0x82, 4, 15,
		1, 2, 3, 15,
	}, prog.Binary())
}

func TestAssembler_Predefine(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	asm.Predefine("N", "7")
	asm.Predefine("N", "9")

	prog := assemble(t, asm, "LDI R0,N")
	assert.Equal([]uint8{0x82, 0, 9}, prog.Binary())

	// Predefines survive another parse.
	prog = assemble(t, asm, "LDI R1,N")
	assert.Equal([]uint8{0x82, 1, 9}, prog.Binary())
}

func TestAssembler_Errors(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		program string
		err     error
		lineno  int
	}{
		{"FOO R0", ErrOpcodeInvalid, 1},
		{"LDI R8,1", ErrRegisterInvalid, 1},
		{"LDI R0", ErrOpcodeValueMissing, 1},
		{"PRN R0,R1", ErrOpcodeExtraArgs, 1},
		{"HLT R0", ErrOpcodeExtraArgs, 1},
		{"LDI R0,256", ErrValueRange, 1},
		{"LDI R0,-129", ErrValueRange, 1},
		{"LDI R0,R1", ErrParseNumber("R1"), 1},
		{"LDI R0,12x", ErrParseNumber("12x"), 1},
		{"JMP MISSING", ErrRegisterInvalid, 1},
		{"HLT\nLDI R0,MISSING", ErrLabelMissing("MISSING"), 2},
		{"A:\nA:", ErrLabelDuplicate, 2},
		{"1:", ErrLabelSyntax, 1},
		{".equ X 1\n.equ X 2", ErrEquateDuplicate, 2},
		{".equ X", ErrEquateSyntax, 1},
		{"LDI R0,$(1 +)", ErrParseExpression("1 +"), 1},
		{"LDI R0,$(300)", ErrValueRange, 1},
		{".db", ErrOpcodeValueMissing, 1},
	}

	for _, entry := range table {
		asm := &Assembler{}
		_, err := asm.Parse(strings.NewReader(entry.program))
		assert.ErrorIs(err, entry.err, entry.program)

		var syntax *ErrSyntax
		if assert.True(errors.As(err, &syntax), entry.program) {
			assert.Equal(entry.lineno, syntax.LineNo, entry.program)
		}
	}
}

func TestAssembler_Run(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	prog := assemble(t, asm,
		"        LDI R1,MULT2PRINT",
		"        LDI R0,10",
		"        CALL R1",
		"        LDI R0,15",
		"        CALL R1",
		"        HLT",
		"",
		"MULT2PRINT:",
		"        ADD R0,R0",
		"        PRN R0",
		"        RET",
	)

	output := &bytes.Buffer{}
	cpu := NewCpu(MEMORY_SIZE)
	cpu.SetConsole(&io.Tape{Output: output})
	assert.NoError(cpu.Load(prog.Binary()))
	assert.NoError(cpu.Run())
	assert.Equal("20\n30\n", output.String())

	dbg := prog.Debug(cpu.Pc - 1)
	if assert.NotNil(dbg.Statement) {
		assert.Equal(6, dbg.LineNo)
	}
}
