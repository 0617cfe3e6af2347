package cpu

//go:generate go tool stringer -linecomment -type=AluOp

// AluOp is an ALU operation, selected by the low nibble of an ALU opcode.
type AluOp int

const (
	ALU_OP_ADD = AluOp(0x0) // add
	ALU_OP_MUL = AluOp(0x2) // mul
	ALU_OP_CMP = AluOp(0x7) // cmp
)

// Alu performs op on registers a and b of the register file.
//
// ADD and MUL wrap modulo 256 and store into register a. CMP compares
// the registers as unsigned values and sets exactly one of E, L or G;
// the other two bits keep their prior value.
//
// On error the register file is not modified.
func Alu(op AluOp, rf *RegisterFile, a, b int) (err error) {
	va, err := rf.Get(a)
	if err != nil {
		return
	}
	vb, err := rf.Get(b)
	if err != nil {
		return
	}

	switch op {
	case ALU_OP_ADD:
		rf.Register[a] = va + vb
	case ALU_OP_MUL:
		rf.Register[a] = va * vb
	case ALU_OP_CMP:
		flag := FLAG_GREATER
		switch {
		case va == vb:
			flag = FLAG_EQUAL
		case va < vb:
			flag = FLAG_LESS
		}
		rf.SetFlags(rf.GetFlags() | flag)
	default:
		err = ErrAluOp
	}

	return
}
