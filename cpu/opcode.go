package cpu

// Machine layout constants.
const (
	RAM_SIZE       = 256  // Bytes of addressable RAM.
	REGISTER_COUNT = 8    // Byte-wide general purpose registers.
	REG_IM         = 5    // Interrupt mask is register R5.
	REG_IS         = 6    // Interrupt status is register R6.
	REG_SP         = 7    // Stack pointer is register R7.
	SP_INIT        = 0xF4 // Stack pointer value at reset.
)

// Op is a single-byte instruction opcode.
type Op byte

//go:generate go tool stringer -linecomment -type=Op
const (
	OP_NOP  = Op(0b00000000) // nop
	OP_HLT  = Op(0b00000001) // hlt
	OP_RET  = Op(0b00010001) // ret
	OP_IRET = Op(0b00010011) // iret
	OP_PUSH = Op(0b01000101) // push
	OP_POP  = Op(0b01000110) // pop
	OP_PRN  = Op(0b01000111) // prn
	OP_PRA  = Op(0b01001000) // pra
	OP_CALL = Op(0b01010000) // call
	OP_JMP  = Op(0b01010100) // jmp
	OP_JEQ  = Op(0b01010101) // jeq
	OP_JNE  = Op(0b01010110) // jne
	OP_INC  = Op(0b01100101) // inc
	OP_DEC  = Op(0b01100110) // dec
	OP_NOT  = Op(0b01101001) // not
	OP_LDI  = Op(0b10000010) // ldi
	OP_LD   = Op(0b10000011) // ld
	OP_ST   = Op(0b10000100) // st
	OP_ADD  = Op(0b10100000) // add
	OP_SUB  = Op(0b10100001) // sub
	OP_MUL  = Op(0b10100010) // mul
	OP_CMP  = Op(0b10100111) // cmp
	OP_AND  = Op(0b10101000) // and
	OP_OR   = Op(0b10101010) // or
	OP_XOR  = Op(0b10101011) // xor
	OP_SHL  = Op(0b10101100) // shl
	OP_SHR  = Op(0b10101101) // shr
)

// opOperands is the number of operand bytes each opcode consumes.
// Operand counts are fixed by this table, not derived from the opcode's
// bit pattern. IRET is deliberately absent: it is part of the vocabulary
// but has no dispatch entry.
var opOperands = map[Op]int{
	OP_NOP:  0,
	OP_HLT:  0,
	OP_RET:  0,
	OP_PUSH: 1,
	OP_POP:  1,
	OP_PRN:  1,
	OP_PRA:  1,
	OP_CALL: 1,
	OP_JMP:  1,
	OP_JEQ:  1,
	OP_JNE:  1,
	OP_INC:  1,
	OP_DEC:  1,
	OP_NOT:  2,
	OP_LDI:  2,
	OP_LD:   2,
	OP_ST:   2,
	OP_ADD:  2,
	OP_SUB:  2,
	OP_MUL:  2,
	OP_CMP:  2,
	OP_AND:  2,
	OP_OR:   2,
	OP_XOR:  2,
	OP_SHL:  2,
	OP_SHR:  2,
}

// Operands returns the number of operand bytes the opcode consumes,
// and whether the opcode is part of the executable instruction set.
func (op Op) Operands() (count int, ok bool) {
	count, ok = opOperands[op]
	return
}

// Flag is the comparison flag register value. At most one flag is set
// at a time; CMP decides between them with an if/else-if chain.
type Flag byte

//go:generate go tool stringer -linecomment -type=Flag
const (
	FLAG_NONE    = Flag(0)      // none
	FLAG_EQUAL   = Flag(1 << 0) // eq
	FLAG_GREATER = Flag(1 << 1) // gt
	FLAG_LESS    = Flag(1 << 2) // lt
)
