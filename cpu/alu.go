package cpu

// Alu performs a register-to-register arithmetic or logic operation,
// writing the result into register ra. Results wrap to 8 bits through
// the byte register type. Opcodes outside the closed set below report
// ErrAluOp; the dispatch table never routes one here.
func (cpu *Cpu) Alu(op Op, ra, rb byte) (err error) {
	a, err := cpu.Reg(ra)
	if err != nil {
		return
	}

	var b byte
	switch op {
	case OP_ADD, OP_SUB, OP_MUL, OP_AND, OP_OR, OP_XOR, OP_SHL, OP_SHR:
		b, err = cpu.Reg(rb)
		if err != nil {
			return
		}
	}

	var out byte
	switch op {
	case OP_ADD:
		out = a + b
	case OP_SUB:
		out = a - b
	case OP_MUL:
		out = a * b
	case OP_INC:
		out = a + 1
	case OP_DEC:
		out = a - 1
	case OP_AND:
		// Both inputs come from the source register.
		out = b & b
	case OP_OR:
		out = b | b
	case OP_XOR:
		out = b ^ b
	case OP_NOT:
		out = 0xFF - a
	case OP_SHL:
		out = a << b
	case OP_SHR:
		out = a >> b
	default:
		err = ErrAluOp
		return
	}

	cpu.Register[ra] = out
	return
}
