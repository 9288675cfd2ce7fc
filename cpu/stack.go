package cpu

// The stack lives in RAM, growing downward from SP_INIT through the
// stack pointer register R7. The stack pointer is a byte: running past
// address 0 wraps it, and no bound is enforced.

func (cpu *Cpu) push(value byte) {
	cpu.Register[REG_SP]--
	cpu.RamWrite(int(cpu.Register[REG_SP]), value)
}

func (cpu *Cpu) pop() (value byte) {
	value = cpu.RamRead(int(cpu.Register[REG_SP]))
	cpu.Register[REG_SP]++
	return
}

func (cpu *Cpu) opPush() (err error) {
	value, err := cpu.Reg(cpu.operand(1))
	if err != nil {
		return
	}

	cpu.push(value)
	cpu.Pc += 1
	return
}

func (cpu *Cpu) opPop() (err error) {
	value := cpu.RamRead(int(cpu.Register[REG_SP]))

	err = cpu.SetReg(cpu.operand(1), value)
	if err != nil {
		return
	}

	cpu.Register[REG_SP]++
	cpu.Pc += 1
	return
}

// opCall pushes the address of the instruction after the two-byte CALL
// and leaves Pc at the target minus one for the loop's post-increment.
func (cpu *Cpu) opCall() (err error) {
	target, err := cpu.Reg(cpu.operand(1))
	if err != nil {
		return
	}

	cpu.push(byte(cpu.Pc + 2))
	cpu.Pc = int(target) - 1
	return
}

// opRet pops the return address pushed by CALL.
func (cpu *Cpu) opRet() (err error) {
	cpu.Pc = int(cpu.pop()) - 1
	return
}
