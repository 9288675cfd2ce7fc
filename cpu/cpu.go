package cpu

import (
	"fmt"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/ls8/io"
)

var _cpu_defines = map[string]string{
	"RAM_SIZE": fmt.Sprintf("%v", RAM_SIZE),
	"SP_INIT":  fmt.Sprintf("%v", SP_INIT),
	"REG_IM":   fmt.Sprintf("%v", REG_IM),
	"REG_IS":   fmt.Sprintf("%v", REG_IS),
	"REG_SP":   fmt.Sprintf("%v", REG_SP),
}

// Console is the output device for the PRN and PRA instructions.
type Console io.Device

// opHandler executes a single dispatched instruction. Handlers consume
// their own operand bytes: a handler with N operands leaves Pc advanced
// by N, except branch handlers, which leave Pc at target-1 so the run
// loop's uniform post-increment lands the next fetch on target.
type opHandler func() error

// Cpu is the LS-8 machine state.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Console Console // Output device for PRN/PRA.

	Ram      [RAM_SIZE]byte       // Flat memory, addresses 0-255.
	Register [REGISTER_COUNT]byte // Register bank R0-R7.
	Pc       int                  // Program counter.
	Fl       Flag                 // Comparison flag register.

	halted   bool
	dispatch map[Op]opHandler
}

// NewCpu creates a new CPU in its reset state.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{}
	cpu.Register[REG_SP] = SP_INIT
	cpu.bindDispatch()

	return
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

func (cpu *Cpu) bindDispatch() {
	cpu.dispatch = map[Op]opHandler{
		OP_NOP:  cpu.opNop,
		OP_HLT:  cpu.opHlt,
		OP_RET:  cpu.opRet,
		OP_CALL: cpu.opCall,
		OP_JMP:  cpu.opJmp,
		OP_JEQ:  cpu.opJeq,
		OP_JNE:  cpu.opJne,
		OP_PUSH: cpu.opPush,
		OP_POP:  cpu.opPop,
		OP_PRA:  cpu.opPra,
		OP_PRN:  cpu.opPrn,
		OP_LDI:  cpu.opLdi,
		OP_LD:   cpu.opLd,
		OP_ST:   cpu.opSt,
		OP_CMP:  cpu.opCmp,
		OP_INC:  cpu.aluUnary(OP_INC),
		OP_DEC:  cpu.aluUnary(OP_DEC),
		OP_NOT:  cpu.aluBinary(OP_NOT),
		OP_ADD:  cpu.aluBinary(OP_ADD),
		OP_SUB:  cpu.aluBinary(OP_SUB),
		OP_MUL:  cpu.aluBinary(OP_MUL),
		OP_AND:  cpu.aluBinary(OP_AND),
		OP_OR:   cpu.aluBinary(OP_OR),
		OP_XOR:  cpu.aluBinary(OP_XOR),
		OP_SHL:  cpu.aluBinary(OP_SHL),
		OP_SHR:  cpu.aluBinary(OP_SHR),
	}
}

// Reset restores the construction state: cleared RAM, registers, and
// flags, stack pointer at SP_INIT, program counter at 0.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	clear(cpu.Ram[:])
	clear(cpu.Register[:])
	cpu.Register[REG_SP] = SP_INIT
	cpu.Pc = 0
	cpu.Fl = FLAG_NONE
	cpu.halted = false
}

// String returns the current CPU state as a trace line: the program
// counter, the next three memory bytes, and the register bank, in hex.
func (cpu *Cpu) String() (text string) {
	text = fmt.Sprintf("%02X | %02X %02X %02X |",
		cpu.Pc,
		cpu.Ram[cpu.Pc],
		cpu.Ram[(cpu.Pc+1)%RAM_SIZE],
		cpu.Ram[(cpu.Pc+2)%RAM_SIZE])

	for _, reg := range cpu.Register {
		text += fmt.Sprintf(" %02X", reg)
	}

	return
}

// RamRead reads the memory byte at addr. An address outside 0-255 is
// an engine invariant violation: the run loop keeps the program counter
// in range, so no instruction stream can reach one.
func (cpu *Cpu) RamRead(addr int) byte {
	if addr < 0 || addr >= RAM_SIZE {
		panic(ErrRamBounds)
	}

	return cpu.Ram[addr]
}

// RamWrite writes the memory byte at addr.
func (cpu *Cpu) RamWrite(addr int, value byte) {
	if addr < 0 || addr >= RAM_SIZE {
		panic(ErrRamBounds)
	}

	cpu.Ram[addr] = value
}

// Reg returns the value of register index. An index outside R0-R7 is
// reachable from program bytes and reports a fatal ErrRegister.
func (cpu *Cpu) Reg(index byte) (value byte, err error) {
	if index >= REGISTER_COUNT {
		err = ErrRegister(index)
		return
	}

	value = cpu.Register[index]
	return
}

// SetReg sets the value of register index.
func (cpu *Cpu) SetReg(index byte, value byte) (err error) {
	if index >= REGISTER_COUNT {
		err = ErrRegister(index)
		return
	}

	cpu.Register[index] = value
	return
}

// Halted reports whether a HLT instruction has executed since the last
// reset.
func (cpu *Cpu) Halted() bool {
	return cpu.halted
}

// operand reads the Nth operand byte of the current instruction.
func (cpu *Cpu) operand(n int) byte {
	return cpu.RamRead(cpu.Pc + n)
}

// Tick executes a single fetch/decode/execute cycle. A fetched byte
// with no dispatch entry is fatal: ErrOpcode is returned and no state
// changes. After the handler runs, the program counter is incremented
// by one, wrapping to 0 rather than reaching RAM_SIZE.
func (cpu *Cpu) Tick() (err error) {
	op := Op(cpu.RamRead(cpu.Pc))

	if cpu.Verbose {
		log.Printf("cpu: %v  %v", cpu, op)
	}

	handler, ok := cpu.dispatch[op]
	if !ok {
		err = ErrOpcode(op)
		return
	}

	err = handler()
	if err != nil {
		return
	}

	cpu.Pc++
	if cpu.Pc >= RAM_SIZE {
		cpu.Pc = 0
	}

	return
}

// Run executes instructions until HLT or a fatal error.
func (cpu *Cpu) Run() (err error) {
	for !cpu.halted {
		err = cpu.Tick()
		if err != nil {
			return
		}
	}

	return
}

func (cpu *Cpu) opNop() (err error) {
	return
}

func (cpu *Cpu) opHlt() (err error) {
	cpu.halted = true
	return
}

func (cpu *Cpu) opLdi() (err error) {
	reg := cpu.operand(1)
	value := cpu.operand(2)

	err = cpu.SetReg(reg, value)
	cpu.Pc += 2
	return
}

// opLd stores the raw second operand byte into the register named by
// the first. The operand is not treated as a register to dereference;
// the instruction behaves like LDI.
func (cpu *Cpu) opLd() (err error) {
	reg := cpu.operand(1)
	value := cpu.operand(2)

	err = cpu.SetReg(reg, value)
	cpu.Pc += 2
	return
}

// opSt copies the register named by the second operand into the
// register named by the first.
func (cpu *Cpu) opSt() (err error) {
	dst := cpu.operand(1)
	src := cpu.operand(2)

	value, err := cpu.Reg(src)
	if err != nil {
		return
	}

	err = cpu.SetReg(dst, value)
	cpu.Pc += 2
	return
}

func (cpu *Cpu) opPrn() (err error) {
	value, err := cpu.Reg(cpu.operand(1))
	if err != nil {
		return
	}

	if cpu.Console == nil {
		err = ErrConsoleInvalid
		return
	}

	err = cpu.Console.Numeric(value)
	cpu.Pc += 1
	return
}

func (cpu *Cpu) opPra() (err error) {
	value, err := cpu.Reg(cpu.operand(1))
	if err != nil {
		return
	}

	if cpu.Console == nil {
		err = ErrConsoleInvalid
		return
	}

	err = cpu.Console.Character(value)
	cpu.Pc += 1
	return
}

// opCmp compares two registers and sets exactly one flag.
func (cpu *Cpu) opCmp() (err error) {
	a, err := cpu.Reg(cpu.operand(1))
	if err != nil {
		return
	}
	b, err := cpu.Reg(cpu.operand(2))
	if err != nil {
		return
	}

	if a == b {
		cpu.Fl = FLAG_EQUAL
	} else if a < b {
		cpu.Fl = FLAG_LESS
	} else {
		cpu.Fl = FLAG_GREATER
	}

	cpu.Pc += 2
	return
}

func (cpu *Cpu) opJmp() (err error) {
	target, err := cpu.Reg(cpu.operand(1))
	if err != nil {
		return
	}

	cpu.Pc = int(target) - 1
	return
}

func (cpu *Cpu) opJeq() (err error) {
	target, err := cpu.Reg(cpu.operand(1))
	if err != nil {
		return
	}

	if cpu.Fl == FLAG_EQUAL {
		cpu.Pc = int(target) - 1
	} else {
		cpu.Pc += 1
	}

	return
}

// opJne branches on any flag value above the equal encoding: a
// comparison ran and its result was not equal. Cleared flags do not
// branch.
func (cpu *Cpu) opJne() (err error) {
	target, err := cpu.Reg(cpu.operand(1))
	if err != nil {
		return
	}

	if cpu.Fl > FLAG_EQUAL {
		cpu.Pc = int(target) - 1
	} else {
		cpu.Pc += 1
	}

	return
}

// aluUnary dispatches a one-operand ALU instruction.
func (cpu *Cpu) aluUnary(op Op) opHandler {
	return func() (err error) {
		err = cpu.Alu(op, cpu.operand(1), 0)
		cpu.Pc += 1
		return
	}
}

// aluBinary dispatches a two-operand ALU instruction.
func (cpu *Cpu) aluBinary(op Op) opHandler {
	return func() (err error) {
		err = cpu.Alu(op, cpu.operand(1), cpu.operand(2))
		cpu.Pc += 2
		return
	}
}
