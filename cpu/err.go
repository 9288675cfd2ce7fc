package cpu

import (
	"errors"

	"github.com/ezrec/ls8/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrAluOp          = errors.New(f("unsupported alu operation"))
	ErrRamBounds      = errors.New(f("ram address out of range"))
	ErrConsoleInvalid = errors.New(f("console invalid"))

	// Loader errors
	ErrProgramTooLarge = errors.New(f("program exceeds ram"))

	// Assembler errors
	ErrEquateSyntax    = errors.New(f(".equ syntax"))
	ErrEquateDuplicate = errors.New(f(".equ duplicated"))
	ErrByteSyntax      = errors.New(f(".byte syntax"))
	ErrLabelDuplicate  = errors.New(f("label duplicated"))
	ErrOpcodeMissing   = errors.New(f("opcode missing"))
	ErrOpcodeInvalid   = errors.New(f("opcode invalid"))
	ErrOperandCount    = errors.New(f("operand count mismatch"))
	ErrRegisterInvalid = errors.New(f("register invalid"))
)

// ErrOpcode reports a fetched byte with no dispatch entry.
type ErrOpcode Op

func (eo ErrOpcode) Error() string {
	return f("unknown instruction 0x%02x", byte(eo))
}

func (eo ErrOpcode) Is(err error) (ok bool) {
	_, ok = err.(ErrOpcode)
	return
}

// ErrRegister reports an operand byte naming a register outside R0-R7.
type ErrRegister byte

func (er ErrRegister) Error() string {
	return f("register r%d out of range", byte(er))
}

func (er ErrRegister) Is(err error) (ok bool) {
	_, ok = err.(ErrRegister)
	return
}

// ErrSyntax locates an assembler error in its source.
type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}
