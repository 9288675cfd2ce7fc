package cpu

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func doParse(t *testing.T, lines ...string) (prog *Program, err error) {
	asm := &Assembler{}
	prog, err = asm.Parse(strings.NewReader(strings.Join(lines, "\n")))
	return
}

func TestAssembler_Simple(t *testing.T) {
	assert := assert.New(t)

	prog, err := doParse(t,
		"ldi r0 8",
		"ldi r1 9",
		"mul r0 r1",
		"prn r0",
		"hlt",
	)
	assert.NoError(err)
	assert.Equal([]byte{
		byte(OP_LDI), 0, 8,
		byte(OP_LDI), 1, 9,
		byte(OP_MUL), 0, 1,
		byte(OP_PRN), 0,
		byte(OP_HLT),
	}, prog.Bytes)
}

func TestAssembler_Comments(t *testing.T) {
	assert := assert.New(t)

	prog, err := doParse(t,
		"; a leading comment",
		"ldi r0 1 ; trailing",
		"hlt # also a comment",
		"",
	)
	assert.NoError(err)
	assert.Equal([]byte{byte(OP_LDI), 0, 1, byte(OP_HLT)}, prog.Bytes)
	assert.Equal([]int{2, 2, 2, 3}, prog.Lines)
}

func TestAssembler_Labels(t *testing.T) {
	assert := assert.New(t)

	prog, err := doParse(t,
		"ldi r1 subroutine",
		"call r1",
		"hlt",
		"subroutine:",
		"inc r0",
		"ret",
	)
	assert.NoError(err)
	// The label resolves to the address after LDI+CALL+HLT.
	assert.Equal(byte(6), prog.Bytes[2])
	assert.Equal(byte(OP_INC), prog.Bytes[6])
}

func TestAssembler_LabelForwardAndBack(t *testing.T) {
	assert := assert.New(t)

	prog, err := doParse(t,
		"loop: ldi r0 loop",
		"ldi r1 done",
		"done: hlt",
	)
	assert.NoError(err)
	assert.Equal(byte(0), prog.Bytes[2])
	assert.Equal(byte(6), prog.Bytes[5])
}

func TestAssembler_Equates(t *testing.T) {
	assert := assert.New(t)

	prog, err := doParse(t,
		".equ COUNT 3",
		".equ DEST r2",
		"ldi DEST COUNT",
		"hlt",
	)
	assert.NoError(err)
	assert.Equal([]byte{byte(OP_LDI), 2, 3, byte(OP_HLT)}, prog.Bytes)
}

func TestAssembler_Expressions(t *testing.T) {
	assert := assert.New(t)

	prog, err := doParse(t,
		".equ COUNT 3",
		"ldi r0 $(COUNT * 2 + 1)",
		"ldi r1 $(RAM_SIZE - 1)",
		"ldi r2 $(1 << 5)",
		"hlt",
	)
	assert.NoError(err)
	assert.Equal(byte(7), prog.Bytes[2])
	assert.Equal(byte(255), prog.Bytes[5])
	assert.Equal(byte(32), prog.Bytes[8])
}

func TestAssembler_Characters(t *testing.T) {
	assert := assert.New(t)

	prog, err := doParse(t,
		"ldi r0 'A'",
		"ldi r1 '\\n'",
		"hlt",
	)
	assert.NoError(err)
	assert.Equal(byte('A'), prog.Bytes[2])
	assert.Equal(byte('\n'), prog.Bytes[5])
}

func TestAssembler_RegisterAliases(t *testing.T) {
	assert := assert.New(t)

	prog, err := doParse(t,
		"push sp",
		"push im",
		"push is",
		"hlt",
	)
	assert.NoError(err)
	assert.Equal(byte(REG_SP), prog.Bytes[1])
	assert.Equal(byte(REG_IM), prog.Bytes[3])
	assert.Equal(byte(REG_IS), prog.Bytes[5])
}

func TestAssembler_Byte(t *testing.T) {
	assert := assert.New(t)

	prog, err := doParse(t,
		"hlt",
		"table: .byte 1 2 0xFF",
	)
	assert.NoError(err)
	assert.Equal([]byte{byte(OP_HLT), 1, 2, 255}, prog.Bytes)
}

func TestAssembler_Predefine(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	asm.Predefine("MAGIC", "42")

	prog, err := asm.Parse(strings.NewReader("ldi r0 $(MAGIC)\nhlt\n"))
	assert.NoError(err)
	assert.Equal(byte(42), prog.Bytes[2])
}

func TestAssembler_Errors(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name string
		line string
		want error
	}){
		{"opcode", "frob r0", ErrOpcodeInvalid},
		{"operands", "ldi r0", ErrOperandCount},
		{"register", "push r9", ErrRegisterInvalid},
		{"equ", ".equ ONLY", ErrEquateSyntax},
		{"byte", ".byte", ErrByteSyntax},
	}

	for _, entry := range table {
		_, err := doParse(t, entry.line)
		assert.ErrorIs(err, entry.want, entry.name)

		var syntax *ErrSyntax
		assert.ErrorAs(err, &syntax, entry.name)
		assert.Equal(1, syntax.LineNo, entry.name)
	}
}

func TestAssembler_ErrorDuplicateLabel(t *testing.T) {
	assert := assert.New(t)

	_, err := doParse(t,
		"here: nop",
		"here: hlt",
	)
	assert.ErrorIs(err, ErrLabelDuplicate)
}

func TestAssembler_ErrorDuplicateEquate(t *testing.T) {
	assert := assert.New(t)

	_, err := doParse(t,
		".equ A 1",
		".equ A 2",
	)
	assert.ErrorIs(err, ErrEquateDuplicate)
}

func TestAssembler_ErrorMissingLabel(t *testing.T) {
	assert := assert.New(t)

	_, err := doParse(t,
		"ldi r0 nowhere",
		"hlt",
	)
	assert.Error(err)

	var syntax *ErrSyntax
	assert.ErrorAs(err, &syntax)
	assert.Equal(1, syntax.LineNo)
	assert.ErrorContains(err, "nowhere")
}

func TestAssembler_ListingRoundTrip(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	prog, err := asm.Parse(strings.NewReader(strings.Join([]string{
		"ldi r0 'H'",
		"pra r0",
		"hlt",
	}, "\n")))
	assert.NoError(err)

	listing := &bytes.Buffer{}
	err = asm.Listing(listing)
	assert.NoError(err)

	reload, err := LoadProgram(listing)
	assert.NoError(err)
	assert.Equal(prog.Bytes, reload.Bytes)
}
