package cpu

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadProgram(t *testing.T) {
	assert := assert.New(t)

	source := strings.Join([]string{
		"# print the number 8",
		"",
		"10000010 # LDI R0,8",
		"00000000",
		"00001000",
		"  01000111   # PRN R0",
		"00000000",
		"00000001 # HLT",
	}, "\n")

	prog, err := LoadProgram(strings.NewReader(source))
	assert.NoError(err)
	assert.Equal([]byte{
		byte(OP_LDI), 0, 8,
		byte(OP_PRN), 0,
		byte(OP_HLT),
	}, prog.Bytes)

	// Comment and blank lines consume no address.
	assert.Equal([]int{3, 4, 5, 6, 7, 8}, prog.Lines)
}

func TestLoadProgram_Skipped(t *testing.T) {
	assert := assert.New(t)

	source := strings.Join([]string{
		"00000001",
		"2",         // not base 2
		"banana",    // not a number
		"111111111", // does not fit a byte
		"00000000",
	}, "\n")

	prog, err := LoadProgram(strings.NewReader(source))
	assert.NoError(err)
	assert.Equal([]byte{1, 0}, prog.Bytes)
	assert.Equal([]int{1, 5}, prog.Lines)
}

func TestProgram_Load(t *testing.T) {
	assert := assert.New(t)

	prog := &Program{Bytes: []byte{byte(OP_HLT)}}

	cpu := NewCpu()
	err := prog.Load(cpu)
	assert.NoError(err)
	assert.Equal(byte(OP_HLT), cpu.Ram[0])
}

func TestProgram_Load_TooLarge(t *testing.T) {
	assert := assert.New(t)

	prog := &Program{Bytes: make([]byte, RAM_SIZE+1)}

	cpu := NewCpu()
	err := prog.Load(cpu)
	assert.ErrorIs(err, ErrProgramTooLarge)
}

func TestProgram_Debug(t *testing.T) {
	assert := assert.New(t)

	prog := &Program{
		Bytes: []byte{byte(OP_PRN), 0},
		Lines: []int{4, 5},
	}

	assert.Equal(4, prog.Debug(0))
	assert.Equal(5, prog.Debug(1))
	assert.Equal(0, prog.Debug(2))
	assert.Equal(0, prog.Debug(-1))
}

func TestProgram_Listing_RoundTrip(t *testing.T) {
	assert := assert.New(t)

	prog := &Program{Bytes: []byte{byte(OP_LDI), 0, 42, byte(OP_HLT)}}

	listing := &bytes.Buffer{}
	err := prog.Listing(listing)
	assert.NoError(err)

	reload, err := LoadProgram(listing)
	assert.NoError(err)
	assert.Equal(prog.Bytes, reload.Bytes)
}
