package cpu

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/ls8/io"
)

func FuzzCpu(f *testing.F) {
	for op := range opOperands {
		f.Add(byte(op), byte(0), byte(1))
		f.Add(byte(op), byte(7), byte(255))
	}
	f.Add(byte(0xFF), byte(0), byte(0))
	f.Add(byte(OP_IRET), byte(0), byte(0))

	f.Fuzz(func(t *testing.T, op byte, a byte, b byte) {
		assert := assert.New(t)

		cpu := NewCpu()
		cpu.Console = &io.Console{Output: &bytes.Buffer{}}
		cpu.Ram[0] = op
		cpu.Ram[1] = a
		cpu.Ram[2] = b
		cpu.Register[0] = 0x50
		cpu.Register[1] = 0x51
		cpu.Register[2] = 0x52
		cpu.Register[3] = 0x53

		err := cpu.Tick()
		if err != nil {
			// The only fatal kinds reachable from program bytes.
			known := errors.Is(err, ErrOpcode(0)) ||
				errors.Is(err, ErrRegister(0))
			assert.True(known, "%v", err)
		}

		assert.GreaterOrEqual(cpu.Pc, 0)
		assert.Less(cpu.Pc, RAM_SIZE)

		switch cpu.Fl {
		case FLAG_NONE, FLAG_EQUAL, FLAG_GREATER, FLAG_LESS:
		default:
			t.Fatalf("combined flag value %v", cpu.Fl)
		}
	})
}
