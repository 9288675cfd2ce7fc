package cpu

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Program is an LS-8 machine image together with the source line each
// byte came from.
type Program struct {
	Bytes []byte // Machine code, loaded from address 0.
	Lines []int  // Source line number per byte, parallel to Bytes.
}

// LoadProgram parses the binary-text program format: one base-2 byte
// per line, with everything from the first '#' ignored and surrounding
// whitespace trimmed. Lines that do not parse as a byte (blank lines,
// comment-only lines, values that do not fit in 8 bits) are skipped
// without consuming an address.
func LoadProgram(r io.Reader) (prog *Program, err error) {
	prog = &Program{}

	scanner := bufio.NewScanner(r)
	var lineno int
	for scanner.Scan() {
		lineno += 1

		text, _, _ := strings.Cut(scanner.Text(), "#")
		text = strings.TrimSpace(text)

		value, perr := strconv.ParseUint(text, 2, 8)
		if perr != nil {
			continue
		}

		prog.Bytes = append(prog.Bytes, byte(value))
		prog.Lines = append(prog.Lines, lineno)
	}
	err = scanner.Err()

	return
}

// Load copies the program into CPU memory, starting at address 0.
func (prog *Program) Load(cpu *Cpu) (err error) {
	if len(prog.Bytes) > RAM_SIZE {
		err = ErrProgramTooLarge
		return
	}

	copy(cpu.Ram[:], prog.Bytes)
	return
}

// Debug returns the source line number for a memory address, or 0 when
// the address is past the loaded program.
func (prog *Program) Debug(addr int) (lineno int) {
	if addr >= 0 && addr < len(prog.Lines) {
		lineno = prog.Lines[addr]
	}

	return
}

// Listing writes the program in the binary-text format LoadProgram
// reads, one byte per line with its address as a comment.
func (prog *Program) Listing(w io.Writer) (err error) {
	for addr, value := range prog.Bytes {
		_, err = fmt.Fprintf(w, "%08b # %02X\n", value, addr)
		if err != nil {
			return
		}
	}

	return
}
