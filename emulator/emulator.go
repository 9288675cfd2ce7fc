// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"fmt"
	"iter"
	"maps"
	"os"

	"github.com/ezrec/ls8/cpu"
	"github.com/ezrec/ls8/internal"
	"github.com/ezrec/ls8/io"
)

var _emulator_defines = map[string]string{
	"CONSOLE_NUMERIC":   "prn",
	"CONSOLE_CHARACTER": "pra",
}

// Emulator state. CPU + console + program listing.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the currently loaded program.

	Console io.Console // Console device for the print instructions.
}

// NewEmulator creates a new emulator with the console attached to
// standard output.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu:     cpu.NewCpu(),
		Program: &cpu.Program{},
	}

	emu.Console.Output = os.Stdout
	emu.Cpu.Console = &emu.Console

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_emulator_defines),
		emu.Cpu.Defines(),
	)
}

// LoadFile reads and parses a binary-text program file. A missing or
// unreadable file is an ErrLoad; re-invoking with a valid path is the
// only recovery.
func (emu *Emulator) LoadFile(path string) (err error) {
	inf, err := os.Open(path)
	if err != nil {
		err = &ErrLoad{Path: path, Err: err}
		return
	}
	defer inf.Close()

	prog, err := cpu.LoadProgram(inf)
	if err != nil {
		err = &ErrLoad{Path: path, Err: err}
		return
	}

	emu.Program = prog
	return
}

// Reset resets the CPU and loads the program into memory at address 0.
func (emu *Emulator) Reset() (err error) {
	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Reset()

	err = emu.Program.Load(emu.Cpu)
	return
}

// LineNo returns the source line number of the instruction at the
// program counter, or 0 past the end of the program.
func (emu *Emulator) LineNo() int {
	return emu.Program.Debug(emu.Cpu.Pc)
}

// Tick performs a single instruction cycle. Fatal CPU errors are
// wrapped with the source line of the failing instruction.
func (emu *Emulator) Tick() (done bool, err error) {
	emu.Cpu.Verbose = emu.Verbose

	lineno := emu.LineNo()
	defer func() {
		if err != nil {
			err = &ErrRuntime{LineNo: lineno, Err: err}
		}
	}()

	err = emu.Cpu.Tick()
	if err != nil {
		return
	}

	done = emu.Cpu.Halted()
	return
}

// Run executes the loaded program until HLT or a fatal error.
func (emu *Emulator) Run() (err error) {
	for done, err := emu.Tick(); !done; done, err = emu.Tick() {
		if err != nil {
			return err
		}
	}

	return
}

// String returns the current machine state trace line.
func (emu *Emulator) String() string {
	return fmt.Sprintf("TRACE: %v", emu.Cpu)
}
