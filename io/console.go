// Package io provides the device models attached to the LS-8 emulator.
package io

import (
	"fmt"
	"io"
)

// Device is the output interface the CPU prints through.
type Device interface {
	// Numeric writes a register value as a decimal line.
	Numeric(value byte) error
	// Character writes the character whose code point is the register value.
	Character(value byte) error
}

// Console writes CPU output to a byte stream.
type Console struct {
	Output io.Writer
}

// Numeric writes the decimal value followed by a newline.
func (con *Console) Numeric(value byte) (err error) {
	_, err = fmt.Fprintf(con.Output, "%d\n", value)
	return
}

// Character writes the single character whose code point equals value.
func (con *Console) Character(value byte) (err error) {
	_, err = fmt.Fprintf(con.Output, "%c", rune(value))
	return
}
