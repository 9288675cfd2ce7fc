package emulator

import (
	"github.com/ezrec/ls8/translate"
)

var f = translate.From

// ErrLoad indicates a program source that could not be read or parsed.
// It is the recoverable error kind: the caller may retry with another
// path.
type ErrLoad struct {
	Path string
	Err  error
}

func (err *ErrLoad) Error() string {
	return f("%v not found", err.Path)
}

func (err *ErrLoad) Unwrap() error {
	return err.Err
}

// ErrRuntime indicates the source location of a fatal execution error.
// It is not recoverable within the same machine instance.
type ErrRuntime struct {
	LineNo int
	Err    error
}

func (err *ErrRuntime) Error() string {
	return f("line %d %v", err.LineNo, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
