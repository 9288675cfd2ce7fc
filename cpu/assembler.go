// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO":   "0",
	"RAM_SIZE": fmt.Sprintf("%v", RAM_SIZE),
	"SP_INIT":  fmt.Sprintf("%v", SP_INIT),
	"REG_IM":   fmt.Sprintf("%v", REG_IM),
	"REG_IS":   fmt.Sprintf("%v", REG_IS),
	"REG_SP":   fmt.Sprintf("%v", REG_SP),
}

// mnemonicMap maps assembly mnemonics to opcodes.
var mnemonicMap = map[string]Op{
	"nop":  OP_NOP,
	"hlt":  OP_HLT,
	"ret":  OP_RET,
	"push": OP_PUSH,
	"pop":  OP_POP,
	"prn":  OP_PRN,
	"pra":  OP_PRA,
	"call": OP_CALL,
	"jmp":  OP_JMP,
	"jeq":  OP_JEQ,
	"jne":  OP_JNE,
	"inc":  OP_INC,
	"dec":  OP_DEC,
	"not":  OP_NOT,
	"ldi":  OP_LDI,
	"ld":   OP_LD,
	"st":   OP_ST,
	"add":  OP_ADD,
	"sub":  OP_SUB,
	"mul":  OP_MUL,
	"cmp":  OP_CMP,
	"and":  OP_AND,
	"or":   OP_OR,
	"xor":  OP_XOR,
	"shl":  OP_SHL,
	"shr":  OP_SHR,
}

// registerMap maps register names to register indexes, including the
// reserved-role aliases.
var registerMap = map[string]byte{
	"r0": 0,
	"r1": 1,
	"r2": 2,
	"r3": 3,
	"r4": 4,
	"r5": 5,
	"r6": 6,
	"r7": 7,
	"im": REG_IM,
	"is": REG_IS,
	"sp": REG_SP,
}

// immediateSecond marks the opcodes whose second operand is a raw byte
// rather than a register index.
var immediateSecond = map[Op]bool{
	OP_LDI: true,
	OP_LD:  true,
}

// Opcode represents a line of assembled code with its source location
// and generated bytes.
type Opcode struct {
	LineNo    int      // Source line number.
	Addr      int      // Address of the first assembled byte.
	Words     []string // Source tokens.
	Bytes     []byte   // Assembled bytes.
	LinkLabel string   // Label patched into Bytes[LinkIndex] after parsing.
	LinkIndex int
}

// Assembler is a line-oriented assembler for the LS-8 instruction set.
type Assembler struct {
	Verbose bool     // If set, verbosely logs the assembler actions.
	Opcode  []Opcode // List of generated opcodes.

	predefine map[string]string // Predefines
	Label     map[string]int    // Map of jump labels to addresses.
	Equate    map[string]string // Map of equates.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// valueOf returns the byte value of a simple word.
func (asm *Assembler) valueOf(word string) (value byte, err error) {
	v64, perr := strconv.ParseInt(word, 0, 16)
	if perr != nil || v64 < -128 || v64 > 255 {
		err = ErrParseNumber(word)
		return
	}

	value = byte(v64)
	return
}

// parenEval does compile-time $(...) evaluations.
func (asm *Assembler) parenEval(expr string) (value uint32, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		v64, verr := strconv.ParseInt(str, 0, 64)
		if verr != nil {
			// Ignore non-integer equates. They may be registers
			// or something else.
			continue
		}
		pred[key] = starlark.MakeInt(int(v64))
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value = uint32(st_int64)
	return
}

var charRe = regexp.MustCompile(`'\\?[^']'`)
var exprRe = regexp.MustCompile(`\$\([^\$]*\)`)

// parseLine expands a source line into words: character and $()
// evaluations, equate substitution, and label definitions.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	// Do 'x' evaluations
	line = charRe.ReplaceAllStringFunc(line, func(word string) string {
		str := word[1 : len(word)-1]
		if str[0] == '\\' {
			switch str[1:] {
			case "\\":
				str = "\\"
			case "n":
				str = "\n"
			case "r":
				str = "\r"
			case "0":
				str = "\000"
			default:
				return word
			}
		} else if len(str) != 1 {
			return word
		}
		return fmt.Sprintf("%v", str[0])
	})

	// Do $() evaluations
	line = exprRe.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%#v", value)
	})
	if err != nil {
		return
	}

	words = strings.Fields(line)
	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if words[0] == ".equ" {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		words = words[:0]
		return
	}

	for n, word := range words {
		equate, ok := asm.Equate[word]
		if ok {
			words[n] = equate
		}
	}

	for strings.HasSuffix(words[0], ":") {
		label := words[0][:len(words[0])-1]
		_, ok := asm.Label[label]
		if ok {
			err = ErrLabelDuplicate
			return
		}

		if asm.Label == nil {
			asm.Label = make(map[string]int, 16)
		}
		asm.Label[label] = asm.currentAddr()
		words = words[1:]
		if len(words) == 0 {
			return
		}
	}

	return
}

// parseWords assembles one instruction or data directive.
func (asm *Assembler) parseWords(words []string, lineno int) (err error) {
	if len(words) == 0 {
		return
	}

	opcode := Opcode{
		LineNo: lineno,
		Addr:   asm.currentAddr(),
		Words:  words,
	}

	// .byte VALUE...
	if words[0] == ".byte" {
		if len(words) < 2 {
			err = ErrByteSyntax
			return
		}
		for _, word := range words[1:] {
			var value byte
			value, err = asm.valueOf(word)
			if err != nil {
				return
			}
			opcode.Bytes = append(opcode.Bytes, value)
		}
		asm.Opcode = append(asm.Opcode, opcode)
		return
	}

	op, ok := mnemonicMap[strings.ToLower(words[0])]
	if !ok {
		err = ErrOpcodeInvalid
		return
	}

	count, _ := op.Operands()
	if len(words)-1 != count {
		err = ErrOperandCount
		return
	}

	opcode.Bytes = append(opcode.Bytes, byte(op))

	for n, word := range words[1:] {
		immediate := n == 1 && immediateSecond[op]
		if !immediate {
			reg, ok := registerMap[strings.ToLower(word)]
			if !ok {
				err = ErrRegisterInvalid
				return
			}
			opcode.Bytes = append(opcode.Bytes, reg)
			continue
		}

		value, verr := asm.valueOf(word)
		if verr != nil {
			// Not a number: a label reference, patched after
			// the parse pass.
			opcode.LinkLabel = word
			opcode.LinkIndex = len(opcode.Bytes)
			value = 0
		}
		opcode.Bytes = append(opcode.Bytes, value)
	}

	asm.Opcode = append(asm.Opcode, opcode)
	return
}

// currentAddr gets the address of the next assembled byte.
func (asm *Assembler) currentAddr() int {
	if len(asm.Opcode) == 0 {
		return 0
	}

	last := asm.Opcode[len(asm.Opcode)-1]

	return last.Addr + len(last.Bytes)
}

// Parse assembles an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	clear(asm.Label)
	asm.Opcode = asm.Opcode[:0]
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v", lineno, text)
		}

		line, _, _ = strings.Cut(text, ";")
		line, _, _ = strings.Cut(line, "#")
		line = strings.TrimSpace(line)

		var words []string
		words, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}

		err = asm.parseWords(words, lineno)
		if err != nil {
			return
		}
	}
	err = scanner.Err()
	if err != nil {
		return
	}

	// Patch label references now that every label has an address.
	for n := range asm.Opcode {
		opcode := &asm.Opcode[n]
		if opcode.LinkLabel == "" {
			continue
		}
		addr, ok := asm.Label[opcode.LinkLabel]
		if !ok {
			lineno = opcode.LineNo
			line = strings.Join(opcode.Words, " ")
			err = ErrLabelMissing(opcode.LinkLabel)
			return
		}
		opcode.Bytes[opcode.LinkIndex] = byte(addr)
	}

	prog = &Program{}
	for _, opcode := range asm.Opcode {
		for range opcode.Bytes {
			prog.Lines = append(prog.Lines, opcode.LineNo)
		}
		prog.Bytes = append(prog.Bytes, opcode.Bytes...)
	}
	if len(prog.Bytes) > RAM_SIZE {
		prog = nil
		err = ErrProgramTooLarge
		return
	}

	return
}

// Listing writes the assembled program in the binary-text format the
// loader reads, annotated with the source of each instruction.
func (asm *Assembler) Listing(w io.Writer) (err error) {
	for _, opcode := range asm.Opcode {
		for n, value := range opcode.Bytes {
			var note string
			if n == 0 {
				note = fmt.Sprintf("  # %02X: %v", opcode.Addr, strings.Join(opcode.Words, " "))
			}
			_, err = fmt.Fprintf(w, "%08b%v\n", value, note)
			if err != nil {
				return
			}
		}
	}

	return
}
