// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/ezrec/ls8/cpu"
	"github.com/ezrec/ls8/emulator"
)

func main() {
	var compile string
	var save bool
	var verbose bool

	flag.StringVar(&compile, "c", "", ".asm file to assemble")
	flag.BoolVar(&save, "s", false, "Save assembled program, do not execute")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %v [-v] [-c source.asm [-s]] <program.ls8>\n", os.Args[0])
		os.Exit(1)
	}
	program := flag.Arg(0)

	emu := emulator.NewEmulator()
	emu.Verbose = verbose

	if len(compile) != 0 {
		// Assemble a new program and save its listing.
		inf, err := os.Open(compile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v: %v not found\n", os.Args[0], compile)
			os.Exit(2)
		}

		asm := &cpu.Assembler{Verbose: verbose}
		for key, value := range emu.Defines() {
			asm.Predefine(key, value)
		}

		prog, err := asm.Parse(inf)
		inf.Close()
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}

		ouf, err := os.Create(program)
		if err != nil {
			log.Fatalf("%v: %v", program, err)
		}
		err = asm.Listing(ouf)
		ouf.Close()
		if err != nil {
			log.Fatalf("%v: %v", program, err)
		}

		emu.Program = prog
		if save {
			return
		}
	} else {
		err := emu.LoadFile(program)
		if err != nil {
			var load *emulator.ErrLoad
			if errors.As(err, &load) {
				fmt.Fprintf(os.Stderr, "%v: %v\n", os.Args[0], err)
				os.Exit(2)
			}
			log.Fatalf("%v: %v", program, err)
		}
	}

	err := emu.Reset()
	if err != nil {
		log.Fatalf("%v: %v", program, err)
	}

	err = emu.Run()
	if err != nil {
		log.Fatalf("%v: %v", program, err)
	}
}
