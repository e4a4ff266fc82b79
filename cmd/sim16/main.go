// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/ezrec/sim16/emulator"
)

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), "Usage: %v [-v] [-c file.s] [-o out.bin] [-s] [image.bin]\n", os.Args[0])
	flag.PrintDefaults()
}

func main() {
	var compile string
	var output string
	var save bool
	var verbose bool

	flag.StringVar(&compile, "c", "", ".s file to assemble")
	flag.StringVar(&output, "o", "", "Write the program image to a file")
	flag.BoolVar(&save, "s", false, "Save the program image, do not execute")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.Usage = usage

	flag.Parse()

	wanted := 1
	if len(compile) != 0 {
		wanted = 0
	}
	if flag.NArg() != wanted {
		flag.Usage()
		os.Exit(1)
	}

	emu := emulator.NewEmulator()
	emu.Verbose = verbose

	if len(compile) != 0 {
		// Assemble a new program.
		inf, err := os.Open(compile)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		defer inf.Close()

		err = emu.Assemble(inf)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
	} else {
		image := flag.Arg(0)
		err := emu.LoadFile(image)
		if err != nil {
			log.Fatalf("%v: %v", image, err)
		}
	}

	if len(output) != 0 {
		ouf, err := os.Create(output)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
		err = emu.Save(ouf)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
		err = ouf.Close()
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
	}

	if save {
		return
	}

	err := emu.Reset()
	if err != nil {
		log.Fatalf("%v", err)
	}

	if verbose {
		emu.Trace = os.Stderr
	}

	fmt.Println("--- simulation start ---")
	emu.Run()
	fmt.Println("--- simulation end ---")
}
