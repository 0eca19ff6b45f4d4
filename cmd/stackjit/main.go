// Copyright (c) 2018 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Program stackjit translates and runs a bytecode program.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/docker/go-units"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/tsavola/stackjit"
	"github.com/tsavola/stackjit/bytecode"
	"github.com/tsavola/stackjit/errors"
	"github.com/tsavola/stackjit/interp"
	"github.com/tsavola/stackjit/loader"
	"github.com/tsavola/stackjit/object"
	"github.com/tsavola/stackjit/object/debug/dump"
	"github.com/tsavola/stackjit/object/file/elf"
)

func main() {
	log.SetFlags(0)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] programfile\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}

	c := defaultConfig()

	var configFile string

	flag.BoolVar(&c.Verbose, "v", c.Verbose, "verbose logging")
	flag.BoolVar(&c.Assembly, "S", c.Assembly, "program file is assembly text")
	flag.BoolVar(&c.List, "d", c.List, "print bytecode listing to stdout")
	flag.BoolVar(&c.DumpText, "dumptext", c.DumpText, "disassemble the generated code to stdout instead of running it")
	flag.StringVar(&c.ELF, "elf", c.ELF, "write a standalone executable instead of running the program")
	flag.BoolVar(&c.Interp, "interp", c.Interp, "run the reference interpreter instead of generated code")
	flag.IntVar(&c.StepLimit, "steplimit", c.StepLimit, "interpreter step limit (0 is unlimited)")
	flag.StringVar(&c.StackSize, "stacksize", c.StackSize, "native stack size")
	flag.StringVar(&configFile, "config", "", "TOML file with option defaults")
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	filename := flag.Arg(0)

	if configFile != "" {
		if err := c.merge(configFile, explicitFlags()); err != nil {
			log.Fatal(err)
		}
	}

	if c.Verbose {
		commonlog.Configure(2, nil)
	} else {
		commonlog.Configure(-1, nil)
	}

	stackSize, err := units.RAMInBytes(c.StackSize)
	if err != nil || stackSize <= 0 {
		log.Fatalf("invalid stack size: %q", c.StackSize)
	}

	prog, err := readProgram(filename, c.Assembly)
	if err != nil {
		fatal(filename, err)
	}

	if c.List {
		if err := bytecode.Fprint(os.Stdout, prog); err != nil {
			fatal(filename, err)
		}
	}

	switch {
	case c.DumpText:
		obj, err := stackjit.Compile(nil, prog)
		if err != nil {
			fatal(filename, err)
		}

		if err := dump.Text(os.Stdout, obj, prog); err != nil {
			log.Fatal(err)
		}

	case c.ELF != "":
		obj, err := stackjit.Compile(nil, prog)
		if err != nil {
			fatal(filename, err)
		}

		if err := writeELF(c.ELF, obj); err != nil {
			log.Fatal(err)
		}

	case c.Interp:
		_, err := interp.Run(prog, &interp.Config{
			Output:    os.Stdout,
			StepLimit: c.StepLimit,
			MaxDepth:  int(stackSize) / 8,
		})
		if err != nil {
			fatal(filename, err)
		}

	default:
		err := stackjit.Run(prog, &stackjit.RunConfig{
			StackSize: int(stackSize),
		})
		if err != nil {
			fatal(filename, err)
		}
	}
}

func readProgram(filename string, assembly bool) (bytecode.Program, error) {
	if !assembly {
		return loader.Load(filename)
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	return bytecode.Parse(bytes.NewReader(data))
}

func writeELF(filename string, obj *object.Object) (err error) {
	f, err := os.OpenFile(filename, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0755)
	if err != nil {
		return
	}
	defer func() {
		if e := f.Close(); err == nil {
			err = e
		}
	}()

	_, err = elf.FromObject(obj).WriteTo(f)
	return
}

func fatal(filename string, err error) {
	if errors.ProgramError(err) {
		log.Fatalf("%s: invalid program: %v", filename, err)
	}
	log.Fatal(err)
}
