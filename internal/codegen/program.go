// Copyright (c) 2016 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package codegen translates bytecode programs to machine code.
package codegen

import (
	"fmt"

	"github.com/tsavola/stackjit/bytecode"
	"github.com/tsavola/stackjit/internal/gen"
	"github.com/tsavola/stackjit/internal/isa/amd64"
	"github.com/tsavola/stackjit/internal/pan"
	"github.com/tsavola/stackjit/object"
)

// GenProgram lays out the runtime routines, the prologue, the translated body
// and the epilogue, and resolves the branches.  Program errors and buffer
// size errors are raised with pan.
func GenProgram(p *gen.Prog) {
	debug := debugging()

	p.Offsets = object.MakeOffsetTable(len(p.Program))

	p.PrintRoutine.SetAddr(amd64.PrintRoutine(&p.Text, p.OutputFD))

	p.EntryAddr = p.Text.Addr
	amd64.Prologue(&p.Text)

	p.BodyAddr = p.Text.Addr
	genBody(p, debug)
	p.Offsets[len(p.Program)] = p.Pos()
	amd64.Epilogue(&p.Text)

	numRelocs := len(p.Relocs)
	resolveRelocs(p)

	if debug {
		log.Debugf("translated %d program bytes to %d text bytes (entry %#x, body %#x, %d relocations)", len(p.Program), p.Text.Addr, p.EntryAddr, p.BodyAddr, numRelocs)
	}
}

func genBody(p *gen.Prog, debug bool) {
	for pos := 0; pos < len(p.Program); {
		insn, err := bytecode.Decode(p.Program, pos)
		pan.Check(err)

		p.Offsets[pos] = p.Pos()
		start := p.Text.Addr

		genInsn(p, insn)

		size := p.Text.Addr - start
		if size != amd64.TemplateSizes[insn.Op] {
			panic(fmt.Errorf("%s template generated %d bytes (should be: %d)", insn.Op, size, amd64.TemplateSizes[insn.Op]))
		}

		if debug {
			log.Debugf("%04x  %-16s -> %#x", pos, insn, start)
		}

		pos = insn.Next()
	}
}
