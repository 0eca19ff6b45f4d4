// Copyright (c) 2018 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stackjit

import (
	"github.com/docker/go-units"
	"github.com/tliron/commonlog"

	"github.com/tsavola/stackjit/buffer"
	"github.com/tsavola/stackjit/bytecode"
	"github.com/tsavola/stackjit/internal/code"
	"github.com/tsavola/stackjit/internal/codegen"
	"github.com/tsavola/stackjit/internal/gen"
	"github.com/tsavola/stackjit/internal/isa/amd64"
	"github.com/tsavola/stackjit/internal/pan"
	"github.com/tsavola/stackjit/object"
)

var log = commonlog.GetLogger("stackjit")

// DefaultOutputFD is the standard output.
const DefaultOutputFD = 1

// Config for a single translation.  Zero values are replaced with effective
// defaults during translation.
type Config struct {
	Text     code.Buffer // Defaults to a buffer limited to TextSize.
	OutputFD int         // File descriptor for PRINT output; standard output by default.
}

// TextSize is the maximum size of machine code generated for a program of
// the given length.
func TextSize(programLen int) int {
	return amd64.MaxTextSize(programLen)
}

// Compile a bytecode program into machine code.  The program is validated
// during translation: an unknown opcode, a truncated instruction, an invalid
// register index or an invalid branch target is reported as a ProgramError.
//
// The code is position-independent.
func Compile(config *Config, prog bytecode.Program) (obj *object.Object, err error) {
	if config == nil {
		config = new(Config)
	}

	if err = prog.CheckSize(); err != nil {
		return
	}

	text := config.Text
	if text == nil {
		text = buffer.NewLimited(make([]byte, 0, TextSize(len(prog))), TextSize(len(prog)))
	}

	outputFD := config.OutputFD
	if outputFD == 0 {
		outputFD = DefaultOutputFD
	}

	defer func() {
		if err = pan.Error(recover()); err != nil {
			obj = nil
		}
	}()

	p := &gen.Prog{
		Program:  prog,
		Text:     code.Buf{Buffer: text, Addr: int32(len(text.Bytes()))},
		OutputFD: int32(outputFD),
	}

	codegen.GenProgram(p)

	obj = &object.Object{
		Text:      text.Bytes(),
		EntryAddr: object.TextAddr(p.EntryAddr),
		BodyAddr:  object.TextAddr(p.BodyAddr),
		Offsets:   p.Offsets,
	}

	log.Debugf("compiled %s program into %s of machine code", units.BytesSize(float64(len(prog))), units.BytesSize(float64(len(obj.Text))))
	return
}
