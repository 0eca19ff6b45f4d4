// Copyright (c) 2016 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package amd64 contains the x86-64 instruction templates of the bytecode
// operations, the frame which emulates the register file, and the runtime
// routines called by the generated code.
package amd64

import (
	"github.com/tsavola/stackjit/bytecode"
	"github.com/tsavola/stackjit/internal/isa/amd64/in"
)

const (
	RegResult  = in.RegAX // rax: dividend low, system call number
	RegScratch = in.RegCX // rcx: divisor, branch condition
	RegOperand = in.RegDX // rdx: right-hand operand, dividend high
	RegStack   = in.RegSP // rsp
	RegFrame   = in.RegBP // rbp: frame anchor of the register file
	RegCursor  = in.RegSI // rsi: print routine output cursor
	RegArg     = in.RegDI // rdi: print routine argument
	RegSign    = in.RegR8 // r8: print routine sign
)

const (
	// SlotSize is the width of an operand stack slot or an emulated register.
	SlotSize = 8

	// MaxExpansion bounds the native size of an instruction per bytecode
	// byte.  It is used to size the text region before translation.
	MaxExpansion = 12
)

// TemplateSizes are the native sizes of the operation templates.
var TemplateSizes = [bytecode.NumOps]int32{
	bytecode.NOP:   1,
	bytecode.PUSH:  5,
	bytecode.POP:   1,
	bytecode.LOAD:  3,
	bytecode.STORE: 3,
	bytecode.JMP:   5,
	bytecode.JZ:    9,
	bytecode.JNZ:   9,
	bytecode.ADD:   8,
	bytecode.SUB:   8,
	bytecode.MUL:   9,
	bytecode.DIV:   9,
	bytecode.PRINT: 6,
	bytecode.STOP:  5,
}

const (
	PrologueSize = 1 + 3 + bytecode.NumRegs*2
	EpilogueSize = bytecode.NumRegs + 1 + 1

	// RoutinesSize is the aligned size of the runtime routines which precede
	// the entry point.
	RoutinesSize = 96

	// FixedTextSize is the text size excluding the translated body.
	FixedTextSize = RoutinesSize + PrologueSize + EpilogueSize
)

// MaxTextSize for a program of the given length.
func MaxTextSize(programLen int) int {
	return FixedTextSize + programLen*MaxExpansion
}
