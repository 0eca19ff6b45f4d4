// Copyright (c) 2026 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package amd64

import (
	"github.com/pkg/errors"

	"github.com/tsavola/stackjit/bytecode"
	"github.com/tsavola/stackjit/internal/code"
	"github.com/tsavola/stackjit/internal/isa/amd64/in"
)

// Operand stack values are 32-bit integers kept sign-extended in 64-bit
// slots.

func Nop(text *code.Buf) {
	in.NOP.Simple(text)
}

func Push(text *code.Buf, value int32) {
	in.PUSHi.Imm32(text, value)
}

func Pop(text *code.Buf) {
	in.POPo.Reg(text, RegOperand)
}

func Load(text *code.Buf, index uint8) {
	in.PUSH.MemDisp8(text, in.OneSize, RegFrame, RegDisp(index))
}

func Store(text *code.Buf, index uint8) {
	in.POP.MemDisp8(text, in.OneSize, RegFrame, RegDisp(index))
}

// Jump returns the address of the displacement field.
func Jump(text *code.Buf) (site int32) {
	return in.JMPcd.Stub32(text)
}

// BranchIfZero pops the condition.  It returns the address of the
// displacement field.
func BranchIfZero(text *code.Buf) (site int32) {
	popCondition(text)
	return in.JEcd.Stub32(text)
}

// BranchIfNonzero pops the condition.  It returns the address of the
// displacement field.
func BranchIfNonzero(text *code.Buf) (site int32) {
	popCondition(text)
	return in.JNEcd.Stub32(text)
}

func popCondition(text *code.Buf) {
	in.POPo.Reg(text, RegScratch)
	in.TEST.RegReg(text, in.I32, RegScratch, RegScratch)
}

// Binary replaces the two topmost values with the result of the arithmetic
// operation.
func Binary(text *code.Buf, op bytecode.Op) {
	if op == bytecode.DIV {
		in.POPo.Reg(text, RegScratch) // divisor
		in.POPo.Reg(text, RegResult)  // dividend
		in.CDQ.Simple(text)
		in.IDIV.Reg(text, in.I32, RegScratch)
		in.MOVSXD.RegReg(text, in.I64, RegResult, RegResult)
		in.PUSHo.Reg(text, RegResult)
		return
	}

	in.POPo.Reg(text, RegOperand)
	in.POPo.Reg(text, RegScratch)

	switch op {
	case bytecode.ADD:
		in.ADD.RegReg(text, in.I32, RegScratch, RegOperand)

	case bytecode.SUB:
		in.SUB.RegReg(text, in.I32, RegScratch, RegOperand)

	case bytecode.MUL:
		in.IMUL.RegReg(text, in.I32, RegScratch, RegOperand)

	default:
		panic(errors.Errorf("not a binary operation: %s", op))
	}

	in.MOVSXD.RegReg(text, in.I64, RegScratch, RegScratch)
	in.PUSHo.Reg(text, RegScratch)
}

// Print pops the argument and calls the print routine located at a known
// text address.
func Print(text *code.Buf, routineAddr int32) {
	in.POPo.Reg(text, RegArg)
	in.CALLcd.Addr32(text, routineAddr)
}
