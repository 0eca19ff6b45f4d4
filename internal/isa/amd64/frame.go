// Copyright (c) 2026 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package amd64

import (
	"github.com/tsavola/stackjit/bytecode"
	"github.com/tsavola/stackjit/internal/code"
	"github.com/tsavola/stackjit/internal/isa/amd64/in"
)

// RegDisp is the frame anchor relative displacement of an emulated register.
// Register 0 is pushed first by the prologue.
func RegDisp(index uint8) int8 {
	return int8(-SlotSize * (int(index) + 1))
}

// Prologue saves the caller's frame pointer, anchors the frame and pushes the
// zeroed register file.
func Prologue(text *code.Buf) {
	in.PUSHo.Reg(text, RegFrame)
	in.MOV.RegReg(text, in.I64, RegFrame, RegStack)

	for i := 0; i < bytecode.NumRegs; i++ {
		in.PUSHi.Imm8(text, 0)
	}
}

// Epilogue discards the register file, restores the caller's frame pointer
// and returns.  Leftover operand stack values are discarded by LEAVE.
func Epilogue(text *code.Buf) {
	for i := 0; i < bytecode.NumRegs; i++ {
		in.POPo.Reg(text, RegResult)
	}

	in.LEAVE.Simple(text)
	in.RET.Simple(text)
}
