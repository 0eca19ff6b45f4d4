// Copyright (c) 2026 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package amd64

import (
	"github.com/pkg/errors"

	"github.com/tsavola/stackjit/internal/code"
	"github.com/tsavola/stackjit/internal/isa/amd64/in"
)

const (
	sysWrite        = 1  // Linux x86-64 system call number.
	printBufferSize = 32 // Sign, 10 digits and newline fit.
)

// PrintRoutine formats the 32-bit signed integer in edi as a decimal line
// and writes it to the file descriptor with a direct system call.  It
// clobbers rax, rcx, rdx, rsi, rdi, r8 and r11.  The routine is padded to
// RoutinesSize with breakpoint instructions.
func PrintRoutine(text *code.Buf, fd int32) (addr int32) {
	addr = text.Addr

	in.SUBi.RegImm8(text, in.I64, RegStack, printBufferSize)
	in.LEA.RegStackDisp8(text, in.I64, RegCursor, printBufferSize)
	in.DEC.Reg(text, in.I64, RegCursor)
	in.MOV8i.MemImm8(text, RegCursor, '\n')

	in.MOV.RegReg(text, in.I32, RegResult, RegArg)
	in.MOV.RegReg(text, in.I32, RegSign, RegResult)
	in.TEST.RegReg(text, in.I32, RegResult, RegResult)
	positive := in.JNScb.Stub8(text)
	in.NEG.Reg(text, in.I32, RegResult) // 0x80000000 is correct as unsigned
	updateNearBranch(text, positive)

	in.MOVi.RegImm32(text, RegScratch, 10)

	digitLoop := text.Addr
	in.XOR.RegReg(text, in.I32, RegOperand, RegOperand)
	in.DIV.Reg(text, in.I32, RegScratch)
	in.ADDi.RegImm8(text, in.I32, RegOperand, '0')
	in.DEC.Reg(text, in.I64, RegCursor)
	in.MOV8mr.RegMem(text, RegOperand, RegCursor)
	in.TEST.RegReg(text, in.I32, RegResult, RegResult)
	in.JNEcb.Addr8(text, digitLoop)

	in.TEST.RegReg(text, in.I32, RegSign, RegSign)
	unsigned := in.JNScb.Stub8(text)
	in.DEC.Reg(text, in.I64, RegCursor)
	in.MOV8i.MemImm8(text, RegCursor, '-')
	updateNearBranch(text, unsigned)

	in.MOVi.RegImm32(text, RegArg, fd)
	in.LEA.RegStackDisp8(text, in.I64, RegOperand, printBufferSize)
	in.SUB.RegReg(text, in.I64, RegOperand, RegCursor)
	in.MOVi.RegImm32(text, RegResult, sysWrite)
	in.SYSCALL.Simple(text)

	in.ADDi.RegImm8(text, in.I64, RegStack, printBufferSize)
	in.RET.Simple(text)

	if text.Addr-addr > RoutinesSize {
		panic(errors.New("print routine exceeds its reserved size"))
	}
	for text.Addr-addr < RoutinesSize {
		in.INT3.Simple(text)
	}
	return
}
