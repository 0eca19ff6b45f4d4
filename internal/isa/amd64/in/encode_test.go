// Copyright (c) 2018 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package in

import (
	"bytes"
	"testing"

	"golang.org/x/arch/x86/x86asm"

	"github.com/tsavola/stackjit/buffer"
	"github.com/tsavola/stackjit/internal/code"
)

var encodeTests = []struct {
	name string
	emit func(*code.Buf)
	code []byte
	op   x86asm.Op
}{
	{"push rbp", func(b *code.Buf) { PUSHo.Reg(b, RegBP) }, []byte{0x55}, x86asm.PUSH},
	{"pop rax", func(b *code.Buf) { POPo.Reg(b, RegAX) }, []byte{0x58}, x86asm.POP},
	{"pop rdx", func(b *code.Buf) { POPo.Reg(b, RegDX) }, []byte{0x5a}, x86asm.POP},
	{"mov rbp, rsp", func(b *code.Buf) { MOV.RegReg(b, I64, RegBP, RegSP) }, []byte{0x48, 0x8b, 0xec}, x86asm.MOV},
	{"mov eax, edi", func(b *code.Buf) { MOV.RegReg(b, I32, RegAX, RegDI) }, []byte{0x8b, 0xc7}, x86asm.MOV},
	{"mov r8d, eax", func(b *code.Buf) { MOV.RegReg(b, I32, RegR8, RegAX) }, []byte{0x44, 0x8b, 0xc0}, x86asm.MOV},
	{"push 0", func(b *code.Buf) { PUSHi.Imm8(b, 0) }, []byte{0x6a, 0x00}, x86asm.PUSH},
	{"push imm32", func(b *code.Buf) { PUSHi.Imm32(b, -2) }, []byte{0x68, 0xfe, 0xff, 0xff, 0xff}, x86asm.PUSH},
	{"push [rbp-8]", func(b *code.Buf) { PUSH.MemDisp8(b, OneSize, RegBP, -8) }, []byte{0xff, 0x75, 0xf8}, x86asm.PUSH},
	{"pop [rbp-128]", func(b *code.Buf) { POP.MemDisp8(b, OneSize, RegBP, -128) }, []byte{0x8f, 0x45, 0x80}, x86asm.POP},
	{"add ecx, edx", func(b *code.Buf) { ADD.RegReg(b, I32, RegCX, RegDX) }, []byte{0x03, 0xca}, x86asm.ADD},
	{"sub ecx, edx", func(b *code.Buf) { SUB.RegReg(b, I32, RegCX, RegDX) }, []byte{0x2b, 0xca}, x86asm.SUB},
	{"sub rdx, rsi", func(b *code.Buf) { SUB.RegReg(b, I64, RegDX, RegSI) }, []byte{0x48, 0x2b, 0xd6}, x86asm.SUB},
	{"imul ecx, edx", func(b *code.Buf) { IMUL.RegReg(b, I32, RegCX, RegDX) }, []byte{0x0f, 0xaf, 0xca}, x86asm.IMUL},
	{"xor edx, edx", func(b *code.Buf) { XOR.RegReg(b, I32, RegDX, RegDX) }, []byte{0x33, 0xd2}, x86asm.XOR},
	{"movsxd rcx, ecx", func(b *code.Buf) { MOVSXD.RegReg(b, I64, RegCX, RegCX) }, []byte{0x48, 0x63, 0xc9}, x86asm.MOVSXD},
	{"test ecx, ecx", func(b *code.Buf) { TEST.RegReg(b, I32, RegCX, RegCX) }, []byte{0x85, 0xc9}, x86asm.TEST},
	{"test r8d, r8d", func(b *code.Buf) { TEST.RegReg(b, I32, RegR8, RegR8) }, []byte{0x45, 0x85, 0xc0}, x86asm.TEST},
	{"cdq", func(b *code.Buf) { CDQ.Simple(b) }, []byte{0x99}, x86asm.CDQ},
	{"idiv ecx", func(b *code.Buf) { IDIV.Reg(b, I32, RegCX) }, []byte{0xf7, 0xf9}, x86asm.IDIV},
	{"div ecx", func(b *code.Buf) { DIV.Reg(b, I32, RegCX) }, []byte{0xf7, 0xf1}, x86asm.DIV},
	{"neg eax", func(b *code.Buf) { NEG.Reg(b, I32, RegAX) }, []byte{0xf7, 0xd8}, x86asm.NEG},
	{"dec rsi", func(b *code.Buf) { DEC.Reg(b, I64, RegSI) }, []byte{0x48, 0xff, 0xce}, x86asm.DEC},
	{"sub rsp, 32", func(b *code.Buf) { SUBi.RegImm8(b, I64, RegSP, 32) }, []byte{0x48, 0x83, 0xec, 0x20}, x86asm.SUB},
	{"add edx, '0'", func(b *code.Buf) { ADDi.RegImm8(b, I32, RegDX, '0') }, []byte{0x83, 0xc2, 0x30}, x86asm.ADD},
	{"lea rsi, [rsp+32]", func(b *code.Buf) { LEA.RegStackDisp8(b, I64, RegSI, 32) }, []byte{0x48, 0x8d, 0x74, 0x24, 0x20}, x86asm.LEA},
	{"mov byte [rsi], '\\n'", func(b *code.Buf) { MOV8i.MemImm8(b, RegSI, '\n') }, []byte{0xc6, 0x06, 0x0a}, x86asm.MOV},
	{"mov [rsi], dl", func(b *code.Buf) { MOV8mr.RegMem(b, RegDX, RegSI) }, []byte{0x40, 0x88, 0x16}, x86asm.MOV},
	{"mov ecx, 10", func(b *code.Buf) { MOVi.RegImm32(b, RegCX, 10) }, []byte{0xb9, 0x0a, 0x00, 0x00, 0x00}, x86asm.MOV},
	{"syscall", func(b *code.Buf) { SYSCALL.Simple(b) }, []byte{0x0f, 0x05}, x86asm.SYSCALL},
	{"nop", func(b *code.Buf) { NOP.Simple(b) }, []byte{0x90}, x86asm.NOP},
	{"leave", func(b *code.Buf) { LEAVE.Simple(b) }, []byte{0xc9}, x86asm.LEAVE},
	{"ret", func(b *code.Buf) { RET.Simple(b) }, []byte{0xc3}, x86asm.RET},
	{"jmp self", func(b *code.Buf) { JMPcd.Stub32(b) }, []byte{0xe9, 0xfb, 0xff, 0xff, 0xff}, x86asm.JMP},
	{"je self", func(b *code.Buf) { JEcd.Stub32(b) }, []byte{0x0f, 0x84, 0xfa, 0xff, 0xff, 0xff}, x86asm.JE},
	{"jne self", func(b *code.Buf) { JNEcd.Stub32(b) }, []byte{0x0f, 0x85, 0xfa, 0xff, 0xff, 0xff}, x86asm.JNE},
	{"jns self", func(b *code.Buf) { JNScb.Stub8(b) }, []byte{0x79, 0xfe}, x86asm.JNS},
	{"call 0", func(b *code.Buf) { CALLcd.Addr32(b, 0) }, []byte{0xe8, 0xfb, 0xff, 0xff, 0xff}, x86asm.CALL},
}

func TestEncode(t *testing.T) {
	for _, test := range encodeTests {
		t.Run(test.name, func(t *testing.T) {
			text := code.Buf{Buffer: buffer.NewDynamic(nil)}
			test.emit(&text)

			if b := text.Bytes(); !bytes.Equal(b, test.code) {
				t.Fatalf("% x (should be: % x)", b, test.code)
			}
			if text.Addr != int32(len(test.code)) {
				t.Errorf("address %d (should be: %d)", text.Addr, len(test.code))
			}

			insn, err := x86asm.Decode(test.code, 64)
			if err != nil {
				t.Fatal(err)
			}
			if insn.Op != test.op {
				t.Errorf("decoded as %s (should be: %s)", insn.Op, test.op)
			}
			if insn.Len != len(test.code) {
				t.Errorf("decoded length %d (should be: %d)", insn.Len, len(test.code))
			}
		})
	}
}

func TestAddr8Backward(t *testing.T) {
	text := code.Buf{Buffer: buffer.NewDynamic(nil)}
	NOP.Simple(&text)
	NOP.Simple(&text)
	JNEcb.Addr8(&text, 0)

	if b := text.Bytes(); !bytes.Equal(b[2:], []byte{0x75, 0xfc}) {
		t.Errorf("% x", b)
	}
}

func TestAddr32Forward(t *testing.T) {
	text := code.Buf{Buffer: buffer.NewDynamic(nil)}
	JEcd.Addr32(&text, 0x106)

	if b := text.Bytes(); !bytes.Equal(b, []byte{0x0f, 0x84, 0x00, 0x01, 0x00, 0x00}) {
		t.Errorf("% x", b)
	}
}

func TestAddr8OutOfRange(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("no panic")
		}
	}()

	text := code.Buf{Buffer: buffer.NewDynamic(nil), Addr: 0x1000}
	JNEcb.Addr8(&text, 0)
}
