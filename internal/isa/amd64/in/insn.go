// Copyright (c) 2018 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package in encodes the x86-64 instructions used by the translator.
package in

const (
	// Opcode bits of some instructions are located at this offset in the ModRM
	// byte (ModRO part) or a standalone opcode byte.
	opcodeBase = 3
)

const (
	ADD     = RM(0x03)
	SUB     = RM(0x2b)
	XOR     = RM(0x33)
	PUSHo   = O(0x50)
	POPo    = O(0x58)
	MOVSXD  = RM(0x63) // I64 only
	PUSHi   = Ipush(0x6a)
	JNEcb   = Db(0x75)
	JNScb   = Db(0x79)
	ADDi    = MI(0x81<<16 | 0x83<<8 | 0<<opcodeBase)
	SUBi    = MI(0x81<<16 | 0x83<<8 | 5<<opcodeBase)
	TEST    = RM(0x85) // MR opcode
	MOV8mr  = RMdata8(0x88)
	MOV     = RM(0x8b)
	LEA     = RM(0x8d)
	POP     = M(0x8f<<8 | 0<<opcodeBase)
	JEcd    = D2d(0x0f<<8 | 0x84)
	JNEcd   = D2d(0x0f<<8 | 0x85)
	NOP     = NP(0x90)
	CDQ     = NP(0x99)
	IMUL    = RM2(0x0f<<8 | 0xaf)
	MOVi    = OI(0xb8)
	RET     = NP(0xc3)
	MOV8i   = MI8(0xc6<<8 | 0<<opcodeBase)
	LEAVE   = NP(0xc9)
	INT3    = NP(0xcc)
	CALLcd  = Dd(0xe8)
	JMPcd   = Dd(0xe9)
	NEG     = M(0xf7<<8 | 3<<opcodeBase)
	DIV     = M(0xf7<<8 | 6<<opcodeBase)
	IDIV    = M(0xf7<<8 | 7<<opcodeBase)
	DEC     = M(0xff<<8 | 1<<opcodeBase)
	PUSH    = M(0xff<<8 | 6<<opcodeBase)
	SYSCALL = NP2(0x0f<<8 | 0x05)
)
