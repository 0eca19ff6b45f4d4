// Copyright (c) 2026 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bytecode defines the stack machine instruction set which is
// translated to native code.
//
// Every instruction is an opcode byte followed by an operand of fixed shape.
// Multi-byte operands are little-endian and unaligned.
package bytecode

import (
	"strconv"
	"strings"
)

const (
	// MaxProgramSize is the largest accepted program length in bytes.
	MaxProgramSize = 65536

	// NumRegs is the size of the register file.
	NumRegs = 16
)

type Op byte

const (
	NOP   = Op(0x00)
	PUSH  = Op(0x01) // PUSH <n>: push <n>.
	POP   = Op(0x02)
	LOAD  = Op(0x03) // LOAD <r>: push register <r>; the register is not cleared.
	STORE = Op(0x04) // STORE <r>: pop into register <r>.
	JMP   = Op(0x05) // JMP <i>: go to instruction <i>.
	JZ    = Op(0x06) // JZ <i>: pop; go to instruction <i> if the value was zero.
	JNZ   = Op(0x07) // JNZ <i>: pop; go to instruction <i> if the value was nonzero.
	ADD   = Op(0x08) // S2 + S1
	SUB   = Op(0x09) // S2 - S1
	MUL   = Op(0x0a) // S2 * S1
	DIV   = Op(0x0b) // S2 / S1
	PRINT = Op(0x0c) // PRINT: pop and print as a decimal line.
	STOP  = Op(0x0d) // STOP: go to the end of the program.

	NumOps = 14
)

// Shape of an instruction's operand.
type Shape byte

const (
	ShapeNone = Shape(0) // No operand.
	ShapeInt  = Shape(4) // 32-bit signed integer.
	ShapeReg  = Shape(1) // 8-bit register index.
	ShapeAddr = Shape(2) // 16-bit instruction address.
)

// Size of the encoded operand in bytes.
func (s Shape) Size() int { return int(s) }

var opShapes = [NumOps]Shape{
	PUSH:  ShapeInt,
	LOAD:  ShapeReg,
	STORE: ShapeReg,
	JMP:   ShapeAddr,
	JZ:    ShapeAddr,
	JNZ:   ShapeAddr,
}

var opNames = [NumOps]string{
	NOP:   "nop",
	PUSH:  "push",
	POP:   "pop",
	LOAD:  "load",
	STORE: "store",
	JMP:   "jmp",
	JZ:    "jz",
	JNZ:   "jnz",
	ADD:   "add",
	SUB:   "sub",
	MUL:   "mul",
	DIV:   "div",
	PRINT: "print",
	STOP:  "stop",
}

func (op Op) Valid() bool { return op < NumOps }

// Shape of the operand.  The opcode must be valid.
func (op Op) Shape() Shape { return opShapes[op] }

// Len is the encoded instruction length in bytes.  The opcode must be valid.
func (op Op) Len() int { return 1 + opShapes[op].Size() }

// Branch reports whether the instruction refers to an instruction address.
func (op Op) Branch() bool { return op.Valid() && opShapes[op] == ShapeAddr }

func (op Op) String() string {
	if op.Valid() {
		return opNames[op]
	}
	return "0x" + strconv.FormatUint(uint64(op), 16)
}

// OpByName looks up an opcode by its case-insensitive mnemonic.
func OpByName(name string) (Op, bool) {
	name = strings.ToLower(name)
	for op, s := range opNames {
		if s == name {
			return Op(op), true
		}
	}
	return 0, false
}
