// Copyright (c) 2018 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package in

// Reg is a general-purpose register number.
type Reg byte

const (
	RegAX = Reg(0)
	RegCX = Reg(1)
	RegDX = Reg(2)
	RegBX = Reg(3)
	RegSP = Reg(4)
	RegBP = Reg(5)
	RegSI = Reg(6)
	RegDI = Reg(7)
	RegR8 = Reg(8)
)

// Type selects the operand size.
type Type byte

const (
	OneSize = Type(0) // for instructions which don't use RexW
	I32     = Type(4)
	I64     = Type(8)
)

type rexWRXB byte

const (
	Rex  = byte(64)
	RexW = rexWRXB(8) // 64-bit operand size
	RexR = rexWRXB(4) // extension of the ModR/M reg field
	RexX = rexWRXB(2) // extension of the SIB index field
	RexB = rexWRXB(1) // extension of the ModR/M r/m field, SIB base field, or Opcode reg field
)

func typeRexW(t Type) rexWRXB { return rexWRXB(t & 8) } // RexW == 8

func regRexR(r Reg) rexWRXB { return rexWRXB(r>>3) << 2 } // 8..15 => 4
func regRexB(r Reg) rexWRXB { return rexWRXB(r>>3) << 0 } // 8..15 => 1
