// Copyright (c) 2026 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bytecode

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/tsavola/stackjit/internal/errors"
)

// Program is an immutable sequence of encoded instructions.
type Program []byte

// CheckSize returns a program error if the program is too large.
func (prog Program) CheckSize() error {
	if len(prog) > MaxProgramSize {
		return errors.ProgramErrorf("program is larger than %d bytes", MaxProgramSize)
	}
	return nil
}

// Insn is a decoded instruction.
type Insn struct {
	Offset int   // Position of the opcode byte in the program.
	Op     Op    //
	Int    int32 // PUSH operand.
	Reg    uint8 // LOAD and STORE operand.
	Addr   int   // JMP, JZ and JNZ operand.
}

// Len of the encoded instruction.
func (insn Insn) Len() int { return insn.Op.Len() }

// Next instruction's offset.
func (insn Insn) Next() int { return insn.Offset + insn.Op.Len() }

func (insn Insn) String() string {
	switch insn.Op.Shape() {
	case ShapeInt:
		return fmt.Sprintf("%s %d", insn.Op, insn.Int)

	case ShapeReg:
		return fmt.Sprintf("%s r%d", insn.Op, insn.Reg)

	case ShapeAddr:
		return fmt.Sprintf("%s %#04x", insn.Op, insn.Addr)

	default:
		return insn.Op.String()
	}
}

// Decode the instruction at the given offset.  Unknown opcodes, truncated
// operands and out-of-range register indexes are reported as program errors.
func Decode(prog Program, offset int) (insn Insn, err error) {
	insn.Offset = offset
	insn.Op = Op(prog[offset])

	if !insn.Op.Valid() {
		err = errors.ProgramErrorf("invalid instruction 0x%02x at offset %#x", byte(insn.Op), offset)
		return
	}

	operand := prog[offset+1:]
	if size := insn.Op.Shape().Size(); len(operand) < size {
		err = errors.WrapProgramError(io.ErrUnexpectedEOF, fmt.Sprintf("truncated %s instruction at offset %#x", insn.Op, offset))
		return
	}

	switch insn.Op.Shape() {
	case ShapeInt:
		insn.Int = int32(binary.LittleEndian.Uint32(operand))

	case ShapeReg:
		insn.Reg = operand[0]
		if insn.Reg >= NumRegs {
			err = errors.ProgramErrorf("%s register index %d out of range at offset %#x", insn.Op, insn.Reg, offset)
			return
		}

	case ShapeAddr:
		insn.Addr = int(binary.LittleEndian.Uint16(operand))
	}
	return
}

// Walk decodes every instruction in order.  It stops at the first decoding
// error or when f returns an error.
func Walk(prog Program, f func(Insn) error) error {
	for offset := 0; offset < len(prog); {
		insn, err := Decode(prog, offset)
		if err != nil {
			return err
		}
		if err := f(insn); err != nil {
			return err
		}
		offset = insn.Next()
	}
	return nil
}
