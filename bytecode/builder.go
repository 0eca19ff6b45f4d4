// Copyright (c) 2026 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bytecode

import (
	"encoding/binary"
	"fmt"

	"github.com/tsavola/stackjit/internal/errors"
)

// Label is an instruction address which may be referenced before it is bound.
type Label struct {
	name  string
	addr  int
	bound bool
	sites []int // Offsets of 16-bit operands.
}

func (l *Label) String() string { return l.name }

// Builder appends encoded instructions.  The default value is an empty
// program.
type Builder struct {
	buf    []byte
	labels []*Label
}

// Len is the current program length, i.e. the address of the next
// instruction.
func (b *Builder) Len() int { return len(b.buf) }

// NewLabel which can be bound to an address later.
func (b *Builder) NewLabel(name string) *Label {
	l := &Label{name: name}
	b.labels = append(b.labels, l)
	return l
}

// Bind label to the address of the next instruction.
func (b *Builder) Bind(l *Label) error {
	if l.bound {
		return errors.ProgramErrorf("label %q bound twice", l.name)
	}
	l.addr = len(b.buf)
	l.bound = true
	return nil
}

func (b *Builder) op(op Op) { b.buf = append(b.buf, byte(op)) }

func (b *Builder) Nop()   { b.op(NOP) }
func (b *Builder) Pop()   { b.op(POP) }
func (b *Builder) Add()   { b.op(ADD) }
func (b *Builder) Sub()   { b.op(SUB) }
func (b *Builder) Mul()   { b.op(MUL) }
func (b *Builder) Div()   { b.op(DIV) }
func (b *Builder) Print() { b.op(PRINT) }
func (b *Builder) Stop()  { b.op(STOP) }

func (b *Builder) Push(n int32) {
	b.op(PUSH)
	b.buf = binary.LittleEndian.AppendUint32(b.buf, uint32(n))
}

// Load doesn't validate the register index; Decode does.
func (b *Builder) Load(r uint8) {
	b.op(LOAD)
	b.buf = append(b.buf, r)
}

// Store doesn't validate the register index; Decode does.
func (b *Builder) Store(r uint8) {
	b.op(STORE)
	b.buf = append(b.buf, r)
}

func (b *Builder) Jmp(l *Label) { b.branch(JMP, l) }
func (b *Builder) Jz(l *Label)  { b.branch(JZ, l) }
func (b *Builder) Jnz(l *Label) { b.branch(JNZ, l) }

// Branch with an explicit target address.
func (b *Builder) Branch(op Op, addr uint16) {
	b.op(op)
	b.buf = binary.LittleEndian.AppendUint16(b.buf, addr)
}

func (b *Builder) branch(op Op, l *Label) {
	b.op(op)
	l.sites = append(l.sites, len(b.buf))
	b.buf = append(b.buf, 0, 0)
}

// Emit an already decoded instruction.  Label operands are not supported.
func (b *Builder) Emit(insn Insn) {
	switch insn.Op.Shape() {
	case ShapeInt:
		b.Push(insn.Int)

	case ShapeReg:
		b.op(insn.Op)
		b.buf = append(b.buf, insn.Reg)

	case ShapeAddr:
		b.Branch(insn.Op, uint16(insn.Addr))

	default:
		b.op(insn.Op)
	}
}

// Program resolves label references and returns the encoded program.  The
// builder may be used to continue appending afterwards.
func (b *Builder) Program() (Program, error) {
	if len(b.buf) > MaxProgramSize {
		return nil, errors.ProgramErrorf("program is larger than %d bytes", MaxProgramSize)
	}

	for _, l := range b.labels {
		if len(l.sites) == 0 {
			continue
		}
		if !l.bound {
			return nil, errors.ProgramErrorf("label %q is not bound", l.name)
		}
		if l.addr > 0xffff {
			return nil, errors.ProgramError(fmt.Sprintf("label %q address %#x cannot be encoded", l.name, l.addr))
		}
		for _, site := range l.sites {
			binary.LittleEndian.PutUint16(b.buf[site:], uint16(l.addr))
		}
	}

	return append(Program(nil), b.buf...), nil
}
