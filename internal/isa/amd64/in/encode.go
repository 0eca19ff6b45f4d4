// Copyright (c) 2018 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package in

import (
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/tsavola/stackjit/internal/code"
)

// addrDisp computes the displacement of a relative branch or call.  Negative
// target address produces a placeholder which branches to the instruction
// itself.
func addrDisp(currentAddr, insnSize, targetAddr int32) int32 {
	if targetAddr >= 0 {
		siteAddr := currentAddr + insnSize
		return targetAddr - siteAddr
	} else {
		return -insnSize // infinite loop as placeholder
	}
}

type output struct {
	buf    [16]byte
	offset uint8
}

func (o *output) len() int           { return int(o.offset) }
func (o *output) copy(target []byte) { copy(target, o.buf[:o.offset]) }

func (o *output) byte(b byte) {
	o.buf[o.offset] = b
	o.offset++
}

// word appends the two bytes of a big-endian word.
func (o *output) word(w uint16) {
	binary.BigEndian.PutUint16(o.buf[o.offset:], w)
	o.offset += 2
}

func (o *output) rex(wrxb rexWRXB) {
	o.buf[o.offset] = Rex | byte(wrxb)
	o.offset++
}

func (o *output) rexIf(wrxb rexWRXB) {
	if wrxb != 0 {
		o.rex(wrxb)
	}
}

func (o *output) mod(mod Mod, ro ModRO, rm ModRM) {
	o.buf[o.offset] = byte(mod) | byte(ro) | byte(rm)
	o.offset++
}

func (o *output) sib(s Scale, i Index, b Base) {
	o.buf[o.offset] = byte(s) | byte(i) | byte(b)
	o.offset++
}

func (o *output) int8(val int8) {
	o.buf[o.offset] = uint8(val)
	o.offset++
}

func (o *output) int32(val int32) {
	binary.LittleEndian.PutUint32(o.buf[o.offset:], uint32(val))
	o.offset += 4
}

// NP

type NP byte

func (op NP) Type(text *code.Buf, t Type) {
	var o output
	o.rexIf(typeRexW(t))
	o.byte(byte(op))
	o.copy(text.Extend(o.len()))
}

func (op NP) Simple(text *code.Buf) {
	text.PutByte(byte(op))
}

// NP with two opcode bytes

type NP2 uint16

func (op NP2) Simple(text *code.Buf) {
	var o output
	o.word(uint16(op))
	o.copy(text.Extend(o.len()))
}

// O

type O byte

func (op O) Reg(text *code.Buf, r Reg) {
	var o output
	o.rexIf(regRexB(r))
	o.byte(byte(op) + byte(r&7))
	o.copy(text.Extend(o.len()))
}

// OI

type OI byte

func (op OI) RegImm32(text *code.Buf, r Reg, val int32) {
	var o output
	o.rexIf(regRexB(r))
	o.byte(byte(op) + byte(r&7))
	o.int32(val)
	o.copy(text.Extend(o.len()))
}

// I (push immediate)

type Ipush byte // 8-bit immediate opcode; 32-bit immediate opcode is 0x68

func (op Ipush) Imm8(text *code.Buf, val int8) {
	var o output
	o.byte(byte(op))
	o.int8(val)
	o.copy(text.Extend(o.len()))
}

// Imm32 always encodes a 32-bit immediate, so the instruction size doesn't
// depend on the value.
func (op Ipush) Imm32(text *code.Buf, val int32) {
	var o output
	o.byte(byte(op) &^ 2)
	o.int32(val)
	o.copy(text.Extend(o.len()))
}

// M

type M uint16 // opcode byte and ModRO byte

func (op M) Reg(text *code.Buf, t Type, r Reg) {
	var o output
	o.rexIf(typeRexW(t) | regRexB(r))
	o.byte(byte(op >> 8))
	o.mod(ModReg, ModRO(op), regRM(r))
	o.copy(text.Extend(o.len()))
}

func (op M) MemDisp8(text *code.Buf, t Type, base Reg, disp int8) {
	var o output
	o.rexIf(typeRexW(t) | regRexB(base))
	o.byte(byte(op >> 8))
	if needsSIB(base) {
		o.mod(ModMemDisp8, ModRO(op), ModRMSIB)
		o.sib(Scale0, noIndex, Base(base&7))
	} else {
		o.mod(ModMemDisp8, ModRO(op), regRM(base))
	}
	o.int8(disp)
	o.copy(text.Extend(o.len()))
}

// MI

type MI uint32 // 32-bit immediate opcode byte, 8-bit immediate opcode byte and ModRO byte

func (op MI) RegImm8(text *code.Buf, t Type, r Reg, val int8) {
	var o output
	o.rexIf(typeRexW(t) | regRexB(r))
	o.byte(byte(op >> 8))
	o.mod(ModReg, ModRO(op), regRM(r))
	o.int8(val)
	o.copy(text.Extend(o.len()))
}

// MI with 8-bit operand size

type MI8 uint16 // opcode byte and ModRO byte

// MemImm8 stores to [base].  Base register must not be the stack or frame
// pointer.
func (op MI8) MemImm8(text *code.Buf, base Reg, val int8) {
	if base&7 == RegSP || base&7 == RegBP {
		panic(errors.New("MI8 base register needs displacement or SIB"))
	}

	var o output
	o.rexIf(regRexB(base))
	o.byte(byte(op >> 8))
	o.mod(ModMem, ModRO(op), regRM(base))
	o.int8(val)
	o.copy(text.Extend(o.len()))
}

// RM (MR)

type RM byte    // opcode byte
type RM2 uint16 // two opcode bytes

func (op RM) RegReg(text *code.Buf, t Type, r, r2 Reg) {
	var o output
	o.rexIf(typeRexW(t) | regRexR(r) | regRexB(r2))
	o.byte(byte(op))
	o.mod(ModReg, regRO(r), regRM(r2))
	o.copy(text.Extend(o.len()))
}

func (op RM2) RegReg(text *code.Buf, t Type, r, r2 Reg) {
	var o output
	o.rexIf(typeRexW(t) | regRexR(r) | regRexB(r2))
	o.word(uint16(op))
	o.mod(ModReg, regRO(r), regRM(r2))
	o.copy(text.Extend(o.len()))
}

func (op RM) RegStackDisp8(text *code.Buf, t Type, r Reg, disp int8) {
	var o output
	o.rexIf(typeRexW(t) | regRexR(r))
	o.byte(byte(op))
	o.mod(ModMemDisp8, regRO(r), ModRMSIB)
	o.sib(Scale0, noIndex, baseStack)
	o.int8(disp)
	o.copy(text.Extend(o.len()))
}

// RM instructions with 8-bit operand size

type RMdata8 byte // opcode byte

// RegMem accesses [base].  Base register must not be the stack or frame
// pointer.
func (op RMdata8) RegMem(text *code.Buf, r, base Reg) {
	if base&7 == RegSP || base&7 == RegBP {
		panic(errors.New("RMdata8 base register needs displacement or SIB"))
	}

	var o output
	o.rex(regRexR(r) | regRexB(base))
	o.byte(byte(op))
	o.mod(ModMem, regRO(r), regRM(base))
	o.copy(text.Extend(o.len()))
}

// D

type Db byte    // opcode byte
type Dd byte    // opcode byte
type D2d uint16 // two opcode bytes

// Addr8 encodes a short branch to a known address.
func (op Db) Addr8(text *code.Buf, addr int32) {
	disp := addrDisp(text.Addr, 2, addr)
	if disp < -0x80 || disp >= 0x80 {
		panic(errors.Errorf("short branch displacement out of range: %d", disp))
	}

	var o output
	o.byte(byte(op))
	o.int8(int8(disp))
	o.copy(text.Extend(o.len()))
}

// Stub8 encodes a short branch with a placeholder displacement.  The return
// value is the address after the instruction.
func (op Db) Stub8(text *code.Buf) int32 {
	op.Addr8(text, -1)
	return text.Addr
}

func (op Dd) Addr32(text *code.Buf, addr int32) {
	var o output
	o.byte(byte(op))
	o.int32(addrDisp(text.Addr, 5, addr))
	o.copy(text.Extend(o.len()))
}

// Stub32 encodes a near branch or call with a placeholder displacement.  The
// return value is the address of the displacement field.
func (op Dd) Stub32(text *code.Buf) (site int32) {
	op.Addr32(text, -1)
	return text.Addr - 4
}

func (op D2d) Addr32(text *code.Buf, addr int32) {
	var o output
	o.word(uint16(op))
	o.int32(addrDisp(text.Addr, 6, addr))
	o.copy(text.Extend(o.len()))
}

// Stub32 encodes a conditional near branch with a placeholder displacement.
// The return value is the address of the displacement field.
func (op D2d) Stub32(text *code.Buf) (site int32) {
	op.Addr32(text, -1)
	return text.Addr - 4
}
