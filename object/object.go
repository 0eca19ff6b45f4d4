// Copyright (c) 2018 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package object describes translated programs.
package object

// TextAddr represents a non-negative offset from the start of the text
// (machine code).
type TextAddr int32

// NoInsn marks an offset table entry of a program position which is not the
// start of an instruction.
const NoInsn = -1

// OffsetTable maps bytecode program positions to machine code offsets
// relative to the start of the translated body.  It has an entry for every
// program byte and one for the end of the program.  Valid entries are
// strictly increasing; the last entry is the size of the body.
type OffsetTable []int32

// MakeOffsetTable for a program of the given length.  All entries are
// initially invalid.
func MakeOffsetTable(programLen int) OffsetTable {
	t := make(OffsetTable, programLen+1)
	for i := range t {
		t[i] = NoInsn
	}
	return t
}

// Lookup the body offset of the instruction starting at the program
// position.  The end of the program is a valid position.
func (t OffsetTable) Lookup(pos int) (offset int32, ok bool) {
	if pos < 0 || pos >= len(t) {
		return NoInsn, false
	}
	offset = t[pos]
	ok = offset != NoInsn
	return
}

// End is the body offset of the end sentinel.
func (t OffsetTable) End() int32 {
	if len(t) == 0 {
		return NoInsn
	}
	return t[len(t)-1]
}

// Insns returns the program positions of instructions in ascending order.
// The end sentinel is not included.
func (t OffsetTable) Insns() (positions []int) {
	for pos := 0; pos < len(t)-1; pos++ {
		if t[pos] != NoInsn {
			positions = append(positions, pos)
		}
	}
	return
}

// Object is a translated program.
type Object struct {
	Text      []byte      // Machine code, including runtime routines.
	EntryAddr TextAddr    // Address of the prologue.
	BodyAddr  TextAddr    // Address of the first instruction.
	Offsets   OffsetTable // Relative to BodyAddr.
}

// InsnAddr returns the text address of the instruction starting at the
// program position, or the end sentinel.
func (o *Object) InsnAddr(pos int) (addr TextAddr, ok bool) {
	offset, ok := o.Offsets.Lookup(pos)
	if ok {
		addr = o.BodyAddr + TextAddr(offset)
	}
	return
}

// ExitAddr is the address of the epilogue.
func (o *Object) ExitAddr() TextAddr {
	return o.BodyAddr + TextAddr(o.Offsets.End())
}
