// Copyright (c) 2016 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package link

import (
	"github.com/pkg/errors"
)

// L is a text location which is known before it is referenced.
type L struct {
	Addr int32
	set  bool
}

func (l *L) SetAddr(addr int32) {
	l.Addr = addr
	l.set = true
}

func (l *L) FinalAddr() int32 {
	if !l.set {
		panic(errors.New("link address undefined while generating call instruction"))
	}
	return l.Addr
}

// Reloc is a pending 32-bit displacement field of a branch instruction.
type Reloc struct {
	Site   int32 // Text address of the displacement field.
	Target int   // Program position of the branch target.
	Origin int   // Program position of the branch instruction.
}

// Relocs is a last-in, first-out list of pending relocations.
type Relocs []Reloc

func (rs *Relocs) Push(r Reloc) {
	*rs = append(*rs, r)
}

// Pop returns false when the list is empty.
func (rs *Relocs) Pop() (r Reloc, ok bool) {
	n := len(*rs)
	if n == 0 {
		return
	}
	r = (*rs)[n-1]
	*rs = (*rs)[:n-1]
	ok = true
	return
}
