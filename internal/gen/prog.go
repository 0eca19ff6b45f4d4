// Copyright (c) 2018 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gen holds the state of a program translation.
package gen

import (
	"github.com/tsavola/stackjit/bytecode"
	"github.com/tsavola/stackjit/internal/code"
	"github.com/tsavola/stackjit/internal/gen/link"
	"github.com/tsavola/stackjit/object"
)

type Prog struct {
	Program bytecode.Program
	Text    code.Buf

	OutputFD     int32
	PrintRoutine link.L

	EntryAddr int32
	BodyAddr  int32
	Offsets   object.OffsetTable
	Relocs    link.Relocs
}

// Pos is the current text address relative to the start of the body.
func (p *Prog) Pos() int32 {
	return p.Text.Addr - p.BodyAddr
}
