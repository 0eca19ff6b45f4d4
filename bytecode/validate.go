// Copyright (c) 2026 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bytecode

import (
	"github.com/tsavola/stackjit/internal/errors"
)

// Validate checks the program as the translator does: every instruction must
// decode and every branch must target an instruction or the end of the
// program.
func Validate(prog Program) error {
	if err := prog.CheckSize(); err != nil {
		return err
	}

	starts := make([]bool, len(prog)+1)
	starts[len(prog)] = true

	var branches []Insn

	err := Walk(prog, func(insn Insn) error {
		starts[insn.Offset] = true
		if insn.Op.Branch() {
			branches = append(branches, insn)
		}
		return nil
	})
	if err != nil {
		return err
	}

	for _, insn := range branches {
		if insn.Addr >= len(starts) || !starts[insn.Addr] {
			return errors.ProgramErrorf("invalid jump target %#x at offset %#x", insn.Addr, insn.Offset)
		}
	}
	return nil
}
