// Copyright (c) 2026 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bytecode

import (
	"fmt"
	"io"
)

// Fprint writes a listing of the program, one instruction per line.  Branch
// targets are labeled.  A decoding error is returned after the valid prefix
// has been written.
func Fprint(w io.Writer, prog Program) (err error) {
	targets := make(map[int]bool)

	Walk(prog, func(insn Insn) error {
		if insn.Op.Branch() {
			targets[insn.Addr] = true
		}
		return nil
	})

	err = Walk(prog, func(insn Insn) (err error) {
		if targets[insn.Offset] {
			if _, err = fmt.Fprintf(w, "L%04x:\n", insn.Offset); err != nil {
				return
			}
		}

		var operand string
		switch insn.Op.Shape() {
		case ShapeInt:
			operand = fmt.Sprint(insn.Int)

		case ShapeReg:
			operand = fmt.Sprintf("r%d", insn.Reg)

		case ShapeAddr:
			operand = fmt.Sprintf("L%04x", insn.Addr)
		}

		_, err = fmt.Fprintf(w, "\t%-5s %-8s ; %04x\n", insn.Op, operand, insn.Offset)
		return
	})
	if err != nil {
		return
	}

	if targets[len(prog)] {
		_, err = fmt.Fprintf(w, "L%04x:\n", len(prog))
	}
	return
}
