// Copyright (c) 2016 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dump disassembles translated programs.
package dump

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/arch/x86/x86asm"

	"github.com/tsavola/stackjit/bytecode"
	"github.com/tsavola/stackjit/object"
)

// Text writes the disassembly of the object's machine code.  Instruction
// starts of the program are labeled, and the bytecode instruction is shown
// next to its template.  Breakpoint padding is collapsed.  The program must
// decode successfully.
func Text(w io.Writer, obj *object.Object, prog bytecode.Program) error {
	targets := labelTargets(obj)
	comments, err := insnComments(obj, prog)
	if err != nil {
		return err
	}

	lookup := func(addr uint64) (string, uint64) {
		if name, found := targets[addr]; found {
			return name, addr
		}
		return "", 0
	}

	text := obj.Text
	addrFmt := fmt.Sprintf("%%%dx", len(fmt.Sprintf("%x", len(text))))
	skipPad := false

	for addr := 0; addr < len(text); {
		insn, err := x86asm.Decode(text[addr:], 64)
		if err != nil {
			if _, err := fmt.Fprintf(w, addrFmt+"\t.byte\t0x%02x\n", addr, text[addr]); err != nil {
				return err
			}
			addr++
			continue
		}

		if insn.Op == x86asm.INT && insn.Len == 1 { // int3
			if skipPad {
				addr += insn.Len
				continue
			}
			skipPad = true
		} else {
			skipPad = false
		}

		if name, found := targets[uint64(addr)]; found {
			fmt.Fprintf(w, "\n%s:\n", name)
		}

		line := fmt.Sprintf(addrFmt+"\t%s", addr, rewriteRegs(x86asm.GNUSyntax(insn, uint64(addr), lookup)))
		if c, found := comments[addr]; found {
			line = fmt.Sprintf("%-40s; %s", line, c)
		}

		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}

		addr += insn.Len
	}

	_, err = fmt.Fprintln(w)
	return err
}

func labelTargets(obj *object.Object) map[uint64]string {
	targets := map[uint64]string{
		0:                      "print",
		uint64(obj.EntryAddr):  "entry",
		uint64(obj.ExitAddr()): "exit",
	}

	for _, pos := range obj.Offsets.Insns() {
		addr, _ := obj.InsnAddr(pos)
		targets[uint64(addr)] = fmt.Sprintf("L%04x", pos)
	}

	return targets
}

// insnComments fails if the program doesn't decode, i.e. it is not the
// program which was compiled.
func insnComments(obj *object.Object, prog bytecode.Program) (map[int]string, error) {
	comments := make(map[int]string)

	err := bytecode.Walk(prog, func(insn bytecode.Insn) error {
		if addr, ok := obj.InsnAddr(insn.Offset); ok {
			comments[int(addr)] = insn.String()
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return comments, nil
}

var regNames = strings.NewReplacer(
	"%rbp", "frame",
	"%rdi", "arg",
	"%edi", "arg",
	"%rsp", "sp",
)

func rewriteRegs(s string) string {
	return regNames.Replace(s)
}
