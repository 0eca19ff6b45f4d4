// Copyright (c) 2026 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package codegen

import (
	"fmt"

	"github.com/tsavola/stackjit/bytecode"
	"github.com/tsavola/stackjit/internal/gen"
	"github.com/tsavola/stackjit/internal/gen/link"
	"github.com/tsavola/stackjit/internal/isa/amd64"
)

func genInsn(p *gen.Prog, insn bytecode.Insn) {
	switch insn.Op {
	case bytecode.NOP:
		amd64.Nop(&p.Text)

	case bytecode.PUSH:
		amd64.Push(&p.Text, insn.Int)

	case bytecode.POP:
		amd64.Pop(&p.Text)

	case bytecode.LOAD:
		amd64.Load(&p.Text, insn.Reg)

	case bytecode.STORE:
		amd64.Store(&p.Text, insn.Reg)

	case bytecode.JMP:
		addReloc(p, amd64.Jump(&p.Text), insn.Addr, insn)

	case bytecode.JZ:
		addReloc(p, amd64.BranchIfZero(&p.Text), insn.Addr, insn)

	case bytecode.JNZ:
		addReloc(p, amd64.BranchIfNonzero(&p.Text), insn.Addr, insn)

	case bytecode.ADD, bytecode.SUB, bytecode.MUL, bytecode.DIV:
		amd64.Binary(&p.Text, insn.Op)

	case bytecode.PRINT:
		amd64.Print(&p.Text, p.PrintRoutine.FinalAddr())

	case bytecode.STOP:
		addReloc(p, amd64.Jump(&p.Text), len(p.Program), insn)

	default:
		panic(fmt.Errorf("unhandled opcode: %s", insn.Op))
	}
}

func addReloc(p *gen.Prog, site int32, target int, insn bytecode.Insn) {
	p.Relocs.Push(link.Reloc{
		Site:   site,
		Target: target,
		Origin: insn.Offset,
	})
}
