// Copyright (c) 2026 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bytecode

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/tsavola/stackjit/internal/errors"
)

// Parse assembly text.  Each line contains at most one label definition
// ("name:") and one instruction.  Comments start with ';' or '#'.  Register
// operands may be written as "r3" or "3".  Branch operands are label names or
// numeric addresses.
//
//	loop:
//	    load r0
//	    push 1
//	    sub
//	    store r0
//	    load r0
//	    jnz loop
//	    stop
func Parse(r io.Reader) (Program, error) {
	var (
		b      Builder
		labels = make(map[string]*Label)
	)

	label := func(name string) *Label {
		l := labels[name]
		if l == nil {
			l = b.NewLabel(name)
			labels[name] = l
		}
		return l
	}

	s := bufio.NewScanner(r)
	for lineNum := 1; s.Scan(); lineNum++ {
		line := s.Text()
		if i := strings.IndexAny(line, ";#"); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)

		if i := strings.IndexByte(line, ':'); i >= 0 {
			name := strings.TrimSpace(line[:i])
			if name == "" {
				return nil, errors.ProgramErrorf("line %d: empty label name", lineNum)
			}
			if err := b.Bind(label(name)); err != nil {
				return nil, errors.WrapProgramError(err, "line "+strconv.Itoa(lineNum)+": "+err.Error())
			}
			line = strings.TrimSpace(line[i+1:])
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		op, found := OpByName(fields[0])
		if !found {
			return nil, errors.ProgramErrorf("line %d: unknown instruction %q", lineNum, fields[0])
		}

		want := 1
		if op.Shape() != ShapeNone {
			want = 2
		}
		if len(fields) != want {
			return nil, errors.ProgramErrorf("line %d: %s takes %d operand(s)", lineNum, op, want-1)
		}

		switch op.Shape() {
		case ShapeNone:
			b.op(op)

		case ShapeInt:
			n, err := strconv.ParseInt(fields[1], 0, 32)
			if err != nil {
				return nil, errors.WrapProgramError(err, "line "+strconv.Itoa(lineNum)+": invalid integer "+strconv.Quote(fields[1]))
			}
			b.Push(int32(n))

		case ShapeReg:
			n, err := strconv.ParseUint(strings.TrimPrefix(strings.ToLower(fields[1]), "r"), 0, 8)
			if err != nil || n >= NumRegs {
				return nil, errors.ProgramErrorf("line %d: invalid register %q", lineNum, fields[1])
			}
			b.Emit(Insn{Op: op, Reg: uint8(n)})

		case ShapeAddr:
			if n, err := strconv.ParseUint(fields[1], 0, 16); err == nil {
				b.Branch(op, uint16(n))
			} else {
				b.branch(op, label(fields[1]))
			}
		}
	}
	if err := s.Err(); err != nil {
		return nil, err
	}

	return b.Program()
}
