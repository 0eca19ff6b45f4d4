// Copyright (c) 2026 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package interp is a reference interpreter of bytecode programs.  It
// produces the same output as translated code, but reports runtime faults
// as errors.
package interp

import (
	"errors"
	"io"
	"math"
	"strconv"

	"golang.org/x/xerrors"

	"github.com/tsavola/stackjit/bytecode"
)

var (
	ErrStackUnderflow  = errors.New("operand stack underflow")
	ErrStackOverflow   = errors.New("operand stack overflow")
	ErrDivisionByZero  = errors.New("integer division by zero")
	ErrIntegerOverflow = errors.New("integer overflow")
	ErrStepLimit       = errors.New("step limit exceeded")
)

// Fault is a runtime error at a program position.
type Fault struct {
	Offset int
	Op     bytecode.Op
	Err    error
}

func (f *Fault) Error() string {
	return f.Op.String() + " at offset 0x" + strconv.FormatInt(int64(f.Offset), 16) + ": " + f.Err.Error()
}

func (f *Fault) Unwrap() error { return f.Err }

// Config for a single run.  Zero values are replaced with defaults.
type Config struct {
	Output    io.Writer // Defaults to io.Discard.
	StepLimit int       // Unlimited by default.
	MaxDepth  int       // Defaults to DefaultMaxDepth.
}

// DefaultMaxDepth is the number of operand stack slots which fit in the
// default native stack.
const DefaultMaxDepth = 128 * 1024

// Machine state after a run.
type Machine struct {
	Regs  [bytecode.NumRegs]int32
	Stack []int32
	Steps int
}

// Run validates and executes the program.  Validation errors are program
// errors; runtime faults are returned as *Fault.
func Run(prog bytecode.Program, config *Config) (m *Machine, err error) {
	if config == nil {
		config = new(Config)
	}

	if err = bytecode.Validate(prog); err != nil {
		return
	}

	output := config.Output
	if output == nil {
		output = io.Discard
	}

	maxDepth := config.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	m = new(Machine)
	var line []byte

	for pc := 0; pc < len(prog); {
		insn, err := bytecode.Decode(prog, pc)
		if err != nil {
			return m, err
		}

		if config.StepLimit > 0 && m.Steps >= config.StepLimit {
			return m, &Fault{pc, insn.Op, ErrStepLimit}
		}
		m.Steps++

		fault := func(err error) error { return &Fault{insn.Offset, insn.Op, err} }
		pc = insn.Next()

		switch insn.Op {
		case bytecode.NOP:

		case bytecode.PUSH:
			if len(m.Stack) >= maxDepth {
				return m, fault(ErrStackOverflow)
			}
			m.Stack = append(m.Stack, insn.Int)

		case bytecode.POP:
			if _, ok := m.pop(); !ok {
				return m, fault(ErrStackUnderflow)
			}

		case bytecode.LOAD:
			if len(m.Stack) >= maxDepth {
				return m, fault(ErrStackOverflow)
			}
			m.Stack = append(m.Stack, m.Regs[insn.Reg])

		case bytecode.STORE:
			x, ok := m.pop()
			if !ok {
				return m, fault(ErrStackUnderflow)
			}
			m.Regs[insn.Reg] = x

		case bytecode.JMP:
			pc = insn.Addr

		case bytecode.JZ, bytecode.JNZ:
			x, ok := m.pop()
			if !ok {
				return m, fault(ErrStackUnderflow)
			}
			if (x == 0) == (insn.Op == bytecode.JZ) {
				pc = insn.Addr
			}

		case bytecode.ADD, bytecode.SUB, bytecode.MUL, bytecode.DIV:
			right, ok1 := m.pop()
			left, ok2 := m.pop()
			if !ok1 || !ok2 {
				return m, fault(ErrStackUnderflow)
			}

			var result int32

			switch insn.Op {
			case bytecode.ADD:
				result = left + right

			case bytecode.SUB:
				result = left - right

			case bytecode.MUL:
				result = left * right

			case bytecode.DIV:
				switch {
				case right == 0:
					return m, fault(ErrDivisionByZero)

				case left == math.MinInt32 && right == -1:
					return m, fault(ErrIntegerOverflow)
				}
				result = left / right
			}

			m.Stack = append(m.Stack, result)

		case bytecode.PRINT:
			x, ok := m.pop()
			if !ok {
				return m, fault(ErrStackUnderflow)
			}

			line = strconv.AppendInt(line[:0], int64(x), 10)
			line = append(line, '\n')
			if _, err := output.Write(line); err != nil {
				return m, xerrors.Errorf("output: %w", err)
			}

		case bytecode.STOP:
			pc = len(prog)
		}
	}

	return m, nil
}

func (m *Machine) pop() (x int32, ok bool) {
	n := len(m.Stack)
	if n == 0 {
		return
	}
	x = m.Stack[n-1]
	m.Stack = m.Stack[:n-1]
	ok = true
	return
}
