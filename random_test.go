// Copyright (c) 2026 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stackjit

import (
	"math/rand"

	"github.com/tsavola/stackjit/bytecode"
)

// Registers 0-14 are used by generated statements; register 15 is the loop
// counter.
const (
	numDataRegs = bytecode.NumRegs - 1
	counterReg  = bytecode.NumRegs - 1
)

// randomProgram generates a terminating program which doesn't fault.  Every
// statement leaves the operand stack as it found it, branches skip over
// balanced blocks, and divisors are constants whose magnitude is at least 2.
func randomProgram(r *rand.Rand) bytecode.Program {
	g := programGen{r: r}

	for n := r.Intn(8); n > 0; n-- {
		if r.Intn(4) == 0 {
			g.loop()
		} else {
			g.statement(2)
		}
	}

	if r.Intn(2) == 0 {
		g.b.Stop()
		g.statement(0) // unreachable
	}

	prog, err := g.b.Program()
	if err != nil {
		panic(err)
	}
	return prog
}

type programGen struct {
	r *rand.Rand
	b bytecode.Builder
}

func (g *programGen) value() int32 {
	switch g.r.Intn(4) {
	case 0:
		return int32(g.r.Intn(21) - 10)

	case 1:
		return g.r.Int31() - g.r.Int31()

	default:
		return int32(g.r.Intn(2001) - 1000)
	}
}

func (g *programGen) divisor() int32 {
	k := int32(2 + g.r.Intn(50))
	if g.r.Intn(2) == 0 {
		k = -k
	}
	return k
}

func (g *programGen) reg() uint8 {
	return uint8(g.r.Intn(numDataRegs))
}

// operand pushes one value.
func (g *programGen) operand() {
	if g.r.Intn(2) == 0 {
		g.b.Push(g.value())
	} else {
		g.b.Load(g.reg())
	}
}

// expression pushes one value.
func (g *programGen) expression(depth int) {
	if depth == 0 || g.r.Intn(3) == 0 {
		g.operand()
		return
	}

	g.expression(depth - 1)

	switch g.r.Intn(4) {
	case 0:
		g.expression(depth - 1)
		g.b.Add()

	case 1:
		g.expression(depth - 1)
		g.b.Sub()

	case 2:
		g.expression(depth - 1)
		g.b.Mul()

	case 3:
		g.b.Push(g.divisor())
		g.b.Div()
	}
}

func (g *programGen) statement(nesting int) {
	switch g.r.Intn(7) {
	case 0:
		g.expression(3)
		g.b.Print()

	case 1:
		g.expression(3)
		g.b.Store(g.reg())

	case 2:
		g.expression(1)
		g.b.Pop()

	case 3:
		g.b.Nop()

	case 4, 5:
		if nesting == 0 {
			g.b.Nop()
			return
		}

		skip := g.b.NewLabel("skip")
		g.expression(2)
		if g.r.Intn(2) == 0 {
			g.b.Jz(skip)
		} else {
			g.b.Jnz(skip)
		}
		for n := 1 + g.r.Intn(3); n > 0; n-- {
			g.statement(nesting - 1)
		}
		g.bind(skip)

	case 6:
		end := g.b.NewLabel("end")
		g.b.Jmp(end)
		g.statement(0) // skipped
		g.bind(end)
	}
}

// loop runs a block a few times using the counter register.
func (g *programGen) loop() {
	top := g.b.NewLabel("loop")

	g.b.Push(int32(1 + g.r.Intn(4)))
	g.b.Store(counterReg)
	g.bind(top)

	for n := 1 + g.r.Intn(3); n > 0; n-- {
		g.statement(1)
	}

	g.b.Load(counterReg)
	g.b.Push(1)
	g.b.Sub()
	g.b.Store(counterReg)
	g.b.Load(counterReg)
	g.b.Jnz(top)
}

func (g *programGen) bind(l *bytecode.Label) {
	if err := g.b.Bind(l); err != nil {
		panic(err)
	}
}
