// Copyright (c) 2018 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package in

type (
	Mod   byte
	ModRO byte
	ModRM byte
)

const (
	ModMem      = Mod(0)
	ModMemDisp8 = Mod(64)
	ModReg      = Mod(192)
)

const (
	ModRMSIB = ModRM(4)
)

type (
	Scale byte
	Index byte
	Base  byte
)

const (
	Scale0 = Scale(0 << 6)

	noIndex   = Index(4 << 3)
	baseStack = Base(RegSP)
)

func regRO(r Reg) ModRO { return ModRO((r & 7) << 3) }
func regRM(r Reg) ModRM { return ModRM(r & 7) }

// needsSIB reports whether a memory operand based on the register must be
// encoded with a SIB byte.
func needsSIB(base Reg) bool { return base&7 == RegSP }
