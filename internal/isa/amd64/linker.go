// Copyright (c) 2016 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package amd64

import (
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/tsavola/stackjit/internal/code"
)

// UpdateFarBranch modifies the 32-bit displacement field at site so that the
// branch lands on targetAddr.  The displacement is relative to the end of the
// field.
func UpdateFarBranch(text []byte, site, targetAddr int32) {
	updateAddr32(text, site+4, targetAddr-(site+4))
}

// updateNearBranch modifies the 8-bit displacement of a JMP or Jcc
// instruction so that it lands on the current address.
func updateNearBranch(text *code.Buf, originAddr int32) {
	updateAddr8(text.Bytes(), originAddr, text.Addr-originAddr)
}

func updateAddr8(text []byte, addr, value int32) {
	if value < -0x80 || value >= 0x80 {
		panic(errors.Errorf("short branch displacement out of range: %d", value))
	}
	text[addr-1] = uint8(value)
}

func updateAddr32(text []byte, addr, value int32) {
	binary.LittleEndian.PutUint32(text[addr-4:addr], uint32(value))
}
