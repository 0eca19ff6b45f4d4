// Copyright (c) 2018 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package elf

import (
	"debug/elf"
	"encoding/binary"
)

const elfMachine = elf.EM_X86_64

const sysExitGroup = 231

// startup routine located at startAddr calls entryAddr and exits.
func startup(entryAddr, startAddr int32) []byte {
	code := []byte{
		0xe8, 0, 0, 0, 0, // call entry
		0xb8, 0, 0, 0, 0, // mov eax, exit_group
		0x31, 0xff,       // xor edi, edi
		0x0f, 0x05,       // syscall
		0xcc,             // int3
	}
	binary.LittleEndian.PutUint32(code[1:], uint32(entryAddr-(startAddr+5)))
	binary.LittleEndian.PutUint32(code[6:], sysExitGroup)
	return code
}
