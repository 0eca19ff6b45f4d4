// Copyright (c) 2018 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package elf writes translated programs as standalone Linux executables.
package elf

import (
	"bytes"
	"debug/elf"
	"encoding/binary"
	"io"

	"github.com/tsavola/stackjit/object"
)

const (
	textAddr = 0x200000000
	pageSize = 4096
	phnum    = 2
)

// File represents a standalone executable program.  The text is followed by
// a startup routine which calls the entry address and exits the process with
// status 0.
type File struct {
	Text      []byte
	EntryAddr uint32
}

// FromObject creates a file which executes the translated program.
func FromObject(obj *object.Object) *File {
	return &File{
		Text:      obj.Text,
		EntryAddr: uint32(obj.EntryAddr),
	}
}

// WriteTo writes the contents of an executable program.
func (f *File) WriteTo(w io.Writer) (n int64, err error) {
	var b bytes.Buffer
	f.writeTo(&b)
	m, err := w.Write(b.Bytes())
	n = int64(m)
	return
}

func (f *File) writeTo(b *bytes.Buffer) {
	var (
		headersSize = roundSize(64+56*phnum, pageSize)
		startAddr   = len(f.Text)
		text        = append(append([]byte{}, f.Text...), startup(int32(f.EntryAddr), int32(startAddr))...)
		textOffset  = headersSize
	)

	// File header
	binary.Write(b, binary.LittleEndian, elf.Header64{
		Ident: [elf.EI_NIDENT]byte{
			0:              0x7f,
			1:              'E',
			2:              'L',
			3:              'F',
			elf.EI_CLASS:   byte(elf.ELFCLASS64),
			elf.EI_DATA:    byte(elf.ELFDATA2LSB),
			elf.EI_VERSION: 1,
		},
		Type:      uint16(elf.ET_EXEC),
		Machine:   uint16(elfMachine),
		Version:   1,
		Entry:     textAddr + uint64(startAddr),
		Phoff:     64,
		Shoff:     0,
		Ehsize:    64,
		Phentsize: 56,
		Phnum:     phnum,
		Shentsize: 64,
		Shnum:     0,
		Shstrndx:  0,
	})

	// Program header #0: load text
	writeBinaryArray(b, []interface{}{
		uint32(elf.PT_LOAD),         // type
		uint32(elf.PF_R | elf.PF_X), // flags
		uint64(textOffset),          // offset
		uint64(textAddr),            // vaddr
		uint64(textAddr),            // paddr
		uint64(len(text)),           // filesz
		uint64(len(text)),           // memsz
		uint64(pageSize),            // align
	})

	// Program header #1: non-executable stack
	writeBinaryArray(b, []interface{}{
		uint32(elf.PT_GNU_STACK),    // type
		uint32(elf.PF_R | elf.PF_W), // flags
		uint64(0),                   // offset
		uint64(0),                   // vaddr
		uint64(0),                   // paddr
		uint64(0),                   // filesz
		uint64(0),                   // memsz
		uint64(16),                  // align
	})

	align(b, pageSize)

	// Text
	if b.Len() != textOffset {
		panic(b.Len())
	}
	b.Write(text)

	align(b, pageSize)
}

func writeBinaryArray(b *bytes.Buffer, fields []interface{}) {
	for _, x := range fields {
		binary.Write(b, binary.LittleEndian, x)
	}
}

func align(b *bytes.Buffer, alignment int) {
	l := roundSize(b.Len(), alignment)
	for b.Len() < l {
		b.WriteByte(0)
	}
}

func roundSize(value, alignment int) int {
	return (value + alignment - 1) &^ (alignment - 1)
}
