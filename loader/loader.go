// Copyright (c) 2015 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package loader reads bytecode programs from files and streams.  Input
// compressed with xz or lz4 (frame format) is decompressed transparently.
package loader

import (
	"bufio"
	"bytes"
	"io"
	"os"

	"github.com/pierrec/lz4/v4"
	"github.com/ulikunitz/xz"
	"golang.org/x/xerrors"

	"github.com/tsavola/stackjit/bytecode"
	"github.com/tsavola/stackjit/internal/errors"
)

// Compression format of input.
type Compression int

const (
	None = Compression(iota)
	XZ
	LZ4
)

func (c Compression) String() string {
	switch c {
	case None:
		return "none"

	case XZ:
		return "xz"

	case LZ4:
		return "lz4"

	default:
		return "unknown"
	}
}

var (
	xzMagic  = []byte{0xfd, '7', 'z', 'X', 'Z', 0x00}
	lz4Magic = []byte{0x04, 0x22, 0x4d, 0x18}
)

// Detect compression by the magic number at the start of the input.
func Detect(head []byte) Compression {
	switch {
	case bytes.HasPrefix(head, xzMagic):
		return XZ

	case bytes.HasPrefix(head, lz4Magic):
		return LZ4

	default:
		return None
	}
}

// Read a whole program.  A program larger than bytecode.MaxProgramSize is a
// program error.  Raw programs are not otherwise validated.
func Read(r io.Reader) (prog bytecode.Program, err error) {
	br := bufio.NewReader(r)

	head, err := br.Peek(len(xzMagic))
	if err != nil && err != io.EOF {
		err = xerrors.Errorf("reading program: %w", err)
		return
	}

	var src io.Reader = br

	switch Detect(head) {
	case XZ:
		xr, e := xz.NewReader(br)
		if e != nil {
			err = errors.WrapProgramError(e, "invalid xz stream: "+e.Error())
			return
		}
		src = xr

	case LZ4:
		src = lz4.NewReader(br)
	}

	data, err := io.ReadAll(io.LimitReader(src, bytecode.MaxProgramSize+1))
	if err != nil {
		err = xerrors.Errorf("reading program: %w", err)
		return
	}

	prog = bytecode.Program(data)
	if err = prog.CheckSize(); err != nil {
		prog = nil
	}
	return
}

// Load a program from a file.
func Load(filename string) (prog bytecode.Program, err error) {
	f, err := os.Open(filename)
	if err != nil {
		return
	}
	defer f.Close()

	prog, err = Read(f)
	if err != nil {
		err = xerrors.Errorf("%s: %w", filename, err)
	}
	return
}
