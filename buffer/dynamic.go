// Copyright (c) 2018 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package buffer

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// Dynamic is a growing buffer.  The default value is a valid buffer.
type Dynamic struct {
	buf      []byte
	sizeHint int // Upper bound of preallocation.
}

func makeDynamic(b []byte, sizeHint int) Dynamic {
	if len(b) != 0 {
		panic("slice must be empty")
	}
	return Dynamic{b, sizeHint}
}

// NewDynamic buffer.  The slice must be empty; its capacity is used before
// reallocating.
func NewDynamic(b []byte) *Dynamic {
	d := makeDynamic(b, 0)
	return &d
}

func (d *Dynamic) Bytes() []byte {
	return d.buf
}

func (d *Dynamic) PutByte(value byte) {
	d.Extend(1)[0] = value
}

func (d *Dynamic) PutUint32(i uint32) {
	binary.LittleEndian.PutUint32(d.Extend(4), i)
}

// Extend the buffer by n bytes and return the new tail.  It panics only if
// memory cannot be allocated.
func (d *Dynamic) Extend(n int) []byte {
	offset := len(d.buf)
	size := offset + n
	if size < offset {
		panic(errors.New("buffer size out of range"))
	}

	if size > cap(d.buf) {
		d.reserve(size)
	}

	d.buf = d.buf[:size]
	return d.buf[offset:]
}

// reserve capacity for at least size bytes.  Capacity is doubled, but not
// beyond the size hint unless the size itself exceeds it.
func (d *Dynamic) reserve(size int) {
	newCap := 2*cap(d.buf) + size - len(d.buf)
	if newCap < size {
		newCap = size
	}
	if d.sizeHint >= size && newCap > d.sizeHint {
		newCap = d.sizeHint
	}

	newBuf := make([]byte, len(d.buf), newCap)
	copy(newBuf, d.buf)
	d.buf = newBuf
}
