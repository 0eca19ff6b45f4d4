// Copyright (c) 2016 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build unix

package runner

import (
	"golang.org/x/sys/unix"
	"golang.org/x/xerrors"
)

// Region is executable memory.  It is writable until it is sealed.
type Region struct {
	mem    []byte
	sealed bool
}

// NewRegion maps a zero-filled region which is readable, writable and
// executable.  The size is rounded up to page granularity.
func NewRegion(size int) (*Region, error) {
	if size <= 0 {
		return nil, xerrors.Errorf("invalid executable region size: %d", size)
	}

	mem, err := unix.Mmap(-1, 0, roundToPage(size), unix.PROT_READ|unix.PROT_WRITE|unix.PROT_EXEC, unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
	if err != nil {
		return nil, xerrors.Errorf("executable region allocation: %w", err)
	}

	log.Debugf("mapped %s executable region at %p", byteSize(len(mem)), &mem[0])
	return &Region{mem: mem}, nil
}

// Bytes of the whole region.  The slice must not be modified after Seal.
func (r *Region) Bytes() []byte {
	return r.mem
}

// Seal makes the region read-only.
func (r *Region) Seal() error {
	if r.sealed {
		return nil
	}

	if err := unix.Mprotect(r.mem, unix.PROT_READ|unix.PROT_EXEC); err != nil {
		return xerrors.Errorf("executable region protection: %w", err)
	}

	r.sealed = true
	return nil
}

// Close unmaps the region.  It may be called multiple times.
func (r *Region) Close() (err error) {
	if r.mem != nil {
		err = unix.Munmap(r.mem)
		r.mem = nil
	}
	return
}

func roundToPage(size int) int {
	mask := unix.Getpagesize() - 1
	return (size + mask) &^ mask
}
