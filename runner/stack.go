// Copyright (c) 2026 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build unix

package runner

import (
	"unsafe"

	"golang.org/x/sys/unix"
	"golang.org/x/xerrors"
)

// Stack is native stack memory for generated code.  The lowest page is
// inaccessible, so that overflow faults instead of corrupting memory.
type Stack struct {
	mem []byte
}

// NewStack maps a stack with at least the given usable size.
func NewStack(size int) (*Stack, error) {
	if size <= 0 {
		return nil, xerrors.Errorf("invalid stack size: %d", size)
	}

	guard := unix.Getpagesize()

	mem, err := unix.Mmap(-1, 0, guard+roundToPage(size), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
	if err != nil {
		return nil, xerrors.Errorf("stack allocation: %w", err)
	}

	if err := unix.Mprotect(mem[:guard], unix.PROT_NONE); err != nil {
		unix.Munmap(mem)
		return nil, xerrors.Errorf("stack guard page protection: %w", err)
	}

	log.Debugf("mapped %s stack at %p", byteSize(len(mem)-guard), &mem[guard])
	return &Stack{mem}, nil
}

// Size of the usable part of the stack.
func (s *Stack) Size() int {
	return len(s.mem) - unix.Getpagesize()
}

// top is the initial stack pointer.
func (s *Stack) top() uintptr {
	return uintptr(unsafe.Pointer(&s.mem[0])) + uintptr(len(s.mem))
}

// Close unmaps the stack.  It may be called multiple times.
func (s *Stack) Close() (err error) {
	if s.mem != nil {
		err = unix.Munmap(s.mem)
		s.mem = nil
	}
	return
}
