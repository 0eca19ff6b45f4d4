// Copyright (c) 2026 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package runner

import (
	"runtime"
	"unsafe"

	"golang.org/x/xerrors"
)

// call switches to the stack and calls the entry address.  The callee must
// preserve rbx, rbp and r12-r15.
func call(entry, stack uintptr)

// Call the code at the region offset.  The region must be sealed.
func Call(r *Region, entryAddr int32, s *Stack) error {
	if !r.sealed {
		return xerrors.New("executable region has not been sealed")
	}
	if entryAddr < 0 || int(entryAddr) >= len(r.mem) {
		return xerrors.Errorf("entry address %#x is outside of executable region", entryAddr)
	}

	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	entry := uintptr(unsafe.Pointer(&r.mem[0])) + uintptr(entryAddr)

	log.Debugf("calling entry at %#x", entry)
	call(entry, s.top())

	runtime.KeepAlive(r)
	runtime.KeepAlive(s)
	return nil
}
