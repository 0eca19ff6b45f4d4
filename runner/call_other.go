// Copyright (c) 2026 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !(linux && amd64)

package runner

func Call(r *Region, entryAddr int32, s *Stack) error {
	return ErrUnsupported
}
