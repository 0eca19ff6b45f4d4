// Copyright (c) 2019 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package errors exports common error types without unnecessary dependencies.
package errors

import (
	internal "github.com/tsavola/stackjit/internal/errors"
)

// ProgramError indicates that the error is caused by an unsupported,
// malformed or oversized bytecode program.  Such errors implement
//
//	interface {
//	    ProgramError() bool
//	    PublicError() string
//	}
//
// and may wrap an underlying error.
func ProgramError(err error) bool {
	return internal.AsProgramError(err)
}
