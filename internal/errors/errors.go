// Copyright (c) 2019 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package errors

import (
	"fmt"
)

type programError struct {
	text  string
	cause error
}

func ProgramError(text string) error {
	return &programError{text, nil}
}

func ProgramErrorf(format string, args ...interface{}) error {
	return &programError{fmt.Sprintf(format, args...), nil}
}

func WrapProgramError(cause error, text string) error {
	return &programError{text, cause}
}

func (e *programError) Error() string       { return e.text }
func (e *programError) PublicError() string { return e.text }
func (e *programError) ProgramError() bool  { return true }
func (e *programError) Unwrap() error       { return e.cause }

// AsProgramError returns true if err or an error it wraps was caused by a
// malformed or oversized bytecode program.
func AsProgramError(err error) bool {
	for err != nil {
		if x, ok := err.(interface{ ProgramError() bool }); ok && x.ProgramError() {
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		err = u.Unwrap()
	}
	return false
}
