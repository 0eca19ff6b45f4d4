// Copyright (c) 2025 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pan adapts import.name/pan to the translator's error types.
package pan

import (
	"io"

	"import.name/pan"
)

type unexpectedEOF struct{}

func (unexpectedEOF) Error() string       { return "unexpected end of program" }
func (unexpectedEOF) PublicError() string { return "unexpected end of program" }
func (unexpectedEOF) ProgramError() bool  { return true }
func (unexpectedEOF) Unwrap() error       { return io.ErrUnexpectedEOF }

// ErrUnexpectedEOF is a program error which wraps io.ErrUnexpectedEOF.
var ErrUnexpectedEOF error = unexpectedEOF{}

var Check = pan.Check
var Panic = pan.Panic

// Error converts a recovered value to an error.  Values which weren't raised
// by Check or Panic are re-panicked.  End-of-file conditions are converted to
// ErrUnexpectedEOF.
func Error(x interface{}) error {
	err := pan.Error(x)
	if err == nil {
		return nil
	}

	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return ErrUnexpectedEOF
	}

	return err
}

func Must[T any](x T, err error) T {
	Check(err)
	return x
}
