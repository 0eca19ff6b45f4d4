// Copyright (c) 2018 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package buffer implements code buffers for the translator.
//
// The buffers panic with ErrSizeLimit (via import.name/pan) when generated
// code doesn't fit.  The translator recovers such panics at its API boundary.
package buffer

// SizeError is returned when generated code doesn't fit in a target buffer.
// It is a program error: the program didn't conform to size constraints.
type SizeError struct {
	text string
}

func (e *SizeError) Error() string           { return e.text }
func (e *SizeError) PublicError() string     { return e.text }
func (e *SizeError) BufferSizeLimit() string { return e.text }
func (e *SizeError) ProgramError() bool      { return true }

// Errors implementing interface{ BufferSizeLimit() string }.
var (
	ErrSizeLimit  = &SizeError{"buffer size limit exceeded"}
	ErrStaticSize = &SizeError{"static buffer capacity exceeded"}
)
