// Copyright (c) 2026 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !unix

package runner

type Region struct{}

func NewRegion(size int) (*Region, error) { return nil, ErrUnsupported }
func (*Region) Bytes() []byte             { return nil }
func (*Region) Seal() error               { return ErrUnsupported }
func (*Region) Close() error              { return nil }

type Stack struct{}

func NewStack(size int) (*Stack, error) { return nil, ErrUnsupported }
func (*Stack) Size() int                { return 0 }
func (*Stack) Close() error             { return nil }
