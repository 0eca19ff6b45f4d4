// Copyright (c) 2026 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package buffer

import (
	"testing"

	"import.name/pan"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsavola/stackjit/internal/code"
)

var (
	_ code.Buffer = new(Dynamic)
	_ code.Buffer = new(Limited)
	_ code.Buffer = new(Static)
)

func fill(b code.Buffer, n int) (err error) {
	defer func() {
		err = pan.Error(recover())
	}()

	for i := 0; i < n; i++ {
		b.PutByte(byte(i))
	}
	b.PutUint32(0x04030201)
	return
}

func TestDynamic(t *testing.T) {
	d := NewDynamic(nil)
	require.NoError(t, fill(d, 100))
	require.Len(t, d.Bytes(), 104)
	require.Equal(t, []byte{1, 2, 3, 4}, d.Bytes()[100:])
}

func TestLimited(t *testing.T) {
	l := NewLimited(nil, 10)
	require.NoError(t, fill(l, 6))
	require.Equal(t, 10, l.Len())

	err := fill(l, 0)
	require.Equal(t, ErrSizeLimit, err)
	assert.Equal(t, 10, l.Len())

	err = fill(NewLimited(nil, 3), 4)
	require.Equal(t, ErrSizeLimit, err)
}

func TestStatic(t *testing.T) {
	b := make([]byte, 3, 8)
	s := NewStatic(b)
	require.Equal(t, 0, s.Len())
	require.Equal(t, 8, s.Cap())

	require.NoError(t, fill(s, 4))
	require.Equal(t, []byte{0, 1, 2, 3, 1, 2, 3, 4}, b[:8])

	require.Equal(t, ErrStaticSize, fill(s, 1))
}

func TestStaticCapacity(t *testing.T) {
	mem := make([]byte, 16)

	// Length of the slice doesn't matter.
	s := NewStatic(mem[:2])
	require.Equal(t, 16, s.Cap())
	require.NoError(t, fill(s, 12))
	require.Equal(t, 16, s.Len())

	s = NewStatic(mem[:2:6])
	require.Equal(t, 6, s.Cap())
	require.NoError(t, fill(s, 2))
	require.Equal(t, ErrStaticSize, fill(s, 0))
	require.Equal(t, 6, s.Len())
}

func TestSizeError(t *testing.T) {
	for _, err := range []*SizeError{ErrSizeLimit, ErrStaticSize} {
		assert.True(t, err.ProgramError())
		assert.Equal(t, err.Error(), err.PublicError())
		assert.Equal(t, err.Error(), err.BufferSizeLimit())
	}
}

func TestDynamicSizeHint(t *testing.T) {
	d := makeDynamic(nil, 10)
	require.NoError(t, fill(&d, 2))
	require.Equal(t, 6, len(d.Bytes()))
	require.LessOrEqual(t, cap(d.Bytes()), 10)

	require.NoError(t, fill(&d, 4))
	require.Equal(t, 14, len(d.Bytes()))
}

func TestDynamicNonEmpty(t *testing.T) {
	assert.Panics(t, func() { NewDynamic([]byte{0}) })
}
