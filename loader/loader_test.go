// Copyright (c) 2026 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package loader

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/pierrec/lz4/v4"
	"github.com/stretchr/testify/require"
	"github.com/ulikunitz/xz"

	"github.com/tsavola/stackjit/bytecode"
	"github.com/tsavola/stackjit/errors"
)

var testProgram = bytecode.Program{
	byte(bytecode.PUSH), 2, 0, 0, 0,
	byte(bytecode.PUSH), 3, 0, 0, 0,
	byte(bytecode.ADD),
	byte(bytecode.PRINT),
	byte(bytecode.STOP),
}

func compressXZ(t *testing.T, data []byte) []byte {
	var buf bytes.Buffer
	w, err := xz.NewWriter(&buf)
	require.NoError(t, err)
	_, err = w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func compressLZ4(t *testing.T, data []byte) []byte {
	var buf bytes.Buffer
	w := lz4.NewWriter(&buf)
	_, err := w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestRead(t *testing.T) {
	tests := map[Compression][]byte{
		None: testProgram,
		XZ:   compressXZ(t, testProgram),
		LZ4:  compressLZ4(t, testProgram),
	}

	for c, data := range tests {
		require.Equal(t, c, Detect(data), c.String())

		prog, err := Read(bytes.NewReader(data))
		require.NoError(t, err, c.String())
		require.Equal(t, testProgram, prog, c.String())
	}
}

func TestReadShort(t *testing.T) {
	prog, err := Read(bytes.NewReader([]byte{byte(bytecode.STOP)}))
	require.NoError(t, err)
	require.Equal(t, bytecode.Program{byte(bytecode.STOP)}, prog)

	prog, err = Read(bytes.NewReader(nil))
	require.NoError(t, err)
	require.Empty(t, prog)
}

func TestReadTooLarge(t *testing.T) {
	large := make([]byte, bytecode.MaxProgramSize+1)

	_, err := Read(bytes.NewReader(large))
	require.True(t, errors.ProgramError(err), "%v", err)

	_, err = Read(bytes.NewReader(compressXZ(t, large)))
	require.True(t, errors.ProgramError(err), "%v", err)

	prog, err := Read(bytes.NewReader(large[:bytecode.MaxProgramSize]))
	require.NoError(t, err)
	require.Len(t, prog, bytecode.MaxProgramSize)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, io.ErrClosedPipe }

func TestReadError(t *testing.T) {
	_, err := Read(failingReader{})
	require.ErrorIs(t, err, io.ErrClosedPipe)
	require.False(t, errors.ProgramError(err))
}

func TestLoad(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "prog.xz")
	require.NoError(t, os.WriteFile(filename, compressXZ(t, testProgram), 0o644))

	prog, err := Load(filename)
	require.NoError(t, err)
	require.Equal(t, testProgram, prog)

	_, err = Load(filepath.Join(t.TempDir(), "missing"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
