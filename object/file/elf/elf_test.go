// Copyright (c) 2018 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package elf

import (
	"bytes"
	"debug/elf"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tsavola/stackjit"
	"github.com/tsavola/stackjit/bytecode"
	"github.com/tsavola/stackjit/object"
)

func compile(t *testing.T, source string) *object.Object {
	t.Helper()

	prog, err := bytecode.Parse(strings.NewReader(source))
	require.NoError(t, err)

	obj, err := stackjit.Compile(nil, prog)
	require.NoError(t, err)
	return obj
}

func TestELF(t *testing.T) {
	obj := compile(t, `
		push 2
		push 3
		mul
		print
	`)

	var buf bytes.Buffer

	n, err := FromObject(obj).WriteTo(&buf)
	require.NoError(t, err)
	require.Equal(t, buf.Len(), int(n))
	require.Zero(t, buf.Len()%pageSize)

	f, err := elf.NewFile(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	require.Equal(t, elf.ET_EXEC, f.Type)
	require.Equal(t, elf.EM_X86_64, f.Machine)
	require.Equal(t, uint64(textAddr+len(obj.Text)), f.Entry)
	require.Len(t, f.Progs, phnum)

	load := f.Progs[0]
	require.Equal(t, elf.PT_LOAD, load.Type)
	require.Equal(t, elf.PF_R|elf.PF_X, load.Flags)

	text := make([]byte, load.Filesz)
	_, err = load.ReadAt(text, 0)
	require.NoError(t, err)
	require.Equal(t, obj.Text, text[:len(obj.Text)])

	if x, err := f.ImportedLibraries(); err != nil {
		t.Error(err)
	} else if len(x) != 0 {
		t.Errorf("ImportedLibraries: %v", x)
	}

	if x, err := f.Symbols(); err == nil {
		t.Errorf("Symbols: %v", x)
	}

	t.Run("Exec", func(t *testing.T) {
		if runtime.GOOS != "linux" || runtime.GOARCH != "amd64" {
			t.Skip("not linux/amd64")
		}

		filename := filepath.Join(t.TempDir(), "prog")
		require.NoError(t, os.WriteFile(filename, buf.Bytes(), 0700))

		output, err := exec.Command(filename).CombinedOutput()
		if err != nil {
			if patherr, ok := err.(*os.PathError); ok {
				if errno, ok := patherr.Err.(syscall.Errno); ok && errno == syscall.EACCES {
					// temp dir is on noexec filesystem?
					t.Skip(err)
				}
			}
			t.Fatal(err)
		}
		require.Equal(t, "6\n", string(output))
	})
}
