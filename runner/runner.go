// Copyright (c) 2016 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package runner allocates executable memory and native stacks, and invokes
// generated code.
package runner

import (
	"errors"

	"github.com/docker/go-units"
	"github.com/tliron/commonlog"
)

// ErrUnsupported is returned when generated code cannot be executed on the
// host platform.
var ErrUnsupported = errors.New("execution of generated code is supported only on linux/amd64")

// DefaultStackSize is enough for the runtime routines and a deep operand
// stack.
const DefaultStackSize = 1024 * 1024

var log = commonlog.GetLogger("stackjit.runner")

func byteSize(n int) string {
	return units.BytesSize(float64(n))
}
