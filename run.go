// Copyright (c) 2026 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stackjit

import (
	"github.com/tsavola/stackjit/buffer"
	"github.com/tsavola/stackjit/bytecode"
	"github.com/tsavola/stackjit/object"
	"github.com/tsavola/stackjit/runner"
)

// RunConfig for a single execution.  Zero values are replaced with effective
// defaults.
type RunConfig struct {
	OutputFD  int // Standard output by default.
	StackSize int // Native stack size; runner.DefaultStackSize by default.

	// Object receives the translated program, if not nil.  Its Text is only
	// valid until Run returns.
	Object *object.Object
}

// Run translates the program directly into an executable memory region and
// calls it.  The region and the native stack are released before returning,
// also when translation fails.
//
// Runtime faults of the generated code are not caught.
func Run(prog bytecode.Program, config *RunConfig) (err error) {
	if config == nil {
		config = new(RunConfig)
	}

	if err = prog.CheckSize(); err != nil {
		return
	}

	stackSize := config.StackSize
	if stackSize <= 0 {
		stackSize = runner.DefaultStackSize
	}

	region, err := runner.NewRegion(TextSize(len(prog)))
	if err != nil {
		return
	}
	defer func() {
		if e := region.Close(); e != nil && err == nil {
			err = e
		}
	}()

	obj, err := Compile(&Config{
		Text:     buffer.NewStatic(region.Bytes()),
		OutputFD: config.OutputFD,
	}, prog)
	if err != nil {
		return
	}
	if config.Object != nil {
		*config.Object = *obj
	}

	if err = region.Seal(); err != nil {
		return
	}

	stack, err := runner.NewStack(stackSize)
	if err != nil {
		return
	}
	defer func() {
		if e := stack.Close(); e != nil && err == nil {
			err = e
		}
	}()

	log.Infof("running program of %d bytes", len(prog))

	err = runner.Call(region, int32(obj.EntryAddr), stack)
	return
}
