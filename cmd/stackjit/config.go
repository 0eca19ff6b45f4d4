// Copyright (c) 2026 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"

	"github.com/BurntSushi/toml"
	"github.com/docker/go-units"
	"golang.org/x/xerrors"

	"github.com/tsavola/stackjit/runner"
)

// config holds the option values.  A TOML file may provide defaults for the
// options which are not set on the command line.
type config struct {
	Verbose   bool   `toml:"verbose"`
	Assembly  bool   `toml:"assembly"`
	List      bool   `toml:"list"`
	DumpText  bool   `toml:"dump_text"`
	ELF       string `toml:"elf"`
	Interp    bool   `toml:"interp"`
	StepLimit int    `toml:"step_limit"`
	StackSize string `toml:"stack_size"`
}

func defaultConfig() *config {
	return &config{
		StackSize: units.BytesSize(runner.DefaultStackSize),
	}
}

var flagFields = map[string]func(dst, src *config){
	"v":         func(dst, src *config) { dst.Verbose = src.Verbose },
	"S":         func(dst, src *config) { dst.Assembly = src.Assembly },
	"d":         func(dst, src *config) { dst.List = src.List },
	"dumptext":  func(dst, src *config) { dst.DumpText = src.DumpText },
	"elf":       func(dst, src *config) { dst.ELF = src.ELF },
	"interp":    func(dst, src *config) { dst.Interp = src.Interp },
	"steplimit": func(dst, src *config) { dst.StepLimit = src.StepLimit },
	"stacksize": func(dst, src *config) { dst.StackSize = src.StackSize },
}

// merge values from a TOML file, except the explicitly set flags.
func (c *config) merge(filename string, explicit map[string]bool) error {
	file := *c

	md, err := toml.DecodeFile(filename, &file)
	if err != nil {
		return xerrors.Errorf("config: %w", err)
	}

	if keys := md.Undecoded(); len(keys) > 0 {
		return xerrors.Errorf("config: %s: unknown key %q", filename, keys[0].String())
	}

	for name, copyField := range flagFields {
		if !explicit[name] {
			copyField(c, &file)
		}
	}
	return nil
}

func explicitFlags() map[string]bool {
	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) {
		set[f.Name] = true
	})
	return set
}
