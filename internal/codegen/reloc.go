// Copyright (c) 2026 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package codegen

import (
	"github.com/tsavola/stackjit/internal/errors"
	"github.com/tsavola/stackjit/internal/gen"
	"github.com/tsavola/stackjit/internal/isa/amd64"
	"github.com/tsavola/stackjit/internal/pan"
)

// resolveRelocs drains the relocation list.  A target which is neither an
// instruction start nor the end of the program is a program error.
func resolveRelocs(p *gen.Prog) {
	text := p.Text.Bytes()

	for {
		r, ok := p.Relocs.Pop()
		if !ok {
			break
		}

		offset, ok := p.Offsets.Lookup(r.Target)
		if !ok {
			pan.Panic(errors.ProgramErrorf("invalid jump target %#x at offset %#x", r.Target, r.Origin))
		}

		amd64.UpdateFarBranch(text, r.Site, p.BodyAddr+offset)
	}
}
