// Copyright (c) 2019 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package stackjit translates stack machine bytecode to x86-64 machine code and
runs it in-process.

The translation is a single pass over the program which emits a fixed native
template per instruction, followed by a relocation pass which patches branch
displacements.  The emulated register file lives in the native stack frame,
and the operand stack is the native stack.

# Errors

ProgramError type is accessible via errors subpackage.  Such errors are
returned when the program is malformed or too large.  Other types of errors
indicate a memory allocation failure or an internal translator error.

Default buffer implementations use the buffer.ErrSizeLimit error to indicate
that generated code doesn't fit in a target buffer.  It is a ProgramError.

# Execution

Generated code is not sandboxed.  Division by zero, operand stack underflow
and other runtime faults of a well-formed but misbehaving program crash the
process.
*/
package stackjit
