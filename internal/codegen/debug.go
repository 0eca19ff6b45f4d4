// Copyright (c) 2016 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package codegen

import (
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("stackjit.codegen")

// debugging is evaluated once per translation.
func debugging() bool {
	return log.AllowLevel(commonlog.Debug)
}
