// Copyright (c) 2024 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package cuckoofilter

import (
	"io"
	"testing"

	"github.com/decred/slog"
)

func TestUseLogger(t *testing.T) {
	testLogger := slog.NewBackend(io.Discard).Logger("TEST")
	UseLogger(testLogger)
	defer UseLogger(slog.Disabled)

	if log != testLogger {
		t.Errorf("Expected log to be set to testLogger, got %v", log)
	}
}
