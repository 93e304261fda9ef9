// Copyright (c) 2024 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package progresslog

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/decred/slog"
)

var (
	backendLog = slog.NewBackend(io.Discard)
	testLog    = backendLog.Logger("TEST")
)

// TestLogItem ensures the counters are accumulated and reset as expected via a
// test logger.
func TestLogItem(t *testing.T) {
	tests := []struct {
		name             string
		reset            bool
		added            bool
		final            bool
		inputLastLogTime time.Time
		wantReceived     int64
		wantFailed       int64
	}{{
		name:             "round 1, item 0, added, last log time < 10 secs ago",
		added:            true,
		inputLastLogTime: time.Now(),
		wantReceived:     1,
		wantFailed:       0,
	}, {
		name:             "round 1, item 1, failed, last log time < 10 secs ago",
		added:            false,
		inputLastLogTime: time.Now(),
		wantReceived:     2,
		wantFailed:       1,
	}, {
		name:             "round 1, item 2, added, last log time < 10 secs ago, final",
		added:            true,
		final:            true,
		inputLastLogTime: time.Now(),
		wantReceived:     0,
		wantFailed:       0,
	}, {
		name:             "round 2, item 0, failed, last log time < 10 secs ago",
		reset:            true,
		added:            false,
		inputLastLogTime: time.Now(),
		wantReceived:     1,
		wantFailed:       1,
	}, {
		name:             "round 2, item 1, added, last log time > 10 secs ago",
		added:            true,
		inputLastLogTime: time.Now().Add(-11 * time.Second),
		wantReceived:     0,
		wantFailed:       0,
	}}

	progressLogger := New("Added", testLog)
	for _, test := range tests {
		if test.reset {
			progressLogger = New("Added", testLog)
		}
		progressLogger.SetLastLogTime(test.inputLastLogTime)
		progressLogger.LogItem(test.added, 0.5, test.final)
		if progressLogger.receivedItems != test.wantReceived ||
			progressLogger.failedItems != test.wantFailed {

			t.Errorf("%s: unexpected counters -- got received %d, failed %d, "+
				"want received %d, failed %d", test.name,
				progressLogger.receivedItems, progressLogger.failedItems,
				test.wantReceived, test.wantFailed)
		}
	}
}

// TestFlush ensures flushing logs the pending totals with the expected message
// and does nothing when there is nothing pending.
func TestFlush(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.NewBackend(&buf).Logger("TEST")
	progressLogger := New("Added", logger)

	progressLogger.Flush(0)
	if buf.Len() != 0 {
		t.Fatalf("unexpected log output with nothing pending: %q", buf.String())
	}

	progressLogger.LogItem(true, 0.25, false)
	progressLogger.LogItem(false, 0.25, false)
	progressLogger.Flush(0.25)
	got := buf.String()
	for _, want := range []string{"Added 2 items", "1 failed",
		"load factor 0.2500"} {

		if !strings.Contains(got, want) {
			t.Errorf("log output %q does not contain %q", got, want)
		}
	}
	if progressLogger.receivedItems != 0 || progressLogger.failedItems != 0 {
		t.Fatal("counters not reset after flush")
	}
}
