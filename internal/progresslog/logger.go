// Copyright (c) 2024 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package progresslog provides periodic progress logging while items are
// bulk-loaded into a filter.
package progresslog

import (
	"sync"
	"time"

	"github.com/decred/slog"
)

// logInterval is the minimum amount of time between progress messages.
const logInterval = 10 * time.Second

// Logger provides periodic logging of the number of items added to a filter
// and the number of items that could not be placed.
type Logger struct {
	sync.Mutex
	subsystemLogger slog.Logger
	progressAction  string

	receivedItems int64
	failedItems   int64
	lastLogTime   time.Time
}

// New returns a new item progress logger.
//
// The progress message is templated as follows:
//
//	{progressAction} {numProcessed} {items|item} in the last {timePeriod}
//	({numFailed} failed, load factor {loadFactor})
func New(progressMessage string, logger slog.Logger) *Logger {
	return &Logger{
		lastLogTime:     time.Now(),
		progressAction:  progressMessage,
		subsystemLogger: logger,
	}
}

// LogItem records a processed item and logs an information message with the
// totals since the previous message when at least 10 seconds have passed or
// when final is set.  Nothing is logged when no items were recorded since the
// previous message.
func (l *Logger) LogItem(added bool, loadFactor float64, final bool) {
	l.Lock()
	defer l.Unlock()

	l.receivedItems++
	if !added {
		l.failedItems++
	}
	l.flush(loadFactor, final)
}

// Flush logs any items recorded since the previous message regardless of the
// time that has passed.
func (l *Logger) Flush(loadFactor float64) {
	l.Lock()
	l.flush(loadFactor, true)
	l.Unlock()
}

// flush logs the pending totals when due.
//
// This function MUST be called with the embedded mutex held (for writes).
func (l *Logger) flush(loadFactor float64, force bool) {
	now := time.Now()
	duration := now.Sub(l.lastLogTime)
	if l.receivedItems == 0 || (!force && duration < logInterval) {
		return
	}

	// Truncate the duration to 10s of milliseconds.
	tDuration := duration.Truncate(10 * time.Millisecond)

	itemStr := "items"
	if l.receivedItems == 1 {
		itemStr = "item"
	}
	l.subsystemLogger.Infof("%s %d %s in the last %s (%d failed, load "+
		"factor %.4f)", l.progressAction, l.receivedItems, itemStr, tDuration,
		l.failedItems, loadFactor)

	l.receivedItems = 0
	l.failedItems = 0
	l.lastLogTime = now
}

// SetLastLogTime updates the last time data was logged to the provided time.
func (l *Logger) SetLastLogTime(time time.Time) {
	l.Lock()
	l.lastLogTime = time
	l.Unlock()
}
