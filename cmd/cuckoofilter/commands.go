// Copyright (c) 2024 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/decred/cuckoofilter"
	"github.com/decred/cuckoofilter/internal/progresslog"
)

// filterCommand is a command that operates on a filter.  The filter file is
// nil for commands that create a filter.
type filterCommand struct {
	name string
	cfg  *config
	file *filterFile
	out  io.Writer
	in   io.Reader
}

// runFilterCommand runs the command with the provided hasher.
func runFilterCommand[H cuckoofilter.Hasher](cmd filterCommand, hasherName string, h H) error {
	switch cmd.name {
	case "build":
		return runBuild(cmd, hasherName, h)
	case "query":
		return runQuery(cmd, h)
	case "info":
		return runInfo(cmd, h)
	}
	return fmt.Errorf("unknown command %q", cmd.name)
}

// scanItems invokes fn for every non-empty line read from r.
func scanItems(r io.Reader, fn func(item []byte) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		item := scanner.Bytes()
		if len(item) == 0 {
			continue
		}
		if err := fn(item); err != nil {
			return err
		}
	}
	return scanner.Err()
}

// runBuild adds every item of the input to a new filter and writes it to the
// output file.  Items that cannot be placed are counted and logged but do not
// stop the build.
func runBuild[H cuckoofilter.Hasher](cmd filterCommand, hasherName string, h H) error {
	opts := &cmd.cfg.Build
	in := cmd.in
	if opts.Args.Input != "-" {
		file, err := os.Open(opts.Args.Input)
		if err != nil {
			return err
		}
		defer file.Close()
		in = file
	}

	start := time.Now()
	filter := cuckoofilter.WithCapacity(h, opts.Capacity)
	mainLog.Infof("Building filter with %d buckets (%d slots) using %s",
		filter.NumBuckets(), filter.Capacity(), hasherName)
	progress := progresslog.New("Processed", mainLog)
	var total, failed uint64
	err := scanItems(in, func(item []byte) error {
		total++
		err := filter.AddSlice(item)
		if err != nil {
			if !errors.Is(err, cuckoofilter.ErrNotEnoughSpace) {
				return err
			}
			failed++
		}
		progress.LogItem(err == nil, filter.LoadFactor(), false)
		return nil
	})
	if err != nil {
		return err
	}
	progress.Flush(filter.LoadFactor())
	if failed > 0 {
		mainLog.Warnf("%d of %d items could not be placed and were dropped "+
			"along with a relocated fingerprint; use a larger --capacity",
			failed, total)
	}

	length, loadFactor := filter.Len(), filter.LoadFactor()
	if err := writeFilterFile(opts.Args.Output, hasherName, filter); err != nil {
		return err
	}
	mainLog.Infof("Wrote filter with %d fingerprints (load factor %.4f) to %s "+
		"in %v", length, loadFactor, opts.Args.Output,
		time.Since(start).Truncate(time.Millisecond))
	return nil
}

// runQuery reports whether each item is a member of the filter.
func runQuery[H cuckoofilter.Hasher](cmd filterCommand, h H) error {
	filter, err := cuckoofilter.FromExported(h, cmd.file.exported())
	if err != nil {
		return err
	}
	report := func(item []byte) error {
		result := "absent"
		if filter.ContainsSlice(item) {
			result = "present"
		}
		_, err := fmt.Fprintf(cmd.out, "%s\t%s\n", item, result)
		return err
	}

	items := cmd.cfg.Query.Args.Items
	if len(items) == 0 {
		return scanItems(cmd.in, report)
	}
	for _, item := range items {
		if err := report([]byte(item)); err != nil {
			return err
		}
	}
	return nil
}

// runInfo writes statistics about the filter.
func runInfo[H cuckoofilter.Hasher](cmd filterCommand, h H) error {
	filter, err := cuckoofilter.FromExported(h, cmd.file.exported())
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.out, "hasher:       %s\n"+
		"items:        %d\n"+
		"buckets:      %d\n"+
		"capacity:     %d\n"+
		"load factor:  %.4f\n"+
		"memory usage: %d bytes\n", cmd.file.Hasher, filter.Len(),
		filter.NumBuckets(), filter.Capacity(), filter.LoadFactor(),
		filter.MemoryUsage())
	return err
}
