// Copyright (c) 2024 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/decred/cuckoofilter/internal/version"
	flags "github.com/jessevdk/go-flags"
)

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format, args...)
	os.Exit(1)
}

func usage(parser *flags.Parser) {
	parser.WriteHelp(os.Stderr)
	os.Exit(2)
}

// run executes the active command of the parsed configuration.
func run(cfg *config, command string, in io.Reader, out io.Writer) error {
	secret, err := cfg.readSecret()
	if err != nil {
		return err
	}

	cmd := filterCommand{name: command, cfg: cfg, in: in, out: out}
	hasherName := cfg.Hasher
	switch command {
	case "query":
		if cfg.Query.Args.Filter == "" {
			return errors.New("query requires a filter file")
		}
		cmd.file, err = readFilterFile(cfg.Query.Args.Filter)
	case "info":
		cmd.file, err = readFilterFile(cfg.Info.Args.Filter)
	}
	if err != nil {
		return err
	}
	if cmd.file != nil {
		hasherName = cmd.file.Hasher
		mainLog.Debugf("Loaded filter built with %s", hasherName)
	}
	return runWithHasher(hasherName, secret, cmd)
}

func main() {
	cfg := defaultConfig()
	parser := flags.NewParser(&cfg, flags.Default)
	parser.SubcommandsOptional = true
	_, err := parser.Parse()
	if err != nil {
		var e *flags.Error
		if errors.As(err, &e) && e.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	appName := filepath.Base(os.Args[0])
	if cfg.ShowVersion {
		fmt.Printf("%s version %s (Go version %s %s/%s)\n", appName,
			version.String(), runtime.Version(), runtime.GOOS, runtime.GOARCH)
		os.Exit(0)
	}
	if parser.Active == nil {
		usage(parser)
	}
	if err := cfg.validate(); err != nil {
		fatalf("%s: %v\n", appName, err)
	}
	defer func() {
		if logRotator != nil {
			logRotator.Close()
		}
	}()

	if err := run(&cfg, parser.Active.Name, os.Stdin, os.Stdout); err != nil {
		mainLog.Errorf("%v", err)
		if logRotator != nil {
			logRotator.Close()
		}
		os.Exit(1)
	}
}
