// Copyright (c) 2024 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/decred/cuckoofilter"
)

const (
	defaultHasher   = "siphash"
	defaultLogLevel = "info"
)

// config defines the global options and the commands of the utility.
type config struct {
	ShowVersion bool   `short:"V" long:"version" description:"Display version information and exit"`
	Hasher      string `long:"hasher" description:"Hash function used to build filters {siphash, xxh3, xxh3secret, xxh64, fnv, farm, blake3}"`
	SecretFile  string `long:"secretfile" description:"File holding the key material of keyed hashers (16 bytes for siphash, 192 for xxh3secret, 32 for blake3)"`
	DebugLevel  string `short:"d" long:"debuglevel" description:"Logging level for all subsystems {trace, debug, info, warn, error, critical} -- You may also specify <subsystem>=<level>,<subsystem2>=<level>,... to set the log level for individual subsystems"`
	LogFile     string `long:"logfile" description:"Also write logs to the specified file"`

	Build buildCommand `command:"build" description:"Build a filter from newline-delimited items"`
	Query queryCommand `command:"query" description:"Report whether items are members of a filter"`
	Info  infoCommand  `command:"info" description:"Show statistics about a filter"`
}

// buildCommand houses the options and arguments of the build command.
type buildCommand struct {
	Capacity uint `long:"capacity" description:"Number of items the filter is sized for"`
	Args     struct {
		Input  string `positional-arg-name:"input" description:"File of newline-delimited items or - for stdin"`
		Output string `positional-arg-name:"output" description:"Filter file to create"`
	} `positional-args:"yes" required:"yes"`
}

// queryCommand houses the arguments of the query command.
type queryCommand struct {
	Args struct {
		Filter string   `positional-arg-name:"filter" description:"Filter file to query"`
		Items  []string `positional-arg-name:"item" description:"Items to query, read from stdin when none are given"`
	} `positional-args:"yes"`
}

// infoCommand houses the arguments of the info command.
type infoCommand struct {
	Args struct {
		Filter string `positional-arg-name:"filter" description:"Filter file to inspect"`
	} `positional-args:"yes" required:"yes"`
}

// defaultConfig returns the configuration with every default applied.
func defaultConfig() config {
	cfg := config{
		Hasher:     defaultHasher,
		DebugLevel: defaultLogLevel,
	}
	cfg.Build.Capacity = cuckoofilter.DefaultCapacity
	return cfg
}

// readSecret returns the key material in the configured secret file or nil
// when there is none.  Surrounding whitespace is not stripped since the file
// holds raw bytes.
func (cfg *config) readSecret() ([]byte, error) {
	if cfg.SecretFile == "" {
		return nil, nil
	}
	secret, err := os.ReadFile(cfg.SecretFile)
	if err != nil {
		return nil, fmt.Errorf("unable to read secret file: %w", err)
	}
	return secret, nil
}

// validate ensures the global options are sane and applies the logging
// options.
func (cfg *config) validate() error {
	cfg.Hasher = strings.ToLower(cfg.Hasher)
	if err := parseAndSetDebugLevels(cfg.DebugLevel); err != nil {
		return err
	}
	if cfg.LogFile != "" {
		if err := initLogRotator(cfg.LogFile); err != nil {
			return err
		}
	}
	return nil
}
