// Copyright (c) 2024 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/binary"
	"fmt"

	"github.com/decred/cuckoofilter"
)

// hasherNames are the names of the supported hashers as accepted by the
// --hasher option and recorded in filter files.
var hasherNames = []string{"siphash", "xxh3", "xxh3secret", "xxh64", "fnv",
	"farm", "blake3"}

// checkSecretLen returns an error when the key material for the named hasher
// does not have one of the allowed lengths.
func checkSecretLen(name string, secret []byte, lens ...int) error {
	for _, l := range lens {
		if len(secret) == l {
			return nil
		}
	}
	return fmt.Errorf("hasher %s requires key material of %v bytes, got %d",
		name, lens, len(secret))
}

// runWithHasher selects the hasher by name, deriving its key from the
// provided secret when it is keyed, and invokes the command with it.
func runWithHasher(name string, secret []byte, cmd filterCommand) error {
	switch name {
	case "siphash":
		if err := checkSecretLen(name, secret, 0, 16); err != nil {
			return err
		}
		h := cuckoofilter.SipHasher{}
		if len(secret) == 16 {
			h = cuckoofilter.NewSipHasher(binary.LittleEndian.Uint64(secret),
				binary.LittleEndian.Uint64(secret[8:]))
		}
		return runFilterCommand(cmd, name, h)

	case "xxh3":
		if err := checkSecretLen(name, secret, 0); err != nil {
			return err
		}
		return runFilterCommand(cmd, name, cuckoofilter.XXH3Hasher{})

	case "xxh3secret":
		if err := checkSecretLen(name, secret, cuckoofilter.XXH3SecretSize); err != nil {
			return err
		}
		var s [cuckoofilter.XXH3SecretSize]byte
		copy(s[:], secret)
		return runFilterCommand(cmd, name, cuckoofilter.NewXXH3HasherWithSecret(s))

	case "xxh64":
		if err := checkSecretLen(name, secret, 0); err != nil {
			return err
		}
		return runFilterCommand(cmd, name, cuckoofilter.XXH64Hasher{})

	case "fnv":
		if err := checkSecretLen(name, secret, 0); err != nil {
			return err
		}
		return runFilterCommand(cmd, name, cuckoofilter.FNVHasher{})

	case "farm":
		if err := checkSecretLen(name, secret, 0); err != nil {
			return err
		}
		return runFilterCommand(cmd, name, cuckoofilter.FarmHasher{})

	case "blake3":
		if err := checkSecretLen(name, secret, 0, 32); err != nil {
			return err
		}
		h := cuckoofilter.Blake3Hasher{}
		if len(secret) == 32 {
			h = cuckoofilter.NewBlake3Hasher([32]byte(secret))
		}
		return runFilterCommand(cmd, name, h)
	}

	return fmt.Errorf("unknown hasher %q -- supported hashers %v", name,
		hasherNames)
}
