// Copyright (c) 2024 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package cuckoofilter

import "github.com/decred/dcrd/crypto/rand"

// RandSource supplies the random choices made while relocating fingerprints.
//
// Both *rand.PRNG from github.com/decred/dcrd/crypto/rand and *rand.Rand from
// math/rand/v2 satisfy it.
type RandSource interface {
	// IntN returns a uniform random integer in [0,n).
	IntN(n int) int
}

// globalRand is a RandSource backed by the process-wide PRNG.  It is safe for
// concurrent access.
type globalRand struct{}

func (globalRand) IntN(n int) int {
	return rand.IntN(n)
}

// defaultRand is the source used when none is configured.
var defaultRand RandSource = globalRand{}
