// Copyright (c) 2024 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package cuckoofilter

import "encoding/binary"

// FaI houses a fingerprint along with the two candidate bucket indices of the
// item it was derived from.
//
// The indices are not reduced to the number of buckets of any particular
// filter, so the same FaI may be used with every filter that shares the hasher
// it was computed with.  This is useful to test or add the same item across
// multiple filters without hashing it more than once.
type FaI struct {
	Fp Fingerprint
	I1 uint
	I2 uint
}

// splitHash splits a 64-bit hash into the upper half used for the fingerprint
// and the lower half used for the index.
func splitHash(h uint64) (fpHash, indexHash uint32) {
	return uint32(h >> 32), uint32(h)
}

// altIndex returns the other candidate bucket index for a fingerprint that
// lives at index i.  It is an involution: altIndex(h, fp, altIndex(h, fp, i))
// is i.
func altIndex(h Hasher, fp Fingerprint, i uint) uint {
	_, indexHash := splitHash(h.HashSlice(fp.Data()))
	return i ^ uint(indexHash)
}

// deriveFingerprint derives a valid fingerprint from the most significant bytes
// of fpHash.  The reserved empty pattern is avoided by adding an increasing
// amount to every byte until the result is valid.
func deriveFingerprint(fpHash uint32) Fingerprint {
	var raw [4]byte
	binary.BigEndian.PutUint32(raw[:], fpHash)

	var data [FingerprintSize]byte
	for n := byte(0); ; n++ {
		for i := range data {
			data[i] = raw[i] + n
		}
		if fp, ok := newFingerprint(data); ok {
			return fp
		}
	}
}

// faiFromHash derives the fingerprint and candidate indices for an item with
// the provided 64-bit hash.
func faiFromHash(h Hasher, itemHash uint64) FaI {
	fpHash, indexHash := splitHash(itemHash)
	fp := deriveFingerprint(fpHash)
	i1 := uint(indexHash)
	return FaI{Fp: fp, I1: i1, I2: altIndex(h, fp, i1)}
}

// faiFromValue returns the FaI of an arbitrary value hashed via the
// incremental hasher of h.
func faiFromValue(h Hasher, v any) FaI {
	return faiFromHash(h, HashValue(h, v))
}

// faiFromSlice returns the FaI of a byte slice hashed via the fast path of h.
func faiFromSlice(h Hasher, data []byte) FaI {
	return faiFromHash(h, h.HashSlice(data))
}

// RandomIndex returns one of the two candidate indices with equal probability.
func (fai FaI) RandomIndex(r RandSource) uint {
	if r.IntN(2) == 0 {
		return fai.I1
	}
	return fai.I2
}
