// Copyright (c) 2024 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package cuckoofilter

const (
	// FingerprintSize is the number of bytes in a fingerprint.
	FingerprintSize = 1

	// BucketSize is the number of fingerprint slots in each bucket.
	BucketSize = 4

	// MaxRebucket is the maximum number of relocations attempted by an
	// insertion before it gives up with ErrNotEnoughSpace.
	MaxRebucket = 500

	// DefaultCapacity is the capacity used by New.
	DefaultCapacity = (1 << 20) - 1

	// bucketBytes is the number of bytes a single bucket occupies in an
	// exported filter.
	bucketBytes = BucketSize * FingerprintSize
)

// Fingerprint is the short tag that is stored in the filter in place of an
// item.  The all-zero pattern is reserved to denote an empty slot, so a valid
// fingerprint always has at least one non-zero byte.
type Fingerprint [FingerprintSize]byte

// emptyFingerprint is the reserved pattern of an unoccupied slot.
var emptyFingerprint Fingerprint

// newFingerprint returns a fingerprint for the provided data along with
// whether or not it is valid.  Data consisting entirely of zero bytes is
// reserved and therefore invalid.
func newFingerprint(data [FingerprintSize]byte) (Fingerprint, bool) {
	fp := Fingerprint(data)
	return fp, !fp.IsEmpty()
}

// IsEmpty returns whether the fingerprint is the reserved empty pattern.
func (fp Fingerprint) IsEmpty() bool {
	return fp == emptyFingerprint
}

// Data returns the raw bytes of the fingerprint.
func (fp Fingerprint) Data() []byte {
	return fp[:]
}
