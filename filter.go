// Copyright (c) 2024 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package cuckoofilter

import (
	"fmt"
	"math/bits"
	"unsafe"
)

// Config houses the parameters of a new filter.
type Config[H Hasher] struct {
	// Hasher derives fingerprints and bucket indices for the filter.
	Hasher H

	// Capacity is the number of items the filter is sized for.  It is rounded
	// up so that the number of buckets is a power of two and is at least one.
	Capacity uint

	// Rand is the source of the random choices made while relocating
	// fingerprints.  The process-wide PRNG of the dcrd crypto/rand package is
	// used when it is nil.
	Rand RandSource
}

// Filter implements a cuckoo filter, which is a probabilistic data structure
// for approximate set membership that, unlike a classic Bloom filter, supports
// deletion.
//
// Each item is reduced to a short fingerprint that is stored in one of two
// candidate buckets.  The second candidate is derived from the first and the
// fingerprint alone (partial-key cuckoo hashing), which allows a stored
// fingerprint to be relocated to its other bucket without the original item
// when room needs to be made for a new one.
//
// Items may be provided in three forms:
//
//   - Arbitrary values, such as strings or integers, hashed via the
//     incremental hasher of the configured Hasher (Add, Contains, ...)
//   - Raw byte slices hashed via the fast path of the Hasher (AddSlice,
//     ContainsSlice, ...)
//   - Precomputed FaI values obtained from Fingerprint or FingerprintSlice
//     (AddFingerprint, ContainsFingerprint, ...)
//
// Note that the same number has different hashes depending on its type, so,
// for example, int32(4711) and int64(4711) are different items.
//
// Read-only methods may be called concurrently with each other, however, the
// filter is not safe for concurrent mutation.
type Filter[H Hasher] struct {
	buckets []bucket

	// mask is len(buckets) - 1.  Since the number of buckets is always a
	// power of two, applying it is equivalent to reducing modulo the number
	// of buckets and it preserves the symmetry of alternate indices.
	mask uint

	count  uint
	hasher H
	rng    RandSource
}

// nextPow2 returns the smallest power of two that is greater than or equal to
// n.  It returns 1 for 0.
func nextPow2(n uint) uint {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(n-1)
}

// numBucketsForCapacity returns the number of buckets for a filter with the
// provided capacity.
func numBucketsForCapacity(capacity uint) uint {
	return max(1, nextPow2(capacity)/BucketSize)
}

// NewFilter returns a new empty filter for the provided configuration.
func NewFilter[H Hasher](cfg *Config[H]) *Filter[H] {
	rng := cfg.Rand
	if rng == nil {
		rng = defaultRand
	}
	numBuckets := numBucketsForCapacity(cfg.Capacity)
	return &Filter[H]{
		buckets: make([]bucket, numBuckets),
		mask:    numBuckets - 1,
		hasher:  cfg.Hasher,
		rng:     rng,
	}
}

// WithCapacity returns a new empty filter sized for the provided capacity that
// uses the given hasher.
func WithCapacity[H Hasher](hasher H, capacity uint) *Filter[H] {
	return NewFilter(&Config[H]{Hasher: hasher, Capacity: capacity})
}

// New returns a new empty filter with DefaultCapacity and a zero-keyed
// SipHasher.
func New() *Filter[SipHasher] {
	return WithCapacity(SipHasher{}, DefaultCapacity)
}

// Hasher returns the hasher the filter was created with.
func (f *Filter[H]) Hasher() H {
	return f.hasher
}

// Fingerprint returns the fingerprint and candidate indices of v.  It is useful
// to amortize the hashing cost when the same item is used with several filters
// that share the same hasher.
func (f *Filter[H]) Fingerprint(v any) FaI {
	return faiFromValue(f.hasher, v)
}

// FingerprintSlice returns the fingerprint and candidate indices of data.
func (f *Filter[H]) FingerprintSlice(data []byte) FaI {
	return faiFromSlice(f.hasher, data)
}

// Contains returns whether v is probably in the filter.  There is a small
// probability of false positives, but none of false negatives for items that
// were added successfully and not deleted.
func (f *Filter[H]) Contains(v any) bool {
	return f.ContainsFingerprint(faiFromValue(f.hasher, v))
}

// ContainsSlice returns whether data is probably in the filter.
func (f *Filter[H]) ContainsSlice(data []byte) bool {
	return f.ContainsFingerprint(faiFromSlice(f.hasher, data))
}

// ContainsFingerprint returns whether the fingerprint is present in either of
// its candidate buckets.
func (f *Filter[H]) ContainsFingerprint(fai FaI) bool {
	return f.buckets[fai.I1&f.mask].contains(fai.Fp) ||
		f.buckets[fai.I2&f.mask].contains(fai.Fp)
}

// Add inserts v into the filter.  It returns an error with the kind
// ErrNotEnoughSpace when no room could be made, which becomes more likely as
// the filter approaches its capacity.
//
// NOTE: When ErrNotEnoughSpace is returned, v was actually added to the filter,
// but some other, random, item was dropped in order to make room for it.
func (f *Filter[H]) Add(v any) error {
	return f.AddFingerprint(faiFromValue(f.hasher, v))
}

// AddSlice inserts data into the filter.  See Add for details.
func (f *Filter[H]) AddSlice(data []byte) error {
	return f.AddFingerprint(faiFromSlice(f.hasher, data))
}

// AddFingerprint inserts a precomputed fingerprint into the filter.  See Add
// for details.
func (f *Filter[H]) AddFingerprint(fai FaI) error {
	if f.put(fai.Fp, fai.I1) || f.put(fai.Fp, fai.I2) {
		return nil
	}

	// Both candidates are full, so relocate a random occupant of one of them
	// to its alternate bucket and keep going with whatever fingerprint that
	// displaces in turn.
	i := fai.RandomIndex(f.rng)
	fp := fai.Fp
	for attempt := 0; attempt < MaxRebucket; attempt++ {
		b := &f.buckets[i&f.mask]
		slot := f.rng.IntN(BucketSize)
		b[slot], fp = fp, b[slot]

		i = altIndex(f.hasher, fp, i)
		if f.put(fp, i) {
			return nil
		}
	}

	// The fingerprint at hand at this point belongs to an item that was
	// previously stored and is now lost.
	log.Debugf("Dropped fingerprint %x after %d relocations (%d items, %d "+
		"buckets)", fp[:], MaxRebucket, f.count, len(f.buckets))
	str := fmt.Sprintf("no room after %d relocations in a filter with %d "+
		"items and %d slots", MaxRebucket, f.count, f.Capacity())
	return makeError(ErrNotEnoughSpace, str)
}

// TestAndAdd adds v to the filter only if it is not already probably present.
// It returns true when v was added.
func (f *Filter[H]) TestAndAdd(v any) (bool, error) {
	return f.TestAndAddFingerprint(faiFromValue(f.hasher, v))
}

// TestAndAddSlice adds data to the filter only if it is not already probably
// present.  It returns true when data was added.
func (f *Filter[H]) TestAndAddSlice(data []byte) (bool, error) {
	return f.TestAndAddFingerprint(faiFromSlice(f.hasher, data))
}

// TestAndAddFingerprint adds a precomputed fingerprint to the filter only if it
// is not already present.  It returns true when it was added.
func (f *Filter[H]) TestAndAddFingerprint(fai FaI) (bool, error) {
	if f.ContainsFingerprint(fai) {
		return false, nil
	}
	if err := f.AddFingerprint(fai); err != nil {
		return false, err
	}
	return true, nil
}

// Delete removes one occurrence of v from the filter and returns whether it was
// found.
//
// Only items that were previously added should be deleted.  Deleting an item
// that was never added may remove another item that shares its fingerprint
// and bucket.
func (f *Filter[H]) Delete(v any) bool {
	return f.DeleteFingerprint(faiFromValue(f.hasher, v))
}

// DeleteSlice removes one occurrence of data from the filter and returns
// whether it was found.
func (f *Filter[H]) DeleteSlice(data []byte) bool {
	return f.DeleteFingerprint(faiFromSlice(f.hasher, data))
}

// DeleteFingerprint removes one occurrence of a precomputed fingerprint from
// the filter and returns whether it was found.
func (f *Filter[H]) DeleteFingerprint(fai FaI) bool {
	return f.remove(fai.Fp, fai.I1) || f.remove(fai.Fp, fai.I2)
}

// Len returns the number of items in the filter.
func (f *Filter[H]) Len() uint {
	return f.count
}

// IsEmpty returns whether the filter holds no items.
func (f *Filter[H]) IsEmpty() bool {
	return f.count == 0
}

// NumBuckets returns the number of buckets in the filter.
func (f *Filter[H]) NumBuckets() uint {
	return uint(len(f.buckets))
}

// Capacity returns the total number of fingerprint slots in the filter.
func (f *Filter[H]) Capacity() uint {
	return uint(len(f.buckets)) * BucketSize
}

// LoadFactor returns the fraction of slots that are occupied.
func (f *Filter[H]) LoadFactor() float64 {
	return float64(f.count) / float64(f.Capacity())
}

// MemoryUsage returns the number of bytes the filter occupies in memory.
func (f *Filter[H]) MemoryUsage() uint {
	return uint(unsafe.Sizeof(*f)) + uint(len(f.buckets))*uint(unsafe.Sizeof(bucket{}))
}

// Clear removes all items from the filter.
func (f *Filter[H]) Clear() {
	if f.IsEmpty() {
		return
	}
	for i := range f.buckets {
		f.buckets[i].clear()
	}
	f.count = 0
}

// put inserts the fingerprint in the bucket with index i when it has room.
func (f *Filter[H]) put(fp Fingerprint, i uint) bool {
	if f.buckets[i&f.mask].insert(fp) {
		f.count++
		return true
	}
	return false
}

// remove deletes the fingerprint from the bucket with index i when present.
func (f *Filter[H]) remove(fp Fingerprint, i uint) bool {
	if f.buckets[i&f.mask].delete(fp) {
		// The count can only already be zero for filters imported with an
		// understated length.
		if f.count > 0 {
			f.count--
		}
		return true
	}
	return false
}
