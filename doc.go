// Copyright (c) 2024 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package cuckoofilter implements a cuckoo filter.

A cuckoo filter is a probabilistic data structure for approximate set
membership queries.  Similar to a Bloom filter, it reports whether an item is
probably in the set with a tunable false positive rate and no false negatives.
Unlike a Bloom filter, items may also be deleted, and for moderate false
positive targets it typically occupies less space.

# Design

The filter stores a 1-byte fingerprint per item in an array of buckets with 4
slots each, where the number of buckets is a power of two.  Every item has two
candidate buckets.  The first is derived from the hash of the item and the
second from the first and the hash of the fingerprint:

	i2 = i1 XOR hash(fingerprint)

Since XOR is its own inverse, the other candidate of any stored fingerprint can
be computed from the bucket it lives in and the fingerprint itself.  When both
candidates of a new item are full, a random occupant is evicted to its other
candidate, possibly evicting another occupant in turn, for up to MaxRebucket
attempts.  When all attempts fail, ErrNotEnoughSpace is returned, and the
fingerprint displaced last is dropped from the filter.

# Hashing

The Hasher interface supplies both an incremental hasher, used to hash
arbitrary values, and a one-shot fast path for byte slices.  Several
implementations are provided: SipHasher (the default), XXH3Hasher, XXH64Hasher,
FNVHasher, FarmHasher and Blake3Hasher.

# Exporting

Export produces an ExportedFilter that holds the raw fingerprint data and the
number of items, which FromExported turns back into a filter.  The exported
form does not identify the hasher, so the same hasher must be provided on
import.

# Concurrency

Read-only methods may be called concurrently, however, mutating methods require
exclusive access.
*/
package cuckoofilter
