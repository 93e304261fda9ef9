// Copyright (c) 2024 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package cuckoofilter

// bucket houses the fingerprints of items that map to the same index.  Empty
// slots may appear anywhere and the same fingerprint may appear more than once.
type bucket [BucketSize]Fingerprint

// insert places the fingerprint in the first empty slot and returns whether
// there was room for it.
func (b *bucket) insert(fp Fingerprint) bool {
	for i := range b {
		if b[i].IsEmpty() {
			b[i] = fp
			return true
		}
	}
	return false
}

// contains returns whether the bucket holds the fingerprint.
func (b *bucket) contains(fp Fingerprint) bool {
	_, ok := b.fingerprintIndex(fp)
	return ok
}

// fingerprintIndex returns the index of the first slot that holds the
// fingerprint.
func (b *bucket) fingerprintIndex(fp Fingerprint) (int, bool) {
	for i := range b {
		if b[i] == fp {
			return i, true
		}
	}
	return 0, false
}

// delete empties the first slot that holds the fingerprint and returns whether
// one was found.
func (b *bucket) delete(fp Fingerprint) bool {
	i, ok := b.fingerprintIndex(fp)
	if !ok {
		return false
	}
	b[i] = emptyFingerprint
	return true
}

// clear empties all slots.
func (b *bucket) clear() {
	*b = bucket{}
}

// isFull returns whether every slot is occupied.
func (b *bucket) isFull() bool {
	for i := range b {
		if b[i].IsEmpty() {
			return false
		}
	}
	return true
}

// numOccupied returns the number of non-empty slots.
func (b *bucket) numOccupied() int {
	var n int
	for i := range b {
		if !b[i].IsEmpty() {
			n++
		}
	}
	return n
}

// fingerprintData returns the slots serialized in slot order.
func (b *bucket) fingerprintData() [bucketBytes]byte {
	var data [bucketBytes]byte
	for i := range b {
		copy(data[i*FingerprintSize:], b[i][:])
	}
	return data
}

// bucketFromBytes reconstructs a bucket from data produced by fingerprintData.
// The chunk must be exactly bucketBytes long.
func bucketFromBytes(chunk []byte) bucket {
	var b bucket
	for i := range b {
		copy(b[i][:], chunk[i*FingerprintSize:(i+1)*FingerprintSize])
	}
	return b
}
