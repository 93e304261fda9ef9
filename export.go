// Copyright (c) 2024 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package cuckoofilter

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// ExportedFilter is a minimal representation of a filter that may be stored or
// transferred and later turned back into a fully functioning filter with
// FromExported.
//
// It carries no information about the hasher, so the filter must be
// reconstructed with a hasher equivalent to the one it was exported from.
// Otherwise lookups silently fail.
type ExportedFilter struct {
	// Values holds the fingerprints of every slot of every bucket in index
	// order, with empty slots as zero bytes.
	Values []byte `cbor:"1,keyasint"`

	// Length is the number of valid fingerprints in Values.
	Length uint `cbor:"2,keyasint"`
}

// values returns the fingerprints of all buckets, in index order, as a single
// byte slice.
func (f *Filter[H]) values() []byte {
	values := make([]byte, 0, len(f.buckets)*bucketBytes)
	for i := range f.buckets {
		data := f.buckets[i].fingerprintData()
		values = append(values, data[:]...)
	}
	return values
}

// Export returns the hasher of the filter along with a snapshot of its
// contents.  The filter is not modified.
func (f *Filter[H]) Export() (H, *ExportedFilter) {
	return f.hasher, &ExportedFilter{
		Values: f.values(),
		Length: f.count,
	}
}

// IntoExported returns the hasher of the filter along with its contents and
// releases the memory held by the filter.  The filter must not be used
// afterwards.
func (f *Filter[H]) IntoExported() (H, *ExportedFilter) {
	hasher, exported := f.Export()
	f.buckets = nil
	f.mask = 0
	f.count = 0
	return hasher, exported
}

// checkShape returns an error when the values do not describe a non-zero power
// of two number of whole buckets.
func (e *ExportedFilter) checkShape() error {
	n := len(e.Values)
	if n == 0 || n%bucketBytes != 0 {
		str := fmt.Sprintf("exported filter values must be a non-zero "+
			"multiple of %d bytes, got %d", bucketBytes, n)
		return makeError(ErrMalformedExport, str)
	}
	numBuckets := uint(n / bucketBytes)
	if numBuckets&(numBuckets-1) != 0 {
		str := fmt.Sprintf("exported filter bucket count must be a power "+
			"of two, got %d", numBuckets)
		return makeError(ErrMalformedExport, str)
	}
	return nil
}

// Validate returns an error when the exported data is malformed or when its
// recorded length does not match the number of fingerprints it holds.
//
// FromExported trusts the recorded length in order to avoid scanning every
// slot, so callers that import data from untrusted sources should call this
// first.
func (e *ExportedFilter) Validate() error {
	if err := e.checkShape(); err != nil {
		return err
	}
	var occupied uint
	for i := 0; i < len(e.Values); i += bucketBytes {
		b := bucketFromBytes(e.Values[i : i+bucketBytes])
		occupied += uint(b.numOccupied())
	}
	if occupied != e.Length {
		str := fmt.Sprintf("exported filter records %d items, but holds %d "+
			"fingerprints", e.Length, occupied)
		return makeError(ErrLengthMismatch, str)
	}
	return nil
}

// exportedFilterWire is ExportedFilter without its methods.
type exportedFilterWire ExportedFilter

// MarshalBinary encodes the exported filter as CBOR.
func (e *ExportedFilter) MarshalBinary() ([]byte, error) {
	return cbor.Marshal((*exportedFilterWire)(e))
}

// UnmarshalBinary decodes an exported filter previously encoded with
// MarshalBinary.
func (e *ExportedFilter) UnmarshalBinary(data []byte) error {
	return cbor.Unmarshal(data, (*exportedFilterWire)(e))
}

// FromExported reconstructs a filter from exported data and the hasher it was
// exported with.  The new filter uses the default random source.
//
// The recorded length is used as is.  See Validate.
func FromExported[H Hasher](hasher H, exported *ExportedFilter) (*Filter[H], error) {
	if err := exported.checkShape(); err != nil {
		return nil, err
	}

	numBuckets := len(exported.Values) / bucketBytes
	buckets := make([]bucket, numBuckets)
	for i := range buckets {
		offset := i * bucketBytes
		buckets[i] = bucketFromBytes(exported.Values[offset : offset+bucketBytes])
	}
	log.Tracef("Imported filter with %d buckets and %d items", numBuckets,
		exported.Length)

	return &Filter[H]{
		buckets: buckets,
		mask:    uint(numBuckets - 1),
		count:   exported.Length,
		hasher:  hasher,
		rng:     defaultRand,
	}, nil
}
