// Copyright (c) 2024 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package cuckoofilter

import (
	"encoding"
	"encoding/binary"
	"fmt"
	"hash"
	"hash/fnv"
	"math"

	"github.com/cespare/xxhash"
	"github.com/dchest/siphash"
	farm "github.com/dgryski/go-farm"
	"github.com/fxamacker/cbor/v2"
	"github.com/zeebo/xxh3"
	"lukechampine.com/blake3"
)

// XXH3SecretSize is the size of the secret accepted by
// NewXXH3HasherWithSecret.
const XXH3SecretSize = 192

// Hasher is the hashing capability a filter is parameterized with.  All
// fingerprints and bucket indices are derived from the 64-bit values it
// produces, so filters that exchange fingerprints or exported data must use
// equivalent hashers.
//
// Implementations must be deterministic: every hash.Hash64 returned by New
// must produce identical results for identical input, and HashSlice must not
// depend on any state mutated by prior calls.
type Hasher interface {
	// New returns a fresh incremental hasher.  It is used to hash arbitrary
	// values.
	New() hash.Hash64

	// HashSlice returns the hash of the provided bytes.  It is the fast path
	// used for raw byte slices and for deriving alternate bucket indices.
	HashSlice(data []byte) uint64
}

// SipHasher hashes with SipHash-2-4.  The zero value uses an all-zero key which
// makes it the deterministic default for filters that are exported and later
// imported elsewhere.
type SipHasher struct {
	k0, k1 uint64
}

// NewSipHasher returns a SipHasher keyed with the provided key halves.
func NewSipHasher(k0, k1 uint64) SipHasher {
	return SipHasher{k0: k0, k1: k1}
}

// New returns a fresh SipHash-2-4 hasher for the configured key.
func (h SipHasher) New() hash.Hash64 {
	var key [16]byte
	binary.LittleEndian.PutUint64(key[0:8], h.k0)
	binary.LittleEndian.PutUint64(key[8:16], h.k1)
	return siphash.New(key[:])
}

// HashSlice returns the SipHash-2-4 digest of data.
func (h SipHasher) HashSlice(data []byte) uint64 {
	return siphash.Hash(h.k0, h.k1, data)
}

// XXH3Hasher hashes with the 64-bit variant of XXH3.  The zero value uses the
// default secret.
type XXH3Hasher struct {
	seed   uint64
	seeded bool
}

// NewXXH3HasherWithSecret returns an XXH3Hasher keyed by a user supplied
// secret.  The secret is folded into the 64-bit seed from which XXH3 derives
// its custom secret, so distinct secrets yield independent hash functions.
func NewXXH3HasherWithSecret(secret [XXH3SecretSize]byte) XXH3Hasher {
	return XXH3Hasher{seed: xxh3.Hash(secret[:]), seeded: true}
}

// New returns a fresh streaming XXH3 hasher.
func (h XXH3Hasher) New() hash.Hash64 {
	if h.seeded {
		return xxh3.NewSeed(h.seed)
	}
	return xxh3.New()
}

// HashSlice returns the XXH3 digest of data.
func (h XXH3Hasher) HashSlice(data []byte) uint64 {
	if h.seeded {
		return xxh3.HashSeed(data, h.seed)
	}
	return xxh3.Hash(data)
}

// XXH64Hasher hashes with XXH64.
type XXH64Hasher struct{}

// New returns a fresh XXH64 hasher.
func (XXH64Hasher) New() hash.Hash64 {
	return xxhash.New()
}

// HashSlice returns the XXH64 digest of data.
func (XXH64Hasher) HashSlice(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// FNVHasher hashes with 64-bit FNV-1a.
type FNVHasher struct{}

// New returns a fresh FNV-1a hasher.
func (FNVHasher) New() hash.Hash64 {
	return fnv.New64a()
}

// HashSlice returns the FNV-1a digest of data.
func (FNVHasher) HashSlice(data []byte) uint64 {
	h := fnv.New64a()
	h.Write(data)
	return h.Sum64()
}

// FarmHasher hashes with FarmHash.
type FarmHasher struct{}

// New returns a hasher that buffers its input and hashes it with FarmHash once
// the digest is requested since FarmHash has no streaming form.
func (FarmHasher) New() hash.Hash64 {
	return &bufferedHash64{sum: farm.Hash64}
}

// HashSlice returns the FarmHash digest of data.
func (FarmHasher) HashSlice(data []byte) uint64 {
	return farm.Hash64(data)
}

// Blake3Hasher hashes with BLAKE3 truncated to 64 bits.  The zero value is
// unkeyed.
type Blake3Hasher struct {
	key []byte
}

// NewBlake3Hasher returns a Blake3Hasher in keyed mode.
func NewBlake3Hasher(key [32]byte) Blake3Hasher {
	return Blake3Hasher{key: key[:]}
}

// New returns a fresh BLAKE3 hasher with an 8-byte output.
func (h Blake3Hasher) New() hash.Hash64 {
	return digest64{blake3.New(8, h.key)}
}

// HashSlice returns the first 8 bytes of the BLAKE3 digest of data interpreted
// as a little-endian integer.
func (h Blake3Hasher) HashSlice(data []byte) uint64 {
	d := digest64{blake3.New(8, h.key)}
	d.Write(data)
	return d.Sum64()
}

// digest64 adapts a hash.Hash with at least 8 bytes of output to hash.Hash64.
type digest64 struct {
	hash.Hash
}

func (d digest64) Sum64() uint64 {
	var buf [32]byte
	return binary.LittleEndian.Uint64(d.Sum(buf[:0])[:8])
}

// bufferedHash64 implements hash.Hash64 for one-shot hash functions by
// accumulating all written data.
type bufferedHash64 struct {
	sum func([]byte) uint64
	buf []byte
}

func (b *bufferedHash64) Write(p []byte) (int, error) {
	b.buf = append(b.buf, p...)
	return len(p), nil
}

func (b *bufferedHash64) Sum(in []byte) []byte {
	return binary.BigEndian.AppendUint64(in, b.Sum64())
}

func (b *bufferedHash64) Sum64() uint64 { return b.sum(b.buf) }
func (b *bufferedHash64) Reset()        { b.buf = b.buf[:0] }
func (b *bufferedHash64) Size() int     { return 8 }
func (b *bufferedHash64) BlockSize() int {
	return 1
}

// valueEncMode is the deterministic CBOR encoding used for values that have no
// more direct byte representation.
var valueEncMode = func() cbor.EncMode {
	em, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	return em
}()

// writeValue writes a deterministic byte representation of v to w.
//
// Byte slices and strings are written as is, booleans and fixed-size numbers
// are written in little-endian order at their natural width with int and uint
// always occupying 8 bytes, and types implementing encoding.BinaryMarshaler
// are written via MarshalBinary.  All other values are written as
// deterministic CBOR.
//
// It panics if v can't be represented.  That only happens for types such as
// functions and channels which have no meaningful identity to test membership
// of.
func writeValue(w hash.Hash64, v any) {
	var buf [8]byte
	switch v := v.(type) {
	case []byte:
		w.Write(v)
	case string:
		w.Write([]byte(v))
	case bool:
		if v {
			buf[0] = 1
		}
		w.Write(buf[:1])
	case int8:
		buf[0] = byte(v)
		w.Write(buf[:1])
	case uint8:
		buf[0] = v
		w.Write(buf[:1])
	case int16:
		w.Write(binary.LittleEndian.AppendUint16(buf[:0], uint16(v)))
	case uint16:
		w.Write(binary.LittleEndian.AppendUint16(buf[:0], v))
	case int32:
		w.Write(binary.LittleEndian.AppendUint32(buf[:0], uint32(v)))
	case uint32:
		w.Write(binary.LittleEndian.AppendUint32(buf[:0], v))
	case int:
		w.Write(binary.LittleEndian.AppendUint64(buf[:0], uint64(v)))
	case uint:
		w.Write(binary.LittleEndian.AppendUint64(buf[:0], uint64(v)))
	case int64:
		w.Write(binary.LittleEndian.AppendUint64(buf[:0], uint64(v)))
	case uint64:
		w.Write(binary.LittleEndian.AppendUint64(buf[:0], v))
	case float32:
		w.Write(binary.LittleEndian.AppendUint32(buf[:0], math.Float32bits(v)))
	case float64:
		w.Write(binary.LittleEndian.AppendUint64(buf[:0], math.Float64bits(v)))
	case encoding.BinaryMarshaler:
		data, err := v.MarshalBinary()
		if err != nil {
			panic(fmt.Sprintf("cuckoofilter: unable to hash %T: %v", v, err))
		}
		w.Write(data)
	default:
		data, err := valueEncMode.Marshal(v)
		if err != nil {
			panic(fmt.Sprintf("cuckoofilter: unable to hash %T: %v", v, err))
		}
		w.Write(data)
	}
}

// HashValue returns the 64-bit hash of v computed with an incremental hasher
// obtained from h.  See the Filter documentation for how values are
// represented.
func HashValue(h Hasher, v any) uint64 {
	hasher := h.New()
	writeValue(hasher, v)
	return hasher.Sum64()
}
