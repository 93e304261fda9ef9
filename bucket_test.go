// Copyright (c) 2024 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package cuckoofilter

import (
	"bytes"
	"testing"

	"github.com/davecgh/go-spew/spew"
)

// TestNewFingerprint ensures only non-zero data produces a valid fingerprint.
func TestNewFingerprint(t *testing.T) {
	if _, ok := newFingerprint([FingerprintSize]byte{}); ok {
		t.Fatal("all-zero data produced a valid fingerprint")
	}
	for i := 1; i < 256; i++ {
		data := [FingerprintSize]byte{byte(i)}
		fp, ok := newFingerprint(data)
		if !ok {
			t.Fatalf("data %x did not produce a valid fingerprint", data)
		}
		if fp.IsEmpty() {
			t.Fatalf("fingerprint %x reports empty", fp)
		}
		if !bytes.Equal(fp.Data(), data[:]) {
			t.Fatalf("mismatched fingerprint data -- got %x, want %x",
				fp.Data(), data)
		}
	}
}

// TestBucketInsertDelete ensures inserting into, querying, and deleting from a
// bucket behaves as expected, including for duplicate fingerprints.
func TestBucketInsertDelete(t *testing.T) {
	fp1, fp2, fp3 := Fingerprint{1}, Fingerprint{2}, Fingerprint{3}

	var b bucket
	if b.contains(fp1) {
		t.Fatal("empty bucket contains fingerprint")
	}
	for _, fp := range []Fingerprint{fp1, fp2, fp1, fp3} {
		if !b.insert(fp) {
			t.Fatalf("unable to insert %x into bucket %s", fp, spew.Sdump(b))
		}
	}
	if !b.isFull() || b.numOccupied() != BucketSize {
		t.Fatalf("bucket is not full: %s", spew.Sdump(b))
	}
	if b.insert(Fingerprint{4}) {
		t.Fatal("inserted into a full bucket")
	}

	// The first matching slot is reported and deleted first.
	if idx, ok := b.fingerprintIndex(fp1); !ok || idx != 0 {
		t.Fatalf("unexpected index of %x -- got %d (%v), want 0", fp1, idx, ok)
	}
	if !b.delete(fp1) {
		t.Fatalf("unable to delete %x", fp1)
	}
	if idx, ok := b.fingerprintIndex(fp1); !ok || idx != 2 {
		t.Fatalf("unexpected index of %x -- got %d (%v), want 2", fp1, idx, ok)
	}
	if !b.delete(fp1) {
		t.Fatalf("unable to delete second copy of %x", fp1)
	}
	if b.contains(fp1) || b.delete(fp1) {
		t.Fatalf("bucket still contains %x: %s", fp1, spew.Sdump(b))
	}
	if b.numOccupied() != 2 {
		t.Fatalf("unexpected occupied slots -- got %d, want 2", b.numOccupied())
	}

	// Empty slots may be anywhere and are reused.
	if !b.insert(Fingerprint{5}) {
		t.Fatal("unable to reuse an emptied slot")
	}
	if idx, _ := b.fingerprintIndex(Fingerprint{5}); idx != 0 {
		t.Fatalf("unexpected slot for reused fingerprint -- got %d, want 0", idx)
	}

	b.clear()
	if b.numOccupied() != 0 || b.contains(fp2) || b.contains(fp3) {
		t.Fatalf("bucket not empty after clear: %s", spew.Sdump(b))
	}
}

// TestBucketData ensures buckets serialize their slots in order and are
// reconstructed from that data exactly.
func TestBucketData(t *testing.T) {
	tests := []struct {
		name string
		b    bucket
		want []byte
	}{{
		name: "empty",
		b:    bucket{},
		want: []byte{0, 0, 0, 0},
	}, {
		name: "full",
		b:    bucket{{1}, {2}, {3}, {4}},
		want: []byte{1, 2, 3, 4},
	}, {
		name: "sparse",
		b:    bucket{{0}, {0xff}, {0}, {0x10}},
		want: []byte{0, 0xff, 0, 0x10},
	}}

	for _, test := range tests {
		data := test.b.fingerprintData()
		if !bytes.Equal(data[:], test.want) {
			t.Errorf("%q: unexpected data -- got %x, want %x", test.name,
				data, test.want)
			continue
		}
		b := bucketFromBytes(data[:])
		if b != test.b {
			t.Errorf("%q: mismatched bucket -- got %s, want %s", test.name,
				spew.Sdump(b), spew.Sdump(test.b))
			continue
		}
	}
}
