// Copyright (c) 2024 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package cuckoofilter_test

import (
	"fmt"

	"github.com/decred/cuckoofilter"
)

// This example demonstrates creating a new filter, adding items to it,
// querying it, and deleting an item from it.
func Example_basicUsage() {
	filter := cuckoofilter.WithCapacity(cuckoofilter.SipHasher{}, 1000)

	for _, word := range []string{"alpha", "bravo", "charlie"} {
		if err := filter.Add(word); err != nil {
			fmt.Println(err)
			return
		}
	}
	fmt.Println("contains bravo:", filter.Contains("bravo"))
	fmt.Println("items:", filter.Len())

	// Deleting an item that was added removes exactly one copy of it.
	if !filter.Delete("bravo") {
		fmt.Println("unable to delete bravo")
		return
	}
	fmt.Println("items after delete:", filter.Len())

	// Output:
	// contains bravo: true
	// items: 3
	// items after delete: 2
}

// This example demonstrates exporting a filter and reconstructing it from the
// exported form with the same hasher.
func Example_export() {
	var key [32]byte
	copy(key[:], "an example blake3 key of 32 byte")
	filter := cuckoofilter.WithCapacity(cuckoofilter.NewBlake3Hasher(key), 100)
	filter.AddSlice([]byte("delta"))

	hasher, exported := filter.Export()
	encoded, err := exported.MarshalBinary()
	if err != nil {
		fmt.Println(err)
		return
	}

	var decoded cuckoofilter.ExportedFilter
	if err := decoded.UnmarshalBinary(encoded); err != nil {
		fmt.Println(err)
		return
	}
	imported, err := cuckoofilter.FromExported(hasher, &decoded)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println("contains delta:", imported.ContainsSlice([]byte("delta")))
	fmt.Println("buckets:", imported.NumBuckets())

	// Output:
	// contains delta: true
	// buckets: 32
}
