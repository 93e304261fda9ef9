// Copyright (c) 2024 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"github.com/decred/cuckoofilter"
	"github.com/fxamacker/cbor/v2"
)

// filterFile is the on-disk form of a filter.  The hasher name is recorded so
// a filter is never loaded with a hasher other than the one that built it.
// Key material is never recorded.
type filterFile struct {
	Hasher string `cbor:"1,keyasint"`
	Values []byte `cbor:"2,keyasint"`
	Length uint   `cbor:"3,keyasint"`
}

// fileEncMode encodes filter files deterministically.
var fileEncMode = func() cbor.EncMode {
	em, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	return em
}()

// exported returns the exported filter held by the file.
func (ff *filterFile) exported() *cuckoofilter.ExportedFilter {
	return &cuckoofilter.ExportedFilter{Values: ff.Values, Length: ff.Length}
}

// writeFilterFile exports the filter and writes it along with the hasher name
// to the file at path.
func writeFilterFile[H cuckoofilter.Hasher](path, hasherName string, f *cuckoofilter.Filter[H]) error {
	_, exported := f.IntoExported()
	ff := filterFile{
		Hasher: hasherName,
		Values: exported.Values,
		Length: exported.Length,
	}
	data, err := fileEncMode.Marshal(&ff)
	if err != nil {
		return fmt.Errorf("unable to encode filter: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("unable to write filter: %w", err)
	}
	return nil
}

// readFilterFile reads and decodes the filter file at path and ensures the
// filter it holds is consistent.
func readFilterFile(path string) (*filterFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read filter: %w", err)
	}
	var ff filterFile
	if err := cbor.Unmarshal(data, &ff); err != nil {
		return nil, fmt.Errorf("unable to decode filter %s: %w", path, err)
	}
	if err := ff.exported().Validate(); err != nil {
		return nil, fmt.Errorf("invalid filter %s: %w", path, err)
	}
	return &ff, nil
}
