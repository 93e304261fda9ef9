// Copyright (c) 2024 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package cuckoofilter

// ErrorKind identifies a kind of error.  It has full support for errors.Is and
// errors.As, so the caller can directly check against an error kind when
// determining the reason for an error.
type ErrorKind string

// These constants are used to identify a specific Error.
const (
	// ErrNotEnoughSpace indicates an insertion gave up after MaxRebucket
	// relocations.  The filter remains usable, however, the item that was
	// being inserted is stored at the expense of a previously stored item
	// which was dropped.
	ErrNotEnoughSpace = ErrorKind("ErrNotEnoughSpace")

	// ErrMalformedExport indicates exported filter data does not describe a
	// whole, power of two, number of buckets.
	ErrMalformedExport = ErrorKind("ErrMalformedExport")

	// ErrLengthMismatch indicates the length recorded in exported filter data
	// does not match the number of fingerprints it contains.
	ErrLengthMismatch = ErrorKind("ErrLengthMismatch")
)

// Error satisfies the error interface and prints human-readable errors.
func (e ErrorKind) Error() string {
	return string(e)
}

// Error identifies an error related to a cuckoo filter.  It has full support
// for errors.Is and errors.As, so the caller can ascertain the specific reason
// for the error by checking the underlying error.
type Error struct {
	Err         error
	Description string
}

// Error satisfies the error interface and prints human-readable errors.
func (e Error) Error() string {
	return e.Description
}

// Unwrap returns the underlying wrapped error.
func (e Error) Unwrap() error {
	return e.Err
}

// makeError creates an Error given a set of arguments.
func makeError(kind ErrorKind, desc string) Error {
	return Error{Err: kind, Description: desc}
}
