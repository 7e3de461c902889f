// SPDX-FileCopyrightText: 2025 Jesper Borgstrup
//
// SPDX-License-Identifier: MIT

package iblt

import (
	"fmt"

	"github.com/jesperborgstrup/go-iblt/internal/bytevec"
)

// LengthMismatchError indicates that the byte-vector arithmetic underlying
// a cell update was invoked on operands of different lengths. Every call
// site in this package derives its operands from the table's own
// configured field widths, so seeing this means the package itself has a
// bug, not that the caller supplied bad data.
type LengthMismatchError = bytevec.LengthMismatchError

// InputTooLongError is returned when a key or value exceeds the fixed
// length configured for the table.
type InputTooLongError struct {
	// Kind is either "key" or "value".
	Kind string
	Len  int
	Max  int
}

// Error returns a string representation of the error.
func (e InputTooLongError) Error() string {
	return fmt.Sprintf("iblt: %s of length %d exceeds configured maximum %d", e.Kind, e.Len, e.Max)
}

// BadHashIndexError is returned when the hash family is asked to derive a
// cell index for a hash number outside [0, k).
type BadHashIndexError struct {
	Index int
	K     int
}

// Error returns a string representation of the error.
func (e BadHashIndexError) Error() string {
	return fmt.Sprintf("iblt: hash index %d must be in [0, %d)", e.Index, e.K)
}

// BadMagicError is returned when deserialized input does not begin with
// the IBLT magic bytes.
type BadMagicError struct {
	Got [4]byte
}

// Error returns a string representation of the error.
func (e BadMagicError) Error() string {
	return fmt.Sprintf("iblt: bad magic bytes: got %x, want %x", e.Got, magic)
}

// BadLengthError is returned when a serialized payload's declared size
// disagrees with the number of bytes actually supplied.
type BadLengthError struct {
	Want, Got int
}

// Error returns a string representation of the error.
func (e BadLengthError) Error() string {
	return fmt.Sprintf("iblt: declared payload length %d does not match input length %d", e.Want, e.Got)
}

// InvalidParametersError wraps a constructor parameter validation failure.
type InvalidParametersError struct {
	Err error
}

// Error returns a string representation of the error.
func (e InvalidParametersError) Error() string {
	return fmt.Sprintf("iblt: invalid parameters: %s", e.Err)
}

// Unwrap allows errors.Is/errors.As to reach the underlying validator error.
func (e InvalidParametersError) Unwrap() error {
	return e.Err
}
