// SPDX-FileCopyrightText: 2025 Jesper Borgstrup
//
// SPDX-License-Identifier: MIT

package iblt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodePadsToLength(t *testing.T) {
	r := require.New(t)
	got := encode([]byte("hi"), 5)
	r.Equal([]byte{'h', 'i', 0, 0, 0}, got)
}

func TestEncodeEmptyLength(t *testing.T) {
	r := require.New(t)
	got := encode(nil, 0)
	r.Empty(got)
}

func TestDecodeStripsZeroBytes(t *testing.T) {
	r := require.New(t)
	got := decode([]byte{'h', 'i', 0, 0, 0})
	r.Equal([]byte("hi"), got)
}

func TestEncodeDecodeRoundTripsWithoutEmbeddedZeros(t *testing.T) {
	r := require.New(t)
	original := []byte("round-trip-me")
	r.Equal(original, decode(encode(original, len(original)+4)))
}

func TestCheckInputLength(t *testing.T) {
	r := require.New(t)

	r.NoError(checkInputLength("key", []byte("fits"), 10))
	r.NoError(checkInputLength("key", []byte("exact12345"), 10))

	err := checkInputLength("value", []byte("way too long for the budget"), 5)
	r.Error(err)
	var tooLong InputTooLongError
	r.ErrorAs(err, &tooLong)
	r.Equal("value", tooLong.Kind)
	r.Equal(5, tooLong.Max)
}
