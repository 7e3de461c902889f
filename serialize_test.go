// SPDX-FileCopyrightText: 2025 Jesper Borgstrup
//
// SPDX-License-Identifier: MIT

package iblt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSerializeEmptyTableSize(t *testing.T) {
	r := require.New(t)
	tbl, err := New(Params{M: 5, K: 2, KeySize: 3, ValueSize: 3, HashKeySumSize: 6})
	r.NoError(err)

	data := tbl.Serialize()
	wantSize := 4 + headerFields*4 + 5*(4+3+3+6)
	r.Len(data, wantSize)
	r.Equal(wantSize, tbl.serializedSize())
}

func TestSerializePreservesCustomHashKeySumSize(t *testing.T) {
	r := require.New(t)
	tbl, err := New(Params{M: 8, K: 3, KeySize: 4, ValueSize: 4, HashKeySumSize: 20})
	r.NoError(err)
	r.NoError(tbl.Insert([]byte("a"), []byte("b")))

	got, err := Deserialize(tbl.Serialize())
	r.NoError(err)
	r.Equal(20, got.HashKeySumSize())
	r.True(tbl.Equal(got))
}

func TestDeserializeUsesDefaultHashFunc(t *testing.T) {
	r := require.New(t)
	custom := func(i int, key []byte, m, k int) (int, error) { return 0, nil }
	tbl, err := New(Params{M: 10, K: 2, KeySize: 4, ValueSize: 4, HashFunc: custom})
	r.NoError(err)
	r.NoError(tbl.Insert([]byte("a"), []byte("1")))

	got, err := Deserialize(tbl.Serialize())
	r.NoError(err)

	status, _, deleted := got.ListEntries()
	r.Empty(deleted)
	r.Contains([]ListStatus{Complete, Incomplete}, status)
}

func TestDeserializeHeaderTooShort(t *testing.T) {
	r := require.New(t)
	_, err := Deserialize([]byte{0x49, 0x42, 0x4C})
	r.Error(err)
	var lenErr BadLengthError
	r.ErrorAs(err, &lenErr)
}

func TestDeserializeRejectsInvalidHeaderParameters(t *testing.T) {
	r := require.New(t)
	tbl, err := New(Params{M: 4, K: 2, KeySize: 2, ValueSize: 2})
	r.NoError(err)
	data := tbl.Serialize()

	// Zero out m in the header: the resulting payload length still
	// matches what Deserialize computes for m=0, so the failure surfaces
	// as parameter validation instead of a length mismatch.
	data[4], data[5], data[6], data[7] = 0, 0, 0, 0
	truncated := data[:4+headerFields*4]

	_, err = Deserialize(truncated)
	r.Error(err)
	var invalid InvalidParametersError
	r.ErrorAs(err, &invalid)
}
