// SPDX-FileCopyrightText: 2025 Jesper Borgstrup
//
// SPDX-License-Identifier: MIT

package iblt

import (
	"encoding/binary"
	"fmt"
	"hash"
	"math/bits"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/gtank/blake2/blake2b"
)

// fingerprintSize is the width, in bytes, of the raw digest used as a key
// fingerprint. 64 bytes (512 bits) matches the spec's "cryptographic
// 512-bit digest" requirement directly.
const fingerprintSize = 64

// HashFunc derives the i'th cell index touched by key, for 0 <= i < k,
// into a table of m cells. It must be deterministic and is never
// persisted by Serialize: a deserialized Table always uses
// DefaultHashFunc. Implementations should return BadHashIndexError if i
// is outside [0, k), matching DefaultHashFunc's own behavior.
type HashFunc func(i int, key []byte, m, k int) (int, error)

// newDigest returns a fresh 512-bit BLAKE2b digest. A fresh instance is
// created per call rather than Reset and reused, because cell_hash and
// key_fingerprint are computed independently and possibly concurrently by
// callers that hash their own tables from separate goroutines (see the
// table-level locking note in the package doc).
func newDigest() hash.Hash {
	d, err := blake2b.NewDigest(nil, nil, nil, fingerprintSize)
	if err != nil {
		// Only invalid key/salt/personalization lengths or an out-of-range
		// output size can fail here, and none of those vary at runtime.
		panic(fmt.Sprintf("iblt: blake2b digest construction failed: %s", err))
	}
	return d
}

// keyFingerprint returns the full fingerprintSize-byte digest of key.
func keyFingerprint(key []byte) []byte {
	d := newDigest()
	d.Write(key)
	return d.Sum(nil)
}

// DefaultHashFunc is the table's default hash family: cell_hash(i, key) is
// the leading hex digits of BLAKE2b(decimal(i) || key), parsed as a
// big-endian integer and reduced mod m.
func DefaultHashFunc(i int, key []byte, m, k int) (int, error) {
	if i < 0 || i >= k {
		return 0, BadHashIndexError{Index: i, K: k}
	}
	if m <= 1 {
		return 0, nil
	}

	d := newDigest()
	fmt.Fprintf(d, "%d", i)
	d.Write(key)
	digest := d.Sum(nil)

	hexLen := hexDigitsFor(m)
	hexStr := fmt.Sprintf("%x", digest)[:hexLen]
	v, err := strconv.ParseUint(hexStr, 16, 64)
	if err != nil {
		// Cannot happen: hexStr is always a run of hex digits taken from
		// a hex-encoded digest, never malformed.
		panic(fmt.Sprintf("iblt: unparseable hash prefix %q: %s", hexStr, err))
	}
	return int(v % uint64(m)), nil
}

// hexDigitsFor returns ceil(log2(m)/4), the number of leading hex digits
// of a digest needed to cover the range [0, m).
func hexDigitsFor(m int) int {
	if m <= 1 {
		return 1
	}
	return (bits.Len(uint(m-1)) + 3) / 4
}

// XXHashFunc is a non-cryptographic alternative to DefaultHashFunc, built
// on xxHash64. It derives the i'th index as xxhash64(i || key) mod m.
// It is considerably cheaper per call than BLAKE2b and is a reasonable
// choice for tables whose entries come from a trusted source, where
// resistance to adversarially chosen keys is not a requirement.
func XXHashFunc(i int, key []byte, m, k int) (int, error) {
	if i < 0 || i >= k {
		return 0, BadHashIndexError{Index: i, K: k}
	}
	if m <= 1 {
		return 0, nil
	}

	d := xxhash.New()
	var prefix [8]byte
	binary.BigEndian.PutUint64(prefix[:], uint64(i))
	d.Write(prefix[:])
	d.Write(key)

	return int(d.Sum64() % uint64(m)), nil
}

// cellIndices returns the unique set of cell indices touched by key under
// hashFn, in first-seen order, for i in [0, k). Cell updates are
// commutative so this order has no effect on stored state; it only
// affects which index wins ties in Get's definitive-match scan.
func cellIndices(hashFn HashFunc, key []byte, m, k int) ([]int, error) {
	seen := make(map[int]struct{}, k)
	indices := make([]int, 0, k)
	for i := 0; i < k; i++ {
		idx, err := hashFn(i, key, m, k)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[idx]; ok {
			continue
		}
		seen[idx] = struct{}{}
		indices = append(indices, idx)
	}
	return indices, nil
}
