// SPDX-FileCopyrightText: 2025 Jesper Borgstrup
//
// SPDX-License-Identifier: MIT

package iblt

import "github.com/jesperborgstrup/go-iblt/internal/bytevec"

// cell is one slot of the table. It carries a signed count plus three
// running byte-vector sums; the mod-256 arithmetic in internal/bytevec is
// what makes insert and delete commute over these fields.
type cell struct {
	count      int32
	keySum     []byte
	valueSum   []byte
	hashKeySum []byte
}

func newCell(keySize, valueSize, hashKeySumSize int) cell {
	return cell{
		count:      0,
		keySum:     make([]byte, keySize),
		valueSum:   make([]byte, valueSize),
		hashKeySum: make([]byte, hashKeySumSize),
	}
}

func (c cell) clone() cell {
	return cell{
		count:      c.count,
		keySum:     append([]byte(nil), c.keySum...),
		valueSum:   append([]byte(nil), c.valueSum...),
		hashKeySum: append([]byte(nil), c.hashKeySum...),
	}
}

// add folds in a key/value/fingerprint contribution with count delta
// +1 (insert) or -1 (delete).
func (c *cell) add(keyEnc, valueEnc, fingerprintEnc []byte, delta int32) {
	if delta > 0 {
		c.keySum = bytevec.Sum(c.keySum, keyEnc)
		c.valueSum = bytevec.Sum(c.valueSum, valueEnc)
		c.hashKeySum = bytevec.Sum(c.hashKeySum, fingerprintEnc)
	} else {
		c.keySum = bytevec.Diff(c.keySum, keyEnc)
		c.valueSum = bytevec.Diff(c.valueSum, valueEnc)
		c.hashKeySum = bytevec.Diff(c.hashKeySum, fingerprintEnc)
	}
	c.count += delta
}

// isEmpty reports whether the cell carries no evidence of any contributor.
func (c cell) isEmpty() bool {
	return c.count == 0 && bytevec.IsZero(c.keySum) && bytevec.IsZero(c.hashKeySum)
}

func (c cell) equal(o cell) bool {
	return c.count == o.count &&
		bytevec.Equal(c.keySum, o.keySum) &&
		bytevec.Equal(c.valueSum, o.valueSum) &&
		bytevec.Equal(c.hashKeySum, o.hashKeySum)
}
