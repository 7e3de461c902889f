// SPDX-FileCopyrightText: 2025 Jesper Borgstrup
//
// SPDX-License-Identifier: MIT

// Package iblt implements an Invertible Bloom Lookup Table: a fixed-size
// array of cells that supports insertion, deletion, point lookup, and
// full enumeration of its (key, value) contents, recoverable as long as
// the number of distinct entries stays well under the table's capacity.
//
// A Table is not safe for concurrent use without external
// synchronization: insert and delete mutate shared cell state, and
// nothing in this package takes a lock. ListEntries works on an internal
// deep copy, so a concurrent reader only sees a consistent snapshot if no
// mutator runs while that copy is being taken.
package iblt

import "github.com/jesperborgstrup/go-iblt/internal/bytevec"

// GetStatus classifies the result of a point lookup.
type GetStatus int

const (
	// NoMatch means the key was definitively not in the table.
	NoMatch GetStatus = iota
	// Match means the key was found with an associated value.
	Match
	// DeletedMatch means the key was deleted without ever being inserted.
	DeletedMatch
	// Inconclusive means the table cannot determine whether the key was
	// present.
	Inconclusive
)

// String returns a human-readable name for the status.
func (s GetStatus) String() string {
	switch s {
	case NoMatch:
		return "NoMatch"
	case Match:
		return "Match"
	case DeletedMatch:
		return "DeletedMatch"
	case Inconclusive:
		return "Inconclusive"
	default:
		return "Unknown"
	}
}

// ListStatus reports whether a decode fully drained the table.
type ListStatus int

const (
	// Complete means every cell was reduced to a zero count: entries and
	// deletedEntries are the whole story.
	Complete ListStatus = iota
	// Incomplete means some cells could not be peeled; entries and
	// deletedEntries contain only confirmed recoveries.
	Incomplete
)

// String returns a human-readable name for the status.
func (s ListStatus) String() string {
	if s == Complete {
		return "Complete"
	}
	return "Incomplete"
}

// Entry is a recovered (key, value) pair.
type Entry struct {
	Key   []byte
	Value []byte
}

// Table is an Invertible Bloom Lookup Table.
type Table struct {
	m, k           int
	keySize        int
	valueSize      int
	hashKeySumSize int
	hashFn         HashFunc
	cells          []cell
}

// New creates a zeroed table with the given parameters. HashKeySumSize
// and HashFunc may be left at their zero value to get
// DefaultHashKeySumSize and DefaultHashFunc respectively.
func New(p Params) (*Table, error) {
	p = p.withDefaults()
	if err := validateParams(p); err != nil {
		return nil, err
	}

	cells := make([]cell, p.M)
	for i := range cells {
		cells[i] = newCell(p.KeySize, p.ValueSize, p.HashKeySumSize)
	}

	return &Table{
		m:              p.M,
		k:              p.K,
		keySize:        p.KeySize,
		valueSize:      p.ValueSize,
		hashKeySumSize: p.HashKeySumSize,
		hashFn:         p.HashFunc,
		cells:          cells,
	}, nil
}

// M returns the number of cells in the table.
func (t *Table) M() int { return t.m }

// K returns the number of hash functions.
func (t *Table) K() int { return t.k }

// KeySize returns the configured maximum key length.
func (t *Table) KeySize() int { return t.keySize }

// ValueSize returns the configured maximum value length.
func (t *Table) ValueSize() int { return t.valueSize }

// HashKeySumSize returns the configured fingerprint width.
func (t *Table) HashKeySumSize() int { return t.hashKeySumSize }

// Insert adds the key/value pair into the table.
func (t *Table) Insert(key, value []byte) error {
	return t.update(key, value, 1)
}

// Delete removes a key/value pair from the table. Deleting a pair that
// was never inserted is allowed: it leaves a "negative" trace that
// ListEntries reports as a deleted entry.
func (t *Table) Delete(key, value []byte) error {
	return t.update(key, value, -1)
}

// update applies delta to every cell in key's index set. The key/value
// encodings and the full index set are computed before any cell is
// touched, so a failing call never leaves the table partially mutated.
func (t *Table) update(key, value []byte, delta int32) error {
	if err := checkInputLength("key", key, t.keySize); err != nil {
		return err
	}
	if err := checkInputLength("value", value, t.valueSize); err != nil {
		return err
	}

	indices, err := cellIndices(t.hashFn, key, t.m, t.k)
	if err != nil {
		return err
	}

	keyEnc := encode(key, t.keySize)
	valueEnc := encode(value, t.valueSize)
	fingerprintEnc := encode(keyFingerprint(key), t.hashKeySumSize)

	for _, idx := range indices {
		t.cells[idx].add(keyEnc, valueEnc, fingerprintEnc, delta)
	}
	return nil
}

// Get looks up key and classifies the result; see GetStatus. The
// returned value is nil unless status is Match or DeletedMatch.
func (t *Table) Get(key []byte) (GetStatus, []byte, error) {
	if err := checkInputLength("key", key, t.keySize); err != nil {
		return Inconclusive, nil, err
	}

	indices, err := cellIndices(t.hashFn, key, t.m, t.k)
	if err != nil {
		return Inconclusive, nil, err
	}

	keyEnc := encode(key, t.keySize)
	fingerprintEnc := encode(keyFingerprint(key), t.hashKeySumSize)
	negKeyEnc := bytevec.Negate(keyEnc)
	negFingerprintEnc := bytevec.Negate(fingerprintEnc)

	for _, idx := range indices {
		c := t.cells[idx]
		switch {
		case c.isEmpty():
			return NoMatch, nil, nil
		case c.count == 1 && bytevec.Equal(c.keySum, keyEnc) && bytevec.Equal(c.hashKeySum, fingerprintEnc):
			return Match, decode(c.valueSum), nil
		case c.count == -1 && bytevec.Equal(c.keySum, negKeyEnc) && bytevec.Equal(c.hashKeySum, negFingerprintEnc):
			return DeletedMatch, decode(bytevec.Negate(c.valueSum)), nil
		}
	}
	return Inconclusive, nil, nil
}

// IsEmpty reports whether every cell's count is zero. It does not
// inspect the byte vectors, so a table that has seen equal numbers of
// inserts and deletes of the same pairs is empty by this measure even
// though its cells were touched.
func (t *Table) IsEmpty() bool {
	for _, c := range t.cells {
		if c.count != 0 {
			return false
		}
	}
	return true
}

// Equal reports whether t and o share identical parameters and
// cell-by-cell identical state. The injected hash function is not part
// of this comparison: functions are not comparable in Go, and a custom
// hash is a capability, not persisted table identity.
func (t *Table) Equal(o *Table) bool {
	if o == nil {
		return false
	}
	if t.m != o.m || t.k != o.k || t.keySize != o.keySize ||
		t.valueSize != o.valueSize || t.hashKeySumSize != o.hashKeySumSize ||
		len(t.cells) != len(o.cells) {
		return false
	}
	for i := range t.cells {
		if !t.cells[i].equal(o.cells[i]) {
			return false
		}
	}
	return true
}

// deepCopy returns a table with the same parameters and an independent
// copy of every cell's byte vectors.
func (t *Table) deepCopy() *Table {
	cells := make([]cell, len(t.cells))
	for i, c := range t.cells {
		cells[i] = c.clone()
	}
	return &Table{
		m:              t.m,
		k:              t.k,
		keySize:        t.keySize,
		valueSize:      t.valueSize,
		hashKeySumSize: t.hashKeySumSize,
		hashFn:         t.hashFn,
		cells:          cells,
	}
}

// ListEntries attempts to recover every (key, value) pair ever inserted
// or deleted-without-insertion, by repeatedly peeling pure cells off a
// working copy of the table. The receiver is never mutated.
func (t *Table) ListEntries() (ListStatus, []Entry, []Entry) {
	work := t.deepCopy()
	var entries, deletedEntries []Entry

	for {
		peeledAny := false
		for i := range work.cells {
			c := work.cells[i]

			if c.count == 1 {
				key := decode(c.keySum)
				if bytevec.Equal(c.hashKeySum, encode(keyFingerprint(key), work.hashKeySumSize)) {
					value := decode(c.valueSum)
					entries = append(entries, Entry{Key: key, Value: value})
					// key/value were just decoded from this cell's own
					// vectors, so they are within bounds by construction.
					_ = work.update(key, value, -1)
					peeledAny = true
					break
				}
			} else if c.count == -1 {
				negKeySum := bytevec.Negate(c.keySum)
				key := decode(negKeySum)
				if bytevec.Equal(bytevec.Negate(c.hashKeySum), encode(keyFingerprint(key), work.hashKeySumSize)) {
					value := decode(bytevec.Negate(c.valueSum))
					deletedEntries = append(deletedEntries, Entry{Key: key, Value: value})
					// same: key/value came straight out of this cell.
					_ = work.update(key, value, 1)
					peeledAny = true
					break
				}
			}
		}
		if !peeledAny {
			break
		}
	}

	status := Complete
	for _, c := range work.cells {
		if c.count != 0 {
			status = Incomplete
			break
		}
	}
	return status, entries, deletedEntries
}
