// SPDX-FileCopyrightText: 2025 Jesper Borgstrup
//
// SPDX-License-Identifier: MIT

package iblt

import "encoding/binary"

// magic identifies the wire format: ASCII "IBLT".
var magic = [4]byte{0x49, 0x42, 0x4C, 0x54}

const headerFields = 6 // m, key_size, value_size, hash_key_sum_size, value_key_sum_size, k

// valueKeySumSize is always emitted as 0 by this implementation; the field
// is reserved wire-format space for a per-cell vector this package never
// populates. On read, any declared size is honored: that many trailing
// bytes are read per cell and discarded.
const valueKeySumSize = 0

// Serialize encodes the table into the bit-exact wire format:
//
//	[magic:4][header:24][cells]
//
// header is 6 big-endian uint32s: m, key_size, value_size,
// hash_key_sum_size, value_key_sum_size, k. Each of the m cells is a
// big-endian int32 count followed by keySum, valueSum, hashKeySum (and
// any reserved valueKeySum bytes), each exactly the configured width.
func (t *Table) Serialize() []byte {
	buf := make([]byte, t.serializedSize())

	copy(buf[0:4], magic[:])
	binary.BigEndian.PutUint32(buf[4:8], uint32(t.m))
	binary.BigEndian.PutUint32(buf[8:12], uint32(t.keySize))
	binary.BigEndian.PutUint32(buf[12:16], uint32(t.valueSize))
	binary.BigEndian.PutUint32(buf[16:20], uint32(t.hashKeySumSize))
	binary.BigEndian.PutUint32(buf[20:24], uint32(valueKeySumSize))
	binary.BigEndian.PutUint32(buf[24:28], uint32(t.k))

	offset := 4 + headerFields*4
	for _, c := range t.cells {
		binary.BigEndian.PutUint32(buf[offset:offset+4], uint32(c.count))
		offset += 4
		offset += copy(buf[offset:], c.keySum)
		offset += copy(buf[offset:], c.valueSum)
		offset += copy(buf[offset:], c.hashKeySum)
		// valueKeySumSize is 0, so there is nothing to write here.
	}
	return buf
}

func (t *Table) serializedSize() int {
	return 4 + headerFields*4 +
		t.m*(4+t.keySize+t.valueSize+t.hashKeySumSize+valueKeySumSize)
}

// Deserialize decodes a table previously produced by Serialize (or any
// conforming producer). The returned table always uses DefaultHashFunc,
// regardless of what hash function the original table used: a custom
// hash is a runtime capability, not persisted state.
func Deserialize(data []byte) (*Table, error) {
	if len(data) < 4+headerFields*4 {
		return nil, BadLengthError{Want: 4 + headerFields*4, Got: len(data)}
	}

	var got [4]byte
	copy(got[:], data[0:4])
	if got != magic {
		return nil, BadMagicError{Got: got}
	}

	m := int(binary.BigEndian.Uint32(data[4:8]))
	keySize := int(binary.BigEndian.Uint32(data[8:12]))
	valueSize := int(binary.BigEndian.Uint32(data[12:16]))
	hashKeySumSize := int(binary.BigEndian.Uint32(data[16:20]))
	storedValueKeySumSize := int(binary.BigEndian.Uint32(data[20:24]))
	k := int(binary.BigEndian.Uint32(data[24:28]))

	cellWidth := 4 + keySize + valueSize + hashKeySumSize + storedValueKeySumSize
	want := 4 + headerFields*4 + m*cellWidth
	if want != len(data) {
		return nil, BadLengthError{Want: want, Got: len(data)}
	}

	t, err := New(Params{
		M:              m,
		K:              k,
		KeySize:        keySize,
		ValueSize:      valueSize,
		HashKeySumSize: hashKeySumSize,
	})
	if err != nil {
		return nil, err
	}

	offset := 4 + headerFields*4
	for i := range t.cells {
		t.cells[i].count = int32(binary.BigEndian.Uint32(data[offset : offset+4]))
		offset += 4
		t.cells[i].keySum = append([]byte(nil), data[offset:offset+keySize]...)
		offset += keySize
		t.cells[i].valueSum = append([]byte(nil), data[offset:offset+valueSize]...)
		offset += valueSize
		t.cells[i].hashKeySum = append([]byte(nil), data[offset:offset+hashKeySumSize]...)
		offset += hashKeySumSize
		// Discard the reserved valueKeySum bytes, if any were declared.
		offset += storedValueKeySumSize
	}

	return t, nil
}
