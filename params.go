// SPDX-FileCopyrightText: 2025 Jesper Borgstrup
//
// SPDX-License-Identifier: MIT

package iblt

import "github.com/go-playground/validator/v10"

// DefaultHashKeySumSize is the fingerprint width used when a table is
// constructed with HashKeySumSize left at zero. 10 bytes gives roughly
// 2^-80 per-cell false-peel odds; smaller values trade that margin for
// space.
const DefaultHashKeySumSize = 10

// Params are the construction arguments for a Table. They are immutable
// for the table's lifetime.
type Params struct {
	// M is the number of cells in the table.
	M int `validate:"required,gt=0"`
	// K is the number of hash functions (and so the maximum number of
	// cells a single key can touch).
	K int `validate:"required,gt=0"`
	// KeySize is the maximum byte length of any key.
	KeySize int `validate:"required,gt=0"`
	// ValueSize is the maximum byte length of any value.
	ValueSize int `validate:"required,gt=0"`
	// HashKeySumSize is the width, in bytes, of the per-cell fingerprint
	// sum. Zero means DefaultHashKeySumSize.
	HashKeySumSize int `validate:"gte=0"`
	// HashFunc overrides the default hash family. Nil means
	// DefaultHashFunc. Never persisted by Serialize.
	HashFunc HashFunc `validate:"-"`
}

// withDefaults returns a copy of p with zero-valued optional fields
// filled in.
func (p Params) withDefaults() Params {
	if p.HashKeySumSize == 0 {
		p.HashKeySumSize = DefaultHashKeySumSize
	}
	if p.HashFunc == nil {
		p.HashFunc = DefaultHashFunc
	}
	return p
}

var paramValidator = validator.New(validator.WithRequiredStructEnabled())

func validateParams(p Params) error {
	if err := paramValidator.Struct(p); err != nil {
		return InvalidParametersError{Err: err}
	}
	return nil
}
