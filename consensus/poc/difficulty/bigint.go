// Copyright 2017 The go-poc Authors
// This file is part of the go-poc library.
//
// The go-poc library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-poc library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-poc library. If not, see <http://www.gnu.org/licenses/>.

// Package difficulty provides a *big.Int-backed reference implementation
// of poc.Difficulty, in the style of consensus/probeash's ethash target
// arithmetic (two256/base-target division over math/big). It is the
// default Difficulty an Algorithm implementation can reach for; it
// carries no PoC-specific semantics of its own.
package difficulty

import (
	"fmt"
	"math/big"

	"github.com/plotchain/go-poc/consensus/poc"
)

// BigInt wraps math/big.Int as a poc.Difficulty. Difficulty arithmetic
// itself has no third-party ecosystem library in the pack beyond
// math/big; go-ethereum-family engines (ethash, probeash, cryptore) all
// do this target math directly against big.Int, so this type does too;
// see DESIGN.md for why math/big rather than a dependency is the right
// call here.
type BigInt struct {
	V *big.Int
}

// Zero is the additive identity.
func Zero() BigInt { return BigInt{V: new(big.Int)} }

// New wraps an int64 difficulty value.
func New(v int64) BigInt { return BigInt{V: big.NewInt(v)} }

// FromBytes decodes a big-endian encoded difficulty, as produced by Bytes.
func FromBytes(b []byte) BigInt { return BigInt{V: new(big.Int).SetBytes(b)} }

// Cmp implements poc.Difficulty.
func (d BigInt) Cmp(other poc.Difficulty) int {
	o, ok := other.(BigInt)
	if !ok {
		panic(fmt.Sprintf("difficulty: Cmp against incompatible type %T", other))
	}
	return d.V.Cmp(o.V)
}

// Add implements poc.Difficulty.
func (d BigInt) Add(other poc.Difficulty) poc.Difficulty {
	o, ok := other.(BigInt)
	if !ok {
		panic(fmt.Sprintf("difficulty: Add against incompatible type %T", other))
	}
	return BigInt{V: new(big.Int).Add(d.V, o.V)}
}

// Bytes implements poc.Difficulty.
func (d BigInt) Bytes() []byte {
	return d.V.Bytes()
}

// String renders the underlying decimal value, for logging.
func (d BigInt) String() string {
	return d.V.String()
}
