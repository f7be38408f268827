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

// Package poc implements a Proof-of-Capacity consensus engine: a block
// verifier, a background miner, and the auxiliary-state ledger that backs
// fork choice, all built against the pluggable Algorithm capability below.
//
// The algorithm itself (plot scanning, deadline computation) is never
// implemented here: consensus/poc/testalgorithm provides a deterministic
// fake for this package's own tests, and a production node supplies its
// own Algorithm.
package poc

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
)

// Difficulty is a totally-ordered, encodable accumulator. Concrete types
// are supplied by the Algorithm implementation (e.g. consensus/poc/difficulty.BigInt).
// Add returns the sum rather than mutating the receiver in place: values
// crossing goroutine boundaries (verifier vs. miner) are easier to reason
// about as immutable than as an in-place increment.
type Difficulty interface {
	// Cmp returns -1, 0 or +1 as the receiver is less than, equal to, or
	// greater than other. Implementations may panic if other is not the
	// same concrete type.
	Cmp(other Difficulty) int
	// Add returns the accumulated difficulty of the receiver and other.
	Add(other Difficulty) Difficulty
	// Bytes returns the deterministic encoding used for aux storage.
	Bytes() []byte
}

// NonceData is the opaque seal payload the miner produces and the
// verifier checks. Its interpretation belongs entirely to the Algorithm;
// the engine only ever carries it as bytes.
type NonceData []byte

// Algorithm is the pluggable PoC capability set. All methods are expected
// to be safe for concurrent use: the verifier and the miner share one
// Algorithm instance across two goroutines.
type Algorithm interface {
	// ZeroDifficulty returns the additive identity for this algorithm's
	// Difficulty type, used as the default Aux value for genesis/bootstrap.
	ZeroDifficulty() Difficulty

	// DecodeDifficulty parses a Difficulty from its aux-storage encoding.
	DecodeDifficulty(data []byte) (Difficulty, error)

	// Difficulty returns the difficulty target a child of parent must
	// meet.
	Difficulty(parent common.Hash) (Difficulty, error)

	// Verify is the legacy single-shot seal verifier retained on the
	// interface for completeness. Neither the verifier nor the miner in
	// this package call it.
	Verify(parent common.Hash, preHash common.Hash, seal NonceData, difficulty Difficulty) (bool, error)

	// PocMine makes one best-effort search attempt for a nonce satisfying
	// baseTarget. A nil result with a nil error means "no hit this round,
	// try again": it must never block indefinitely from the caller's
	// point of view beyond what Round (below) implies, though this
	// package does not itself enforce a time budget on the call.
	PocMine(ctx context.Context, parent common.Hash, generationSig common.Hash, baseTarget Difficulty) (NonceData, error)

	// PocVerify is the authoritative check the verifier relies on. It
	// must be deterministic in its four inputs, and must accept every
	// nonce PocMine returns for the same parent, generation signature and
	// target: a mined block that PocVerify rejects fails verification.
	PocVerify(parent common.Hash, preHash common.Hash, nonceData NonceData, baseTarget Difficulty) (bool, error)

	// Round reports the number of search iterations the algorithm
	// performs per PocMine call, for operators to size a mining round to
	// sub-second latency. It is informational only: this engine never
	// threads it into PocMine as a parameter.
	Round() uint32
}
