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

package poc

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rlp"
	"golang.org/x/sync/singleflight"

	"github.com/plotchain/go-poc/consensus"
)

// Aux is the per-block auxiliary record the fork-choice rule relies on.
type Aux struct {
	Difficulty      Difficulty
	TotalDifficulty Difficulty
}

// rlpAux is Aux's wire shape: both difficulties travel as opaque byte
// strings, decoded back through the algorithm's own DecodeDifficulty so the
// encoding never needs to know the concrete Difficulty type.
type rlpAux struct {
	Difficulty      []byte
	TotalDifficulty []byte
}

// EncodeAux produces the canonical bytes stored under AuxKey(hash).
func EncodeAux(a Aux) ([]byte, error) {
	return rlp.EncodeToBytes(rlpAux{
		Difficulty:      a.Difficulty.Bytes(),
		TotalDifficulty: a.TotalDifficulty.Bytes(),
	})
}

// DecodeAux parses bytes previously produced by EncodeAux, resolving both
// difficulty fields through algo. A decoding failure is terminal: callers
// must not silently substitute a default.
func DecodeAux(algo Algorithm, data []byte) (Aux, error) {
	var raw rlpAux
	if err := rlp.DecodeBytes(data, &raw); err != nil {
		return Aux{}, fmt.Errorf("poc: decode aux: %w", err)
	}
	d, err := algo.DecodeDifficulty(raw.Difficulty)
	if err != nil {
		return Aux{}, fmt.Errorf("poc: decode aux difficulty: %w", err)
	}
	td, err := algo.DecodeDifficulty(raw.TotalDifficulty)
	if err != nil {
		return Aux{}, fmt.Errorf("poc: decode aux total difficulty: %w", err)
	}
	return Aux{Difficulty: d, TotalDifficulty: td}, nil
}

// AuxKeyLen is the fixed width of an auxiliary storage key: a 4-byte engine
// prefix followed by a 32-byte block hash.
const AuxKeyLen = 4 + common.HashLength

// AuxKey concatenates the engine prefix and a block hash into the
// auxiliary storage key layout.
func AuxKey(prefix consensus.EngineID, hash common.Hash) []byte {
	key := make([]byte, 0, AuxKeyLen)
	key = append(key, prefix[:]...)
	key = append(key, hash[:]...)
	return key
}

// AuxLedger is the read side of the auxiliary ledger: every lookup that
// misses returns the algorithm's zero difficulty rather than an error,
// which is what makes the genesis/bootstrap path work.
type AuxLedger struct {
	prefix consensus.EngineID
	store  consensus.AuxStore
	algo   Algorithm
	group  singleflight.Group
}

// NewAuxLedger builds a ledger reading through store under prefix, with
// Difficulty fields resolved via algo.
func NewAuxLedger(prefix consensus.EngineID, store consensus.AuxStore, algo Algorithm) *AuxLedger {
	return &AuxLedger{prefix: prefix, store: store, algo: algo}
}

// Key returns the storage key for hash under this ledger's prefix.
func (l *AuxLedger) Key(hash common.Hash) []byte {
	return AuxKey(l.prefix, hash)
}

// Encode is EncodeAux, exposed on the ledger for callers that don't want to
// import the free function separately.
func (l *AuxLedger) Encode(a Aux) ([]byte, error) {
	return EncodeAux(a)
}

// Read returns the Aux stored for hash, or the zero value if the key is
// absent. I/O errors and malformed bytes are both terminal: only a genuine
// "key not found" is treated as zero.
//
// Concurrent reads for the same hash are coalesced through a singleflight
// group: the import-queue hot path can see a burst of headers citing the
// same parent, and there is no reason to hit the backing store once per
// header when one read serves them all.
func (l *AuxLedger) Read(hash common.Hash) (Aux, error) {
	key := l.Key(hash)
	v, err, _ := l.group.Do(string(key), func() (interface{}, error) {
		raw, err := l.store.GetAux(key)
		if err != nil {
			return nil, fmt.Errorf("poc: read aux for %s: %w", hash, err)
		}
		if raw == nil {
			return Aux{Difficulty: l.algo.ZeroDifficulty(), TotalDifficulty: l.algo.ZeroDifficulty()}, nil
		}
		return DecodeAux(l.algo, raw)
	})
	if err != nil {
		return Aux{}, err
	}
	return v.(Aux), nil
}
