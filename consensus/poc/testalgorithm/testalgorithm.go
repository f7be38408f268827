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

// Package testalgorithm is a deterministic, non-production Algorithm fake
// used to drive consensus/poc's own tests. It is not a PoC implementation:
// plot scanning and deadline computation are out of scope, and it exists
// only so the verifier and miner can be exercised end to end without a
// real plotter.
package testalgorithm

import (
	"context"
	"encoding/binary"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/plotchain/go-poc/consensus/poc"
	"github.com/plotchain/go-poc/consensus/poc/difficulty"
)

// Algorithm is a fake PoC algorithm: "mining" computes
// Keccak256(parent || generationSig || nonce) and accepts the first nonce,
// starting from 0 and trying at most Round() nonces, whose leading 8 bytes
// interpreted as a uint64, taken modulo 100, fall below baseTarget (so a
// target of 100 or more always hits and 0 never does). This has the same shape as a real capacity proof (a
// deterministic deadline computed from parent + generation signature +
// plotted nonce, compared against a target) without touching a disk.
type Algorithm struct {
	// Difficulties, keyed by parent hash, lets tests fix the next
	// difficulty target per parent instead of hard-coding a constant.
	Difficulties map[common.Hash]difficulty.BigInt
	// Default is returned by Difficulty for parents absent from
	// Difficulties.
	Default difficulty.BigInt
}

// New returns an Algorithm with the given default difficulty target.
func New(defaultDifficulty int64) *Algorithm {
	return &Algorithm{
		Difficulties: make(map[common.Hash]difficulty.BigInt),
		Default:      difficulty.New(defaultDifficulty),
	}
}

func (a *Algorithm) ZeroDifficulty() poc.Difficulty { return difficulty.Zero() }

func (a *Algorithm) DecodeDifficulty(data []byte) (poc.Difficulty, error) {
	return difficulty.FromBytes(data), nil
}

func (a *Algorithm) Difficulty(parent common.Hash) (poc.Difficulty, error) {
	if d, ok := a.Difficulties[parent]; ok {
		return d, nil
	}
	return a.Default, nil
}

// Verify is the legacy path; this fake never needs it to do anything real
// since neither the verifier nor the miner call it.
func (a *Algorithm) Verify(parent common.Hash, preHash common.Hash, seal poc.NonceData, d poc.Difficulty) (bool, error) {
	return false, nil
}

func (a *Algorithm) PocMine(ctx context.Context, parent common.Hash, generationSig common.Hash, baseTarget poc.Difficulty) (poc.NonceData, error) {
	target := baseTarget.(difficulty.BigInt)
	for nonce := uint64(0); nonce < uint64(a.Round()); nonce++ {
		data := deadlineInput(parent, generationSig, nonce)
		h := crypto.Keccak256(data)
		v := binary.BigEndian.Uint64(h[:8])
		if int64(v%100) < target.V.Int64() {
			buf := make([]byte, 8)
			binary.BigEndian.PutUint64(buf, nonce)
			return poc.NonceData(buf), nil
		}
	}
	return nil, nil
}

func (a *Algorithm) PocVerify(parent common.Hash, preHash common.Hash, nonceData poc.NonceData, baseTarget poc.Difficulty) (bool, error) {
	if len(nonceData) != 8 {
		return false, nil
	}
	nonce := binary.BigEndian.Uint64(nonceData)
	target := baseTarget.(difficulty.BigInt)
	data := deadlineInput(parent, preHash, nonce)
	h := crypto.Keccak256(data)
	v := binary.BigEndian.Uint64(h[:8])
	return int64(v%100) < target.V.Int64(), nil
}

func (a *Algorithm) Round() uint32 { return 4096 }

func deadlineInput(parent, generationSig common.Hash, nonce uint64) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, nonce)
	out := make([]byte, 0, common.HashLength*2+8)
	out = append(out, parent[:]...)
	out = append(out, generationSig[:]...)
	out = append(out, buf...)
	return out
}
