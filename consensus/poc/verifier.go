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
	"context"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru"

	"github.com/plotchain/go-poc/consensus"
	"github.com/plotchain/go-poc/log"
	"github.com/plotchain/go-poc/metrics"
)

// recentSealsSize bounds the anti replay-flood cache of already-verified
// (pre-hash, nonce) pairs, mirroring consensus/greatri's in-memory
// signature cache sizing (inmemorySignatures = 4096).
const recentSealsSize = 4096

// VerifierConfig is the subset of Config plus the engine identity a
// PocVerifier needs at construction time.
type VerifierConfig struct {
	EngineID            consensus.EngineID
	CheckInherentsAfter uint64
}

// PocVerifier composes the header-seal checker, the inherent checker and
// the auxiliary ledger into the block-import state machine.
type PocVerifier struct {
	cfg         VerifierConfig
	client      consensus.Client
	algorithm   Algorithm
	selectChain consensus.SelectChain // optional; nil means use client.BestHash
	providers   consensus.InherentDataProviders
	inherents   *InherentChecker
	ledger      *AuxLedger
	recentSeals *lru.Cache
	log         interface {
		Debug(msg string, ctx ...interface{})
		Warn(msg string, ctx ...interface{})
	}
}

// NewPocVerifier builds a verifier. selectChain may be nil.
func NewPocVerifier(
	cfg VerifierConfig,
	client consensus.Client,
	algorithm Algorithm,
	selectChain consensus.SelectChain,
	providers consensus.InherentDataProviders,
) (*PocVerifier, error) {
	cache, err := lru.New(recentSealsSize)
	if err != nil {
		return nil, fmt.Errorf("poc: allocate seal cache: %w", err)
	}
	return &PocVerifier{
		cfg:         cfg,
		client:      client,
		algorithm:   algorithm,
		selectChain: selectChain,
		providers:   providers,
		inherents:   NewInherentChecker(client, providers, cfg.CheckInherentsAfter),
		ledger:      NewAuxLedger(cfg.EngineID, client, algorithm),
		recentSeals: cache,
		log:         log.New("component", "poc-verifier"),
	}, nil
}

// resolveBestHash resolves the current best chain tip, preferring the
// optional select-chain oracle over the header backend.
func (v *PocVerifier) resolveBestHash() (h consensus.Header, err error) {
	if v.selectChain != nil {
		best, err := v.selectChain.BestChain()
		if err != nil {
			return consensus.Header{}, fmt.Errorf("poc: select-chain best_chain: %w", err)
		}
		return *best, nil
	}
	hash := v.client.BestHash()
	best, err := v.client.Header(hash)
	if err != nil {
		return consensus.Header{}, fmt.Errorf("poc: header backend best header: %w", err)
	}
	if best == nil {
		return consensus.Header{}, ErrNoBestHeader
	}
	return *best, nil
}

// checkHeader strips the seal, recomputes the pre-hash, fetches the
// parent's difficulty target and checks the nonce against it.
func (v *PocVerifier) checkHeader(header consensus.Header) (consensus.Header, Difficulty, consensus.DigestItem, error) {
	stripped, sealItem, nonce, err := StripSeal(v.cfg.EngineID, header)
	if err != nil {
		return consensus.Header{}, nil, consensus.DigestItem{}, err
	}

	preHash := PreHash(stripped)
	difficulty, err := v.algorithm.Difficulty(stripped.ParentHash)
	if err != nil {
		return consensus.Header{}, nil, consensus.DigestItem{}, fmt.Errorf("poc: difficulty(%s): %w", stripped.ParentHash, err)
	}

	cacheKey := string(preHash[:]) + string(nonce)
	if _, ok := v.recentSeals.Get(cacheKey); ok {
		return stripped, difficulty, sealItem, nil
	}

	ok, err := v.algorithm.PocVerify(stripped.ParentHash, preHash, nonce, difficulty)
	if err != nil {
		return consensus.Header{}, nil, consensus.DigestItem{}, fmt.Errorf("poc: poc_verify: %w", err)
	}
	if !ok {
		return consensus.Header{}, nil, consensus.DigestItem{}, ErrInvalidSeal
	}
	v.recentSeals.Add(cacheKey, struct{}{})

	return stripped, difficulty, sealItem, nil
}

// Verify implements consensus.Verifier.
func (v *PocVerifier) Verify(
	ctx context.Context,
	origin consensus.BlockOrigin,
	header consensus.Header,
	justification []byte,
	body *consensus.Body,
) (*consensus.ImportParams, error) {
	hash := header.Hash() // full hash, seal included: the aux storage key
	parentHash := header.ParentHash

	inherentData, err := v.providers.CreateInherentData()
	if err != nil {
		return nil, fmt.Errorf("poc: create inherent data: %w", err)
	}
	nowSecs, err := inherentData.TimestampInherentData()
	if err != nil {
		return nil, fmt.Errorf("poc: read timestamp inherent: %w", err)
	}
	now := time.Unix(int64(nowSecs), 0)

	bestHeader, err := v.resolveBestHash()
	if err != nil {
		metrics.VerifiedRejected.Inc(1)
		return nil, err
	}
	bestAux, err := v.ledger.Read(bestHeader.Hash())
	if err != nil {
		metrics.VerifiedRejected.Inc(1)
		return nil, err
	}
	parentAux, err := v.ledger.Read(parentHash)
	if err != nil {
		metrics.VerifiedRejected.Inc(1)
		return nil, err
	}

	strippedHeader, difficulty, sealItem, err := v.checkHeader(header)
	if err != nil {
		metrics.VerifiedRejected.Inc(1)
		v.log.Debug("rejecting block", "hash", hash, "err", err)
		return nil, err
	}

	newAux := Aux{
		Difficulty:      difficulty,
		TotalDifficulty: parentAux.TotalDifficulty.Add(difficulty),
	}

	if body != nil {
		block := consensus.Block{Header: strippedHeader, Body: *body}
		if err := v.inherents.Check(ctx, block, inherentData, now); err != nil {
			metrics.VerifiedRejected.Inc(1)
			v.log.Debug("rejecting block", "hash", hash, "err", err)
			return nil, err
		}
	}

	encodedAux, err := v.ledger.Encode(newAux)
	if err != nil {
		metrics.VerifiedRejected.Inc(1)
		return nil, fmt.Errorf("poc: encode aux: %w", err)
	}

	metrics.VerifiedAccepted.Inc(1)
	prefersNew := newAux.TotalDifficulty.Cmp(bestAux.TotalDifficulty) > 0
	v.log.Debug("accepted block", "hash", hash, "total_difficulty", newAux.TotalDifficulty, "prefers_new", prefersNew)

	return &consensus.ImportParams{
		Origin:        origin,
		Header:        strippedHeader,
		PostDigests:   []consensus.DigestItem{sealItem},
		Body:          body,
		Justification: justification,
		Finalized:     false,
		Auxiliary:     []consensus.AuxWrite{{Key: v.ledger.Key(hash), Value: encodedAux}},
		ForkChoice:    consensus.ForkChoice{PrefersNew: prefersNew},
	}, nil
}
