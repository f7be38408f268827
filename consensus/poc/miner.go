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

	"github.com/ethereum/go-ethereum/common"

	"github.com/plotchain/go-poc/consensus"
	"github.com/plotchain/go-poc/log"
	"github.com/plotchain/go-poc/metrics"
)

// miningBackoff is the fixed back-off after a sync-gate rejection or a
// transient error, so the miner never tight-loops on failure.
const miningBackoff = 1 * time.Second

// Miner drives the background mining loop. It owns its block_import
// handle, proposer environment, sync oracle and select-chain reference
// exclusively: nothing else should call its unexported methods
// concurrently.
type Miner struct {
	cfg         Config
	engineID    consensus.EngineID
	client      consensus.Client
	algorithm   Algorithm
	env         consensus.Environment
	syncOracle  consensus.SyncOracle
	selectChain consensus.SelectChain // optional
	importer    consensus.BlockImport
	providers   consensus.InherentDataProviders
	ledger      *AuxLedger
	log         interface {
		Debug(msg string, ctx ...interface{})
		Info(msg string, ctx ...interface{})
		Error(msg string, ctx ...interface{})
	}
}

// StartMine spawns the mining loop on a dedicated goroutine and returns
// immediately. Because PocMine is expected to be CPU-bound, it is run on
// its own goroutine rather than folded into any cooperative scheduler.
// Cancel ctx to stop the loop; there is no other shutdown signal.
//
// timestampProvider is registered the same way NewImportQueue registers
// it: a host that only mines, without ever building an ImportQueue, still
// ends up with the timestamp inherent provider in place. The registration
// is idempotent, so a host wiring up both an ImportQueue and a Miner can
// pass the same provider to both without double-registering.
func StartMine(
	ctx context.Context,
	cfg Config,
	engineID consensus.EngineID,
	client consensus.Client,
	algorithm Algorithm,
	env consensus.Environment,
	syncOracle consensus.SyncOracle,
	selectChain consensus.SelectChain,
	importer consensus.BlockImport,
	providers consensus.InherentDataProviders,
	timestampProvider consensus.InherentDataProvider,
) error {
	if err := RegisterTimestampProvider(providers, timestampProvider); err != nil {
		return fmt.Errorf("poc: register timestamp inherent provider: %w", err)
	}

	m := &Miner{
		cfg:         cfg,
		engineID:    engineID,
		client:      client,
		algorithm:   algorithm,
		env:         env,
		syncOracle:  syncOracle,
		selectChain: selectChain,
		importer:    importer,
		providers:   providers,
		ledger:      NewAuxLedger(engineID, client, algorithm),
		log:         log.New("component", "poc-miner"),
	}
	go m.run(ctx)
	return nil
}

func (m *Miner) run(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}

		if m.syncOracle.IsMajorSyncing() {
			m.log.Debug("skipping proposal due to sync")
			if !sleepOrDone(ctx, miningBackoff) {
				return
			}
			continue
		}

		abandoned, err := m.attempt(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			m.log.Error("mining attempt failed, restarting after back-off", "err", err)
			if !sleepOrDone(ctx, miningBackoff) {
				return
			}
			continue
		}
		if abandoned {
			// The chain tip moved mid-attempt; restart immediately, no
			// back-off.
			continue
		}
	}
}

func sleepOrDone(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// attempt runs one full propose, search, race-check, import cycle.
// abandoned is true when the attempt was dropped because the chain tip
// moved during the search, or because a chain at least as heavy as the
// candidate became best before import; neither is an error.
func (m *Miner) attempt(ctx context.Context) (abandoned bool, err error) {
	bestHeader, err := m.resolveBestHeader()
	if err != nil {
		return false, fmt.Errorf("fetch best header: %w", err)
	}
	bestHash := bestHeader.Hash()

	aux, err := m.ledger.Read(bestHash)
	if err != nil {
		return false, err
	}

	proposer, err := m.env.Init(&bestHeader)
	if err != nil {
		return false, fmt.Errorf("init proposer: %w", err)
	}

	inherentData, err := m.providers.CreateInherentData()
	if err != nil {
		return false, fmt.Errorf("create inherent data: %w", err)
	}
	var inherentDigest consensus.Digest
	if len(m.cfg.Preruntime) > 0 {
		PushPreRuntime(m.engineID, &inherentDigest, m.cfg.Preruntime)
	}

	block, err := proposer.Propose(ctx, inherentData, inherentDigest, m.cfg.BuildTime)
	if err != nil {
		return false, fmt.Errorf("propose block: %w", err)
	}
	header, body := block.Header, block.Body

	difficulty, err := m.algorithm.Difficulty(bestHash)
	if err != nil {
		return false, fmt.Errorf("difficulty(%s): %w", bestHash, err)
	}

	nonce, abandoned, err := m.search(ctx, bestHash, header, difficulty)
	if err != nil || abandoned {
		return abandoned, err
	}

	aux.Difficulty = difficulty
	aux.TotalDifficulty = aux.TotalDifficulty.Add(difficulty)

	stamped := StampSeal(m.engineID, header, nonce)
	hash := stamped.Hash()

	// Double-check: has a chain at least as heavy as ours (equal total
	// difficulty included) become best since we started searching? If so,
	// drop this proposal without importing.
	curBestHeader, err := m.resolveBestHeader()
	if err != nil {
		return false, fmt.Errorf("re-check best header: %w", err)
	}
	curBestAux, err := m.ledger.Read(curBestHeader.Hash())
	if err != nil {
		return false, err
	}
	if curBestAux.TotalDifficulty.Cmp(aux.TotalDifficulty) >= 0 {
		m.log.Debug("abandoning mined block: best chain moved ahead", "our_total_difficulty", aux.TotalDifficulty)
		return true, nil
	}

	encodedAux, err := m.ledger.Encode(aux)
	if err != nil {
		return false, fmt.Errorf("encode aux: %w", err)
	}

	params := consensus.ImportParams{
		Origin:      consensus.OriginOwn,
		Header:      header,
		PostDigests: []consensus.DigestItem{SealDigestItem(m.engineID, nonce)},
		Body:        &body,
		Finalized:   false,
		Auxiliary:   []consensus.AuxWrite{{Key: m.ledger.Key(hash), Value: encodedAux}},
		ForkChoice:  consensus.ForkChoice{PrefersNew: true},
	}
	if err := m.importer.ImportBlock(ctx, params); err != nil {
		return false, fmt.Errorf("import block built on %s: %w", bestHash, err)
	}

	metrics.BlocksMined.Inc(1)
	m.log.Info("mined new block", "number", header.Number, "hash", hash, "total_difficulty", aux.TotalDifficulty)
	return false, nil
}

// search repeats PocMine until a nonce is found, the context is cancelled,
// or the chain tip moves out from under the candidate.
func (m *Miner) search(ctx context.Context, bestHash common.Hash, header consensus.Header, difficulty Difficulty) (NonceData, bool, error) {
	for {
		if ctx.Err() != nil {
			return nil, false, ctx.Err()
		}

		nonce, err := m.algorithm.PocMine(ctx, bestHash, header.Hash(), difficulty)
		metrics.Hashrate.Mark(1)
		if err != nil {
			return nil, false, fmt.Errorf("poc_mine: %w", err)
		}
		if nonce != nil {
			return nonce, false, nil
		}

		current, err := m.resolveBestHeader()
		if err != nil {
			return nil, false, fmt.Errorf("re-check best header during search: %w", err)
		}
		if current.Hash() != bestHash {
			return nil, true, nil
		}
	}
}

// resolveBestHeader mirrors PocVerifier.resolveBestHash: the select-chain
// oracle wins when present, else the header backend's best.
func (m *Miner) resolveBestHeader() (consensus.Header, error) {
	if m.selectChain != nil {
		h, err := m.selectChain.BestChain()
		if err != nil {
			return consensus.Header{}, fmt.Errorf("select-chain best_chain: %w", err)
		}
		return *h, nil
	}
	hash := m.client.BestHash()
	h, err := m.client.Header(hash)
	if err != nil {
		return consensus.Header{}, fmt.Errorf("header backend best header: %w", err)
	}
	if h == nil {
		return consensus.Header{}, ErrNoBestHeader
	}
	return *h, nil
}
