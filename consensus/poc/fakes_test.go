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
	"encoding/binary"
	"fmt"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/plotchain/go-poc/consensus"
)

// fakeClient is an in-memory consensus.Client: header store + aux store +
// a stubbable inherent check, enough to drive PocVerifier/Miner tests
// without a real node framework.
type fakeClient struct {
	mu                sync.Mutex
	headers           map[common.Hash]consensus.Header
	aux               map[string][]byte
	best              common.Hash
	checkInherentsErr error
	checkInherentsRes consensus.InherentCheckResult
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		headers:           make(map[common.Hash]consensus.Header),
		aux:               make(map[string][]byte),
		checkInherentsRes: consensus.InherentCheckResult{Ok: true},
	}
}

func (c *fakeClient) setHeader(h consensus.Header) common.Hash {
	c.mu.Lock()
	defer c.mu.Unlock()
	hash := h.Hash()
	c.headers[hash] = h
	return hash
}

// putHeaderAt stores h under an arbitrary caller-chosen hash rather than
// h.Hash(), so tests can stand up best/parent hashes without having to
// construct headers that actually hash to them.
func (c *fakeClient) putHeaderAt(hash common.Hash, h consensus.Header) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.headers[hash] = h
}

func (c *fakeClient) setBest(hash common.Hash) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.best = hash
}

func (c *fakeClient) setAux(key []byte, raw []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.aux[string(key)] = raw
}

func (c *fakeClient) BestHash() common.Hash {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.best
}

func (c *fakeClient) Header(hash common.Hash) (*consensus.Header, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	h, ok := c.headers[hash]
	if !ok {
		return nil, nil
	}
	return &h, nil
}

func (c *fakeClient) GetAux(key []byte) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.aux[string(key)]
	if !ok {
		return nil, nil
	}
	return v, nil
}

func (c *fakeClient) CheckInherents(ctx context.Context, block consensus.Block, data consensus.InherentData) (consensus.InherentCheckResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.checkInherentsErr != nil {
		return consensus.InherentCheckResult{}, c.checkInherentsErr
	}
	return c.checkInherentsRes, nil
}

// fakeProviders is an in-memory consensus.InherentDataProviders backed by a
// settable wall-clock timestamp.
type fakeProviders struct {
	now        uint64
	registered map[string]consensus.InherentDataProvider
}

func newFakeProviders(now uint64) *fakeProviders {
	return &fakeProviders{now: now, registered: make(map[string]consensus.InherentDataProvider)}
}

func (p *fakeProviders) CreateInherentData() (consensus.InherentData, error) {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, p.now)
	return consensus.InherentData{consensus.TimestampInherentIdentifier: buf}, nil
}

func (p *fakeProviders) HasProvider(id string) bool {
	_, ok := p.registered[id]
	return ok
}

func (p *fakeProviders) RegisterProvider(id string, provider consensus.InherentDataProvider) error {
	p.registered[id] = provider
	return nil
}

func (p *fakeProviders) ErrorToString(id string, raw []byte) string {
	return fmt.Sprintf("%s: %s", id, string(raw))
}

// fakeTimestampProvider is the provider RegisterTimestampProvider installs.
type fakeTimestampProvider struct{}

func (fakeTimestampProvider) Provide(data consensus.InherentData) error { return nil }
func (fakeTimestampProvider) ErrorToString(raw []byte) (string, bool)   { return "", false }

// fakeSelectChain is a settable consensus.SelectChain.
type fakeSelectChain struct {
	header *consensus.Header
	err    error
}

func (s *fakeSelectChain) BestChain() (*consensus.Header, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.header, nil
}

// fakeSyncOracle is a settable consensus.SyncOracle.
type fakeSyncOracle struct {
	syncing bool
}

func (s *fakeSyncOracle) IsMajorSyncing() bool { return s.syncing }

// fakeProposer/fakeEnvironment implement consensus.Proposer/Environment,
// always proposing the same pre-set block (with the inherent digest
// grafted in, the way a real proposer would).
type fakeProposer struct {
	block *consensus.Block
	err   error
}

func (p *fakeProposer) Propose(ctx context.Context, data consensus.InherentData, digest consensus.Digest, buildTime time.Duration) (*consensus.Block, error) {
	if p.err != nil {
		return nil, p.err
	}
	b := *p.block
	b.Header = b.Header.Clone()
	for _, item := range digest.Items {
		b.Header.Digest.Push(item)
	}
	return &b, nil
}

type fakeEnvironment struct {
	proposer *fakeProposer
	err      error
}

func (e *fakeEnvironment) Init(parent *consensus.Header) (consensus.Proposer, error) {
	if e.err != nil {
		return nil, e.err
	}
	return e.proposer, nil
}

// fakeImporter is an in-memory consensus.BlockImport recording every
// accepted import.
type fakeImporter struct {
	mu       sync.Mutex
	imported []consensus.ImportParams
	err      error
}

func (i *fakeImporter) ImportBlock(ctx context.Context, params consensus.ImportParams) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.err != nil {
		return i.err
	}
	i.imported = append(i.imported, params)
	return nil
}

func (i *fakeImporter) count() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return len(i.imported)
}
