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

// Package consensus declares the host-framework contract that a pluggable
// consensus engine is built against: block storage, header lookup, runtime
// inherent checks, select-chain and sync oracles, and the block proposer.
// None of these are implemented here; a real node framework supplies them.
// consensus/poc builds the PoC engine entirely in terms of this contract.
package consensus

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// EngineID tags a DigestItem (and an auxiliary storage prefix) to the
// consensus engine that produced it, the same way go-ethereum-family chains
// tag their seal digests (e.g. ethash's "ethash", clique's "clique").
type EngineID [4]byte

// DigestItemKind distinguishes the two digest item shapes the engine cares
// about. A real header digest may carry other kinds (runtime logs, and so
// on); the engine only ever pushes or pops these two.
type DigestItemKind uint8

const (
	// DigestSeal is the terminal, post-import digest item carrying the
	// engine's proof.
	DigestSeal DigestItemKind = iota
	// DigestPreRuntime is an inherent-phase digest item a block proposer
	// may insert (authorship info, graffiti); in a sealed header it sits
	// before the terminal Seal item, and verification does not inspect it.
	DigestPreRuntime
)

// DigestItem is one entry of a header's digest.
type DigestItem struct {
	Kind     DigestItemKind
	EngineID EngineID
	Data     []byte
}

// Digest is the ordered sequence of digest items carried by a header. The
// engine treats it as a stack: mining pushes, verification pops the last
// item.
type Digest struct {
	Items []DigestItem
}

// Push appends an item as the new terminal digest entry.
func (d *Digest) Push(item DigestItem) {
	d.Items = append(d.Items, item)
}

// Pop removes and returns the terminal digest item, if any.
func (d *Digest) Pop() (DigestItem, bool) {
	if len(d.Items) == 0 {
		return DigestItem{}, false
	}
	last := d.Items[len(d.Items)-1]
	d.Items = d.Items[:len(d.Items)-1]
	return last, true
}

// Clone returns a deep copy, so the miner can stamp a seal onto a copy of
// the proposed header without mutating the one still referenced elsewhere.
func (d Digest) Clone() Digest {
	items := make([]DigestItem, len(d.Items))
	for i, it := range d.Items {
		data := make([]byte, len(it.Data))
		copy(data, it.Data)
		items[i] = DigestItem{Kind: it.Kind, EngineID: it.EngineID, Data: data}
	}
	return Digest{Items: items}
}

// Header is the protocol-level block header the engine verifies and
// stamps. A real host header carries additional fields (state root,
// extrinsics root, ...) that consensus never inspects; those are opaque to
// this package and are not modeled here.
type Header struct {
	ParentHash common.Hash
	Number     uint64
	Time       uint64
	Digest     Digest
}

// Clone returns a deep copy of the header, including its digest.
func (h Header) Clone() Header {
	return Header{
		ParentHash: h.ParentHash,
		Number:     h.Number,
		Time:       h.Time,
		Digest:     h.Digest.Clone(),
	}
}

// Hash returns the RLP-Keccak256 hash of the header in its current state,
// digest included. Popping the terminal seal item and re-hashing is how the
// engine computes a pre-hash: the value the miner actually commits to is
// the hash of the header *without* its seal.
func (h Header) Hash() common.Hash {
	return headerHash(h)
}

// Body is the opaque extrinsic payload of a block. Its contents are
// irrelevant to consensus; the engine only ever passes it through.
type Body struct {
	Extrinsics [][]byte
}

// Block pairs a header with its body.
type Block struct {
	Header Header
	Body   Body
}

// BlockOrigin records where an imported block came from.
type BlockOrigin int

const (
	OriginGenesis BlockOrigin = iota
	OriginNetworkInitialSync
	OriginNetworkBroadcast
	OriginOwn
	OriginFile
)

// ForkChoice is the verdict a Verifier attaches to an import: whether this
// block should become (or stay) the preferred chain tip.
type ForkChoice struct {
	PrefersNew bool
}

// AuxWrite is a single auxiliary-storage key/value pair an import carries.
// The host persists it atomically with block acceptance; the engine never
// writes to the store directly.
type AuxWrite struct {
	Key   []byte
	Value []byte
}

// ImportParams is what a Verifier hands back to the import queue: enough
// to let the host finish importing the block under the engine's verdict.
type ImportParams struct {
	Origin        BlockOrigin
	Header        Header
	PostDigests   []DigestItem
	Body          *Body
	Justification []byte
	Finalized     bool
	Auxiliary     []AuxWrite
	ForkChoice    ForkChoice
}

// HeaderBackend is the read-mostly header/best-block lookup the host
// provides.
type HeaderBackend interface {
	BestHash() common.Hash
	Header(hash common.Hash) (*Header, error)
}

// AuxStore is the read side of the auxiliary key/value store. Writes never
// go through this interface; they ride along on ImportParams.Auxiliary and
// are persisted by the host's import pipeline.
type AuxStore interface {
	GetAux(key []byte) ([]byte, error)
}

// Client is the combined backend + aux-store + runtime capability the
// verifier needs.
type Client interface {
	HeaderBackend
	AuxStore
	RuntimeAPI
}

// SelectChain is the optional host-supplied fork-choice oracle. When absent,
// HeaderBackend.BestHash is used instead.
type SelectChain interface {
	BestChain() (*Header, error)
}

// SyncOracle reports whether the node is still in its initial/major
// catch-up sync.
type SyncOracle interface {
	IsMajorSyncing() bool
}

// InherentData is the opaque per-block metadata bag (notably the
// timestamp) supplied by the node rather than by transactions.
type InherentData map[string][]byte

// TimestampInherentData extracts the timestamp an InherentDataProvider
// stored under the well-known timestamp key, mirroring the
// srml_timestamp::TimestampInherentData accessor.
func (d InherentData) TimestampInherentData() (uint64, error) {
	raw, ok := d[TimestampInherentIdentifier]
	if !ok || len(raw) != 8 {
		return 0, ErrMissingTimestampInherent
	}
	var t uint64
	for _, b := range raw {
		t = t<<8 | uint64(b)
	}
	return t, nil
}

// TimestampInherentIdentifier is the well-known inherent-data key the
// timestamp provider writes under.
const TimestampInherentIdentifier = "timstap0"

// InherentDataProvider supplies one inherent value and can translate its
// own error codes to human-readable strings.
type InherentDataProvider interface {
	Provide(data InherentData) error
	ErrorToString(err []byte) (string, bool)
}

// InherentDataProviders is the registry of providers a node runs; the same
// abstraction as Substrate's InherentDataProviders, re-expressed as a Go
// interface so the engine can register its own timestamp provider without
// depending on a concrete registry implementation.
type InherentDataProviders interface {
	CreateInherentData() (InherentData, error)
	HasProvider(id string) bool
	RegisterProvider(id string, p InherentDataProvider) error
	ErrorToString(id string, err []byte) string
}

// InherentError is one entry of an InherentCheckResult: either the
// well-known "valid again at timestamp T" kind, or an opaque identifier
// plus payload for everything else.
type InherentError struct {
	ID               string
	ValidAtTimestamp *uint64
	Raw              []byte
}

// InherentCheckResult is the runtime's verdict on a block's inherent
// extrinsics.
type InherentCheckResult struct {
	Ok     bool
	Errors []InherentError
}

// RuntimeAPI is the subset of the runtime the inherent checker calls.
type RuntimeAPI interface {
	CheckInherents(ctx context.Context, block Block, data InherentData) (InherentCheckResult, error)
}

// Proposer builds one candidate block on top of the parent it was
// initialized with.
type Proposer interface {
	Propose(ctx context.Context, inherentData InherentData, inherentDigest Digest, buildTime time.Duration) (*Block, error)
}

// Environment constructs a Proposer for a given parent header. A fresh
// Proposer is requested once per mining attempt.
type Environment interface {
	Init(parent *Header) (Proposer, error)
}

// BlockImport is the host's block-acceptance pipeline: the single
// serialization point both the verifier (via the import queue) and the
// miner (directly) funnel accepted blocks through.
type BlockImport interface {
	ImportBlock(ctx context.Context, params ImportParams) error
}

// Verifier checks one candidate block and, on success, produces the
// ImportParams the host should hand to BlockImport.
type Verifier interface {
	Verify(ctx context.Context, origin BlockOrigin, header Header, justification []byte, body *Body) (*ImportParams, error)
}

// ImportQueue is the host-facing entry point blocks arrive through.
type ImportQueue interface {
	Import(ctx context.Context, origin BlockOrigin, header Header, justification []byte, body *Body) error
}
