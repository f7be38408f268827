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
	"github.com/ethereum/go-ethereum/common"

	"github.com/plotchain/go-poc/consensus"
)

// StripSeal pops the terminal digest item off header and returns the
// header without it, the popped item itself, and its payload as
// NonceData. header is not mutated; a clone is stripped.
func StripSeal(engineID consensus.EngineID, header consensus.Header) (consensus.Header, consensus.DigestItem, NonceData, error) {
	stripped := header.Clone()
	item, ok := stripped.Digest.Pop()
	if !ok {
		return consensus.Header{}, consensus.DigestItem{}, nil, ErrUnsealedHeader
	}
	if item.Kind != consensus.DigestSeal {
		return consensus.Header{}, consensus.DigestItem{}, nil, ErrUnsealedHeader
	}
	if item.EngineID != engineID {
		return consensus.Header{}, consensus.DigestItem{}, nil, ErrWrongEngine
	}
	return stripped, item, NonceData(item.Data), nil
}

// PreHash is the hash of a header after its seal has been stripped: the
// value the miner commits to and the algorithm verifies against.
func PreHash(stripped consensus.Header) common.Hash {
	return stripped.Hash()
}

// StampSeal returns a clone of header with a terminal Seal digest item
// appended, without mutating header.
func StampSeal(engineID consensus.EngineID, header consensus.Header, nonce NonceData) consensus.Header {
	stamped := header.Clone()
	stamped.Digest.Push(consensus.DigestItem{Kind: consensus.DigestSeal, EngineID: engineID, Data: nonce})
	return stamped
}

// SealDigestItem builds the post-digest item submitted alongside a stripped
// header, so the host can reattach the seal after its own state transition.
func SealDigestItem(engineID consensus.EngineID, nonce NonceData) consensus.DigestItem {
	return consensus.DigestItem{Kind: consensus.DigestSeal, EngineID: engineID, Data: nonce}
}

// PushPreRuntime inserts an operator-supplied pre-runtime digest item into
// digest, distinct from the post-import seal digest.
func PushPreRuntime(engineID consensus.EngineID, digest *consensus.Digest, data []byte) {
	digest.Push(consensus.DigestItem{Kind: consensus.DigestPreRuntime, EngineID: engineID, Data: data})
}
