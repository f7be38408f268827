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

package consensus

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"
)

// rlpHeader is the RLP wire shape of Header. It exists only so encoding is
// independent of the in-memory representation's field order/types, the way
// the host's canonical encoding is expected to be stable across versions.
type rlpDigestItem struct {
	Kind     uint8
	EngineID EngineID
	Data     []byte
}

type rlpHeader struct {
	ParentHash common.Hash
	Number     uint64
	Time       uint64
	Digest     []rlpDigestItem
}

func toRLPHeader(h Header) rlpHeader {
	items := make([]rlpDigestItem, len(h.Digest.Items))
	for i, it := range h.Digest.Items {
		items[i] = rlpDigestItem{Kind: uint8(it.Kind), EngineID: it.EngineID, Data: it.Data}
	}
	return rlpHeader{ParentHash: h.ParentHash, Number: h.Number, Time: h.Time, Digest: items}
}

// headerHash computes the canonical hash of a header: Keccak256 over its
// RLP encoding, the same construction go-ethereum-family headers use for
// their block hash.
func headerHash(h Header) common.Hash {
	enc, err := rlp.EncodeToBytes(toRLPHeader(h))
	if err != nil {
		// Encoding a well-formed in-memory Header never fails; a failure
		// here means a DigestItem held un-RLP-encodable data, which is a
		// programming error in the caller, not a runtime condition to
		// recover from.
		panic("consensus: failed to RLP-encode header: " + err.Error())
	}
	return crypto.Keccak256Hash(enc)
}
