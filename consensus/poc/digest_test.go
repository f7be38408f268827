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
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/plotchain/go-poc/consensus"
)

func TestStripSealRejectsUnsealedHeader(t *testing.T) {
	h := consensus.Header{ParentHash: common.HexToHash("0x01"), Number: 1}
	_, _, _, err := StripSeal(testEngineID, h)
	require.ErrorIs(t, err, ErrUnsealedHeader)
}

func TestStripSealRejectsForeignEngine(t *testing.T) {
	h := consensus.Header{ParentHash: common.HexToHash("0x01"), Number: 1}
	h.Digest.Push(consensus.DigestItem{Kind: consensus.DigestSeal, EngineID: consensus.EngineID{'x', 'x', 'x', 'x'}, Data: []byte{1}})

	_, _, _, err := StripSeal(testEngineID, h)
	require.ErrorIs(t, err, ErrWrongEngine)
}

func TestStripSealRejectsNonTerminalSeal(t *testing.T) {
	h := consensus.Header{ParentHash: common.HexToHash("0x01"), Number: 1}
	h.Digest.Push(consensus.DigestItem{Kind: consensus.DigestSeal, EngineID: testEngineID, Data: []byte{1}})
	h.Digest.Push(consensus.DigestItem{Kind: consensus.DigestPreRuntime, EngineID: testEngineID, Data: []byte("graffiti")})

	_, _, _, err := StripSeal(testEngineID, h)
	require.ErrorIs(t, err, ErrUnsealedHeader)
}

func TestStampThenStripRoundTripsToSameHash(t *testing.T) {
	h := consensus.Header{ParentHash: common.HexToHash("0x01"), Number: 1, Time: 100}
	nonce := NonceData([]byte{1, 2, 3, 4})

	mined := h.Hash() // the pre-hash the miner commits to, before any seal

	stamped := StampSeal(testEngineID, h, nonce)
	require.NotEqual(t, mined, stamped.Hash(), "a sealed header must hash differently from its unsealed form")

	stripped, item, gotNonce, err := StripSeal(testEngineID, stamped)
	require.NoError(t, err)
	require.Equal(t, mined, stripped.Hash(), "stripping the stamped seal must reproduce the original pre-hash")
	require.Equal(t, []byte(nonce), []byte(gotNonce))
	require.Equal(t, consensus.DigestSeal, item.Kind)
}

func TestStampSealDoesNotMutateOriginal(t *testing.T) {
	h := consensus.Header{ParentHash: common.HexToHash("0x01"), Number: 1}
	_ = StampSeal(testEngineID, h, NonceData{9})
	require.Len(t, h.Digest.Items, 0)
}

func TestPushPreRuntimeIsDistinctFromSeal(t *testing.T) {
	var d consensus.Digest
	PushPreRuntime(testEngineID, &d, []byte("author"))
	require.Len(t, d.Items, 1)
	require.Equal(t, consensus.DigestPreRuntime, d.Items[0].Kind)
}
