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

	"github.com/plotchain/go-poc/consensus"
)

// RegisterTimestampProvider registers provider as the timestamp inherent
// data provider if one isn't already registered; re-registration is a
// no-op.
func RegisterTimestampProvider(providers consensus.InherentDataProviders, provider consensus.InherentDataProvider) error {
	if providers.HasProvider(consensus.TimestampInherentIdentifier) {
		return nil
	}
	return providers.RegisterProvider(consensus.TimestampInherentIdentifier, provider)
}

// ImportQueue is the basic FIFO queue wiring: a configured PocVerifier
// feeding a host-supplied BlockImport.
type ImportQueue struct {
	verifier *PocVerifier
	importer consensus.BlockImport
}

// NewImportQueue assembles the verifier and registers the timestamp
// inherent provider, returning a queue ready to import blocks.
func NewImportQueue(
	cfg VerifierConfig,
	client consensus.Client,
	algorithm Algorithm,
	selectChain consensus.SelectChain,
	providers consensus.InherentDataProviders,
	timestampProvider consensus.InherentDataProvider,
	importer consensus.BlockImport,
) (*ImportQueue, error) {
	if err := RegisterTimestampProvider(providers, timestampProvider); err != nil {
		return nil, fmt.Errorf("poc: register timestamp inherent provider: %w", err)
	}

	verifier, err := NewPocVerifier(cfg, client, algorithm, selectChain, providers)
	if err != nil {
		return nil, err
	}

	return &ImportQueue{verifier: verifier, importer: importer}, nil
}

// Import verifies header and, on success, hands the resulting
// ImportParams to the host's BlockImport.
func (q *ImportQueue) Import(
	ctx context.Context,
	origin consensus.BlockOrigin,
	header consensus.Header,
	justification []byte,
	body *consensus.Body,
) error {
	params, err := q.verifier.Verify(ctx, origin, header, justification, body)
	if err != nil {
		return err
	}
	return q.importer.ImportBlock(ctx, *params)
}
