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

	"github.com/plotchain/go-poc/consensus"
)

// MaxTimestampDrift is the compile-time clock-skew tolerance: a block
// whose inherent check fails with "valid at timestamp T" is still
// accepted if T is no more than this far beyond the local wall clock.
const MaxTimestampDrift = 60 * time.Second

// InherentChecker validates a candidate block's inherent extrinsics and
// enforces the timestamp-drift policy.
type InherentChecker struct {
	runtime             consensus.RuntimeAPI
	providers           consensus.InherentDataProviders
	checkInherentsAfter uint64
}

// NewInherentChecker builds a checker that skips validation below
// checkInherentsAfter (bootstrap leniency).
func NewInherentChecker(runtime consensus.RuntimeAPI, providers consensus.InherentDataProviders, checkInherentsAfter uint64) *InherentChecker {
	return &InherentChecker{runtime: runtime, providers: providers, checkInherentsAfter: checkInherentsAfter}
}

// Check validates block's inherents against data as observed at wall-clock
// now. A nil return means the block passes.
func (c *InherentChecker) Check(ctx context.Context, block consensus.Block, data consensus.InherentData, now time.Time) error {
	if block.Header.Number < c.checkInherentsAfter {
		return nil
	}

	result, err := c.runtime.CheckInherents(ctx, block, data)
	if err != nil {
		return fmt.Errorf("poc: check inherents: %w", err)
	}
	if result.Ok {
		return nil
	}

	limit := uint64(now.Add(MaxTimestampDrift).Unix())
	for _, e := range result.Errors {
		if e.ValidAtTimestamp != nil {
			if *e.ValidAtTimestamp > limit {
				return fmt.Errorf("%w: valid at %d, now %d", ErrTooFarInFuture, *e.ValidAtTimestamp, now.Unix())
			}
			continue
		}
		msg := c.providers.ErrorToString(e.ID, e.Raw)
		return fmt.Errorf("poc: inherent error: %s", msg)
	}
	return nil
}
