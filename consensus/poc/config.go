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

import "time"

// Config collects the operator-tunable surface of the engine.
type Config struct {
	// CheckInherentsAfter is the block height below which inherent checks
	// are skipped. Immutable once a network has launched.
	CheckInherentsAfter uint64

	// Round is informational: the number of PocMine search iterations an
	// Algorithm performs per call, tuned so one call stays sub-second. No
	// code in this package reads it and it is not threaded into PocMine;
	// an Algorithm reports its own per-call iteration count through
	// Algorithm.Round().
	Round uint32

	// BuildTime bounds how long the proposer may spend assembling a
	// candidate block each mining attempt.
	BuildTime time.Duration

	// Preruntime is optional bytes inserted as a PreRuntime digest item on
	// proposed blocks (authorship info or graffiti).
	Preruntime []byte
}
