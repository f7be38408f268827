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

// Package metrics exposes the handful of counters the PoC engine reports:
// mining throughput and verification outcomes. It wraps go-ethereum's
// metrics registry the same way probeash.hashrate does in
// consensus/probeash/sealer.go.
package metrics

import "github.com/ethereum/go-ethereum/metrics"

// Hashrate tracks mining search attempts per second.
var Hashrate = metrics.NewRegisteredMeter("poc/miner/hashrate", nil)

// BlocksMined counts successfully submitted own-mined blocks.
var BlocksMined = metrics.NewRegisteredCounter("poc/miner/blocks", nil)

// VerifiedAccepted counts blocks the verifier accepted.
var VerifiedAccepted = metrics.NewRegisteredCounter("poc/verifier/accepted", nil)

// VerifiedRejected counts blocks the verifier rejected.
var VerifiedRejected = metrics.NewRegisteredCounter("poc/verifier/rejected", nil)
