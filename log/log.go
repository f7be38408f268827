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

// Package log is a thin, package-scoped wrapper over go-ethereum's
// structured logger, giving every consensus/poc component a logger already
// tagged with its component name, the same convention probeash.config.Log
// follows with log.New("miner", id).
package log

import "github.com/ethereum/go-ethereum/log"

// New returns a logger tagged with ctx key/value pairs, e.g.
// log.New("component", "poc-verifier").
func New(ctx ...interface{}) log.Logger {
	return log.New(ctx...)
}

// Root is the untagged root logger, for call sites that don't warrant their
// own tagged child.
func Root() log.Logger {
	return log.Root()
}
