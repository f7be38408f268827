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

import "errors"

var (
	// ErrUnsealedHeader is returned when a header's terminal digest item is
	// missing or is not a Seal item at all.
	ErrUnsealedHeader = errors.New("poc: header is unsealed")

	// ErrWrongEngine is returned when the terminal Seal digest item is
	// tagged with a different engine id than this engine's.
	ErrWrongEngine = errors.New("poc: header sealed by a different consensus engine")

	// ErrInvalidSeal is returned when Algorithm.PocVerify rejects the
	// nonce against the computed difficulty target.
	ErrInvalidSeal = errors.New("poc: seal does not satisfy the difficulty target")

	// ErrTooFarInFuture is returned when the runtime reports the block is
	// only valid at a timestamp more than MaxTimestampDrift beyond now.
	ErrTooFarInFuture = errors.New("poc: block claims validity too far in the future")

	// ErrNoBestHeader is returned when neither a select-chain oracle nor
	// the header backend can produce a best header to mine on top of.
	ErrNoBestHeader = errors.New("poc: no best header available")
)
