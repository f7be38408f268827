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

package difficulty

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/plotchain/go-poc/consensus/poc"
)

func TestZeroIsAdditiveIdentity(t *testing.T) {
	z := Zero()
	five := New(5)
	require.Equal(t, 0, five.Cmp(five.Add(z)))
}

func TestCmpOrdering(t *testing.T) {
	require.Equal(t, -1, New(1).Cmp(New(2)))
	require.Equal(t, 0, New(2).Cmp(New(2)))
	require.Equal(t, 1, New(3).Cmp(New(2)))
}

func TestAddIsNonMutating(t *testing.T) {
	a := New(10)
	b := New(5)
	sum := a.Add(b)
	require.Equal(t, 0, a.Cmp(New(10)), "Add must not mutate its receiver")
	require.Equal(t, 0, b.Cmp(New(5)), "Add must not mutate its argument")
	require.Equal(t, 0, sum.Cmp(New(15)))
}

func TestBytesRoundTrip(t *testing.T) {
	d := New(123456789)
	got := FromBytes(d.Bytes())
	require.Equal(t, 0, d.Cmp(got))
}

func TestCmpPanicsOnIncompatibleType(t *testing.T) {
	require.Panics(t, func() {
		New(1).Cmp(fakeDifficulty{})
	})
}

// fakeDifficulty is a poc.Difficulty implementation deliberately distinct
// from BigInt, to exercise the concrete-type assertion panic in Cmp.
type fakeDifficulty struct{}

func (fakeDifficulty) Cmp(other poc.Difficulty) int          { return 0 }
func (fakeDifficulty) Add(other poc.Difficulty) poc.Difficulty { return fakeDifficulty{} }
func (fakeDifficulty) Bytes() []byte                          { return nil }
