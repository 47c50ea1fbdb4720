// Board Implementation Tests
//
// Copyright (c) 2024 The Goban Authors
//
// This file is part of goban.
//
// goban is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License,
// version 3, as published by the Free Software Foundation.
//
// goban is distributed in the hope that it will be useful, but
// WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the GNU
// Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public
// License, version 3, along with goban. If not, see
// <http://www.gnu.org/licenses/>

package goban

import "testing"

func TestBoardSetStone(t *testing.T) {
	b := MakeBoard(9)

	if s := b.Stone(3, 3); s != Empty {
		t.Fatalf("fresh board: got %s, want Empty", s)
	}

	b.Set(3, 3, Black)
	if s := b.Stone(3, 3); s != Black {
		t.Fatalf("after Set(Black): got %s, want Black", s)
	}

	b.Set(3, 3, Empty)
	if s := b.Stone(3, 3); s != Empty {
		t.Fatalf("after Set(Empty): got %s, want Empty", s)
	}
}

func TestBoardOutOfRange(t *testing.T) {
	b := MakeBoard(9)

	if s := b.Stone(-1, 0); s != Empty {
		t.Fatalf("out of range read: got %s, want Empty", s)
	}
	if s := b.Stone(9, 0); s != Empty {
		t.Fatalf("out of range read: got %s, want Empty", s)
	}

	// Out of range writes must not panic and must not be observable.
	b.Set(-1, 0, Black)
	b.Set(9, 9, White)
}

func TestGroupOfCorner(t *testing.T) {
	b := MakeBoard(9)
	b.Set(0, 0, Black)
	b.Set(1, 0, Black)
	b.Set(0, 1, Black)

	group := b.GroupOf(0, 0)
	if len(group) != 3 {
		t.Fatalf("got group of size %d, want 3", len(group))
	}
}

func TestGroupOfEmptySeed(t *testing.T) {
	b := MakeBoard(9)
	if g := b.GroupOf(4, 4); g != nil {
		t.Fatalf("group of empty seed: got %v, want nil", g)
	}
}

func TestLiberties(t *testing.T) {
	b := MakeBoard(9)
	b.Set(4, 4, Black)

	group := b.GroupOf(4, 4)
	if n := b.Liberties(group); n != 4 {
		t.Fatalf("lone stone liberties: got %d, want 4", n)
	}

	b.Set(3, 4, White)
	b.Set(5, 4, White)
	b.Set(4, 3, White)
	b.Set(4, 5, White)

	group = b.GroupOf(4, 4)
	if n := b.Liberties(group); n != 0 {
		t.Fatalf("surrounded stone liberties: got %d, want 0", n)
	}
}

func TestCountRegionSingleColor(t *testing.T) {
	b := MakeBoard(5)
	// Fence off the top-left 2x2 empty corner with black.
	b.Set(2, 0, Black)
	b.Set(0, 2, Black)
	b.Set(2, 1, Black)
	b.Set(1, 2, Black)
	b.Set(2, 2, Black)

	var visited bitset
	var black, white int
	b.CountRegion(0, 0, &visited, &black, &white)

	if black != 4 {
		t.Fatalf("got black=%d, want 4 for a 2x2 bounded region", black)
	}
	if white != 0 {
		t.Fatalf("got white=%d, want 0", white)
	}
}

func TestCountRegionMixedBoundaryScoresNeither(t *testing.T) {
	b := MakeBoard(5)
	b.Set(1, 0, Black)
	b.Set(0, 1, White)

	var visited bitset
	var black, white int
	b.CountRegion(0, 0, &visited, &black, &white)

	if black != 0 || white != 0 {
		t.Fatalf("mixed boundary region scored black=%d white=%d, want 0,0", black, white)
	}
}

func TestCountRegionVisitedIsSharedAcrossSeeds(t *testing.T) {
	b := MakeBoard(3)
	// One black stone makes the surrounding empty region score, so a
	// second count of it would be visible in the totals.
	b.Set(2, 2, Black)
	var visited bitset
	var black, white int

	b.CountRegion(0, 0, &visited, &black, &white)
	before := black + white

	// Re-seeding inside the same already-visited region must be a
	// no-op.
	b.CountRegion(1, 1, &visited, &black, &white)
	if black+white != before {
		t.Fatalf("re-seeding visited region changed totals: %d -> %d", before, black+white)
	}
}
