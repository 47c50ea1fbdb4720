// Rules Engine Tests
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

func mustPlay(t *testing.T, g *GameData, x, y int) {
	t.Helper()
	if !g.TryMove(x, y) {
		t.Fatalf("expected (%d,%d) to be legal for %s", x, y, g.ActivePlayer())
	}
}

func TestTryMoveOccupiedTarget(t *testing.T) {
	g := NewGameData(9)
	mustPlay(t, &g, 4, 4)
	if g.TryMove(4, 4) {
		t.Fatal("move onto an occupied cell must be rejected")
	}
}

func TestTryMoveOutOfRange(t *testing.T) {
	g := NewGameData(9)
	if g.TryMove(0, -1) {
		t.Fatal("negative coordinate must be rejected")
	}
	if g.TryMove(9, 0) {
		t.Fatal("coordinate at board size must be rejected")
	}
}

// TestSimpleCapture builds a two-stone white group at (1,0),(1,1) and
// closes its last liberty with black, verifying both stones are
// removed.
func TestSimpleCapture(t *testing.T) {
	g := NewGameData(9)

	mustPlay(t, &g, 0, 0) // B
	mustPlay(t, &g, 1, 0) // W
	mustPlay(t, &g, 2, 0) // B
	mustPlay(t, &g, 1, 1) // W
	mustPlay(t, &g, 0, 1) // B
	mustPlay(t, &g, 8, 8) // W filler
	mustPlay(t, &g, 2, 1) // B
	mustPlay(t, &g, 8, 7) // W filler

	if g.Board.Stone(1, 0) != White || g.Board.Stone(1, 1) != White {
		t.Fatal("setup broken: white group not in place before the capturing move")
	}

	mustPlay(t, &g, 1, 2) // B: closes the group's last liberty

	if g.Board.Stone(1, 0) != Empty || g.Board.Stone(1, 1) != Empty {
		t.Fatal("captured white stones were not removed from the board")
	}
	if g.Board.Stone(1, 2) != Black {
		t.Fatal("the capturing stone itself must remain on the board")
	}
	if got := g.Log.RemovedCountAt(g.Log.MoveCount() - 1); got != 2 {
		t.Fatalf("got removed count %d, want 2", got)
	}
}

// TestSuicideRejected surrounds an empty point on all four sides with
// white and confirms black cannot play into it without a capture to
// rescue the move.
func TestSuicideRejected(t *testing.T) {
	g := NewGameData(9)

	mustPlay(t, &g, 0, 0) // B filler
	mustPlay(t, &g, 3, 4) // W
	mustPlay(t, &g, 0, 1) // B filler
	mustPlay(t, &g, 5, 4) // W
	mustPlay(t, &g, 0, 2) // B filler
	mustPlay(t, &g, 4, 3) // W
	mustPlay(t, &g, 0, 3) // B filler
	mustPlay(t, &g, 4, 5) // W

	if g.TryMove(4, 4) {
		t.Fatal("move into a fully surrounded point with no capture must be rejected as suicide")
	}
	if g.Board.Stone(4, 4) != Empty {
		t.Fatal("rejected move must leave the board untouched")
	}
}

// TestKoRejected builds a single-stone capture and confirms the
// immediate recapture, which would recreate the position from before
// the capturing move, is rejected.
//
// Shape (corner of the board, White recaptures first):
//
//	y=2:  .  W  B  .
//	y=1:  W  B  .  B
//	y=0:  .  W  B  .
//	      x=0 1  2  3
//
// Black's lone stone at (1,1) has a single liberty at (2,1). White
// plays (2,1), capturing it. Black then tries to play (1,1) again,
// which would capture White's now-lone stone at (2,1) and recreate
// the exact position that existed before White's capturing move.
func TestKoRejected(t *testing.T) {
	g := NewGameData(9)

	mustPlay(t, &g, 1, 1) // B: the stone that will be captured
	mustPlay(t, &g, 1, 0) // W
	mustPlay(t, &g, 2, 2) // B
	mustPlay(t, &g, 0, 1) // W
	mustPlay(t, &g, 3, 1) // B
	mustPlay(t, &g, 1, 2) // W: black(1,1) is down to one liberty, at (2,1)
	mustPlay(t, &g, 2, 0) // B

	mustPlay(t, &g, 2, 1) // W: captures black's lone stone at (1,1)
	if g.Board.Stone(1, 1) != Empty {
		t.Fatal("setup broken: white's capturing move did not remove the black stone")
	}

	if g.TryMove(1, 1) {
		t.Fatal("immediate recapture recreating the prior position must be rejected by the ko rule")
	}
	if g.Board.Stone(2, 1) != White {
		t.Fatal("rejected ko move must leave white's recapturable stone in place")
	}
}

func TestPassPassEndsGameWithKomi(t *testing.T) {
	g := NewGameData(9)

	mustPlay(t, &g, Pass.X, Pass.Y) // B pass
	mustPlay(t, &g, Pass.X, Pass.Y) // W pass

	if !g.Over() {
		t.Fatal("two consecutive passes must end the game")
	}
	winner, black, white := g.Winner()
	if winner != White {
		t.Fatalf("got winner %s, want White (empty board, komi only)", winner)
	}
	if black != 0 {
		t.Fatalf("got black points %v, want 0", black)
	}
	if white != 3.5 {
		t.Fatalf("got white points %v, want 3.5 komi for a 9x9 board", white)
	}
}

func TestResignEndsGameImmediately(t *testing.T) {
	g := NewGameData(9)

	mustPlay(t, &g, Resign.X, Resign.Y) // B resigns on the first move

	if !g.Over() {
		t.Fatal("a resignation must end the game")
	}
	winner, _, _ := g.Winner()
	if winner != White {
		t.Fatalf("got winner %s, want White when Black resigns", winner)
	}
}

// TestUndoRedoRoundTrip plays a set of mutually non-adjacent stones
// (so no move captures or is blocked by ko), undoes them all, and
// replays them with Redo, checking the board matches at each end.
func TestUndoRedoRoundTrip(t *testing.T) {
	g := NewGameData(9)

	var cells [][2]int
	for _, x := range []int{0, 2} {
		for _, y := range []int{0, 2, 4, 6, 8} {
			cells = append(cells, [2]int{x, y})
		}
	}
	for _, c := range cells {
		mustPlay(t, &g, c[0], c[1])
	}

	var played Board
	played = g.Board

	g.UndoN(len(cells))
	if g.Log.MoveCount() != 0 {
		t.Fatalf("got move count %d after undoing everything, want 0", g.Log.MoveCount())
	}
	for _, c := range cells {
		if g.Board.Stone(c[0], c[1]) != Empty {
			t.Fatalf("cell (%d,%d) still occupied after undoing every move", c[0], c[1])
		}
	}

	g.RedoN(len(cells))
	if g.Log.MoveCount() != len(cells) {
		t.Fatalf("got move count %d after redoing everything, want %d", g.Log.MoveCount(), len(cells))
	}
	if !g.Board.presenceEqual(&played) {
		t.Fatal("board after full redo does not match the board before undo")
	}
}
