// Rules Engine
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

import "fmt"

// GameData composes a Board with a MoveLog and is the single
// authority over legality. Every rejected call leaves GameData
// bit-identical to its state before the call.
type GameData struct {
	Board Board
	Log   MoveLog
}

// NewGameData returns a fresh game on an empty board of the given
// size.
func NewGameData(size int) GameData {
	return GameData{Board: MakeBoard(size)}
}

// ActivePlayer is Black when an even number of moves have been
// played, White otherwise.
func (g *GameData) ActivePlayer() Stone {
	if g.Log.MoveCount()%2 == 0 {
		return Black
	}
	return White
}

// TryMove attempts to play (x, y) for the active player. It returns
// false, leaving g unchanged, if the move is illegal.
func (g *GameData) TryMove(x, y int) bool {
	p := Pos{X: x, Y: y}

	if p.IsSentinel() {
		g.Log.RegisterMove(p)
		return true
	}

	if !g.Board.inRange(x, y) {
		return false
	}
	if g.Board.Stone(x, y) != Empty {
		return false
	}

	active := g.ActivePlayer()
	opponent := active.Opposite()

	// Snapshot for restoring on rejection.
	before := g.Board

	g.Board.Set(x, y, active)

	var removed []Pos
	var removedSeen bitset
	for _, d := range neighborDeltas {
		nx, ny := x+d[0], y+d[1]
		if !g.Board.inRange(nx, ny) {
			continue
		}
		if g.Board.Stone(nx, ny) != opponent {
			continue
		}
		group := g.Board.GroupOf(nx, ny)
		if g.Board.Liberties(group) == 0 {
			for _, s := range group {
				i := g.Board.index(s.X, s.Y)
				if !removedSeen.get(i) {
					removedSeen.set(i)
					removed = append(removed, s)
				}
			}
		}
	}

	playedGroup := g.Board.GroupOf(x, y)
	if g.Board.Liberties(playedGroup) == 0 && len(removed) == 0 {
		// Suicide: no capture rescues the played stone.
		g.Board = before
		return false
	}

	for _, s := range removed {
		g.Board.Set(s.X, s.Y, Empty)
	}

	// Simple-ko check: compare the resulting presence bitmap
	// against the presence bitmap that would exist after undoing
	// the previous move, computed from the position as it was
	// before this tentative move. This intentionally compares
	// presence only, not color, replicating a known narrow
	// reference behavior rather than silently tightening it.
	if g.wouldRepeatPreviousPosition(before) {
		g.Board = before
		return false
	}

	g.Log.RegisterMove(p)
	g.Log.RegisterCapture(removed)
	return true
}

// wouldRepeatPreviousPosition reports whether the current board
// (after a tentative move has been placed and its captures removed)
// has the same stone presence as the position one move before the
// last recorded move. preTentativeBoard is the board as it was
// immediately before the tentative move was placed.
func (g *GameData) wouldRepeatPreviousPosition(preTentativeBoard Board) bool {
	if g.Log.MoveCount() == 0 {
		return false
	}

	scratch := GameData{Board: preTentativeBoard, Log: g.Log}
	scratch.undoOne()
	return g.Board.presenceEqual(&scratch.Board)
}

// Pass plays the pass sentinel for the active player.
func (g *GameData) Pass() bool { return g.TryMove(Pass.X, Pass.Y) }

// Resign plays the resign sentinel for the active player.
func (g *GameData) Resign() bool { return g.TryMove(Resign.X, Resign.Y) }

// undoOne performs a single undo step, doing nothing if no moves have
// been applied. It is used both by Undo and by the ko
// scratch-comparison.
func (g *GameData) undoOne() {
	if g.Log.MoveCount() == 0 {
		return
	}

	idx := g.Log.MoveCount() - 1
	p := g.Log.MoveAt(idx)
	undoneColor := Black
	if idx%2 == 1 {
		undoneColor = White
	}

	g.Log.Pop()

	if p.IsSentinel() {
		return
	}

	g.Board.Set(p.X, p.Y, Empty)
	for _, s := range g.Log.CapturedFor(idx) {
		g.Board.Set(s.X, s.Y, undoneColor.Opposite())
	}
}

// Undo reverts the last applied move. It is a no-op if no moves have
// been applied.
func (g *GameData) Undo() { g.undoOne() }

// UndoN reverts up to n moves, stopping early if the log empties.
func (g *GameData) UndoN(n int) {
	for i := 0; i < n && g.Log.MoveCount() > 0; i++ {
		g.undoOne()
	}
}

// Redo reapplies the next move in the log's redo tail. It is a no-op
// if there is nothing to redo. The rules engine is deterministic, so
// replaying a previously-accepted move always succeeds.
func (g *GameData) Redo() {
	if g.Log.MoveCount() >= g.Log.LastValidMoveCount() {
		return
	}
	next := g.Log.MoveAt(g.Log.MoveCount())
	if !g.TryMove(next.X, next.Y) {
		panic("goban: redo of a previously legal move failed")
	}
}

// RedoN reapplies up to n moves, stopping early at the redo
// high-water mark.
func (g *GameData) RedoN(n int) {
	for i := 0; i < n && g.Log.MoveCount() < g.Log.LastValidMoveCount(); i++ {
		g.Redo()
	}
}

// Komi returns the compensation awarded to White for playing second.
func Komi(size int) float64 {
	if size <= 12 {
		return 3.5
	}
	return 6.5
}

// Over reports whether the game has reached a terminal state: the
// last recorded move was a resignation, or the last two moves were
// both passes.
func (g *GameData) Over() bool {
	n := g.Log.MoveCount()
	if n == 0 {
		return false
	}
	if g.Log.MoveAt(n - 1).IsResign() {
		return true
	}
	if n >= 2 && g.Log.MoveAt(n-1).IsPass() && g.Log.MoveAt(n-2).IsPass() {
		return true
	}
	return false
}

// Winner returns Empty if the game is not over; otherwise the winning
// color, with blackPoints and whitePoints set to the final score
// (0 in the resignation case, since no scoring traversal is needed).
func (g *GameData) Winner() (winner Stone, blackPoints, whitePoints float64) {
	n := g.Log.MoveCount()
	if !g.Over() {
		return Empty, 0, 0
	}

	if g.Log.MoveAt(n - 1).IsResign() {
		loser := Black
		if (n-1)%2 == 1 {
			loser = White
		}
		return loser.Opposite(), 0, 0
	}

	var visited bitset
	var black, white int
	for y := 0; y < g.Board.size; y++ {
		for x := 0; x < g.Board.size; x++ {
			g.Board.CountRegion(x, y, &visited, &black, &white)
		}
	}

	for i := 0; i < n; i++ {
		captures := g.Log.RemovedCountAt(i)
		if i%2 == 0 {
			black += captures
		} else {
			white += captures
		}
	}

	blackPoints = float64(black)
	whitePoints = float64(white) + Komi(g.Board.size)

	if blackPoints >= whitePoints {
		return Black, blackPoints, whitePoints
	}
	return White, blackPoints, whitePoints
}

// WireGameDataBytes is the fixed encoded length of a GameData on the
// wire: its Board followed by its MoveLog.
const WireGameDataBytes = WireBoardBytes + WireMoveLogBytes

// MarshalBinary encodes the game as its Board followed by its
// MoveLog, both fixed-width. Used for the illegal_move resync
// snapshot sent to a client whose request was rejected.
func (g *GameData) MarshalBinary() ([]byte, error) {
	buf := make([]byte, 0, WireGameDataBytes)

	board, err := g.Board.MarshalBinary()
	if err != nil {
		return nil, err
	}
	log, err := g.Log.MarshalBinary()
	if err != nil {
		return nil, err
	}

	buf = append(buf, board...)
	buf = append(buf, log...)
	return buf, nil
}

// UnmarshalBinary decodes a GameData encoded by MarshalBinary.
func (g *GameData) UnmarshalBinary(data []byte) error {
	if len(data) != WireGameDataBytes {
		return fmt.Errorf("goban: GameData wire record is %d bytes, want %d", len(data), WireGameDataBytes)
	}
	if err := g.Board.UnmarshalBinary(data[:WireBoardBytes]); err != nil {
		return err
	}
	return g.Log.UnmarshalBinary(data[WireBoardBytes:])
}
