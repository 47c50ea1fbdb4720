// Move Log
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

import (
	"encoding/binary"
	"fmt"
)

// MaxMoves bounds MoveLog's move and capture arrays. Reaching this
// limit is an engineering invariant violation, not a user-facing
// error; real games are always far shorter.
const MaxMoves = 512

// MoveLog is an ordered, bounded record of moves played and the
// stones each move captured. It supports truncating append, undo
// (by decrementing moveCount) and redo (by re-incrementing up to
// lastValidMoveCount).
//
// Invariant: moveCount <= lastValidMoveCount. Appending a move that
// does not match the existing redo tail truncates the tail.
type MoveLog struct {
	moves              [MaxMoves]Pos
	removedCount       [MaxMoves]int
	removed            [MaxMoves]Pos
	moveCount          int
	lastValidMoveCount int
}

// MoveCount is the length of the currently-applied prefix.
func (l *MoveLog) MoveCount() int { return l.moveCount }

// LastValidMoveCount is the redo high-water mark.
func (l *MoveLog) LastValidMoveCount() int { return l.lastValidMoveCount }

// MoveAt returns the position recorded at index i (0-based).
func (l *MoveLog) MoveAt(i int) Pos { return l.moves[i] }

// RemovedCountAt returns the number of stones move i captured.
func (l *MoveLog) RemovedCountAt(i int) int { return l.removedCount[i] }

func (l *MoveLog) sumRemoved(upto int) int {
	total := 0
	for i := 0; i < upto; i++ {
		total += l.removedCount[i]
	}
	return total
}

// RegisterMove appends p at moveCount and increments it. If p is not
// a continuation of the existing redo tail, the tail is truncated
// (lastValidMoveCount resets to moveCount before the append);
// otherwise the tail, and any captures recorded for it, survive.
func (l *MoveLog) RegisterMove(p Pos) {
	if l.moveCount >= MaxMoves {
		panic("goban: move log capacity exceeded")
	}

	redoing := l.moveCount < l.lastValidMoveCount && l.moves[l.moveCount] == p
	if !redoing {
		l.lastValidMoveCount = l.moveCount
	}

	l.moves[l.moveCount] = p
	if !redoing {
		l.removedCount[l.moveCount] = 0
	}
	l.moveCount++

	if l.moveCount > l.lastValidMoveCount {
		l.lastValidMoveCount = l.moveCount
	}
}

// RegisterCapture records that the most recently appended move
// captured the given stones, appending them to the captured-stones
// sequence.
func (l *MoveLog) RegisterCapture(captured []Pos) {
	idx := l.moveCount - 1
	l.removedCount[idx] = len(captured)

	base := l.sumRemoved(idx)
	for i, p := range captured {
		l.removed[base+i] = p
	}
}

// CapturedFor returns the slice of stones captured by move index i.
func (l *MoveLog) CapturedFor(i int) []Pos {
	base := l.sumRemoved(i)
	n := l.removedCount[i]
	return l.removed[base : base+n]
}

// Pop decrements moveCount, conceptually undoing the last applied
// move. The caller is responsible for consuming the capture list and
// reverting the board; Pop only moves the cursor.
func (l *MoveLog) Pop() {
	if l.moveCount == 0 {
		return
	}
	l.moveCount--
}

// WireMoveLogBytes is the fixed encoded length of a MoveLog on the
// wire: three i16 cursors followed by the three fixed arrays of
// MaxMoves entries, per the wire layout pinned in SPEC_FULL.md.
const WireMoveLogBytes = 2 + 2 + 2 + MaxMoves*posWireBytes + MaxMoves*2 + MaxMoves*posWireBytes

// MarshalBinary encodes the move log as fixed-width little-endian
// fields: move_count, last_valid_move_count, removed_count_total,
// the moves array, the per-move removed-count array, and the
// concatenated removed-stones array.
func (l *MoveLog) MarshalBinary() ([]byte, error) {
	buf := make([]byte, WireMoveLogBytes)
	off := 0

	binary.LittleEndian.PutUint16(buf[off:], uint16(l.moveCount))
	off += 2
	binary.LittleEndian.PutUint16(buf[off:], uint16(l.lastValidMoveCount))
	off += 2
	binary.LittleEndian.PutUint16(buf[off:], uint16(l.sumRemoved(l.moveCount)))
	off += 2

	for _, p := range l.moves {
		p.putWire(buf[off:])
		off += posWireBytes
	}
	for _, n := range l.removedCount {
		binary.LittleEndian.PutUint16(buf[off:], uint16(n))
		off += 2
	}
	for _, p := range l.removed {
		p.putWire(buf[off:])
		off += posWireBytes
	}

	return buf, nil
}

// UnmarshalBinary decodes a MoveLog encoded by MarshalBinary.
func (l *MoveLog) UnmarshalBinary(data []byte) error {
	if len(data) != WireMoveLogBytes {
		return fmt.Errorf("goban: MoveLog wire record is %d bytes, want %d", len(data), WireMoveLogBytes)
	}
	off := 0

	l.moveCount = int(binary.LittleEndian.Uint16(data[off:]))
	off += 2
	l.lastValidMoveCount = int(binary.LittleEndian.Uint16(data[off:]))
	off += 2
	off += 2 // removed_count_total: derivable, not stored separately

	for i := range l.moves {
		l.moves[i] = posFromWire(data[off:])
		off += posWireBytes
	}
	for i := range l.removedCount {
		l.removedCount[i] = int(binary.LittleEndian.Uint16(data[off:]))
		off += 2
	}
	for i := range l.removed {
		l.removed[i] = posFromWire(data[off:])
		off += posWireBytes
	}

	return nil
}
