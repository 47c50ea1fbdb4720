// Core Domain Types
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

// Stone is the occupant of a board cell.
type Stone uint8

const (
	Empty Stone = iota
	Black
	White
)

// Opposite returns the other color. Empty has no opposite and panics.
func (s Stone) Opposite() Stone {
	switch s {
	case Black:
		return White
	case White:
		return Black
	default:
		panic("goban: no opposite for empty stone")
	}
}

func (s Stone) String() string {
	switch s {
	case Empty:
		return "Empty"
	case Black:
		return "Black"
	case White:
		return "White"
	default:
		panic(fmt.Sprintf("goban: illegal stone %d", uint8(s)))
	}
}

// Pos is a board coordinate. Two sentinel values encode terminal
// moves rather than board placements.
type Pos struct {
	X, Y int
}

// Pass and Resign are sentinel positions accepted by GameData.TryMove.
var (
	Pass   = Pos{X: -1, Y: 0}
	Resign = Pos{X: -2, Y: 0}
)

func (p Pos) IsPass() bool   { return p.X == -1 }
func (p Pos) IsResign() bool { return p.X == -2 }
func (p Pos) IsSentinel() bool {
	return p.IsPass() || p.IsResign()
}

func (p Pos) String() string {
	switch {
	case p.IsPass():
		return "pass"
	case p.IsResign():
		return "resign"
	default:
		return fmt.Sprintf("(%d,%d)", p.X, p.Y)
	}
}

// posWireBytes is the encoded byte length of a Pos on the wire: two
// signed bytes, wide enough for both board coordinates (0..18) and
// the pass/resign sentinels (-1, -2).
const posWireBytes = 2

func (p Pos) putWire(buf []byte) {
	buf[0] = byte(int8(p.X))
	buf[1] = byte(int8(p.Y))
}

func posFromWire(buf []byte) Pos {
	return Pos{X: int(int8(buf[0])), Y: int(int8(buf[1]))}
}

// MaxBoardSize is the largest side length a Board can hold; storage
// is fixed at this capacity regardless of the size requested by
// MakeBoard.
const MaxBoardSize = 19

// MinBoardSize is the smallest side length MakeBoard accepts.
const MinBoardSize = 2
