// Board Implementation
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

// bitWords covers MaxBoardSize*MaxBoardSize (361) bits, rounded up to
// a whole number of 64-bit words (384 bits / 48 bytes), matching the
// wire capacity required by the protocol.
const bitWords = (MaxBoardSize*MaxBoardSize + 63) / 64

// bitset is a fixed-capacity bit array sized for the largest board.
// It is a value type so that flood-fill calls can carry their own
// scratch visited-set on the stack instead of allocating.
type bitset [bitWords]uint64

func (b *bitset) get(i int) bool {
	return b[i/64]&(1<<uint(i%64)) != 0
}

func (b *bitset) set(i int) {
	b[i/64] |= 1 << uint(i%64)
}

func (b *bitset) clear(i int) {
	b[i/64] &^= 1 << uint(i%64)
}

func (b *bitset) equal(o *bitset) bool {
	return *b == *o
}

// Board is a bit-packed N x N grid of Stone. Storage capacity is
// fixed at MaxBoardSize regardless of the board's actual Size, so
// Board never allocates after construction.
type Board struct {
	size    int
	present bitset // is a stone placed here?
	color   bitset // meaningful only where present is set; 1 = White
}

// MakeBoard returns an empty board of the given side length.
// size must be within [MinBoardSize, MaxBoardSize].
func MakeBoard(size int) Board {
	if size < MinBoardSize || size > MaxBoardSize {
		panic(fmt.Sprintf("goban: illegal board size %d", size))
	}
	return Board{size: size}
}

// Size returns the board's side length.
func (b *Board) Size() int { return b.size }

func (b *Board) inRange(x, y int) bool {
	return x >= 0 && x < b.size && y >= 0 && y < b.size
}

func (b *Board) index(x, y int) int {
	return y*MaxBoardSize + x
}

// Stone reads the cell at (x, y). Out-of-range reads return Empty.
func (b *Board) Stone(x, y int) Stone {
	if !b.inRange(x, y) {
		return Empty
	}
	i := b.index(x, y)
	if !b.present.get(i) {
		return Empty
	}
	if b.color.get(i) {
		return White
	}
	return Black
}

// Set writes the cell at (x, y). Writing Empty clears both bits.
// Out-of-range writes are ignored.
func (b *Board) Set(x, y int, s Stone) {
	if !b.inRange(x, y) {
		return
	}
	i := b.index(x, y)
	switch s {
	case Empty:
		b.present.clear(i)
		b.color.clear(i)
	case Black:
		b.present.set(i)
		b.color.clear(i)
	case White:
		b.present.set(i)
		b.color.set(i)
	default:
		panic(fmt.Sprintf("goban: illegal stone %d", uint8(s)))
	}
}

var neighborDeltas = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// GroupOf flood-fills the maximal 4-connected group of same-colored
// stones containing (x, y). It returns nil if the seed is empty or
// out of range.
func (b *Board) GroupOf(x, y int) []Pos {
	seed := b.Stone(x, y)
	if seed == Empty {
		return nil
	}

	var visited bitset
	queue := make([]Pos, 0, b.size*b.size)
	queue = append(queue, Pos{x, y})
	visited.set(b.index(x, y))

	group := make([]Pos, 0, 8)
	for head := 0; head < len(queue); head++ {
		p := queue[head]
		group = append(group, p)
		for _, d := range neighborDeltas {
			nx, ny := p.X+d[0], p.Y+d[1]
			if !b.inRange(nx, ny) {
				continue
			}
			ni := b.index(nx, ny)
			if visited.get(ni) {
				continue
			}
			if b.Stone(nx, ny) != seed {
				continue
			}
			visited.set(ni)
			queue = append(queue, Pos{nx, ny})
		}
	}
	return group
}

// Liberties counts the distinct empty cells 4-adjacent to any member
// of group. A cell bordered by multiple group members is counted
// once.
func (b *Board) Liberties(group []Pos) int {
	var seen bitset
	count := 0
	for _, p := range group {
		for _, d := range neighborDeltas {
			nx, ny := p.X+d[0], p.Y+d[1]
			if !b.inRange(nx, ny) {
				continue
			}
			if b.Stone(nx, ny) != Empty {
				continue
			}
			ni := b.index(nx, ny)
			if seen.get(ni) {
				continue
			}
			seen.set(ni)
			count++
		}
	}
	return count
}

// CountRegion flood-fills the empty region containing (x, y) over
// 4-neighbors, tracking which non-empty colors border it. If the
// region borders exactly one color, that color's running point total
// (black or white, whichever applies) is increased by the region's
// size. visited is updated in place for every cell visited, so that
// a caller scoring a whole board only visits each cell once across
// repeated calls.
func (b *Board) CountRegion(x, y int, visited *bitset, black, white *int) {
	if b.Stone(x, y) != Empty {
		return
	}
	start := b.index(x, y)
	if visited.get(start) {
		return
	}

	var sawBlack, sawWhite bool
	size := 0
	queue := make([]Pos, 0, b.size*b.size)
	queue = append(queue, Pos{x, y})
	visited.set(start)

	for head := 0; head < len(queue); head++ {
		p := queue[head]
		size++
		for _, d := range neighborDeltas {
			nx, ny := p.X+d[0], p.Y+d[1]
			if !b.inRange(nx, ny) {
				continue
			}
			switch b.Stone(nx, ny) {
			case Black:
				sawBlack = true
			case White:
				sawWhite = true
			case Empty:
				ni := b.index(nx, ny)
				if !visited.get(ni) {
					visited.set(ni)
					queue = append(queue, Pos{nx, ny})
				}
			}
		}
	}

	switch {
	case sawBlack && !sawWhite:
		*black += size
	case sawWhite && !sawBlack:
		*white += size
	}
}

// presenceEqual reports whether two boards have stones in exactly
// the same cells, ignoring color. This is the narrow comparison the
// ko rule relies on (see GameData.TryMove).
func (b *Board) presenceEqual(o *Board) bool {
	return b.present.equal(&o.present)
}

// WireBoardBytes is the fixed encoded length of a Board on the wire:
// the two bitmaps at full MaxBoardSize capacity plus a little-endian
// size field, per the wire layout pinned in SPEC_FULL.md.
const WireBoardBytes = bitWords*8*2 + 4

// MarshalBinary encodes the board as fixed-width little-endian
// fields: the present bitmap, the color bitmap, then size.
func (b *Board) MarshalBinary() ([]byte, error) {
	buf := make([]byte, WireBoardBytes)
	putBitset(buf, &b.present)
	putBitset(buf[bitWords*8:], &b.color)
	binary.LittleEndian.PutUint32(buf[bitWords*8*2:], uint32(b.size))
	return buf, nil
}

// UnmarshalBinary decodes a Board encoded by MarshalBinary.
func (b *Board) UnmarshalBinary(data []byte) error {
	if len(data) != WireBoardBytes {
		return fmt.Errorf("goban: Board wire record is %d bytes, want %d", len(data), WireBoardBytes)
	}
	getBitset(data, &b.present)
	getBitset(data[bitWords*8:], &b.color)
	b.size = int(binary.LittleEndian.Uint32(data[bitWords*8*2:]))
	return nil
}

func putBitset(buf []byte, s *bitset) {
	for i, w := range s {
		binary.LittleEndian.PutUint64(buf[i*8:], w)
	}
}

func getBitset(buf []byte, s *bitset) {
	for i := range s {
		s[i] = binary.LittleEndian.Uint64(buf[i*8:])
	}
}

func (b *Board) String() string {
	buf := make([]byte, 0, (b.size+1)*b.size)
	for y := b.size - 1; y >= 0; y-- {
		for x := 0; x < b.size; x++ {
			switch b.Stone(x, y) {
			case Empty:
				buf = append(buf, '.')
			case Black:
				buf = append(buf, 'B')
			case White:
				buf = append(buf, 'W')
			}
		}
		buf = append(buf, '\n')
	}
	return string(buf)
}
