// Room Registry
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

// Package registry holds the server's two slotted, mutex-guarded
// tables: rooms and connected clients. Both reserve index 0 as a
// permanently-invalid sentinel so a zero id is always falsy.
package registry

import (
	"sync"

	"goban"
)

// Room is a server-side game session with up to two participants and
// one rules engine. PlayerA/PlayerB are client-table indices; 0 means
// vacant. A Room is occupied once PlayerA is set, and torn down by
// zeroing the slot, so the zero value is exactly "vacant".
type Room struct {
	Game    goban.GameData
	PlayerA uint32
	PlayerB uint32
	Name    string
}

// Occupied reports whether the slot holds a live room.
func (r *Room) Occupied() bool { return r.PlayerA != 0 }

// Full reports whether both seats are taken.
func (r *Room) Full() bool { return r.PlayerA != 0 && r.PlayerB != 0 }

// RoomTable is a growable table of Rooms guarded by a single mutex.
// Callers lock it for the whole of a structural change or a logical
// edit to a Room (see the server package's session worker); Slot
// gives direct access to a room under that lock.
type RoomTable struct {
	mu    sync.Mutex
	slots []Room
}

// NewRoomTable returns a table with only its reserved sentinel slot.
func NewRoomTable() *RoomTable {
	return &RoomTable{slots: make([]Room, 1)}
}

func (t *RoomTable) Lock()   { t.mu.Lock() }
func (t *RoomTable) Unlock() { t.mu.Unlock() }

// Len is the number of allocated slots, including the reserved index
// 0 and any vacant slots below the high-water mark.
func (t *RoomTable) Len() int { return len(t.slots) }

// InRange reports whether id names an allocated, non-sentinel slot.
func (t *RoomTable) InRange(id int32) bool {
	return id >= 1 && int(id) < len(t.slots)
}

// Slot returns a pointer to the room at id. The caller must hold the
// table lock for as long as the pointer is used.
func (t *RoomTable) Slot(id int32) *Room { return &t.slots[id] }

// Alloc reserves the first vacant slot, or grows the table by one,
// and installs a fresh Room there. The caller must hold the table
// lock.
func (t *RoomTable) Alloc(playerA uint32, size int, name string) int32 {
	room := Room{Game: goban.NewGameData(size), PlayerA: playerA, Name: name}
	for i := 1; i < len(t.slots); i++ {
		if !t.slots[i].Occupied() {
			t.slots[i] = room
			return int32(i)
		}
	}
	t.slots = append(t.slots, room)
	return int32(len(t.slots) - 1)
}

// Free zeroes the slot at id, returning it to the pool the next
// Alloc scan will find. The caller must hold the table lock.
func (t *RoomTable) Free(id int32) {
	t.slots[id] = Room{}
}

// Each calls fn for every occupied, non-sentinel slot in ascending
// index order. The caller must hold the table lock for the duration.
func (t *RoomTable) Each(fn func(id int32, r *Room)) {
	for i := 1; i < len(t.slots); i++ {
		if t.slots[i].Occupied() {
			fn(int32(i), &t.slots[i])
		}
	}
}
