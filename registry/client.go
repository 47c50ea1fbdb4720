// Client Registry
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

package registry

import (
	"sync"

	"goban/proto"
)

// Client is one connected peer's registry entry: its connection and
// the room it currently occupies (0 = none). The rules engine and
// Room bookkeeping live in the RoomTable; this table exists only so
// a Room can refer to its participants by a stable, reusable index
// instead of storing connection pointers directly (spec.md §9's
// "cyclic opponent peer reference" guidance).
type Client struct {
	Conn         *proto.Connection
	ActiveRoomID int32
}

// Occupied reports whether the slot holds a live connection.
func (c *Client) Occupied() bool { return c.Conn != nil }

// ClientTable is a growable table of Clients guarded by a single
// mutex, with the same slot-0-reserved, reuse-on-free shape as
// RoomTable.
type ClientTable struct {
	mu    sync.Mutex
	slots []Client
}

// NewClientTable returns a table with only its reserved sentinel
// slot.
func NewClientTable() *ClientTable {
	return &ClientTable{slots: make([]Client, 1)}
}

func (t *ClientTable) Lock()   { t.mu.Lock() }
func (t *ClientTable) Unlock() { t.mu.Unlock() }

// Slot returns a pointer to the client at id. The caller must hold
// the table lock for as long as the pointer is used.
func (t *ClientTable) Slot(id uint32) *Client { return &t.slots[id] }

// Alloc reserves the first vacant slot, or grows the table by one,
// and installs conn there. The caller must hold the table lock.
func (t *ClientTable) Alloc(conn *proto.Connection) uint32 {
	for i := 1; i < len(t.slots); i++ {
		if !t.slots[i].Occupied() {
			t.slots[i] = Client{Conn: conn}
			return uint32(i)
		}
	}
	t.slots = append(t.slots, Client{Conn: conn})
	return uint32(len(t.slots) - 1)
}

// Free zeroes the slot at id. The caller must hold the table lock.
func (t *ClientTable) Free(id uint32) {
	t.slots[id] = Client{}
}
