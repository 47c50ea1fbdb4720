// Client Registry Tests
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
	"net"
	"testing"

	"goban/proto"
)

func TestClientTableAllocAndFree(t *testing.T) {
	a, b := net.Pipe()
	defer a.Close()
	defer b.Close()

	tb := NewClientTable()

	tb.Lock()
	id := tb.Alloc(proto.NewConnection(a))
	tb.Unlock()

	if id != 1 {
		t.Fatalf("got id %d, want 1", id)
	}

	tb.Lock()
	if !tb.Slot(id).Occupied() {
		t.Fatal("allocated slot must be occupied")
	}
	tb.Free(id)
	if tb.Slot(id).Occupied() {
		t.Fatal("freed slot must not be occupied")
	}
	reused := tb.Alloc(proto.NewConnection(b))
	tb.Unlock()

	if reused != id {
		t.Fatalf("got id %d for reused slot, want %d", reused, id)
	}
}
