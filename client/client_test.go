// Reference Client Tests
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

package client

import (
	"net"
	"testing"
	"time"

	"goban/proto"
)

// TestNewRoomRoundTrip dials a bare-bones stub server that echoes a
// fixed new_room_result, and checks the event arrives on Events.
func TestNewRoomRoundTrip(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		c := proto.NewConnection(conn)
		req, err := c.ReadRequest()
		if err != nil || req.Kind != proto.ReqNewRoom {
			return
		}
		c.WriteResponse(proto.Response{Kind: proto.RespNewRoomResult, RoomID: 7})
	}()

	cli, err := Dial(ln.Addr().String())
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer cli.Close()

	if err := cli.NewRoom(9, "dojo"); err != nil {
		t.Fatalf("NewRoom: %v", err)
	}

	select {
	case resp := <-cli.Events:
		if resp.Kind != proto.RespNewRoomResult || resp.RoomID != 7 {
			t.Fatalf("got %+v", resp)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for new_room_result")
	}
}
