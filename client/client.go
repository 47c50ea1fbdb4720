// Reference Client
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

// Package client is a headless reference implementation of the wire
// protocol's client side: it dials a session server, decodes
// responses onto a channel, and lets a caller drive the session by
// writing requests. It does not render a board or read terminal
// input; cmd/goban-client supplies that loop.
package client

import (
	"fmt"
	"net"

	"goban"
	"goban/proto"
)

// Client owns one connection to a session server and demultiplexes
// responses onto Events for a caller to consume.
type Client struct {
	conn   *proto.Connection
	Events <-chan proto.Response
	errs   <-chan error
}

// Dial connects to addr (host:port) and starts the background
// receive loop.
func Dial(addr string) (*Client, error) {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, err
	}

	events := make(chan proto.Response)
	errs := make(chan error, 1)
	c := &Client{conn: proto.NewConnection(conn), Events: events, errs: errs}
	go c.recv(events, errs)
	return c, nil
}

// recv reads framed responses until the connection closes or a
// decode error occurs, in which case it reports the error and stops.
func (c *Client) recv(events chan<- proto.Response, errs chan<- error) {
	defer close(events)
	for {
		resp, err := c.conn.ReadResponse()
		if err != nil {
			errs <- err
			return
		}
		events <- resp
	}
}

// Err returns the error that ended the receive loop, if any has
// occurred yet. It does not block.
func (c *Client) Err() error {
	select {
	case err := <-c.errs:
		return err
	default:
		return nil
	}
}

// NewRoom asks the server to open a room of the given board size.
func (c *Client) NewRoom(size int, name string) error {
	return c.conn.WriteRequest(proto.Request{
		Kind:      proto.ReqNewRoom,
		BoardSize: int32(size),
		Name:      name,
	})
}

// JoinRoom asks the server to seat this client in room id.
func (c *Client) JoinRoom(id int32) error {
	return c.conn.WriteRequest(proto.Request{Kind: proto.ReqJoinRoom, RoomID: id})
}

// LeaveRoom asks the server to release this client's active room.
func (c *Client) LeaveRoom() error {
	return c.conn.WriteRequest(proto.Request{Kind: proto.ReqLeaveRoom})
}

// ListRooms asks the server for the current room listing.
func (c *Client) ListRooms() error {
	return c.conn.WriteRequest(proto.Request{Kind: proto.ReqListRooms})
}

// MakeMove plays pos in this client's active room.
func (c *Client) MakeMove(pos goban.Pos) error {
	return c.conn.WriteRequest(proto.Request{Kind: proto.ReqMakeMove, Move: pos})
}

// Close tells the server this client is leaving and closes the
// socket.
func (c *Client) Close() error {
	err := c.conn.WriteRequest(proto.Request{Kind: proto.ReqExit})
	if cerr := c.conn.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("client: close: %w", err)
	}
	return nil
}
