// Connection Framing
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

package proto

import (
	"encoding/binary"
	"net"
	"sync"
)

// Connection pairs a socket with the mutex that serializes every
// write to it, so a multi-part emission (a list_rooms header plus
// its entries, an illegal_move plus its snapshot) reaches the peer as
// one atomic burst.
type Connection struct {
	Conn   net.Conn
	sendMu sync.Mutex
}

// NewConnection wraps an established socket.
func NewConnection(conn net.Conn) *Connection {
	return &Connection{Conn: conn}
}

// writeFramed acquires the send lock and writes a u32 little-endian
// length prefix followed by body, as one locked burst.
func (c *Connection) writeFramed(body []byte) error {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()

	var head [4]byte
	binary.LittleEndian.PutUint32(head[:], uint32(len(body)))
	if err := WriteExact(c.Conn, head[:]); err != nil {
		return err
	}
	return WriteExact(c.Conn, body)
}

// readFramed reads a u32 little-endian length prefix followed by
// that many bytes. Reads are never locked: exactly one worker reads a
// given Connection.
func readFramed(c *Connection) ([]byte, error) {
	head, err := ReadExact(c.Conn, 4)
	if err != nil {
		return nil, err
	}
	n := binary.LittleEndian.Uint32(head)
	return ReadExact(c.Conn, int(n))
}

// WriteRequest serializes and sends req under the send lock.
func (c *Connection) WriteRequest(req Request) error {
	return c.writeFramed(EncodeRequest(req))
}

// ReadRequest blocks until a complete framed Request is available.
func (c *Connection) ReadRequest() (Request, error) {
	body, err := readFramed(c)
	if err != nil {
		return Request{}, err
	}
	return DecodeRequest(body)
}

// WriteResponse serializes and sends resp, including any tail,
// under the send lock as a single burst.
func (c *Connection) WriteResponse(resp Response) error {
	body, err := EncodeResponse(resp)
	if err != nil {
		return err
	}
	return c.writeFramed(body)
}

// ReadResponse blocks until a complete framed Response is available.
func (c *Connection) ReadResponse() (Response, error) {
	body, err := readFramed(c)
	if err != nil {
		return Response{}, err
	}
	return DecodeResponse(body)
}

// Close closes the underlying socket.
func (c *Connection) Close() error {
	return c.Conn.Close()
}
