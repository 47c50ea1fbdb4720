// Session Worker
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

// Package server implements the session worker: one goroutine per
// connection, decoding requests, mutating rooms under the registry
// lock, and emitting responses to the two players.
package server

import (
	"time"

	"goban"
	"goban/proto"
	"goban/registry"
)

// worker owns one connection end to end: it runs entirely on its own
// goroutine and is the only reader of its Connection.
func (s *Server) worker(id uint32, conn *proto.Connection) {
	defer s.teardown(id, conn)

	for {
		if s.conf.IdleTimeout > 0 {
			conn.Conn.SetReadDeadline(time.Now().Add(s.conf.IdleTimeout))
		}

		req, err := conn.ReadRequest()
		if err != nil {
			s.conf.Debug.Printf("client %d: %v", id, err)
			return
		}

		switch req.Kind {
		case proto.ReqNewRoom:
			s.handleNewRoom(id, req)
		case proto.ReqJoinRoom:
			s.handleJoinRoom(id, req)
		case proto.ReqLeaveRoom:
			s.leaveRoom(id)
		case proto.ReqMakeMove:
			s.handleMakeMove(id, req)
		case proto.ReqListRooms:
			s.handleListRooms(id)
		case proto.ReqExit, proto.ReqNone:
			return
		default:
			s.conf.Debug.Printf("client %d: unknown request kind %s", id, req.Kind)
			return
		}
	}
}

// teardown runs on every path out of worker: it leaves the active
// room (notifying the peer), frees the client slot, and closes the
// socket.
func (s *Server) teardown(id uint32, conn *proto.Connection) {
	s.leaveRoom(id)

	s.clients.Lock()
	s.clients.Free(id)
	s.clients.Unlock()

	conn.Close()
	s.conf.Debug.Printf("client %d disconnected", id)
}

func (s *Server) activeRoom(id uint32) int32 {
	s.clients.Lock()
	defer s.clients.Unlock()
	return s.clients.Slot(id).ActiveRoomID
}

func (s *Server) handleNewRoom(id uint32, req proto.Request) {
	if s.activeRoom(id) != 0 ||
		req.BoardSize < int32(s.conf.MinBoardSize) ||
		req.BoardSize > int32(s.conf.MaxBoardSize) {
		s.send(id, proto.Response{Kind: proto.RespNewRoomResult, RoomID: 0})
		return
	}

	s.rooms.Lock()
	roomID := s.rooms.Alloc(id, int(req.BoardSize), req.Name)
	s.rooms.Unlock()

	s.clients.Lock()
	s.clients.Slot(id).ActiveRoomID = roomID
	s.clients.Unlock()

	s.conf.Debug.Printf("client %d created room %d (size %d)", id, roomID, req.BoardSize)
	s.send(id, proto.Response{Kind: proto.RespNewRoomResult, RoomID: roomID})
}

func (s *Server) handleJoinRoom(id uint32, req proto.Request) {
	if s.activeRoom(id) != 0 {
		s.send(id, proto.Response{Kind: proto.RespJoinResult, Success: false})
		return
	}

	s.rooms.Lock()
	if !s.rooms.InRange(req.RoomID) {
		s.rooms.Unlock()
		s.send(id, proto.Response{Kind: proto.RespJoinResult, Success: false})
		return
	}
	room := s.rooms.Slot(req.RoomID)
	if !room.Occupied() || room.Full() {
		s.rooms.Unlock()
		s.send(id, proto.Response{Kind: proto.RespJoinResult, Success: false})
		return
	}
	room.PlayerB = id
	playerA := room.PlayerA
	s.rooms.Unlock()

	s.clients.Lock()
	s.clients.Slot(id).ActiveRoomID = req.RoomID
	s.clients.Unlock()

	s.conf.Debug.Printf("client %d joined room %d", id, req.RoomID)
	s.send(id, proto.Response{Kind: proto.RespJoinResult, Success: true})
	s.send(playerA, proto.Response{Kind: proto.RespPlayerJoined})
}

func (s *Server) leaveRoom(id uint32) {
	s.clients.Lock()
	roomID := s.clients.Slot(id).ActiveRoomID
	s.clients.Slot(id).ActiveRoomID = 0
	s.clients.Unlock()

	if roomID == 0 {
		return
	}

	s.rooms.Lock()
	room := s.rooms.Slot(roomID)
	var peer uint32
	switch id {
	case room.PlayerA:
		peer = room.PlayerB
	case room.PlayerB:
		peer = room.PlayerA
	}
	s.rooms.Free(roomID)
	s.rooms.Unlock()

	if peer == 0 {
		return
	}

	s.clients.Lock()
	s.clients.Slot(peer).ActiveRoomID = 0
	s.clients.Unlock()

	s.send(peer, proto.Response{Kind: proto.RespExit})
}

func (s *Server) handleMakeMove(id uint32, req proto.Request) {
	roomID := s.activeRoom(id)
	if roomID == 0 {
		return
	}

	s.rooms.Lock()
	room := s.rooms.Slot(roomID)
	if room.Game.Board.Size() == 0 {
		// The opponent has already torn the room down; drop the
		// stray move and let the client catch up via leave_room.
		s.rooms.Unlock()
		return
	}

	ok := room.Game.TryMove(req.Move.X, req.Move.Y)
	var peer uint32
	var snapshot goban.GameData
	if ok {
		if id == room.PlayerA {
			peer = room.PlayerB
		} else {
			peer = room.PlayerA
		}
	} else {
		snapshot = room.Game
	}
	s.rooms.Unlock()

	if ok {
		s.conf.Debug.Printf("client %d played %s in room %d", id, req.Move, roomID)
		s.send(peer, proto.Response{Kind: proto.RespNewMove, RoomID: roomID, Move: req.Move})
		return
	}

	s.conf.Debug.Printf("client %d: illegal move %s in room %d", id, req.Move, roomID)
	s.send(id, proto.Response{Kind: proto.RespIllegalMove, Snapshot: &snapshot})
}

// handleListRooms holds the registry lock for the entire traversal
// and the response write, per the joint registry-then-connection
// lock ordering.
func (s *Server) handleListRooms(id uint32) {
	s.clients.Lock()
	conn := s.clients.Slot(id).Conn
	s.clients.Unlock()
	if conn == nil {
		return
	}

	s.rooms.Lock()
	var listing []proto.RoomListing
	s.rooms.Each(func(rid int32, r *registry.Room) {
		listing = append(listing, proto.RoomListing{
			RoomID:  rid,
			Name:    r.Name,
			CanJoin: !r.Full(),
			Board:   r.Game.Board,
		})
	})
	err := conn.WriteResponse(proto.Response{Kind: proto.RespListRooms, Rooms: listing})
	s.rooms.Unlock()

	if err != nil {
		s.conf.Debug.Printf("client %d: %v", id, err)
	}
}

// send looks up id's connection under the client registry lock and
// writes resp to it. A zero id (no peer, e.g. an empty room) is a
// silent no-op.
func (s *Server) send(id uint32, resp proto.Response) {
	if id == 0 {
		return
	}

	s.clients.Lock()
	conn := s.clients.Slot(id).Conn
	s.clients.Unlock()
	if conn == nil {
		return
	}

	if err := conn.WriteResponse(resp); err != nil {
		s.conf.Debug.Printf("client %d: %v", id, err)
	}
}
