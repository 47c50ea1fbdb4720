// Accept Loop
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

package server

import (
	"errors"
	"fmt"
	"net"

	"goban/conf"
	"goban/proto"
	"goban/registry"
)

// listenConfig sets SO_REUSEADDR on the listening socket before bind,
// so restarting the server does not fail while the previous process's
// connections are still draining TIME_WAIT.
var listenConfig = net.ListenConfig{Control: setReuseAddr}

// Server accepts TCP connections and runs one worker goroutine per
// connection against a shared pair of registry tables. It implements
// conf.Manager, so the process starts and stops it alongside any
// other registered service.
type Server struct {
	conf    *conf.Conf
	rooms   *registry.RoomTable
	clients *registry.ClientTable

	ln net.Listener
}

// New builds a Server bound to c. It does not listen until Start is
// called.
func New(c *conf.Conf) *Server {
	return &Server{
		conf:    c,
		rooms:   registry.NewRoomTable(),
		clients: registry.NewClientTable(),
	}
}

func (s *Server) String() string {
	return fmt.Sprintf("session server on %s:%d", s.conf.Host, s.conf.TCPPort)
}

// Rooms gives a Janitor access to the same room table this Server
// mutates from its worker goroutines.
func (s *Server) Rooms() *registry.RoomTable { return s.rooms }

// Start listens on the configured host and port and accepts
// connections until the listener is closed by Shutdown; any other
// accept error is fatal. It blocks the calling goroutine, matching
// conf.Manager's contract.
func (s *Server) Start() {
	addr := fmt.Sprintf("%s:%d", s.conf.Host, s.conf.TCPPort)
	ln, err := listenConfig.Listen(s.conf.Ctx, "tcp", addr)
	if err != nil {
		s.conf.Log.Fatalf("server: listen %s: %v", addr, err)
	}
	s.ln = ln
	s.conf.Debug.Printf("listening on %s", addr)

	for {
		conn, err := ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				s.conf.Debug.Printf("accept: %v", err)
				return
			}
			s.conf.Log.Fatalf("server: accept: %v", err)
		}

		c := proto.NewConnection(conn)
		s.clients.Lock()
		id := s.clients.Alloc(c)
		s.clients.Unlock()

		s.conf.Debug.Printf("client %d connected from %s", id, conn.RemoteAddr())
		go s.worker(id, c)
	}
}

// Shutdown closes the listener, which unblocks Accept in Start and
// lets it return.
func (s *Server) Shutdown() {
	if s.ln != nil {
		s.ln.Close()
	}
}
