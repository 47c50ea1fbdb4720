// Room Registry Janitor
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
	"time"

	"goban/conf"
	"goban/registry"
)

// sweepInterval is how often the Janitor walks the room table.
const sweepInterval = 30 * time.Second

// Janitor periodically walks a RoomTable. Rooms are already freed the
// moment a player disconnects (see worker.leaveRoom), so under this
// server's purely in-memory model there is nothing to reap; the sweep
// is the extension point a persistence or matchmaking layer would
// hook to expire idle rooms or flush state, in the same place the
// teacher's tournament scheduler does its own periodic bookkeeping.
type Janitor struct {
	conf  *conf.Conf
	rooms *registry.RoomTable
	stop  chan struct{}
}

// NewJanitor builds a Janitor sweeping s's room table. It is a
// separate conf.Manager from s so the two can be registered,
// started, and shut down independently.
func NewJanitor(s *Server, c *conf.Conf) *Janitor {
	return &Janitor{conf: c, rooms: s.Rooms(), stop: make(chan struct{})}
}

func (j *Janitor) String() string { return "room registry janitor" }

// Start ticks every sweepInterval until Shutdown is called, matching
// conf.Manager's contract of blocking the calling goroutine.
func (j *Janitor) Start() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			j.sweep()
		case <-j.stop:
			return
		}
	}
}

func (j *Janitor) sweep() {
	j.rooms.Lock()
	defer j.rooms.Unlock()

	n := 0
	j.rooms.Each(func(int32, *registry.Room) { n++ })
	j.conf.Debug.Printf("room registry janitor: %d active room(s)", n)
}

// Shutdown stops the sweep loop.
func (j *Janitor) Shutdown() {
	close(j.stop)
}
