// Room Registry Janitor Tests
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
	"testing"
	"time"

	"goban/conf"
)

// TestJanitorStopsOnShutdown checks that Start returns once Shutdown
// is called, rather than leaking the ticker goroutine.
func TestJanitorStopsOnShutdown(t *testing.T) {
	c := conf.Default()
	s := New(c)
	j := NewJanitor(s, c)

	done := make(chan struct{})
	go func() {
		j.Start()
		close(done)
	}()

	j.Shutdown()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Start did not return after Shutdown")
	}
}

func TestJanitorString(t *testing.T) {
	j := NewJanitor(New(conf.Default()), conf.Default())
	if j.String() == "" {
		t.Fatal("String() returned empty")
	}
}
