// Configuration Tests
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

package conf

import (
	"bytes"
	"testing"
)

func TestDefaultHasSaneBoardBounds(t *testing.T) {
	c := Default()
	if c.MinBoardSize <= 0 || c.MaxBoardSize < c.MinBoardSize {
		t.Fatalf("got min=%d max=%d, want 0 < min <= max", c.MinBoardSize, c.MaxBoardSize)
	}
	if c.DefaultBoardSize < c.MinBoardSize || c.DefaultBoardSize > c.MaxBoardSize {
		t.Fatalf("default board size %d outside [%d, %d]", c.DefaultBoardSize, c.MinBoardSize, c.MaxBoardSize)
	}
}

func TestDumpLoadRoundTrip(t *testing.T) {
	c := Default()
	c.TCPPort = 9999
	c.DefaultBoardSize = 13

	var buf bytes.Buffer
	if err := c.Dump(&buf); err != nil {
		t.Fatalf("Dump: %v", err)
	}

	got, err := load(&buf)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.TCPPort != 9999 {
		t.Fatalf("got port %d, want 9999", got.TCPPort)
	}
	if got.DefaultBoardSize != 13 {
		t.Fatalf("got default board size %d, want 13", got.DefaultBoardSize)
	}
}
