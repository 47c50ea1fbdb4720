// Configuration Specification
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

// Package conf loads goban's configuration from an optional TOML
// file merged over documented defaults, with flag overrides, and
// owns the server's process lifecycle (Manager registration, start,
// graceful shutdown).
package conf

import (
	"context"
	"flag"
	"io"
	"log"
	"time"

	"goban"
)

// Internal representation of the on-disk TOML file.
type conf struct {
	Debug  bool `toml:"debug"`
	Server struct {
		Host        string `toml:"host"`
		Port        uint   `toml:"port"`
		IdleTimeout uint   `toml:"idle_timeout"`
	} `toml:"server"`
	Board struct {
		Default int `toml:"default_size"`
		Min     int `toml:"min_size"`
		Max     int `toml:"max_size"`
	} `toml:"board"`
}

// Conf is the public configuration object threaded through every
// server-side component, in place of scattered fmt.Println/log.Print
// call sites.
type Conf struct {
	Log   *log.Logger
	Debug *log.Logger
	Ctx   context.Context
	Kill  context.CancelFunc

	// Network configuration
	Host        string        // interface to listen on; "" means all
	TCPPort     uint          // port for accepting connections
	IdleTimeout time.Duration // 0 disables idle-read timeouts

	// Board configuration
	DefaultBoardSize int
	MinBoardSize     int
	MaxBoardSize     int

	man []Manager // registered service managers
	run bool
}

// defaultConfig is the configuration object used when no file is
// present on disk.
var defaultConfig = Conf{
	Log:   log.Default(),
	Debug: log.New(io.Discard, "[debug] ", log.Ltime|log.Lshortfile|log.Lmicroseconds),

	Host:        "",
	TCPPort:     1234,
	IdleTimeout: 0,

	DefaultBoardSize: 9,
	MinBoardSize:     goban.MinBoardSize,
	MaxBoardSize:     goban.MaxBoardSize,
}

func init() {
	flag.StringVar(&defaultConfig.Host, "host", defaultConfig.Host,
		"Interface to listen on")
	flag.UintVar(&defaultConfig.TCPPort, "port", defaultConfig.TCPPort,
		"Port to use for TCP connections")
	flag.IntVar(&defaultConfig.DefaultBoardSize, "board-size", defaultConfig.DefaultBoardSize,
		"Default board size stored in the configuration (new_room always uses the size in its request)")
	flag.BoolVar(&debug, "debug", debug, "Enable debug output")
	flag.BoolVar(&dump, "dump-config", dump, "Dump configuration to standard output")
	flag.StringVar(&cfile, "conf", cfile, "Path to configuration file")
}
