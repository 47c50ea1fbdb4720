// Configuration Loading and Dumping
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
	"context"
	"io"
	"log"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

const defconf = "goban.toml"

var (
	debug bool   = false
	dump  bool   = false
	cfile string = defconf
)

// load parses a TOML document from r and overlays it onto
// defaultConfig.
func load(r io.Reader) (*Conf, error) {
	var data conf
	if _, err := toml.NewDecoder(r).Decode(&data); err != nil {
		return nil, err
	}

	c := defaultConfig
	if data.Server.Host != "" {
		c.Host = data.Server.Host
	}
	if data.Server.Port != 0 {
		c.TCPPort = data.Server.Port
	}
	c.IdleTimeout = time.Duration(data.Server.IdleTimeout) * time.Millisecond
	if data.Board.Default != 0 {
		c.DefaultBoardSize = data.Board.Default
	}
	if data.Board.Min != 0 {
		c.MinBoardSize = data.Board.Min
	}
	if data.Board.Max != 0 {
		c.MaxBoardSize = data.Board.Max
	}

	return &c, nil
}

// Open reads and parses the TOML file at path. Flag values already
// collected from the command line serve as the defaults the file is
// merged over, so a field set in the file takes precedence over its
// flag.
func Open(path string) (*Conf, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	c, err := load(file)
	if err != nil {
		return nil, err
	}
	return finish(c), nil
}

// Default returns the built-in configuration, with flag overrides
// applied.
func Default() *Conf {
	c := defaultConfig
	return finish(&c)
}

func finish(c *Conf) *Conf {
	if debug {
		c.Debug.SetOutput(os.Stderr)
	}
	c.Ctx, c.Kill = context.WithCancel(context.Background())
	return c
}

// Load opens the configured file (-conf, default "goban.toml"),
// falling back to Default if it does not exist, and handles
// -dump-config.
func Load() *Conf {
	c, err := Open(cfile)
	if err != nil {
		if !os.IsNotExist(err) || cfile != defconf {
			log.Fatal(err)
		}
		c = Default()
	}

	if dump {
		if err := c.Dump(os.Stdout); err != nil {
			log.Fatalln("failed to dump configuration:", err)
		}
		os.Exit(0)
	}

	return c
}

// Dump serializes c back into TOML form.
func (c *Conf) Dump(w io.Writer) error {
	var data conf
	data.Debug = debug
	data.Server.Host = c.Host
	data.Server.Port = c.TCPPort
	data.Server.IdleTimeout = uint(c.IdleTimeout / time.Millisecond)
	data.Board.Default = c.DefaultBoardSize
	data.Board.Min = c.MinBoardSize
	data.Board.Max = c.MaxBoardSize

	return toml.NewEncoder(w).Encode(data)
}
