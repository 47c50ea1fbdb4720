// Entry Point
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

package main

import (
	"flag"

	"goban/conf"
	"goban/server"
)

func main() {
	flag.Parse()

	config := conf.Load()
	srv := server.New(config)
	config.Register(srv)
	config.Register(server.NewJanitor(srv, config))
	config.Start()
}
