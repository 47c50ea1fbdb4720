// Configuration Management
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
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"
)

// Manager is a background service the configuration starts and stops
// as part of the process lifecycle (the session server, the room
// registry janitor, ...).
type Manager interface {
	fmt.Stringer
	Start()
	Shutdown()
}

// Register adds m to the set of managers started by Start. Must be
// called before Start.
func (c *Conf) Register(m Manager) {
	if c.run {
		panic(fmt.Sprintf("conf: late register: %#v", m))
	}
	c.man = append(c.man, m)
}

// Start launches every registered manager inside an errgroup.Group
// bound to a context cancelled on SIGINT/SIGTERM, waits for that
// cancellation, then asks each manager to shut down in turn.
func (c *Conf) Start() {
	eg, _ := errgroup.WithContext(c.Ctx)

	sigCtx, stop := signal.NotifyContext(c.Ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	for _, m := range c.man {
		m := m
		c.Debug.Printf("starting %s", m)
		eg.Go(func() error {
			m.Start()
			return nil
		})
	}
	c.run = true

	<-sigCtx.Done()
	c.Debug.Println("shutting down")

	for _, m := range c.man {
		c.Debug.Printf("shutting %s down", m)
		m.Shutdown()
	}

	if err := eg.Wait(); err != nil {
		c.Log.Print(err)
	}
}
