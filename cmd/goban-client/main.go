// Headless Reference Client
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

// Command goban-client drives one session over the wire protocol
// from scripted stdin commands, printing every server event to
// stdout. It has no board rendering or terminal UI: it exists to
// exercise goban/client end to end in manual tests and scripts, not
// to be played with interactively.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"goban"
	"goban/client"
	"goban/proto"
)

func main() {
	addr := flag.String("addr", "localhost:1234", "Session server address")
	flag.Parse()

	cli, err := client.Dial(*addr)
	if err != nil {
		fmt.Fprintln(os.Stderr, "goban-client: dial:", err)
		os.Exit(1)
	}
	defer cli.Close()

	go printEvents(cli)

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		if err := dispatch(cli, scanner.Text()); err != nil {
			fmt.Fprintln(os.Stderr, "goban-client:", err)
		}
	}

	if err := cli.Err(); err != nil {
		fmt.Fprintln(os.Stderr, "goban-client: connection closed:", err)
	}
}

// dispatch interprets one line of scripted input. Supported commands:
//
//	new_room SIZE [NAME]
//	join_room ID
//	leave_room
//	list_rooms
//	move X Y
//	pass
//	resign
func dispatch(cli *client.Client, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	switch fields[0] {
	case "new_room":
		if len(fields) < 2 {
			return fmt.Errorf("new_room requires a board size")
		}
		size, err := strconv.Atoi(fields[1])
		if err != nil {
			return err
		}
		name := ""
		if len(fields) >= 3 {
			name = strings.Join(fields[2:], " ")
		}
		return cli.NewRoom(size, name)
	case "join_room":
		if len(fields) != 2 {
			return fmt.Errorf("join_room requires a room id")
		}
		id, err := strconv.Atoi(fields[1])
		if err != nil {
			return err
		}
		return cli.JoinRoom(int32(id))
	case "leave_room":
		return cli.LeaveRoom()
	case "list_rooms":
		return cli.ListRooms()
	case "move":
		if len(fields) != 3 {
			return fmt.Errorf("move requires X and Y")
		}
		x, err := strconv.Atoi(fields[1])
		if err != nil {
			return err
		}
		y, err := strconv.Atoi(fields[2])
		if err != nil {
			return err
		}
		return cli.MakeMove(goban.Pos{X: x, Y: y})
	case "pass":
		return cli.MakeMove(goban.Pass)
	case "resign":
		return cli.MakeMove(goban.Resign)
	default:
		return fmt.Errorf("unknown command %q", fields[0])
	}
}

func printEvents(cli *client.Client) {
	for resp := range cli.Events {
		switch resp.Kind {
		case proto.RespNewRoomResult:
			fmt.Printf("new_room_result room=%d\n", resp.RoomID)
		case proto.RespJoinResult:
			fmt.Printf("join_result success=%t\n", resp.Success)
		case proto.RespPlayerJoined:
			fmt.Println("player_joined")
		case proto.RespNewMove:
			fmt.Printf("new_move room=%d move=%s\n", resp.RoomID, resp.Move)
		case proto.RespIllegalMove:
			fmt.Println("illegal_move")
		case proto.RespListRooms:
			fmt.Printf("list_rooms count=%d\n", len(resp.Rooms))
			for _, r := range resp.Rooms {
				fmt.Printf("  room=%d name=%q can_join=%t size=%d\n",
					r.RoomID, r.Name, r.CanJoin, r.Board.Size())
			}
		case proto.RespExit:
			fmt.Println("exit")
		}
	}
}
