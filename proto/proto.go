// Wire Protocol
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

// Package proto implements goban's length-prefixed, little-endian
// wire protocol between a session worker and a client: a tagged
// Request/Response pair plus the variable-tail records (room
// listings, illegal-move resync snapshots) that follow some of them.
package proto

import (
	"encoding/binary"
	"fmt"
	"io"

	"goban"
)

// nameWireBytes is the fixed width of a room name on the wire, per
// SPEC_FULL.md's pinning of the reference's u8 name[16].
const nameWireBytes = 16

// RequestKind tags the variant carried by a Request.
type RequestKind uint32

const (
	ReqNone RequestKind = iota
	ReqNewRoom
	ReqJoinRoom
	ReqLeaveRoom
	ReqMakeMove
	ReqListRooms
	ReqExit
)

func (k RequestKind) String() string {
	switch k {
	case ReqNone:
		return "none"
	case ReqNewRoom:
		return "new_room"
	case ReqJoinRoom:
		return "join_room"
	case ReqLeaveRoom:
		return "leave_room"
	case ReqMakeMove:
		return "make_move"
	case ReqListRooms:
		return "list_rooms"
	case ReqExit:
		return "exit"
	default:
		return fmt.Sprintf("RequestKind(%d)", uint32(k))
	}
}

// Request is a single client-to-server message. Only the fields
// relevant to Kind are meaningful; the rest are zero.
type Request struct {
	Kind      RequestKind
	BoardSize int32
	Name      string
	RoomID    int32
	Move      goban.Pos
}

// ResponseKind tags the variant carried by a Response.
type ResponseKind uint32

const (
	RespNone ResponseKind = iota
	RespNewMove
	RespNewRoomResult
	RespJoinResult
	RespPlayerJoined
	RespListRooms
	RespIllegalMove
	RespExit
)

func (k ResponseKind) String() string {
	switch k {
	case RespNone:
		return "none"
	case RespNewMove:
		return "new_move"
	case RespNewRoomResult:
		return "new_room_result"
	case RespJoinResult:
		return "join_result"
	case RespPlayerJoined:
		return "player_joined"
	case RespListRooms:
		return "list_rooms"
	case RespIllegalMove:
		return "illegal_move"
	case RespExit:
		return "exit"
	default:
		return fmt.Sprintf("ResponseKind(%d)", uint32(k))
	}
}

// RoomListing is one entry of a list_rooms response tail.
type RoomListing struct {
	RoomID  int32
	Name    string
	CanJoin bool
	Board   goban.Board
}

// Response is a single server-to-client message. list_rooms and
// illegal_move append a variable tail (Rooms, Snapshot respectively)
// immediately after the fixed head, as spec'd.
type Response struct {
	Kind     ResponseKind
	RoomID   int32
	Move     goban.Pos
	Success  bool
	Rooms    []RoomListing
	Snapshot *goban.GameData
}

// requestHeadBytes is the encoded length of a Request's fixed head,
// excluding the list_rooms/illegal_move tails that only Responses
// carry.
const requestHeadBytes = 4 + 4 + nameWireBytes + 4 + posWireBytesLocal

// posWireBytesLocal mirrors goban's unexported Pos wire width; kept
// local since proto only ever encodes Pos as two signed bytes and
// must not depend on goban's internal layout.
const posWireBytesLocal = 2

func putPos(buf []byte, p goban.Pos) {
	buf[0] = byte(int8(p.X))
	buf[1] = byte(int8(p.Y))
}

func getPos(buf []byte) goban.Pos {
	return goban.Pos{X: int(int8(buf[0])), Y: int(int8(buf[1]))}
}

// EncodeRequest serializes req into its fixed-width wire form.
func EncodeRequest(req Request) []byte {
	buf := make([]byte, requestHeadBytes)
	off := 0

	binary.LittleEndian.PutUint32(buf[off:], uint32(req.Kind))
	off += 4
	binary.LittleEndian.PutUint32(buf[off:], uint32(req.BoardSize))
	off += 4
	copy(buf[off:off+nameWireBytes], req.Name)
	off += nameWireBytes
	binary.LittleEndian.PutUint32(buf[off:], uint32(req.RoomID))
	off += 4
	putPos(buf[off:], req.Move)

	return buf
}

// DecodeRequest parses a Request from its fixed-width wire form.
func DecodeRequest(data []byte) (Request, error) {
	if len(data) != requestHeadBytes {
		return Request{}, fmt.Errorf("proto: request record is %d bytes, want %d", len(data), requestHeadBytes)
	}
	var req Request
	off := 0

	req.Kind = RequestKind(binary.LittleEndian.Uint32(data[off:]))
	off += 4
	req.BoardSize = int32(binary.LittleEndian.Uint32(data[off:]))
	off += 4
	req.Name = decodeName(data[off : off+nameWireBytes])
	off += nameWireBytes
	req.RoomID = int32(binary.LittleEndian.Uint32(data[off:]))
	off += 4
	req.Move = getPos(data[off:])

	return req, nil
}

// responseHeadBytes is the encoded length of a Response's fixed head.
const responseHeadBytes = 4 + 4 + posWireBytesLocal + 1

// roomListingWireBytes is the encoded length of one list_rooms tail
// entry.
const roomListingWireBytes = 4 + nameWireBytes + 1 + goban.WireBoardBytes

// EncodeResponse serializes resp, including any list_rooms/
// illegal_move tail, into a single byte slice.
func EncodeResponse(resp Response) ([]byte, error) {
	buf := make([]byte, responseHeadBytes)
	off := 0

	binary.LittleEndian.PutUint32(buf[off:], uint32(resp.Kind))
	off += 4
	binary.LittleEndian.PutUint32(buf[off:], uint32(resp.RoomID))
	off += 4
	putPos(buf[off:], resp.Move)
	off += posWireBytesLocal
	if resp.Success {
		buf[off] = 1
	}

	switch resp.Kind {
	case RespListRooms:
		tail := make([]byte, 4+len(resp.Rooms)*roomListingWireBytes)
		binary.LittleEndian.PutUint32(tail, uint32(len(resp.Rooms)))
		toff := 4
		for _, rl := range resp.Rooms {
			binary.LittleEndian.PutUint32(tail[toff:], uint32(rl.RoomID))
			toff += 4
			copy(tail[toff:toff+nameWireBytes], rl.Name)
			toff += nameWireBytes
			if rl.CanJoin {
				tail[toff] = 1
			}
			toff++
			board, err := rl.Board.MarshalBinary()
			if err != nil {
				return nil, err
			}
			copy(tail[toff:], board)
			toff += len(board)
		}
		buf = append(buf, tail...)
	case RespIllegalMove:
		if resp.Snapshot == nil {
			return nil, fmt.Errorf("proto: illegal_move response without a snapshot")
		}
		snap, err := resp.Snapshot.MarshalBinary()
		if err != nil {
			return nil, err
		}
		buf = append(buf, snap...)
	}

	return buf, nil
}

// DecodeResponse parses a Response, including any tail, from data.
func DecodeResponse(data []byte) (Response, error) {
	if len(data) < responseHeadBytes {
		return Response{}, fmt.Errorf("proto: response record is %d bytes, want at least %d", len(data), responseHeadBytes)
	}
	var resp Response
	off := 0

	resp.Kind = ResponseKind(binary.LittleEndian.Uint32(data[off:]))
	off += 4
	resp.RoomID = int32(binary.LittleEndian.Uint32(data[off:]))
	off += 4
	resp.Move = getPos(data[off:])
	off += posWireBytesLocal
	resp.Success = data[off] != 0
	off++

	switch resp.Kind {
	case RespListRooms:
		tail := data[off:]
		if len(tail) < 4 {
			return Response{}, fmt.Errorf("proto: truncated list_rooms tail")
		}
		n := int(binary.LittleEndian.Uint32(tail))
		toff := 4
		for i := 0; i < n; i++ {
			if len(tail) < toff+roomListingWireBytes {
				return Response{}, fmt.Errorf("proto: truncated list_rooms entry %d", i)
			}
			var rl RoomListing
			rl.RoomID = int32(binary.LittleEndian.Uint32(tail[toff:]))
			toff += 4
			rl.Name = decodeName(tail[toff : toff+nameWireBytes])
			toff += nameWireBytes
			rl.CanJoin = tail[toff] != 0
			toff++
			if err := rl.Board.UnmarshalBinary(tail[toff : toff+goban.WireBoardBytes]); err != nil {
				return Response{}, err
			}
			toff += goban.WireBoardBytes
			resp.Rooms = append(resp.Rooms, rl)
		}
	case RespIllegalMove:
		snap := data[off:]
		if len(snap) != goban.WireGameDataBytes {
			return Response{}, fmt.Errorf("proto: illegal_move snapshot is %d bytes, want %d", len(snap), goban.WireGameDataBytes)
		}
		var g goban.GameData
		if err := g.UnmarshalBinary(snap); err != nil {
			return Response{}, err
		}
		resp.Snapshot = &g
	}

	return resp, nil
}

func decodeName(buf []byte) string {
	i := 0
	for i < len(buf) && buf[i] != 0 {
		i++
	}
	return string(buf[:i])
}

// ReadExact reads exactly n bytes from r, looping until satisfied or
// an error (including io.EOF on short read) occurs.
func ReadExact(r io.Reader, n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// WriteExact writes all of buf to w with a single Write call; by the
// io.Writer contract, a write shorter than buf returns an error.
func WriteExact(w io.Writer, buf []byte) error {
	_, err := w.Write(buf)
	return err
}
