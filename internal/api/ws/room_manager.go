package ws

import (
	"bidwhist/internal/room"
	"bidwhist/internal/shared"
)

// RoomManager is the registry surface the router drives.
type RoomManager interface {
	CreateRoom(kind room.Kind, name string) *room.Room
	GetRoom(id string) (*room.Room, bool)
	CloseRoom(id string)
	ListRooms() []shared.RoomSummary
	JoinRoom(id string, conn room.Conn, name string) (*room.Room, int, error)
	Lookup(connID string) (*room.Room, int, bool)
	Leave(connID string)
	Disconnect(connID string)
}

var _ RoomManager = (*room.Manager)(nil)
