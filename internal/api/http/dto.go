package http

import "bidwhist/internal/shared"

// HealthResponse is returned by / and /health.
type HealthResponse struct {
	Status      string `json:"status"`
	Message     string `json:"message"`
	Rooms       int    `json:"rooms"`
	Connections int    `json:"connections"`
}

// RoomListResponse is the REST form of ROOM_LIST.
type RoomListResponse struct {
	Rooms []shared.RoomSummary `json:"rooms"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
