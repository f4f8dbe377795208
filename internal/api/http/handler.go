package http

import (
	"bidwhist/internal/shared"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Rooms is the registry view the HTTP handlers read.
type Rooms interface {
	ListRooms() []shared.RoomSummary
	RoomCount() int
}

// Clients counts live websocket connections.
type Clients interface {
	ClientCount() int
}

// @Summary Health check
// @Description Reports liveness with room and connection counts
// @Tags Server
// @Produce json
// @Success 200 {object} http.HealthResponse
// @Router /health [get]
func HealthHandler(rooms Rooms, clients Clients) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, HealthResponse{
			Status:      "ok",
			Message:     "Bid Whist server is running",
			Rooms:       rooms.RoomCount(),
			Connections: clients.ClientCount(),
		})
	}
}

// @Summary List rooms
// @Description Snapshot of open rooms, same shape as the ROOM_LIST message
// @Tags Room
// @Produce json
// @Success 200 {object} http.RoomListResponse
// @Router /rooms [get]
func ListRoomsHandler(rooms Rooms) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, RoomListResponse{Rooms: rooms.ListRooms()})
	}
}

// StaticHandler serves files from dir for any route nothing else matched.
func StaticHandler(dir string) gin.HandlerFunc {
	fs := http.FileServer(http.Dir(dir))
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
			return
		}
		fs.ServeHTTP(c.Writer, c.Request)
	}
}
