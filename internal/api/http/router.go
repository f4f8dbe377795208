package http

import (
	"bidwhist/internal/api/ws"
	"bidwhist/internal/config"
	"slices"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter(rooms Rooms, hub *ws.Hub, cfg config.Config) *gin.Engine {
	r := gin.Default()
	r.Use(cors.New(corsConfig(cfg.AllowedOrigins)))

	health := HealthHandler(rooms, hub)
	r.GET("/", health)
	r.GET("/health", health)

	r.GET("/rooms", ListRoomsHandler(rooms))

	// clients speak the JSON message protocol here
	r.GET("/ws", hub.HandleWS)

	r.NoRoute(StaticHandler(cfg.StaticDir))
	return r
}

func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods: []string{"GET", "HEAD", "OPTIONS"},
		AllowHeaders: []string{"Content-Type", "Origin"},
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		c.AllowAllOrigins = true
		return c
	}
	c.AllowOrigins = origins
	return c
}
