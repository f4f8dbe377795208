package ws

import (
	"net/http"
	"slices"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

type Options struct {
	SendBuffer     int
	MsgRate        float64
	MsgBurst       int
	AllowedOrigins []string
}

// Hub accepts websocket connections and tracks them until they close.
type Hub struct {
	mu       sync.RWMutex
	clients  map[string]*Client
	router   *Router
	opts     Options
	upgrader websocket.Upgrader
}

func NewHub(router *Router, opts Options) *Hub {
	if opts.SendBuffer <= 0 {
		opts.SendBuffer = 64
	}
	if opts.MsgRate <= 0 {
		opts.MsgRate = 20
	}
	if opts.MsgBurst <= 0 {
		opts.MsgBurst = 40
	}
	h := &Hub{
		clients: make(map[string]*Client),
		router:  router,
		opts:    opts,
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     h.checkOrigin,
	}
	return h
}

func (h *Hub) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || slices.Contains(h.opts.AllowedOrigins, "*") {
		return true
	}
	return slices.Contains(h.opts.AllowedOrigins, origin)
}

func (h *Hub) HandleWS(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	client := newClient(uuid.NewString(), conn, h.opts)
	h.mu.Lock()
	h.clients[client.id] = client
	total := len(h.clients)
	h.mu.Unlock()
	log.Info().Str("conn", client.id).Str("remote", c.ClientIP()).Int("clients", total).Msg("client connected")

	defer func() {
		h.router.Disconnect(client)
		h.mu.Lock()
		delete(h.clients, client.id)
		total := len(h.clients)
		h.mu.Unlock()
		log.Info().Str("conn", client.id).Int("clients", total).Msg("client disconnected")
	}()

	go client.writePump()
	client.readPump(h.router)
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// CloseAll sends every client a close frame with code and text.
func (h *Hub) CloseAll(code int, text string) {
	h.mu.RLock()
	clients := make([]*Client, 0, len(h.clients))
	for _, c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		c.Close(code, text)
	}
	log.Info().Int("clients", len(clients)).Msg("closed all clients")
}
