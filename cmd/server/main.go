package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpapi "bidwhist/internal/api/http"
	"bidwhist/internal/api/ws"
	"bidwhist/internal/config"
	"bidwhist/internal/logger"
	"bidwhist/internal/room"
	"bidwhist/internal/store"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// @title Bid Whist Server API
// @version 1.0
// @description Room registry and health endpoints of the Bid Whist session server. Gameplay runs over /ws.
// @BasePath /
func main() {
	cfg := config.Load()
	logger.Init(cfg.LogLevel)

	mem := store.NewMemoryStore()
	rm := room.NewManager(mem, room.TimerScheduler{}, room.Options{
		BotDelay:      cfg.Timing.BotDelay,
		TrickDelay:    cfg.Timing.TrickDelay,
		RedealDelay:   cfg.Timing.RedealDelay,
		BotsPlayCards: cfg.BotsPlayCards,
	})
	hub := ws.NewHub(ws.NewRouter(rm), ws.Options{
		SendBuffer:     cfg.SendBuffer,
		MsgRate:        cfg.MsgRate,
		MsgBurst:       cfg.MsgBurst,
		AllowedOrigins: cfg.AllowedOrigins,
	})
	r := httpapi.SetupRouter(rm, hub, cfg)

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: r,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("listen")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	log.Info().Msg("shutting down")
	hub.CloseAll(websocket.CloseGoingAway, "Server shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
	log.Info().Msg("server stopped")
}
