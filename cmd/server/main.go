package main

import (
	"context"

	httpapi "bluff-card/internal/api/http"
	"bluff-card/internal/api/ws"
	"bluff-card/internal/config"
	"bluff-card/internal/history"
	"bluff-card/internal/room"
	"bluff-card/internal/store"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// @title Bluff Card Server API
// @version 1.0
// @description Room and game engine for a turn-based bluffing card game (Go + Gin)
// @contact.name Backend Team
// @BasePath /
func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("config: %v", err)
	}

	mem := store.NewMemoryStore()
	hub := ws.NewHub()
	hist := history.New(cfg.RedisAddr)
	defer hist.Close()

	rm := room.NewManager(mem, cfg, hub, hist)
	hub.SetService(rm)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	rm.StartSweeper(ctx)

	r := httpapi.NewRouter(rm, cfg, hub)
	logrus.Infof("listening on %s", cfg.HTTPAddr)
	if err := r.Run(cfg.HTTPAddr); err != nil {
		logrus.Fatal(err)
	}
}
