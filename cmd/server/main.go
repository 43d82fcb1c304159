package main

import (
	"log"
	"net/http"
	"time"

	"github.com/teamseven/codeconnect/internal/config"
	"github.com/teamseven/codeconnect/internal/handler"
	"github.com/teamseven/codeconnect/internal/hub"
	"github.com/teamseven/codeconnect/internal/middleware"
	"github.com/teamseven/codeconnect/internal/registry"
	"github.com/teamseven/codeconnect/internal/runner"
	"github.com/teamseven/codeconnect/internal/store"
)

func main() {
	cfg := config.Load()

	s, err := store.NewSQLite(cfg.DBPath)
	if err != nil {
		log.Fatalf("store: %v", err)
	}
	defer s.Close()

	reg := registry.New()
	h := hub.New()

	timeout := time.Duration(cfg.ExecTimeoutSec) * time.Second
	piston := runner.NewPiston(cfg.ExecURL, timeout)
	r := runner.New(reg, h, piston, s, timeout)

	mux := http.NewServeMux()
	mux.HandleFunc("/health", handler.Health())
	mux.HandleFunc("/api/rooms", handler.ListRooms(reg))
	mux.HandleFunc("/api/rooms/", handler.RoomInfo(reg, s, cfg.MaxRunHistory))
	mux.HandleFunc("/ws", handler.ServeWS(reg, h, r))
	mux.Handle("/", http.FileServer(http.Dir(cfg.StaticDir)))

	wrapped := middleware.Logging(middleware.CORS(mux))

	addr := ":" + cfg.Port
	log.Printf("codeconnect listening on %s", addr)
	if err := http.ListenAndServe(addr, wrapped); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
