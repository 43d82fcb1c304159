package handler

import (
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/teamseven/codeconnect/internal/client"
	"github.com/teamseven/codeconnect/internal/hub"
	"github.com/teamseven/codeconnect/internal/registry"
	"github.com/teamseven/codeconnect/internal/session"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// ServeWS handles WebSocket upgrade requests. Identity arrives later with the
// join event, so the upgrade itself takes no parameters.
func ServeWS(reg *registry.Registry, h *hub.Hub, r session.Runner) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		conn, err := upgrader.Upgrade(w, req, nil)
		if err != nil {
			log.Printf("ws upgrade error: %v", err)
			return
		}

		id := uuid.NewString()
		log.Printf("client connected: %s", id)

		c := client.New(id, conn, reg, h, r)
		go c.ReadPump()
		go c.WritePump()
	}
}
