package api

import (
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	// CheckOrigin is permissive because the engine server sits behind
	// whatever reverse proxy/auth layer deploys it; tightening this is a
	// deployment concern, not an engine-core one.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWS upgrades r to a websocket connection and registers a new Client
// against hub, mirroring the teacher's serveWS.
func ServeWS(hub *Hub, w http.ResponseWriter, r *http.Request) error {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	client := newClient(hub, conn)
	hub.register <- client

	go client.writePump()
	go client.readPump()
	return nil
}

// Handler returns an http.Handler serving the websocket endpoint at
// whatever path the caller mounts it on.
func Handler(hub *Hub) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := ServeWS(hub, w, r); err != nil {
			hub.logger.Warn("websocket upgrade failed", zap.Error(err))
		}
	})
}
