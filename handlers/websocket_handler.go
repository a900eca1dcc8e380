package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/padelclub/padel-league/realtime"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// The club frontend and the API share an origin in production;
		// the CORS config is the single source of allowed origins there.
		return true
	},
}

type WebSocketHandler struct {
	hub    *realtime.Hub
	logger *slog.Logger
}

func NewWebSocketHandler(hub *realtime.Hub, logger *slog.Logger) *WebSocketHandler {
	return &WebSocketHandler{hub: hub, logger: logger}
}

// ServeMastersFeed upgrades the connection and attaches it to the hub.
// Every Masters aggregate change is then pushed to the client.
func (h *WebSocketHandler) ServeMastersFeed(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", slog.Any("error", err))
		return
	}
	realtime.NewClient(h.hub, conn).Start()
}
