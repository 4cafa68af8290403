package api

import (
	"net/http"

	"menedzer-plikow/internal/websocket"
)

func (s *Server) ServeWsHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", "error", err)
		return
	}

	client := websocket.NewClient(s.wsHub, conn)
	if !s.wsHub.Join(client) {
		conn.Close()
		return
	}

	go client.ReadPump()
	go client.WritePump()
}
