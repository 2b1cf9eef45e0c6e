package server

import (
	"context"
	"net/http"

	"github.com/coder/websocket"

	"typetutor/internal/notify"
)

// handleWS upgrades to a WebSocket that receives badge-earned pushes. The
// browser WebSocket API cannot set headers, so the token rides the query
// string.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	token := extractToken(r)
	if token == "" {
		writeError(w, http.StatusUnauthorized, "missing or invalid token")
		return
	}
	userID, err := s.Auth.ParseToken(token)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "missing or invalid token")
		return
	}

	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close(websocket.StatusNormalClosure, "")

	client := &notify.Client{
		UserID: userID,
		Conn:   conn,
		Send:   make(chan []byte, 16),
	}
	s.Hub.Register(client)
	defer s.Hub.Unregister(client)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// Clients never send payloads; the read loop only notices disconnects.
	go func() {
		for {
			if _, _, err := conn.Read(ctx); err != nil {
				cancel()
				return
			}
		}
	}()

	client.WritePump(ctx)
}
