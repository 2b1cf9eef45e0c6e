package server

import (
	"net/http"
	"strings"
)

// userHandler is a handler that needs the authenticated user's id.
type userHandler func(w http.ResponseWriter, r *http.Request, userID string)

// withUser rejects requests without a valid Bearer token.
func (s *Server) withUser(next userHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
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
		next(w, r, userID)
	}
}

// extractToken reads the Authorization header, falling back to a token query
// parameter for clients that cannot set headers (the WebSocket upgrade).
func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return authHeader[7:]
	}
	return r.URL.Query().Get("token")
}
