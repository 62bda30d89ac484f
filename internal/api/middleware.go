package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/abhisek/mathforest/internal/auth"
	"github.com/abhisek/mathforest/internal/game"
)

type ctxKey int

const (
	identityKey ctxKey = iota
	gameKey
)

// requireAuth verifies the bearer token and attaches the identity and its
// game to the request context.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || raw == "" {
			writeError(w, http.StatusUnauthorized, auth.UserMessage(auth.ErrNotSignedIn))
			return
		}
		id, err := s.auth.Verify(raw)
		if err != nil {
			writeError(w, http.StatusUnauthorized, auth.UserMessage(err))
			return
		}
		g, err := s.games.Get(r.Context(), id.ID)
		if err != nil {
			// Play continues on defaults; the failure is already logged.
			s.log.Warn("profile load failed, using defaults", "user", id.ID, "error", err)
		}
		ctx := context.WithValue(r.Context(), identityKey, id)
		ctx = context.WithValue(ctx, gameKey, g)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func identityFrom(ctx context.Context) auth.Identity {
	id, _ := ctx.Value(identityKey).(auth.Identity)
	return id
}

func gameFrom(ctx context.Context) *game.Game {
	g, _ := ctx.Value(gameKey).(*game.Game)
	return g
}
