package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/roomhunt/room_rental_system/backend/store"
)

type ContextKey string

// UserIDKey carries the authenticated user's id through the request context.
const UserIDKey = ContextKey("userID")

// Auth holds the two session guards. Both read the raw session id from the
// Authorization header; the literal "null" is treated as no token.
type Auth struct {
	Sessions store.SessionStore
	Logger   zerolog.Logger
}

// RequireLoggedIn rejects requests that carry no live session and otherwise
// attaches the session's user id to the request context.
func (a *Auth) RequireLoggedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			a.Logger.Debug().Str("path", r.URL.Path).Msg("missing session token")
			writeError(w, http.StatusUnauthorized, "You need to be logged in to make this request")
			return
		}

		session, err := a.Sessions.Get(r.Context(), token)
		if err != nil {
			a.Logger.Debug().Str("path", r.URL.Path).Msg("unresolvable session token")
			writeError(w, http.StatusUnauthorized, "You need to be logged in to make this request")
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, session.User)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireLoggedOut blocks requests carrying a live session. A token that no
// longer resolves (expired or unknown) passes through: the client holds a
// stale token and is effectively logged out.
func (a *Auth) RequireLoggedOut(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}

		if _, err := a.Sessions.Get(r.Context(), token); err == nil {
			writeError(w, http.StatusUnauthorized, "You should not be logged in to make this request")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func bearerToken(r *http.Request) string {
	token := r.Header.Get("Authorization")
	if token == "null" {
		return ""
	}
	return token
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"errorMessage": message})
}
