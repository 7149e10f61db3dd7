package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/intermernet/battery-registry/internal/auth"
)

// contextKey is a custom type used for keys in context.Context. Using a custom
// type prevents collisions between context keys defined in different packages.
type contextKey string

// userContextKey is the key used to store the authenticated user in the
// request context after successful authentication.
const userContextKey = contextKey("user")

// errMissingToken is returned when a protected route is called without a bearer token.
var errMissingToken = fmt.Errorf("missing bearer token: %w", auth.ErrUnauthenticated)

// bearerToken extracts the token from an "Authorization: Bearer <token>" header.
func bearerToken(r *http.Request) string {
	headerParts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
	if len(headerParts) == 2 && strings.EqualFold(headerParts[0], "bearer") {
		return strings.TrimSpace(headerParts[1])
	}
	return ""
}

// authMiddleware protects routes that require an active user.
// The token is resolved to a user, disabled users are rejected, and the user
// is injected into the request context. Failures never reach the store.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			s.errorJSON(w, r, errMissingToken)
			return
		}

		user, err := s.gate.Authenticate(token)
		if err != nil {
			s.errorJSON(w, r, err)
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// getUserFromContext retrieves the authenticated user from the request context.
// This should only be called by handlers that are protected by the authMiddleware.
func (s *Server) getUserFromContext(r *http.Request) (auth.User, error) {
	user, ok := r.Context().Value(userContextKey).(auth.User)
	if !ok {
		return auth.User{}, errors.New("could not retrieve user from context")
	}
	return user, nil
}

// requestLogger logs one structured line per request.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		entry := s.log.WithField("method", r.Method).
			WithField("path", r.URL.Path).
			WithField("status", status).
			WithField("bytes", ww.BytesWritten()).
			WithField("duration", time.Since(start).String())
		if id := middleware.GetReqID(r.Context()); id != "" {
			entry = entry.WithField("request_id", id)
		}

		if status >= http.StatusInternalServerError {
			entry.Warn("request served")
			return
		}
		entry.Info("request served")
	})
}
