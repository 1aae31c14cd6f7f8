package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/PremPrakashCodes/inboxpilot/internal/domain"
)

type contextKey string

const userIDKey contextKey = "userID"

// The two fixed 401 bodies. Missing-token and bad-token cases are
// distinguishable to the client, but nothing about stored keys leaks.
const (
	MsgAuthRequired   = "Authorization header required (Bearer <token>)"
	MsgInvalidSession = "Invalid or expired session token"
)

const bearerScheme = "Bearer "

// SessionResolver maps a presented bearer token to its owning user id.
type SessionResolver interface {
	ResolveSessionUser(ctx context.Context, tok string) (string, error)
}

// ParseBearerToken extracts the token from the Authorization header
// (any casing). ok is false when the header is absent or lacks the literal
// "Bearer " scheme prefix — a bare "Bearer" with no trailing space is
// malformed. "Bearer " followed by nothing parses as the empty token.
func ParseBearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	if !strings.HasPrefix(h, bearerScheme) {
		return "", false
	}
	return h[len(bearerScheme):], true
}

// Auth returns middleware that resolves the bearer token and injects the
// owning user id into the request context. This wrapper is the only place
// bearer-token trust is established.
func Auth(resolver SessionResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tok, ok := ParseBearerToken(r)
			if !ok || tok == "" {
				writeJSONError(w, http.StatusUnauthorized, MsgAuthRequired)
				return
			}
			userID, err := resolver.ResolveSessionUser(r.Context(), tok)
			if err != nil {
				if errors.Is(err, domain.ErrUnauthorized) {
					writeJSONError(w, http.StatusUnauthorized, MsgInvalidSession)
				} else {
					writeJSONError(w, http.StatusInternalServerError, "Something went wrong. Please try again.")
				}
				return
			}
			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFromContext extracts the authenticated user id from the request context.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok
}
