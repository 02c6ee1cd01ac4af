package middleware

import (
	"context"
	"net/http"
	"strings"
)

// AdminTokenHeader carries the room admin token
const AdminTokenHeader = "X-Admin-Token"

type contextKey string

const adminTokenContextKey contextKey = "admin_token"

// AdminToken stores the admin token header in the request context. The
// operation checks it after looking up the room, so an unknown room is
// 404 whether or not the header is present, and a missing header on a
// known room is 403.
func AdminToken() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := strings.TrimSpace(r.Header.Get(AdminTokenHeader))
			ctx := context.WithValue(r.Context(), adminTokenContextKey, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetAdminToken returns the admin token from the request context
func GetAdminToken(ctx context.Context) string {
	token, _ := ctx.Value(adminTokenContextKey).(string)
	return token
}
