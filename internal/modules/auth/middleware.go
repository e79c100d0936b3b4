package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/dgrijalva/jwt-go"

	"github.com/GZL-hub/ims-sub000/internal/modules/user"
)

type contextKey string

const (
	ctxKeyUserID contextKey = "auth.user_id"
	ctxKeyRole   contextKey = "auth.role"
)

// Middleware authenticates requests and enforces role permissions. The
// domain handlers behind it only ever see authorized requests.
type Middleware struct {
	jwtKey []byte
}

func NewMiddleware(jwtKey []byte) *Middleware {
	return &Middleware{jwtKey: jwtKey}
}

// Authenticate rejects requests without a valid Bearer token and stashes the
// caller's id and role in the request context.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			http.Error(w, "missing bearer token", http.StatusUnauthorized)
			return
		}
		raw := strings.TrimPrefix(header, "Bearer ")

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return m.jwtKey, nil
		})
		if err != nil || !token.Valid {
			http.Error(w, "invalid or expired token", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), ctxKeyUserID, claims.Subject)
		ctx = context.WithValue(ctx, ctxKeyRole, user.Role(claims.Role))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Require returns middleware that rejects callers whose role lacks the
// permission. Must run after Authenticate.
func (m *Middleware) Require(p user.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := RoleFromContext(r.Context())
			if !ok || !role.HasPermission(p) {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// UserIDFromContext returns the authenticated user's id.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ctxKeyUserID).(string)
	return id, ok
}

// RoleFromContext returns the authenticated user's role.
func RoleFromContext(ctx context.Context) (user.Role, bool) {
	role, ok := ctx.Value(ctxKeyRole).(user.Role)
	return role, ok
}
