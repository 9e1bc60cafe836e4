// Package auth provides request-context storage for the authenticated
// account and route guards built on top of it.
package auth

import (
	"context"
	"net/http"
)

// Principal is what the guards need to know about an authenticated
// account. The main package's User satisfies it.
type Principal interface {
	IsAdmin() bool
}

// Custom key type to avoid context collisions.
type contextKey string

const userContextKey contextKey = "user"

// WithUser returns a request whose context carries the account.
func WithUser(r *http.Request, user interface{}) *http.Request {
	ctx := context.WithValue(r.Context(), userContextKey, user)
	return r.WithContext(ctx)
}

// FromRequest extracts the account from the request context as T.
func FromRequest[T any](r *http.Request) (T, bool) {
	v, ok := r.Context().Value(userContextKey).(T)
	return v, ok
}

// RequireAuth ensures a principal is present before calling next.
func RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := FromRequest[Principal](r); !ok {
			http.Error(w, "User not authenticated", http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

// RequireAdmin ensures an admin principal is present before calling next.
func RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := FromRequest[Principal](r)
		if !ok {
			http.Error(w, "User not authenticated", http.StatusUnauthorized)
			return
		}
		if !user.IsAdmin() {
			http.Error(w, "Admin access required", http.StatusForbidden)
			return
		}
		next(w, r)
	}
}
