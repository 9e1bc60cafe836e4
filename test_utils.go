// test_utils.go
package main

import (
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
)

// ensureTestDB wipes all data so each test starts clean. The schema
// itself is created once by TestMain through initDB.
func ensureTestDB(t *testing.T) {
	t.Helper()

	// Clean in dependency order.
	cleanTables := []string{"password_records", "categories", "sessions", "login_attempts", "user_roles", "users"}
	for _, table := range cleanTables {
		if _, err := db.Exec("DELETE FROM " + table); err != nil {
			t.Fatalf("Failed to clean table %s: %v", table, err)
		}
	}
}

// createTestUser creates an account directly, bypassing permission
// checks, and returns it with its role joined in.
func createTestUser(t *testing.T, username, role string) *User {
	t.Helper()

	if err := createUser(nil, username, username+" Display", "password123", role, true); err != nil {
		t.Fatalf("Failed to create test user %s: %v", username, err)
	}
	user, err := getUserByUsername(username)
	if err != nil {
		t.Fatalf("Failed to load test user %s: %v", username, err)
	}
	return user
}

// createTestSession inserts a session row for the user and returns its token.
func createTestSession(t *testing.T, user *User) string {
	t.Helper()

	token := uuid.NewString()
	_, err := db.Exec(
		"INSERT INTO sessions (id, user_id, expires_at) VALUES (?, ?, ?)",
		token, user.ID, time.Now().Add(sessionLifetime),
	)
	if err != nil {
		t.Fatalf("Failed to create test session: %v", err)
	}
	return token
}

// withSessionCookie attaches a session cookie to the request.
func withSessionCookie(r *http.Request, token string) *http.Request {
	r.AddCookie(&http.Cookie{Name: "session_token", Value: token})
	return r
}
