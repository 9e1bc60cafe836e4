// auth.go
package main

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"passbook/pkg/auth"
	"passbook/pkg/httputil"
	"passbook/pkg/logger"

	"github.com/google/uuid"
)

// Rate limiting constants
const (
	maxLoginAttempts     = 3
	cooldownDuration     = 30 * time.Second
	maxLoginAttemptsHard = 6
	hardCooldownDuration = 5 * time.Minute
)

const sessionLifetime = 30 * time.Minute

// getClientIP extracts the client IP address from the request
func getClientIP(r *http.Request) string {
	// Check X-Forwarded-For header first (for proxies)
	forwarded := r.Header.Get("X-Forwarded-For")
	if forwarded != "" {
		// Take the first IP in the chain
		ips := strings.Split(forwarded, ",")
		if len(ips) > 0 {
			return strings.TrimSpace(ips[0])
		}
	}

	// Check X-Real-IP header
	realIP := r.Header.Get("X-Real-IP")
	if realIP != "" {
		return realIP
	}

	// Fall back to RemoteAddr
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// recordLoginAttempt records a login attempt in the database
func recordLoginAttempt(username, ipAddress string, successful bool) error {
	_, err := db.Exec(
		"INSERT INTO login_attempts (username, ip_address, successful, attempted_at) VALUES (?, ?, ?, ?)",
		username, ipAddress, successful, time.Now(),
	)
	return err
}

// checkRateLimitByUsername checks if a username is rate limited
func checkRateLimitByUsername(username string) (bool, time.Duration, error) {
	now := time.Now()

	limited, timeLeft, err := checkCooldown(username, maxLoginAttemptsHard, hardCooldownDuration, now)
	if err != nil || limited {
		return limited, timeLeft, err
	}

	return checkCooldown(username, maxLoginAttempts, cooldownDuration, now)
}

// checkCooldown reports whether the username has accumulated threshold
// failed attempts within window, and how long the cooldown has left.
func checkCooldown(username string, threshold int, window time.Duration, now time.Time) (bool, time.Duration, error) {
	var failedAttempts int
	err := db.QueryRow(`
		SELECT COUNT(*) FROM login_attempts
		WHERE username = ? COLLATE NOCASE
		AND successful = 0
		AND attempted_at > ?
	`, username, now.Add(-window)).Scan(&failedAttempts)

	if err != nil {
		return false, 0, err
	}
	if failedAttempts < threshold {
		return false, 0, nil
	}

	var lastAttempt time.Time
	err = db.QueryRow(`
		SELECT attempted_at FROM login_attempts
		WHERE username = ? COLLATE NOCASE
		AND successful = 0
		ORDER BY attempted_at DESC LIMIT 1
	`, username).Scan(&lastAttempt)

	if err != nil {
		return false, 0, err
	}

	timeLeft := window - now.Sub(lastAttempt)
	if timeLeft > 0 {
		return true, timeLeft, nil
	}
	return false, 0, nil
}

// createSession creates a new session for a user in the database
func createSession(w http.ResponseWriter, user *User) error {
	sessionToken := uuid.NewString()
	expiresAt := time.Now().Add(sessionLifetime)

	_, err := db.Exec(
		"INSERT INTO sessions (id, user_id, expires_at) VALUES (?, ?, ?)",
		sessionToken, user.ID, expiresAt,
	)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "session_token",
		Value:    sessionToken,
		Expires:  expiresAt,
		HttpOnly: true,  // Prevent XSS
		Secure:   false, // Set to true in production with HTTPS
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
	})

	return nil
}

// clearSession removes a user's session from database and cookie
func clearSession(w http.ResponseWriter, r *http.Request) {
	c, err := r.Cookie("session_token")
	if err != nil {
		// No cookie, nothing to clear.
		return
	}

	_, err = db.Exec("DELETE FROM sessions WHERE id = ?", c.Value)
	if err != nil {
		logger.Error("Error deleting session from database", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "session_token",
		Value:    "",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   false, // Set to true in production with HTTPS
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
	})
}

// clearAllUserSessions removes all sessions for a specific user (used when password changes)
func clearAllUserSessions(userID int) error {
	_, err := db.Exec("DELETE FROM sessions WHERE user_id = ?", userID)
	return err
}

// validateSession checks if a session exists and is valid in the database
func validateSession(sessionToken string) (*User, error) {
	var userID int
	var expiresAt time.Time

	err := db.QueryRow(`
		SELECT user_id, expires_at FROM sessions
		WHERE id = ? AND expires_at > ?
	`, sessionToken, time.Now()).Scan(&userID, &expiresAt)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("session not found or expired")
		}
		return nil, err
	}

	// Refresh session expiration (sliding window) without blocking the request.
	newExpiresAt := time.Now().Add(sessionLifetime)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		// Retry on database locks
		maxRetries := 3
		for i := 0; i < maxRetries; i++ {
			_, err := db.ExecContext(ctx, "UPDATE sessions SET expires_at = ? WHERE id = ?", newExpiresAt, sessionToken)
			if err == nil {
				return
			}

			if strings.Contains(err.Error(), "database is locked") && i < maxRetries-1 {
				time.Sleep(time.Duration(100*(i+1)) * time.Millisecond)
				continue
			}

			logger.Error("Error updating session expiration", err, "attempt", fmt.Sprintf("%d/%d", i+1, maxRetries))
			return
		}
	}()

	return getUserByID(userID)
}

// cleanupExpiredSessions removes expired sessions from the database and
// drops any revealed-secret state they left behind.
func cleanupExpiredSessions() {
	_, err := db.Exec("DELETE FROM sessions WHERE expires_at <= ?", time.Now())
	if err != nil {
		logger.Error("Error cleaning up expired sessions", err)
	}
	pruneRevealed()
}

// cleanupOldLoginAttempts removes old login attempts (older than 24 hours)
func cleanupOldLoginAttempts() {
	cutoff := time.Now().Add(-24 * time.Hour)
	_, err := db.Exec("DELETE FROM login_attempts WHERE attempted_at <= ?", cutoff)
	if err != nil {
		logger.Error("Error cleaning up old login attempts", err)
	}
}

// securityHeaders adds security headers to all responses
func securityHeaders(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("X-XSS-Protection", "1; mode=block")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		// 'unsafe-inline' is required for the inline page scripts. For
		// production, consider extracting scripts and using nonces.
		csp := "default-src 'self'; " +
			"style-src 'self' 'unsafe-inline' https://cdn.jsdelivr.net; " +
			"script-src 'self' 'unsafe-inline' https://cdn.jsdelivr.net; " +
			"img-src 'self' data:; " +
			"connect-src 'self'; " +
			"object-src 'none'; " +
			"base-uri 'self'"
		w.Header().Set("Content-Security-Policy", csp)

		next.ServeHTTP(w, r)
	}
}

// isAjaxRequest detects API/AJAX requests so auth failures answer with a
// status code instead of a redirect.
func isAjaxRequest(r *http.Request) bool {
	if r.Header.Get("X-Requested-With") == "XMLHttpRequest" {
		return true
	}
	if strings.HasPrefix(r.URL.Path, "/api/") {
		return true
	}
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "application/json")
}

// authMiddleware protects routes that require authentication. Cookie
// sessions are checked first; API clients may instead present a bearer
// token issued by /api/token.
func authMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return securityHeaders(func(w http.ResponseWriter, r *http.Request) {
		c, err := r.Cookie("session_token")
		if err != nil {
			if err != http.ErrNoCookie {
				httputil.BadRequest(w, "Bad request")
				return
			}

			// No session cookie; fall back to a bearer token.
			if token := bearerToken(r); token != "" {
				claims, err := validateToken(token)
				if err != nil {
					httputil.Unauthorized(w, "Invalid token")
					return
				}
				user, err := getUserByID(claims.UserID)
				if err != nil {
					httputil.Unauthorized(w, "Unknown account")
					return
				}
				next.ServeHTTP(w, auth.WithUser(r, user))
				return
			}

			if isAjaxRequest(r) {
				httputil.Unauthorized(w, "Authentication required")
			} else {
				http.Redirect(w, r, "/", http.StatusFound)
			}
			return
		}

		user, err := validateSession(c.Value)
		if err != nil {
			clearRevealed(c.Value)
			clearSession(w, r)
			if isAjaxRequest(r) {
				httputil.Unauthorized(w, "Session expired")
			} else {
				http.Redirect(w, r, "/?reason=session_expired", http.StatusFound)
			}
			return
		}

		// Update cookie expiration to match the refreshed session
		http.SetCookie(w, &http.Cookie{
			Name:     "session_token",
			Value:    c.Value,
			Expires:  time.Now().Add(sessionLifetime),
			HttpOnly: true,
			Secure:   false, // Set to true in production with HTTPS
			SameSite: http.SameSiteLaxMode,
			Path:     "/",
		})

		next.ServeHTTP(w, auth.WithUser(r, user))
	})
}
