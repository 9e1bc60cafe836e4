// main.go
package main

import (
	"net/http"
	"time"

	"passbook/config"
	"passbook/pkg/auth"
	"passbook/pkg/logger"
	"passbook/pkg/template"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logger.Info("No .env file found, using environment variables")
	}

	cfg := config.Load()

	// Secrets are read after godotenv so values set only in .env apply.
	initEncryptionKey()
	initJWTSecret()

	initDB(cfg.Database.Path)
	defer db.Close()

	template.InitRenderer("templates", "base.html")

	// Periodic cleanup of expired sessions and stale login attempts.
	go func() {
		ticker := time.NewTicker(10 * time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			cleanupExpiredSessions()
			cleanupOldLoginAttempts()
		}
	}()

	mux := http.NewServeMux()

	// Pages
	mux.HandleFunc("/", securityHeaders(indexHandler))
	mux.HandleFunc("/login", securityHeaders(loginHandler))
	mux.HandleFunc("/signup", securityHeaders(signupRouter))
	mux.HandleFunc("/logout", securityHeaders(logoutHandler))
	mux.HandleFunc("/dashboard", authMiddleware(dashboardHandler))
	mux.HandleFunc("/categories", authMiddleware(categoriesPageHandler))
	mux.HandleFunc("/users", authMiddleware(auth.RequireAdmin(usersPageHandler)))

	// Record API
	mux.HandleFunc("/api/records", authMiddleware(recordsAPIHandler))
	mux.HandleFunc("/api/records/favorite", authMiddleware(favoriteHandler))
	mux.HandleFunc("/api/records/reveal", authMiddleware(revealHandler))
	mux.HandleFunc("/api/records/visibility", authMiddleware(visibilityHandler))

	// Category API
	mux.HandleFunc("/api/categories", authMiddleware(categoriesAPIHandler))

	// Account API
	mux.HandleFunc("/api/users", authMiddleware(auth.RequireAdmin(usersAPIHandler)))
	mux.HandleFunc("/api/user/password", authMiddleware(changeMyPasswordHandler))

	// Utility API
	mux.HandleFunc("/api/generate", authMiddleware(generatePasswordHandler))
	mux.HandleFunc("/api/token", authMiddleware(tokenHandler))

	// Export / import
	mux.HandleFunc("/export/records", authMiddleware(exportRecordsHandler))
	mux.HandleFunc("/import/records", authMiddleware(importRecordsHandler))
	mux.HandleFunc("/export/categories", authMiddleware(exportCategoriesHandler))
	mux.HandleFunc("/import/categories", authMiddleware(importCategoriesHandler))

	logger.Info("Server starting", "addr", cfg.Server.Addr, "env", cfg.Server.Env)
	if err := http.ListenAndServe(cfg.Server.Addr, mux); err != nil {
		logger.Fatal("Server failed", err)
	}
}

// signupRouter dispatches the signup page and form on method.
func signupRouter(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPost {
		signupHandler(w, r)
		return
	}
	signupPageHandler(w, r)
}
