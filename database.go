// database.go
package main

import (
	"database/sql"
	"fmt"

	"passbook/pkg/logger"

	_ "github.com/mattn/go-sqlite3"
	"golang.org/x/crypto/bcrypt"
)

// db is our global database connection pool. It is declared here
// to be accessible across all files in the main package.
var db *sql.DB

// initDB initializes the database connection and creates tables if they don't exist.
func initDB(filepath string) {
	var err error
	db, err = sql.Open("sqlite3", filepath+"?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=10000")
	if err != nil {
		logger.Fatal("Failed to open database", err)
	}

	// SQLite can only handle one writer at a time.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	createTables := `
	CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT NOT NULL UNIQUE,
		display_name TEXT NOT NULL DEFAULT '',
		password_hash TEXT NOT NULL,
		is_super_admin TINYINT(1) NOT NULL DEFAULT 0
	);
	CREATE TABLE IF NOT EXISTS user_roles (
		user_id INTEGER PRIMARY KEY,
		role TEXT NOT NULL,
		FOREIGN KEY(user_id) REFERENCES users(id) ON DELETE CASCADE
	);
	CREATE TABLE IF NOT EXISTS categories (
		id TEXT PRIMARY KEY,
		user_id INTEGER NOT NULL,
		name TEXT NOT NULL,
		color TEXT,
		icon TEXT,
		FOREIGN KEY(user_id) REFERENCES users(id) ON DELETE CASCADE,
		UNIQUE(user_id, name)
	);
	CREATE TABLE IF NOT EXISTS password_records (
		id TEXT PRIMARY KEY,
		user_id INTEGER NOT NULL,
		title TEXT NOT NULL,
		username TEXT NOT NULL DEFAULT '',
		secret_encrypted BLOB,
		url TEXT NOT NULL DEFAULT '',
		notes TEXT NOT NULL DEFAULT '',
		favorite TINYINT(1) NOT NULL DEFAULT 0,
		category_id TEXT,
		salt BLOB NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		modified_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY(user_id) REFERENCES users(id) ON DELETE CASCADE
	);
	CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		user_id INTEGER NOT NULL,
		expires_at TIMESTAMP NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY(user_id) REFERENCES users(id) ON DELETE CASCADE
	);
	CREATE TABLE IF NOT EXISTS login_attempts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT NOT NULL,
		ip_address TEXT NOT NULL,
		successful BOOLEAN NOT NULL DEFAULT 0,
		attempted_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_records_user ON password_records(user_id);
	CREATE INDEX IF NOT EXISTS idx_records_category ON password_records(category_id);
	CREATE INDEX IF NOT EXISTS idx_sessions_expires ON sessions(expires_at);
	CREATE INDEX IF NOT EXISTS idx_login_attempts_username ON login_attempts(username);
	CREATE INDEX IF NOT EXISTS idx_login_attempts_ip ON login_attempts(ip_address);
	`
	// Note: password_records.category_id has no foreign key on purpose.
	// It is a weak reference resolved by lookup; deleting a category
	// leaves the stored id dangling and it stops resolving on the next
	// fetch.
	_, err = db.Exec(createTables)
	if err != nil {
		logger.Fatal("Failed to create tables", err)
	}

	// Apply database migrations
	applyMigrations()

	// Set additional SQLite pragmas for better concurrency
	pragmas := []string{
		"PRAGMA synchronous = NORMAL",  // Faster than FULL, still safe with WAL
		"PRAGMA cache_size = 10000",    // Increase cache size
		"PRAGMA temp_store = memory",   // Store temp tables in memory
		"PRAGMA mmap_size = 268435456", // Use memory mapping (256MB)
	}

	for _, pragma := range pragmas {
		_, err = db.Exec(pragma)
		if err != nil {
			logger.Warning("Failed to set pragma " + pragma + ": " + err.Error())
		}
	}

	seedSuperAdmin()
}

// seedSuperAdmin creates the initial super administrator account if no
// super admin exists yet.
func seedSuperAdmin() {
	var count int
	err := db.QueryRow("SELECT COUNT(*) FROM users WHERE is_super_admin = 1").Scan(&count)
	if err != nil {
		logger.Fatal("Failed to check for super admin", err)
	}
	if count > 0 {
		return
	}

	fmt.Println("Creating 'super' administrator account...")
	hash, err := bcrypt.GenerateFromPassword([]byte("abcd1234"), bcrypt.DefaultCost)
	if err != nil {
		logger.Fatal("Failed to hash super admin password", err)
	}

	res, err := db.Exec(
		"INSERT INTO users (username, display_name, password_hash, is_super_admin) VALUES (?, ?, ?, 1)",
		"super", "Super Admin", string(hash),
	)
	if err != nil {
		logger.Fatal("Failed to create super admin", err)
	}

	userID, err := res.LastInsertId()
	if err != nil {
		logger.Fatal("Failed to get super admin id", err)
	}
	_, err = db.Exec("INSERT INTO user_roles (user_id, role) VALUES (?, ?)", userID, RoleSuperAdmin)
	if err != nil {
		logger.Fatal("Failed to assign super admin role", err)
	}

	fmt.Println("'super' account created with password 'abcd1234'. Please change it immediately.")
}

// applyMigrations handles database schema migrations
func applyMigrations() {
	// Migration 1: Add favorite column to password_records if it doesn't exist
	var columnExists int
	err := db.QueryRow(`
		SELECT COUNT(*) FROM pragma_table_info('password_records')
		WHERE name = 'favorite'
	`).Scan(&columnExists)

	if err != nil {
		logger.Warning("Failed to check for favorite column: " + err.Error())
	} else if columnExists == 0 {
		_, err = db.Exec("ALTER TABLE password_records ADD COLUMN favorite TINYINT(1) NOT NULL DEFAULT 0")
		if err != nil {
			logger.Warning("Failed to add favorite column: " + err.Error())
		} else {
			logger.Info("Applied migration: Added favorite column to password_records")
		}
	}

	// Migration 2: Add icon column to categories if it doesn't exist
	err = db.QueryRow(`
		SELECT COUNT(*) FROM pragma_table_info('categories')
		WHERE name = 'icon'
	`).Scan(&columnExists)

	if err != nil {
		logger.Warning("Failed to check for icon column: " + err.Error())
	} else if columnExists == 0 {
		_, err = db.Exec("ALTER TABLE categories ADD COLUMN icon TEXT")
		if err != nil {
			logger.Warning("Failed to add icon column: " + err.Error())
		} else {
			logger.Info("Applied migration: Added icon column to categories")
		}
	}
}
