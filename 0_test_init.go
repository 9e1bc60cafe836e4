//go:build test || !production
// +build test !production

package main

import "os"

// init sets up the test environment before any other init() functions run.
// This file is named to ensure it loads first (alphabetically before
// encrypt.go and token.go).
func init() {
	if os.Getenv("PASSBOOK_SECRET_KEY") == "" {
		os.Setenv("PASSBOOK_SECRET_KEY", "12345678901234567890123456789012") // 32 bytes
	}
	if os.Getenv("PASSBOOK_JWT_SECRET") == "" {
		os.Setenv("PASSBOOK_JWT_SECRET", "test_jwt_secret")
	}
}
