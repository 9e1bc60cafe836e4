// Package config loads runtime configuration from the environment with
// sensible development defaults.
package config

import "os"

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
}

type ServerConfig struct {
	Addr string
	Env  string
}

type DatabaseConfig struct {
	Path string
}

// Load reads the environment. PASSBOOK_SECRET_KEY and
// PASSBOOK_JWT_SECRET are read where they are used (encrypt.go,
// token.go), not here.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Addr: getEnv("PASSBOOK_ADDR", ":8080"),
			Env:  getEnv("PASSBOOK_ENV", "development"),
		},
		Database: DatabaseConfig{
			Path: getEnv("PASSBOOK_DB", "passbook.db"),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
