// token.go
package main

import (
	"errors"
	"net/http"
	"os"
	"strings"
	"time"

	"passbook/pkg/logger"

	"github.com/golang-jwt/jwt/v5"
)

var jwtSecret []byte

// initJWTSecret reads PASSBOOK_JWT_SECRET. Called from main after the
// .env file is loaded, so keys set only in .env take effect.
func initJWTSecret() {
	jwtSecret = []byte(os.Getenv("PASSBOOK_JWT_SECRET"))
	if len(jwtSecret) == 0 {
		jwtSecret = []byte("default_secret_key_change_in_production")
		logger.Warning("PASSBOOK_JWT_SECRET is not set, using the default signing key")
	}
}

const tokenLifetime = 24 * time.Hour

// Claims carried by API bearer tokens.
type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	UserID   int    `json:"user_id"`
	jwt.RegisteredClaims
}

// generateToken issues a signed bearer token for the account.
func generateToken(user *User) (string, error) {
	now := time.Now()
	claims := &Claims{
		Username: user.Username,
		Role:     user.Role,
		UserID:   user.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenLifetime)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

// validateToken parses and verifies a bearer token.
func validateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return jwtSecret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}

// bearerToken extracts a bearer token from the Authorization header.
func bearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
		return authHeader[7:]
	}
	return ""
}
