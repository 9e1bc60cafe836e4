// encrypt.go
package main

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"
	"os"

	"passbook/pkg/logger"

	"golang.org/x/crypto/pbkdf2"
)

var encryptionKey []byte

// initEncryptionKey reads PASSBOOK_SECRET_KEY. Called from main after
// the .env file is loaded, so keys set only in .env take effect.
func initEncryptionKey() {
	keyStr := os.Getenv("PASSBOOK_SECRET_KEY")
	if keyStr == "" {
		keyStr = "ThisIsASecretKeyYouShouldReplace"
		logger.Warning("PASSBOOK_SECRET_KEY is not set, using the default encryption key")
	}
	// AES-256 requires a 32-byte key. Panic on startup if the key is the wrong size.
	if len(keyStr) != 32 {
		panic(fmt.Sprintf("Invalid PASSBOOK_SECRET_KEY length: must be 32 bytes, but got %d", len(keyStr)))
	}
	encryptionKey = []byte(keyStr)
}

// deriveKey uses PBKDF2 to create a unique key for a record from the master key and a salt.
func deriveKey(salt []byte) []byte {
	// 4096 iterations, 32-byte key length, SHA-256.
	return pbkdf2.Key(encryptionKey, salt, 4096, 32, sha256.New)
}

// generateSalt generates a cryptographically secure random 16-byte salt.
func generateSalt() ([]byte, error) {
	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	return salt, nil
}

// encrypt encrypts data using a key derived from the master key and the provided salt.
func encrypt(data, salt []byte) ([]byte, error) {
	derivedKey := deriveKey(salt)
	block, err := aes.NewCipher(derivedKey)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err = io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}

	ciphertext := gcm.Seal(nonce, nonce, data, nil)
	return ciphertext, nil
}

// decrypt decrypts data using a key derived from the master key and the provided salt.
func decrypt(data, salt []byte) ([]byte, error) {
	derivedKey := deriveKey(salt)
	block, err := aes.NewCipher(derivedKey)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	nonceSize := gcm.NonceSize()
	if len(data) < nonceSize {
		return nil, fmt.Errorf("ciphertext too short")
	}

	nonce, ciphertext := data[:nonceSize], data[nonceSize:]
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, err
	}

	return plaintext, nil
}
