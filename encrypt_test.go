// encrypt_test.go
package main

import (
	"bytes"
	"os"
	"testing"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	salt, err := generateSalt()
	if err != nil {
		t.Fatalf("generateSalt failed: %v", err)
	}

	plaintext := []byte("correct horse battery staple")
	ciphertext, err := encrypt(plaintext, salt)
	if err != nil {
		t.Fatalf("encrypt failed: %v", err)
	}
	if bytes.Contains(ciphertext, plaintext) {
		t.Error("Ciphertext contains the plaintext")
	}

	decrypted, err := decrypt(ciphertext, salt)
	if err != nil {
		t.Fatalf("decrypt failed: %v", err)
	}
	if !bytes.Equal(decrypted, plaintext) {
		t.Errorf("Round trip mismatch: got %q", decrypted)
	}
}

func TestDecryptWrongSaltFails(t *testing.T) {
	salt, _ := generateSalt()
	otherSalt, _ := generateSalt()

	ciphertext, err := encrypt([]byte("secret"), salt)
	if err != nil {
		t.Fatalf("encrypt failed: %v", err)
	}

	if _, err := decrypt(ciphertext, otherSalt); err == nil {
		t.Error("Decryption with the wrong salt should fail")
	}
}

func TestDecryptTamperedCiphertextFails(t *testing.T) {
	salt, _ := generateSalt()
	ciphertext, err := encrypt([]byte("secret"), salt)
	if err != nil {
		t.Fatalf("encrypt failed: %v", err)
	}

	ciphertext[len(ciphertext)-1] ^= 0xFF
	if _, err := decrypt(ciphertext, salt); err == nil {
		t.Error("Tampered ciphertext should fail authentication")
	}
}

func TestDecryptTooShort(t *testing.T) {
	salt, _ := generateSalt()
	if _, err := decrypt([]byte{0x01, 0x02}, salt); err == nil {
		t.Error("Ciphertext shorter than the nonce should fail")
	}
}

func TestGenerateSaltUnique(t *testing.T) {
	a, err := generateSalt()
	if err != nil {
		t.Fatalf("generateSalt failed: %v", err)
	}
	b, err := generateSalt()
	if err != nil {
		t.Fatalf("generateSalt failed: %v", err)
	}
	if len(a) != 16 || len(b) != 16 {
		t.Errorf("Expected 16-byte salts, got %d and %d", len(a), len(b))
	}
	if bytes.Equal(a, b) {
		t.Error("Two salts should not collide")
	}
}

func TestEncryptionKeyHonorsLateEnvValue(t *testing.T) {
	orig := os.Getenv("PASSBOOK_SECRET_KEY")
	defer func() {
		os.Setenv("PASSBOOK_SECRET_KEY", orig)
		initEncryptionKey()
	}()

	salt, _ := generateSalt()

	// Encrypt under one key, switch the environment (as loading a .env
	// file would), re-initialize, and the old ciphertext must no longer
	// decrypt: the new key is really in use.
	os.Setenv("PASSBOOK_SECRET_KEY", "first-key-aaaaaaaaaaaaaaaaaaaaaa")
	initEncryptionKey()
	ciphertext, err := encrypt([]byte("secret"), salt)
	if err != nil {
		t.Fatalf("encrypt failed: %v", err)
	}

	os.Setenv("PASSBOOK_SECRET_KEY", "second-key-bbbbbbbbbbbbbbbbbbbbb")
	initEncryptionKey()
	if _, err := decrypt(ciphertext, salt); err == nil {
		t.Error("Ciphertext from the old key should not decrypt under the new one")
	}

	// And data encrypted now round-trips under the new key.
	ciphertext, err = encrypt([]byte("secret"), salt)
	if err != nil {
		t.Fatalf("encrypt failed: %v", err)
	}
	plaintext, err := decrypt(ciphertext, salt)
	if err != nil || string(plaintext) != "secret" {
		t.Errorf("Round trip under the configured key failed: %v", err)
	}
}

func TestEncryptSameInputDiffers(t *testing.T) {
	salt, _ := generateSalt()
	a, _ := encrypt([]byte("secret"), salt)
	b, _ := encrypt([]byte("secret"), salt)
	if bytes.Equal(a, b) {
		t.Error("Random nonces should make repeated encryptions differ")
	}
}
