// Package credential provides random password generation and the
// reveal-state helpers backing the show/hide toggle on the dashboard.
package credential

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
)

// Charset is the fixed pool Generate draws from.
const Charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*()_+-=[]{}|;:,.<>?"

// DefaultLength is the length used when a caller does not ask for one.
const DefaultLength = 16

// ErrInvalidLength is returned when a non-positive length is requested.
var ErrInvalidLength = errors.New("password length must be positive")

// Generate returns a random password of exactly length characters, each
// drawn independently and uniformly from Charset using crypto/rand.
func Generate(length int) (string, error) {
	if length <= 0 {
		return "", ErrInvalidLength
	}

	max := big.NewInt(int64(len(Charset)))
	out := make([]byte, length)
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to draw random index: %w", err)
		}
		out[i] = Charset[n.Int64()]
	}
	return string(out), nil
}

// VisibleSet holds the ids of records whose secret is currently
// revealed. Every record starts hidden; membership means revealed.
type VisibleSet map[string]struct{}

// Toggle returns a new set with id flipped: removed if present, inserted
// otherwise. The input set is never modified, so callers replace their
// state with the returned value.
func Toggle(set VisibleSet, id string) VisibleSet {
	next := make(VisibleSet, len(set)+1)
	for k := range set {
		next[k] = struct{}{}
	}
	if _, ok := next[id]; ok {
		delete(next, id)
	} else {
		next[id] = struct{}{}
	}
	return next
}

// Revealed reports whether id is currently revealed.
func (s VisibleSet) Revealed(id string) bool {
	_, ok := s[id]
	return ok
}
