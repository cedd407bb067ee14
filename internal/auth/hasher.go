// Package auth provides credential hashing. The user entity stays a plain
// data record; services receive a SecretHasher instead of comparing
// passwords themselves.
package auth

import "golang.org/x/crypto/bcrypt"

// SecretHasher derives and verifies one-way password hashes.
type SecretHasher interface {
	Hash(secret string) (string, error)
	Verify(secret, hash string) bool
}

// BcryptHasher implements SecretHasher with bcrypt, which salts per hash and
// compares in constant time.
type BcryptHasher struct {
	Cost int
}

// NewBcryptHasher returns a BcryptHasher with the default cost.
func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{Cost: bcrypt.DefaultCost}
}

// Hash derives a bcrypt digest from the secret.
func (h *BcryptHasher) Hash(secret string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	digest, err := bcrypt.GenerateFromPassword([]byte(secret), cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify reports whether the secret matches the stored digest.
func (h *BcryptHasher) Verify(secret, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret)) == nil
}
