// Package security implements the password hashing and token signing ports
// on bcrypt and HMAC-signed JWTs.
package security

import (
	"golang.org/x/crypto/bcrypt"
)

// BcryptPasswordHasher hashes passwords with bcrypt. Each hash carries its
// own salt, so equal passwords produce different hashes.
type BcryptPasswordHasher struct {
	cost int
}

// NewBcryptPasswordHasher creates a hasher with the given cost. A cost below
// bcrypt's minimum falls back to the library default.
func NewBcryptPasswordHasher(cost int) *BcryptPasswordHasher {
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptPasswordHasher{cost: cost}
}

// Hash derives a storable hash from a plain-text password.
func (h *BcryptPasswordHasher) Hash(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Compare reports whether plain matches hash.
func (h *BcryptPasswordHasher) Compare(hash, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
}
