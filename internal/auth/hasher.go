package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultEditorPassword is assigned to editors created without a password.
// Anyone who knows it can log in as such an editor until the password is
// changed.
const DefaultEditorPassword = "changeme123"

// Password schemes accepted by NewHasher.
const (
	SchemeSHA256 = "sha256"
	SchemeBcrypt = "bcrypt"
)

// Hasher turns secrets into stored hashes and checks secrets against them.
type Hasher interface {
	Hash(secret string) (string, error)
	Verify(secret, stored string) bool
}

// NewHasher returns the Hasher for scheme. An empty scheme means SHA-256.
func NewHasher(scheme string) (Hasher, error) {
	switch scheme {
	case "", SchemeSHA256:
		return SHA256Hasher{}, nil
	case SchemeBcrypt:
		return BcryptHasher{Cost: bcrypt.DefaultCost}, nil
	default:
		return nil, fmt.Errorf("unknown password scheme %q", scheme)
	}
}

// SHA256Hasher stores lowercase hex SHA-256 digests without salt or
// iterations. It is what existing editors and admin_settings rows hold.
// SECURITY: unsalted single-round SHA-256 is weak against offline attacks;
// BcryptHasher is the replacement once stored hashes are migrated.
type SHA256Hasher struct{}

// Hash satisfies [Hasher].
func (SHA256Hasher) Hash(secret string) (string, error) {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:]), nil
}

// Verify satisfies [Hasher]. Plain string equality, matching the stored
// format exactly.
func (h SHA256Hasher) Verify(secret, stored string) bool {
	got, _ := h.Hash(secret)
	return got == stored
}

// BcryptHasher stores bcrypt hashes.
type BcryptHasher struct {
	Cost int
}

// Hash satisfies [Hasher]. It errors if secret is longer than 72 bytes.
func (h BcryptHasher) Hash(secret string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(secret), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify satisfies [Hasher].
func (BcryptHasher) Verify(secret, stored string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(secret)) == nil
}
