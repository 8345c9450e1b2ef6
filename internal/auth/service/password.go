package service

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// dummyDigest is a valid bcrypt digest for a throwaway secret. When a login
// names an unknown email the verifier still runs a full compare against this
// digest so the elapsed time matches the known-email path. The result is
// always discarded.
const dummyDigest = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// PasswordHasher wraps bcrypt with a fixed cost. bcrypt's compare is
// constant-time over the digest, so no extra comparison discipline is needed
// here.
type PasswordHasher struct {
	cost int
}

func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordHasher{cost: cost}
}

func (h *PasswordHasher) Hash(password string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(digest), nil
}

// Compare reports whether password matches the stored digest.
func (h *PasswordHasher) Compare(digest, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}

// DummyCompare burns the same work as a real compare without revealing
// anything about any stored digest.
func (h *PasswordHasher) DummyCompare(password string) {
	_ = bcrypt.CompareHashAndPassword([]byte(dummyDigest), []byte(password))
}
