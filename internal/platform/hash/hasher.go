// Package hash wraps bcrypt for password storage.
package hash

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrPasswordTooLong is returned for inputs bcrypt cannot hash (over 72 bytes).
var ErrPasswordTooLong = errors.New("hash: password exceeds 72 bytes")

// dummyDigest is compared against when no stored digest exists so that
// unknown identities take as long as wrong passwords.
const dummyDigest = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

type Hasher struct {
	cost int
}

// New returns a hasher using cost, falling back to bcrypt.DefaultCost when
// cost is out of bcrypt's range.
func New(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

func (h *Hasher) Hash(plain string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", ErrPasswordTooLong
		}
		return "", fmt.Errorf("hash: %w", err)
	}
	return string(digest), nil
}

// Verify reports whether plain matches digest. A malformed digest never matches.
func (h *Hasher) Verify(plain, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain)) == nil
}

func (h *Hasher) VerifyDummy(plain string) {
	_ = bcrypt.CompareHashAndPassword([]byte(dummyDigest), []byte(plain))
}
