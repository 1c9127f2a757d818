package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// HashPassword hashes with bcrypt at the given cost; cost 0 means bcrypt.DefaultCost.
func HashPassword(password string, cost int) ([]byte, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return bcrypt.GenerateFromPassword([]byte(password), cost)
}

func VerifyPassword(hash []byte, password string) bool {
	return bcrypt.CompareHashAndPassword(hash, []byte(password)) == nil
}

// Hasher adapts HashPassword to the seed loader signature.
func Hasher(cost int) func(string) ([]byte, error) {
	return func(password string) ([]byte, error) {
		return HashPassword(password, cost)
	}
}
