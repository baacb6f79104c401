package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// hashCost is the bcrypt work factor. Fixed; changing it only affects new
// hashes, stored ones keep verifying.
const hashCost = 12

// HashPassword hashes a password with bcrypt. Each call salts independently,
// so the same plaintext never produces the same hash twice.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), hashCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword reports whether the plaintext matches the stored bcrypt
// hash. Any mismatch or malformed hash reads as false.
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
