// Package auth implements password hashing and credential verification.
package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// hashCost matches bcrypt.DefaultCost (10 rounds).
const hashCost = bcrypt.DefaultCost

// HashPassword applies a salted one-way transform to the plaintext.
// Output embeds a random salt, so two calls on the same input yield
// different but both-valid hashes.
func HashPassword(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), hashCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

// VerifyPassword reports whether plaintext matches the stored hash.
// The comparison runs in constant time; any comparison error is treated
// as "not valid" rather than propagated.
func VerifyPassword(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
