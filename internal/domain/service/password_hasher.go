// Package service declares the ports usecases use to reach external capabilities.
package service

// PasswordHasher turns sign-up passwords into irreversible hashes and checks
// sign-in attempts against them.
type PasswordHasher interface {
	Hash(password string) (string, error)

	// Check reports whether password matches hash. Malformed hashes never match.
	Check(password, hash string) bool
}
