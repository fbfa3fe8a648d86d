// Package hasher provides password hashing behind a small interface so the
// services stay independent of the concrete algorithm.
package hasher

// PasswordHasher hashes plaintext passwords and verifies candidates against
// stored hashes.
type PasswordHasher interface {
	// Hash generates a salted, one-way hash from a plaintext password.
	Hash(password string) (string, error)

	// Check reports whether the plaintext password matches the encoded hash.
	Check(password, encoded string) bool
}
