package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"

	"taskmanager/internal/domain/service"
)

// sha256Hasher stores base64(SHA-256(password)) without a salt.
// It exists so accounts created by older deployments can still sign in.
type sha256Hasher struct{}

// NewSHA256Hasher is the constructor for sha256Hasher.
func NewSHA256Hasher() service.PasswordHasher {
	return &sha256Hasher{}
}

// Hash returns the standard base64 encoding of the SHA-256 digest of password.
func (h *sha256Hasher) Hash(password string) (string, error) {
	sum := sha256.Sum256([]byte(password))

	return base64.StdEncoding.EncodeToString(sum[:]), nil
}

// Check compares digests in constant time.
func (h *sha256Hasher) Check(password, hash string) bool {
	digest, _ := h.Hash(password)

	return subtle.ConstantTimeCompare([]byte(digest), []byte(hash)) == 1
}
