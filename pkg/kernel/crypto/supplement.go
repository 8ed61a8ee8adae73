package crypto

import (
	"crypto/sha256"

	"golang.org/x/crypto/pbkdf2"

	"github.com/ripixel/fitglue-kernel/pkg/kernel/kernelerr"
)

// DeriveKeyPBKDF2 derives a keyLen-byte key from password and salt using
// PBKDF2-HMAC-SHA256, for callers who have outgrown DeriveKeySimple's
// intentionally weak iterated hash.
func DeriveKeyPBKDF2(password, salt []byte, iterations, keyLen int) ([]byte, error) {
	if iterations < 1 {
		return nil, kernelerr.New(kernelerr.InvalidInput, "iterations must be >= 1")
	}
	if keyLen < 1 {
		return nil, kernelerr.New(kernelerr.InvalidInput, "keyLen must be >= 1")
	}
	return pbkdf2.Key(password, salt, iterations, keyLen, sha256.New), nil
}

// GenerateAPIToken mints an opaque bearer token: CSPRNG bytes, URL-safe
// base64, prefixed with prefix and a separating underscore.
func GenerateAPIToken(prefix string) (string, error) {
	raw, err := RandomBytes(32)
	if err != nil {
		return "", err
	}
	return prefix + "_" + Base64URLEncode(raw), nil
}
