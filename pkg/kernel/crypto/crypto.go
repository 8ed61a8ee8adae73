// Package crypto implements the kernel's primitive cryptographic
// operations: hashing, HMAC, Ed25519 signing, encoding, constant-time
// comparison, CSPRNG bytes, and a weak internal KDF alongside a
// PBKDF2-backed supplemental one.
//
// SHA-256, HMAC, Ed25519, and the CSPRNG are implemented directly on
// crypto/sha256, crypto/hmac, crypto/ed25519, and crypto/rand: these are
// the Go ecosystem's own standard primitives for FIPS-180-4, RFC 2104,
// and RFC 8032, and no third-party library in the reference corpus
// offers a materially different implementation of them.
package crypto

import (
	"crypto/ed25519"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"

	"github.com/ripixel/fitglue-kernel/pkg/kernel/kernelerr"
)

// Digest is the result of hashing one message: hex, standard base64, and
// raw bytes views of the same 32-byte SHA-256 sum.
type Digest struct {
	Hex    string
	Base64 string
	Bytes  [32]byte
}

// SHA256 computes the FIPS-180-4 SHA-256 digest of data.
func SHA256(data []byte) Digest {
	sum := sha256.Sum256(data)
	return Digest{
		Hex:    hex.EncodeToString(sum[:]),
		Base64: base64.StdEncoding.EncodeToString(sum[:]),
		Bytes:  sum,
	}
}

// SHA256Batch hashes each element of data independently, preserving
// input order.
func SHA256Batch(data [][]byte) []Digest {
	out := make([]Digest, len(data))
	for i, d := range data {
		out[i] = SHA256(d)
	}
	return out
}

// HMACSHA256 computes the RFC 2104 HMAC-SHA-256 of message under key; a
// key longer than the 64-byte block size is pre-hashed by the hmac
// package per the RFC.
func HMACSHA256(key, message []byte) []byte {
	mac := hmac.New(sha256.New, key)
	mac.Write(message)
	return mac.Sum(nil)
}

// HMACVerify reports whether mac is the correct HMAC-SHA-256 of message
// under key, comparing in constant time.
func HMACVerify(key, message, mac []byte) bool {
	expected := HMACSHA256(key, message)
	return hmac.Equal(expected, mac)
}

// KeyPair is an Ed25519 key pair plus a fingerprint of the public half.
type KeyPair struct {
	PublicKeyB64  string
	PrivateKeyB64 string
	Fingerprint   string
}

// GenerateKeyPair draws a 32-byte CSPRNG seed and derives an Ed25519 key
// pair from it, standard-base64-encoding both halves.
func GenerateKeyPair() (KeyPair, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return KeyPair{}, kernelerr.Wrap(err, kernelerr.CryptoError, "failed to generate Ed25519 key pair")
	}

	fingerprint := sha256.Sum256(pub)
	return KeyPair{
		PublicKeyB64:  base64.StdEncoding.EncodeToString(pub),
		PrivateKeyB64: base64.StdEncoding.EncodeToString(priv),
		Fingerprint:   hex.EncodeToString(fingerprint[:]),
	}, nil
}

// SignMessage signs message with the base64-encoded Ed25519 private key,
// returning the 64-byte signature. Both the 32-byte seed form and the
// 64-byte expanded form are accepted.
func SignMessage(privateKeyB64 string, message []byte) ([]byte, error) {
	priv, err := base64.StdEncoding.DecodeString(privateKeyB64)
	if err != nil {
		return nil, kernelerr.Wrap(err, kernelerr.DecodeError, "invalid base64 private key")
	}
	switch len(priv) {
	case ed25519.SeedSize:
		return ed25519.Sign(ed25519.NewKeyFromSeed(priv), message), nil
	case ed25519.PrivateKeySize:
		return ed25519.Sign(ed25519.PrivateKey(priv), message), nil
	default:
		return nil, kernelerr.Newf(kernelerr.CryptoError, "private key has %d bytes, want %d or %d", len(priv), ed25519.SeedSize, ed25519.PrivateKeySize)
	}
}

// VerifyResult is the outcome of VerifySignature: Valid is true only when
// decoding succeeds and the signature checks out. Error never echoes any
// secret material.
type VerifyResult struct {
	Valid bool
	Error string
}

// VerifySignature checks sig against message under the base64-encoded
// Ed25519 public key.
func VerifySignature(publicKeyB64 string, message, sig []byte) VerifyResult {
	pub, err := base64.StdEncoding.DecodeString(publicKeyB64)
	if err != nil {
		return VerifyResult{Valid: false, Error: "invalid base64 public key"}
	}
	if len(pub) != ed25519.PublicKeySize {
		return VerifyResult{Valid: false, Error: "public key has wrong length"}
	}
	if len(sig) != ed25519.SignatureSize {
		return VerifyResult{Valid: false, Error: "signature has wrong length"}
	}
	if !ed25519.Verify(ed25519.PublicKey(pub), message, sig) {
		return VerifyResult{Valid: false, Error: "signature verification failed"}
	}
	return VerifyResult{Valid: true}
}

// Base64Encode/Base64Decode use the standard (+/) alphabet with padding.
func Base64Encode(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// Base64Decode returns an empty slice on malformed input rather than an
// error, per the ABI's "infallible encoding helpers" contract.
func Base64Decode(s string) []byte {
	out, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return []byte{}
	}
	return out
}

// Base64URLEncode/Base64URLDecode use the URL-safe (-_) alphabet without
// padding.
func Base64URLEncode(data []byte) string {
	return base64.RawURLEncoding.EncodeToString(data)
}

func Base64URLDecode(s string) []byte {
	out, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return []byte{}
	}
	return out
}

// HexEncode lowercase-encodes data.
func HexEncode(data []byte) string {
	return hex.EncodeToString(data)
}

// HexDecode accepts mixed-case input; an odd length or any non-hex
// character yields an empty slice.
func HexDecode(s string) []byte {
	if len(s)%2 != 0 {
		return []byte{}
	}
	out, err := hex.DecodeString(s)
	if err != nil {
		return []byte{}
	}
	return out
}

// ConstantTimeCompare runs in time linear in max(len(a), len(b)),
// returning false on a length mismatch without short-circuiting the
// common-length portion of the scan.
func ConstantTimeCompare(a, b []byte) bool {
	if len(a) != len(b) {
		longer := a
		if len(b) > len(a) {
			longer = b
		}
		subtle.ConstantTimeCompare(longer, longer)
		return false
	}
	return subtle.ConstantTimeCompare(a, b) == 1
}

// RandomBytes draws n bytes from the OS CSPRNG. It fails loudly rather
// than falling back to a non-cryptographic source.
func RandomBytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, kernelerr.New(kernelerr.InvalidInput, "n must be non-negative")
	}
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return nil, kernelerr.Wrap(err, kernelerr.CryptoError, "OS entropy source unavailable")
	}
	return buf, nil
}

// DeriveKeySimple implements an intentionally weak iterated KDF:
// k0 = sha256(password || salt), k(i+1) = sha256(k_i || salt), returning
// k_iterations as lowercase hex. Documented as weaker than PBKDF2/Argon2
// and suitable only for internal low-stakes derivations; see
// DeriveKeyPBKDF2 for anything that needs real resistance to brute force.
func DeriveKeySimple(password, salt []byte, iterations int) (string, error) {
	if iterations < 1 {
		return "", kernelerr.New(kernelerr.InvalidInput, "iterations must be >= 1")
	}

	k := sha256.Sum256(append(append([]byte{}, password...), salt...))
	for i := 0; i < iterations; i++ {
		k = sha256.Sum256(append(append([]byte{}, k[:]...), salt...))
	}
	return hex.EncodeToString(k[:]), nil
}
