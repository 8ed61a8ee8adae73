package abi

import "github.com/ripixel/fitglue-kernel/pkg/kernel/crypto"

var keyPairs = NewRegistry[crypto.KeyPair]()

// GenerateKeyPair generates an Ed25519 key pair and registers it under a
// fresh handle so the raw key material never has to cross the ABI
// boundary as a marshalled struct.
func GenerateKeyPair() (Handle, error) {
	kp, err := crypto.GenerateKeyPair()
	if err != nil {
		return Handle{}, err
	}
	return keyPairs.New(kp), nil
}

// KeyPairPublicKey returns the base64-encoded public half of h.
func KeyPairPublicKey(h Handle) (string, error) {
	kp, ok := keyPairs.Get(h)
	if !ok {
		return "", ErrUnknownHandle
	}
	return kp.PublicKeyB64, nil
}

// KeyPairFingerprint returns the hex SHA-256 fingerprint of h's public
// key.
func KeyPairFingerprint(h Handle) (string, error) {
	kp, ok := keyPairs.Get(h)
	if !ok {
		return "", ErrUnknownHandle
	}
	return kp.Fingerprint, nil
}

// KeyPairSign signs message with the private key behind h. The private
// key itself is never returned to the caller.
func KeyPairSign(h Handle, message []byte) ([]byte, error) {
	kp, ok := keyPairs.Get(h)
	if !ok {
		return nil, ErrUnknownHandle
	}
	return crypto.SignMessage(kp.PrivateKeyB64, message)
}

// FreeKeyPair releases the key pair registered under *h and zeroes the
// handle.
func FreeKeyPair(h *Handle) {
	keyPairs.Free(h)
}
