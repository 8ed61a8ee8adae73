package crypto

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/ripixel/fitglue-kernel/pkg/kernel/kernelerr"
)

func TestSHA256_KnownVector(t *testing.T) {
	d := SHA256([]byte("abc"))
	want := "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"
	if d.Hex != want {
		t.Errorf("SHA256(\"abc\").Hex = %s, want %s", d.Hex, want)
	}
	if len(d.Hex) != 64 {
		t.Errorf("hex length = %d, want 64", len(d.Hex))
	}
	if len(d.Base64) != 44 {
		t.Errorf("base64 length = %d, want 44", len(d.Base64))
	}
}

func TestSHA256Batch_PreservesOrder(t *testing.T) {
	digests := SHA256Batch([][]byte{[]byte("a"), []byte("b"), []byte("c")})
	if len(digests) != 3 {
		t.Fatalf("expected 3 digests, got %d", len(digests))
	}
	single := SHA256([]byte("b"))
	if digests[1].Hex != single.Hex {
		t.Errorf("batch digest[1] = %s, want %s", digests[1].Hex, single.Hex)
	}
}

func TestHMACSHA256_MatchesManualComputation(t *testing.T) {
	key := []byte("secret-key")
	msg := []byte("message body")

	mac := HMACSHA256(key, msg)
	if len(mac) != sha256.Size {
		t.Errorf("mac length = %d, want %d", len(mac), sha256.Size)
	}
	if !HMACVerify(key, msg, mac) {
		t.Errorf("expected HMACVerify to accept its own mac")
	}
}

func TestHMACVerify_RejectsTamperedMessage(t *testing.T) {
	key := []byte("secret-key")
	mac := HMACSHA256(key, []byte("original"))
	if HMACVerify(key, []byte("tampered"), mac) {
		t.Errorf("expected HMACVerify to reject tampered message")
	}
}

func TestGenerateKeyPair_SignAndVerify(t *testing.T) {
	kp, err := GenerateKeyPair()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if kp.PublicKeyB64 == "" || kp.PrivateKeyB64 == "" || kp.Fingerprint == "" {
		t.Fatalf("expected non-empty key pair fields: %+v", kp)
	}
	if len(kp.Fingerprint) != 64 {
		t.Errorf("fingerprint should be hex sha256 (64 chars), got %d", len(kp.Fingerprint))
	}

	msg := []byte("train legs today")
	sig, err := SignMessage(kp.PrivateKeyB64, msg)
	if err != nil {
		t.Fatalf("unexpected error signing: %v", err)
	}
	if len(sig) != 64 {
		t.Errorf("signature length = %d, want 64", len(sig))
	}

	result := VerifySignature(kp.PublicKeyB64, msg, sig)
	if !result.Valid {
		t.Errorf("expected valid signature, got %+v", result)
	}
}

func TestSignMessage_AcceptsSeedForm(t *testing.T) {
	kp, _ := GenerateKeyPair()

	// The 32-byte seed is the first half of the expanded private key;
	// signing with either form must produce the same signature.
	expanded := Base64Decode(kp.PrivateKeyB64)
	seedB64 := Base64Encode(expanded[:32])

	msg := []byte("same signature either way")
	fromSeed, err := SignMessage(seedB64, msg)
	if err != nil {
		t.Fatalf("unexpected error signing with seed: %v", err)
	}
	fromExpanded, _ := SignMessage(kp.PrivateKeyB64, msg)
	if !bytes.Equal(fromSeed, fromExpanded) {
		t.Errorf("seed and expanded forms produced different signatures")
	}
}

func TestSignMessage_RejectsWrongLength(t *testing.T) {
	_, err := SignMessage(Base64Encode([]byte("too short")), []byte("msg"))
	if kernelerr.GetKind(err) != kernelerr.CryptoError {
		t.Errorf("expected CryptoError, got %v", err)
	}
}

func TestVerifySignature_RejectsTamperedMessage(t *testing.T) {
	kp, _ := GenerateKeyPair()
	sig, _ := SignMessage(kp.PrivateKeyB64, []byte("original"))

	result := VerifySignature(kp.PublicKeyB64, []byte("tampered"), sig)
	if result.Valid {
		t.Errorf("expected invalid for tampered message")
	}
	if result.Error == "" {
		t.Errorf("expected non-empty error explaining failure")
	}
}

func TestVerifySignature_InvalidPublicKey(t *testing.T) {
	result := VerifySignature("not-base64!!!", []byte("msg"), make([]byte, 64))
	if result.Valid {
		t.Errorf("expected invalid for malformed public key")
	}
}

func TestBase64_RoundTrip(t *testing.T) {
	data := []byte("hello fitness world")
	encoded := Base64Encode(data)
	decoded := Base64Decode(encoded)
	if !bytes.Equal(data, decoded) {
		t.Errorf("round trip mismatch: got %s, want %s", decoded, data)
	}
}

func TestBase64Decode_InvalidInputReturnsEmpty(t *testing.T) {
	decoded := Base64Decode("not valid base64!!!")
	if len(decoded) != 0 {
		t.Errorf("expected empty slice for invalid input, got %v", decoded)
	}
}

func TestBase64URL_RoundTrip(t *testing.T) {
	data := []byte{0xff, 0xfe, 0x00, 0x01}
	encoded := Base64URLEncode(data)
	if bytes.ContainsAny([]byte(encoded), "+/=") {
		t.Errorf("URL-safe encoding should not contain +/=, got %s", encoded)
	}
	decoded := Base64URLDecode(encoded)
	if !bytes.Equal(data, decoded) {
		t.Errorf("round trip mismatch: got %v, want %v", decoded, data)
	}
}

func TestHex_RoundTrip(t *testing.T) {
	data := []byte{0xde, 0xad, 0xbe, 0xef}
	encoded := HexEncode(data)
	if encoded != "deadbeef" {
		t.Errorf("HexEncode = %s, want deadbeef", encoded)
	}
	decoded := HexDecode("DEADBEEF")
	if !bytes.Equal(data, decoded) {
		t.Errorf("expected mixed-case decode to succeed: got %v", decoded)
	}
}

func TestHexDecode_OddLengthReturnsEmpty(t *testing.T) {
	decoded := HexDecode("abc")
	if len(decoded) != 0 {
		t.Errorf("expected empty slice for odd-length input, got %v", decoded)
	}
}

func TestConstantTimeCompare(t *testing.T) {
	a := []byte("same-value")
	b := []byte("same-value")
	c := []byte("different")

	if !ConstantTimeCompare(a, b) {
		t.Errorf("expected equal byte slices to compare equal")
	}
	if ConstantTimeCompare(a, c) {
		t.Errorf("expected different byte slices to compare unequal")
	}
	if ConstantTimeCompare(a, []byte("short")) {
		t.Errorf("expected different-length slices to compare unequal")
	}
}

func TestRandomBytes_LengthAndNonDeterminism(t *testing.T) {
	a, err := RandomBytes(32)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(a) != 32 {
		t.Errorf("expected 32 bytes, got %d", len(a))
	}
	b, _ := RandomBytes(32)
	if bytes.Equal(a, b) {
		t.Errorf("two independent draws should not collide")
	}
}

func TestRandomBytes_NegativeN(t *testing.T) {
	_, err := RandomBytes(-1)
	if kernelerr.GetKind(err) != kernelerr.InvalidInput {
		t.Errorf("expected InvalidInput, got %v", err)
	}
}

func TestDeriveKeySimple_OneIteration(t *testing.T) {
	password := []byte("hunter2")
	salt := []byte("pepper")

	k0 := sha256.Sum256(append(append([]byte{}, password...), salt...))
	want := sha256.Sum256(append(append([]byte{}, k0[:]...), salt...))

	got, err := DeriveKeySimple(password, salt, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != hex.EncodeToString(want[:]) {
		t.Errorf("DeriveKeySimple(1) = %s, want %s", got, hex.EncodeToString(want[:]))
	}
}

func TestDeriveKeySimple_Deterministic(t *testing.T) {
	a, _ := DeriveKeySimple([]byte("pw"), []byte("salt"), 1000)
	b, _ := DeriveKeySimple([]byte("pw"), []byte("salt"), 1000)
	if a != b {
		t.Errorf("expected deterministic output for same inputs")
	}
}

func TestDeriveKeySimple_InvalidIterations(t *testing.T) {
	_, err := DeriveKeySimple([]byte("pw"), []byte("salt"), 0)
	if kernelerr.GetKind(err) != kernelerr.InvalidInput {
		t.Errorf("expected InvalidInput, got %v", err)
	}
}

func TestDeriveKeyPBKDF2_DeterministicAndRightLength(t *testing.T) {
	a, err := DeriveKeyPBKDF2([]byte("pw"), []byte("salt"), 10000, 32)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(a) != 32 {
		t.Errorf("expected 32-byte key, got %d", len(a))
	}
	b, _ := DeriveKeyPBKDF2([]byte("pw"), []byte("salt"), 10000, 32)
	if !bytes.Equal(a, b) {
		t.Errorf("expected deterministic output for same inputs")
	}
}

func TestGenerateAPIToken_HasPrefix(t *testing.T) {
	token, err := GenerateAPIToken("sk")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(token) < 4 || token[:3] != "sk_" {
		t.Errorf("expected token prefixed with sk_, got %s", token)
	}
}
