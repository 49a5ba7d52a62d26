package crypto_test

import (
	"bytes"
	"crypto/rand"
	"errors"
	"testing"

	"golang.org/x/crypto/nacl/box"

	"linkbox/internal/crypto"
	"linkbox/internal/domain"
)

// failingReader simulates an exhausted entropy source.
type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("no entropy") }

// makeKeyPair returns a fresh key pair or fails the test.
func makeKeyPair(t *testing.T) *crypto.KeyPair {
	t.Helper()
	kp, err := crypto.GenerateKeyPair(rand.Reader)
	if err != nil {
		t.Fatalf("GenerateKeyPair: %v", err)
	}
	return kp
}

// sharedPair derives the shared key from both sides.
func sharedPair(t *testing.T) (*crypto.SharedKey, *crypto.SharedKey) {
	t.Helper()
	a, b := makeKeyPair(t), makeKeyPair(t)
	ab, err := a.DeriveSharedKey(b.Public())
	if err != nil {
		t.Fatalf("derive A->B: %v", err)
	}
	ba, err := b.DeriveSharedKey(a.Public())
	if err != nil {
		t.Fatalf("derive B->A: %v", err)
	}
	return ab, ba
}

func TestGenerateKeyPair_Fresh(t *testing.T) {
	a, b := makeKeyPair(t), makeKeyPair(t)
	if a.Public() == b.Public() {
		t.Fatal("two generated key pairs share a public key")
	}
	if a.Cleared() {
		t.Fatal("new key pair reports cleared")
	}
}

func TestGenerateKeyPair_EntropyFailure(t *testing.T) {
	_, err := crypto.GenerateKeyPair(failingReader{})
	if !errors.Is(err, domain.ErrEntropyUnavailable) {
		t.Fatalf("want ErrEntropyUnavailable, got %v", err)
	}
}

func TestKeyPair_ClearDestroysSecret(t *testing.T) {
	a, b := makeKeyPair(t), makeKeyPair(t)
	pub := a.Public()

	a.Clear()
	a.Clear() // idempotent

	if !a.Cleared() {
		t.Fatal("key pair not cleared")
	}
	if a.Public() != pub {
		t.Fatal("public half changed by Clear")
	}
	if _, err := a.DeriveSharedKey(b.Public()); !errors.Is(err, domain.ErrNoActiveKeyPair) {
		t.Fatalf("derive after clear: want ErrNoActiveKeyPair, got %v", err)
	}
}

func TestDeriveSharedKey_NilSecret(t *testing.T) {
	peer := makeKeyPair(t).Public()
	if _, err := crypto.DeriveSharedKey(nil, peer); !errors.Is(err, domain.ErrNoActiveKeyPair) {
		t.Fatalf("want ErrNoActiveKeyPair, got %v", err)
	}
}

func TestDeriveSharedKey_Symmetric(t *testing.T) {
	for i := 0; i < 16; i++ {
		ab, ba := sharedPair(t)
		if *ab != *ba {
			t.Fatalf("iteration %d: shared keys differ", i)
		}
	}
}

func TestDeriveSharedKey_MatchesBoxPrecompute(t *testing.T) {
	peerPub, peerPriv, err := box.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("box.GenerateKey: %v", err)
	}
	ourPub, ourPriv, err := box.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("box.GenerateKey: %v", err)
	}

	got, err := crypto.DeriveSharedKey((*domain.X25519Private)(ourPriv), domain.X25519Public(*peerPub))
	if err != nil {
		t.Fatalf("DeriveSharedKey: %v", err)
	}
	var want [32]byte
	box.Precompute(&want, peerPub, ourPriv)
	if [32]byte(*got) != want {
		t.Fatal("derived key differs from box.Precompute")
	}

	// A box sealed by the peer opens with our derived key.
	var nonce [24]byte
	sealed := box.Seal(nil, []byte("hello"), &nonce, ourPub, peerPriv)
	pt, err := crypto.Decrypt(got, sealed, domain.Nonce(nonce))
	if err != nil {
		t.Fatalf("Decrypt: %v", err)
	}
	if string(pt) != "hello" {
		t.Fatalf("got %q, want %q", pt, "hello")
	}
}

func TestDeriveSharedKey_RejectsLowOrderPoints(t *testing.T) {
	kp := makeKeyPair(t)
	lowOrder := []domain.X25519Public{
		{}, // zero point
		{1},
	}
	for _, p := range lowOrder {
		if _, err := kp.DeriveSharedKey(p); !errors.Is(err, domain.ErrInvalidPeerKey) {
			t.Fatalf("point %x: want ErrInvalidPeerKey, got %v", p[:4], err)
		}
	}
}

func TestEncryptDecrypt_Ping(t *testing.T) {
	secretA, secretB := sharedPair(t)

	ct, nonce, err := crypto.Encrypt(rand.Reader, secretA, []byte("ping"))
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	if len(ct) != len("ping")+crypto.Overhead {
		t.Fatalf("ciphertext length %d", len(ct))
	}
	pt, err := crypto.Decrypt(secretB, ct, nonce)
	if err != nil {
		t.Fatalf("Decrypt: %v", err)
	}
	if string(pt) != "ping" {
		t.Fatalf("got %q, want %q", pt, "ping")
	}
}

func TestEncrypt_NoncesNeverRepeat(t *testing.T) {
	key, _ := sharedPair(t)
	const n = 2000
	seen := make(map[domain.Nonce]struct{}, n)
	for i := 0; i < n; i++ {
		_, nonce, err := crypto.Encrypt(rand.Reader, key, []byte("same plaintext"))
		if err != nil {
			t.Fatalf("Encrypt: %v", err)
		}
		if _, dup := seen[nonce]; dup {
			t.Fatalf("nonce repeated after %d calls", i)
		}
		seen[nonce] = struct{}{}
	}
}

func TestEncrypt_EntropyFailure(t *testing.T) {
	key, _ := sharedPair(t)
	if _, _, err := crypto.Encrypt(failingReader{}, key, []byte("x")); !errors.Is(err, domain.ErrEntropyUnavailable) {
		t.Fatalf("want ErrEntropyUnavailable, got %v", err)
	}
}

func TestDecrypt_TamperDetected(t *testing.T) {
	a, b := sharedPair(t)
	msg := []byte("transfer 10 coins")
	ct, nonce, err := crypto.Encrypt(rand.Reader, a, msg)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}

	for i := 0; i < len(ct)*8; i++ {
		bad := bytes.Clone(ct)
		bad[i/8] ^= 1 << (i % 8)
		if pt, err := crypto.Decrypt(b, bad, nonce); !errors.Is(err, domain.ErrAuthenticationFailed) || pt != nil {
			t.Fatalf("ciphertext bit %d: want ErrAuthenticationFailed, got %v (pt=%q)", i, err, pt)
		}
	}
	for i := 0; i < crypto.NonceSize*8; i++ {
		bad := nonce
		bad[i/8] ^= 1 << (i % 8)
		if pt, err := crypto.Decrypt(b, ct, bad); !errors.Is(err, domain.ErrAuthenticationFailed) || pt != nil {
			t.Fatalf("nonce bit %d: want ErrAuthenticationFailed, got %v (pt=%q)", i, err, pt)
		}
	}
}

func TestDecrypt_WrongKey(t *testing.T) {
	a, _ := sharedPair(t)
	other, _ := sharedPair(t)
	ct, nonce, err := crypto.Encrypt(rand.Reader, a, []byte("secret"))
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	if _, err := crypto.Decrypt(other, ct, nonce); !errors.Is(err, domain.ErrAuthenticationFailed) {
		t.Fatalf("want ErrAuthenticationFailed, got %v", err)
	}
	if _, err := crypto.Decrypt(a, ct[:crypto.Overhead-1], nonce); !errors.Is(err, domain.ErrAuthenticationFailed) {
		t.Fatalf("short ciphertext: want ErrAuthenticationFailed, got %v", err)
	}
}

func TestSharedKey_Wipe(t *testing.T) {
	a, _ := sharedPair(t)
	a.Wipe()
	if *a != (crypto.SharedKey{}) {
		t.Fatal("shared key not zeroed")
	}
}

func TestFingerprint(t *testing.T) {
	a, b := makeKeyPair(t).Public(), makeKeyPair(t).Public()
	fa := crypto.Fingerprint(a[:])
	if len(fa) != 20 {
		t.Fatalf("fingerprint %q: want 20 hex chars", fa)
	}
	if fa != crypto.Fingerprint(a[:]) {
		t.Fatal("fingerprint not deterministic")
	}
	if fa == crypto.Fingerprint(b[:]) {
		t.Fatal("distinct keys share a fingerprint")
	}
}
