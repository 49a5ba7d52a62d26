package crypto

import (
	"fmt"
	"io"

	"golang.org/x/crypto/nacl/box"

	"linkbox/internal/domain"
)

// NonceSize is the XSalsa20 nonce length.
const NonceSize = 24

// Overhead is the number of bytes Encrypt adds to a plaintext.
const Overhead = box.Overhead

// Encrypt seals plaintext under key with XSalsa20-Poly1305.
//
// The nonce is drawn from rand on every call and returned alongside the
// ciphertext; callers never supply one.
func Encrypt(rand io.Reader, key *SharedKey, plaintext []byte) ([]byte, domain.Nonce, error) {
	var nonce domain.Nonce
	if _, err := io.ReadFull(rand, nonce[:]); err != nil {
		return nil, domain.Nonce{}, fmt.Errorf("%w: nonce: %v", domain.ErrEntropyUnavailable, err)
	}
	n := [NonceSize]byte(nonce)
	ct := box.SealAfterPrecomputation(nil, plaintext, &n, (*[32]byte)(key))
	return ct, nonce, nil
}

// Decrypt opens a ciphertext produced by Encrypt. Any tampering or a wrong key
// yields domain.ErrAuthenticationFailed and no plaintext.
func Decrypt(key *SharedKey, ciphertext []byte, nonce domain.Nonce) ([]byte, error) {
	n := [NonceSize]byte(nonce)
	pt, ok := box.OpenAfterPrecomputation(nil, ciphertext, &n, (*[32]byte)(key))
	if !ok {
		return nil, domain.ErrAuthenticationFailed
	}
	return pt, nil
}
