package crypto

import (
	"fmt"

	"golang.org/x/crypto/curve25519"
	"golang.org/x/crypto/salsa20/salsa"

	"linkbox/internal/domain"
	"linkbox/internal/util/memzero"
)

// SharedKeySize is the size of a derived session key.
const SharedKeySize = 32

// SharedKey is the symmetric key both sides derive from the key exchange.
// It is directly usable by Encrypt and Decrypt.
type SharedKey [SharedKeySize]byte

// Wipe zeroes the key in place.
func (k *SharedKey) Wipe() {
	if k != nil {
		memzero.Zero(k[:])
	}
}

// Fingerprint returns a short fingerprint of the key, for tests and
// diagnostics only. It never reveals the key itself.
func (k *SharedKey) Fingerprint() domain.Fingerprint {
	return domain.Fingerprint(Fingerprint(k[:]))
}

// DeriveSharedKey computes X25519(secret, peer) and runs it through HSalsa20
// with a zero nonce, which is the precomputation step of NaCl box.
//
// Peers whose public key is a low-order point (DH output all zero) are
// rejected with domain.ErrInvalidPeerKey. A nil secret yields domain.ErrNoActiveKeyPair.
func DeriveSharedKey(secret *domain.X25519Private, peer domain.X25519Public) (*SharedKey, error) {
	if secret == nil {
		return nil, domain.ErrNoActiveKeyPair
	}
	dh, err := curve25519.X25519(secret[:], peer[:])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidPeerKey, err)
	}
	defer memzero.Zero(dh)

	var in [32]byte
	copy(in[:], dh)
	defer memzero.Zero(in[:])

	var zeros [16]byte
	out := new(SharedKey)
	salsa.HSalsa20((*[32]byte)(out), &zeros, &in, &salsa.Sigma)
	return out, nil
}
