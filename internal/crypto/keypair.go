package crypto

import (
	"fmt"
	"io"

	"golang.org/x/crypto/nacl/box"

	"linkbox/internal/domain"
	"linkbox/internal/util/memzero"
)

// KeyPair is an ephemeral Curve25519 key pair owned by a single session.
//
// The secret half is unexported: only DeriveSharedKey reads it, and Clear
// destroys it. A cleared KeyPair keeps its public half for correlation but
// can no longer derive anything.
type KeyPair struct {
	public domain.X25519Public
	secret *domain.X25519Private
}

// GenerateKeyPair returns a fresh key pair drawn from rand. A failing reader
// yields an error wrapping domain.ErrEntropyUnavailable.
func GenerateKeyPair(rand io.Reader) (*KeyPair, error) {
	pub, priv, err := box.GenerateKey(rand)
	if err != nil {
		return nil, fmt.Errorf("%w: generate key pair: %v", domain.ErrEntropyUnavailable, err)
	}
	return &KeyPair{public: domain.X25519Public(*pub), secret: (*domain.X25519Private)(priv)}, nil
}

// Public returns the public half.
func (kp *KeyPair) Public() domain.X25519Public { return kp.public }

// Fingerprint returns a short fingerprint of the public half.
func (kp *KeyPair) Fingerprint() domain.Fingerprint {
	return domain.Fingerprint(Fingerprint(kp.public[:]))
}

// Cleared reports whether the secret half has been destroyed.
func (kp *KeyPair) Cleared() bool { return kp == nil || kp.secret == nil }

// DeriveSharedKey combines the secret half with peer.
func (kp *KeyPair) DeriveSharedKey(peer domain.X25519Public) (*SharedKey, error) {
	if kp.Cleared() {
		return nil, domain.ErrNoActiveKeyPair
	}
	return DeriveSharedKey(kp.secret, peer)
}

// Clear zeroes the secret half and drops it. It is safe to call repeatedly.
func (kp *KeyPair) Clear() {
	if kp == nil || kp.secret == nil {
		return
	}
	memzero.Zero(kp.secret[:])
	kp.secret = nil
}
