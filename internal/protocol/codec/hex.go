package codec

import (
	"encoding/hex"
	"fmt"
	"strings"

	"linkbox/internal/domain"
)

// EncodeHex renders b as lowercase hex.
func EncodeHex(b []byte) string { return hex.EncodeToString(b) }

// DecodeHex parses hex with an optional 0x prefix.
func DecodeHex(s string) ([]byte, error) {
	return hex.DecodeString(trim0x(s))
}

// ParsePublicKeyHex parses a 32-byte public key from hex, with or without a
// 0x prefix. Anything else yields domain.ErrInvalidPeerKey.
func ParsePublicKeyHex(s string) (domain.X25519Public, error) {
	b, err := DecodeHex(s)
	if err != nil {
		return domain.X25519Public{}, fmt.Errorf("%w: %v", domain.ErrInvalidPeerKey, err)
	}
	if len(b) != len(domain.X25519Public{}) {
		return domain.X25519Public{}, fmt.Errorf("%w: want 32 bytes, got %d", domain.ErrInvalidPeerKey, len(b))
	}
	return domain.X25519Public(b), nil
}

// ParseNonceHex parses a 24-byte nonce from hex.
func ParseNonceHex(s string) (domain.Nonce, error) {
	b, err := DecodeHex(s)
	if err != nil || len(b) != len(domain.Nonce{}) {
		return domain.Nonce{}, fmt.Errorf("%w: nonce must be 24 hex-encoded bytes", domain.ErrDecodeFailure)
	}
	return domain.Nonce(b), nil
}

func trim0x(s string) string {
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		return s[2:]
	}
	return s
}
