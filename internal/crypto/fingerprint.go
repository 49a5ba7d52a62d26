package crypto

import (
	"crypto/sha256"
	"encoding/hex"
)

// Fingerprint returns the first 10 bytes of SHA-256(key) in hex. It names
// session public keys and derived shared keys in logs and status output,
// so both sides of a session can compare keys without printing them.
func Fingerprint(key []byte) string {
	sum := sha256.Sum256(key)
	return hex.EncodeToString(sum[:10])
}
