// Package crypto exposes the primitives the deep-link protocol is built on.
//
// Contents
//
//   - Ephemeral Curve25519 key pairs with zeroisation (GenerateKeyPair,
//     KeyPair.Clear)
//   - Shared-key derivation, X25519 followed by HSalsa20 exactly like NaCl
//     box precomputation (DeriveSharedKey)
//   - XSalsa20-Poly1305 payload encryption with per-call random nonces
//     (Encrypt, Decrypt)
//   - Short fingerprints for display/logging (Fingerprint)
//
// # Notes
//
// The construction is byte-compatible with NaCl crypto_box_beforenm/afternm,
// which is what the wallet side uses. Secrets never leave this package except
// as a SharedKey, which the session owns and wipes on disconnect.
package crypto
