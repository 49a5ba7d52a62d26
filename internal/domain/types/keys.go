package types

// X25519Public is a Curve25519 public key, as sent on the wire.
type X25519Public [32]byte

// X25519Private is a Curve25519 secret scalar. Only the crypto package
// holds one, behind a KeyPair, and zeroes it when the session ends.
type X25519Private [32]byte

// Nonce is the 24-byte single-use value mixed into each payload encryption.
type Nonce [24]byte
