// Package codec converts protocol messages to and from the single opaque
// string a deep-link query parameter can carry.
//
// # Wire format
//
// A message is a JSON record with fixed field names per message kind. Binary
// values (public keys, ciphertext, nonces) are rendered as lowercase hex
// before serialisation, and the whole record is then base64 encoded so it
// survives OS-level URL parsing:
//
//	data = base64(JSON{appInfo, redirectLink, dappEncryptionPublicKey[, payload, nonce]})
//
// Decoding is all-or-nothing: malformed base64, malformed JSON, wrong field
// types and missing fields all return an error wrapping
// domain.ErrDecodeFailure together with a zero value.
package codec
