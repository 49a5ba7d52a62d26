package domain

import "errors"

var (
	// ErrAlreadyConnecting is returned when a connect is started while one is pending.
	ErrAlreadyConnecting = errors.New("connect already in progress")
	// ErrAlreadyConnected is returned when a connect is started on an established session.
	ErrAlreadyConnected = errors.New("session already connected")
	// ErrNotConnected is returned when an operation needs an established session.
	ErrNotConnected = errors.New("session not connected")
	// ErrNoActiveKeyPair is returned when a wallet response arrives with no pending connect.
	ErrNoActiveKeyPair = errors.New("no active key pair for wallet response")
	// ErrStaleApproval is returned when an approval names a different connect attempt.
	ErrStaleApproval = errors.New("approval does not match pending connect attempt")

	// ErrInvalidPeerKey is returned for malformed or low-order peer public keys.
	ErrInvalidPeerKey = errors.New("invalid peer public key")
	// ErrAuthenticationFailed is returned when a ciphertext does not verify.
	ErrAuthenticationFailed = errors.New("message authentication failed")
	// ErrEntropyUnavailable is returned when the random source fails.
	ErrEntropyUnavailable = errors.New("entropy source unavailable")

	// ErrMissingResponseData is returned when an approved response lacks usable data.
	ErrMissingResponseData = errors.New("missing data in wallet response")
	// ErrDecodeFailure is returned for malformed wire records.
	ErrDecodeFailure = errors.New("malformed wire record")
)
