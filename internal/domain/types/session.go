package types

// SessionState is the position of the session in its lifecycle.
type SessionState int

const (
	StateDisconnected SessionState = iota
	StateConnecting
	StateConnected
)

// String returns a lowercase name for the state.
func (s SessionState) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	default:
		return "unknown"
	}
}

// SessionStatus is a public snapshot of a session, safe to log or display.
type SessionStatus struct {
	State               SessionState `json:"state"`
	AttemptID           AttemptID    `json:"attempt_id,omitempty"`
	LocalKeyFingerprint Fingerprint  `json:"local_key,omitempty"`
	PeerKeyFingerprint  Fingerprint  `json:"peer_key,omitempty"`
}
