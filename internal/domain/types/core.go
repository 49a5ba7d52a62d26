package types

// AppInfo identifies the requester to the peer wallet so it can display
// provenance. It carries no secret material.
type AppInfo struct {
	Domain string `json:"domain" koanf:"domain"`
	Name   string `json:"name" koanf:"name"`
}

// Fingerprint is a short identifier for public keys presented to users.
type Fingerprint string

// String returns the string form of the fingerprint.
func (f Fingerprint) String() string { return string(f) }

// AttemptID identifies one connect attempt.
type AttemptID string

// String returns the string form of the attempt identifier.
func (id AttemptID) String() string { return string(id) }

// Endpoint is a path segment under a link base, e.g. "connect".
type Endpoint string

// String returns the string form of the endpoint.
func (e Endpoint) String() string { return string(e) }

// Endpoints used on both sides of the protocol.
const (
	EndpointConnect       Endpoint = "connect"
	EndpointDisconnect    Endpoint = "disconnect"
	EndpointSignAndSubmit Endpoint = "signAndSubmit"
	EndpointResponse      Endpoint = "response"
)
