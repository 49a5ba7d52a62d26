package types

// OutboundMessage is a request sent to the peer wallet.
type OutboundMessage interface {
	// Endpoint is the wallet endpoint the message is addressed to.
	Endpoint() Endpoint
}

// ConnectRequest asks the wallet to approve a new session.
type ConnectRequest struct {
	AppInfo                 AppInfo `json:"appInfo"`
	RedirectLink            string  `json:"redirectLink"`
	DappEncryptionPublicKey string  `json:"dappEncryptionPublicKey"`
}

// Endpoint implements OutboundMessage.
func (ConnectRequest) Endpoint() Endpoint { return EndpointConnect }

// DisconnectRequest tells the wallet to forget the session identified by the
// requester's public key.
type DisconnectRequest struct {
	AppInfo                 AppInfo `json:"appInfo"`
	RedirectLink            string  `json:"redirectLink"`
	DappEncryptionPublicKey string  `json:"dappEncryptionPublicKey"`
}

// Endpoint implements OutboundMessage.
func (DisconnectRequest) Endpoint() Endpoint { return EndpointDisconnect }

// SignAndSubmitRequest carries an encrypted payload for the wallet to sign and
// submit. Payload and Nonce are lowercase hex.
type SignAndSubmitRequest struct {
	AppInfo                 AppInfo `json:"appInfo"`
	RedirectLink            string  `json:"redirectLink"`
	DappEncryptionPublicKey string  `json:"dappEncryptionPublicKey"`
	Payload                 string  `json:"payload"`
	Nonce                   string  `json:"nonce"`
}

// Endpoint implements OutboundMessage.
func (SignAndSubmitRequest) Endpoint() Endpoint { return EndpointSignAndSubmit }

// ConnectionApproval is the decoded data of an approved connect response.
type ConnectionApproval struct {
	PeerPublicKey X25519Public
	// Attempt is the attempt id echoed back through the redirect link, if any.
	Attempt AttemptID
}
