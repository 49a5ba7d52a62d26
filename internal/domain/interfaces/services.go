package interfaces

import (
	"context"

	domaintypes "linkbox/internal/domain/types"
)

// ConnectionResponder receives the wallet's answer to a connect request.
type ConnectionResponder interface {
	OnConnectionApproval(ctx context.Context, approval domaintypes.ConnectionApproval) error
	OnConnectionRejection(ctx context.Context) error
}

// SessionService drives the requester side of the protocol.
type SessionService interface {
	ConnectionResponder

	InitiateConnect(ctx context.Context) error
	Disconnect(ctx context.Context) error
	SignAndSubmit(ctx context.Context, payload []byte) error

	State() domaintypes.SessionState
	Status() domaintypes.SessionStatus
	Teardown()
}
