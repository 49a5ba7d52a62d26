package domain

import (
	interfaces "linkbox/internal/domain/interfaces"
	types "linkbox/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	X25519Public         = types.X25519Public
	X25519Private        = types.X25519Private
	Nonce                = types.Nonce
	AppInfo              = types.AppInfo
	Fingerprint          = types.Fingerprint
	AttemptID            = types.AttemptID
	Endpoint             = types.Endpoint
	OutboundMessage      = types.OutboundMessage
	ConnectRequest       = types.ConnectRequest
	DisconnectRequest    = types.DisconnectRequest
	SignAndSubmitRequest = types.SignAndSubmitRequest
	ConnectionApproval   = types.ConnectionApproval
	SessionState         = types.SessionState
	SessionStatus        = types.SessionStatus
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	ConnectionResponder = interfaces.ConnectionResponder
	SessionService      = interfaces.SessionService
	LinkOpener          = interfaces.LinkOpener
	LinkSink            = interfaces.LinkSink
	Inbox               = interfaces.Inbox
)

// Re-exported constants.
const (
	EndpointConnect       = types.EndpointConnect
	EndpointDisconnect    = types.EndpointDisconnect
	EndpointSignAndSubmit = types.EndpointSignAndSubmit
	EndpointResponse      = types.EndpointResponse

	StateDisconnected = types.StateDisconnected
	StateConnecting   = types.StateConnecting
	StateConnected    = types.StateConnected
)
