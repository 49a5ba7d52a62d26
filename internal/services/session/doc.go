// Package session runs the requester side of the deep-link protocol.
//
// A Service owns the single live session of the process: the ephemeral key
// pair, the wallet's public key and the derived shared key. It moves through
//
//	disconnected -> connecting -> connected -> disconnected
//
// and rejects every event that is not valid in the current state instead of
// mutating its fields out of order. All methods are serialised internally.
package session
