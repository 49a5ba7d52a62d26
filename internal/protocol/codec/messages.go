package codec

import (
	"fmt"

	"linkbox/internal/domain"
)

// DecodeConnect decodes a connect request record.
func DecodeConnect(s string) (domain.ConnectRequest, error) {
	var m domain.ConnectRequest
	if err := decodeRecord(s, &m, true); err != nil {
		return domain.ConnectRequest{}, err
	}
	if err := validateCommon(m.AppInfo, m.RedirectLink, m.DappEncryptionPublicKey); err != nil {
		return domain.ConnectRequest{}, err
	}
	return m, nil
}

// DecodeDisconnect decodes a disconnect request record.
func DecodeDisconnect(s string) (domain.DisconnectRequest, error) {
	var m domain.DisconnectRequest
	if err := decodeRecord(s, &m, true); err != nil {
		return domain.DisconnectRequest{}, err
	}
	if err := validateCommon(m.AppInfo, m.RedirectLink, m.DappEncryptionPublicKey); err != nil {
		return domain.DisconnectRequest{}, err
	}
	return m, nil
}

// DecodeSignAndSubmit decodes a sign-and-submit request record.
func DecodeSignAndSubmit(s string) (domain.SignAndSubmitRequest, error) {
	var m domain.SignAndSubmitRequest
	if err := decodeRecord(s, &m, true); err != nil {
		return domain.SignAndSubmitRequest{}, err
	}
	if err := validateSignAndSubmit(m); err != nil {
		return domain.SignAndSubmitRequest{}, err
	}
	return m, nil
}

// Decode decodes a record addressed to endpoint ep.
func Decode(ep domain.Endpoint, s string) (domain.OutboundMessage, error) {
	switch ep {
	case domain.EndpointConnect:
		return DecodeConnect(s)
	case domain.EndpointDisconnect:
		return DecodeDisconnect(s)
	case domain.EndpointSignAndSubmit:
		return DecodeSignAndSubmit(s)
	default:
		return nil, fmt.Errorf("%w: unknown endpoint %q", domain.ErrDecodeFailure, ep)
	}
}

// approvalRecord is the data of an approved connect response.
type approvalRecord struct {
	PeerPublicKey *string `json:"petraPublicEncryptedKey"`
}

// DecodeApproval decodes the data parameter of an approved connect response
// and returns the wallet's public key.
func DecodeApproval(s string) (domain.X25519Public, error) {
	var rec approvalRecord
	if err := decodeRecord(s, &rec, false); err != nil {
		return domain.X25519Public{}, err
	}
	if rec.PeerPublicKey == nil {
		return domain.X25519Public{}, fmt.Errorf("%w: petraPublicEncryptedKey missing", domain.ErrDecodeFailure)
	}
	return ParsePublicKeyHex(*rec.PeerPublicKey)
}

// EncodeApproval builds the data parameter a wallet sends back on approval.
// The key is written with a 0x prefix.
func EncodeApproval(peer domain.X25519Public) (string, error) {
	key := "0x" + EncodeHex(peer[:])
	return encodeJSON(approvalRecord{PeerPublicKey: &key})
}

// validate applies the checks of the matching decoder, so that every
// record Encode accepts decodes again.
func validate(msg domain.OutboundMessage) error {
	switch m := msg.(type) {
	case domain.ConnectRequest:
		return validateCommon(m.AppInfo, m.RedirectLink, m.DappEncryptionPublicKey)
	case *domain.ConnectRequest:
		return validateCommon(m.AppInfo, m.RedirectLink, m.DappEncryptionPublicKey)
	case domain.DisconnectRequest:
		return validateCommon(m.AppInfo, m.RedirectLink, m.DappEncryptionPublicKey)
	case *domain.DisconnectRequest:
		return validateCommon(m.AppInfo, m.RedirectLink, m.DappEncryptionPublicKey)
	case domain.SignAndSubmitRequest:
		return validateSignAndSubmit(m)
	case *domain.SignAndSubmitRequest:
		return validateSignAndSubmit(*m)
	default:
		return fmt.Errorf("%w: unsupported message %T", domain.ErrDecodeFailure, msg)
	}
}

func validateSignAndSubmit(m domain.SignAndSubmitRequest) error {
	if err := validateCommon(m.AppInfo, m.RedirectLink, m.DappEncryptionPublicKey); err != nil {
		return err
	}
	if _, err := DecodeHex(m.Payload); err != nil || m.Payload == "" {
		return fmt.Errorf("%w: payload is not hex", domain.ErrDecodeFailure)
	}
	_, err := ParseNonceHex(m.Nonce)
	return err
}

func validateCommon(app domain.AppInfo, redirect, pubHex string) error {
	if app.Domain == "" || app.Name == "" {
		return fmt.Errorf("%w: appInfo incomplete", domain.ErrDecodeFailure)
	}
	if redirect == "" {
		return fmt.Errorf("%w: redirectLink missing", domain.ErrDecodeFailure)
	}
	if _, err := ParsePublicKeyHex(pubHex); err != nil {
		return fmt.Errorf("%w: dappEncryptionPublicKey: %v", domain.ErrDecodeFailure, err)
	}
	return nil
}
