package codec

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"linkbox/internal/domain"
)

// Encode serialises msg into a URL-safe opaque string. Records the
// decoders would reject fail with an error wrapping domain.ErrDecodeFailure.
func Encode(msg domain.OutboundMessage) (string, error) {
	if msg == nil {
		return "", errors.New("encode: nil message")
	}
	if err := validate(msg); err != nil {
		return "", fmt.Errorf("encode %s: %w", msg.Endpoint(), err)
	}
	raw, err := json.Marshal(msg)
	if err != nil {
		return "", fmt.Errorf("encode %s: %w", msg.Endpoint(), err)
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

// DecodeRaw reverses the transport transform and returns the JSON record
// without interpreting it.
func DecodeRaw(s string) (json.RawMessage, error) {
	raw, err := decodeBase64(s)
	if err != nil {
		return nil, err
	}
	if !json.Valid(raw) {
		return nil, fmt.Errorf("%w: invalid JSON record", domain.ErrDecodeFailure)
	}
	return json.RawMessage(raw), nil
}

// decodeRecord decodes s into out. With strict set, unknown fields are
// rejected. out must be a fresh value: callers discard it on error.
func decodeRecord(s string, out any, strict bool) error {
	raw, err := decodeBase64(s)
	if err != nil {
		return err
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	if strict {
		dec.DisallowUnknownFields()
	}
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrDecodeFailure, err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: trailing data after record", domain.ErrDecodeFailure)
	}
	return nil
}

var encodings = []*base64.Encoding{
	base64.StdEncoding,
	base64.RawStdEncoding,
	base64.URLEncoding,
	base64.RawURLEncoding,
}

// decodeBase64 accepts standard and URL-safe alphabets, with or without
// padding. A '+' that arrived unescaped in a query string has been turned
// into a space by query parsing, so spaces are mapped back first.
func decodeBase64(s string) ([]byte, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), " ", "+")
	if s == "" {
		return nil, fmt.Errorf("%w: empty record", domain.ErrDecodeFailure)
	}
	for _, enc := range encodings {
		if b, err := enc.DecodeString(s); err == nil {
			return b, nil
		}
	}
	return nil, fmt.Errorf("%w: invalid base64", domain.ErrDecodeFailure)
}
