package codec

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
)

// EncodeTransactionPayload frames a wallet transaction the way the wallet
// expects to find it after decryption: the transaction is JSON encoded,
// base64 encoded, and the resulting string is JSON encoded once more.
func EncodeTransactionPayload(tx any) ([]byte, error) {
	inner, err := json.Marshal(tx)
	if err != nil {
		return nil, fmt.Errorf("encode transaction: %w", err)
	}
	return json.Marshal(base64.StdEncoding.EncodeToString(inner))
}

// DecodeTransactionPayload reverses EncodeTransactionPayload into raw JSON.
func DecodeTransactionPayload(b []byte) (json.RawMessage, error) {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("decode transaction: %w", err)
	}
	inner, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("decode transaction: %w", err)
	}
	if !json.Valid(inner) {
		return nil, fmt.Errorf("decode transaction: invalid JSON")
	}
	return json.RawMessage(inner), nil
}
