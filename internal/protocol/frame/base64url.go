package frame

import (
	"encoding/base64"
	"errors"
)

var ErrInvalidEncoding = errors.New("frame: invalid base64url payload")

// EncodePayload renders raw bytes in the padding-free URL-safe alphabet.
// The result never contains the '.' wrapper separator.
func EncodePayload(raw []byte) string {
	return base64.RawURLEncoding.EncodeToString(raw)
}

// DecodePayload restores the exact original bytes, rejecting characters
// outside the URL-safe alphabet and padded input.
func DecodePayload(s string) ([]byte, error) {
	raw, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return nil, ErrInvalidEncoding
	}
	return raw, nil
}
