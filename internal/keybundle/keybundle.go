// Package keybundle codes the shareable key-bundle token. The token wraps a
// small JSON document; only the cipher collaborator ever interprets the key,
// and only the wrapper ever sees the kid.
package keybundle

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// TokenPrefix starts every bundle token: XTOC-KEY.<base64(json)>.
const TokenPrefix = "XTOC-KEY."

// BundleVersion is the only understood bundle document version.
const BundleVersion = 1

var (
	ErrBadToken      = errors.New("keybundle: not a key bundle token")
	ErrInvalidBundle = errors.New("keybundle: invalid bundle")
)

// Bundle is the key-bundle document.
type Bundle struct {
	Version int    `json:"v"`
	TeamID  string `json:"teamId"`
	KID     string `json:"kid"`
	KeyB64  string `json:"keyB64Url"`
}

// New builds a bundle around raw key material.
func New(teamID, kid string, key []byte) Bundle {
	return Bundle{
		Version: BundleVersion,
		TeamID:  teamID,
		KID:     kid,
		KeyB64:  base64.RawURLEncoding.EncodeToString(key),
	}
}

func (b Bundle) Validate() error {
	if b.Version != BundleVersion {
		return fmt.Errorf("%w: unsupported version %d", ErrInvalidBundle, b.Version)
	}
	if strings.TrimSpace(b.TeamID) == "" {
		return fmt.Errorf("%w: missing teamId", ErrInvalidBundle)
	}
	if strings.TrimSpace(b.KID) == "" || strings.Contains(b.KID, ".") {
		return fmt.Errorf("%w: bad kid", ErrInvalidBundle)
	}
	key, err := base64.RawURLEncoding.DecodeString(b.KeyB64)
	if err != nil {
		return fmt.Errorf("%w: key is not base64url", ErrInvalidBundle)
	}
	if len(key) != 32 {
		return fmt.Errorf("%w: key must be 32 bytes, got %d", ErrInvalidBundle, len(key))
	}
	return nil
}

// Key returns the raw key material.
func (b Bundle) Key() ([]byte, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return base64.RawURLEncoding.DecodeString(b.KeyB64)
}

// Format renders b as a shareable token.
func Format(b Bundle) (string, error) {
	if err := b.Validate(); err != nil {
		return "", err
	}
	doc, err := json.Marshal(b)
	if err != nil {
		return "", err
	}
	return TokenPrefix + base64.StdEncoding.EncodeToString(doc), nil
}

// Parse reads a token back into a validated bundle.
func Parse(token string) (Bundle, error) {
	token = strings.TrimSpace(token)
	if !strings.HasPrefix(token, TokenPrefix) {
		return Bundle{}, ErrBadToken
	}
	doc, err := base64.StdEncoding.DecodeString(token[len(TokenPrefix):])
	if err != nil {
		return Bundle{}, ErrBadToken
	}
	var b Bundle
	if err := json.Unmarshal(doc, &b); err != nil {
		return Bundle{}, ErrBadToken
	}
	if err := b.Validate(); err != nil {
		return Bundle{}, err
	}
	return b, nil
}
