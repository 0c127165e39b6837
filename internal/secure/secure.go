// Package secure implements the symmetric cipher collaborator for S-mode
// traffic. Keys are looked up by the wrapper's opaque key id; the protocol
// engine itself never sees key material.
package secure

import (
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"io"
	"sync"

	"golang.org/x/crypto/chacha20poly1305"
)

// KeySize is the symmetric key length in bytes.
const KeySize = chacha20poly1305.KeySize

var (
	ErrUnknownKeyID       = errors.New("secure: unknown key id")
	ErrInvalidKeySize     = errors.New("secure: key must be 32 bytes")
	ErrInvalidKeyID       = errors.New("secure: invalid key id")
	ErrCiphertextTooShort = errors.New("secure: ciphertext shorter than nonce")
)

// NewRandomKey draws a fresh 32-byte key.
func NewRandomKey() ([]byte, error) {
	key := make([]byte, KeySize)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return nil, err
	}
	return key, nil
}

// Keyring maps key ids to symmetric keys and implements protocol.Cipher.
// Safe for concurrent use.
type Keyring struct {
	mu   sync.RWMutex
	keys map[string][]byte
}

func NewKeyring() *Keyring {
	return &Keyring{keys: make(map[string][]byte)}
}

// Add registers a key under kid. Key ids travel as wrapper tokens, so the
// '.' separator is forbidden.
func (r *Keyring) Add(kid string, key []byte) error {
	if kid == "" || containsDot(kid) {
		return ErrInvalidKeyID
	}
	if len(key) != KeySize {
		return ErrInvalidKeySize
	}
	cp := make([]byte, KeySize)
	copy(cp, key)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.keys[kid] = cp
	return nil
}

// KIDs lists the registered key ids.
func (r *Keyring) KIDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.keys))
	for kid := range r.keys {
		out = append(out, kid)
	}
	return out
}

// Seal encrypts plaintext under kid's key with XChaCha20-Poly1305. The
// result is nonce || ciphertext, carried opaquely inside the wrapper payload.
func (r *Keyring) Seal(kid string, plaintext []byte) ([]byte, error) {
	aead, err := r.aead(kid)
	if err != nil {
		return nil, err
	}
	out := make([]byte, chacha20poly1305.NonceSizeX, chacha20poly1305.NonceSizeX+len(plaintext)+aead.Overhead())
	if _, err := io.ReadFull(rand.Reader, out); err != nil {
		return nil, err
	}
	return aead.Seal(out, out[:chacha20poly1305.NonceSizeX], plaintext, nil), nil
}

// Open reverses Seal. Any tampering fails authentication.
func (r *Keyring) Open(kid string, ciphertext []byte) ([]byte, error) {
	aead, err := r.aead(kid)
	if err != nil {
		return nil, err
	}
	if len(ciphertext) < chacha20poly1305.NonceSizeX {
		return nil, ErrCiphertextTooShort
	}
	nonce, ct := ciphertext[:chacha20poly1305.NonceSizeX], ciphertext[chacha20poly1305.NonceSizeX:]
	return aead.Open(nil, nonce, ct, nil)
}

func (r *Keyring) aead(kid string) (cipher.AEAD, error) {
	r.mu.RLock()
	key, ok := r.keys[kid]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrUnknownKeyID
	}
	return chacha20poly1305.NewX(key)
}

func containsDot(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] == '.' {
			return true
		}
	}
	return false
}
