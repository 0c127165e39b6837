package protocol

import (
	"errors"

	"github.com/xtoc-dev/xtoc/internal/protocol/chunk"
	"github.com/xtoc-dev/xtoc/internal/protocol/frame"
	"github.com/xtoc-dev/xtoc/internal/protocol/template"
	"github.com/xtoc-dev/xtoc/internal/protocol/transport"
)

var ErrCipherRequired = errors.New("protocol: secure mode requires a cipher")

// Cipher is the external collaborator for secure mode. The key id is an
// opaque lookup hint; this package never interprets it.
type Cipher interface {
	Seal(kid string, plaintext []byte) ([]byte, error)
	Open(kid string, ciphertext []byte) ([]byte, error)
}

// Send encodes p, frames it under the given mode and correlation id, and
// splits the result across the profile's character budget. An empty id draws
// a fresh one. The cipher may be nil for clear mode.
func Send(p template.Payload, mode frame.Mode, id string, profile transport.Profile, cipher Cipher) ([]string, error) {
	raw, err := template.Encode(p)
	if err != nil {
		return nil, err
	}
	if mode.IsSecure() {
		if cipher == nil {
			return nil, ErrCipherRequired
		}
		raw, err = cipher.Seal(mode.KID(), raw)
		if err != nil {
			return nil, err
		}
	}
	if id == "" {
		id = NewMessageID()
	}
	pkt := frame.Packet{
		TemplateID: int(p.Kind),
		Mode:       mode,
		ID:         id,
		Part:       1,
		Total:      1,
		Payload:    frame.EncodePayload(raw),
	}
	return chunk.Split(pkt, profile)
}

// Receive reassembles raw multi-line text into one logical frame and decodes
// its payload. The cipher may be nil when no secure traffic is expected.
func Receive(text string, cipher Cipher) (template.Payload, frame.Packet, error) {
	pkt, err := chunk.ReassembleText(text)
	if err != nil {
		return template.Payload{}, frame.Packet{}, err
	}
	p, err := DecodePacket(pkt, cipher)
	if err != nil {
		return template.Payload{}, frame.Packet{}, err
	}
	return p, pkt, nil
}

// DecodePacket decodes one complete (1/1) frame back into a typed payload.
func DecodePacket(pkt frame.Packet, cipher Cipher) (template.Payload, error) {
	raw, err := frame.DecodePayload(pkt.Payload)
	if err != nil {
		return template.Payload{}, err
	}
	if pkt.Mode.IsSecure() {
		if cipher == nil {
			return template.Payload{}, ErrCipherRequired
		}
		raw, err = cipher.Open(pkt.Mode.KID(), raw)
		if err != nil {
			return template.Payload{}, err
		}
	}
	return template.Decode(template.Kind(pkt.TemplateID), raw)
}
