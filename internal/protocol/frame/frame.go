// Package frame owns the ASCII wrapper line format.
//
// Grammar: X1.<templateId>.<mode>.<id>.[<kid>.]<part>/<total>.<payloadB64>
// where mode is C (clear) or S (secure) and kid appears only under S.
package frame

import (
	"fmt"
	"strconv"
	"strings"
)

// Version is the wrapper version token.
const Version = "X1"

const (
	modeClear  = "C"
	modeSecure = "S"
)

// Mode is the clear/secure discriminant. Secure mode carries an opaque key
// id which this package never interprets.
type Mode struct {
	secure bool
	kid    string
}

func Clear() Mode { return Mode{} }

func Secure(kid string) Mode { return Mode{secure: true, kid: kid} }

func (m Mode) IsSecure() bool { return m.secure }

// KID returns the key id, empty for clear mode.
func (m Mode) KID() string { return m.kid }

func (m Mode) token() string {
	if m.secure {
		return modeSecure
	}
	return modeClear
}

// String returns the wire token, C or S.
func (m Mode) String() string { return m.token() }

// Packet is one parsed wrapper line. Part and Total are 1-based; a complete
// unchunked message carries 1/1.
type Packet struct {
	TemplateID int
	Mode       Mode
	ID         string
	Part       int
	Total      int
	Payload    string // base64url text, possibly a fragment of it
}

// Build renders p as a single wrapper line. It is the syntactic inverse of
// Parse; the caller supplies tokens free of the '.' separator.
func Build(p Packet) string {
	tokens := make([]string, 0, 7)
	tokens = append(tokens, Version, strconv.Itoa(p.TemplateID), p.Mode.token(), p.ID)
	if p.Mode.IsSecure() {
		tokens = append(tokens, p.Mode.KID())
	}
	tokens = append(tokens, fmt.Sprintf("%d/%d", p.Part, p.Total), p.Payload)
	return strings.Join(tokens, ".")
}

// Parse tokenizes one candidate line. It reports false instead of an error
// so batch callers can filter large line sets cheaply.
func Parse(line string) (Packet, bool) {
	tokens := strings.Split(strings.TrimSpace(line), ".")
	if len(tokens) < 6 || len(tokens) > 7 {
		return Packet{}, false
	}
	if tokens[0] != Version {
		return Packet{}, false
	}

	templateID, err := strconv.Atoi(tokens[1])
	if err != nil || templateID < 0 {
		return Packet{}, false
	}

	var mode Mode
	switch tokens[2] {
	case modeClear:
		if len(tokens) != 6 {
			return Packet{}, false
		}
		mode = Clear()
	case modeSecure:
		if len(tokens) != 7 || tokens[4] == "" {
			return Packet{}, false
		}
		mode = Secure(tokens[4])
	default:
		return Packet{}, false
	}

	id := tokens[3]
	if id == "" {
		return Packet{}, false
	}

	part, total, ok := parseCounters(tokens[len(tokens)-2])
	if !ok {
		return Packet{}, false
	}

	return Packet{
		TemplateID: templateID,
		Mode:       mode,
		ID:         id,
		Part:       part,
		Total:      total,
		Payload:    tokens[len(tokens)-1],
	}, true
}

func parseCounters(token string) (part, total int, ok bool) {
	slash := strings.IndexByte(token, '/')
	if slash < 0 {
		return 0, 0, false
	}
	part, err := strconv.Atoi(token[:slash])
	if err != nil {
		return 0, 0, false
	}
	total, err = strconv.Atoi(token[slash+1:])
	if err != nil {
		return 0, 0, false
	}
	if part < 1 || total < part {
		return 0, 0, false
	}
	return part, total, true
}
