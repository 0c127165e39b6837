package chunk

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xtoc-dev/xtoc/internal/protocol/frame"
)

var (
	ErrNoParts             = errors.New("chunk: no parts to reassemble")
	ErrInconsistentParts   = errors.New("chunk: parts disagree on template, mode, id or total")
	ErrReassemblyIntegrity = errors.New("chunk: reassembled frame failed re-parse")
)

// MissingPartError names the smallest absent part of an incomplete set.
type MissingPartError struct {
	Part int
}

func (e *MissingPartError) Error() string {
	return fmt.Sprintf("chunk: missing part %d", e.Part)
}

// Reassemble reconstitutes one logical frame from parsed parts in any order.
// Every part must agree on template, mode, correlation id, key id and total;
// duplicates of a part are tolerated (first one wins). The rebuilt 1/1 line
// is re-parsed as a final integrity check before it is returned.
func Reassemble(parts []frame.Packet) (frame.Packet, error) {
	if len(parts) == 0 {
		return frame.Packet{}, ErrNoParts
	}

	first := parts[0]
	byPart := make(map[int]frame.Packet, len(parts))
	for _, p := range parts {
		if p.TemplateID != first.TemplateID ||
			p.Mode != first.Mode ||
			p.ID != first.ID ||
			p.Total != first.Total {
			return frame.Packet{}, ErrInconsistentParts
		}
		if _, dup := byPart[p.Part]; dup {
			continue
		}
		byPart[p.Part] = p
	}

	var payload strings.Builder
	for n := 1; n <= first.Total; n++ {
		p, ok := byPart[n]
		if !ok {
			return frame.Packet{}, &MissingPartError{Part: n}
		}
		payload.WriteString(p.Payload)
	}

	single := first
	single.Part = 1
	single.Total = 1
	single.Payload = payload.String()

	rebuilt, ok := frame.Parse(frame.Build(single))
	if !ok {
		return frame.Packet{}, ErrReassemblyIntegrity
	}
	return rebuilt, nil
}

// ReassembleText extracts parseable wrapper lines from raw multi-line text
// and reassembles them. Blank and unparseable lines are skipped. A complete
// 1/1 line short-circuits the multi-part path entirely.
func ReassembleText(text string) (frame.Packet, error) {
	var parts []frame.Packet
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		p, ok := frame.Parse(line)
		if !ok {
			continue
		}
		if p.Part == 1 && p.Total == 1 {
			return p, nil
		}
		parts = append(parts, p)
	}
	return Reassemble(parts)
}
