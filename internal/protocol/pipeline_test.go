package protocol

import (
	"errors"
	"strings"
	"testing"

	"github.com/xtoc-dev/xtoc/internal/protocol/frame"
	"github.com/xtoc-dev/xtoc/internal/protocol/template"
	"github.com/xtoc-dev/xtoc/internal/protocol/transport"
)

func TestSendReceiveClear(t *testing.T) {
	in := template.Payload{
		Kind: template.CheckinLoc, Src: 7, TimeMS: 1_700_000_040_000,
		Lat: 51.50072, Lon: -0.12462, Status: 3,
	}
	lines, err := Send(in, frame.Clear(), "", transport.Email, nil)
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if len(lines) != 1 {
		t.Fatalf("checkin should fit one Email frame, got %d", len(lines))
	}

	out, pkt, err := Receive(lines[0], nil)
	if err != nil {
		t.Fatalf("receive: %v", err)
	}
	if pkt.TemplateID != int(template.CheckinLoc) {
		t.Fatalf("template id: %d", pkt.TemplateID)
	}
	if out.Src != in.Src || out.Status != in.Status || out.TimeMS != in.TimeMS {
		t.Fatalf("payload mismatch: %+v", out)
	}
}

func TestSendChunksOverJS8CallAndReceives(t *testing.T) {
	in := template.Payload{
		Kind: template.Sitrep, Src: 12, Dst: 4, TimeMS: 1_700_000_040_000,
		Status: 1, Priority: 2,
		SrcIDs: []uint32{12, 14, 19, 21, 22, 23, 24, 25, 26, 27, 28, 29},
	}
	lines, err := Send(in, frame.Clear(), "k7x2m9aq", transport.JS8Call, nil)
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	// 12-byte base + 23-byte extension block wraps past the 50-char budget.
	if len(lines) < 2 {
		t.Fatalf("expected a multi-part send, got %d line(s)", len(lines))
	}
	for _, line := range lines {
		if len(line) > transport.JS8Call.MaxChars {
			t.Fatalf("line over budget: %q", line)
		}
	}

	out, pkt, err := Receive(strings.Join(lines, "\n"), nil)
	if err != nil {
		t.Fatalf("receive: %v", err)
	}
	if pkt.ID != "k7x2m9aq" {
		t.Fatalf("correlation id: %s", pkt.ID)
	}
	if len(out.SrcIDs) != 12 || out.SrcIDs[0] != 12 || out.SrcIDs[1] != 14 || out.SrcIDs[2] != 19 {
		t.Fatalf("correlated ids: %v", out.SrcIDs)
	}
}

type xorCipher struct{ wantKID string }

func (c xorCipher) Seal(kid string, plaintext []byte) ([]byte, error) {
	if kid != c.wantKID {
		return nil, errors.New("unknown kid")
	}
	out := make([]byte, len(plaintext))
	for i, b := range plaintext {
		out[i] = b ^ 0x5A
	}
	return out, nil
}

func (c xorCipher) Open(kid string, ciphertext []byte) ([]byte, error) {
	return c.Seal(kid, ciphertext)
}

func TestSendReceiveSecure(t *testing.T) {
	in := template.Payload{Kind: template.Task, Src: 3, Dst: 12, TimeMS: 1_700_000_040_000, TaskCode: 2, TaskID: 4711}
	cipher := xorCipher{wantKID: "team1-k2"}

	lines, err := Send(in, frame.Secure("team1-k2"), "", transport.Winlink, cipher)
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	out, pkt, err := Receive(strings.Join(lines, "\n"), cipher)
	if err != nil {
		t.Fatalf("receive: %v", err)
	}
	if !pkt.Mode.IsSecure() || pkt.Mode.KID() != "team1-k2" {
		t.Fatalf("mode lost: %+v", pkt.Mode)
	}
	if out.TaskID != 4711 || out.Src != 3 {
		t.Fatalf("payload mismatch: %+v", out)
	}
}

func TestSendSecureWithoutCipher(t *testing.T) {
	in := template.Payload{Kind: template.Sitrep, Src: 12, TimeMS: 1_700_000_040_000}
	if _, err := Send(in, frame.Secure("k1"), "", transport.Email, nil); !errors.Is(err, ErrCipherRequired) {
		t.Fatalf("expected ErrCipherRequired, got %v", err)
	}
}

func TestReceiveSecureWithoutCipher(t *testing.T) {
	in := template.Payload{Kind: template.Sitrep, Src: 12, TimeMS: 1_700_000_040_000}
	cipher := xorCipher{wantKID: "k1"}
	lines, err := Send(in, frame.Secure("k1"), "", transport.Email, cipher)
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if _, _, err := Receive(lines[0], nil); !errors.Is(err, ErrCipherRequired) {
		t.Fatalf("expected ErrCipherRequired, got %v", err)
	}
}

func TestNewMessageIDShape(t *testing.T) {
	seen := map[string]struct{}{}
	for i := 0; i < 64; i++ {
		id := NewMessageID()
		if len(id) != 8 {
			t.Fatalf("id length: %q", id)
		}
		if strings.ContainsAny(id, "./ ") {
			t.Fatalf("id contains separator characters: %q", id)
		}
		seen[id] = struct{}{}
	}
	if len(seen) < 60 {
		t.Fatalf("ids collide far too often: %d unique of 64", len(seen))
	}
}
