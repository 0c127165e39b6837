package frame

import (
	"bytes"
	"errors"
	"testing"
)

func TestBuildParseRoundTripClear(t *testing.T) {
	in := Packet{TemplateID: 2, Mode: Clear(), ID: "k7x2m9aq", Part: 1, Total: 1, Payload: "AAwAAAGwOJ1VAgA"}
	line := Build(in)
	if line != "X1.2.C.k7x2m9aq.1/1.AAwAAAGwOJ1VAgA" {
		t.Fatalf("unexpected line: %s", line)
	}
	out, ok := Parse(line)
	if !ok {
		t.Fatalf("parse rejected built line")
	}
	if out != in {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", out, in)
	}
}

func TestBuildParseRoundTripSecure(t *testing.T) {
	in := Packet{TemplateID: 7, Mode: Secure("team1-k2"), ID: "abc123", Part: 2, Total: 3, Payload: "QUJD"}
	line := Build(in)
	if line != "X1.7.S.abc123.team1-k2.2/3.QUJD" {
		t.Fatalf("unexpected line: %s", line)
	}
	out, ok := Parse(line)
	if !ok {
		t.Fatalf("parse rejected built line")
	}
	if !out.Mode.IsSecure() || out.Mode.KID() != "team1-k2" {
		t.Fatalf("mode lost: %+v", out.Mode)
	}
	if out != in {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", out, in)
	}
}

func TestParseRejectsMalformedLines(t *testing.T) {
	bad := []string{
		"",
		"not a packet",
		"X2.2.C.id.1/1.QUJD",       // wrong version
		"X1.x.C.id.1/1.QUJD",       // non-numeric template
		"X1.-3.C.id.1/1.QUJD",      // negative template
		"X1.2.Q.id.1/1.QUJD",       // unknown mode
		"X1.2.C..1/1.QUJD",         // empty id
		"X1.2.S.id.1/1.QUJD",       // secure without kid
		"X1.2.S.id..1/1.QUJD",      // secure with empty kid
		"X1.2.C.id.kid.1/1.QUJD",   // clear with kid token
		"X1.2.C.id.0/1.QUJD",       // part below 1
		"X1.2.C.id.3/2.QUJD",       // part beyond total
		"X1.2.C.id.11.QUJD",        // counters missing slash
		"X1.2.C.id.a/b.QUJD",       // non-numeric counters
		"X1.2.C.id.1/1",            // missing payload token
		"X1.2.C.id.x.1/1.QUJD.z",   // too many tokens
	}
	for _, line := range bad {
		if p, ok := Parse(line); ok {
			t.Fatalf("accepted malformed line %q as %+v", line, p)
		}
	}
}

func TestParseAllowsEmptyPayload(t *testing.T) {
	p, ok := Parse("X1.2.C.id.1/1.")
	if !ok {
		t.Fatalf("empty payload rejected")
	}
	if p.Payload != "" {
		t.Fatalf("payload: %q", p.Payload)
	}
}

func TestPayloadTranscoderRoundTrip(t *testing.T) {
	raw := []byte{0x00, 0xFF, 0x10, 0x7E, 0xFB}
	s := EncodePayload(raw)
	out, err := DecodePayload(s)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !bytes.Equal(out, raw) {
		t.Fatalf("round trip mismatch: %v != %v", out, raw)
	}
}

func TestPayloadTranscoderRejectsForeignAlphabet(t *testing.T) {
	for _, s := range []string{"QUJ+", "QUJ/", "QUJD=", "QU JD"} {
		if _, err := DecodePayload(s); !errors.Is(err, ErrInvalidEncoding) {
			t.Fatalf("%q: expected ErrInvalidEncoding, got %v", s, err)
		}
	}
}
