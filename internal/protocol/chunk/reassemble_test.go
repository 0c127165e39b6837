package chunk

import (
	"errors"
	"strings"
	"testing"

	"github.com/xtoc-dev/xtoc/internal/protocol/frame"
	"github.com/xtoc-dev/xtoc/internal/protocol/transport"
)

func chunkedLines(t *testing.T, p frame.Packet) []string {
	t.Helper()
	lines, err := Split(p, transport.JS8Call)
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	if len(lines) < 3 {
		t.Fatalf("test needs at least 3 chunks, got %d", len(lines))
	}
	return lines
}

func parseAll(t *testing.T, lines []string) []frame.Packet {
	t.Helper()
	out := make([]frame.Packet, 0, len(lines))
	for _, line := range lines {
		p, ok := frame.Parse(line)
		if !ok {
			t.Fatalf("unparseable line: %s", line)
		}
		out = append(out, p)
	}
	return out
}

func TestReassembleMissingPartNamesSmallest(t *testing.T) {
	lines := chunkedLines(t, singleFrame(strings.Repeat("QUJD", 40)))
	for drop := range lines {
		kept := make([]string, 0, len(lines)-1)
		for i, line := range lines {
			if i != drop {
				kept = append(kept, line)
			}
		}
		_, err := Reassemble(parseAll(t, kept))
		var missing *MissingPartError
		if !errors.As(err, &missing) {
			t.Fatalf("drop %d: expected MissingPartError, got %v", drop+1, err)
		}
		if missing.Part != drop+1 {
			t.Fatalf("drop %d: reported part %d", drop+1, missing.Part)
		}
	}
}

func TestReassembleDuplicatePartsTolerated(t *testing.T) {
	lines := chunkedLines(t, singleFrame(strings.Repeat("QUJD", 40)))
	doubled := append(append([]string{}, lines...), lines[1])
	out, err := Reassemble(parseAll(t, doubled))
	if err != nil {
		t.Fatalf("reassemble: %v", err)
	}
	if frame.Build(out) != frame.Build(singleFrame(strings.Repeat("QUJD", 40))) {
		t.Fatalf("duplicate part corrupted reassembly")
	}
}

func TestReassembleRejectsMixedMessages(t *testing.T) {
	base := singleFrame(strings.Repeat("QUJD", 40))

	other := base
	other.ID = "other-id"
	mixedID := append(parseAll(t, chunkedLines(t, base)), parseAll(t, chunkedLines(t, other))...)

	otherTpl := base
	otherTpl.TemplateID = 4
	mixedTpl := append(parseAll(t, chunkedLines(t, base)), parseAll(t, chunkedLines(t, otherTpl))...)

	otherMode := base
	otherMode.Mode = frame.Secure("k1")
	mixedMode := append(parseAll(t, chunkedLines(t, base)), parseAll(t, chunkedLines(t, otherMode))...)

	for name, parts := range map[string][]frame.Packet{
		"id":       mixedID,
		"template": mixedTpl,
		"mode":     mixedMode,
	} {
		if _, err := Reassemble(parts); !errors.Is(err, ErrInconsistentParts) {
			t.Fatalf("%s: expected ErrInconsistentParts, got %v", name, err)
		}
	}
}

func TestReassembleRejectsMismatchedKID(t *testing.T) {
	a := singleFrame(strings.Repeat("QUJD", 40))
	a.Mode = frame.Secure("k1")
	b := a
	b.Mode = frame.Secure("k2")
	parts := append(parseAll(t, chunkedLines(t, a)), parseAll(t, chunkedLines(t, b))...)
	if _, err := Reassemble(parts); !errors.Is(err, ErrInconsistentParts) {
		t.Fatalf("expected ErrInconsistentParts, got %v", err)
	}
}

func TestReassembleEmptyInput(t *testing.T) {
	if _, err := Reassemble(nil); !errors.Is(err, ErrNoParts) {
		t.Fatalf("expected ErrNoParts, got %v", err)
	}
}

func TestReassembleTextSkipsGarbageLines(t *testing.T) {
	p := singleFrame(strings.Repeat("QUJD", 40))
	lines := chunkedLines(t, p)
	text := "log noise\n\n" + lines[0] + "\nmore noise\n" + strings.Join(lines[1:], "\n") + "\n"
	out, err := ReassembleText(text)
	if err != nil {
		t.Fatalf("reassemble text: %v", err)
	}
	if frame.Build(out) != frame.Build(p) {
		t.Fatalf("text reassembly differs")
	}
}

func TestReassembleTextShortCircuitsOnSingleFrame(t *testing.T) {
	p := singleFrame("QUJDRA")
	out, err := ReassembleText("junk\n" + frame.Build(p) + "\n")
	if err != nil {
		t.Fatalf("reassemble text: %v", err)
	}
	if out != p {
		t.Fatalf("short-circuit returned %+v", out)
	}
}
