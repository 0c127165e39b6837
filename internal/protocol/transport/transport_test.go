package transport

import "testing"

func TestBudgets(t *testing.T) {
	want := map[string]int{
		"JS8Call":    50,
		"APRS":       67,
		"HamOther":   80,
		"Voice":      80,
		"Winlink":    400,
		"Meshtastic": 180,
		"MeshCore":   160,
		"HaLow":      50000,
		"Reticulum":  320,
		"Email":      800,
		"QR":         800,
		"CopyPaste":  800,
	}
	all := All()
	if len(all) != len(want) {
		t.Fatalf("expected %d profiles, got %d", len(want), len(all))
	}
	for name, budget := range want {
		p, ok := ByName(name)
		if !ok {
			t.Fatalf("profile %s missing", name)
		}
		if p.MaxChars != budget {
			t.Fatalf("%s: budget %d want %d", name, p.MaxChars, budget)
		}
	}
}

func TestByNameIgnoresCase(t *testing.T) {
	p, ok := ByName("js8call")
	if !ok || p != JS8Call {
		t.Fatalf("ByName(js8call) = %+v, %v", p, ok)
	}
}

func TestByNameUnknown(t *testing.T) {
	if _, ok := ByName("SneakerNet"); ok {
		t.Fatalf("unknown profile resolved")
	}
}

func TestDefault(t *testing.T) {
	if Default() != CopyPaste {
		t.Fatalf("default profile changed: %+v", Default())
	}
}
