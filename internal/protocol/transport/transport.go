// Package transport names the carrier media and their per-message character
// budgets. A profile carries no I/O; the physical adapters live with the
// applications that own the radios.
package transport

import "strings"

// Profile is one named carrier medium.
type Profile struct {
	Name     string
	MaxChars int
}

var (
	JS8Call    = Profile{Name: "JS8Call", MaxChars: 50}
	APRS       = Profile{Name: "APRS", MaxChars: 67}
	HamOther   = Profile{Name: "HamOther", MaxChars: 80}
	Voice      = Profile{Name: "Voice", MaxChars: 80}
	Winlink    = Profile{Name: "Winlink", MaxChars: 400}
	Meshtastic = Profile{Name: "Meshtastic", MaxChars: 180}
	MeshCore   = Profile{Name: "MeshCore", MaxChars: 160}
	HaLow      = Profile{Name: "HaLow", MaxChars: 50000}
	Reticulum  = Profile{Name: "Reticulum", MaxChars: 320}
	Email      = Profile{Name: "Email", MaxChars: 800}
	QR         = Profile{Name: "QR", MaxChars: 800}
	CopyPaste  = Profile{Name: "CopyPaste", MaxChars: 800}
)

var profiles = []Profile{
	JS8Call, APRS, HamOther, Voice, Winlink, Meshtastic,
	MeshCore, HaLow, Reticulum, Email, QR, CopyPaste,
}

// Default is the profile used when the caller names none.
func Default() Profile { return CopyPaste }

// All returns every known profile in declaration order.
func All() []Profile {
	out := make([]Profile, len(profiles))
	copy(out, profiles)
	return out
}

// ByName resolves a profile by name, ignoring case.
func ByName(name string) (Profile, bool) {
	for _, p := range profiles {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return Profile{}, false
}
