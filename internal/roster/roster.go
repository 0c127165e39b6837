// Package roster loads the team roster that maps wire unit ids to human
// callsigns. Unit ids share the 16-bit range of the wire's source field.
package roster

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// Unit is one roster entry.
type Unit struct {
	ID       uint16 `toml:"id"`
	Callsign string `toml:"callsign"`
	Name     string `toml:"name"`
}

// Roster is a team's unit list.
type Roster struct {
	TeamID string `toml:"team_id"`
	Units  []Unit `toml:"units"`
}

// Load reads and validates a roster file.
func Load(path string) (Roster, error) {
	var r Roster
	if _, err := toml.DecodeFile(path, &r); err != nil {
		return Roster{}, fmt.Errorf("roster load failed (%s): %w", path, err)
	}
	if err := Validate(r); err != nil {
		return Roster{}, err
	}
	return r, nil
}

// Validate enforces non-zero unique ids and non-empty unique callsigns.
func Validate(r Roster) error {
	byID := make(map[uint16]struct{}, len(r.Units))
	byCall := make(map[string]struct{}, len(r.Units))
	for i, u := range r.Units {
		if u.ID == 0 {
			return fmt.Errorf("roster: units[%d]: id is required", i)
		}
		if _, dup := byID[u.ID]; dup {
			return fmt.Errorf("roster: units[%d]: duplicate id %d", i, u.ID)
		}
		byID[u.ID] = struct{}{}

		call := strings.ToUpper(strings.TrimSpace(u.Callsign))
		if call == "" {
			return fmt.Errorf("roster: units[%d]: callsign is required", i)
		}
		if _, dup := byCall[call]; dup {
			return fmt.Errorf("roster: units[%d]: duplicate callsign %s", i, call)
		}
		byCall[call] = struct{}{}
	}
	return nil
}

// ByID finds a unit by its wire id.
func (r Roster) ByID(id uint16) (Unit, bool) {
	for _, u := range r.Units {
		if u.ID == id {
			return u, true
		}
	}
	return Unit{}, false
}

// ByCallsign finds a unit by callsign, case-insensitively.
func (r Roster) ByCallsign(callsign string) (Unit, bool) {
	want := strings.ToUpper(strings.TrimSpace(callsign))
	for _, u := range r.Units {
		if strings.ToUpper(strings.TrimSpace(u.Callsign)) == want {
			return u, true
		}
	}
	return Unit{}, false
}
