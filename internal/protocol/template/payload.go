package template

// Kind identifies one message template on the wire.
type Kind uint8

const (
	CheckinLoc Kind = 1
	Sitrep     Kind = 2
	Contact    Kind = 3
	Task       Kind = 4
	Resource   Kind = 5
	Asset      Kind = 6
	Zone       Kind = 7
	Mission    Kind = 8
)

func (k Kind) String() string {
	if l, ok := layouts[k]; ok {
		return l.name
	}
	return "unknown"
}

// KindByName resolves a template by its lowercase name.
func KindByName(name string) (Kind, bool) {
	for k, l := range layouts {
		if l.name == name {
			return k, true
		}
	}
	return 0, false
}

// Payload is the decoded, typed form of one template's fields. Which fields
// are meaningful depends on Kind; unused fields are zero.
type Payload struct {
	Kind Kind

	Src    uint16 // primary source/unit id, required everywhere
	Dst    uint16 // Sitrep, Task, Mission
	TimeMS int64  // milliseconds since epoch, truncated to whole minutes on the wire

	Status    uint8 // CheckinLoc, Sitrep, Task, Resource, Asset
	Priority  uint8 // Sitrep, Task, Resource, Mission
	Condition uint8 // Sitrep, Asset

	Threat     uint8  // Contact
	Count      uint8  // Contact
	BearingDeg uint16 // Contact, clamped to 0..359
	RangeM     uint16 // Contact

	TaskCode uint8  // Task
	TaskID   uint16 // Task

	ResourceType uint8  // Resource
	Quantity     uint16 // Resource

	AssetType uint8 // Asset

	MissionCode uint8  // Mission
	Phase       uint8  // Mission
	Objective   uint16 // Mission

	ZoneKind  uint8  // Zone
	ShapeType uint8  // Zone, 0 = circle
	Label     uint8  // Zone
	RadiusM   uint16 // Zone, meters

	Lat float64 // CheckinLoc position, Zone shape center
	Lon float64

	// SrcIDs is the ordered set of correlated unit ids. When present after a
	// decode it always starts with Src and never exceeds maxCorrelatedIDs
	// entries. On encode it may hold anything; normalization drops zeros and
	// values beyond 16 bits, collapses duplicates and caps the total.
	SrcIDs []uint32
}

// maxCorrelatedIDs caps the id list, primary included.
const maxCorrelatedIDs = 32

// extensionIDs reduces a correlated id set to its wire form and returns only
// the additional ids beyond the primary. A set that reduces to the primary
// alone yields nil, which omits the extension block entirely.
func extensionIDs(src uint16, ids []uint32) []uint16 {
	if len(ids) == 0 {
		return nil
	}
	seen := map[uint16]struct{}{src: {}}
	out := make([]uint16, 0, len(ids))
	for _, id := range ids {
		if id == 0 || id > 0xFFFF {
			continue
		}
		v := uint16(id)
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
		if 1+len(out) == maxCorrelatedIDs {
			break
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
