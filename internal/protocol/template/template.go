package template

// layout describes one template's wire shape. The extension flag position is
// not uniform across templates: the 0x04 bit rides in the leading flags byte
// for Sitrep, Contact, Task, Resource and Mission, while Asset and Zone carry
// an 0x08 bit at a template-specific offset and CheckinLoc signals the
// extension by bumping its version byte from 1 to 2. Deployed decoders depend
// on these exact positions, so they are kept per template instead of being
// normalized.
type layout struct {
	name    string
	baseLen int
	// flagByte is the offset of the byte carrying the extension bit, or -1
	// for the CheckinLoc version-byte scheme.
	flagByte int
	flagMask byte
	encode   func(p *Payload) []byte
	decode   func(buf []byte, p *Payload)
}

var layouts = map[Kind]layout{
	CheckinLoc: {
		name:     "checkin",
		baseLen:  16,
		flagByte: -1,
		encode:   encodeCheckinLoc,
		decode:   decodeCheckinLoc,
	},
	Sitrep: {
		name:     "sitrep",
		baseLen:  12,
		flagByte: 0,
		flagMask: 0x04,
		encode:   encodeSitrep,
		decode:   decodeSitrep,
	},
	Contact: {
		name:     "contact",
		baseLen:  13,
		flagByte: 0,
		flagMask: 0x04,
		encode:   encodeContact,
		decode:   decodeContact,
	},
	Task: {
		name:     "task",
		baseLen:  14,
		flagByte: 0,
		flagMask: 0x04,
		encode:   encodeTask,
		decode:   decodeTask,
	},
	Resource: {
		name:     "resource",
		baseLen:  12,
		flagByte: 0,
		flagMask: 0x04,
		encode:   encodeResource,
		decode:   decodeResource,
	},
	Asset: {
		name:     "asset",
		baseLen:  10,
		flagByte: 8,
		flagMask: 0x08,
		encode:   encodeAsset,
		decode:   decodeAsset,
	},
	Zone: {
		// baseLen includes the embedded 10-byte circle shape block that
		// follows the 10-byte record and precedes any extension block.
		name:     "zone",
		baseLen:  20,
		flagByte: 7,
		flagMask: 0x08,
		encode:   encodeZone,
		decode:   decodeZone,
	},
	Mission: {
		name:     "mission",
		baseLen:  14,
		flagByte: 0,
		flagMask: 0x04,
		encode:   encodeMission,
		decode:   decodeMission,
	},
}

// BaseLen reports the fixed base record length for k, or 0 when unknown.
func BaseLen(k Kind) int {
	if l, ok := layouts[k]; ok {
		return l.baseLen
	}
	return 0
}
