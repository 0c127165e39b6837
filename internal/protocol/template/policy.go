package template

// Encode-side validation policy. The boundary between silent normalization
// and hard failure lives in this one table: out-of-range numeric input is
// clamped so degraded field reports still go out, and only a structurally
// missing required field aborts the encode. Decode failures are reserved for
// truncation and corruption, handled in decode.go.

type fieldRule struct {
	field string
	apply func(p *Payload) error
}

var encodeRules = []fieldRule{
	{"src", func(p *Payload) error {
		if p.Src == 0 {
			return ErrMissingSource
		}
		return nil
	}},
	{"time", func(p *Payload) error {
		if p.TimeMS < 0 {
			p.TimeMS = 0
		}
		return nil
	}},
	{"bearing", func(p *Payload) error {
		if p.BearingDeg > 359 {
			p.BearingDeg = 359
		}
		return nil
	}},
	{"srcIds", func(p *Payload) error {
		p.SrcIDs = widen(p.Src, extensionIDs(p.Src, p.SrcIDs))
		return nil
	}},
}

func normalize(p *Payload) error {
	for _, r := range encodeRules {
		if err := r.apply(p); err != nil {
			return err
		}
	}
	return nil
}

// widen rebuilds the canonical id list (primary first) from the wire-form
// additional ids. A nil additional set keeps SrcIDs absent.
func widen(src uint16, additional []uint16) []uint32 {
	if len(additional) == 0 {
		return nil
	}
	out := make([]uint32, 0, 1+len(additional))
	out = append(out, uint32(src))
	for _, id := range additional {
		out = append(out, uint32(id))
	}
	return out
}
