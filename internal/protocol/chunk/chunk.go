// Package chunk splits oversized wrapper frames across a carrier's character
// budget and reassembles received parts back into one logical frame.
package chunk

import (
	"errors"

	"github.com/xtoc-dev/xtoc/internal/protocol/frame"
	"github.com/xtoc-dev/xtoc/internal/protocol/transport"
)

var ErrAlreadyChunked = errors.New("chunk: input frame is already part of a multi-part message")

// convergenceBound caps the header-width fixpoint iteration. Convergence is
// not formally proven around digit-width transitions (9→10 chunks and the
// like); the bound guarantees termination instead.
const convergenceBound = 5

// Split renders p as one or more wrapper lines, each within the profile's
// character budget. A frame that already fits comes back unchanged as 1/1.
//
// The header length depends on the digit width of the part counters, which
// depends on how many chunks the split produces, which depends on the header
// length. The loop resolves this by fixed-point iteration: price the header
// at a 1-chunk digit width, split, reprice at the resulting count's width,
// and repeat until the allowable chunk length stops moving.
func Split(p frame.Packet, profile transport.Profile) ([]string, error) {
	if p.Part != 1 || p.Total != 1 {
		return nil, ErrAlreadyChunked
	}

	whole := frame.Build(p)
	if len(whole) <= profile.MaxChars {
		return []string{whole}, nil
	}

	payload := p.Payload
	digits := 1
	chunkLen := 0
	for i := 0; i < convergenceBound; i++ {
		n := profile.MaxChars - headerLen(p, digits)
		if n < 1 {
			// Forward progress even under pathological budgets.
			n = 1
		}
		if n == chunkLen {
			break
		}
		chunkLen = n
		count := (len(payload) + chunkLen - 1) / chunkLen
		digits = numDigits(count)
	}

	total := (len(payload) + chunkLen - 1) / chunkLen
	out := make([]string, 0, total)
	for i := 0; i < total; i++ {
		start := i * chunkLen
		end := start + chunkLen
		if end > len(payload) {
			end = len(payload)
		}
		part := p
		part.Part = i + 1
		part.Total = total
		part.Payload = payload[start:end]
		out = append(out, frame.Build(part))
	}
	return out, nil
}

// headerLen prices the rendered wrapper length without any payload text,
// with both counters at the given digit width. Part never has more digits
// than total, so this never underprices a chunk.
func headerLen(p frame.Packet, digits int) int {
	probe := p
	probe.Part = pow10(digits - 1)
	probe.Total = probe.Part
	probe.Payload = ""
	return len(frame.Build(probe))
}

func numDigits(n int) int {
	d := 1
	for n >= 10 {
		n /= 10
		d++
	}
	return d
}

func pow10(n int) int {
	v := 1
	for i := 0; i < n; i++ {
		v *= 10
	}
	return v
}
