package template

import "math"

// Coordinates travel as big-endian int32 degrees scaled by 1e5, which keeps
// roughly 1-meter precision. Timestamps travel as uint32 whole minutes since
// epoch; the millisecond remainder is discarded on purpose and decode returns
// the truncated value, never the original.

const coordScale = 1e5

func packCoord(deg float64) int32 {
	if math.IsNaN(deg) {
		return 0
	}
	v := math.Round(deg * coordScale)
	if v > math.MaxInt32 {
		return math.MaxInt32
	}
	if v < math.MinInt32 {
		return math.MinInt32
	}
	return int32(v)
}

func unpackCoord(v int32) float64 {
	return float64(v) / coordScale
}

const minuteMS = 60_000

func packMinutes(ms int64) uint32 {
	if ms < 0 {
		return 0
	}
	m := ms / minuteMS
	if m > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(m)
}

func unpackMinutes(m uint32) int64 {
	return int64(m) * minuteMS
}
