package protocol

import "crypto/rand"

// Correlation ids are short on purpose: a UUID would eat most of a JS8Call
// budget. Eight characters of base32 give 40 bits of collision resistance,
// plenty for the handful of in-flight messages a net ever carries. The
// alphabet excludes '.' by construction so ids always survive the wrapper
// grammar.
const idAlphabet = "0123456789abcdefghjkmnpqrstvwxyz"

const idLength = 8

// NewMessageID returns a fresh opaque correlation id.
func NewMessageID() string {
	buf := make([]byte, idLength)
	_, _ = rand.Read(buf)
	out := make([]byte, idLength)
	for i, b := range buf {
		out[i] = idAlphabet[int(b)%len(idAlphabet)]
	}
	return string(out)
}
