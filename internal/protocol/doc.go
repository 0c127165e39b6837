// Package protocol owns the XTOC wire contract end to end.
//
// Ownership boundary:
// - template: per-message binary codec and quantization
// - frame: ASCII wrapper grammar and base64url payload alphabet
// - chunk: transport-budget splitting and reassembly
// - transport: carrier profiles and character budgets
// - this package: the send/receive pipelines tying them together
//
// Every operation is a pure function over its inputs; accumulating chunks of
// a message arriving over time is the caller's job (see store/packets).
package protocol
