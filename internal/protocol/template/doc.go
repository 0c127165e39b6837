// Package template owns the per-template binary codec.
//
// Ownership boundary:
// - typed payload records and their wire layouts
// - fixed-point coordinate and minute-floor time quantization
// - multi-source extension block packing and normalization
package template
