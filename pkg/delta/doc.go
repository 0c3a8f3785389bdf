// Package delta implements a content-addressed binary delta engine. Given a
// base byte sequence (which the receiver already has) and an other byte
// sequence (which the sender wants reconstructed), it computes a compact
// patch that, applied to the base, reproduces the other sequence exactly.
// Matching is performed at fixed block granularity using a two-tier hashing
// scheme: a cheap 32-bit rolling hash acts as a filter and a 128-bit
// truncated BLAKE3 digest confirms candidate matches.
package delta
