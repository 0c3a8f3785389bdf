package delta

import (
	"encoding/hex"

	"lukechampine.com/blake3"
)

// StrongHashSize is the size of a strong hash in bytes.
const StrongHashSize = 16

// Hash128 is a 128-bit strong fingerprint of a byte range: the leading 16
// bytes of its BLAKE3 digest. The prefix truncation is part of the wire
// contract - implementations on both sides of a transfer must produce
// bitwise-identical digests. The collision probability of roughly 2^-64
// bounds the chance of a false block match.
type Hash128 [StrongHashSize]byte

// String returns the lowercase hexadecimal rendering of the hash.
func (h Hash128) String() string {
	return hex.EncodeToString(h[:])
}

// StrongHash computes the 128-bit strong fingerprint of data.
func StrongHash(data []byte) Hash128 {
	digest := blake3.Sum256(data)
	var result Hash128
	copy(result[:], digest[:StrongHashSize])
	return result
}
