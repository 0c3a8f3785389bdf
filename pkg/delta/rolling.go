package delta

// weakHashBias is added to each input byte (with 8-bit wraparound) before it
// enters the rolling hash accumulators. It keeps short runs of zero bytes
// from collapsing into a zero hash.
const weakHashBias = 31

// RollingHash is a position-dependent Adler-style 32-bit hash over a sliding
// window of bytes. It maintains two 16-bit accumulators with wrapping
// arithmetic and supports O(1) window shifts via Add and Sub. The exact bit
// patterns produced by Sum32 are a wire contract shared between sender and
// receiver, so the byte bias and the wrapping behavior must not change. The
// zero value is a valid hash over an empty window.
type RollingHash struct {
	a     uint16
	b     uint16
	count uint64
}

// Add appends a byte to the leading edge of the window.
func (h *RollingHash) Add(x byte) {
	h.a += uint16(x + weakHashBias)
	h.b += h.a
	h.count++
}

// Sub removes the byte at the trailing edge of the window, i.e. the byte
// that was added Count calls ago. The window count at the time of the call
// (including the byte being removed) participates in the second accumulator
// update, which is what makes the hash position-dependent.
func (h *RollingHash) Sub(x byte) {
	biased := uint16(x + weakHashBias)
	h.a -= biased
	h.b -= uint16(h.count) * biased
	h.count--
}

// Update adds each byte of data to the window in order.
func (h *RollingHash) Update(data []byte) {
	for _, x := range data {
		h.Add(x)
	}
}

// Count returns the number of bytes currently in the window.
func (h *RollingHash) Count() uint64 {
	return h.count
}

// Sum32 returns the hash of the current window contents.
func (h *RollingHash) Sum32() uint32 {
	return uint32(h.b)<<16 | uint32(h.a)
}

// Reset restores the hash to its initial (empty window) state.
func (h *RollingHash) Reset() {
	*h = RollingHash{}
}

// WeakHash computes the rolling hash of data in a single pass from a fresh
// state.
func WeakHash(data []byte) uint32 {
	var hash RollingHash
	hash.Update(data)
	return hash.Sum32()
}
