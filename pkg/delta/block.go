package delta

import (
	"github.com/pkg/errors"
)

// Block is the fingerprint of a contiguous region of a byte sequence. Blocks
// are immutable once constructed.
type Block struct {
	// Offset is the byte index of the region within its originating
	// sequence.
	Offset uint64
	// Size is the length of the region in bytes. It is at most the block
	// size used during fingerprinting.
	Size uint32
	// Weak is the rolling hash of the region, used as a cheap match filter.
	Weak uint32
	// Strong is the strong hash of the region, used to confirm matches.
	Strong Hash128
}

// CopyCmd directs the copy of Size bytes from offset Source in a source
// buffer to offset Target in a destination buffer.
type CopyCmd struct {
	// Source is the byte offset within the source buffer.
	Source uint64
	// Target is the byte offset within the destination buffer.
	Target uint64
	// Size is the number of bytes to copy.
	Size uint32
}

// EnsureValid verifies that the command's source and target ranges lie
// within buffers of the provided lengths.
func (c CopyCmd) EnsureValid(sourceLength, targetLength uint64) error {
	if uint64(c.Size) > sourceLength || c.Source > sourceLength-uint64(c.Size) {
		return errors.New("source range exceeds source buffer")
	} else if uint64(c.Size) > targetLength || c.Target > targetLength-uint64(c.Size) {
		return errors.New("target range exceeds target buffer")
	}

	// Success.
	return nil
}

// execute copies the command's byte range from source into target. Ranges
// must have been validated against both buffers beforehand.
func (c CopyCmd) execute(target, source []byte) {
	copy(
		target[c.Target:c.Target+uint64(c.Size)],
		source[c.Source:c.Source+uint64(c.Size)],
	)
}

// PatchCommands is the intermediate (non-serialized) product of a diff: two
// lists of copy commands whose target ranges tile the reconstruction range
// of the other sequence exactly, without overlap.
type PatchCommands struct {
	// Base contains copies sourced from the base sequence.
	Base []CopyCmd
	// Other contains copies sourced from the other sequence itself - the
	// residual bytes that the receiver does not have.
	Other []CopyCmd
}

// Synchronized reports whether both command lists are empty. Diff returns
// empty lists when it determines the base and other sequences to be bytewise
// identical, in which case a trivial whole-buffer copy of base suffices for
// reconstruction, and also when the other sequence is empty.
func (c *PatchCommands) Synchronized() bool {
	return len(c.Base) == 0 && len(c.Other) == 0
}

// computeCopySize sums the sizes of a list of copy commands.
func computeCopySize(cmds []CopyCmd) uint64 {
	var result uint64
	for _, cmd := range cmds {
		result += uint64(cmd.Size)
	}
	return result
}

// NeedBytesFromBase returns the number of bytes that reconstruction will
// read from the base sequence.
func (c *PatchCommands) NeedBytesFromBase() uint64 {
	return computeCopySize(c.Base)
}

// NeedBytesFromOther returns the number of residual bytes that a patch
// built from these commands will have to carry.
func (c *PatchCommands) NeedBytesFromOther() uint64 {
	return computeCopySize(c.Other)
}
