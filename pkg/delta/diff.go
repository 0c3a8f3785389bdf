package delta

import (
	"github.com/pkg/errors"
)

// sequencesMatch indicates whether an ordered list of matched strong hashes
// is identical to the strong hash sequence of a block list.
func sequencesMatch(sequence []Hash128, blocks []Block) bool {
	if len(sequence) != len(blocks) {
		return false
	}
	for i, strong := range sequence {
		if strong != blocks[i].Strong {
			return false
		}
	}
	return true
}

// Diff computes the copy commands needed to reconstruct the sequence
// described by otherBlocks from base. It slides a window of up to blockSize
// bytes across base, using the rolling hash as a cheap filter against the
// other blocks' weak hashes and the strong hash as match confirmation.
// Matches are non-overlapping: on a confirmed match the window jumps past
// the matched region; on a miss it slides forward by a single byte. The
// blockSize must be the one otherBlocks was fingerprinted with.
//
// If base and other turn out to be bytewise identical, the returned
// commands are empty and report Synchronized. Otherwise every byte of the
// other sequence's reconstruction range is covered by exactly one emitted
// command, in other-block order.
func Diff(base []byte, otherBlocks []Block, blockSize uint64) (*PatchCommands, error) {
	// Validate the block size.
	if blockSize == 0 || blockSize > maximumBlockSize {
		return nil, errors.Errorf("invalid block size: %d", blockSize)
	}

	// Precompute the membership structures used during scanning: a weak
	// hash set used as a first-level filter and a strong hash set used as
	// the authoritative match test. Also compute the total length of the
	// other sequence, which is needed for synchronization detection.
	weakSet := make(map[uint32]struct{}, len(otherBlocks))
	strongSet := make(map[Hash128]struct{}, len(otherBlocks))
	var otherLength uint64
	for _, block := range otherBlocks {
		weakSet[block.Weak] = struct{}{}
		strongSet[block.Strong] = struct{}{}
		otherLength += uint64(block.Size)
	}

	// Scan base with a sliding window, recording the offset of every region
	// whose content matches some other block. The rolling hash state always
	// covers exactly base[windowBegin:windowEnd]. The sequence of matched
	// strong hashes is kept in scan order for the synchronization check
	// below.
	baseLength := uint64(len(base))
	baseOffsets := make(map[Hash128]uint64)
	sequence := make([]Hash128, 0, (baseLength+blockSize-1)/blockSize)
	var hash RollingHash
	var windowBegin, windowEnd uint64
	for windowBegin < baseLength {
		// Determine the window size for this position and grow the window
		// to it. After a match reset the window is empty; after a slide it
		// is one byte short.
		targetWindow := baseLength - windowBegin
		if targetWindow > blockSize {
			targetWindow = blockSize
		}
		for hash.Count() < targetWindow {
			hash.Add(base[windowEnd])
			windowEnd++
		}

		// Probe for a match, computing the strong hash only when the weak
		// filter passes.
		matched := false
		var strong Hash128
		if _, ok := weakSet[hash.Sum32()]; ok {
			strong = StrongHash(base[windowBegin:windowEnd])
			_, matched = strongSet[strong]
		}

		if matched {
			// Record the match. If base contains multiple regions with the
			// same content, later matches overwrite earlier ones - any
			// matching offset is a valid copy source, and this keeps the
			// choice deterministic given the scan order.
			baseOffsets[strong] = windowBegin
			sequence = append(sequence, strong)

			// Jump past the matched region and reset the window.
			windowBegin = windowEnd
			hash.Reset()
		} else {
			// Slide the window forward by one byte and re-probe.
			hash.Sub(base[windowBegin])
			windowBegin++
		}
	}

	// If the matched sequence reproduces the other sequence exactly, then
	// base and other are bytewise identical and no commands are needed.
	commands := &PatchCommands{}
	if baseLength == otherLength && sequencesMatch(sequence, otherBlocks) {
		return commands, nil
	}

	// Emit one command per other block, in order: a base-sourced copy when
	// the block's content was found in base, and a residual copy (sourced
	// from the other sequence itself) when it wasn't.
	for _, block := range otherBlocks {
		if offset, ok := baseOffsets[block.Strong]; ok {
			commands.Base = append(commands.Base, CopyCmd{
				Source: offset,
				Target: block.Offset,
				Size:   block.Size,
			})
		} else {
			commands.Other = append(commands.Other, CopyCmd{
				Source: block.Offset,
				Target: block.Offset,
				Size:   block.Size,
			})
		}
	}

	// Success.
	return commands, nil
}
