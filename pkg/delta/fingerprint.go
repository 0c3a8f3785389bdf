package delta

import (
	"math"

	"github.com/pkg/errors"

	"github.com/bindelta/bindelta/pkg/parallelism"
)

const (
	// DefaultBlockSize is the block size used by callers that don't have a
	// reason to pick their own. Smaller block sizes improve match
	// resolution at the cost of more hashes and larger per-block metadata.
	DefaultBlockSize = 2048
	// maximumBlockSize is the largest allowed block size. Block lengths
	// have to fit into the 32-bit size fields of blocks and copy commands.
	maximumBlockSize = math.MaxUint32
)

// Fingerprint splits data into consecutive non-overlapping blocks of
// blockSize bytes (the last block may be shorter, but is never empty) and
// computes the weak and strong hashes of each. Hashing is fanned out across
// worker Goroutines since it dominates fingerprinting cost; the returned
// list is in input order regardless of worker completion order. An empty
// input yields an empty list.
func Fingerprint(data []byte, blockSize uint64) ([]Block, error) {
	// Validate the block size. Block contents have to be addressable by the
	// 32-bit size fields used in blocks and copy commands.
	if blockSize == 0 || blockSize > maximumBlockSize {
		return nil, errors.Errorf("invalid block size: %d", blockSize)
	}

	// An empty input has no blocks.
	if len(data) == 0 {
		return nil, nil
	}

	// Pre-size the output list and populate block geometry.
	length := uint64(len(data))
	blocks := make([]Block, (length+blockSize-1)/blockSize)
	for i := range blocks {
		offset := uint64(i) * blockSize
		size := blockSize
		if remaining := length - offset; remaining < size {
			size = remaining
		}
		blocks[i] = Block{Offset: offset, Size: uint32(size)}
	}

	// Hash the blocks in parallel. Each worker owns a disjoint set of
	// output slots, so the only synchronization is the fan-out's join.
	if err := parallelism.ForEachStride(len(blocks), 0, func(i int) error {
		block := &blocks[i]
		content := data[block.Offset : block.Offset+uint64(block.Size)]
		block.Weak = WeakHash(content)
		block.Strong = StrongHash(content)
		return nil
	}); err != nil {
		return nil, errors.Wrap(err, "unable to hash blocks")
	}

	// Success.
	return blocks, nil
}
