package delta

import (
	"math"
	"sort"

	"github.com/pkg/errors"
)

// Patch is the serialized artifact of a delta computation and the only
// entity that crosses the sender/receiver boundary. It carries the residual
// bytes of the other sequence together with the copy commands needed to
// reconstruct that sequence from a base.
type Patch struct {
	// Data is the concatenation of the other sequence's residual bytes, in
	// emission order.
	Data []byte
	// Base contains copy commands whose sources index into the receiver's
	// base sequence.
	Base []CopyCmd
	// Other contains copy commands whose sources index into Data.
	Other []CopyCmd
	// OtherSize is the length of the sequence the receiver must
	// reconstruct.
	OtherSize uint64
}

// EnsureValid verifies that every command's ranges lie within the buffers
// they address, given the length of the base sequence the patch will be
// applied against.
func (p *Patch) EnsureValid(baseLength uint64) error {
	// A nil patch is not valid.
	if p == nil {
		return errors.New("nil patch")
	}

	// Ensure that all base commands stay within base and the output.
	for _, cmd := range p.Base {
		if err := cmd.EnsureValid(baseLength, p.OtherSize); err != nil {
			return errors.Wrap(err, "invalid base command")
		}
	}

	// Ensure that all residual commands stay within the carried data and
	// the output.
	for _, cmd := range p.Other {
		if err := cmd.EnsureValid(uint64(len(p.Data)), p.OtherSize); err != nil {
			return errors.Wrap(err, "invalid residual command")
		}
	}

	// Success.
	return nil
}

// optimizeCopyCmds coalesces adjacent copy commands. It sorts the list by
// target offset and merges every pair whose source and target ranges are
// both contiguous, provided the combined size still fits the 32-bit size
// field. Merged-away commands are dropped. The resulting list covers the
// same target union with the minimum number of commands consistent with
// those constraints.
func optimizeCopyCmds(cmds []CopyCmd) []CopyCmd {
	// Nothing to coalesce.
	if len(cmds) < 2 {
		return cmds
	}

	// Order by target offset.
	sort.Slice(cmds, func(i, j int) bool {
		return cmds[i].Target < cmds[j].Target
	})

	// Walk adjacent pairs, letting each mergeable command absorb its
	// predecessor and zeroing the predecessor out.
	prev := &cmds[0]
	for i := 1; i < len(cmds); i++ {
		curr := &cmds[i]
		if prev.Source+uint64(prev.Size) == curr.Source &&
			prev.Target+uint64(prev.Size) == curr.Target &&
			uint64(prev.Size)+uint64(curr.Size) <= math.MaxUint32 {
			curr.Source = prev.Source
			curr.Target = prev.Target
			curr.Size += prev.Size
			prev.Size = 0
		}
		prev = curr
	}

	// Discard zeroed commands.
	result := cmds[:0]
	for _, cmd := range cmds {
		if cmd.Size != 0 {
			result = append(result, cmd)
		}
	}
	return result
}

// BuildPatch packages the residual bytes referenced by commands.Other
// (slices of other, concatenated in emission order) together with both
// command lists into a Patch, rewriting each residual command's source to
// its offset within the carried data. Both lists are then coalesced
// independently.
//
// When commands is synchronized and other is non-empty, the base and other
// sequences are bytewise identical, so the patch carries a whole-buffer
// copy from base (chunked to respect the 32-bit command size limit) rather
// than no commands at all. Callers that detect the synchronized state via
// PatchCommands.Synchronized can skip patch transmission entirely instead.
func BuildPatch(other []byte, commands *PatchCommands) *Patch {
	patch := &Patch{OtherSize: uint64(len(other))}

	// Handle the synchronized case with an identity copy from base.
	if commands.Synchronized() && len(other) > 0 {
		remaining := uint64(len(other))
		var offset uint64
		for remaining > 0 {
			size := remaining
			if size > math.MaxUint32 {
				size = math.MaxUint32
			}
			patch.Base = append(patch.Base, CopyCmd{
				Source: offset,
				Target: offset,
				Size:   uint32(size),
			})
			offset += size
			remaining -= size
		}
		return patch
	}

	// Carry base commands through unchanged. The copy keeps the patch from
	// aliasing (and coalescing mutating) the caller's command list.
	patch.Base = append([]CopyCmd(nil), commands.Base...)

	// Concatenate residual slices into the patch data, rewriting each
	// residual command's source to its offset within that data.
	patch.Other = make([]CopyCmd, 0, len(commands.Other))
	for _, cmd := range commands.Other {
		patch.Other = append(patch.Other, CopyCmd{
			Source: uint64(len(patch.Data)),
			Target: cmd.Target,
			Size:   cmd.Size,
		})
		patch.Data = append(patch.Data, other[cmd.Source:cmd.Source+uint64(cmd.Size)]...)
	}

	// Coalesce both lists.
	patch.Base = optimizeCopyCmds(patch.Base)
	patch.Other = optimizeCopyCmds(patch.Other)

	// Done.
	return patch
}

// ApplyPatch reconstructs the other sequence from base and patch. The patch
// is validated before any byte is written; a malformed patch yields an
// error and no partial output. A well-formed patch's commands tile the
// output exactly, overwriting every byte of the zero-initialized buffer
// exactly once.
func ApplyPatch(base []byte, patch *Patch) ([]byte, error) {
	// Validate the patch against the provided base.
	if err := patch.EnsureValid(uint64(len(base))); err != nil {
		return nil, errors.Wrap(err, "malformed patch")
	}

	// Ensure the output is allocatable on this platform.
	if patch.OtherSize > uint64(math.MaxInt) {
		return nil, errors.New("patch output exceeds addressable memory")
	}

	// Allocate the output and execute the commands.
	result := make([]byte, patch.OtherSize)
	for _, cmd := range patch.Base {
		cmd.execute(result, base)
	}
	for _, cmd := range patch.Other {
		cmd.execute(result, patch.Data)
	}

	// Success.
	return result, nil
}
