package delta

import (
	"encoding/binary"
	"math"

	"github.com/pkg/errors"
)

// The patch wire format is deterministic and schema-stable: all integers
// are little-endian and fields appear in a fixed order. The layout is
//
//	uint64 data length, followed by the data bytes
//	uint32 base command count, followed by the base commands
//	uint32 residual command count, followed by the residual commands
//	uint64 other size
//
// where each command is encoded as uint64 source, uint64 target, uint32
// size. Interoperability across implementations is defined at this byte
// level.

// copyCmdEncodedSize is the encoded size of a single copy command.
const copyCmdEncodedSize = 8 + 8 + 4

// encodeCopyCmds appends the wire encoding of a command list (count prefix
// plus commands) to buffer at offset and returns the new offset.
func encodeCopyCmds(buffer []byte, offset int, cmds []CopyCmd) int {
	binary.LittleEndian.PutUint32(buffer[offset:], uint32(len(cmds)))
	offset += 4
	for _, cmd := range cmds {
		binary.LittleEndian.PutUint64(buffer[offset:], cmd.Source)
		binary.LittleEndian.PutUint64(buffer[offset+8:], cmd.Target)
		binary.LittleEndian.PutUint32(buffer[offset+16:], cmd.Size)
		offset += copyCmdEncodedSize
	}
	return offset
}

// decodeCopyCmds decodes a count-prefixed command list from data starting
// at offset and returns the list and the new offset.
func decodeCopyCmds(data []byte, offset int) ([]CopyCmd, int, error) {
	if len(data)-offset < 4 {
		return nil, 0, errors.New("truncated command count")
	}
	count := binary.LittleEndian.Uint32(data[offset:])
	offset += 4
	if uint64(len(data)-offset) < uint64(count)*copyCmdEncodedSize {
		return nil, 0, errors.New("truncated command list")
	}
	cmds := make([]CopyCmd, 0, count)
	for i := uint32(0); i < count; i++ {
		cmds = append(cmds, CopyCmd{
			Source: binary.LittleEndian.Uint64(data[offset:]),
			Target: binary.LittleEndian.Uint64(data[offset+8:]),
			Size:   binary.LittleEndian.Uint32(data[offset+16:]),
		})
		offset += copyCmdEncodedSize
	}
	return cmds, offset, nil
}

// MarshalBinary implements encoding.BinaryMarshaler.MarshalBinary.
func (p *Patch) MarshalBinary() ([]byte, error) {
	// Command counts are carried as 32-bit values on the wire.
	if uint64(len(p.Base)) > math.MaxUint32 || uint64(len(p.Other)) > math.MaxUint32 {
		return nil, errors.New("command count exceeds encoding limit")
	}

	// Encode.
	result := make([]byte, 8+len(p.Data)+
		4+len(p.Base)*copyCmdEncodedSize+
		4+len(p.Other)*copyCmdEncodedSize+
		8)
	binary.LittleEndian.PutUint64(result, uint64(len(p.Data)))
	offset := 8 + copy(result[8:], p.Data)
	offset = encodeCopyCmds(result, offset, p.Base)
	offset = encodeCopyCmds(result, offset, p.Other)
	binary.LittleEndian.PutUint64(result[offset:], p.OtherSize)

	// Success.
	return result, nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.UnmarshalBinary. It
// rejects truncated input and trailing garbage, but performs no range
// validation beyond the encoding itself - that happens against a concrete
// base at application time.
func (p *Patch) UnmarshalBinary(data []byte) error {
	// Decode the residual data.
	if len(data) < 8 {
		return errors.New("truncated data length")
	}
	dataLength := binary.LittleEndian.Uint64(data)
	if uint64(len(data)-8) < dataLength {
		return errors.New("truncated data")
	}
	residual := make([]byte, dataLength)
	offset := 8 + copy(residual, data[8:8+dataLength])

	// Decode the command lists.
	base, offset, err := decodeCopyCmds(data, offset)
	if err != nil {
		return errors.Wrap(err, "unable to decode base commands")
	}
	other, offset, err := decodeCopyCmds(data, offset)
	if err != nil {
		return errors.Wrap(err, "unable to decode residual commands")
	}

	// Decode the reconstruction length and ensure nothing follows it.
	if len(data)-offset < 8 {
		return errors.New("truncated reconstruction length")
	}
	otherSize := binary.LittleEndian.Uint64(data[offset:])
	if offset+8 != len(data) {
		return errors.New("trailing garbage after patch")
	}

	// Populate the patch.
	p.Data = residual
	p.Base = base
	p.Other = other
	p.OtherSize = otherSize

	// Success.
	return nil
}
