package encoding

import (
	"github.com/bindelta/bindelta/pkg/delta"
)

// LoadPatch loads and decodes a serialized patch from the specified path.
func LoadPatch(path string) (*delta.Patch, error) {
	patch := &delta.Patch{}
	if err := LoadAndUnmarshal(path, patch.UnmarshalBinary); err != nil {
		return nil, err
	}
	return patch, nil
}

// SavePatch encodes and atomically saves a patch to the specified path.
func SavePatch(path string, patch *delta.Patch) error {
	return MarshalAndSave(path, patch.MarshalBinary)
}
