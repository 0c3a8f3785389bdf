package bindelta

import (
	"fmt"
)

const (
	// VersionMajor represents the current major version of bindelta.
	VersionMajor = 0
	// VersionMinor represents the current minor version of bindelta.
	VersionMinor = 1
	// VersionPatch represents the current patch version of bindelta.
	VersionPatch = 0
)

// Version provides a stringified version of the current bindelta version.
var Version string

func init() {
	Version = fmt.Sprintf("%d.%d.%d", VersionMajor, VersionMinor, VersionPatch)
}
