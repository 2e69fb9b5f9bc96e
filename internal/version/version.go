// In file: internal/version/version.go

// Package version centralizes the versioning for the logical components of the
// movie bot.
//
// The version strings are folded into every Redis key the service writes, so a
// change in tool behavior starts a fresh set of statistics instead of mixing
// numbers from two different implementations.
package version

import (
	"fmt"

	"github.com/dileep-u-k/moviebot/internal/swaig"
)

// ComponentVersions holds the version strings for the logical parts of the service.
// Manually increment a version number here before you deploy a change to that component.
var ComponentVersions = struct {
	// Tools should be updated whenever the behavior or the spoken output of
	// any movie tool changes.
	Tools string

	// Protocol is the SWAIG protocol version the webhook answers with.
	Protocol string
}{
	Tools:    "v1.0",
	Protocol: swaig.ProtocolVersion,
}

// VersionedKey builds a Redis key scoped to the current component versions.
//
// Example output: "toolstats:search_movie:tv1.0_pv2.0"
func VersionedKey(prefix, name string) string {
	return fmt.Sprintf("%s:%s:tv%s_pv%s", prefix, name,
		ComponentVersions.Tools,
		ComponentVersions.Protocol,
	)
}
