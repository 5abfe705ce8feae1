// Package version exposes the build version of the tutor binary.
package version

import (
	"fmt"
	"runtime/debug"
)

// Version is set at build time via -ldflags "-X .../internal/version.Version=v1.2.3".
var Version string

// Effective returns the best available version string: the ldflags value if
// set, otherwise whatever the Go module build info carries.
func Effective() string {
	if Version != "" {
		return Version
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "devel"
	}
	if v := info.Main.Version; v != "" && v != "(devel)" {
		return v
	}
	var rev string
	var dirty bool
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			rev = s.Value
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}
	if rev != "" {
		if len(rev) > 12 {
			rev = rev[:12]
		}
		if dirty {
			return fmt.Sprintf("devel+%s+dirty", rev)
		}
		return fmt.Sprintf("devel+%s", rev)
	}
	return "devel"
}
