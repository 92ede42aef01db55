// Package version formats program version information for the
// command line tools.
package version

import (
	"fmt"
	"runtime/debug"
)

// Vendor names the project's publisher.
const Vendor = "OfficialPixelBrush"

// Release is the version reported when the build carries no module version.
const Release = "v0.3.0"

// String returns "<vendor> <name> <version>". The version comes from the
// build information when the binary was built from a tagged module.
func String(name string) string {
	return format(name, buildVersion())
}

func format(name, v string) string {
	return fmt.Sprintf("%s %s %s", Vendor, name, v)
}

func buildVersion() string {
	info, ok := debug.ReadBuildInfo()
	if !ok || info.Main.Version == "" || info.Main.Version == "(devel)" {
		return Release
	}
	return info.Main.Version
}
