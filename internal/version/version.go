// Package version exposes the build-time version of the binary.
package version

// version is injected at build time via -ldflags. Local builds report dev.
var version = "dev"

// Value returns the version string for this build.
func Value() string {
	return version
}
