// Package version exposes the jrny release version embedded from VERSION.
package version

import (
	_ "embed"
	"fmt"
	"runtime"
	"strings"
)

//go:embed VERSION
var versionContent string

// Get returns the release version from VERSION.
func Get() string {
	return strings.TrimSpace(versionContent)
}

// Build describes the binary: release version, Go toolchain and platform.
func Build() string {
	return fmt.Sprintf("%s (%s %s/%s)", Get(), runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
