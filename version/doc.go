// Package version reports build information for linqkit binaries.
//
// Version, git commit, branch, and build time are set at compile time
// via -ldflags:
//
//	go build -ldflags "-X github.com/kbukum/linqkit/version.Version=1.0.0" ./cmd/linq
//
// Values left empty are filled from the module build info embedded by the
// Go toolchain.
package version
