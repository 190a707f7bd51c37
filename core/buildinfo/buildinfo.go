// Package buildinfo carries version metadata stamped at link time:
//
//	-X 'github.com/m3rciful/petshop/core/buildinfo.Version=v0.3.0'
//	-X 'github.com/m3rciful/petshop/core/buildinfo.Commit=abcdef0'
//	-X 'github.com/m3rciful/petshop/core/buildinfo.Date=2026-10-01T12:00:00Z'
package buildinfo

var (
	// Version is the release tag of the binary.
	Version = "dev"
	// Commit is the source revision the binary was built from.
	Commit = "local"
	// Date is the RFC3339 build timestamp.
	Date = ""
)

// String renders version metadata for startup logs.
func String() string {
	if Date == "" {
		return Version + "+" + Commit
	}
	return Version + "+" + Commit + " (" + Date + ")"
}
