// Package tableside holds build metadata for the tableside module.
package tableside

// Version is the release version, overridden at build time with
// -ldflags "-X github.com/mesh-intelligence/tableside/pkg/tableside.Version=...".
var Version = "0.1.0"

// ModulePath is the Go module path.
const ModulePath = "github.com/mesh-intelligence/tableside"
