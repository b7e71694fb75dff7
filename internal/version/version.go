// Package version holds build information injected at link time:
//
//	go build -ldflags "-X github.com/rickgao/market-loader/internal/version.Version=0.3.0 \
//	                   -X github.com/rickgao/market-loader/internal/version.Commit=$(git rev-parse --short HEAD) \
//	                   -X github.com/rickgao/market-loader/internal/version.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)" \
//	         ./cmd/loader
package version

import "fmt"

var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// String returns the one-line form printed by -version.
func String() string {
	return fmt.Sprintf("market-loader %s (%s) built %s", Version, Commit, BuildTime)
}

// Attrs returns the build information as slog key/value pairs.
func Attrs() []any {
	return []any{"version", Version, "commit", Commit, "built", BuildTime}
}
