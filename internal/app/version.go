package app

import "fmt"

// Version and Commit are set via ldflags at build time.
// Example: go build -ldflags "-X github.com/heartmarshall/daydrill/internal/app.Version=1.0.0"
var (
	Version = "dev"
	Commit  = "unknown"
)

// BuildVersion returns a formatted version string for the banner and health endpoints.
func BuildVersion() string {
	return fmt.Sprintf("%s (%s)", Version, Commit)
}
