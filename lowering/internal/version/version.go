package version

import "fmt"

// Bumped by hand on tagged releases.
const (
	Major = 0
	Minor = 3
	Patch = 0
)

// String returns the human-readable version line.
func String() string {
	return fmt.Sprintf("glow %d.%d.%d", Major, Minor, Patch)
}
