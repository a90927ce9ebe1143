package changelog

import "fmt"

// Release is one published version of the package. Records are immutable once
// published and listed most-recent-first.
type Release struct {
	// Version is a bare dotted version, e.g. "0.4.1"
	Version string
	// Date is the release date in ISO form (YYYY-MM-DD)
	Date string
	// Notes are the free-text bullet entries under the version heading
	Notes []string
	// UpstreamCommit is the 7-char monorepo commit hash referenced by the
	// notes, empty when no note mentions one
	UpstreamCommit string
	// Line is the source line of the version heading
	Line int
}

// Changelog is the parsed release history of the package
type Changelog struct {
	Releases []Release
}

// Latest returns the first (most recent) release, or nil when empty
func (c *Changelog) Latest() *Release {
	if len(c.Releases) == 0 {
		return nil
	}
	return &c.Releases[0]
}

// Find returns the release with the given version string, or nil
func (c *Changelog) Find(version string) *Release {
	for i := range c.Releases {
		if c.Releases[i].Version == version {
			return &c.Releases[i]
		}
	}
	return nil
}

// Issue is a single lint finding with its source line
type Issue struct {
	Line    int
	Message string
}

func (x Issue) String() string {
	return fmt.Sprintf("line %d: %s", x.Line, x.Message)
}
