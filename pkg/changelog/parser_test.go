package changelog_test

import (
	"strings"
	"testing"

	"github.com/the-Drunken-coder/atlas-asset-client-go/pkg/changelog"
)

const sampleChangelog = `# Changelog

## [0.4.1] - 2026-08-12

- Synced upstream commit ` + "`9f3c2ab`" + ` from the ATLAS monorepo
- Internal updates to HTTP client implementation
- Bumped package version in go.mod

## [0.4.0] - 2026-06-30

- Synced upstream commit ` + "`4d81e0c`" + ` from the ATLAS monorepo

## [0.3.2] - 2026-05-18

- No functional changes, metadata bump only

This package is mirrored from the ATLAS monorepo on each sync.
`

func TestParse(t *testing.T) {
	log, err := changelog.Parse(strings.NewReader(sampleChangelog))
	if err != nil {
		t.Fatalf("Parse() unexpected error = %v", err)
	}

	if len(log.Releases) != 3 {
		t.Fatalf("Parse() returned %d releases, want 3", len(log.Releases))
	}

	latest := log.Latest()
	if latest.Version != "0.4.1" {
		t.Errorf("Latest() version = %q, want 0.4.1", latest.Version)
	}
	if latest.Date != "2026-08-12" {
		t.Errorf("Latest() date = %q, want 2026-08-12", latest.Date)
	}
	if len(latest.Notes) != 3 {
		t.Errorf("Latest() has %d notes, want 3", len(latest.Notes))
	}
	if latest.UpstreamCommit != "9f3c2ab" {
		t.Errorf("Latest() upstream commit = %q, want 9f3c2ab", latest.UpstreamCommit)
	}

	if log.Releases[2].UpstreamCommit != "" {
		t.Errorf("release without commit reference got %q", log.Releases[2].UpstreamCommit)
	}
	if found := log.Find("0.4.0"); found == nil || found.UpstreamCommit != "4d81e0c" {
		t.Errorf("Find(0.4.0) = %+v, want upstream commit 4d81e0c", found)
	}
}

func TestParse_InvalidHeadings(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{
			name:  "version is not dotted",
			input: "## [v0.4] - 2026-08-12\n- note\n",
		},
		{
			name:  "date is not ISO",
			input: "## [0.4.1] - 12.08.2026\n- note\n",
		},
		{
			name:  "date missing",
			input: "## [0.4.1] - \n- note\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := changelog.Parse(strings.NewReader(tt.input)); err == nil {
				t.Error("Parse() should reject malformed heading")
			}
		})
	}
}

func TestLint(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantIssues int
	}{
		{
			name:       "valid changelog",
			input:      sampleChangelog,
			wantIssues: 0,
		},
		{
			name: "version order increasing",
			input: "## [0.3.0] - 2026-01-01\n- a\n" +
				"## [0.4.0] - 2026-02-01\n- b\n",
			wantIssues: 1,
		},
		{
			name: "duplicate version",
			input: "## [0.4.0] - 2026-02-01\n- a\n" +
				"## [0.4.0] - 2026-01-01\n- b\n",
			wantIssues: 1,
		},
		{
			name: "same version string duplicated and out of order",
			input: "## [0.3.0] - 2026-01-01\n- a\n" +
				"## [0.4.0] - 2026-02-01\n- b\n" +
				"## [0.4.0] - 2026-02-01\n- c\n",
			wantIssues: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, err := changelog.Parse(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("Parse() unexpected error = %v", err)
			}

			issues := changelog.Lint(log)
			if len(issues) != tt.wantIssues {
				t.Errorf("Lint() returned %d issues, want %d: %v", len(issues), tt.wantIssues, issues)
			}
		})
	}
}

func TestLint_EqualVersionsAllowedOrder(t *testing.T) {
	// Non-increasing means a strictly newer version below an older one is the
	// only ordering violation; descending order stays clean.
	input := "## [1.2.3] - 2026-03-01\n- a\n" +
		"## [1.2.1] - 2026-02-01\n- b\n" +
		"## [1.0.9] - 2026-01-01\n- c\n"

	log, err := changelog.Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse() unexpected error = %v", err)
	}
	if issues := changelog.Lint(log); len(issues) != 0 {
		t.Errorf("Lint() returned unexpected issues: %v", issues)
	}
}
