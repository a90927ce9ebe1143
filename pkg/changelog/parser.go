package changelog

import (
	"bufio"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
)

var (
	// headingRe matches any version-looking heading; the captured groups are
	// validated separately so malformed headings produce precise errors.
	headingRe = regexp.MustCompile(`^##\s+\[([^\]]*)\]\s*-\s*(.*)$`)
	versionRe = regexp.MustCompile(`^\d+\.\d+\.\d+$`)
	commitRe  = regexp.MustCompile(`\b[0-9a-f]{7}\b`)
)

// Load reads and parses a changelog file from the given path
func Load(path string) (*Changelog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open changelog", goerr.V("path", path))
	}
	defer f.Close()

	return Parse(f)
}

// Parse reads a changelog in the release-notes format: one `## [X.Y.Z] - YYYY-MM-DD`
// heading per version followed by a bullet list of free-text notes. Text outside
// headings and bullets (title, mirror statement) is ignored. A heading that does
// not carry a valid dotted version and ISO date is a parse error.
func Parse(r io.Reader) (*Changelog, error) {
	var changelog Changelog
	var current *Release

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimRight(scanner.Text(), " \t")

		if m := headingRe.FindStringSubmatch(text); m != nil {
			release, err := parseHeading(m[1], m[2], line)
			if err != nil {
				return nil, err
			}
			changelog.Releases = append(changelog.Releases, *release)
			current = &changelog.Releases[len(changelog.Releases)-1]
			continue
		}

		if note, ok := parseBullet(text); ok && current != nil {
			current.Notes = append(current.Notes, note)
			if current.UpstreamCommit == "" {
				current.UpstreamCommit = commitRe.FindString(note)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to read changelog")
	}

	return &changelog, nil
}

func parseHeading(version, date string, line int) (*Release, error) {
	if !versionRe.MatchString(version) {
		return nil, goerr.New("heading version is not a dotted version",
			goerr.V("version", version), goerr.V("line", line))
	}
	date = strings.TrimSpace(date)
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, goerr.New("heading date is not a valid ISO date",
			goerr.V("date", date), goerr.V("line", line))
	}
	return &Release{Version: version, Date: date, Line: line}, nil
}

func parseBullet(text string) (string, bool) {
	trimmed := strings.TrimSpace(text)
	for _, prefix := range []string{"- ", "* "} {
		if strings.HasPrefix(trimmed, prefix) {
			return strings.TrimSpace(strings.TrimPrefix(trimmed, prefix)), true
		}
	}
	return "", false
}

// Lint applies the structural checks that hold for a published changelog:
// version order is monotonically non-increasing and no version repeats.
// Heading format problems surface as Parse errors instead.
func Lint(c *Changelog) []Issue {
	var issues []Issue

	seen := map[string]int{}
	for i, release := range c.Releases {
		if prevLine, dup := seen[release.Version]; dup {
			issues = append(issues, Issue{
				Line:    release.Line,
				Message: "duplicate version " + strconv.Quote(release.Version) +
					" (first listed at line " + strconv.Itoa(prevLine) + ")",
			})
		} else {
			seen[release.Version] = release.Line
		}

		if i > 0 {
			prev := c.Releases[i-1]
			if compareVersions(release.Version, prev.Version) > 0 {
				issues = append(issues, Issue{
					Line:    release.Line,
					Message: "version " + release.Version + " listed after older version " + prev.Version,
				})
			}
		}
	}

	return issues
}

// compareVersions compares dotted versions numerically. Both inputs must have
// passed versionRe.
func compareVersions(a, b string) int {
	as := strings.Split(a, ".")
	bs := strings.Split(b, ".")
	for i := 0; i < 3; i++ {
		an, _ := strconv.Atoi(as[i])
		bn, _ := strconv.Atoi(bs[i])
		if an != bn {
			if an < bn {
				return -1
			}
			return 1
		}
	}
	return 0
}
