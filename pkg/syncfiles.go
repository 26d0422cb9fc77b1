package arcrelease

import (
	"bytes"
	"fmt"
	"os"
	"regexp"
)

// versionPattern locates a primary version declaration. Capture groups are:
// 1 prefix, 2 optional "v", 3 version.
type versionPattern struct {
	name    string
	pattern *regexp.Regexp
}

const semverText = `\d+\.\d+\.\d+(?:-[0-9A-Za-z.-]+)?`

// mainVersionPatterns match declarations that usually carry a project's own
// version rather than a dependency's.
var mainVersionPatterns = []versionPattern{
	{
		name:    "JSON version field",
		pattern: regexp.MustCompile(`(?m)^(\s*"version"\s*:\s*")(v?)(` + semverText + `)"`),
	},
	{
		name:    "TOML version field",
		pattern: regexp.MustCompile(`(?m)^(\s*version\s*=\s*")(v?)(` + semverText + `)"`),
	},
	{
		name:    "VERSION assignment",
		pattern: regexp.MustCompile(`(?mi)^(\s*VERSION\s*[:=]\s*["']?)(v?)(` + semverText + `)`),
	},
}

// VersionMatch is a version declaration found in a file.
type VersionMatch struct {
	Line    int
	Version string
	Pattern string
	Prefix  bool // declaration was written with a leading "v"

	start, end int
}

// FindMainVersion returns the earliest primary version declaration in
// content, or nil when there is none.
func FindMainVersion(content []byte) *VersionMatch {
	var best *VersionMatch
	for _, vp := range mainVersionPatterns {
		m := vp.pattern.FindSubmatchIndex(content)
		if m == nil || (best != nil && m[6] >= best.start) {
			continue
		}
		best = &VersionMatch{
			Line:    bytes.Count(content[:m[6]], []byte("\n")) + 1,
			Version: string(content[m[6]:m[7]]),
			Pattern: vp.name,
			Prefix:  m[5] > m[4],
			start:   m[6],
			end:     m[7],
		}
	}
	return best
}

// SyncVersionInFile rewrites the primary version declaration of path to v.
// It reports false, without touching the file, when no declaration is found.
func SyncVersionInFile(path string, v Version) (bool, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("reading %s: %w", path, err)
	}

	m := FindMainVersion(content)
	if m == nil {
		return false, nil
	}

	var out bytes.Buffer
	out.Write(content[:m.start])
	out.WriteString(v.String())
	out.Write(content[m.end:])

	if err := os.WriteFile(path, out.Bytes(), 0644); err != nil {
		return false, fmt.Errorf("writing %s: %w", path, err)
	}
	return true, nil
}
