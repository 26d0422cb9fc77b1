package arcrelease

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// breakingMarker anywhere in a subject line marks the commit as breaking.
const breakingMarker = "BREAKING CHANGE"

// headerPattern matches the conventional commit prefix "type(scope)!: ".
// The scope is matched lazily so "feat(a): see (b): c" keeps "see (b): c"
// as its description.
var headerPattern = regexp.MustCompile(`^([A-Za-z]+)(?:\((.+?)\))?(!)?:\s*`)

// Commit is a parsed commit subject line.
type Commit struct {
	Raw         string
	Type        string // empty when the line has no conventional prefix
	Scope       string
	HasScope    bool
	Bang        bool // "!" before the colon
	Description string
}

// ParseCommit parses a single subject line. It never fails: lines without a
// conventional prefix keep the whole line as their description.
func ParseCommit(line string) Commit {
	c := Commit{Raw: line, Description: line}
	m := headerPattern.FindStringSubmatchIndex(line)
	if m == nil {
		return c
	}
	c.Type = line[m[2]:m[3]]
	if m[4] >= 0 {
		c.Scope = line[m[4]:m[5]]
		c.HasScope = true
	}
	c.Bang = m[6] >= 0
	c.Description = line[m[1]:]
	return c
}

// IsBreaking reports whether the commit carries a breaking change: the line
// mentions BREAKING CHANGE, or a lowercase type is followed by "!", either
// directly ("feat!:") or after a scope ("fix(api)!:").
func (c Commit) IsBreaking() bool {
	if strings.Contains(c.Raw, breakingMarker) {
		return true
	}
	return c.Bang && c.Type != "" && c.Type == strings.ToLower(c.Type)
}

// is reports whether the commit is of the given type without a "!" marker.
// Type matching is case-sensitive.
func (c Commit) is(typ string) bool {
	return c.Type == typ && !c.Bang
}

// Display is the changelog text for the commit: the description with the
// prefix removed and its first letter upper-cased.
func (c Commit) Display() string {
	d := c.Description
	r, size := utf8.DecodeRuneInString(d)
	if size == 0 || r == utf8.RuneError {
		return d
	}
	return string(unicode.ToUpper(r)) + d[size:]
}

// InferBump derives the bump kind for a batch of subject lines. Any breaking
// commit yields major immediately, including a scoped one such as
// "fix(api)!: new shape". Otherwise any feat yields minor and the default is
// patch.
func InferBump(messages []string) BumpKind {
	kind := BumpPatch
	for _, msg := range messages {
		c := ParseCommit(msg)
		if c.IsBreaking() {
			return BumpMajor
		}
		if c.is("feat") {
			kind = BumpMinor
		}
	}
	return kind
}

// Category is a changelog section. The constant order is the display order.
type Category int

const (
	CategoryBreaking Category = iota
	CategoryAdded
	CategoryChanged
	CategoryFixed
	CategoryPerformance
	CategoryDocumentation
	CategoryTesting
	CategoryMaintenance
	CategoryOther
)

var categoryNames = [...]string{
	CategoryBreaking:      "Breaking",
	CategoryAdded:         "Added",
	CategoryChanged:       "Changed",
	CategoryFixed:         "Fixed",
	CategoryPerformance:   "Performance",
	CategoryDocumentation: "Documentation",
	CategoryTesting:       "Testing",
	CategoryMaintenance:   "Maintenance",
	CategoryOther:         "Other",
}

func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return fmt.Sprintf("Category(%d)", int(c))
	}
	return categoryNames[c]
}

// Policy decides which commits make it into the changelog.
type Policy int

const (
	// Inclusive files every commit, using Other as the catch-all.
	Inclusive Policy = iota
	// Curated keeps user-facing commits only and drops the rest.
	Curated
)

func (p Policy) String() string {
	switch p {
	case Inclusive:
		return "inclusive"
	case Curated:
		return "curated"
	}
	return fmt.Sprintf("Policy(%d)", int(p))
}

// ParsePolicy accepts "inclusive" (alias "full") and "curated".
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "inclusive", "full":
		return Inclusive, nil
	case "curated":
		return Curated, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
}

// MarshalText implements encoding.TextMarshaler.
func (p Policy) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Policy) UnmarshalText(text []byte) error {
	parsed, err := ParsePolicy(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Classify files a commit under a category. The second result is false when
// the policy drops the commit.
func Classify(c Commit, policy Policy) (Category, bool) {
	switch {
	case c.IsBreaking():
		return CategoryBreaking, true
	case c.is("feat"):
		return CategoryAdded, true
	case c.is("fix"):
		return CategoryFixed, true
	case c.is("refactor"):
		return CategoryChanged, true
	case c.is("perf"):
		return CategoryPerformance, true
	}

	if policy == Curated {
		return 0, false
	}

	switch {
	case c.is("docs"):
		return CategoryDocumentation, true
	case c.is("test"):
		return CategoryTesting, true
	case c.is("chore"):
		return CategoryMaintenance, true
	}
	return CategoryOther, true
}
