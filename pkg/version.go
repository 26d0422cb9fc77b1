package arcrelease

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/mod/semver"
)

// Version is a three-part numeric version. It is a value type; Next returns
// a new Version instead of mutating the receiver.
type Version struct {
	Major int
	Minor int
	Patch int
}

// BumpKind selects which Version component Next increments.
type BumpKind string

const (
	BumpMajor BumpKind = "major"
	BumpMinor BumpKind = "minor"
	BumpPatch BumpKind = "patch"
)

// ParseBumpKind recognises "major", "minor" and "patch" in any case.
func ParseBumpKind(s string) (BumpKind, bool) {
	switch k := BumpKind(strings.ToLower(strings.TrimSpace(s))); k {
	case BumpMajor, BumpMinor, BumpPatch:
		return k, true
	}
	return "", false
}

// ParseVersion parses "major.minor.patch". A leading "v" and surrounding
// whitespace are tolerated; anything else fails with ErrMalformedVersion.
func ParseVersion(s string) (Version, error) {
	raw := strings.TrimPrefix(strings.TrimSpace(s), "v")
	parts := strings.Split(raw, ".")
	if len(parts) != 3 {
		return Version{}, fmt.Errorf("%w: %q needs exactly three components", ErrMalformedVersion, s)
	}

	var nums [3]int
	for i, p := range parts {
		if p == "" || strings.TrimLeft(p, "0123456789") != "" {
			return Version{}, fmt.Errorf("%w: %q has non-numeric component %q", ErrMalformedVersion, s, p)
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return Version{}, fmt.Errorf("%w: %q: %v", ErrMalformedVersion, s, err)
		}
		nums[i] = n
	}
	return Version{Major: nums[0], Minor: nums[1], Patch: nums[2]}, nil
}

// MustParseVersion is like ParseVersion but panics on error.
func MustParseVersion(s string) Version {
	v, err := ParseVersion(s)
	if err != nil {
		panic(err)
	}
	return v
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Tag is the git tag name for v, e.g. "v1.2.3".
func (v Version) Tag() string {
	return "v" + v.String()
}

// Next returns the version after v for the given kind. Lower components are
// reset to zero. Unknown kinds bump the patch component.
func (v Version) Next(kind BumpKind) Version {
	switch kind {
	case BumpMajor:
		return Version{Major: v.Major + 1}
	case BumpMinor:
		return Version{Major: v.Major, Minor: v.Minor + 1}
	default:
		return Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch + 1}
	}
}

// Compare returns -1, 0 or +1 following semver precedence.
func (v Version) Compare(other Version) int {
	return semver.Compare(v.Tag(), other.Tag())
}

// ResolveTarget computes the version a bump argument leads to. The argument is
// either a bump kind or an explicit version such as "2.0.0". The returned
// label is the kind used, or "explicit".
func ResolveTarget(current Version, arg string) (Version, string, error) {
	if kind, ok := ParseBumpKind(arg); ok {
		return current.Next(kind), string(kind), nil
	}

	canonical := "v" + strings.TrimPrefix(strings.TrimSpace(arg), "v")
	if semver.IsValid(canonical) {
		target, err := ParseVersion(arg)
		if err != nil {
			return Version{}, "", fmt.Errorf("explicit version: %w", err)
		}
		if target == current {
			return Version{}, "", fmt.Errorf("%w (%s)", ErrSameVersion, target)
		}
		return target, "explicit", nil
	}

	return current.Next(BumpPatch), string(BumpPatch), nil
}
