package arcrelease

import "errors"

var (
	// ErrMalformedVersion is returned when a version string is not exactly
	// three dot-separated non-negative integers.
	ErrMalformedVersion = errors.New("malformed version")

	// ErrDirtyWorkingTree is returned by Release when tracked files have
	// uncommitted modifications.
	ErrDirtyWorkingTree = errors.New("working tree has uncommitted changes")

	// ErrNoTag is returned by Source.LastTag when no tag is reachable from HEAD.
	ErrNoTag = errors.New("no tag found")

	// ErrNoVersionField is returned when the manifest has no string "version" field.
	ErrNoVersionField = errors.New("manifest has no version field")

	// ErrSameVersion is returned when an explicit target equals the current version.
	ErrSameVersion = errors.New("new version is the same as the current version")

	ErrUnknownPolicy  = errors.New("unknown changelog policy")
	ErrUnknownBackend = errors.New("unknown vcs backend")
)
