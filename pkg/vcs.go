package arcrelease

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// Source answers the history questions a release needs.
type Source interface {
	// LastTag returns the most recent tag reachable from HEAD, or ErrNoTag.
	LastTag(ctx context.Context) (string, error)

	// Messages returns subject lines of commits reachable from HEAD but not
	// from since, newest first. An empty since means all history; limit 0
	// means no limit.
	Messages(ctx context.Context, since string, limit int) ([]string, error)

	// IsClean reports whether tracked files are free of staged or unstaged
	// modifications. Untracked files are ignored.
	IsClean(ctx context.Context) (bool, error)
}

// Mutator performs the writes of the release flow.
type Mutator interface {
	// Stage adds paths, relative to the repository root, to the index.
	Stage(ctx context.Context, paths []string) error

	// Commit records the index with message.
	Commit(ctx context.Context, message string) error

	// Tag creates an annotated tag at HEAD.
	Tag(ctx context.Context, name, message string) error

	// Push sends branch and all tags to remote.
	Push(ctx context.Context, remote, branch string) error
}

// Repository is a Source that can also be written to.
type Repository interface {
	Source
	Mutator
}

// Backend names a Repository implementation.
type Backend string

const (
	// BackendCLI shells out to the git binary.
	BackendCLI Backend = "cli"
	// BackendGoGit uses the pure-Go go-git library.
	BackendGoGit Backend = "go-git"
)

// ParseBackend accepts "cli" (alias "git") and "go-git" (alias "gogit").
func ParseBackend(s string) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "cli", "git":
		return BackendCLI, nil
	case "go-git", "gogit":
		return BackendGoGit, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownBackend, s)
}

// OpenRepository opens the repository containing dir with the given backend.
func OpenRepository(ctx context.Context, dir string, backend Backend, log zerolog.Logger) (Repository, error) {
	switch backend {
	case BackendCLI, "":
		return NewGitCLI(ctx, dir, log)
	case BackendGoGit:
		return OpenGoGit(dir, log)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
}
