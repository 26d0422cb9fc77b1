package arcrelease

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// GitCLI implements Repository on top of the git executable.
type GitCLI struct {
	dir     string
	gitPath string
	log     zerolog.Logger
}

// NewGitCLI verifies that git is available and returns a GitCLI rooted at dir.
func NewGitCLI(ctx context.Context, dir string, log zerolog.Logger) (*GitCLI, error) {
	gitPath, err := exec.LookPath("git")
	if err != nil {
		return nil, fmt.Errorf("git not found in PATH: %w", err)
	}
	if err := exec.CommandContext(ctx, gitPath, "--version").Run(); err != nil {
		return nil, errors.New("git is not available on the system")
	}
	return &GitCLI{dir: dir, gitPath: gitPath, log: log}, nil
}

// run executes git in the repository and returns trimmed stdout. Failures
// carry git's stderr.
func (g *GitCLI) run(ctx context.Context, args ...string) (string, error) {
	full := append([]string{"-C", g.dir}, args...)
	cmd := exec.CommandContext(ctx, g.gitPath, full...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	g.log.Debug().Strs("args", args).Str("dir", g.dir).Msg("git")
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("git %s failed: %w, detail: %s", args[0], err, strings.TrimSpace(stderr.String()))
	}
	return strings.TrimSpace(stdout.String()), nil
}

func (g *GitCLI) LastTag(ctx context.Context) (string, error) {
	tag, err := g.run(ctx, "describe", "--tags", "--abbrev=0")
	if err != nil {
		g.log.Debug().Err(err).Msg("describe found no tag")
		return "", ErrNoTag
	}
	if tag == "" {
		return "", ErrNoTag
	}
	return tag, nil
}

func (g *GitCLI) Messages(ctx context.Context, since string, limit int) ([]string, error) {
	args := []string{"log", "--pretty=format:%s"}
	if limit > 0 {
		args = append(args, "-"+strconv.Itoa(limit))
	}
	if since != "" {
		args = append(args, since+"..HEAD")
	}
	out, err := g.run(ctx, args...)
	if err != nil {
		return nil, err
	}

	var msgs []string
	for _, line := range strings.Split(out, "\n") {
		if line != "" {
			msgs = append(msgs, line)
		}
	}
	return msgs, nil
}

// IsClean mirrors `git diff-index --quiet HEAD --`: exit status 1 means
// tracked changes exist.
func (g *GitCLI) IsClean(ctx context.Context) (bool, error) {
	if _, err := g.run(ctx, "update-index", "-q", "--refresh"); err != nil {
		g.log.Debug().Err(err).Msg("update-index refresh failed")
	}
	_, err := g.run(ctx, "diff-index", "--quiet", "HEAD", "--")
	if err == nil {
		return true, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
		return false, nil
	}
	return false, err
}

func (g *GitCLI) Stage(ctx context.Context, paths []string) error {
	if len(paths) == 0 {
		return nil
	}
	_, err := g.run(ctx, append([]string{"add", "--"}, paths...)...)
	return err
}

func (g *GitCLI) Commit(ctx context.Context, message string) error {
	if message == "" {
		return errors.New("commit message is required")
	}
	_, err := g.run(ctx, "commit", "-m", message)
	return err
}

func (g *GitCLI) Tag(ctx context.Context, name, message string) error {
	_, err := g.run(ctx, "tag", "-a", name, "-m", message)
	return err
}

func (g *GitCLI) Push(ctx context.Context, remote, branch string) error {
	_, err := g.run(ctx, "push", remote, branch, "--tags")
	return err
}
