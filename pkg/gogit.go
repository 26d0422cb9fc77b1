package arcrelease

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
	"github.com/rs/zerolog"
)

// GoGit implements Repository with go-git, without a git binary.
type GoGit struct {
	// Author signs commits and tags. When nil, go-git reads user.name and
	// user.email from the repository and global config.
	Author *object.Signature

	repo *git.Repository
	dir  string
	log  zerolog.Logger
}

// OpenGoGit opens the repository containing dir.
func OpenGoGit(dir string, log zerolog.Logger) (*GoGit, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", dir, err)
	}
	repo, err := git.PlainOpenWithOptions(abs, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", dir, err)
	}
	return &GoGit{repo: repo, dir: abs, log: log}, nil
}

// tagTargets maps commit hashes to the tag pointing at them. Annotated tags
// are peeled; tags of non-commit objects are skipped.
func (g *GoGit) tagTargets() (map[plumbing.Hash]string, error) {
	iter, err := g.repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}

	targets := make(map[plumbing.Hash]string)
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		hash := ref.Hash()
		tag, err := g.repo.TagObject(hash)
		switch {
		case err == nil:
			commit, err := tag.Commit()
			if err != nil {
				return nil
			}
			hash = commit.Hash
		case !errors.Is(err, plumbing.ErrObjectNotFound):
			return err
		}

		name := ref.Name().Short()
		if prev, ok := targets[hash]; !ok || name > prev {
			targets[hash] = name
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("reading tags: %w", err)
	}
	return targets, nil
}

func (g *GoGit) head() (plumbing.Hash, error) {
	ref, err := g.repo.Head()
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("resolving HEAD: %w", err)
	}
	return ref.Hash(), nil
}

func (g *GoGit) LastTag(ctx context.Context) (string, error) {
	targets, err := g.tagTargets()
	if err != nil {
		return "", err
	}
	if len(targets) == 0 {
		return "", ErrNoTag
	}

	head, err := g.head()
	if err != nil {
		g.log.Debug().Err(err).Msg("no HEAD, so no tag")
		return "", ErrNoTag
	}

	// Breadth-first so the tag nearest to HEAD wins, as with git describe.
	iter, err := g.repo.Log(&git.LogOptions{From: head, Order: git.LogOrderBSF})
	if err != nil {
		return "", fmt.Errorf("walking history: %w", err)
	}
	defer iter.Close()

	var found string
	err = iter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if name, ok := targets[c.Hash]; ok {
			found = name
			return storer.ErrStop
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("walking history: %w", err)
	}
	if found == "" {
		return "", ErrNoTag
	}
	return found, nil
}

// ancestors returns the set of commits reachable from rev.
func (g *GoGit) ancestors(ctx context.Context, rev string) (map[plumbing.Hash]struct{}, error) {
	from, err := g.repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", rev, err)
	}
	iter, err := g.repo.Log(&git.LogOptions{From: *from})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", rev, err)
	}
	defer iter.Close()

	seen := make(map[plumbing.Hash]struct{})
	err = iter.ForEach(func(c *object.Commit) error {
		seen[c.Hash] = struct{}{}
		return ctx.Err()
	})
	return seen, err
}

func (g *GoGit) Messages(ctx context.Context, since string, limit int) ([]string, error) {
	head, err := g.head()
	if err != nil {
		return nil, err
	}

	var exclude map[plumbing.Hash]struct{}
	if since != "" {
		if exclude, err = g.ancestors(ctx, since); err != nil {
			return nil, err
		}
	}

	iter, err := g.repo.Log(&git.LogOptions{From: head, Order: git.LogOrderCommitterTime})
	if err != nil {
		return nil, fmt.Errorf("walking history: %w", err)
	}
	defer iter.Close()

	var msgs []string
	err = iter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, skip := exclude[c.Hash]; skip {
			return nil
		}
		if subject := subjectLine(c.Message); subject != "" {
			msgs = append(msgs, subject)
		}
		if limit > 0 && len(msgs) >= limit {
			return storer.ErrStop
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking history: %w", err)
	}
	return msgs, nil
}

func subjectLine(message string) string {
	message = strings.TrimLeft(message, "\r\n")
	if i := strings.IndexByte(message, '\n'); i != -1 {
		message = message[:i]
	}
	return strings.TrimSpace(message)
}

func (g *GoGit) IsClean(ctx context.Context) (bool, error) {
	wt, err := g.repo.Worktree()
	if err != nil {
		return false, fmt.Errorf("opening worktree: %w", err)
	}
	status, err := wt.Status()
	if err != nil {
		return false, fmt.Errorf("reading status: %w", err)
	}
	for path, fs := range status {
		if fs.Staging == git.Untracked && fs.Worktree == git.Untracked {
			continue
		}
		if fs.Staging != git.Unmodified || fs.Worktree != git.Unmodified {
			g.log.Debug().Str("path", path).Msg("tracked file modified")
			return false, nil
		}
	}
	return true, nil
}

func (g *GoGit) Stage(ctx context.Context, paths []string) error {
	wt, err := g.repo.Worktree()
	if err != nil {
		return fmt.Errorf("opening worktree: %w", err)
	}
	root := wt.Filesystem.Root()
	for _, p := range paths {
		abs := p
		if !filepath.IsAbs(abs) {
			abs = filepath.Join(g.dir, p)
		}
		rel, err := filepath.Rel(root, abs)
		if err != nil {
			return fmt.Errorf("staging %s: %w", p, err)
		}
		g.log.Debug().Str("path", rel).Msg("go-git add")
		if _, err := wt.Add(filepath.ToSlash(rel)); err != nil {
			return fmt.Errorf("staging %s: %w", p, err)
		}
	}
	return nil
}

func (g *GoGit) Commit(ctx context.Context, message string) error {
	if message == "" {
		return errors.New("commit message is required")
	}
	wt, err := g.repo.Worktree()
	if err != nil {
		return fmt.Errorf("opening worktree: %w", err)
	}
	hash, err := wt.Commit(message, &git.CommitOptions{Author: g.Author})
	if err != nil {
		return fmt.Errorf("commit failed: %w", err)
	}
	g.log.Debug().Str("hash", hash.String()).Msg("go-git commit")
	return nil
}

func (g *GoGit) Tag(ctx context.Context, name, message string) error {
	head, err := g.head()
	if err != nil {
		return err
	}
	if _, err := g.repo.CreateTag(name, head, &git.CreateTagOptions{
		Tagger:  g.Author,
		Message: message,
	}); err != nil {
		return fmt.Errorf("tag %s failed: %w", name, err)
	}
	return nil
}

func (g *GoGit) Push(ctx context.Context, remote, branch string) error {
	branchRef := plumbing.NewBranchReferenceName(branch)
	err := g.repo.PushContext(ctx, &git.PushOptions{
		RemoteName: remote,
		RefSpecs: []config.RefSpec{
			config.RefSpec(branchRef + ":" + branchRef),
			config.RefSpec("refs/tags/*:refs/tags/*"),
		},
	})
	if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return fmt.Errorf("push to %s failed: %w", remote, err)
	}
	return nil
}
