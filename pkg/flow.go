package arcrelease

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// Options are shared by Bump and Release.
type Options struct {
	// Dir is the project directory; relative config paths resolve against it.
	Dir    string
	Config Config

	// Repo supplies history and, for releases, performs git writes. Bump
	// treats a nil Repo as an empty history.
	Repo      Repository
	Publisher Publisher

	Reporter *Reporter
	Logger   *zerolog.Logger

	// Now is the clock used for entry dates; time.Now when nil.
	Now func() time.Time

	// DryRun computes everything and writes nothing.
	DryRun bool
}

// Result describes what a flow did, or would do in a dry run.
type Result struct {
	OldVersion Version
	NewVersion Version
	BumpType   string // "major", "minor", "patch" or "explicit"

	LastTag string   // empty when history had no tag
	Commits []string // subject lines considered, newest first

	Entry      Entry
	Documented bool // false when the changelog was left alone

	NothingToRelease bool
	Tag              string
	Pushed           bool
	Published        bool

	// UpdatedFiles are project-relative paths written (or that would be).
	UpdatedFiles []string
	Warnings     []string
}

func (o Options) logger() zerolog.Logger {
	if o.Logger == nil {
		return zerolog.Nop()
	}
	return *o.Logger
}

func (o Options) today() time.Time {
	now := time.Now
	if o.Now != nil {
		now = o.Now
	}
	t := now().UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (o Options) path(rel string) string {
	if filepath.IsAbs(rel) || o.Dir == "" {
		return rel
	}
	return filepath.Join(o.Dir, rel)
}

// history returns the last tag and the commit subjects after it. Failures
// degrade to "no tag" and "no commits". Without a tag, window bounds the
// number of commits read; 0 means all of them.
func (o Options) history(ctx context.Context, window int) (string, []string) {
	if o.Repo == nil {
		return "", nil
	}
	log := o.logger()

	tag, err := o.Repo.LastTag(ctx)
	if err != nil {
		if !errors.Is(err, ErrNoTag) {
			log.Debug().Err(err).Msg("last tag lookup failed, using full history")
		}
		tag = ""
	}

	limit := 0
	if tag == "" {
		limit = window
	}
	msgs, err := o.Repo.Messages(ctx, tag, limit)
	if err != nil {
		log.Debug().Err(err).Str("since", tag).Msg("commit log failed, treating as empty")
		return tag, nil
	}
	return tag, msgs
}

func (r *Result) warn(rep *Reporter, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	r.Warnings = append(r.Warnings, msg)
	rep.Warn("%s", msg)
}

// applyVersion writes the new version to the manifest and any sync files,
// then renders and splices the changelog entry. It returns the changelog
// text after the splice.
func (o Options) applyVersion(m *Manifest, res *Result, messages []string, policy Policy) (string, error) {
	rep := o.Reporter

	// Read the changelog up front so a failure leaves every file untouched.
	doc, err := os.ReadFile(o.path(o.Config.Changelog))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("reading changelog: %w", err)
	}

	if err := m.SetVersion(res.NewVersion); err != nil {
		return "", err
	}
	if !o.DryRun {
		if err := m.Write(); err != nil {
			return "", err
		}
	}
	res.UpdatedFiles = append(res.UpdatedFiles, o.Config.Manifest)
	rep.Step("Updated %s", o.Config.Manifest)

	for _, sf := range o.Config.SyncFiles {
		if o.DryRun {
			content, err := os.ReadFile(o.path(sf))
			if err == nil && FindMainVersion(content) != nil {
				res.UpdatedFiles = append(res.UpdatedFiles, sf)
			}
			continue
		}
		ok, err := SyncVersionInFile(o.path(sf), res.NewVersion)
		switch {
		case err != nil:
			res.warn(rep, "failed to sync version in %s: %v", sf, err)
		case !ok:
			res.warn(rep, "no version declaration found in %s", sf)
		default:
			res.UpdatedFiles = append(res.UpdatedFiles, sf)
			rep.Step("Synced %s", sf)
		}
	}

	entry, ok := Render(res.NewVersion, o.today(), messages, policy)
	res.Entry = entry
	if !ok {
		rep.Info("No user-facing changes to document")
		return string(doc), nil
	}
	res.Documented = true

	updated := Splice(string(doc), entry.String(), o.Config.Project)
	if !o.DryRun {
		if err := os.WriteFile(o.path(o.Config.Changelog), []byte(updated), 0644); err != nil {
			return "", fmt.Errorf("writing changelog: %w", err)
		}
	}
	res.UpdatedFiles = append(res.UpdatedFiles, o.Config.Changelog)
	rep.Step("Updated %s", o.Config.Changelog)
	return updated, nil
}
