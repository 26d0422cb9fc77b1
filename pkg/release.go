package arcrelease

import (
	"context"
	"errors"
	"fmt"
)

// maxListedCommits bounds the commit list printed before a release.
const maxListedCommits = 10

// ReleaseOptions configure Release.
type ReleaseOptions struct {
	Options

	// Forced, when set, overrides the inferred bump: a kind or an explicit
	// version.
	Forced string
}

// Release cuts a release from the commits since the last tag: it bumps the
// manifest, updates the changelog, commits, tags, and optionally pushes and
// publishes a hosted release.
//
// A dirty working tree fails with ErrDirtyWorkingTree before anything is
// written. No commits since the last tag is not an error; the result has
// NothingToRelease set.
func Release(ctx context.Context, opts ReleaseOptions) (Result, error) {
	var res Result
	o := opts.Options
	rep := o.Reporter
	log := o.logger()

	if o.Repo == nil {
		return res, errors.New("release needs a repository")
	}

	clean, err := o.Repo.IsClean(ctx)
	if err != nil {
		return res, fmt.Errorf("checking working tree: %w", err)
	}
	if !clean {
		return res, ErrDirtyWorkingTree
	}

	res.LastTag, res.Commits = o.history(ctx, 0)
	if len(res.Commits) == 0 {
		res.NothingToRelease = true
		rep.Info("No commits since last tag. Nothing to release.")
		return res, nil
	}

	since := res.LastTag
	if since == "" {
		since = "beginning"
	}
	rep.Info("Found %d commit(s) since %s:", len(res.Commits), since)
	for i, c := range res.Commits {
		if i == maxListedCommits {
			rep.Bullet("... and %d more", len(res.Commits)-maxListedCommits)
			break
		}
		rep.Bullet("%s", c)
	}

	m, err := ReadManifest(o.path(o.Config.Manifest))
	if err != nil {
		return res, err
	}
	res.OldVersion = m.Version

	if opts.Forced != "" {
		res.NewVersion, res.BumpType, err = ResolveTarget(m.Version, opts.Forced)
		if err != nil {
			return res, err
		}
	} else {
		kind := InferBump(res.Commits)
		res.NewVersion = m.Version.Next(kind)
		res.BumpType = string(kind)
	}
	res.Tag = res.NewVersion.Tag()
	rep.Info("Version bump: %s → %s (%s)", res.OldVersion, rep.Highlight(res.NewVersion.String()), res.BumpType)

	if prev, err := ParseVersion(res.LastTag); err == nil && res.NewVersion.Compare(prev) <= 0 {
		res.warn(rep, "new version %s does not sort after last tag %s", res.NewVersion, res.LastTag)
	}

	doc, err := o.applyVersion(m, &res, res.Commits, o.Config.Policy.Release)
	if err != nil {
		return res, err
	}

	if o.DryRun {
		rep.Info("Dry run: no commit, tag, push or release created")
		return res, nil
	}

	if err := o.Repo.Stage(ctx, res.UpdatedFiles); err != nil {
		return res, err
	}
	if err := o.Repo.Commit(ctx, "chore(release): "+res.Tag); err != nil {
		return res, err
	}
	rep.Step("Committed changes")

	if err := o.Repo.Tag(ctx, res.Tag, "Release "+res.Tag); err != nil {
		return res, err
	}
	rep.Step("Created tag %s", res.Tag)

	if o.Config.Push {
		if err := o.Repo.Push(ctx, o.Config.Remote, o.Config.Branch); err != nil {
			return res, err
		}
		res.Pushed = true
		rep.Step("Pushed to %s", o.Config.Remote)
	}

	if o.Config.Publish && o.Publisher != nil {
		notes, _ := SectionBody(doc, res.NewVersion)
		if err := o.Publisher.Publish(ctx, res.Tag, res.Tag, notes); err != nil {
			log.Debug().Err(err).Str("tag", res.Tag).Msg("publish failed")
			res.warn(rep, "could not create hosted release %s: %v", res.Tag, err)
		} else {
			res.Published = true
			rep.Step("Created hosted release %s", res.Tag)
		}
	}

	rep.Step("Release %s complete", res.Tag)
	return res, nil
}
