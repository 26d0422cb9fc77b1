package arcrelease

import (
	"context"
	"strings"
)

// AutoBump as a bump argument infers the kind from the commit message.
const AutoBump = "auto"

// BumpOptions configure Bump.
type BumpOptions struct {
	Options

	// Arg is a bump kind, "auto", or an explicit version.
	Arg string

	// Message, when set, is the only commit considered. Otherwise commits
	// since the last tag (or the most recent Config.BumpWindow) are used.
	Message string
}

// Bump updates the manifest version and the changelog without touching git.
func Bump(ctx context.Context, opts BumpOptions) (Result, error) {
	var res Result
	o := opts.Options
	log := o.logger()

	m, err := ReadManifest(o.path(o.Config.Manifest))
	if err != nil {
		return res, err
	}
	res.OldVersion = m.Version

	if strings.EqualFold(strings.TrimSpace(opts.Arg), AutoBump) {
		kind := InferBump([]string{opts.Message})
		res.NewVersion = m.Version.Next(kind)
		res.BumpType = string(kind)
	} else {
		res.NewVersion, res.BumpType, err = ResolveTarget(m.Version, opts.Arg)
		if err != nil {
			return res, err
		}
	}

	if opts.Message != "" {
		res.Commits = []string{opts.Message}
	} else {
		res.LastTag, res.Commits = o.history(ctx, o.Config.BumpWindow)
	}
	log.Debug().
		Str("from", res.OldVersion.String()).
		Str("to", res.NewVersion.String()).
		Str("kind", res.BumpType).
		Int("commits", len(res.Commits)).
		Msg("bump")

	if _, err := o.applyVersion(m, &res, res.Commits, o.Config.Policy.Bump); err != nil {
		return res, err
	}

	o.Reporter.Step("Bumped version: %s → %s (%s)", res.OldVersion, res.NewVersion, res.BumpType)
	return res, nil
}
