// Package main implements the arcrelease CLI tool.
//
// The arcrelease tool automates semantic version bumps for a plugin whose
// version lives in a JSON manifest (default ".claude-plugin/plugin.json"). It
// classifies conventional commits, derives the next version, and keeps a
// Keep a Changelog style CHANGELOG.md current.
//
// Command Usage:
//
//	arcrelease [flags] bump [major|minor|patch|auto|x.y.z] [commit-message]
//	arcrelease [flags] release [major|minor|patch|x.y.z]
//
// bump rewrites the manifest and the changelog and prints the new version on
// stdout. The kind defaults to patch; with "auto" it is inferred from the
// commit message.
//
// release refuses to run on a dirty working tree, reads the commits since the
// last tag, infers the bump kind, rewrites the manifest and changelog, commits
// "chore(release): vX.Y.Z", creates the annotated tag vX.Y.Z, pushes the branch
// and tags, and creates a GitHub release through the gh CLI. A failed GitHub
// release is reported as a warning; the local commit and tag stay in place.
//
// Flags:
//
//	-dir:        Project directory. Relative paths resolve against it.
//	-config:     Config file. Defaults to <dir>/.arcrelease.yaml.
//	-dry:        Compute everything, write nothing.
//	-verbose:    Log git and gh invocations to stderr.
//	-no-color:   Disable colored output.
//	-backend:    "cli" shells out to git, "go-git" uses the pure-Go library.
//	-policy:     "inclusive" lists every commit, "curated" only user-facing ones.
//	-sync-file:  Additional file whose version declaration follows the manifest.
//	             May be repeated.
//	-window:     (bump) Commits to read when there is no tag. Default 50.
//	-no-push:    (release) Skip the push.
//	-no-publish: (release) Skip the GitHub release.
//
// Examples:
//
//	# Bump the patch version (e.g. 1.2.3 → 1.2.4)
//	arcrelease bump patch
//
//	# Infer the bump from a commit message, as a commit-msg hook would
//	arcrelease bump auto "feat(parser): support scopes"
//
//	# Release whatever the commits since the last tag call for
//	arcrelease release
//
//	# Force a major release without touching the remote
//	arcrelease release --no-push --no-publish major
package main
