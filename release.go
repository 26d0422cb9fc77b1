package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	arcrelease "github.com/arcplugin/arcrelease/pkg"
)

var (
	flagNoPush    bool
	flagNoPublish bool
)

var releaseCmd = &cobra.Command{
	Use:   "release [major|minor|patch|x.y.z]",
	Short: "Cut a release from the commits since the last tag",
	Long: `Analyze the commits since the last tag, bump the manifest version, update
CHANGELOG.md, commit, create an annotated tag, push, and create a GitHub
release with the changelog entry as notes.

The bump kind is inferred from the commits unless given explicitly. The
working tree must be clean.

Examples:
  arcrelease release
  arcrelease release minor
  arcrelease release --no-push --no-publish`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if p, ok, err := policyFlag(cmd); err != nil {
			return err
		} else if ok {
			cfg.Policy.Release = p
		}
		if flagNoPush {
			cfg.Push = false
		}
		if flagNoPublish {
			cfg.Publish = false
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		log := newLogger()
		rep := newReporter(cmd, false)

		repo, err := arcrelease.OpenRepository(ctx, flagDir, cfg.Backend, log)
		if err != nil {
			return err
		}

		opts := arcrelease.ReleaseOptions{
			Options: arcrelease.Options{
				Dir:      flagDir,
				Config:   cfg,
				Repo:     repo,
				Reporter: rep,
				Logger:   &log,
				DryRun:   flagDry,
			},
		}
		if cfg.Publish {
			opts.Publisher = &arcrelease.GHPublisher{Dir: flagDir, Log: log}
		}
		if len(args) == 1 {
			opts.Forced = args[0]
		}

		res, err := arcrelease.Release(ctx, opts)
		if errors.Is(err, arcrelease.ErrDirtyWorkingTree) {
			rep.Fail("You have uncommitted changes. Please commit or stash them first.")
		}
		if err != nil {
			return err
		}
		if flagDry && !res.NothingToRelease {
			printSummary(cmd, res)
		}
		return nil
	},
}

func init() {
	releaseCmd.Flags().BoolVar(&flagNoPush, "no-push", false, "Skip pushing the branch and tags")
	releaseCmd.Flags().BoolVar(&flagNoPublish, "no-publish", false, "Skip creating the hosted release")
	rootCmd.AddCommand(releaseCmd)
}
