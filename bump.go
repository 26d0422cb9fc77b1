package main

import (
	"fmt"

	"github.com/spf13/cobra"

	arcrelease "github.com/arcplugin/arcrelease/pkg"
)

var flagWindow int

var bumpCmd = &cobra.Command{
	Use:   "bump [major|minor|patch|auto|x.y.z] [commit-message]",
	Short: "Bump the manifest version and update the changelog",
	Long: `Bump the version in the plugin manifest and add a changelog entry.
The bump kind defaults to patch.

With "auto" the bump kind is inferred from the commit message: a breaking
change bumps major, a feat bumps minor, anything else bumps patch. Without a
commit message the changelog lists the commits since the last tag, or the
most recent --window commits when there is no tag.

The new version is written to stdout as the final output, for git hooks.

Examples:
  arcrelease bump
  arcrelease bump minor
  arcrelease bump auto "feat: add export"
  arcrelease bump 2.0.0`,
	Args: cobra.RangeArgs(0, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if p, ok, err := policyFlag(cmd); err != nil {
			return err
		} else if ok {
			cfg.Policy.Bump = p
		}
		if cmd.Flags().Changed("window") {
			cfg.BumpWindow = flagWindow
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		log := newLogger()
		opts := arcrelease.BumpOptions{
			Options: arcrelease.Options{
				Dir:      flagDir,
				Config:   cfg,
				Reporter: newReporter(cmd, true),
				Logger:   &log,
				DryRun:   flagDry,
			},
			Arg: "patch",
		}
		if len(args) > 0 {
			opts.Arg = args[0]
		}
		if len(args) == 2 {
			opts.Message = args[1]
		}
		if opts.Message == "" {
			repo, err := arcrelease.OpenRepository(ctx, flagDir, cfg.Backend, log)
			if err != nil {
				log.Debug().Err(err).Msg("no repository, changelog will have no commits")
			} else {
				opts.Repo = repo
			}
		}

		res, err := arcrelease.Bump(ctx, opts)
		if err != nil {
			return err
		}
		if flagDry {
			printSummary(cmd, res)
		}

		fmt.Fprint(cmd.OutOrStdout(), res.NewVersion.String())
		return nil
	},
}

func init() {
	bumpCmd.Flags().IntVar(&flagWindow, "window", 50, "Commits to read when there is no tag")
	rootCmd.AddCommand(bumpCmd)
}
