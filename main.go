// Package main implements a CLI that bumps the plugin version, keeps the
// changelog current, and cuts tagged releases.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	arcrelease "github.com/arcplugin/arcrelease/pkg"
)

var (
	flagDir       string
	flagConfig    string
	flagDry       bool
	flagVerbose   bool
	flagNoColor   bool
	flagBackend   string
	flagPolicy    string
	flagSyncFiles []string
)

var rootCmd = &cobra.Command{
	Use:   "arcrelease",
	Short: "Version bumping, changelog and release automation",
	Long: `arcrelease reads the version from the plugin manifest, computes the next
semantic version from conventional commits, rewrites CHANGELOG.md, and can
commit, tag, push and publish the release.

Settings are read from .arcrelease.yaml in the project directory, then from
ARCRELEASE_* environment variables, then from flags.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagDir, "dir", ".", "Project directory")
	pf.StringVar(&flagConfig, "config", "", "Config file (default <dir>/"+arcrelease.DefaultConfigFile+")")
	pf.BoolVar(&flagDry, "dry", false, "Perform a dry run without modifying any files or git repository")
	pf.BoolVar(&flagVerbose, "verbose", false, "Log git and gh invocations")
	pf.BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	pf.StringVar(&flagBackend, "backend", "", "Repository backend: cli or go-git")
	pf.StringVar(&flagPolicy, "policy", "", "Changelog policy: inclusive or curated")
	pf.StringArrayVar(&flagSyncFiles, "sync-file", nil, "Additional file whose version declaration follows the manifest. May be repeated.")
}

// loadConfig layers the config file, environment and shared flags. Command
// specific overrides are applied by the caller before validation.
func loadConfig(cmd *cobra.Command) (arcrelease.Config, error) {
	path := flagConfig
	if path == "" {
		path = filepath.Join(flagDir, arcrelease.DefaultConfigFile)
	}
	cfg, err := arcrelease.LoadConfig(path)
	if err != nil {
		return cfg, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return cfg, err
	}
	if cmd.Flags().Changed("backend") {
		backend, err := arcrelease.ParseBackend(flagBackend)
		if err != nil {
			return cfg, err
		}
		cfg.Backend = backend
	}
	cfg.SyncFiles = append(cfg.SyncFiles, flagSyncFiles...)
	return cfg, nil
}

// policyFlag returns the --policy value when it was given.
func policyFlag(cmd *cobra.Command) (arcrelease.Policy, bool, error) {
	if !cmd.Flags().Changed("policy") {
		return 0, false, nil
	}
	p, err := arcrelease.ParsePolicy(flagPolicy)
	return p, err == nil, err
}

func newLogger() zerolog.Logger {
	level := zerolog.WarnLevel
	if flagVerbose {
		level = zerolog.DebugLevel
	}
	out := zerolog.ConsoleWriter{Out: os.Stderr, NoColor: flagNoColor}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

func newReporter(cmd *cobra.Command, toStderr bool) *arcrelease.Reporter {
	if flagNoColor {
		color.NoColor = true
	}
	w := cmd.OutOrStdout()
	if toStderr {
		w = cmd.ErrOrStderr()
	}
	return arcrelease.NewReporter(w, flagNoColor)
}

// printSummary reports the version change and the files a flow touched.
func printSummary(cmd *cobra.Command, res arcrelease.Result) {
	w := cmd.ErrOrStderr()
	if flagDry {
		fmt.Fprintln(w, "Dry run complete, no files were modified.")
	}
	fmt.Fprintf(w, "Old Version: %s\n", res.OldVersion)
	fmt.Fprintf(w, "New Version: %s\n", res.NewVersion)
	fmt.Fprintf(w, "Bump Type:   %s\n", res.BumpType)
	if len(res.UpdatedFiles) == 0 {
		return
	}
	if flagDry {
		fmt.Fprintln(w, "Files that would be updated:")
	} else {
		fmt.Fprintln(w, "Files updated:")
	}
	for _, f := range res.UpdatedFiles {
		fmt.Fprintf(w, "  %s\n", f)
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}
