// Package arcrelease automates versioning and changelog upkeep for a plugin
// project whose version lives in a JSON manifest.
//
// It provides:
//   - A three-part version codec with major/minor/patch bumps (Version, ParseVersion).
//   - A conventional-commit classifier that infers the bump kind from commit
//     subjects and files each subject under a changelog category (ParseCommit,
//     InferBump, Classify). Two policies decide what reaches the changelog:
//     Inclusive lists everything, Curated only user-facing changes.
//   - A changelog synthesizer that renders a dated "## [x.y.z] - YYYY-MM-DD"
//     entry and splices it above the previous entries (Render, Splice).
//   - Two flows: Bump rewrites the manifest and changelog; Release also
//     commits, tags, pushes and publishes a hosted release.
//
// Source control is reached through the Repository interface, implemented by
// GitCLI (the git binary) and GoGit (go-git), so the core can be exercised
// without a real repository.
//
// Usage Example:
//
//	cfg := arcrelease.DefaultConfig()
//	repo, err := arcrelease.OpenRepository(ctx, ".", cfg.Backend, zerolog.Nop())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	res, err := arcrelease.Release(ctx, arcrelease.ReleaseOptions{
//	    Options: arcrelease.Options{
//	        Dir:       ".",
//	        Config:    cfg,
//	        Repo:      repo,
//	        Publisher: &arcrelease.GHPublisher{Dir: "."},
//	    },
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	log.Printf("released %s", res.Tag)
package arcrelease
