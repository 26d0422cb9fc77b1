package arcrelease_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	arcrelease "github.com/arcplugin/arcrelease/pkg"
)

func ExampleParseVersion() {
	v, err := arcrelease.ParseVersion("v1.2.3")
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(v.Next(arcrelease.BumpMinor))
	fmt.Println(v.Next(arcrelease.BumpMajor).Tag())

	_, err = arcrelease.ParseVersion("1.2")
	fmt.Println(err)
	// Output:
	// 1.3.0
	// v2.0.0
	// malformed version: "1.2" needs exactly three components
}

func ExampleInferBump() {
	fmt.Println(arcrelease.InferBump([]string{"fix: null check", "docs: usage"}))
	fmt.Println(arcrelease.InferBump([]string{"fix: null check", "feat: add export"}))
	fmt.Println(arcrelease.InferBump([]string{"feat: add export", "refactor!: drop v1 config"}))
	// Output:
	// patch
	// minor
	// major
}

func ExampleRender() {
	date := time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)
	messages := []string{"fix: null check", "feat: add export", "chore: bump deps"}

	entry, _ := arcrelease.Render(arcrelease.MustParseVersion("1.3.0"), date, messages, arcrelease.Curated)
	fmt.Print(entry)
	// Output:
	// ## [1.3.0] - 2024-03-05
	//
	// ### Added
	//
	// - Add export
	//
	// ### Fixed
	//
	// - Null check
}

// ExampleBump bumps the minor version of a manifest in a scratch directory,
// with a single commit message as the changelog source.
func ExampleBump() {
	dir, err := os.MkdirTemp("", "arcrelease_example")
	if err != nil {
		fmt.Println("failed to create temporary directory:", err)
		return
	}
	defer os.RemoveAll(dir)

	cfg := arcrelease.DefaultConfig()
	cfg.Manifest = "plugin.json"
	if err := os.WriteFile(filepath.Join(dir, cfg.Manifest), []byte(`{"name":"arc","version":"1.2.3"}`), 0644); err != nil {
		fmt.Println("failed to write manifest:", err)
		return
	}

	res, err := arcrelease.Bump(context.Background(), arcrelease.BumpOptions{
		Options: arcrelease.Options{
			Dir:    dir,
			Config: cfg,
			Now:    func() time.Time { return time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC) },
		},
		Arg:     arcrelease.AutoBump,
		Message: "feat: add export",
	})
	if err != nil {
		fmt.Println("bump failed:", err)
		return
	}
	fmt.Println(res.OldVersion, "->", res.NewVersion)

	manifest, _ := os.ReadFile(filepath.Join(dir, cfg.Manifest))
	fmt.Print(string(manifest))
	// Output:
	// 1.2.3 -> 1.3.0
	// {
	//   "name": "arc",
	//   "version": "1.3.0"
	// }
}
