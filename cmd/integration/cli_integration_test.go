package integration

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func TestCLIBinaryIntegration(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}

	// 1. Build the CLI binary.
	tmpBuildDir := t.TempDir()
	binPath := filepath.Join(tmpBuildDir, "arcrelease")
	// The main package lives at the module root, two levels up.
	buildCmd := exec.Command("go", "build", "-o", binPath, "../../")
	buildOutput, err := buildCmd.CombinedOutput()
	if err != nil {
		t.Fatalf("failed to build CLI binary: %v; build output: %s", err, string(buildOutput))
	}

	// 2. Set up a temporary git repository for testing.
	tmpRepo := t.TempDir()
	runGit := func(args ...string) string {
		t.Helper()
		cmd := exec.Command("git", args...)
		cmd.Dir = tmpRepo
		output, err := cmd.CombinedOutput()
		if err != nil {
			t.Fatalf("git %v failed: %v; output: %s", args, err, string(output))
		}
		return strings.TrimSpace(string(output))
	}
	runGit("init")
	runGit("config", "user.email", "test@example.com")
	runGit("config", "user.name", "Test User")
	runGit("config", "commit.gpgsign", "false")
	runGit("config", "tag.gpgsign", "false")

	// 3. Create the plugin manifest and an existing changelog.
	manifestPath := filepath.Join(tmpRepo, ".claude-plugin", "plugin.json")
	if err := os.MkdirAll(filepath.Dir(manifestPath), 0755); err != nil {
		t.Fatalf("failed to create manifest directory: %v", err)
	}
	if err := os.WriteFile(manifestPath, []byte(`{"name":"arc","version":"1.2.3","keywords":["git"]}`), 0644); err != nil {
		t.Fatalf("failed to write manifest: %v", err)
	}
	changelogPath := filepath.Join(tmpRepo, "CHANGELOG.md")
	initialChangelog := "# Changelog\n\nAll notable changes to the Arc plugin will be documented in this file.\n\n## [1.2.3] - 2024-01-01\n\n### Fixed\n\n- Old fix\n"
	if err := os.WriteFile(changelogPath, []byte(initialChangelog), 0644); err != nil {
		t.Fatalf("failed to write changelog: %v", err)
	}

	// 4. Commit the initial state, tag it, and add commits to release.
	runGit("add", ".")
	runGit("commit", "-m", "chore: initial commit")
	runGit("tag", "v1.2.3")
	runGit("commit", "--allow-empty", "-m", "feat: add export")
	runGit("commit", "--allow-empty", "-m", "fix: null check")
	runGit("commit", "--allow-empty", "-m", "chore: bump deps")

	// 5. Run the release without touching any remote.
	cliCmd := exec.Command(binPath, "--no-color", "release", "--no-push", "--no-publish")
	cliCmd.Dir = tmpRepo
	var cliStdout, cliStderr bytes.Buffer
	cliCmd.Stdout = &cliStdout
	cliCmd.Stderr = &cliStderr
	if err := cliCmd.Run(); err != nil {
		t.Fatalf("CLI command failed: %v; stdout: %s; stderr: %s", err, cliStdout.String(), cliStderr.String())
	}

	// 6. Verify the manifest was updated to 1.3.0 with other fields intact.
	updatedManifest, err := os.ReadFile(manifestPath)
	if err != nil {
		t.Fatalf("failed to read manifest: %v", err)
	}
	wantManifest := "{\n  \"name\": \"arc\",\n  \"version\": \"1.3.0\",\n  \"keywords\": [\n    \"git\"\n  ]\n}\n"
	if string(updatedManifest) != wantManifest {
		t.Errorf("manifest not updated as expected; got:\n%s", string(updatedManifest))
	}

	// 7. Verify the changelog gained a curated entry above the old one.
	updatedChangelog, err := os.ReadFile(changelogPath)
	if err != nil {
		t.Fatalf("failed to read changelog: %v", err)
	}
	doc := string(updatedChangelog)
	entryAt := strings.Index(doc, "## [1.3.0] - ")
	oldAt := strings.Index(doc, "## [1.2.3] - 2024-01-01")
	if entryAt == -1 || oldAt == -1 || entryAt > oldAt {
		t.Errorf("expected new entry above the old one; got:\n%s", doc)
	}
	for _, want := range []string{"### Added\n\n- Add export\n", "### Fixed\n\n- Null check\n"} {
		if !strings.Contains(doc, want) {
			t.Errorf("expected %q in changelog; got:\n%s", want, doc)
		}
	}
	if strings.Contains(doc, "Bump deps") {
		t.Errorf("chores should not reach a release changelog; got:\n%s", doc)
	}

	// 8. Verify the release commit and the annotated tag.
	tags := strings.Split(runGit("tag"), "\n")
	if !slices.Contains(tags, "v1.3.0") {
		t.Errorf("expected git tag %q not found; got tags: %v", "v1.3.0", tags)
	}
	if kind := runGit("cat-file", "-t", "v1.3.0"); kind != "tag" {
		t.Errorf("expected an annotated tag, got object type %q", kind)
	}
	if subject := runGit("log", "-1", "--pretty=%s"); subject != "chore(release): v1.3.0" {
		t.Errorf("unexpected release commit subject %q", subject)
	}
	if !strings.Contains(cliStdout.String(), "Release v1.3.0 complete") {
		t.Errorf("expected completion line; got:\n%s", cliStdout.String())
	}
}
