package arcrelease

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, ".claude-plugin/plugin.json", cfg.Manifest)
	assert.Equal(t, "CHANGELOG.md", cfg.Changelog)
	assert.Equal(t, Inclusive, cfg.Policy.Bump)
	assert.Equal(t, Curated, cfg.Policy.Release)
	assert.Equal(t, BackendCLI, cfg.Backend)
	assert.Equal(t, 50, cfg.BumpWindow)
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), DefaultConfigFile))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultConfigFile)
	writeFile(t, path, `manifest: plugin.json
project: Demo plugin
branch: trunk
publish: false
backend: gogit
bump_window: 20
sync_files:
  - Cargo.toml
  - .env
policy:
  bump: curated
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "plugin.json", cfg.Manifest)
	assert.Equal(t, "CHANGELOG.md", cfg.Changelog, "unset keys keep defaults")
	assert.Equal(t, "Demo plugin", cfg.Project)
	assert.Equal(t, "origin", cfg.Remote)
	assert.Equal(t, "trunk", cfg.Branch)
	assert.True(t, cfg.Push)
	assert.False(t, cfg.Publish)
	assert.Equal(t, BackendGoGit, cfg.Backend)
	assert.Equal(t, 20, cfg.BumpWindow)
	assert.Equal(t, []string{"Cargo.toml", ".env"}, cfg.SyncFiles)
	assert.Equal(t, Curated, cfg.Policy.Bump)
	assert.Equal(t, Curated, cfg.Policy.Release)
	require.NoError(t, cfg.Validate())
}

func TestLoadConfigErrors(t *testing.T) {
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.yaml")
	writeFile(t, bad, "manifest: [unclosed\n")
	_, err := LoadConfig(bad)
	assert.ErrorContains(t, err, "parsing YAML")

	policy := filepath.Join(dir, "policy.yaml")
	writeFile(t, policy, "policy:\n  release: everything\n")
	_, err = LoadConfig(policy)
	assert.ErrorIs(t, err, ErrUnknownPolicy)

	backend := filepath.Join(dir, "backend.yaml")
	writeFile(t, backend, "backend: svn\n")
	_, err = LoadConfig(backend)
	assert.ErrorIs(t, err, ErrUnknownBackend)
}

func TestConfigApplyEnv(t *testing.T) {
	t.Setenv("ARCRELEASE_MANIFEST", "custom.json")
	t.Setenv("ARCRELEASE_REMOTE", "upstream")
	t.Setenv("ARCRELEASE_PUSH", "false")
	t.Setenv("ARCRELEASE_BUMP_WINDOW", "7")
	t.Setenv("ARCRELEASE_BACKEND", "go-git")

	cfg := DefaultConfig()
	require.NoError(t, cfg.ApplyEnv())
	assert.Equal(t, "custom.json", cfg.Manifest)
	assert.Equal(t, "upstream", cfg.Remote)
	assert.False(t, cfg.Push)
	assert.Equal(t, 7, cfg.BumpWindow)
	assert.Equal(t, BackendGoGit, cfg.Backend)
	assert.Equal(t, "main", cfg.Branch)
}

func TestConfigApplyEnvInvalid(t *testing.T) {
	tests := map[string]string{
		"ARCRELEASE_PUSH":        "sometimes",
		"ARCRELEASE_PUBLISH":     "maybe",
		"ARCRELEASE_BUMP_WINDOW": "many",
		"ARCRELEASE_BACKEND":     "hg",
	}
	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			cfg := DefaultConfig()
			err := cfg.ApplyEnv()
			require.Error(t, err)
			assert.Contains(t, err.Error(), key)
		})
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"no manifest", func(c *Config) { c.Manifest = "" }},
		{"no changelog", func(c *Config) { c.Changelog = "" }},
		{"push without remote", func(c *Config) { c.Remote = "" }},
		{"push without branch", func(c *Config) { c.Branch = "" }},
		{"window too small", func(c *Config) { c.BumpWindow = 0 }},
		{"window too large", func(c *Config) { c.BumpWindow = 10001 }},
		{"bad backend", func(c *Config) { c.Backend = "svn" }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.modify(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	cfg := DefaultConfig()
	cfg.Push = false
	cfg.Remote = ""
	assert.NoError(t, cfg.Validate(), "remote is only needed for push")
}
