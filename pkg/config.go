package arcrelease

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is looked up in the project directory.
const DefaultConfigFile = ".arcrelease.yaml"

// Config holds project settings for both flows.
type Config struct {
	// Manifest is the JSON file holding the version, relative to the project dir.
	Manifest string `yaml:"manifest"`

	// Changelog is the markdown changelog, relative to the project dir.
	Changelog string `yaml:"changelog"`

	// Project names the project in the default changelog preamble.
	Project string `yaml:"project"`

	Remote string `yaml:"remote"`
	Branch string `yaml:"branch"`

	// Push and Publish gate the outward-facing steps of a release.
	Push    bool `yaml:"push"`
	Publish bool `yaml:"publish"`

	// Backend selects the repository implementation: "cli" or "go-git".
	Backend Backend `yaml:"backend"`

	// BumpWindow bounds the history the bumper reads when no tag exists.
	// Range: 1-10000
	BumpWindow int `yaml:"bump_window"`

	// SyncFiles get their main version declaration rewritten on every bump.
	SyncFiles []string `yaml:"sync_files,omitempty"`

	Policy PolicyConfig `yaml:"policy"`
}

// PolicyConfig selects the changelog policy per flow.
type PolicyConfig struct {
	Bump    Policy `yaml:"bump"`
	Release Policy `yaml:"release"`
}

// DefaultConfig returns the settings used when no config file exists. The
// bumper lists every commit; a release lists user-facing changes only.
func DefaultConfig() Config {
	return Config{
		Manifest:   ".claude-plugin/plugin.json",
		Changelog:  "CHANGELOG.md",
		Project:    "Arc plugin",
		Remote:     "origin",
		Branch:     "main",
		Push:       true,
		Publish:    true,
		Backend:    BackendCLI,
		BumpWindow: 50,
		Policy: PolicyConfig{
			Bump:    Inclusive,
			Release: Curated,
		},
	}
}

// Validate checks the configuration for values the flows cannot use.
func (c Config) Validate() error {
	if c.Manifest == "" {
		return errors.New("manifest path is required")
	}
	if c.Changelog == "" {
		return errors.New("changelog path is required")
	}
	if c.Push && (c.Remote == "" || c.Branch == "") {
		return errors.New("remote and branch are required when push is enabled")
	}
	if _, err := ParseBackend(string(c.Backend)); err != nil {
		return err
	}
	if c.BumpWindow < 1 || c.BumpWindow > 10000 {
		return fmt.Errorf("bump_window must be between 1 and 10000 (got %d)", c.BumpWindow)
	}
	return nil
}

// LoadConfig reads path over the defaults. A missing file is not an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing YAML: %w", err)
	}
	backend, err := ParseBackend(string(cfg.Backend))
	if err != nil {
		return cfg, err
	}
	cfg.Backend = backend
	return cfg, nil
}

// ApplyEnv overrides fields from ARCRELEASE_* environment variables.
//
// Environment variables:
//   - ARCRELEASE_MANIFEST, ARCRELEASE_CHANGELOG, ARCRELEASE_PROJECT
//   - ARCRELEASE_REMOTE, ARCRELEASE_BRANCH
//   - ARCRELEASE_PUSH, ARCRELEASE_PUBLISH (booleans)
//   - ARCRELEASE_BACKEND ("cli" or "go-git")
//   - ARCRELEASE_BUMP_WINDOW (integer)
func (c *Config) ApplyEnv() error {
	parseEnvString("ARCRELEASE_MANIFEST", &c.Manifest)
	parseEnvString("ARCRELEASE_CHANGELOG", &c.Changelog)
	parseEnvString("ARCRELEASE_PROJECT", &c.Project)
	parseEnvString("ARCRELEASE_REMOTE", &c.Remote)
	parseEnvString("ARCRELEASE_BRANCH", &c.Branch)

	if err := parseEnvBool("ARCRELEASE_PUSH", &c.Push); err != nil {
		return err
	}
	if err := parseEnvBool("ARCRELEASE_PUBLISH", &c.Publish); err != nil {
		return err
	}
	if err := parseEnvInt("ARCRELEASE_BUMP_WINDOW", &c.BumpWindow); err != nil {
		return err
	}
	if v := os.Getenv("ARCRELEASE_BACKEND"); v != "" {
		backend, err := ParseBackend(v)
		if err != nil {
			return fmt.Errorf("invalid value for ARCRELEASE_BACKEND: %w", err)
		}
		c.Backend = backend
	}
	return nil
}

func (c Config) String() string {
	return fmt.Sprintf(
		"Config{Manifest: %s, Changelog: %s, Remote: %s/%s, Push: %t, Publish: %t, Backend: %s, Policy: %s/%s, SyncFiles: [%s]}",
		c.Manifest, c.Changelog, c.Remote, c.Branch, c.Push, c.Publish, c.Backend,
		c.Policy.Bump, c.Policy.Release, strings.Join(c.SyncFiles, ", "),
	)
}

func parseEnvInt(key string, dest *int) error {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	*dest = parsed
	return nil
}

func parseEnvBool(key string, dest *bool) error {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	*dest = parsed
	return nil
}

func parseEnvString(key string, dest *string) {
	if value := os.Getenv(key); value != "" {
		*dest = value
	}
}
