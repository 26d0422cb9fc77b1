package arcrelease

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// versionPath is the gjson/sjson path of the version field.
const versionPath = "version"

// Manifest is the JSON version artifact (plugin.json). Only the version field
// is ever changed; other fields and their order are kept as read.
type Manifest struct {
	Path    string
	Version Version

	data []byte
}

// ReadManifest loads and parses the manifest at path.
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	return ParseManifest(path, data)
}

// ParseManifest parses manifest content. The top-level value must be an
// object with a string "version" field holding a valid version.
func ParseManifest(path string, data []byte) (*Manifest, error) {
	if !gjson.ValidBytes(data) || !gjson.ParseBytes(data).IsObject() {
		return nil, fmt.Errorf("manifest %s is not a JSON object", path)
	}

	field := gjson.GetBytes(data, versionPath)
	if !field.Exists() || field.Type != gjson.String {
		return nil, fmt.Errorf("%w: %s", ErrNoVersionField, path)
	}

	v, err := ParseVersion(field.String())
	if err != nil {
		return nil, fmt.Errorf("manifest %s: %w", path, err)
	}

	return &Manifest{Path: path, Version: v, data: data}, nil
}

// SetVersion replaces the version field in place.
func (m *Manifest) SetVersion(v Version) error {
	out, err := sjson.SetBytes(m.data, versionPath, v.String())
	if err != nil {
		return fmt.Errorf("updating version in %s: %w", m.Path, err)
	}
	m.data = out
	m.Version = v
	return nil
}

// Bytes returns the manifest indented with two spaces and a trailing newline.
func (m *Manifest) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, bytes.TrimSpace(m.data), "", "  "); err != nil {
		return nil, fmt.Errorf("formatting %s: %w", m.Path, err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// Write saves the manifest back to its path.
func (m *Manifest) Write() error {
	out, err := m.Bytes()
	if err != nil {
		return err
	}
	if err := os.WriteFile(m.Path, out, 0644); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}
	return nil
}
