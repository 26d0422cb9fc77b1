package arcrelease

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestManifestKeepsOtherFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plugin.json")
	writeFile(t, path, `{"name":"arc","version":"1.2.3","keywords":["a","b"],"author":{"name":"x"}}`)

	m, err := ReadManifest(path)
	require.NoError(t, err)
	assert.Equal(t, MustParseVersion("1.2.3"), m.Version)

	require.NoError(t, m.SetVersion(MustParseVersion("1.3.0")))
	require.NoError(t, m.Write())

	want := `{
  "name": "arc",
  "version": "1.3.0",
  "keywords": [
    "a",
    "b"
  ],
  "author": {
    "name": "x"
  }
}
`
	assert.Equal(t, want, readFile(t, path))

	again, err := ReadManifest(path)
	require.NoError(t, err)
	assert.Equal(t, "1.3.0", again.Version.String())
}

func TestManifestReindentsExistingLayout(t *testing.T) {
	m, err := ParseManifest("plugin.json", []byte("{\n\t\"version\": \"0.1.0\",\n\t\"name\": \"arc\"\n}\n\n"))
	require.NoError(t, err)

	out, err := m.Bytes()
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"version\": \"0.1.0\",\n  \"name\": \"arc\"\n}\n", string(out))
}

func TestParseManifestErrors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr error
	}{
		{name: "no version", data: `{"name":"arc"}`, wantErr: ErrNoVersionField},
		{name: "numeric version", data: `{"version":1}`, wantErr: ErrNoVersionField},
		{name: "malformed version", data: `{"version":"1.2"}`, wantErr: ErrMalformedVersion},
		{name: "not an object", data: `["1.2.3"]`},
		{name: "invalid json", data: `{"version":`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseManifest("plugin.json", []byte(tc.data))
			require.Error(t, err)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
			}
		})
	}
}

func TestReadManifestMissingFile(t *testing.T) {
	_, err := ReadManifest(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
