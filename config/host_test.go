package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Load_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "eventhost.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "plugins", cfg.PluginRoot)
	assert.Equal(t, []string{OriginEventhost, OriginFoundation}, cfg.CoreOrigins)
	assert.NotEmpty(t, cfg.ManifestGlobs)
	assert.Empty(t, cfg.HostVersion)
}

func Test_Load_MissingDirectoryYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope", "eventhost.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultHost().PluginRoot, cfg.PluginRoot)
}

func Test_Load_PartialFileFallsBack(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "eventhost.yaml")
	require.NoError(t, os.WriteFile(path, []byte("host_version: 2.1.0\nplugin_root: handlers\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "2.1.0", cfg.HostVersion)
	assert.Equal(t, "handlers", cfg.PluginRoot)
	// Unset fields fall back to defaults.
	assert.Equal(t, DefaultHost().ManifestGlobs, cfg.ManifestGlobs)
	assert.Equal(t, DefaultHost().CoreOrigins, cfg.CoreOrigins)
}

func Test_Load_FullFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "eventhost.yaml")
	content := `
host_version: 1.0.0
plugin_root: /opt/handlers
manifest_globs:
  - "**/handler.yaml"
core_origins:
  - dev.eventhost
  - com.trusted-vendor
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"**/handler.yaml"}, cfg.ManifestGlobs)
	assert.Equal(t, []string{"dev.eventhost", "com.trusted-vendor"}, cfg.CoreOrigins)
}

func Test_Load_Malformed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "eventhost.yaml")
	require.NoError(t, os.WriteFile(path, []byte("plugin_root: [broken"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

func Test_CoreOriginValues(t *testing.T) {
	cfg := &Host{CoreOrigins: []string{"dev.eventhost", "com.example"}}
	origins, err := cfg.CoreOriginValues()
	require.NoError(t, err)
	assert.Len(t, origins, 2)
	assert.Equal(t, "dev.eventhost", origins[0].String())

	cfg.CoreOrigins = []string{"Bad Origin"}
	_, err = cfg.CoreOriginValues()
	assert.Error(t, err)
}
