// Package config loads the host-side registry configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"

	"github.com/eventhost-dev/eventhost-sdk/plugin/values"
)

// Default trusted core origins. Handlers from these vendors are tagged
// core at registration and pinned to the front of the final ordering.
const (
	OriginEventhost  = "dev.eventhost"
	OriginFoundation = "dev.foundation"
)

// Host is the registry configuration of one host application.
type Host struct {
	// HostVersion is the application version manifests constrain against
	// with their requires field. Empty disables compatibility gating.
	HostVersion string `yaml:"host_version"`

	// PluginRoot is the directory scanned for handler manifests.
	PluginRoot string `yaml:"plugin_root"`

	// ManifestGlobs are the glob patterns matched under PluginRoot.
	ManifestGlobs []string `yaml:"manifest_globs"`

	// CoreOrigins are the trusted vendor origins whose handlers are
	// tagged core.
	CoreOrigins []string `yaml:"core_origins"`
}

// DefaultHost returns the configuration used when no file is present.
func DefaultHost() *Host {
	return &Host{
		PluginRoot: "plugins",
		ManifestGlobs: []string{
			"**/manifest.yaml",
			"**/manifest.yml",
			"**/manifest.json",
		},
		CoreOrigins: []string{OriginEventhost, OriginFoundation},
	}
}

// Load reads a host configuration from the given path. A missing file
// yields the defaults. Fields left empty in the file fall back to their
// defaults.
func Load(path string) (*Host, error) {
	dir := filepath.Dir(path)
	base := filepath.Base(path)

	root, err := os.OpenRoot(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultHost(), nil
		}
		return nil, fmt.Errorf("failed to open directory %q: %w", dir, err)
	}
	defer func() { _ = root.Close() }()

	file, err := root.Open(base)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultHost(), nil
		}
		return nil, fmt.Errorf("failed to open config %q: %w", base, err)
	}
	defer func() { _ = file.Close() }()

	cfg := &Host{}
	if err := yaml.NewDecoder(file).Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config %q: %w", path, err)
	}

	defaults := DefaultHost()
	if cfg.PluginRoot == "" {
		cfg.PluginRoot = defaults.PluginRoot
	}
	if len(cfg.ManifestGlobs) == 0 {
		cfg.ManifestGlobs = defaults.ManifestGlobs
	}
	if len(cfg.CoreOrigins) == 0 {
		cfg.CoreOrigins = defaults.CoreOrigins
	}
	return cfg, nil
}

// CoreOriginValues validates and returns the trusted origins as value
// objects.
func (h *Host) CoreOriginValues() ([]values.Origin, error) {
	origins := make([]values.Origin, 0, len(h.CoreOrigins))
	for _, raw := range h.CoreOrigins {
		origin, err := values.NewOrigin(raw)
		if err != nil {
			return nil, fmt.Errorf("core origin %q: %w", raw, err)
		}
		origins = append(origins, origin)
	}
	return origins, nil
}
