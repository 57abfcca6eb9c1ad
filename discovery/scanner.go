// Package discovery implements the host scanner: it walks a plugin tree
// for handler manifests, validates them, gates them on host compatibility,
// and produces the candidate-type sequence the registry captures.
package discovery

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"sort"

	"github.com/Masterminds/semver/v3"
	"github.com/bmatcuk/doublestar/v4"

	"github.com/eventhost-dev/eventhost-sdk/config"
	"github.com/eventhost-dev/eventhost-sdk/manifest"
	"github.com/eventhost-dev/eventhost-sdk/plugin/entities"
	"github.com/eventhost-dev/eventhost-sdk/plugin/values"
	"github.com/eventhost-dev/eventhost-sdk/schema"
)

// Scanner discovers candidate types from manifest files under a plugin
// tree. It implements ports.CandidateSource. Discovery order is sorted
// manifest path order, which makes weight tie-breaks deterministic across
// runs.
type Scanner struct {
	fsys        fs.FS
	globs       []string
	catalog     *schema.Catalog
	hostVersion *semver.Version
	coreOrigins []values.Origin
	logger      *slog.Logger

	yamlParser manifest.Parser
	jsonParser manifest.Parser
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Scanner) { s.logger = l }
}

// NewScanner creates a scanner over the given filesystem using the host
// configuration for glob patterns, trusted core origins and the host
// version gate. The manifest schema is registered in the catalog if it is
// not already.
func NewScanner(fsys fs.FS, cfg *config.Host, catalog *schema.Catalog, opts ...Option) (*Scanner, error) {
	coreOrigins, err := cfg.CoreOriginValues()
	if err != nil {
		return nil, fmt.Errorf("invalid core origins: %w", err)
	}

	var hostVersion *semver.Version
	if cfg.HostVersion != "" {
		hostVersion, err = semver.NewVersion(cfg.HostVersion)
		if err != nil {
			return nil, fmt.Errorf("invalid host version %q: %w", cfg.HostVersion, err)
		}
	}

	if _, ok := catalog.GetSchema(manifest.Kind); !ok {
		if err := catalog.Register(manifest.Kind, &manifest.Manifest{}); err != nil {
			return nil, fmt.Errorf("register manifest schema: %w", err)
		}
	}

	s := &Scanner{
		fsys:        fsys,
		globs:       cfg.ManifestGlobs,
		catalog:     catalog,
		hostVersion: hostVersion,
		coreOrigins: coreOrigins,
		logger:      slog.Default(),
		yamlParser:  manifest.NewYamlParser(),
		jsonParser:  manifest.NewJSONParser(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Discover walks the plugin tree and returns the accepted candidates in
// sorted manifest path order. Manifests whose requires constraint rejects
// the host version are skipped with a log line; malformed manifests and
// duplicate handler names fail discovery.
func (s *Scanner) Discover(ctx context.Context) ([]entities.CandidateType, error) {
	paths, err := s.matchManifests()
	if err != nil {
		return nil, err
	}

	var candidates []entities.CandidateType
	seen := make(map[string]string) // handler name -> manifest path
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		m, err := s.load(p)
		if err != nil {
			return nil, err
		}

		if _, err := semver.NewVersion(m.Version); err != nil {
			return nil, &InvalidManifestError{Path: p, Cause: fmt.Errorf("version %q is not semver: %w", m.Version, err)}
		}

		compatible, err := s.checkCompatibility(m)
		if err != nil {
			return nil, &InvalidManifestError{Path: p, Cause: err}
		}
		if !compatible {
			s.logger.Info("skipping incompatible handler",
				"manifest", p,
				"handler", m.Name,
				"requires", m.Requires,
				"host_version", s.hostVersion.String())
			continue
		}

		candidate, err := m.ToCandidate(s.coreOrigins)
		if err != nil {
			return nil, &InvalidManifestError{Path: p, Cause: err}
		}

		name := candidate.Name().String()
		if prev, dup := seen[name]; dup {
			return nil, &DuplicateHandlerError{Name: name, Path: p, First: prev}
		}
		seen[name] = p
		candidates = append(candidates, candidate)
	}

	s.logger.Debug("handler discovery complete",
		"manifests", len(paths),
		"candidates", len(candidates))
	return candidates, nil
}

// matchManifests resolves the glob patterns and returns the union of
// matches, deduplicated and sorted.
func (s *Scanner) matchManifests() ([]string, error) {
	matched := make(map[string]struct{})
	for _, pattern := range s.globs {
		paths, err := doublestar.Glob(s.fsys, pattern)
		if err != nil {
			return nil, fmt.Errorf("bad manifest glob %q: %w", pattern, err)
		}
		for _, p := range paths {
			matched[p] = struct{}{}
		}
	}

	out := make([]string, 0, len(matched))
	for p := range matched {
		out = append(out, p)
	}
	sort.Strings(out)
	return out, nil
}

// load reads, parses and schema-validates one manifest file.
func (s *Scanner) load(p string) (*manifest.Manifest, error) {
	data, err := fs.ReadFile(s.fsys, p)
	if err != nil {
		return nil, fmt.Errorf("read manifest %s: %w", p, err)
	}

	parser := s.yamlParser
	if path.Ext(p) == ".json" {
		parser = s.jsonParser
	}

	m, err := parser.Parse(data)
	if err != nil {
		return nil, &InvalidManifestError{Path: p, Cause: err}
	}

	// Validate the canonical JSON form so YAML and JSON manifests go
	// through the same schema.
	doc, err := json.Marshal(m)
	if err != nil {
		return nil, &InvalidManifestError{Path: p, Cause: err}
	}
	if err := s.catalog.ValidateJSON(manifest.Kind, doc); err != nil {
		return nil, &InvalidManifestError{Path: p, Cause: err}
	}
	return m, nil
}

// checkCompatibility evaluates the manifest's requires constraint against
// the host version. No constraint, or no configured host version, accepts.
func (s *Scanner) checkCompatibility(m *manifest.Manifest) (bool, error) {
	if m.Requires == "" || s.hostVersion == nil {
		return true, nil
	}
	c, err := semver.NewConstraint(m.Requires)
	if err != nil {
		return false, fmt.Errorf("invalid requires constraint %q: %w", m.Requires, err)
	}
	return c.Check(s.hostVersion), nil
}
