// Package eventhost wires the host-side pieces of the handler registry
// together: configuration, manifest discovery, and the application event
// registry itself.
package eventhost

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/eventhost-dev/eventhost-sdk/config"
	"github.com/eventhost-dev/eventhost-sdk/discovery"
	"github.com/eventhost-dev/eventhost-sdk/plugin/ports"
	"github.com/eventhost-dev/eventhost-sdk/registry"
	"github.com/eventhost-dev/eventhost-sdk/schema"
)

// Handle is one entry of the final ordered handler list, re-exported for
// filter callbacks.
type Handle = registry.Handle

// BootstrapOption configures Bootstrap.
type BootstrapOption func(*bootstrap)

type bootstrap struct {
	logger  *slog.Logger
	fsys    fs.FS
	catalog *schema.Catalog
	filter  registry.Filter
}

// WithLogger sets the logger used by discovery and the registry.
func WithLogger(l *slog.Logger) BootstrapOption {
	return func(b *bootstrap) { b.logger = l }
}

// WithFS overrides the filesystem scanned for manifests. By default the
// configured plugin root is opened from the OS filesystem.
func WithFS(fsys fs.FS) BootstrapOption {
	return func(b *bootstrap) { b.fsys = fsys }
}

// WithCatalog supplies a pre-populated schema catalog.
func WithCatalog(c *schema.Catalog) BootstrapOption {
	return func(b *bootstrap) { b.catalog = c }
}

// WithFilter registers the one-shot handler filter on the new registry.
func WithFilter(f registry.Filter) BootstrapOption {
	return func(b *bootstrap) { b.filter = f }
}

// Bootstrap loads the host configuration at configPath, discovers handler
// candidates under the configured plugin root, and builds the application
// event registry over them. A missing plugin root yields an empty
// registry, not an error; a malformed manifest fails the bootstrap.
//
// The caller owns the returned registry and is responsible for calling
// Dispose at shutdown. Skipping disposal leaks the constructed handler
// instances until process exit; it is not a safety issue, since instances
// hold no external handles.
func Bootstrap(ctx context.Context, configPath string, constructor ports.Constructor, opts ...BootstrapOption) (*registry.ApplicationEventRegistry, error) {
	b := &bootstrap{
		logger:  slog.Default(),
		catalog: schema.NewCatalog(),
	}
	for _, opt := range opts {
		opt(b)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load host config: %w", err)
	}

	regOpts := []registry.Option{registry.WithLogger(b.logger)}
	if b.filter != nil {
		regOpts = append(regOpts, registry.WithFilter(b.filter))
	}

	fsys := b.fsys
	if fsys == nil {
		if _, err := os.Stat(cfg.PluginRoot); os.IsNotExist(err) {
			b.logger.Info("plugin root does not exist, starting with no handlers", "plugin_root", cfg.PluginRoot)
			return registry.New(nil, constructor, regOpts...), nil
		}
		fsys = os.DirFS(cfg.PluginRoot)
	}

	scanner, err := discovery.NewScanner(fsys, cfg, b.catalog, discovery.WithLogger(b.logger))
	if err != nil {
		return nil, fmt.Errorf("create handler scanner: %w", err)
	}

	return registry.NewFromSource(ctx, scanner, constructor, regOpts...)
}
