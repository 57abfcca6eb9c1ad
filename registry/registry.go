// Package registry implements the application event handler registry: a
// capability-partitioned, weight-ordered view over discovered handler
// types with a one-shot external filter and core pinning.
package registry

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/eventhost-dev/eventhost-sdk/plugin/entities"
	"github.com/eventhost-dev/eventhost-sdk/plugin/ports"
	"github.com/eventhost-dev/eventhost-sdk/plugin/set"
	"github.com/eventhost-dev/eventhost-sdk/plugin/values"
)

// Handle is one entry of the final ordered handler list.
type Handle = set.Instance[ports.ApplicationEventHandler]

// Filter is the one-shot callback a host may register to reorder or remove
// handlers before the final list is frozen. It receives the working list
// and returns the list to continue with; it may add entries it already
// holds, but the registry constructs nothing on its behalf.
//
// Core-tagged handlers are re-pinned to the front after the filter runs, so
// a filter cannot demote or bury them.
type Filter func(handlers []Handle) []Handle

// ApplicationEventRegistry partitions the discovered candidate types
// between the primary application-events capability and the deprecated
// legacy-startup capability, and owns the combined lifecycle of both sets.
//
// The partition is disjoint by construction: a candidate declaring the
// primary capability goes to the primary set even if it also declares the
// legacy one.
type ApplicationEventRegistry struct {
	mu      sync.RWMutex
	primary *set.Set[ports.ApplicationEventHandler]
	legacy  *set.LegacySet
	logger  *slog.Logger

	filter   Filter
	final    []Handle
	hasFinal bool
	disposed bool
}

// Option configures an ApplicationEventRegistry.
type Option func(*ApplicationEventRegistry)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(r *ApplicationEventRegistry) { r.logger = l }
}

// WithFilter registers the filter callback at construction time.
func WithFilter(f Filter) Option {
	return func(r *ApplicationEventRegistry) { r.filter = f }
}

// New creates a registry over the full candidate sequence. Candidates
// declaring the application-events capability feed the primary set; all
// others are forwarded to a new legacy set, whose instances are realized
// only on explicit demand.
func New(candidates []entities.CandidateType, constructor ports.Constructor, opts ...Option) *ApplicationEventRegistry {
	r := &ApplicationEventRegistry{
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}

	var primary, rest []entities.CandidateType
	for _, c := range candidates {
		if c.Declares(values.CapabilityApplicationEvents) {
			primary = append(primary, c)
		} else {
			rest = append(rest, c)
		}
	}

	r.primary = set.New[ports.ApplicationEventHandler](
		values.CapabilityApplicationEvents,
		primary,
		constructor,
		set.WithLogger[ports.ApplicationEventHandler](r.logger),
	)
	r.legacy = set.NewLegacySet(rest, constructor, r.logger)

	r.logger.Debug("event registry partitioned",
		"candidates", len(candidates),
		"primary", len(primary),
		"legacy", len(rest))
	return r
}

// NewFromSource discovers candidates from the given source and builds a
// registry over them.
func NewFromSource(ctx context.Context, source ports.CandidateSource, constructor ports.Constructor, opts ...Option) (*ApplicationEventRegistry, error) {
	candidates, err := source.Discover(ctx)
	if err != nil {
		return nil, fmt.Errorf("discover handler candidates: %w", err)
	}
	return New(candidates, constructor, opts...), nil
}

// SetFilter registers the one-shot filter callback. It must be assigned
// before the first FinalOrderedHandlers access: once the final list is
// cached the filter is never consulted again, so a late assignment is a
// silent no-op. That is accepted behavior, not defended against.
func (r *ApplicationEventRegistry) SetFilter(f Filter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.filter = f
}

// FinalOrderedHandlers returns the frozen, fully ordered handler list,
// computing it on first access: resolve the primary set in ascending
// weight order, run the registered filter exactly once, pin core handlers
// back to the front, cache. All callers observe the same cached list until
// Reset; a resolution failure caches nothing and is re-attemptable.
func (r *ApplicationEventRegistry) FinalOrderedHandlers(ctx context.Context) ([]Handle, error) {
	r.mu.RLock()
	if r.disposed {
		r.mu.RUnlock()
		return nil, entities.ErrDisposed
	}
	if r.hasFinal {
		out := r.final
		r.mu.RUnlock()
		return out, nil
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.disposed {
		return nil, entities.ErrDisposed
	}
	if r.hasFinal {
		return r.final, nil
	}

	resolved, err := r.primary.Resolve(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolve application event handlers: %w", err)
	}

	// Working copy: the filter mutates freely without touching the set's
	// cached base ordering, which Reset falls back to.
	working := make([]Handle, len(resolved))
	copy(working, resolved)

	if r.filter != nil {
		working = r.filter(working)
	}

	working = pinCore(working)

	r.final = working
	r.hasFinal = true
	r.logger.Info("application event handlers ordered",
		"handlers", len(working),
		"core", countCore(working),
		"filtered", r.filter != nil)
	return r.final, nil
}

// pinCore moves core-tagged entries to the front in ascending weight
// order. Non-core entries keep their relative order, shifted to the tail.
func pinCore(handlers []Handle) []Handle {
	var core, rest []Handle
	for _, h := range handlers {
		if h.Candidate().Core() {
			core = append(core, h)
		} else {
			rest = append(rest, h)
		}
	}
	if len(core) == 0 {
		return handlers
	}
	sort.SliceStable(core, func(i, j int) bool {
		return core[i].Candidate().Weight().Less(core[j].Candidate().Weight())
	})
	return append(core, rest...)
}

func countCore(handlers []Handle) int {
	n := 0
	for _, h := range handlers {
		if h.Candidate().Core() {
			n++
		}
	}
	return n
}

// InstantiateLegacyHandlers forces construction of the legacy set for its
// side effects. The handler list itself stays behind the legacy accessor
// and never enters the primary ordering.
func (r *ApplicationEventRegistry) InstantiateLegacyHandlers(ctx context.Context) error {
	r.mu.RLock()
	disposed := r.disposed
	r.mu.RUnlock()
	if disposed {
		return entities.ErrDisposed
	}

	instances, err := r.legacy.Instances(ctx)
	if err != nil {
		return fmt.Errorf("instantiate legacy startup handlers: %w", err)
	}
	r.logger.Debug("legacy startup handlers instantiated", "handlers", len(instances))
	return nil
}

// Legacy returns the deprecated handler set.
func (r *ApplicationEventRegistry) Legacy() *set.LegacySet {
	return r.legacy
}

// Reset drops the cached final list and the primary set's instances; the
// next FinalOrderedHandlers access runs a fresh construction and ordering
// pass. The registered filter is kept and will run again. No-op on a
// disposed registry.
func (r *ApplicationEventRegistry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.disposed {
		return
	}
	r.final = nil
	r.hasFinal = false
	r.primary.Reset()
}

// Dispose tears down both sets and drops all cached state. Idempotent;
// waits for in-flight resolutions. After disposal every access fails with
// entities.ErrDisposed.
func (r *ApplicationEventRegistry) Dispose() {
	r.mu.Lock()
	if r.disposed {
		r.mu.Unlock()
		return
	}
	r.disposed = true
	r.final = nil
	r.hasFinal = false
	r.mu.Unlock()

	// The sets serialize their own teardown; holding the registry lock
	// across these calls is unnecessary once disposed is set.
	r.primary.Dispose()
	r.legacy.Dispose()
	r.logger.Debug("event registry disposed")
}

// IsDisposed reports whether Dispose has been called.
func (r *ApplicationEventRegistry) IsDisposed() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.disposed
}
