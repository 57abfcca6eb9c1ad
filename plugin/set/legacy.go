package set

import (
	"context"
	"log/slog"

	"github.com/eventhost-dev/eventhost-sdk/plugin/entities"
	"github.com/eventhost-dev/eventhost-sdk/plugin/ports"
	"github.com/eventhost-dev/eventhost-sdk/plugin/values"
)

// LegacySet wraps a weighted set bound to the deprecated startup
// capability. It exposes only Instances and Dispose: no ordering-override
// hooks, no filter. Legacy consumers get raw weighted order only.
//
// Constructing a LegacySet realizes nothing; instances exist only after an
// explicit Instances call.
type LegacySet struct {
	inner *Set[ports.LegacyStartupHandler]
}

// NewLegacySet creates a LegacySet over the candidates the primary
// partition excluded.
func NewLegacySet(candidates []entities.CandidateType, constructor ports.Constructor, logger *slog.Logger) *LegacySet {
	if logger == nil {
		logger = slog.Default()
	}
	return &LegacySet{
		inner: New[ports.LegacyStartupHandler](
			values.CapabilityLegacyStartup,
			candidates,
			constructor,
			WithLogger[ports.LegacyStartupHandler](logger),
		),
	}
}

// Instances resolves and returns the legacy handlers in ascending weight
// order, constructing them on the first call.
func (l *LegacySet) Instances(ctx context.Context) ([]Instance[ports.LegacyStartupHandler], error) {
	return l.inner.Resolve(ctx)
}

// Dispose tears down the legacy set. Idempotent.
func (l *LegacySet) Dispose() {
	l.inner.Dispose()
}
