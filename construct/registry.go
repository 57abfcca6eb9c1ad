// Package construct provides the default object-construction service: a
// sealed table of named factory functions keyed by handler name.
package construct

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/eventhost-dev/eventhost-sdk/plugin/entities"
	"github.com/eventhost-dev/eventhost-sdk/plugin/values"
)

// Factory builds one handler instance for a candidate type.
// Implementations must be safe to call concurrently.
type Factory func(ctx context.Context, candidate entities.CandidateType) (any, error)

var (
	// ErrDuplicateFactory indicates an attempt to register a factory for a
	// name that already has one.
	ErrDuplicateFactory = errors.New("construct: duplicate factory registration")

	// ErrUnknownHandler indicates a construction request for a handler
	// name no factory was registered for.
	ErrUnknownHandler = errors.New("construct: unknown handler name")

	// ErrSealed indicates an attempt to register in a sealed registry.
	ErrSealed = errors.New("construct: sealed registry")
)

// Registry maps handler names to factories and implements
// ports.Constructor. It is safe for concurrent use. Once sealed, further
// registration fails; hosts seal after wiring all factories and before
// handing the registry to discovery.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
	sealed    atomic.Bool
}

// NewRegistry creates an empty factory registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
	}
}

// Sealed reports whether the registry is sealed.
func (r *Registry) Sealed() bool { return r.sealed.Load() }

// Seal prevents further registrations. It is idempotent and safe for
// concurrent use. Returns true if this call changed the state from
// unsealed to sealed.
func (r *Registry) Seal() bool { return !r.sealed.Swap(true) }

// Register adds a factory for the given handler name. Returns an error on
// duplicate names or a sealed registry.
func (r *Registry) Register(name values.HandlerName, f Factory) error {
	if r.Sealed() {
		return ErrSealed
	}
	if name.IsEmpty() || f == nil {
		return errors.New("construct: invalid name or factory")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[name.String()]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateFactory, name.String())
	}
	r.factories[name.String()] = f
	return nil
}

// Construct builds an instance for the candidate by name. Implements
// ports.Constructor: failures surface as *entities.ConstructionError.
func (r *Registry) Construct(ctx context.Context, candidate entities.CandidateType) (any, error) {
	r.mu.RLock()
	f, ok := r.factories[candidate.Name().String()]
	r.mu.RUnlock()

	if !ok {
		return nil, &entities.ConstructionError{Candidate: candidate, Cause: ErrUnknownHandler}
	}

	instance, err := f(ctx, candidate)
	if err != nil {
		return nil, &entities.ConstructionError{Candidate: candidate, Cause: err}
	}
	return instance, nil
}
