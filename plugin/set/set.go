// Package set implements the weighted lazy plugin set: a closed universe of
// candidate types filtered to one capability, constructed once on demand,
// and ordered ascending by weight.
package set

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/eventhost-dev/eventhost-sdk/plugin/entities"
	"github.com/eventhost-dev/eventhost-sdk/plugin/ports"
	"github.com/eventhost-dev/eventhost-sdk/plugin/values"
)

// Instance pairs a constructed handler with the candidate it came from.
// The candidate carries the weight and core tag the registry orders by.
type Instance[T any] struct {
	candidate entities.CandidateType
	value     T
}

// NewInstance creates an Instance. Exposed for filter callbacks that add
// entries they already hold; the registry never constructs on their behalf.
func NewInstance[T any](candidate entities.CandidateType, value T) Instance[T] {
	return Instance[T]{candidate: candidate, value: value}
}

// Candidate returns the descriptor the instance was constructed from.
func (i Instance[T]) Candidate() entities.CandidateType {
	return i.candidate
}

// Value returns the constructed handler.
func (i Instance[T]) Value() T {
	return i.value
}

// Set is a weighted lazy plugin set over handler contract T.
//
// The candidate universe is fixed at construction: SupportsInsert and
// SupportsClear both report false and the corresponding mutations fail
// with entities.ErrUnsupportedOperation. Resolve constructs at most once
// between resets, even under concurrent callers; Reset and Dispose take
// the write lock and therefore wait out any in-flight resolution.
type Set[T any] struct {
	mu          sync.RWMutex
	capability  values.Capability
	candidates  []entities.CandidateType
	constructor ports.Constructor
	logger      *slog.Logger

	resolved  []Instance[T]
	hasResult bool
	disposed  bool
}

// Option configures a Set.
type Option[T any] func(*Set[T])

// WithLogger sets the logger.
func WithLogger[T any](l *slog.Logger) Option[T] {
	return func(s *Set[T]) { s.logger = l }
}

// New creates a Set bound to one capability and a fixed candidate list.
// The list is copied; discovery order is preserved for weight tie-breaks.
// No instance is constructed until the first Resolve.
func New[T any](
	capability values.Capability,
	candidates []entities.CandidateType,
	constructor ports.Constructor,
	opts ...Option[T],
) *Set[T] {
	s := &Set[T]{
		capability:  capability,
		candidates:  make([]entities.CandidateType, len(candidates)),
		constructor: constructor,
		logger:      slog.Default(),
	}
	copy(s.candidates, candidates)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Capability returns the capability this set resolves.
func (s *Set[T]) Capability() values.Capability {
	return s.capability
}

// Resolve returns the ordered instances for the set's capability,
// constructing them on the first call. Callers must treat the returned
// slice as read-only; it is shared between all callers until Reset.
//
// A construction failure aborts the whole attempt with a
// *entities.ConstructionError naming the candidate; nothing is cached and
// a later Resolve starts a fresh pass.
func (s *Set[T]) Resolve(ctx context.Context) ([]Instance[T], error) {
	s.mu.RLock()
	if s.disposed {
		s.mu.RUnlock()
		return nil, entities.ErrDisposed
	}
	if s.hasResult {
		out := s.resolved
		s.mu.RUnlock()
		return out, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	// Another caller may have finished the pass while we waited.
	if s.disposed {
		return nil, entities.ErrDisposed
	}
	if s.hasResult {
		return s.resolved, nil
	}

	instances, err := s.construct(ctx)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(instances, func(i, j int) bool {
		return instances[i].candidate.Weight().Less(instances[j].candidate.Weight())
	})

	s.resolved = instances
	s.hasResult = true
	s.logger.Debug("plugin set resolved",
		"capability", s.capability.String(),
		"candidates", len(s.candidates),
		"instances", len(instances))
	return s.resolved, nil
}

// construct filters the candidates to this set's capability and builds one
// instance per survivor. Caller holds the write lock.
func (s *Set[T]) construct(ctx context.Context) ([]Instance[T], error) {
	var instances []Instance[T]
	for _, candidate := range s.candidates {
		if !candidate.Declares(s.capability) {
			continue
		}

		raw, err := s.constructor.Construct(ctx, candidate)
		if err != nil {
			var ce *entities.ConstructionError
			if errors.As(err, &ce) {
				return nil, err
			}
			return nil, &entities.ConstructionError{Candidate: candidate, Cause: err}
		}

		typed, ok := raw.(T)
		if !ok {
			return nil, &entities.ConstructionError{
				Candidate: candidate,
				Cause:     fmt.Errorf("instance %T does not implement the %s contract", raw, s.capability),
			}
		}
		instances = append(instances, Instance[T]{candidate: candidate, value: typed})
	}
	return instances, nil
}

// Reset drops the cached instances. The next Resolve reconstructs from the
// original candidate list. No-op on a disposed set.
func (s *Set[T]) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.disposed {
		return
	}
	s.resolved = nil
	s.hasResult = false
}

// SupportsInsert reports whether candidates may be added after
// construction. Always false: the type universe is closed.
func (s *Set[T]) SupportsInsert() bool {
	return false
}

// SupportsClear reports whether the candidate list may be cleared.
// Always false: the type universe is closed.
func (s *Set[T]) SupportsClear() bool {
	return false
}

// Insert rejects late candidate registration.
func (s *Set[T]) Insert(candidate entities.CandidateType) error {
	return fmt.Errorf("insert %s: %w", candidate.String(), entities.ErrUnsupportedOperation)
}

// Clear rejects clearing the candidate list.
func (s *Set[T]) Clear() error {
	return fmt.Errorf("clear: %w", entities.ErrUnsupportedOperation)
}

// Dispose marks the set disposed and drops all state. Idempotent; waits
// for any in-flight resolution before tearing down. After disposal every
// Resolve fails with entities.ErrDisposed.
func (s *Set[T]) Dispose() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.disposed {
		return
	}
	s.disposed = true
	s.resolved = nil
	s.hasResult = false
	s.candidates = nil
}

// IsDisposed reports whether Dispose has been called.
func (s *Set[T]) IsDisposed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.disposed
}
