package ports

import (
	"context"

	"github.com/eventhost-dev/eventhost-sdk/plugin/entities"
)

// Constructor is the object-construction service consulted during
// resolution. Construct builds one instance for the given candidate type;
// a failure aborts the whole resolution attempt.
// Implementations must be safe for concurrent use.
type Constructor interface {
	Construct(ctx context.Context, candidate entities.CandidateType) (any, error)
}

// ConstructorFunc adapts a function to the Constructor interface.
type ConstructorFunc func(ctx context.Context, candidate entities.CandidateType) (any, error)

// Construct calls f.
func (f ConstructorFunc) Construct(ctx context.Context, candidate entities.CandidateType) (any, error) {
	return f(ctx, candidate)
}
