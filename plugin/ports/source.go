package ports

import (
	"context"

	"github.com/eventhost-dev/eventhost-sdk/plugin/entities"
)

// CandidateSource supplies the ordered candidate-type sequence the registry
// captures at construction. The order returned here is the discovery order
// used to break weight ties.
type CandidateSource interface {
	Discover(ctx context.Context) ([]entities.CandidateType, error)
}
