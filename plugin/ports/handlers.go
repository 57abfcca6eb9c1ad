// Package ports defines the interfaces between the registry core and its
// collaborators: capability contracts, the construction service, and the
// candidate supply.
package ports

import "context"

// Event is an application lifecycle notification delivered to handlers.
type Event struct {
	// Name identifies the lifecycle point (e.g. "started", "stopping").
	Name string

	// Payload carries event-specific data, if any.
	Payload any
}

// ApplicationEventHandler is the primary capability contract.
// Implementations receive application lifecycle events in registry order.
type ApplicationEventHandler interface {
	HandleApplicationEvent(ctx context.Context, event Event) error
}

// LegacyStartupHandler is the deprecated capability contract. Existing
// handlers are still constructed for their side effects, but new code
// should implement ApplicationEventHandler instead.
type LegacyStartupHandler interface {
	OnStartup(ctx context.Context) error
}
