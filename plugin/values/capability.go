package values

// Capability identifies an abstract contract a handler type may declare.
// Resolution is always scoped to exactly one capability per set.
// Membership is declared at registration time; the registry never inspects
// type hierarchies to infer it.
type Capability string

const (
	// CapabilityApplicationEvents is the primary capability: handlers
	// invoked at defined application lifecycle points.
	CapabilityApplicationEvents Capability = "application-events"

	// CapabilityLegacyStartup is the deprecated capability kept for
	// compatibility. Its handlers are constructed only on explicit demand
	// and never enter the primary handler list.
	CapabilityLegacyStartup Capability = "legacy-startup"
)

// String returns the capability kind.
func (c Capability) String() string {
	return string(c)
}
